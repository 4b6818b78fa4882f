package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurfService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-TurfService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgTurfNotFound       = "площадка не найдена"
	msgTurfInactive       = "площадка недоступна для бронирования"
	msgSlotNotAvailable   = "выбранный интервал недоступен"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgInvalidTimeSlot    = "некорректный временной интервал"
	msgAmountMismatch     = "сумма платежа не совпадает с итоговой стоимостью"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, turf_id=%d", userID, req.TurfID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrTurfNotFound):
			h.logger.Warn("POST /bookings - Turf not found: turf_id=%d", req.TurfID)
			handlers.RespondNotFound(w, msgTurfNotFound)

		case errors.Is(err, createBooking.ErrTurfInactive):
			h.logger.Warn("POST /bookings - Turf inactive: turf_id=%d", req.TurfID)
			handlers.RespondConflict(w, msgTurfInactive)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: user_id=%d, turf_id=%d", userID, req.TurfID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: user_id=%d, turf_id=%d", userID, req.TurfID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: user_id=%d, turf_id=%d", userID, req.TurfID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrPaymentAmountMismatch):
			h.logger.Warn("POST /bookings - Payment amount mismatch: user_id=%d, turf_id=%d", userID, req.TurfID)
			handlers.RespondBadRequest(w, msgAmountMismatch)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, turf_id=%d: %v", userID, req.TurfID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, turf_id=%d, error=%v",
				userID, req.TurfID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	// Повтор уже обработанного запроса возвращает исходное бронирование
	if result.AlreadyProcessed {
		h.logger.Info("POST /bookings - Replayed booking: booking_id=%d, user_id=%d", result.ID, userID)
		handlers.RespondJSON(w, http.StatusOK, response)
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, turf_id=%d",
		result.ID, userID, req.TurfID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
