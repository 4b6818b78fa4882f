package record_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TurfService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfService/internal/api/middleware"
	recordPayment "github.com/m04kA/SMC-TurfService/internal/usecase/record_payment"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgNotPayable         = "бронирование не принимает оплату"
	msgAlreadyPaid        = "бронирование уже оплачено"
	msgAmountMismatch     = "сумма платежа не совпадает с итоговой стоимостью"
)

type Handler struct {
	useCase RecordPaymentUseCase
	logger  Logger
}

func NewHandler(useCase RecordPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/payment - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/payment - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RecordPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, userID))
	if err != nil {
		switch {
		case errors.Is(err, recordPayment.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/payment - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, recordPayment.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/payment - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, recordPayment.ErrBookingNotPayable):
			h.logger.Warn("POST /bookings/{id}/payment - Booking not payable: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgNotPayable)

		case errors.Is(err, recordPayment.ErrAlreadyPaid):
			h.logger.Warn("POST /bookings/{id}/payment - Already paid: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgAlreadyPaid)

		case errors.Is(err, recordPayment.ErrAmountMismatch):
			h.logger.Warn("POST /bookings/{id}/payment - Amount mismatch: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgAmountMismatch)

		case errors.Is(err, recordPayment.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/payment - Invalid input: booking_id=%d: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings/{id}/payment - Failed to record payment: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	// Повтор уже обработанного платежа возвращает исходную запись
	if result.AlreadyProcessed {
		h.logger.Info("POST /bookings/{id}/payment - Replayed payment: payment_id=%d, booking_id=%d",
			result.ID, result.BookingID)
		handlers.RespondJSON(w, http.StatusOK, response)
		return
	}

	h.logger.Info("POST /bookings/{id}/payment - Payment recorded: payment_id=%d, booking_id=%d, user_id=%d",
		result.ID, result.BookingID, userID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
