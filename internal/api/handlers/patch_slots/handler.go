package patch_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TurfService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfService/internal/api/middleware"
	manageSlots "github.com/m04kA/SMC-TurfService/internal/usecase/manage_slots"
)

const (
	msgInvalidTurfID      = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgTurfNotFound       = "площадка не найдена"
	msgForbidden          = "доступ запрещен"
	msgSlotNotFound       = "слот не найден"
	msgSlotBooked         = "слот занят бронированием"
)

type Handler struct {
	useCase ManageSlotsUseCase
	logger  Logger
}

func NewHandler(useCase ManageSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/turfs/{turfId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	turfID, err := strconv.ParseInt(vars["turfId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /turfs/{id}/slots - Invalid turf ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurfID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /turfs/{id}/slots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req PatchSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /turfs/{id}/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(turfID, userID)
	if err != nil {
		h.logger.Warn("PATCH /turfs/{id}/slots - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.PatchSlots(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, manageSlots.ErrTurfNotFound):
			h.logger.Warn("PATCH /turfs/{id}/slots - Turf not found: turf_id=%d", turfID)
			handlers.RespondNotFound(w, msgTurfNotFound)

		case errors.Is(err, manageSlots.ErrAccessDenied):
			h.logger.Warn("PATCH /turfs/{id}/slots - Access denied: turf_id=%d, user_id=%d", turfID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, manageSlots.ErrSlotNotFound):
			h.logger.Warn("PATCH /turfs/{id}/slots - Slot not found: turf_id=%d", turfID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, manageSlots.ErrSlotBooked):
			h.logger.Warn("PATCH /turfs/{id}/slots - Slot is booked: turf_id=%d", turfID)
			handlers.RespondConflict(w, msgSlotBooked)

		case errors.Is(err, manageSlots.ErrInvalidInput):
			h.logger.Warn("PATCH /turfs/{id}/slots - Invalid input: turf_id=%d: %v", turfID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /turfs/{id}/slots - Failed to patch slots: turf_id=%d, error=%v", turfID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /turfs/{id}/slots - Patched %d slots for turf_id=%d, date=%s",
		len(req.Patches), turfID, req.Date)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
