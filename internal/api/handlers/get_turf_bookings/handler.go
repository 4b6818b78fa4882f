package get_turf_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TurfService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfService/internal/api/middleware"
	"github.com/m04kA/SMC-TurfService/internal/service/bookings"
)

const (
	msgInvalidTurfID = "некорректный ID площадки"
	msgInvalidFilter = "некорректные параметры фильтрации"
	msgMissingUserID = "отсутствует ID пользователя"
	msgTurfNotFound  = "площадка не найдена"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/turfs/{turfId}/bookings?startDate=...&endDate=...&status=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	turfID, err := strconv.ParseInt(vars["turfId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /turfs/{id}/bookings - Invalid turf ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurfID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /turfs/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req, err := ParseQuery(r.URL.Query(), turfID, userID)
	if err != nil {
		h.logger.Warn("GET /turfs/{id}/bookings - Invalid filter: turf_id=%d: %v", turfID, err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.GetTurfBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrTurfNotFound):
			h.logger.Warn("GET /turfs/{id}/bookings - Turf not found: turf_id=%d", turfID)
			handlers.RespondNotFound(w, msgTurfNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /turfs/{id}/bookings - Access denied: turf_id=%d, user_id=%d", turfID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /turfs/{id}/bookings - Invalid filter: turf_id=%d", turfID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /turfs/{id}/bookings - Failed to get bookings: turf_id=%d, error=%v",
				turfID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /turfs/{id}/bookings - Retrieved %d bookings for turf_id=%d",
		len(result.Bookings), turfID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
