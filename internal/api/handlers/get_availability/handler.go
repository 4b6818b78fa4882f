package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TurfService/internal/api/handlers"
	"github.com/m04kA/SMC-TurfService/internal/domain"
	getAvailability "github.com/m04kA/SMC-TurfService/internal/usecase/get_availability"
)

const (
	msgInvalidTurfID = "некорректный ID площадки"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDate   = "отсутствует параметр date"
	msgTurfNotFound  = "площадка не найдена"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/turfs/{turfId}/availability?date=2025-10-15
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	turfID, err := strconv.ParseInt(vars["turfId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /turfs/{id}/availability - Invalid turf ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTurfID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /turfs/{id}/availability - Missing date: turf_id=%d", turfID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /turfs/{id}/availability - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		TurfID: turfID,
		Date:   date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrTurfNotFound):
			h.logger.Warn("GET /turfs/{id}/availability - Turf not found: turf_id=%d", turfID)
			handlers.RespondNotFound(w, msgTurfNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /turfs/{id}/availability - Invalid input: turf_id=%d: %v", turfID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /turfs/{id}/availability - Failed to get availability: turf_id=%d, error=%v",
				turfID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /turfs/{id}/availability - Retrieved %d slots for turf_id=%d, date=%s",
		len(result.Slots), turfID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
