package save_slots

import (
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	manageSlots "github.com/m04kA/SMC-TurfService/internal/usecase/manage_slots"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// SlotInput один слот ручной разметки в теле запроса
type SlotInput struct {
	StartTime string  `json:"startTime"` // "10:00"
	EndTime   string  `json:"endTime"`
	Status    string  `json:"status"` // AVAILABLE | MAINTENANCE | BLOCKED | TOURNAMENT
	Price     float64 `json:"price"`
	Label     string  `json:"label,omitempty"`
}

// SaveSlotsRequest HTTP request model
type SaveSlotsRequest struct {
	Date  string      `json:"date"` // "2025-10-15"
	Slots []SlotInput `json:"slots"`
}

// SlotResponse слот в HTTP ответе
type SlotResponse struct {
	ID        int64   `json:"id"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Status    string  `json:"status"`
	Price     float64 `json:"price"`
	Label     string  `json:"label,omitempty"`
}

// SaveSlotsResponse HTTP response model
type SaveSlotsResponse struct {
	TurfID int64          `json:"turfId"`
	Date   string         `json:"date"`
	Slots  []SlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SaveSlotsRequest) ToUseCaseRequest(turfID, userID int64) (*manageSlots.SaveRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	req := &manageSlots.SaveRequest{
		TurfID: turfID,
		UserID: userID,
		Date:   date,
		Slots:  make([]manageSlots.SlotInput, 0, len(r.Slots)),
	}

	for _, in := range r.Slots {
		req.Slots = append(req.Slots, manageSlots.SlotInput{
			StartTime: types.TimeString(in.StartTime),
			EndTime:   types.TimeString(in.EndTime),
			Status:    domain.SlotStatus(in.Status),
			Price:     in.Price,
			Label:     in.Label,
		})
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *manageSlots.Response) *SaveSlotsResponse {
	httpResp := &SaveSlotsResponse{
		TurfID: resp.TurfID,
		Date:   resp.Date.Format(domain.DateFormat),
		Slots:  make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		httpResp.Slots = append(httpResp.Slots, SlotResponse{
			ID:        s.ID,
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			Status:    s.Status,
			Price:     s.Price,
			Label:     s.Label,
		})
	}

	return httpResp
}
