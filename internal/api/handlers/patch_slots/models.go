package patch_slots

import (
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	manageSlots "github.com/m04kA/SMC-TurfService/internal/usecase/manage_slots"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// PatchInput частичное изменение слота, адресуемого интервалом
type PatchInput struct {
	StartTime string   `json:"startTime"` // "10:00"
	EndTime   string   `json:"endTime"`
	Status    *string  `json:"status,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	Label     *string  `json:"label,omitempty"`
}

// PatchSlotsRequest HTTP request model
type PatchSlotsRequest struct {
	Date    string       `json:"date"` // "2025-10-15"
	Patches []PatchInput `json:"patches"`
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

// PatchSlotsResponse HTTP response model
type PatchSlotsResponse struct {
	TurfID int64          `json:"turfId"`
	Date   string         `json:"date"`
	Slots  []SlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PatchSlotsRequest) ToUseCaseRequest(turfID, userID int64) (*manageSlots.PatchRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	req := &manageSlots.PatchRequest{
		TurfID:  turfID,
		UserID:  userID,
		Date:    date,
		Patches: make([]manageSlots.PatchInput, 0, len(r.Patches)),
	}

	for _, in := range r.Patches {
		patch := domain.SlotPatch{
			Price: in.Price,
			Label: in.Label,
		}
		if in.Status != nil {
			status := domain.SlotStatus(*in.Status)
			patch.Status = &status
		}

		req.Patches = append(req.Patches, manageSlots.PatchInput{
			StartTime: types.TimeString(in.StartTime),
			EndTime:   types.TimeString(in.EndTime),
			Patch:     patch,
		})
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *manageSlots.Response) *PatchSlotsResponse {
	httpResp := &PatchSlotsResponse{
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
