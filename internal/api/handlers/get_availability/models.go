package get_availability

import (
	"github.com/m04kA/SMC-TurfService/internal/domain"
	getAvailability "github.com/m04kA/SMC-TurfService/internal/usecase/get_availability"
)

// SlotResponse один интервал сетки в HTTP ответе
type SlotResponse struct {
	StartTime string  `json:"startTime"` // "10:00"
	EndTime   string  `json:"endTime"`
	Status    string  `json:"status"`
	Price     float64 `json:"price"`
	Label     string  `json:"label,omitempty"`
}

// OperatingHoursResponse рабочие часы площадки
type OperatingHoursResponse struct {
	Opening string `json:"opening"`
	Closing string `json:"closing"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	TurfID         int64                  `json:"turfId"`
	Date           string                 `json:"date"` // "2025-10-15"
	Currency       string                 `json:"currency"`
	OperatingHours OperatingHoursResponse `json:"operatingHours"`
	Slots          []SlotResponse         `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	httpResp := &AvailabilityResponse{
		TurfID:   resp.TurfID,
		Date:     resp.Date.Format(domain.DateFormat),
		Currency: resp.Currency,
		OperatingHours: OperatingHoursResponse{
			Opening: resp.OperatingHours.Opening.String(),
			Closing: resp.OperatingHours.Closing.String(),
		},
		Slots: make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		httpResp.Slots = append(httpResp.Slots, SlotResponse{
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			Status:    s.Status,
			Price:     s.Price,
			Label:     s.Label,
		})
	}

	return httpResp
}
