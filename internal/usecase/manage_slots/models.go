package manage_slots

import (
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// SlotInput одна строка ручной разметки дня
type SlotInput struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    domain.SlotStatus
	Price     float64
	Label     string
}

// SaveRequest модель запроса полной замены разметки дня
// BOOKED слоты при замене сохраняются
type SaveRequest struct {
	TurfID int64
	UserID int64 // Должен совпадать с владельцем площадки
	Date   time.Time
	Slots  []SlotInput
}

// PatchInput частичное изменение одного слота, адресуемого интервалом
type PatchInput struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Patch     domain.SlotPatch
}

// PatchRequest модель запроса точечных изменений разметки дня
type PatchRequest struct {
	TurfID  int64
	UserID  int64
	Date    time.Time
	Patches []PatchInput
}

// SlotResponse слот в ответе
type SlotResponse struct {
	ID        int64
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    string
	Price     float64
	Label     string
}

// Response модель ответа: итоговая разметка дня
type Response struct {
	TurfID int64
	Date   time.Time
	Slots  []SlotResponse
}

func toResponse(turfID int64, date time.Time, slots []*domain.Slot) *Response {
	resp := &Response{
		TurfID: turfID,
		Date:   date,
		Slots:  make([]SlotResponse, 0, len(slots)),
	}

	for _, s := range slots {
		resp.Slots = append(resp.Slots, SlotResponse{
			ID:        s.ID,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Status:    string(s.Status),
			Price:     s.Price,
			Label:     s.Label,
		})
	}

	return resp
}
