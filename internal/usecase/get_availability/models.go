package get_availability

import (
	"time"

	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// Request модель запроса доступности площадки на дату
type Request struct {
	TurfID int64
	Date   time.Time
}

// SlotView представление одного интервала сетки для клиента
type SlotView struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    string
	Price     float64
	Label     string
}

// OperatingHours рабочие часы площадки
type OperatingHours struct {
	Opening types.TimeString
	Closing types.TimeString
}

// Response модель ответа: вся сетка дня с состоянием и ценой каждого интервала
type Response struct {
	TurfID         int64
	Date           time.Time
	Currency       string
	OperatingHours OperatingHours
	Slots          []SlotView
}
