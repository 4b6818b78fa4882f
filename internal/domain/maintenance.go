package domain

import (
	"time"

	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// MaintenanceBlock venue-defined closure window
// Intervals covered by a block are non-bookable regardless of slot state
type MaintenanceBlock struct {
	ID        int64
	TurfID    int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Reason    string
}

// OverlapsInterval проверяет пересечение блока с интервалом [start, end)
func (m *MaintenanceBlock) OverlapsInterval(start, end types.TimeString) bool {
	return Overlaps(m.StartTime, m.EndTime, start, end)
}
