package domain

import (
	"time"

	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// SlotStatus represents the state of a single time slot
type SlotStatus string

const (
	SlotAvailable   SlotStatus = "AVAILABLE"
	SlotBooked      SlotStatus = "BOOKED"
	SlotMaintenance SlotStatus = "MAINTENANCE"
	SlotBlocked     SlotStatus = "BLOCKED"
	SlotTournament  SlotStatus = "TOURNAMENT"
)

// Valid returns true for a known slot status
func (s SlotStatus) Valid() bool {
	switch s {
	case SlotAvailable, SlotBooked, SlotMaintenance, SlotBlocked, SlotTournament:
		return true
	}
	return false
}

// Slot represents a persisted override for one interval of a turf's day.
// Intervals without a row default to AVAILABLE at the engine price.
type Slot struct {
	ID        int64
	TurfID    int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    SlotStatus
	Price     float64
	Label     string

	// Set when the slot is held by a booking
	BookingID *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBooked returns true if the slot is held by a booking
// Booked slots are immutable outside the booking-cancellation path
func (s *Slot) IsBooked() bool {
	return s.Status == SlotBooked
}

// BlocksBooking returns true if the slot cannot be booked in its current state
func (s *Slot) BlocksBooking() bool {
	return s.Status != SlotAvailable
}

// OverlapsInterval проверяет пересечение слота с интервалом [start, end)
func (s *Slot) OverlapsInterval(start, end types.TimeString) bool {
	return Overlaps(s.StartTime, s.EndTime, start, end)
}

// SlotPatch частичное обновление слота
// Явный allow-list изменяемых полей: статус, цена, подпись
type SlotPatch struct {
	Status *SlotStatus
	Price  *float64
	Label  *string
}

// IsEmpty returns true if the patch changes nothing
func (p SlotPatch) IsEmpty() bool {
	return p.Status == nil && p.Price == nil && p.Label == nil
}
