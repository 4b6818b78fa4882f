package domain

import (
	"time"

	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// BookingType represents the kind of reservation
type BookingType string

const (
	BookingTypeHourly  BookingType = "hourly"
	BookingTypeFullDay BookingType = "full_day"
)

// Valid returns true for a known booking type
func (t BookingType) Valid() bool {
	return t == BookingTypeHourly || t == BookingTypeFullDay
}

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusCompleted BookingStatus = "COMPLETED"
)

// InactiveStatuses статусы, не занимающие слоты площадки
var InactiveStatuses = []BookingStatus{StatusCancelled, StatusCompleted}

// Booking represents a turf reservation in the system
type Booking struct {
	ID          int64
	TurfID      int64
	UserID      int64
	BookingType BookingType
	BookingDate time.Time

	// Only set for hourly bookings
	StartTime *types.TimeString
	EndTime   *types.TimeString

	// Derived from the requested interval (12 for full-day)
	DurationHours int

	// Pricing breakdown snapshotted at booking time, never recomputed
	BaseAmount  float64
	PlatformFee float64
	TotalAmount float64

	Status BookingStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
}

// IsFullDay returns true if the booking occupies the whole operating day
func (b *Booking) IsFullDay() bool {
	return b.BookingType == BookingTypeFullDay
}

// IsConfirmed returns true if the booking holds its slots
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// OverlapsInterval проверяет пересечение бронирования с интервалом [start, end)
// Для full-day бронирования пересечение есть всегда
func (b *Booking) OverlapsInterval(start, end types.TimeString) bool {
	if b.IsFullDay() {
		return true
	}
	if b.StartTime == nil || b.EndTime == nil {
		return false
	}
	return Overlaps(*b.StartTime, *b.EndTime, start, end)
}

// TurfBookingsFilter фильтр для получения бронирований площадки
type TurfBookingsFilter struct {
	TurfID          int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные бронирования
}
