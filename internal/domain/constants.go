package domain

// Advance-booking ceilings per booking type
const (
	FullDayAdvanceBookingDays = 60
	HourlyAdvanceBookingDays  = 7
)

// Slot grid granularity
const SlotDurationMinutes = 60

// FullDayDurationHours условная длительность full-day бронирования
// Используется только как duration_hours в записи, цена — плоская ставка
const FullDayDurationHours = 12

// DefaultCurrency валюта всех платежей
const DefaultCurrency = "INR"

// Limits for free-text fields
const (
	MaxLabelLength              = 100
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
