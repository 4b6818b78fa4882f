package turfservice

// Turf модель площадки из реестра TurfRegistry
type Turf struct {
	ID                 int64         `json:"id"`
	OwnerID            int64         `json:"owner_id"`
	Name               string        `json:"name"`
	Address            string        `json:"address"`
	OpeningTime        string        `json:"opening_time"` // HH:MM
	ClosingTime        string        `json:"closing_time"` // HH:MM
	PlatformFeePercent float64       `json:"platform_fee_percent"`
	SlotTemplate       string        `json:"slot_template"` // hourly | weekend_sessions
	Pricing            *PricingRules `json:"pricing,omitempty"`
	IsActive           bool          `json:"is_active"`
}

// PricingRules собственные правила ценообразования площадки
// Отсутствующее поле означает ставку по умолчанию
type PricingRules struct {
	WeekdayHourPrice    *float64 `json:"weekday_hour_price,omitempty"`
	WeekendHourPrice    *float64 `json:"weekend_hour_price,omitempty"`
	WeekdayFullDayPrice *float64 `json:"weekday_full_day_price,omitempty"`
	WeekendFullDayPrice *float64 `json:"weekend_full_day_price,omitempty"`
	PeakStart           *string  `json:"peak_start,omitempty"` // HH:MM
	PeakEnd             *string  `json:"peak_end,omitempty"`   // HH:MM
	PeakMultiplier      *float64 `json:"peak_multiplier,omitempty"`
}

// ErrorResponse модель ошибки от TurfRegistry
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
