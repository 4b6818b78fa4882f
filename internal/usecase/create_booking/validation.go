package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/internal/integrations/turfservice"
	"github.com/m04kA/SMC-TurfService/internal/pricing"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.TurfID <= 0 {
		return fmt.Errorf("%w: turfID must be positive", ErrInvalidInput)
	}

	if !req.BookingType.Valid() {
		return fmt.Errorf("%w: unknown booking type %q", ErrInvalidInput, req.BookingType)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	switch req.BookingType {
	case domain.BookingTypeHourly:
		if req.StartTime == nil || req.EndTime == nil {
			return fmt.Errorf("%w: startTime and endTime are required for hourly booking", ErrInvalidInput)
		}
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
		}
		if err := req.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
		}
	case domain.BookingTypeFullDay:
		if req.StartTime != nil || req.EndTime != nil {
			return fmt.Errorf("%w: full_day booking must not specify a time interval", ErrInvalidInput)
		}
	}

	if req.Payment != nil {
		if !req.Payment.Method.Valid() {
			return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.Payment.Method)
		}
		if req.Payment.TransactionRef == "" {
			return fmt.Errorf("%w: transactionRef is required", ErrInvalidInput)
		}
		if req.Payment.AmountPaid <= 0 {
			return fmt.Errorf("%w: amountPaid must be positive", ErrInvalidInput)
		}
	}

	return nil
}

// validateDate проверяет, что дата в пределах горизонта бронирования:
// 60 дней для full_day, 7 дней для hourly, прошедшие даты запрещены
func validateDate(bookingDate time.Time, now time.Time, bookingType domain.BookingType) error {
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}

	advanceDays := domain.HourlyAdvanceBookingDays
	if bookingType == domain.BookingTypeFullDay {
		advanceDays = domain.FullDayAdvanceBookingDays
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceDays)

	bookingDateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())

	if bookingDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceDays)
	}

	return nil
}

// validateInterval проверяет интервал hourly бронирования против рабочих часов.
// Вся арифметика идет в минутах от открытия, поэтому площадки, работающие
// за полночь, обрабатываются той же веткой.
func validateInterval(start, end, opening, closing types.TimeString) (durationHours int, err error) {
	startMin, err := start.MinutesFromMidnight()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	endMin, err := end.MinutesFromMidnight()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	openMin, err := opening.MinutesFromMidnight()
	if err != nil {
		return 0, fmt.Errorf("%w: invalid opening time: %v", ErrInternal, err)
	}
	closeMin, err := closing.MinutesFromMidnight()
	if err != nil {
		return 0, fmt.Errorf("%w: invalid closing time: %v", ErrInternal, err)
	}

	// Длина рабочего окна; закрытие за полночь дает окно через границу суток
	span := closeMin - openMin
	if span <= 0 {
		span += types.MinutesPerDay
	}

	relStart := ((startMin - openMin) + types.MinutesPerDay) % types.MinutesPerDay
	relEnd := ((endMin - openMin) + types.MinutesPerDay) % types.MinutesPerDay
	if endMin == closeMin {
		relEnd = span
	}

	if relStart >= relEnd {
		return 0, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidTimeSlot)
	}
	if relEnd > span {
		return 0, fmt.Errorf("%w: interval is outside operating hours", ErrInvalidTimeSlot)
	}

	duration := relEnd - relStart
	if duration%domain.SlotDurationMinutes != 0 {
		return 0, fmt.Errorf("%w: duration must be a whole number of hours", ErrInvalidTimeSlot)
	}
	if startMin%domain.SlotDurationMinutes != openMin%domain.SlotDurationMinutes {
		return 0, fmt.Errorf("%w: startTime must align with the slot grid", ErrInvalidTimeSlot)
	}

	return duration / domain.SlotDurationMinutes, nil
}

// rulesForTurf строит правила ценообразования площадки поверх ставок по умолчанию
func rulesForTurf(turf *turfservice.Turf) pricing.Rules {
	if turf.Pricing == nil {
		return pricing.DefaultRules()
	}

	o := pricing.Overrides{
		WeekdayHourPrice:    turf.Pricing.WeekdayHourPrice,
		WeekendHourPrice:    turf.Pricing.WeekendHourPrice,
		WeekdayFullDayPrice: turf.Pricing.WeekdayFullDayPrice,
		WeekendFullDayPrice: turf.Pricing.WeekendFullDayPrice,
		PeakMultiplier:      turf.Pricing.PeakMultiplier,
	}
	if turf.Pricing.PeakStart != nil {
		ts := types.TimeString(*turf.Pricing.PeakStart)
		o.PeakStart = &ts
	}
	if turf.Pricing.PeakEnd != nil {
		ts := types.TimeString(*turf.Pricing.PeakEnd)
		o.PeakEnd = &ts
	}

	return pricing.DefaultRules().Apply(&o)
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
