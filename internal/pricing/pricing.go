package pricing

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/internal/slotgrid"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// Rules правила ценообразования площадки
// Приходят из реестра площадок; при отсутствии используется DefaultRules
type Rules struct {
	WeekdayHourPrice    float64
	WeekendHourPrice    float64
	WeekdayFullDayPrice float64
	WeekendFullDayPrice float64

	// Пиковое окно: каждый час, пересекающий [PeakStart, PeakEnd),
	// тарифицируется с множителем целиком, без пропорции
	PeakStart      types.TimeString
	PeakEnd        types.TimeString
	PeakMultiplier float64
}

// DefaultRules ставки по умолчанию для площадок без собственных правил
func DefaultRules() Rules {
	return Rules{
		WeekdayHourPrice:    800,
		WeekendHourPrice:    1000,
		WeekdayFullDayPrice: 10000,
		WeekendFullDayPrice: 12000,
		PeakStart:           "18:00",
		PeakEnd:             "22:00",
		PeakMultiplier:      1.5,
	}
}

// Overrides частичные правила ценообразования площадки
// Поле nil означает ставку по умолчанию
type Overrides struct {
	WeekdayHourPrice    *float64
	WeekendHourPrice    *float64
	WeekdayFullDayPrice *float64
	WeekendFullDayPrice *float64
	PeakStart           *types.TimeString
	PeakEnd             *types.TimeString
	PeakMultiplier      *float64
}

// Apply накладывает переопределения площадки на базовые правила
func (r Rules) Apply(o *Overrides) Rules {
	if o == nil {
		return r
	}
	if o.WeekdayHourPrice != nil {
		r.WeekdayHourPrice = *o.WeekdayHourPrice
	}
	if o.WeekendHourPrice != nil {
		r.WeekendHourPrice = *o.WeekendHourPrice
	}
	if o.WeekdayFullDayPrice != nil {
		r.WeekdayFullDayPrice = *o.WeekdayFullDayPrice
	}
	if o.WeekendFullDayPrice != nil {
		r.WeekendFullDayPrice = *o.WeekendFullDayPrice
	}
	if o.PeakStart != nil {
		r.PeakStart = *o.PeakStart
	}
	if o.PeakEnd != nil {
		r.PeakEnd = *o.PeakEnd
	}
	if o.PeakMultiplier != nil {
		r.PeakMultiplier = *o.PeakMultiplier
	}
	return r
}

// Quote считает базовую стоимость бронирования (без комиссии платформы)
// Для full-day start/end игнорируются
func Quote(bookingType domain.BookingType, date time.Time, start, end types.TimeString, rules Rules) (float64, error) {
	if bookingType == domain.BookingTypeFullDay {
		return QuoteFullDay(date, rules), nil
	}
	return QuoteHourly(date, start, end, rules)
}

// QuoteFullDay плоская ставка выходного или буднего дня
// Пиковое окно к full-day бронированиям не применяется
func QuoteFullDay(date time.Time, rules Rules) float64 {
	if slotgrid.IsWeekend(date) {
		return rules.WeekendFullDayPrice
	}
	return rules.WeekdayFullDayPrice
}

// QuoteHourly сумма по каждому часу интервала [start, end):
// ставка выходного/буднего дня, умноженная на PeakMultiplier,
// если час пересекает пиковое окно (полуинтервальный тест пересечения)
func QuoteHourly(date time.Time, start, end types.TimeString, rules Rules) (float64, error) {
	startMin, err := start.MinutesFromMidnight()
	if err != nil {
		return 0, fmt.Errorf("invalid start time: %v", err)
	}

	endMin, err := end.MinutesFromMidnight()
	if err != nil {
		return 0, fmt.Errorf("invalid end time: %v", err)
	}

	// Интервал через полночь
	if endMin <= startMin {
		endMin += types.MinutesPerDay
	}

	peakStartMin, err := rules.PeakStart.MinutesFromMidnight()
	if err != nil {
		return 0, fmt.Errorf("invalid peak window start: %v", err)
	}

	peakEndMin, err := rules.PeakEnd.MinutesFromMidnight()
	if err != nil {
		return 0, fmt.Errorf("invalid peak window end: %v", err)
	}

	hourRate := rules.WeekdayHourPrice
	if slotgrid.IsWeekend(date) {
		hourRate = rules.WeekendHourPrice
	}

	total := 0.0

	for cur := startMin; cur < endMin; cur += domain.SlotDurationMinutes {
		hourEnd := cur + domain.SlotDurationMinutes
		if hourEnd > endMin {
			hourEnd = endMin
		}

		price := hourRate

		// Пересечение с пиковым окном по времени суток
		hourOfDayStart := cur % types.MinutesPerDay
		hourOfDayEnd := hourOfDayStart + (hourEnd - cur)
		if hourOfDayStart < peakEndMin && hourOfDayEnd > peakStartMin {
			price *= rules.PeakMultiplier
		}

		total += price
	}

	return total, nil
}

// Split раскладывает базовую сумму на базу, комиссию платформы и итог
// Все три значения снапшотятся в бронирование при создании
func Split(base float64, platformFeePercent float64) (baseAmount, platformFee, totalAmount float64) {
	fee := base * platformFeePercent / 100
	return base, fee, base + fee
}
