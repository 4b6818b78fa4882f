package slotgrid

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

// Template политика генерации сетки слотов площадки
type Template string

const (
	// TemplateHourly часовые слоты от открытия до закрытия во все дни
	TemplateHourly Template = "hourly"

	// TemplateWeekendSessions по выходным утро/день разбиты на фиксированные
	// сессии, вечером — часовые слоты; по будням как TemplateHourly
	TemplateWeekendSessions Template = "weekend_sessions"
)

// Valid returns true for a known template
func (t Template) Valid() bool {
	return t == TemplateHourly || t == TemplateWeekendSessions
}

// Interval полуинтервал [Start, End) одного слота сетки
type Interval struct {
	Start types.TimeString
	End   types.TimeString
}

// Фиксированные сессии выходного дня (в минутах с полуночи)
var weekendSessions = [][2]int{
	{6 * 60, 10 * 60},  // 06:00 - 10:00
	{10 * 60, 14 * 60}, // 10:00 - 14:00
	{14 * 60, 18 * 60}, // 14:00 - 18:00
}

const weekendHourlyTailStart = 18 * 60 // 18:00

// Generate строит каноничную сетку слотов площадки на дату.
// Интервалы упорядочены, не пересекаются и покрывают [opening, closing).
// Если closing <= opening, закрытие относится к следующим суткам
// (площадка работает за полночь), сетка генерируется через границу полуночи.
// Функция чистая и детерминированная: сетка одинаково строится на пути
// чтения доступности и на пути создания бронирования.
func Generate(opening, closing types.TimeString, date time.Time, template Template) ([]Interval, error) {
	openMin, err := opening.MinutesFromMidnight()
	if err != nil {
		return nil, fmt.Errorf("invalid opening time: %v", err)
	}

	closeMin, err := closing.MinutesFromMidnight()
	if err != nil {
		return nil, fmt.Errorf("invalid closing time: %v", err)
	}

	// Закрытие за полночь
	if closeMin <= openMin {
		closeMin += types.MinutesPerDay
	}

	if template == TemplateWeekendSessions && IsWeekend(date) {
		return generateWeekendGrid(openMin, closeMin), nil
	}

	return generateHourlyGrid(openMin, closeMin), nil
}

// generateHourlyGrid часовые слоты, только целиком помещающиеся в рабочее окно
func generateHourlyGrid(openMin, closeMin int) []Interval {
	intervals := make([]Interval, 0, (closeMin-openMin)/domain.SlotDurationMinutes)

	for cur := openMin; cur+domain.SlotDurationMinutes <= closeMin; cur += domain.SlotDurationMinutes {
		intervals = append(intervals, Interval{
			Start: types.FromMinutes(cur),
			End:   types.FromMinutes(cur + domain.SlotDurationMinutes),
		})
	}

	return intervals
}

// generateWeekendGrid фиксированные сессии, затем часовой хвост с 18:00
func generateWeekendGrid(openMin, closeMin int) []Interval {
	intervals := make([]Interval, 0)

	for _, session := range weekendSessions {
		if session[0] >= openMin && session[1] <= closeMin {
			intervals = append(intervals, Interval{
				Start: types.FromMinutes(session[0]),
				End:   types.FromMinutes(session[1]),
			})
		}
	}

	tailStart := weekendHourlyTailStart
	if openMin > tailStart {
		tailStart = openMin
	}

	intervals = append(intervals, generateHourlyGrid(tailStart, closeMin)...)

	return intervals
}

// IsWeekend возвращает true для субботы и воскресенья
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}
