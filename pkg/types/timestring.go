package types

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const timeLayout = "15:04"

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

// TimeString время дня в формате "HH:MM" (например, "10:00")
// Используется для времени слотов и бронирований без привязки к дате.
// Строковое представление с ведущими нулями сравнимо лексикографически.
type TimeString string

// NewTimeString создает TimeString из time.Time (дата отбрасывается)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// FromMinutes создает TimeString из количества минут с полуночи (по модулю суток)
func FromMinutes(minutes int) TimeString {
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет, что значение соответствует формату "HH:MM"
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("invalid time string format: %v", err)
	}
	return nil
}

// MinutesFromMidnight возвращает количество минут с полуночи
func (t TimeString) MinutesFromMidnight() (int, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("invalid time string format: %v", err)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes возвращает время, сдвинутое на minutes минут вперед
// Переход через полночь выполняется по модулю суток
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	m, err := t.MinutesFromMidnight()
	if err != nil {
		return "", err
	}
	return FromMinutes(m + minutes), nil
}

// IsBefore строгое сравнение: t < other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter строгое сравнение: t > other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// Value реализует driver.Valuer для записи в колонки типа TIME
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// Scan реализует sql.Scanner
// Поддерживает колонки TIME (приходят как time.Time или "HH:MM:SS") и строковые
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
	case time.Time:
		*t = NewTimeString(v)
	case []byte:
		*t = TruncateSeconds(string(v))
	case string:
		*t = TruncateSeconds(v)
	default:
		return fmt.Errorf("cannot scan %T into TimeString", src)
	}
	return nil
}

// TruncateSeconds отбрасывает секунды из "HH:MM:SS"
func TruncateSeconds(s string) TimeString {
	if strings.Count(s, ":") == 2 {
		return TimeString(s[:strings.LastIndex(s, ":")])
	}
	return TimeString(s)
}
