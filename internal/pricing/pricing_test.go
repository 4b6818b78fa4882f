package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/pkg/types"
)

var (
	// 2025-10-15 - среда, 2025-10-18 - суббота
	wednesday = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	saturday  = time.Date(2025, 10, 18, 0, 0, 0, 0, time.UTC)
)

func TestQuoteHourly(t *testing.T) {
	rules := DefaultRules()

	t.Run("weekday off-peak", func(t *testing.T) {
		// 10:00-12:00 среда: 2 часа по 800
		got, err := QuoteHourly(wednesday, "10:00", "12:00", rules)
		require.NoError(t, err)
		assert.Equal(t, 1600.0, got)
	})

	t.Run("weekday peak", func(t *testing.T) {
		// 18:00-20:00 среда: 2 часа по 800*1.5
		got, err := QuoteHourly(wednesday, "18:00", "20:00", rules)
		require.NoError(t, err)
		assert.Equal(t, 2400.0, got)
	})

	t.Run("saturday spanning peak window", func(t *testing.T) {
		// 17:00-23:00 суббота, пик 18:00-22:00, ставка 1000:
		// час 17-18 вне пика, 18-22 пик (4 часа по 1500), 22-23 вне пика
		got, err := QuoteHourly(saturday, "17:00", "23:00", rules)
		require.NoError(t, err)
		assert.Equal(t, 1000+1500*4+1000.0, got)
	})

	t.Run("partial hour overlapping peak pays full multiplier", func(t *testing.T) {
		// Час 17:30-18:30 пересекает пик - множитель применяется целиком
		got, err := QuoteHourly(wednesday, "17:30", "18:30", rules)
		require.NoError(t, err)
		assert.Equal(t, 1200.0, got)
	})

	t.Run("over midnight", func(t *testing.T) {
		// 23:00-01:00: оба часа вне пикового окна
		got, err := QuoteHourly(wednesday, "23:00", "01:00", rules)
		require.NoError(t, err)
		assert.Equal(t, 1600.0, got)
	})

	t.Run("invalid time", func(t *testing.T) {
		_, err := QuoteHourly(wednesday, "bad", "12:00", rules)
		assert.Error(t, err)
	})
}

func TestQuoteFullDay(t *testing.T) {
	rules := DefaultRules()

	// Плоская ставка, пиковое окно не применяется
	assert.Equal(t, 10000.0, QuoteFullDay(wednesday, rules))
	assert.Equal(t, 12000.0, QuoteFullDay(saturday, rules))
}

func TestQuote(t *testing.T) {
	rules := DefaultRules()

	got, err := Quote(domain.BookingTypeFullDay, saturday, "", "", rules)
	require.NoError(t, err)
	assert.Equal(t, 12000.0, got)

	got, err = Quote(domain.BookingTypeHourly, wednesday, "10:00", "11:00", rules)
	require.NoError(t, err)
	assert.Equal(t, 800.0, got)
}

func TestSplit(t *testing.T) {
	base, fee, total := Split(2000, 10)
	assert.Equal(t, 2000.0, base)
	assert.Equal(t, 200.0, fee)
	assert.Equal(t, 2200.0, total)

	base, fee, total = Split(1500, 0)
	assert.Equal(t, 1500.0, base)
	assert.Equal(t, 0.0, fee)
	assert.Equal(t, 1500.0, total)
}

func TestRules_Apply(t *testing.T) {
	rules := DefaultRules()

	t.Run("nil overrides keep defaults", func(t *testing.T) {
		assert.Equal(t, rules, rules.Apply(nil))
	})

	t.Run("partial overrides", func(t *testing.T) {
		weekday := 600.0
		peakStart := types.TimeString("19:00")

		got := rules.Apply(&Overrides{
			WeekdayHourPrice: &weekday,
			PeakStart:        &peakStart,
		})

		assert.Equal(t, 600.0, got.WeekdayHourPrice)
		assert.Equal(t, types.TimeString("19:00"), got.PeakStart)
		// Остальные ставки не тронуты
		assert.Equal(t, rules.WeekendHourPrice, got.WeekendHourPrice)
		assert.Equal(t, rules.PeakEnd, got.PeakEnd)
	})
}
