package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Validate(t *testing.T) {
	t.Run("valid values", func(t *testing.T) {
		for _, s := range []string{"00:00", "09:30", "23:59"} {
			assert.NoError(t, TimeString(s).Validate(), s)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		for _, s := range []string{"", "24:00", "9:30:00", "abc", "12:60"} {
			assert.Error(t, TimeString(s).Validate(), s)
		}
	})
}

func TestFromMinutes(t *testing.T) {
	assert.Equal(t, TimeString("00:00"), FromMinutes(0))
	assert.Equal(t, TimeString("10:30"), FromMinutes(630))
	assert.Equal(t, TimeString("23:00"), FromMinutes(1380))

	// Переход через полночь по модулю суток
	assert.Equal(t, TimeString("01:00"), FromMinutes(25*60))
	assert.Equal(t, TimeString("23:00"), FromMinutes(-60))
}

func TestTimeString_MinutesFromMidnight(t *testing.T) {
	m, err := TimeString("18:30").MinutesFromMidnight()
	require.NoError(t, err)
	assert.Equal(t, 18*60+30, m)

	_, err = TimeString("bad").MinutesFromMidnight()
	assert.Error(t, err)
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("22:00").AddMinutes(180)
	require.NoError(t, err)
	assert.Equal(t, TimeString("01:00"), got)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:00").IsAfter("09:59"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
}

func TestTimeString_Scan(t *testing.T) {
	t.Run("from time.Time", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(0, 1, 1, 14, 30, 0, 0, time.UTC)))
		assert.Equal(t, TimeString("14:30"), ts)
	})

	t.Run("from string with seconds", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("14:30:00"))
		assert.Equal(t, TimeString("14:30"), ts)
	})

	t.Run("from bytes", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("09:00:00")))
		assert.Equal(t, TimeString("09:00"), ts)
	})

	t.Run("from nil", func(t *testing.T) {
		ts := TimeString("10:00")
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})

	t.Run("unsupported type", func(t *testing.T) {
		var ts TimeString
		assert.Error(t, ts.Scan(42))
	})
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestTruncateSeconds(t *testing.T) {
	assert.Equal(t, TimeString("10:00"), TruncateSeconds("10:00:00"))
	assert.Equal(t, TimeString("10:00"), TruncateSeconds("10:00"))
}
