package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid morning", input: "09:30"},
		{name: "valid midnight", input: "00:00"},
		{name: "valid end of day", input: "23:59"},
		{name: "missing leading zero", input: "9:30", wantErr: true},
		{name: "hour out of range", input: "25:00", wantErr: true},
		{name: "minute out of range", input: "12:60", wantErr: true},
		{name: "garbage", input: "morning", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_Ordering(t *testing.T) {
	early := TimeString("09:00")
	late := TimeString("17:30")

	assert.True(t, early.IsBefore(late))
	assert.False(t, late.IsBefore(early))
	assert.True(t, late.IsAfter(early))
	assert.False(t, early.IsBefore(early))
	assert.False(t, early.IsAfter(early))
}

func TestTimeString_Minutes(t *testing.T) {
	ts := TimeString("09:30")
	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 9*60+30, minutes)

	midnight := TimeString("00:00")
	minutes, err = midnight.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("09:30")

	shifted, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), shifted)

	// Переход через полночь запрещен
	late := TimeString("23:30")
	_, err = late.AddMinutes(60)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutOfRange)

	// Ровно полночь тоже за пределами суток
	_, err = late.AddMinutes(30)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestTimeString_AtDate(t *testing.T) {
	ts := TimeString("14:45")
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	anchored, err := ts.AtDate(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 7, 14, 45, 0, 0, time.UTC), anchored)
}

func TestTimeString_Scan(t *testing.T) {
	t.Run("string with seconds", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("09:30:00"))
		assert.Equal(t, TimeString("09:30"), ts)
	})

	t.Run("bytes", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("17:00:00")))
		assert.Equal(t, TimeString("17:00"), ts)
	})

	t.Run("time.Time", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(2026, 9, 7, 11, 15, 0, 0, time.UTC)))
		assert.Equal(t, TimeString("11:15"), ts)
	})

	t.Run("nil resets value", func(t *testing.T) {
		ts := TimeString("09:00")
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})

	t.Run("unsupported type", func(t *testing.T) {
		var ts TimeString
		assert.Error(t, ts.Scan(42))
	})
}

func TestTimeString_Value(t *testing.T) {
	ts := TimeString("09:30")
	v, err := ts.Value()
	require.NoError(t, err)
	assert.Equal(t, "09:30", v)

	var zero TimeString
	v, err = zero.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
