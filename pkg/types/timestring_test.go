package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	require.Equal(t, "09:30", ts.String())

	_, err = NewTimeStringFromString("9:30am")
	require.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("25:00")
	require.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Minutes(t *testing.T) {
	require.Equal(t, 0, TimeString("00:00").Minutes())
	require.Equal(t, 9*60+30, TimeString("09:30").Minutes())
	require.Equal(t, 23*60+59, TimeString("23:59").Minutes())
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := TimeString("09:30").AddMinutes(45)
	require.NoError(t, err)
	require.Equal(t, TimeString("10:15"), ts)

	// Граница суток - валидный конец рабочего окна
	ts, err = TimeString("23:00").AddMinutes(60)
	require.NoError(t, err)
	require.Equal(t, TimeString("24:00"), ts)

	_, err = TimeString("23:30").AddMinutes(60)
	require.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Ordering(t *testing.T) {
	require.True(t, TimeString("09:00").IsBefore("17:00"))
	require.True(t, TimeString("17:00").IsAfter("09:00"))
	require.False(t, TimeString("09:00").IsBefore("09:00"))

	// 24:00 позже любого времени суток
	require.True(t, TimeString("24:00").IsAfter("23:59"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// Postgres TIME приходит с секундами
	require.NoError(t, ts.Scan("09:30:00"))
	require.Equal(t, TimeString("09:30"), ts)

	require.NoError(t, ts.Scan([]byte("17:45:00")))
	require.Equal(t, TimeString("17:45"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 1, 5, 8, 15, 0, 0, time.UTC)))
	require.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(nil))
	require.True(t, ts.IsZero())

	require.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("09:30").Value()
	require.NoError(t, err)
	require.Equal(t, "09:30", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	require.Nil(t, v)

	_, err = TimeString("garbage").Value()
	require.ErrorIs(t, err, ErrInvalidTimeString)
}
