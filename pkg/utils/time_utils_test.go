package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	cases := map[string]int{
		"1.5小時":     5400,
		"1小時30分鐘":   5400,
		"45分鐘":      2700,
		"2 小時":      7200,
		"":          0,
		"about noon": 0,
	}
	for in, want := range cases {
		require.Equal(t, want, ParseDuration(in), in)
	}
}

func TestFormatDuration(t *testing.T) {
	require.Equal(t, "45分鐘", FormatDuration(2700))
	require.Equal(t, "2小時", FormatDuration(7200))
	require.Equal(t, "1小時30分鐘", FormatDuration(5400))
	require.Equal(t, "0分鐘", FormatDuration(0))
}

func TestAddTimeTo(t *testing.T) {
	require.Equal(t, "11:45", AddTimeTo("10:30", 4500))
	require.Equal(t, "00:30", AddTimeTo("23:30", 3600))
	require.Equal(t, "01:00", AddTimeTo("garbage", 3600))

	old := nowFunc
	nowFunc = func() time.Time { return time.Date(2026, 2, 18, 8, 15, 0, 0, time.Local) }
	defer func() { nowFunc = old }()
	require.Equal(t, "08:45", AddTimeTo("", 1800))
}

func TestNormalizeClock(t *testing.T) {
	got, ok := NormalizeClock("9:05")
	require.True(t, ok)
	require.Equal(t, "09:05", got)

	_, ok = NormalizeClock("24:00")
	require.False(t, ok)
	_, ok = NormalizeClock("noon")
	require.False(t, ok)
}

func TestFormatDistanceAndRoute(t *testing.T) {
	require.Equal(t, "850 公尺", FormatDistance(849.6))
	require.Equal(t, "12.3 公里", FormatDistance(12345))
	require.Equal(t, "1 小時 5 分鐘", FormatRouteDuration(3900))
	require.Equal(t, "40 分鐘", FormatRouteDuration(2400))
}

func TestDayNumber(t *testing.T) {
	require.Equal(t, 12, DayNumber("day12"))
	require.Equal(t, 1, DayNumber("day1"))
	require.Equal(t, -1, DayNumber("extra"))
}

func TestMapSearchLink(t *testing.T) {
	require.Equal(t, "https://www.google.com/maps/search/?api=1&query=Ben+Thanh+Market", MapSearchLink("Ben Thanh Market"))
}
