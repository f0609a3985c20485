package utils

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// nowFunc is swapped in tests.
var nowFunc = time.Now

var (
	hourPattern  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*小時`)
	minPattern   = regexp.MustCompile(`(\d+)\s*分鐘`)
	clockPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)
	dayNumber    = regexp.MustCompile(`(\d+)$`)
)

// ParseDuration reads free-text stays such as "1.5小時" or "1小時30分鐘" and
// returns seconds. Unparseable text counts as zero.
func ParseDuration(s string) int {
	if s == "" {
		return 0
	}
	minutes := 0.0
	if m := hourPattern.FindStringSubmatch(s); m != nil {
		if h, err := strconv.ParseFloat(m[1], 64); err == nil {
			minutes += h * 60
		}
	}
	if m := minPattern.FindStringSubmatch(s); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			minutes += float64(v)
		}
	}
	return int(math.Round(minutes * 60))
}

// FormatDuration renders seconds as "45分鐘", "2小時" or "1小時30分鐘".
func FormatDuration(seconds int) string {
	minutes := int(math.Round(float64(seconds) / 60))
	if minutes < 60 {
		return fmt.Sprintf("%d分鐘", minutes)
	}
	hours := minutes / 60
	rest := minutes % 60
	if rest == 0 {
		return fmt.Sprintf("%d小時", hours)
	}
	return fmt.Sprintf("%d小時%d分鐘", hours, rest)
}

// AddTimeTo shifts a wall-clock "HH:MM" by seconds, wrapping at midnight.
// An empty clock starts from the current time.
func AddTimeTo(clock string, seconds int) string {
	var base int
	if clock == "" {
		now := nowFunc()
		base = now.Hour()*3600 + now.Minute()*60 + now.Second()
	} else {
		h, m, ok := ParseClock(clock)
		if !ok {
			h, m = 0, 0
		}
		base = h*3600 + m*60
	}
	total := ((base+seconds)%86400 + 86400) % 86400
	return fmt.Sprintf("%02d:%02d", total/3600, (total%3600)/60)
}

// ParseClock splits "H:MM" or "HH:MM".
func ParseClock(clock string) (int, int, bool) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(clock))
	if m == nil {
		return 0, 0, false
	}
	h, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	return h, mins, true
}

// NormalizeClock zero-pads a valid clock, "9:05" becomes "09:05".
func NormalizeClock(clock string) (string, bool) {
	h, m, ok := ParseClock(clock)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", h, m), true
}

// FormatDistance renders meters as "850 公尺" or "12.3 公里".
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%d 公尺", int(math.Round(meters)))
	}
	return fmt.Sprintf("%.1f 公里", meters/1000)
}

// FormatRouteDuration renders a driving total as "1 小時 5 分鐘" or "40 分鐘".
func FormatRouteDuration(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%d 小時 %d 分鐘", hours, minutes)
	}
	return fmt.Sprintf("%d 分鐘", minutes)
}

func MapSearchLink(query string) string {
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(query)
}

// DayNumber extracts the numeric suffix of ids like "day12". It returns -1
// when the id has none.
func DayNumber(id string) int {
	m := dayNumber.FindStringSubmatch(id)
	if m == nil {
		return -1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return -1
	}
	return n
}
