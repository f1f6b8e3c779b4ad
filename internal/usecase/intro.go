package usecase

import (
	"fmt"
	"strings"
	"time"
)

// IntroPost renders the header tweet of a thread, stamped with the start of
// the current hour in loc. The zone abbreviation tracks daylight saving.
func IntroPost(keyword string, period time.Duration, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	hour := time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), 0, 0, 0, loc)
	return fmt.Sprintf("These are the %s news within the last %s:\n%s",
		keyword, humanPeriod(period), hour.Format("03:00PM MST, January 02, 2006"))
}

func humanPeriod(d time.Duration) string {
	switch {
	case d <= 0:
		return "day"
	case d%(24*time.Hour) == 0:
		return plural(int(d/(24*time.Hour)), "day")
	case d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	}
	return strings.TrimSuffix(d.String(), "0s")
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
