package dates

import (
	"strconv"
	"strings"
	"time"
)

// Duration returns the number of whole months between start and end, with
// a missing or open-ended end read as the current month. The second result
// is false when start is missing or open-ended, or when either value is not
// a canonical "YYYY" / "YYYY-MM" date; callers are expected to pass values
// through Normalize first.
func Duration(start, end string) (int, bool) {
	return DurationAt(start, end, time.Now().UTC())
}

// DurationAt is Duration with an explicit "now"
func DurationAt(start, end string, now time.Time) (int, bool) {
	if start == "" || isPresent(start) {
		return 0, false
	}

	sy, sm, ok := parseYearMonth(start)
	if !ok {
		return 0, false
	}

	var ey, em int
	if end == "" || isPresent(end) {
		ey, em = now.Year(), int(now.Month())
	} else if ey, em, ok = parseYearMonth(end); !ok {
		return 0, false
	}

	months := (ey-sy)*12 + (em - sm)
	if months < 0 {
		months = 0
	}
	return months, true
}

// parseYearMonth reads "YYYY" (as January) or "YYYY-MM"
func parseYearMonth(value string) (year, month int, ok bool) {
	if yearRe.MatchString(value) {
		value += "-01"
	}
	if !yearMonthRe.MatchString(value) {
		return 0, 0, false
	}
	year, err := strconv.Atoi(value[:4])
	if err != nil {
		return 0, 0, false
	}
	month, err = strconv.Atoi(value[5:])
	if err != nil {
		return 0, 0, false
	}
	return year, month, true
}

func isPresent(value string) bool {
	return strings.EqualFold(value, Present)
}
