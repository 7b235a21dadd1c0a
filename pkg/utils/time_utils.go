// utils/timeutil.go
package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

// India Standard Time (+05:30)
var istLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Kolkata"); err == nil {
		return loc
	}
	return time.FixedZone("IST", 5*3600+1800)
}()

// Use explicit "seconds" variant for DB storage
func NowUnixSeconds() int64 { return time.Now().Unix() }

// NowISO is the UTC timestamp stamped on generated documents.
func NowISO() string { return time.Now().UTC().Format(time.RFC3339) }

func FromUnixSecondsIST(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).In(istLoc)
}

func FormatRFC3339IST(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(istLoc).Format(time.RFC3339)
}

// ParseISODate parses YYYY-MM-DD. A trailing time component is ignored.
func ParseISODate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if len(value) > len(isoDate) && (value[len(isoDate)] == 'T' || value[len(isoDate)] == ' ') {
		value = value[:len(isoDate)]
	}
	return time.Parse(isoDate, value)
}

func FormatISODate(t time.Time) string { return t.Format(isoDate) }

// DaysBetweenInclusive counts calendar days from start to end, never less than 1.
func DaysBetweenInclusive(start, end string) (int, error) {
	s, err := ParseISODate(start)
	if err != nil {
		return 0, fmt.Errorf("%w: start date %q", ErrInvalidTripDates, start)
	}
	e, err := ParseISODate(end)
	if err != nil {
		return 0, fmt.Errorf("%w: end date %q", ErrInvalidTripDates, end)
	}
	days := int(e.Sub(s).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days, nil
}

// NightsBetween is the hotel-night count, 1 when the range is empty or unparsable.
func NightsBetween(start, end string) int {
	s, err := ParseISODate(start)
	if err != nil {
		return 1
	}
	e, err := ParseISODate(end)
	if err != nil {
		return 1
	}
	nights := int(e.Sub(s).Hours() / 24)
	if nights <= 0 {
		return 1
	}
	return nights
}

// ParseClockMinutes turns "H:MM" or "HH:MM" into minutes since midnight.
func ParseClockMinutes(value string) (int, bool) {
	hourPart, minutePart, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok || len(hourPart) == 0 || len(hourPart) > 2 || len(minutePart) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(minutePart)
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// FormatClock renders minutes since midnight as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
