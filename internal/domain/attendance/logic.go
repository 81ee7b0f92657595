package attendance

import (
	"errors"
	"math"
	"time"
)

var ErrClockOutBeforeClockIn = errors.New("clock-out before clock-in")

// HoursBetween returns the elapsed hours between clock-in and clock-out,
// rounded to two decimals.
func HoursBetween(clockIn, clockOut time.Time) (float64, error) {
	if clockOut.Before(clockIn) {
		return 0, ErrClockOutBeforeClockIn
	}
	hours := clockOut.Sub(clockIn).Hours()
	return math.Round(hours*100) / 100, nil
}

// DayStart truncates a timestamp to midnight in its own location, the
// boundary attendance rows are keyed on.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
