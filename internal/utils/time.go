package utils

import (
	"fmt"
	"time"

	"github.com/tridiary/tridiary/internal/constants"
)

// DiaryDate maps a wall-clock instant to the diary day it belongs to.
// A diary day runs 04:00 to 03:59 the next calendar day, so instants with a
// local hour before constants.DayRolloverHour count as the previous date.
func DiaryDate(t time.Time) string {
	if t.Hour() < constants.DayRolloverHour {
		t = t.AddDate(0, 0, -1)
	}
	return t.Format(constants.DateFormat)
}

// Today returns the current diary date.
func Today() string {
	return DiaryDate(time.Now())
}

// ResolveBedtime places a chosen time-of-day (HH:MM) on the calendar day
// implied by the displayed diary day. Going to bed at 02:00 on diary day
// "2024-01-01" physically happens on 2024-01-02, so times before the rollover
// hour land on the day after the diary-day label.
func ResolveBedtime(diaryDate, clock string) (time.Time, error) {
	day, err := ParseDate(diaryDate)
	if err != nil {
		return time.Time{}, err
	}

	tod, err := time.Parse(constants.TimeFormat, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format: %q (expected HH:MM): %w", clock, err)
	}

	resolved := time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), 0, 0, time.Local)
	if tod.Hour() < constants.DayRolloverHour {
		resolved = resolved.AddDate(0, 0, 1)
	}
	return resolved, nil
}

// ParseDate parses a YYYY-MM-DD date string in the local timezone.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %q (expected YYYY-MM-DD): %w", dateStr, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
}

// ShiftDate returns the date string the given number of days away.
func ShiftDate(dateStr string, days int) (string, error) {
	day, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return day.AddDate(0, 0, days).Format(constants.DateFormat), nil
}

// ValidateDateFormat checks if the string matches the standard date format.
func ValidateDateFormat(dateStr string) bool {
	_, err := time.Parse(constants.DateFormat, dateStr)
	return err == nil
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil
}

// FormatClock formats an instant as HH:MM for display.
func FormatClock(t time.Time) string {
	return t.Format(constants.TimeFormat)
}
