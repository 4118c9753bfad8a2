package models

import "time"

// DailyLog maps a goal id to the value recorded for one diary day.
// Check-in goals use 0 or 1; accumulation goals use a non-negative count.
type DailyLog map[string]int

// DiaryEntry is one record per diary day, keyed by the diary date rather than
// the calendar date the data was entered on. Entries are upserted whole on
// every save (last-write-wins).
type DiaryEntry struct {
	Date         string     `json:"date"` // YYYY-MM-DD diary day
	Content      string     `json:"content"`
	BedTime      *time.Time `json:"bed_time,omitempty"`
	Goals        DailyLog   `json:"goals"`
	AIReflection string     `json:"ai_reflection,omitempty"`
}

// NewEntry returns the default entry for a date. Callers must save explicitly;
// the default is never persisted as a side effect of reading.
func NewEntry(date string) DiaryEntry {
	return DiaryEntry{
		Date:  date,
		Goals: DailyLog{},
	}
}

// SleepSession tracks an in-progress sleep started by the sleep-now action.
// It is persisted alongside entries but not consumed by stats.
type SleepSession struct {
	StartTime time.Time `json:"start_time"`
	IsActive  bool      `json:"is_active"`
}
