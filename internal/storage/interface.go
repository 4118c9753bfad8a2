package storage

import "github.com/tridiary/tridiary/internal/models"

// Provider is the narrow storage surface the rest of the application depends
// on. Records are read and written whole: goals as one list, entries as one
// map keyed by diary date, the sleep session as one flag. Absent or unparsable
// stored data is reported as the empty default, never as an error.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Goals
	LoadGoals() ([]models.Goal, error)
	SaveGoals([]models.Goal) error

	// Entries
	LoadEntries() (map[string]models.DiaryEntry, error)
	GetEntry(date string) (models.DiaryEntry, error)
	SaveEntry(models.DiaryEntry) error

	// Sleep session
	GetSleepSession() (models.SleepSession, error)
	SaveSleepSession(models.SleepSession) error

	// Utils
	GetConfigPath() string
}
