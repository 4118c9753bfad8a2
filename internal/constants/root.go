package constants

import "time"

// GoalType represents the kind of goal being tracked
type GoalType string

// Tier represents the band a goal's cumulative progress falls into
type Tier string

const (
	AppName           = "tridiary"
	Version           = "v0.1.0"
	DefaultConfigPath = "~/.config/tridiary/tridiary.db"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DayRolloverHour is the local hour at which a diary day ends. Instants
	// before 04:00 belong to the previous calendar date.
	DayRolloverHour = 4

	// AutosaveDelay is how long the diary editor waits after the last edit
	// before flushing the entry to storage.
	AutosaveDelay = time.Second

	// TrendWindowDays is how many of the most recent diary dates the bedtime
	// trend keeps.
	TrendWindowDays = 14

	// Goal Type constants
	GoalCheckIn      GoalType = "check-in"
	GoalAccumulation GoalType = "accumulation"

	// Tier constants
	TierEasy   Tier = "easy"
	TierHard   Tier = "hard"
	TierInsane Tier = "insane"

	// Default targets offered when creating a goal
	DefaultTargetEasy   = 10
	DefaultTargetHard   = 50
	DefaultTargetInsane = 100
)
