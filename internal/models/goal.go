package models

import (
	"time"

	"github.com/tridiary/tridiary/internal/constants"
)

// Goal represents a user-defined tracked habit with three escalating
// cumulative targets. Goals are immutable after creation except for deletion;
// deleting a goal leaves its historical per-day values in place.
type Goal struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Type         constants.GoalType `json:"type"`
	TargetEasy   int                `json:"target_easy"`
	TargetHard   int                `json:"target_hard"`
	TargetInsane int                `json:"target_insane"`
	Unit         string             `json:"unit,omitempty"` // e.g. "words", "km"; accumulation goals only
	CreatedAt    time.Time          `json:"created_at"`
}
