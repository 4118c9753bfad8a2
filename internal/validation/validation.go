package validation

import (
	"fmt"
	"strings"

	"github.com/tridiary/tridiary/internal/constants"
	"github.com/tridiary/tridiary/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictEmptyTitle     ConflictType = "empty_title"
	ConflictUnknownType    ConflictType = "unknown_type"
	ConflictNegativeTarget ConflictType = "negative_target"
	ConflictInvertedTiers  ConflictType = "inverted_tiers"
)

// Conflict represents a problem detected in a goal definition
type Conflict struct {
	Type        ConflictType
	Description string
}

// Result separates conflicts that block goal creation from ones that are
// merely surfaced. Inverted tiers are a warning: the stored data model allows
// them and the progress bar clamps, so they render nonsensically but safely.
type Result struct {
	Errors   []Conflict
	Warnings []Conflict
}

// OK returns true if there are no blocking conflicts
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// FormatWarnings returns a human-readable report of non-blocking conflicts
func (r Result) FormatWarnings() string {
	if len(r.Warnings) == 0 {
		return ""
	}
	lines := make([]string, 0, len(r.Warnings))
	for _, c := range r.Warnings {
		lines = append(lines, "Warning: "+c.Description)
	}
	return strings.Join(lines, "\n")
}

// Err returns the first blocking conflict as an error, or nil
func (r Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("%s", r.Errors[0].Description)
}

// ValidateGoal checks a goal definition at creation time.
func ValidateGoal(g models.Goal) Result {
	var res Result

	if strings.TrimSpace(g.Title) == "" {
		res.Errors = append(res.Errors, Conflict{
			Type:        ConflictEmptyTitle,
			Description: "goal title cannot be empty",
		})
	}

	if g.Type != constants.GoalCheckIn && g.Type != constants.GoalAccumulation {
		res.Errors = append(res.Errors, Conflict{
			Type:        ConflictUnknownType,
			Description: fmt.Sprintf("unknown goal type %q", g.Type),
		})
	}

	if g.TargetEasy < 0 || g.TargetHard < 0 || g.TargetInsane < 0 {
		res.Errors = append(res.Errors, Conflict{
			Type:        ConflictNegativeTarget,
			Description: "targets cannot be negative",
		})
	}

	if g.TargetEasy > g.TargetHard || g.TargetHard > g.TargetInsane {
		res.Warnings = append(res.Warnings, Conflict{
			Type: ConflictInvertedTiers,
			Description: fmt.Sprintf("targets are not ascending (easy=%d hard=%d insane=%d); progress coloring will be odd",
				g.TargetEasy, g.TargetHard, g.TargetInsane),
		})
	}

	return res
}

// ValidateGoals reports tier-order warnings across a stored goal list, for
// doctor-style checks.
func ValidateGoals(goals []models.Goal) []Conflict {
	var conflicts []Conflict
	for _, g := range goals {
		res := ValidateGoal(g)
		for _, w := range res.Warnings {
			w.Description = fmt.Sprintf("%s: %s", g.Title, w.Description)
			conflicts = append(conflicts, w)
		}
	}
	return conflicts
}
