package cli

import (
	"fmt"
	"strings"

	"github.com/tridiary/tridiary/internal/constants"
	"github.com/tridiary/tridiary/internal/models"
	"github.com/tridiary/tridiary/internal/reflection"
	"github.com/tridiary/tridiary/internal/storage"
	"github.com/tridiary/tridiary/internal/utils"
)

type Context struct {
	Store     storage.Provider
	Reflector reflection.Generator
}

// resolveDate normalizes a --date flag: empty means today's diary day.
func resolveDate(date string) (string, error) {
	if date == "" {
		return utils.Today(), nil
	}
	if !utils.ValidateDateFormat(date) {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", date)
	}
	return date, nil
}

// findGoal locates a goal by exact title, falling back to unique prefix match.
func findGoal(goals []models.Goal, title string) (models.Goal, error) {
	for _, g := range goals {
		if g.Title == title {
			return g, nil
		}
	}

	var matches []models.Goal
	lower := strings.ToLower(title)
	for _, g := range goals {
		if strings.HasPrefix(strings.ToLower(g.Title), lower) {
			matches = append(matches, g)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Goal{}, fmt.Errorf("goal %q not found", title)
	default:
		names := make([]string, len(matches))
		for i, g := range matches {
			names[i] = g.Title
		}
		return models.Goal{}, fmt.Errorf("goal %q is ambiguous (matches %s)", title, strings.Join(names, ", "))
	}
}

func describeGoal(g models.Goal) string {
	if g.Type == constants.GoalCheckIn {
		return "check-in"
	}
	unit := g.Unit
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("accumulate (%s)", unit)
}
