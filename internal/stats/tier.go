package stats

import (
	"github.com/tridiary/tridiary/internal/constants"
	"github.com/tridiary/tridiary/internal/models"
)

// TierFor classifies cumulative progress against a goal's two breakpoints.
// Below the easy target the goal is still "on track" in the easy band;
// reaching the hard target puts it in the insane band. Stateless.
func TierFor(goal models.Goal, current int) constants.Tier {
	switch {
	case current >= goal.TargetHard:
		return constants.TierInsane
	case current >= goal.TargetEasy:
		return constants.TierHard
	default:
		return constants.TierEasy
	}
}

// FillFraction is the displayed bar fill: progress as a fraction of the top
// (insane) target, clamped at 1.0 regardless of band. Inverted or zero
// targets are not rejected anywhere, so guard the division.
func FillFraction(goal models.Goal, current int) float64 {
	if goal.TargetInsane <= 0 {
		if current > 0 {
			return 1
		}
		return 0
	}
	f := float64(current) / float64(goal.TargetInsane)
	if f > 1 {
		return 1
	}
	if f < 0 {
		return 0
	}
	return f
}
