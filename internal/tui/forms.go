package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/tridiary/tridiary/internal/constants"
	"github.com/tridiary/tridiary/internal/utils"
)

// NewGoalForm creates the add-goal form
func NewGoalForm(fm *GoalFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("goal title cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[constants.GoalType]().
				Title("Type").
				Options(
					huh.NewOption("Check-in (binary, once per day)", constants.GoalCheckIn),
					huh.NewOption("Accumulation (counted, with a unit)", constants.GoalAccumulation),
				).
				Value(&fm.Type),
			huh.NewInput().
				Title("Easy target").
				Value(&fm.Easy).
				Validate(validateTarget),
			huh.NewInput().
				Title("Hard target").
				Value(&fm.Hard).
				Validate(validateTarget),
			huh.NewInput().
				Title("Insane target").
				Value(&fm.Insane).
				Validate(validateTarget),
			huh.NewInput().
				Title("Unit (accumulation only)").
				Value(&fm.Unit),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewBedtimeForm creates the manual bedtime form. The chosen time of day is
// resolved against the displayed diary day after completion.
func NewBedtimeForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Bedtime (HH:MM)").
				Description("Times before 04:00 count as the small hours after the diary day.").
				Value(value).
				Validate(func(s string) error {
					if !utils.ValidateTimeFormat(s) {
						return fmt.Errorf("expected HH:MM")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func validateTarget(s string) error {
	i, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("target must be a number")
	}
	if i < 0 {
		return fmt.Errorf("target cannot be negative")
	}
	return nil
}

func defaultGoalForm() *GoalFormModel {
	return &GoalFormModel{
		Type:   constants.GoalCheckIn,
		Easy:   strconv.Itoa(constants.DefaultTargetEasy),
		Hard:   strconv.Itoa(constants.DefaultTargetHard),
		Insane: strconv.Itoa(constants.DefaultTargetInsane),
	}
}
