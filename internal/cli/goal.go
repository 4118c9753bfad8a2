package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/tridiary/tridiary/internal/constants"
	"github.com/tridiary/tridiary/internal/models"
	"github.com/tridiary/tridiary/internal/validation"
)

type GoalCmd struct {
	Add    GoalAddCmd    `cmd:"" help:"Add a new goal."`
	List   GoalListCmd   `cmd:"" help:"List goals."`
	Delete GoalDeleteCmd `cmd:"" help:"Delete a goal (historical day values are kept)."`
}

type GoalAddCmd struct {
	Title  string `arg:"" optional:"" help:"Goal title. Omit to fill in interactively."`
	Type   string `help:"Goal type: check-in or accumulation." enum:"check-in,accumulation," default:""`
	Easy   int    `help:"Easy cumulative target." default:"-1"`
	Hard   int    `help:"Hard cumulative target." default:"-1"`
	Insane int    `help:"Insane cumulative target." default:"-1"`
	Unit   string `help:"Unit label for accumulation goals (e.g. words, km)." default:""`
}

func (c *GoalAddCmd) Run(ctx *Context) error {
	goal := models.Goal{
		ID:           uuid.New().String(),
		Title:        c.Title,
		Type:         constants.GoalType(c.Type),
		TargetEasy:   c.Easy,
		TargetHard:   c.Hard,
		TargetInsane: c.Insane,
		Unit:         c.Unit,
		CreatedAt:    time.Now(),
	}

	if c.Title == "" {
		if err := runGoalForm(&goal); err != nil {
			return err
		}
	} else {
		if goal.Type == "" {
			goal.Type = constants.GoalCheckIn
		}
		if goal.TargetEasy < 0 {
			goal.TargetEasy = constants.DefaultTargetEasy
		}
		if goal.TargetHard < 0 {
			goal.TargetHard = constants.DefaultTargetHard
		}
		if goal.TargetInsane < 0 {
			goal.TargetInsane = constants.DefaultTargetInsane
		}
	}

	if goal.Type != constants.GoalAccumulation {
		goal.Unit = ""
	}

	res := validation.ValidateGoal(goal)
	if err := res.Err(); err != nil {
		return err
	}
	if warnings := res.FormatWarnings(); warnings != "" {
		fmt.Println(warnings)
	}

	goals, err := ctx.Store.LoadGoals()
	if err != nil {
		return err
	}

	for _, g := range goals {
		if g.Title == goal.Title {
			return fmt.Errorf("goal with title %q already exists", goal.Title)
		}
	}

	goals = append(goals, goal)
	if err := ctx.Store.SaveGoals(goals); err != nil {
		return err
	}

	fmt.Printf("Added goal: %s (%s, targets %d/%d/%d)\n",
		goal.Title, goal.Type, goal.TargetEasy, goal.TargetHard, goal.TargetInsane)
	return nil
}

// runGoalForm collects goal fields interactively.
func runGoalForm(goal *models.Goal) error {
	easy := strconv.Itoa(constants.DefaultTargetEasy)
	hard := strconv.Itoa(constants.DefaultTargetHard)
	insane := strconv.Itoa(constants.DefaultTargetInsane)

	if goal.Type == "" {
		goal.Type = constants.GoalCheckIn
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&goal.Title).
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
				Value(&goal.Type),
			huh.NewInput().
				Title("Easy target").
				Value(&easy).
				Validate(validateTarget),
			huh.NewInput().
				Title("Hard target").
				Value(&hard).
				Validate(validateTarget),
			huh.NewInput().
				Title("Insane target").
				Value(&insane).
				Validate(validateTarget),
			huh.NewInput().
				Title("Unit (accumulation only, e.g. words, km)").
				Value(&goal.Unit),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		return err
	}

	goal.TargetEasy, _ = strconv.Atoi(easy)
	goal.TargetHard, _ = strconv.Atoi(hard)
	goal.TargetInsane, _ = strconv.Atoi(insane)
	return nil
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

type GoalListCmd struct{}

func (c *GoalListCmd) Run(ctx *Context) error {
	goals, err := ctx.Store.LoadGoals()
	if err != nil {
		return err
	}

	if len(goals) == 0 {
		fmt.Println("No goals defined.")
		return nil
	}

	for _, g := range goals {
		fmt.Printf("%s: %s, targets %d/%d/%d\n",
			g.Title, describeGoal(g), g.TargetEasy, g.TargetHard, g.TargetInsane)
	}

	return nil
}

type GoalDeleteCmd struct {
	Title string `arg:"" help:"Goal title."`
}

func (c *GoalDeleteCmd) Run(ctx *Context) error {
	goals, err := ctx.Store.LoadGoals()
	if err != nil {
		return err
	}

	goal, err := findGoal(goals, c.Title)
	if err != nil {
		return err
	}

	kept := make([]models.Goal, 0, len(goals)-1)
	for _, g := range goals {
		if g.ID != goal.ID {
			kept = append(kept, g)
		}
	}

	if err := ctx.Store.SaveGoals(kept); err != nil {
		return err
	}

	// Historical day values recorded under the deleted id stay in storage;
	// the aggregator just stops reporting them.
	fmt.Printf("Deleted goal: %s\n", goal.Title)
	return nil
}
