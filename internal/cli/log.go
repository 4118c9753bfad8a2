package cli

import (
	"fmt"

	"github.com/tridiary/tridiary/internal/constants"
)

type LogCmd struct {
	Goal  string `arg:"" help:"Goal title."`
	Value *int   `arg:"" optional:"" help:"Day value. Check-in goals toggle when omitted."`
	Date  string `help:"Diary date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *LogCmd) Run(ctx *Context) error {
	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	goals, err := ctx.Store.LoadGoals()
	if err != nil {
		return err
	}

	goal, err := findGoal(goals, c.Goal)
	if err != nil {
		return err
	}

	entry, err := ctx.Store.GetEntry(date)
	if err != nil {
		return err
	}

	var value int
	switch {
	case c.Value != nil:
		value = *c.Value
	case goal.Type == constants.GoalCheckIn:
		// Toggle: marked becomes unmarked and vice versa.
		if entry.Goals[goal.ID] > 0 {
			value = 0
		} else {
			value = 1
		}
	default:
		return fmt.Errorf("accumulation goal %q needs a value", goal.Title)
	}

	entry.Goals[goal.ID] = value
	if err := ctx.Store.SaveEntry(entry); err != nil {
		return err
	}

	switch goal.Type {
	case constants.GoalCheckIn:
		if value > 0 {
			fmt.Printf("Checked in %q for %s\n", goal.Title, date)
		} else {
			fmt.Printf("Unchecked %q for %s\n", goal.Title, date)
		}
	default:
		fmt.Printf("Logged %d %s for %q on %s\n", value, goal.Unit, goal.Title, date)
	}

	return nil
}
