package cli

import (
	"fmt"
	"strings"

	"github.com/tridiary/tridiary/internal/constants"
	"github.com/tridiary/tridiary/internal/utils"
)

type ShowCmd struct {
	Date string `arg:"" optional:"" help:"Diary date in YYYY-MM-DD format (default: today)."`
}

func (c *ShowCmd) Run(ctx *Context) error {
	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	entry, err := ctx.Store.GetEntry(date)
	if err != nil {
		return err
	}

	goals, err := ctx.Store.LoadGoals()
	if err != nil {
		return err
	}

	fmt.Printf("Diary day %s\n", entry.Date)

	if entry.BedTime != nil {
		fmt.Printf("Bedtime: %s\n", utils.FormatClock(*entry.BedTime))
	} else {
		fmt.Println("Bedtime: not recorded")
	}

	fmt.Println()
	if strings.TrimSpace(entry.Content) == "" {
		fmt.Println("(no diary content)")
	} else {
		fmt.Println(entry.Content)
	}

	if entry.AIReflection != "" {
		fmt.Printf("\nReflection: %s\n", entry.AIReflection)
	}

	if len(goals) > 0 {
		fmt.Println()
		for _, g := range goals {
			val := entry.Goals[g.ID]
			switch g.Type {
			case constants.GoalCheckIn:
				mark := "✗"
				if val > 0 {
					mark = "✓"
				}
				fmt.Printf("  [%s] %s\n", mark, g.Title)
			default:
				fmt.Printf("  %s: %d %s\n", g.Title, val, g.Unit)
			}
		}
	}

	return nil
}

type WriteCmd struct {
	Text   string `arg:"" help:"Diary content."`
	Date   string `help:"Diary date in YYYY-MM-DD format (default: today)." default:""`
	Append bool   `help:"Append to existing content instead of replacing it."`
}

func (c *WriteCmd) Run(ctx *Context) error {
	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	entry, err := ctx.Store.GetEntry(date)
	if err != nil {
		return err
	}

	if c.Append && entry.Content != "" {
		entry.Content = entry.Content + "\n" + c.Text
	} else {
		entry.Content = c.Text
	}

	if err := ctx.Store.SaveEntry(entry); err != nil {
		return err
	}

	fmt.Printf("Saved entry for %s\n", date)
	return nil
}
