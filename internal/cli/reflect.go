package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/tridiary/tridiary/internal/reflection"
)

type ReflectCmd struct {
	Date string `arg:"" optional:"" help:"Diary date in YYYY-MM-DD format (default: today)."`
}

func (c *ReflectCmd) Run(ctx *Context) error {
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

	text, err := ctx.Reflector.Generate(context.Background(), entry, goals)
	if errors.Is(err, reflection.ErrDisabled) {
		fmt.Println("Reflection generation is disabled in this build.")
		return nil
	}
	if err != nil {
		// Generator failures are silent: the entry keeps whatever
		// reflection it already had.
		fmt.Println("No reflection generated.")
		return nil
	}

	entry.AIReflection = text
	if err := ctx.Store.SaveEntry(entry); err != nil {
		return err
	}

	fmt.Println(text)
	return nil
}
