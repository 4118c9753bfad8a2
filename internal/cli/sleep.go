package cli

import (
	"fmt"
	"time"

	"github.com/tridiary/tridiary/internal/models"
	"github.com/tridiary/tridiary/internal/utils"
)

type SleepCmd struct {
	Now   SleepNowCmd   `cmd:"" help:"Record bedtime as right now." default:"1"`
	Set   SleepSetCmd   `cmd:"" help:"Record bedtime from a time of day."`
	Clear SleepClearCmd `cmd:"" help:"Clear the active sleep session."`
}

type SleepNowCmd struct{}

func (c *SleepNowCmd) Run(ctx *Context) error {
	now := time.Now()
	date := utils.DiaryDate(now)

	entry, err := ctx.Store.GetEntry(date)
	if err != nil {
		return err
	}

	entry.BedTime = &now
	if err := ctx.Store.SaveEntry(entry); err != nil {
		return err
	}

	// Track the active session alongside the bedtime.
	session := models.SleepSession{StartTime: now, IsActive: true}
	if err := ctx.Store.SaveSleepSession(session); err != nil {
		return err
	}

	fmt.Printf("Bedtime %s recorded for diary day %s. Good night!\n", utils.FormatClock(now), date)
	return nil
}

type SleepSetCmd struct {
	Time string `arg:"" help:"Time of day in HH:MM format."`
	Date string `help:"Diary date the bedtime belongs to (default: today)." default:""`
}

func (c *SleepSetCmd) Run(ctx *Context) error {
	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	// Times before 04:00 land on the calendar day after the diary-day label:
	// going to bed at 02:00 on diary day Jan 1 physically happens on Jan 2.
	bedTime, err := utils.ResolveBedtime(date, c.Time)
	if err != nil {
		return err
	}

	entry, err := ctx.Store.GetEntry(date)
	if err != nil {
		return err
	}

	entry.BedTime = &bedTime
	if err := ctx.Store.SaveEntry(entry); err != nil {
		return err
	}

	fmt.Printf("Bedtime %s recorded for diary day %s\n", utils.FormatClock(bedTime), date)
	return nil
}

type SleepClearCmd struct{}

func (c *SleepClearCmd) Run(ctx *Context) error {
	if err := ctx.Store.SaveSleepSession(models.SleepSession{}); err != nil {
		return err
	}

	fmt.Println("Sleep session cleared.")
	return nil
}
