package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/tridiary/tridiary/internal/cli"
	"github.com/tridiary/tridiary/internal/constants"
	apperrors "github.com/tridiary/tridiary/internal/errors"
	"github.com/tridiary/tridiary/internal/logger"
	"github.com/tridiary/tridiary/internal/reflection"
	"github.com/tridiary/tridiary/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path. A .json extension selects the JSON backend, anything else SQLite." type:"path" default:"~/.config/tridiary/tridiary.db"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init    cli.InitCmd    `cmd:"" help:"Initialize tridiary storage."`
	Tui     cli.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Show    cli.ShowCmd    `cmd:"" help:"Show a diary entry."`
	Write   cli.WriteCmd   `cmd:"" help:"Write diary content for a day."`
	Log     cli.LogCmd     `cmd:"" help:"Record a goal value for a day."`
	Stats   cli.StatsCmd   `cmd:"" help:"Show goal progress and the bedtime trend."`
	Reflect cli.ReflectCmd `cmd:"" help:"Generate a reflection for a day."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Goal    cli.GoalCmd    `cmd:"" help:"Manage goals."`
	Sleep   cli.SleepCmd   `cmd:"" help:"Record bedtime."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Tri-level habit and diary tracker. Days run 4 AM to 4 AM."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintln(os.Stderr, apperrors.Formatf("failed to initialize logging: %v", err))
		os.Exit(1)
	}

	// Backend chosen by extension; both present the same whole-record
	// adapter to the rest of the program.
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store:     store,
		Reflector: reflection.Disabled{},
	}

	// Load the store before running the command (init handles its own setup)
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
		defer store.Close()
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}
