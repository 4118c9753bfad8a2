package cli

import (
	"fmt"
	"os"
	"strings"

	ps "github.com/mitchellh/go-ps"

	"github.com/tridiary/tridiary/internal/constants"
	"github.com/tridiary/tridiary/internal/validation"
)

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	healthy := true

	fmt.Printf("Storage path: %s\n", ctx.Store.GetConfigPath())

	goals, err := ctx.Store.LoadGoals()
	if err != nil {
		fmt.Printf("✗ goals: %v\n", err)
		healthy = false
	} else {
		fmt.Printf("✓ goals: %d defined\n", len(goals))
	}

	entries, err := ctx.Store.LoadEntries()
	if err != nil {
		fmt.Printf("✗ entries: %v\n", err)
		healthy = false
	} else {
		fmt.Printf("✓ entries: %d diary days\n", len(entries))
	}

	// Inverted tiers are stored as-is; surface them here so the user knows
	// why a progress bar looks odd.
	for _, conflict := range validation.ValidateGoals(goals) {
		fmt.Printf("⚠ %s\n", conflict.Description)
	}

	// The store is single-writer within one session. A second running
	// process is worth a warning even though nothing coordinates access.
	if others, err := otherInstances(); err == nil && len(others) > 0 {
		fmt.Printf("⚠ another %s process appears to be running (pid %s)\n",
			constants.AppName, strings.Join(others, ", "))
	}

	if !healthy {
		return fmt.Errorf("doctor found problems")
	}

	fmt.Println("All checks passed.")
	return nil
}

func otherInstances() ([]string, error) {
	procs, err := ps.Processes()
	if err != nil {
		return nil, err
	}

	var pids []string
	for _, p := range procs {
		if p.Pid() == os.Getpid() {
			continue
		}
		if strings.HasPrefix(p.Executable(), constants.AppName) {
			pids = append(pids, fmt.Sprintf("%d", p.Pid()))
		}
	}
	return pids, nil
}
