package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tridiary/tridiary/internal/constants"
	"github.com/tridiary/tridiary/internal/models"
	"github.com/tridiary/tridiary/internal/stats"
)

const (
	barWidth = 30

	// Trend plotting range: 6 PM through 6 AM the next day, matching the
	// folded bedtime scale.
	trendMin   = 18.0
	trendMax   = 30.0
	trendWidth = 36
)

var (
	easyBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	hardBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	insaneBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle    = lipgloss.NewStyle().Bold(true)
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	entries, err := ctx.Store.LoadEntries()
	if err != nil {
		return err
	}

	goals, err := ctx.Store.LoadGoals()
	if err != nil {
		return err
	}

	result := stats.Compute(entries, goals)

	fmt.Println(headerStyle.Render("Goal progress"))
	if len(goals) == 0 {
		fmt.Println(mutedStyle.Render("  No goals defined."))
	}
	for _, g := range goals {
		fmt.Println(RenderProgressBar(g, result.Progress[g.ID]))
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("Bedtime trend (last 14 days)"))
	if !hasBedtimes(result.Bedtimes) {
		fmt.Println(mutedStyle.Render("  Not enough bedtime data yet."))
		return nil
	}
	for _, p := range result.Bedtimes {
		fmt.Println(renderTrendLine(p))
	}
	fmt.Printf("%s%s%s\n", strings.Repeat(" ", 8), stats.AxisLabel(trendMin),
		strings.Repeat(" ", trendWidth-10)+stats.AxisLabel(trendMax))

	return nil
}

func hasBedtimes(points []stats.BedtimePoint) bool {
	for _, p := range points {
		if p.Value != nil {
			return true
		}
	}
	return false
}

// RenderProgressBar renders one goal as a colored bar with tier markers.
// The fill is always a fraction of the insane target, clamped at 100%; the
// color tells which band the progress is in.
func RenderProgressBar(g models.Goal, current int) string {
	frac := stats.FillFraction(g, current)
	filled := int(math.Round(frac * barWidth))

	bar := []rune(strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled))
	for _, marker := range []int{g.TargetEasy, g.TargetHard} {
		pos := markerPos(marker, g.TargetInsane)
		if pos >= 0 && pos < barWidth {
			bar[pos] = '┆'
		}
	}

	var style lipgloss.Style
	switch stats.TierFor(g, current) {
	case constants.TierInsane:
		style = insaneBarStyle
	case constants.TierHard:
		style = hardBarStyle
	default:
		style = easyBarStyle
	}

	label := fmt.Sprintf("%d / %d %s", current, g.TargetInsane, g.Unit)
	return fmt.Sprintf("  %-20s %s %s", g.Title, style.Render(string(bar)), strings.TrimSpace(label))
}

func markerPos(target, insane int) int {
	if insane <= 0 {
		return -1
	}
	return int(float64(target) / float64(insane) * barWidth)
}

// renderTrendLine plots one date as a dot on the evening-to-dawn scale.
// Dates without a bedtime stay in the listing as gaps so spacing is uniform.
func renderTrendLine(p stats.BedtimePoint) string {
	prefix := fmt.Sprintf("  %s ", p.Date[5:]) // MM-DD
	if p.Value == nil {
		return prefix + mutedStyle.Render("·")
	}

	v := *p.Value
	if v < trendMin {
		v = trendMin
	}
	if v > trendMax {
		v = trendMax
	}

	pos := int((v - trendMin) / (trendMax - trendMin) * float64(trendWidth-1))
	line := strings.Repeat(" ", pos) + "●"
	return prefix + line + strings.Repeat(" ", trendWidth-pos) + mutedStyle.Render(p.Label)
}
