package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tridiary/tridiary/internal/constants"
	"github.com/tridiary/tridiary/internal/models"
	"github.com/tridiary/tridiary/internal/stats"
	"github.com/tridiary/tridiary/internal/utils"
)

const (
	barWidth   = 24
	trendMin   = 18.0
	trendMax   = 30.0
	trendWidth = 32
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case StateAddGoal:
		return docStyle.Render("New goal\n\n" + m.form.View())
	case StateSetBedtime:
		return docStyle.Render("Bedtime for " + m.date + "\n\n" + m.form.View())
	case StateConfirmDelete:
		return docStyle.Render("Delete this goal? Logged day values will remain,\nbut the progress bar will disappear. (y/n)")
	}

	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.state {
	case StateDiary:
		b.WriteString(m.renderDiary())
	case StateGoals:
		b.WriteString(m.renderGoals())
	case StateStats:
		b.WriteString(m.renderStats())
	}

	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status))
	}

	b.WriteString("\n" + m.help.View(m.keys))

	return docStyle.Render(b.String())
}

func (m Model) renderTabs() string {
	names := []string{"Diary", "Goals", "Stats"}
	states := []SessionState{StateDiary, StateGoals, StateStats}

	tabs := make([]string, len(names))
	for i, name := range names {
		if states[i] == m.state {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = inactiveTabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderDiary() string {
	var b strings.Builder

	header := dateStyle.Render(m.date)
	if m.date == utils.Today() {
		header += mutedStyle.Render(" (today)")
	}
	b.WriteString(header + "\n")

	if m.entry.BedTime != nil {
		b.WriteString(bedtimeStyle.Render("🌙 bedtime "+utils.FormatClock(*m.entry.BedTime)) + "\n")
	} else {
		b.WriteString(mutedStyle.Render("🌙 bedtime not recorded") + "\n")
	}
	b.WriteString(mutedStyle.Render("day ends at 04:00") + "\n\n")

	b.WriteString(m.editor.View())

	return b.String()
}

func (m Model) renderGoals() string {
	if len(m.goals) == 0 {
		return mutedStyle.Render("No goals set yet. Press 'a' to add one.")
	}

	var b strings.Builder
	b.WriteString(dateStyle.Render("Daily goals for "+m.date) + "\n\n")

	for i, g := range m.goals {
		cursor := "  "
		if i == m.goalCursor {
			cursor = cursorStyle.Render("> ")
		}

		val := m.entry.Goals[g.ID]
		var line string
		if g.Type == constants.GoalCheckIn {
			mark := mutedStyle.Render("[ ]")
			if val > 0 {
				mark = checkedStyle.Render("[✓]")
			}
			line = fmt.Sprintf("%s %s", mark, g.Title)
		} else {
			unit := g.Unit
			if unit == "" {
				unit = "units"
			}
			line = fmt.Sprintf("%3d %s  %s", val, unit, g.Title)
		}

		b.WriteString(cursor + line + "\n")
	}

	return b.String()
}

func (m Model) renderStats() string {
	var b strings.Builder

	b.WriteString(dateStyle.Render("Goal progress") + "\n\n")
	if len(m.goals) == 0 {
		b.WriteString(mutedStyle.Render("No goals defined.") + "\n")
	}
	for _, g := range m.goals {
		b.WriteString(m.renderProgress(g, m.statsData.Progress[g.ID]) + "\n")
	}

	b.WriteString("\n" + dateStyle.Render("Bedtime trend (last 14 days)") + "\n\n")
	plotted := false
	for _, p := range m.statsData.Bedtimes {
		if p.Value != nil {
			plotted = true
		}
	}
	if !plotted {
		b.WriteString(mutedStyle.Render("Not enough bedtime data yet.") + "\n")
		return b.String()
	}

	for _, p := range m.statsData.Bedtimes {
		b.WriteString(renderTrend(p) + "\n")
	}
	b.WriteString(fmt.Sprintf("        %s%s%s\n", stats.AxisLabel(trendMin),
		strings.Repeat(" ", trendWidth-10), stats.AxisLabel(trendMax)))

	return b.String()
}

func (m Model) renderProgress(g models.Goal, current int) string {
	frac := stats.FillFraction(g, current)
	filled := int(math.Round(frac * barWidth))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	var style lipgloss.Style
	switch stats.TierFor(g, current) {
	case constants.TierInsane:
		style = insaneBarStyle
	case constants.TierHard:
		style = hardBarStyle
	default:
		style = easyBarStyle
	}

	return fmt.Sprintf("  %-16s %s %d/%d %s",
		truncate(g.Title, 16), style.Render(bar), current, g.TargetInsane, g.Unit)
}

func renderTrend(p stats.BedtimePoint) string {
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
	return prefix + strings.Repeat(" ", pos) + "●" +
		strings.Repeat(" ", trendWidth-pos) + mutedStyle.Render(p.Label)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
