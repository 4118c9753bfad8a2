package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/tridiary/tridiary/internal/constants"
	"github.com/tridiary/tridiary/internal/logger"
	"github.com/tridiary/tridiary/internal/models"
	"github.com/tridiary/tridiary/internal/utils"
	"github.com/tridiary/tridiary/internal/validation"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(msg.Width - 6)
		m.editor.SetHeight(msg.Height - 12)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.saver.Flush()
			m.quitting = true
			return m, tea.Quit
		}

		// Tab switching applies everywhere except inside a form.
		if m.state == StateDiary || m.state == StateGoals || m.state == StateStats {
			switch {
			case key.Matches(msg, m.keys.Tab):
				return m.switchTab(1), nil
			case key.Matches(msg, m.keys.ShiftTab):
				return m.switchTab(-1), nil
			case key.Matches(msg, m.keys.Help):
				m.help.ShowAll = !m.help.ShowAll
				return m, nil
			}
		}
	}

	switch m.state {
	case StateDiary:
		return m.updateDiary(msg)
	case StateGoals:
		return m.updateGoals(msg)
	case StateStats:
		return m.updateStats(msg)
	case StateAddGoal:
		return m.updateGoalForm(msg)
	case StateSetBedtime:
		return m.updateBedtimeForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m Model) switchTab(dir int) Model {
	// Pending edits belong to the page being left.
	m.saver.Flush()
	m.status = ""

	tabs := []SessionState{StateDiary, StateGoals, StateStats}
	for i, s := range tabs {
		if s == m.state {
			m.state = tabs[(i+len(tabs)+dir)%len(tabs)]
			break
		}
	}

	if m.state == StateStats {
		m.refreshStats()
	}
	return m
}

func (m Model) updateDiary(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.PrevDay):
			if prev, err := utils.ShiftDate(m.date, -1); err == nil {
				m.loadDate(prev)
				m.status = ""
			}
			return m, nil

		case key.Matches(keyMsg, m.keys.NextDay):
			if next, err := utils.ShiftDate(m.date, 1); err == nil {
				m.loadDate(next)
				m.status = ""
			}
			return m, nil

		case key.Matches(keyMsg, m.keys.Save):
			m.entry.Content = m.editor.Value()
			if err := m.saver.SaveNow(m.entry); err != nil {
				m.status = "save failed: " + err.Error()
			} else {
				m.status = "saved"
			}
			return m, nil

		case key.Matches(keyMsg, m.keys.SleepNow):
			return m.recordBedtimeNow(), nil

		case key.Matches(keyMsg, m.keys.EditTime):
			m.previousState = m.state
			m.state = StateSetBedtime
			if m.entry.BedTime != nil {
				m.bedtimeInput = utils.FormatClock(*m.entry.BedTime)
			} else {
				m.bedtimeInput = ""
			}
			m.form = NewBedtimeForm(&m.bedtimeInput)
			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)

	if content := m.editor.Value(); content != m.entry.Content {
		m.entry.Content = content
		m.saver.Schedule(m.entry)
		m.status = ""
	}

	return m, cmd
}

// recordBedtimeNow handles the "sleep now" action: immediate save, no
// debounce, plus a stamp on the active sleep session.
func (m Model) recordBedtimeNow() Model {
	now := time.Now()
	today := utils.Today()
	if m.date != today {
		m.status = "bedtime-now only applies to today (" + today + ")"
		return m
	}

	m.entry.Content = m.editor.Value()
	m.entry.BedTime = &now
	if err := m.saver.SaveNow(m.entry); err != nil {
		m.status = "save failed: " + err.Error()
		return m
	}

	if err := m.store.SaveSleepSession(models.SleepSession{StartTime: now, IsActive: true}); err != nil {
		logger.Warn("failed to record sleep session", "error", err)
	}
	m.status = "bedtime " + utils.FormatClock(now) + " recorded"
	return m
}

func (m Model) updateGoals(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.goalCursor > 0 {
			m.goalCursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.goalCursor < len(m.goals)-1 {
			m.goalCursor++
		}

	case key.Matches(keyMsg, m.keys.Toggle):
		if g, ok := m.selectedGoal(); ok && g.Type == constants.GoalCheckIn {
			if m.entry.Goals[g.ID] > 0 {
				m.entry.Goals[g.ID] = 0
			} else {
				m.entry.Goals[g.ID] = 1
			}
			m.saver.Schedule(m.entry)
		}

	case key.Matches(keyMsg, m.keys.Increment):
		if g, ok := m.selectedGoal(); ok && g.Type == constants.GoalAccumulation {
			m.entry.Goals[g.ID]++
			m.saver.Schedule(m.entry)
		}

	case key.Matches(keyMsg, m.keys.Decrement):
		if g, ok := m.selectedGoal(); ok && g.Type == constants.GoalAccumulation {
			if m.entry.Goals[g.ID] > 0 {
				m.entry.Goals[g.ID]--
				m.saver.Schedule(m.entry)
			}
		}

	case key.Matches(keyMsg, m.keys.Add):
		m.previousState = m.state
		m.state = StateAddGoal
		m.goalForm = defaultGoalForm()
		m.form = NewGoalForm(m.goalForm)
		return m, m.form.Init()

	case key.Matches(keyMsg, m.keys.Delete):
		if g, ok := m.selectedGoal(); ok {
			m.goalToDelete = g.ID
			m.previousState = m.state
			m.state = StateConfirmDelete
		}
	}

	return m, nil
}

func (m Model) selectedGoal() (models.Goal, bool) {
	if m.goalCursor < 0 || m.goalCursor >= len(m.goals) {
		return models.Goal{}, false
	}
	return m.goals[m.goalCursor], true
}

func (m Model) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "r" {
		m.refreshStats()
		m.status = "refreshed"
	}
	return m, nil
}

func (m Model) updateGoalForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateAborted {
		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	if m.form.State == huh.StateCompleted {
		goal := models.Goal{
			ID:        uuid.New().String(),
			Title:     m.goalForm.Title,
			Type:      m.goalForm.Type,
			Unit:      m.goalForm.Unit,
			CreatedAt: time.Now(),
		}
		goal.TargetEasy, _ = strconv.Atoi(m.goalForm.Easy)
		goal.TargetHard, _ = strconv.Atoi(m.goalForm.Hard)
		goal.TargetInsane, _ = strconv.Atoi(m.goalForm.Insane)
		if goal.Type != constants.GoalAccumulation {
			goal.Unit = ""
		}

		res := validation.ValidateGoal(goal)
		if err := res.Err(); err != nil {
			m.status = err.Error()
		} else {
			m.saver.Flush()
			m.goals = append(m.goals, goal)
			if err := m.store.SaveGoals(m.goals); err != nil {
				m.status = "save failed: " + err.Error()
			} else {
				m.status = "added goal " + goal.Title
				if warnings := res.FormatWarnings(); warnings != "" {
					m.status = warnings
				}
			}
		}

		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	return m, cmd
}

func (m Model) updateBedtimeForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateAborted {
		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	if m.form.State == huh.StateCompleted {
		bedTime, err := utils.ResolveBedtime(m.date, m.bedtimeInput)
		if err != nil {
			m.status = err.Error()
		} else {
			m.entry.Content = m.editor.Value()
			m.entry.BedTime = &bedTime
			if err := m.saver.SaveNow(m.entry); err != nil {
				m.status = "save failed: " + err.Error()
			} else {
				m.status = "bedtime " + utils.FormatClock(bedTime) + " recorded"
			}
		}

		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		kept := make([]models.Goal, 0, len(m.goals))
		for _, g := range m.goals {
			if g.ID != m.goalToDelete {
				kept = append(kept, g)
			}
		}
		m.saver.Flush()
		// Day values recorded under the deleted id stay in storage.
		if err := m.store.SaveGoals(kept); err != nil {
			m.status = "delete failed: " + err.Error()
		} else {
			m.goals = kept
			if m.goalCursor >= len(m.goals) && m.goalCursor > 0 {
				m.goalCursor--
			}
			m.status = "goal deleted"
		}
		m.state = m.previousState

	case "n", "N", "esc":
		m.state = m.previousState
		m.status = ""
	}

	return m, nil
}
