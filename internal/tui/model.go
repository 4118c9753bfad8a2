package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/tridiary/tridiary/internal/autosave"
	"github.com/tridiary/tridiary/internal/constants"
	"github.com/tridiary/tridiary/internal/models"
	"github.com/tridiary/tridiary/internal/stats"
	"github.com/tridiary/tridiary/internal/storage"
	"github.com/tridiary/tridiary/internal/utils"
)

type SessionState int

const (
	StateDiary SessionState = iota
	StateGoals
	StateStats
	StateAddGoal
	StateSetBedtime
	StateConfirmDelete
)

// GoalFormModel holds the string-typed fields backing the add-goal form.
type GoalFormModel struct {
	Title  string
	Type   constants.GoalType
	Easy   string
	Hard   string
	Insane string
	Unit   string
}

// Model is the whole application state: the current diary date, the goal
// list, and the derived stats live here and nowhere else.
type Model struct {
	store storage.Provider
	saver *autosave.Saver

	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model

	date  string
	entry models.DiaryEntry
	goals []models.Goal

	editor     textarea.Model
	goalCursor int
	statsData  stats.Stats

	form         *huh.Form
	goalForm     *GoalFormModel
	bedtimeInput string
	goalToDelete string

	status   string
	width    int
	height   int
	quitting bool
}

func NewModel(store storage.Provider) Model {
	today := utils.Today()

	entry, err := store.GetEntry(today)
	if err != nil {
		entry = models.NewEntry(today)
	}

	goals, err := store.LoadGoals()
	if err != nil {
		goals = []models.Goal{}
	}

	editor := textarea.New()
	editor.Placeholder = "How was your day?"
	editor.SetValue(entry.Content)
	editor.Focus()
	editor.CharLimit = 0

	return Model{
		store: store,
		saver: autosave.New(constants.AutosaveDelay, store.SaveEntry),
		state: StateDiary,
		keys:  DefaultKeyMap(),
		help:  help.New(),
		date:  today,
		entry: entry,
		goals: goals,

		editor: editor,
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// loadDate flushes any pending write, then loads the entry for the date.
func (m *Model) loadDate(date string) {
	m.saver.Flush()

	entry, err := m.store.GetEntry(date)
	if err != nil {
		entry = models.NewEntry(date)
	}

	m.date = date
	m.entry = entry
	m.editor.SetValue(entry.Content)
}

func (m *Model) refreshStats() {
	m.saver.Flush()

	entries, err := m.store.LoadEntries()
	if err != nil {
		entries = map[string]models.DiaryEntry{}
	}
	m.statsData = stats.Compute(entries, m.goals)
}
