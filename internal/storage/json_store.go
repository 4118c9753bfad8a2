package storage

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"github.com/tridiary/tridiary/internal/logger"
	"github.com/tridiary/tridiary/internal/models"
)

// Store is the on-disk layout of the JSON backend: three independently
// defaulted records in one self-describing document.
type Store struct {
	Version int                          `json:"version"`
	Goals   []models.Goal                `json:"goals"`
	Entries map[string]models.DiaryEntry `json:"entries"`
	Sleep   models.SleepSession          `json:"sleep_session"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = emptyStore()
	return s.save()
}

// Load reads the store from disk. A missing or unparsable file yields an
// empty store with a diagnostic log rather than an error: corrupt data
// silently resets, which is acceptable for a single-user local store.
func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.store = emptyStore()
			return nil
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		logger.Warn("storage file unparsable, starting empty", "path", s.path, "error", err)
		s.store = emptyStore()
		return nil
	}

	// Ensure collections are initialized
	if s.store.Goals == nil {
		s.store.Goals = []models.Goal{}
	}
	if s.store.Entries == nil {
		s.store.Entries = make(map[string]models.DiaryEntry)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func emptyStore() *Store {
	return &Store{
		Version: 1,
		Goals:   []models.Goal{},
		Entries: make(map[string]models.DiaryEntry),
	}
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) LoadGoals() ([]models.Goal, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	goals := make([]models.Goal, len(s.store.Goals))
	copy(goals, s.store.Goals)
	return goals, nil
}

func (s *JSONStore) SaveGoals(goals []models.Goal) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Goals = goals
	return s.save()
}

func (s *JSONStore) LoadEntries() (map[string]models.DiaryEntry, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	entries := make(map[string]models.DiaryEntry, len(s.store.Entries))
	for date, entry := range s.store.Entries {
		entries[date] = entry
	}
	return entries, nil
}

// GetEntry returns the stored entry for a date, or a fresh default. The
// default is not persisted until the caller saves it. The returned day-value
// map is a clone; mutating it never reaches the stored document until the
// caller saves.
func (s *JSONStore) GetEntry(date string) (models.DiaryEntry, error) {
	if s.store == nil {
		return models.DiaryEntry{}, fmt.Errorf("storage not loaded")
	}

	if entry, ok := s.store.Entries[date]; ok {
		entry.Goals = maps.Clone(entry.Goals)
		if entry.Goals == nil {
			entry.Goals = models.DailyLog{}
		}
		return entry, nil
	}
	return models.NewEntry(date), nil
}

// SaveEntry upserts the whole record by entry date (last-write-wins). The
// stored record keeps its own clone of the day-value map so later edits to
// the caller's map cannot alias the document being marshaled.
func (s *JSONStore) SaveEntry(entry models.DiaryEntry) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	entry.Goals = maps.Clone(entry.Goals)
	s.store.Entries[entry.Date] = entry
	return s.save()
}

func (s *JSONStore) GetSleepSession() (models.SleepSession, error) {
	if s.store == nil {
		return models.SleepSession{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Sleep, nil
}

func (s *JSONStore) SaveSleepSession(session models.SleepSession) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Sleep = session
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
