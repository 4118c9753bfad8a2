package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/tridiary/tridiary/internal/models"
	"github.com/tridiary/tridiary/internal/utils"
)

// stubStore is an in-memory Provider for exercising model actions without a
// real backend.
type stubStore struct {
	entries  map[string]models.DiaryEntry
	goals    []models.Goal
	session  models.SleepSession
	sleepErr error
}

func newStubStore() *stubStore {
	return &stubStore{entries: map[string]models.DiaryEntry{}}
}

func (s *stubStore) Init() error  { return nil }
func (s *stubStore) Load() error  { return nil }
func (s *stubStore) Close() error { return nil }

func (s *stubStore) LoadGoals() ([]models.Goal, error)   { return s.goals, nil }
func (s *stubStore) SaveGoals(goals []models.Goal) error { s.goals = goals; return nil }

func (s *stubStore) LoadEntries() (map[string]models.DiaryEntry, error) { return s.entries, nil }

func (s *stubStore) GetEntry(date string) (models.DiaryEntry, error) {
	if e, ok := s.entries[date]; ok {
		return e, nil
	}
	return models.NewEntry(date), nil
}

func (s *stubStore) SaveEntry(entry models.DiaryEntry) error {
	s.entries[entry.Date] = entry
	return nil
}

func (s *stubStore) GetSleepSession() (models.SleepSession, error) { return s.session, nil }

func (s *stubStore) SaveSleepSession(session models.SleepSession) error {
	if s.sleepErr != nil {
		return s.sleepErr
	}
	s.session = session
	return nil
}

func (s *stubStore) GetConfigPath() string { return "" }

func TestRecordBedtimeNowStampsSession(t *testing.T) {
	store := newStubStore()

	m := NewModel(store)
	m = m.recordBedtimeNow()

	if !strings.Contains(m.status, "bedtime") {
		t.Errorf("status = %q, want a recorded bedtime", m.status)
	}
	if !store.session.IsActive {
		t.Error("expected an active sleep session")
	}
}

func TestRecordBedtimeNowKeepsBedtimeWhenSessionSaveFails(t *testing.T) {
	store := newStubStore()
	store.sleepErr = errors.New("disk full")

	m := NewModel(store)
	m = m.recordBedtimeNow()

	if !strings.Contains(m.status, "bedtime") {
		t.Errorf("status = %q, the bedtime save succeeded and should be reported", m.status)
	}

	entry, err := store.GetEntry(utils.Today())
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if entry.BedTime == nil {
		t.Error("bedtime must be saved even when the session stamp fails")
	}
}
