package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/tridiary/tridiary/internal/constants"
	"github.com/tridiary/tridiary/internal/models"
)

func newTestJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "tridiary.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}
	return store
}

func TestJSONStoreInitTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tridiary.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	if err := store.Init(); err == nil {
		t.Error("expected second Init to fail")
	}
}

func TestJSONStoreGetEntryDefaultHasNoSideEffect(t *testing.T) {
	store := newTestJSONStore(t)

	entry, err := store.GetEntry("2024-01-01")
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}

	want := models.DiaryEntry{Date: "2024-01-01", Goals: models.DailyLog{}}
	if !reflect.DeepEqual(entry, want) {
		t.Errorf("default entry = %+v, want %+v", entry, want)
	}

	entries, err := store.LoadEntries()
	if err != nil {
		t.Fatalf("LoadEntries failed: %v", err)
	}
	if _, ok := entries["2024-01-01"]; ok {
		t.Error("reading a missing entry must not persist it")
	}
}

func TestJSONStoreSaveEntryIdempotent(t *testing.T) {
	store := newTestJSONStore(t)

	entry := models.NewEntry("2024-01-01")
	entry.Content = "a quiet day"
	entry.Goals["g1"] = 3

	if err := store.SaveEntry(entry); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}
	first, err := os.ReadFile(store.GetConfigPath())
	if err != nil {
		t.Fatalf("failed to read store file: %v", err)
	}

	if err := store.SaveEntry(entry); err != nil {
		t.Fatalf("second SaveEntry failed: %v", err)
	}
	second, err := os.ReadFile(store.GetConfigPath())
	if err != nil {
		t.Fatalf("failed to read store file: %v", err)
	}

	if string(first) != string(second) {
		t.Error("saving the same entry twice must leave storage identical")
	}
}

func TestJSONStoreSaveEntryUpserts(t *testing.T) {
	store := newTestJSONStore(t)

	entry := models.NewEntry("2024-01-01")
	entry.Content = "first draft"
	if err := store.SaveEntry(entry); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}

	entry.Content = "second draft"
	if err := store.SaveEntry(entry); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}

	entries, err := store.LoadEntries()
	if err != nil {
		t.Fatalf("LoadEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entry count = %d, want 1 (no duplicate dates)", len(entries))
	}
	if entries["2024-01-01"].Content != "second draft" {
		t.Errorf("content = %q, want last write to win", entries["2024-01-01"].Content)
	}
}

func TestJSONStoreRoundTripsPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tridiary.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}

	goals := []models.Goal{{
		ID:           "g1",
		Title:        "Write",
		Type:         constants.GoalAccumulation,
		TargetEasy:   10,
		TargetHard:   50,
		TargetInsane: 100,
		Unit:         "words",
		CreatedAt:    time.Now(),
	}}
	if err := store.SaveGoals(goals); err != nil {
		t.Fatalf("SaveGoals failed: %v", err)
	}

	bt := time.Date(2024, 1, 1, 23, 30, 0, 0, time.Local)
	entry := models.NewEntry("2024-01-01")
	entry.BedTime = &bt
	if err := store.SaveEntry(entry); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}

	if err := store.SaveSleepSession(models.SleepSession{StartTime: bt, IsActive: true}); err != nil {
		t.Fatalf("SaveSleepSession failed: %v", err)
	}

	// Fresh store over the same file sees everything.
	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("failed to reload store: %v", err)
	}

	loadedGoals, err := reopened.LoadGoals()
	if err != nil {
		t.Fatalf("LoadGoals failed: %v", err)
	}
	if len(loadedGoals) != 1 || loadedGoals[0].Title != "Write" {
		t.Errorf("goals did not round-trip: %+v", loadedGoals)
	}

	loaded, err := reopened.GetEntry("2024-01-01")
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if loaded.BedTime == nil || !loaded.BedTime.Equal(bt) {
		t.Errorf("bedtime did not round-trip: %v", loaded.BedTime)
	}

	session, err := reopened.GetSleepSession()
	if err != nil {
		t.Fatalf("GetSleepSession failed: %v", err)
	}
	if !session.IsActive || !session.StartTime.Equal(bt) {
		t.Errorf("sleep session did not round-trip: %+v", session)
	}
}

func TestJSONStoreCorruptFileYieldsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tridiary.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	store := NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load must not fail on corrupt data, got: %v", err)
	}

	goals, err := store.LoadGoals()
	if err != nil {
		t.Fatalf("LoadGoals failed: %v", err)
	}
	if len(goals) != 0 {
		t.Errorf("goals from corrupt store = %d, want 0", len(goals))
	}

	entries, err := store.LoadEntries()
	if err != nil {
		t.Fatalf("LoadEntries failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries from corrupt store = %d, want 0", len(entries))
	}
}

func TestJSONStoreMissingFileYieldsEmptyStore(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); err != nil {
		t.Fatalf("Load must not fail on a missing file, got: %v", err)
	}

	entries, err := store.LoadEntries()
	if err != nil {
		t.Fatalf("LoadEntries failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries from missing store = %d, want 0", len(entries))
	}
}

func TestJSONStoreEntryDayValuesNotAliased(t *testing.T) {
	store := newTestJSONStore(t)

	entry := models.NewEntry("2024-01-01")
	entry.Goals["g1"] = 1
	if err := store.SaveEntry(entry); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}

	// Caller edits after saving stay out of the stored record.
	entry.Goals["g1"] = 99
	loaded, err := store.GetEntry("2024-01-01")
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if loaded.Goals["g1"] != 1 {
		t.Errorf("stored value = %d, want the value at save time", loaded.Goals["g1"])
	}

	// Edits to a loaded record stay out of storage until saved.
	loaded.Goals["g1"] = 50
	again, err := store.GetEntry("2024-01-01")
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if again.Goals["g1"] != 1 {
		t.Errorf("stored value = %d, mutating a loaded entry must not write through", again.Goals["g1"])
	}
}

func TestJSONStoreDeleteGoalKeepsDayValues(t *testing.T) {
	store := newTestJSONStore(t)

	goals := []models.Goal{{ID: "g1", Title: "Run", Type: constants.GoalCheckIn}}
	if err := store.SaveGoals(goals); err != nil {
		t.Fatalf("SaveGoals failed: %v", err)
	}

	entry := models.NewEntry("2024-01-01")
	entry.Goals["g1"] = 1
	if err := store.SaveEntry(entry); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}

	// Deleting the goal is saving the list without it.
	if err := store.SaveGoals([]models.Goal{}); err != nil {
		t.Fatalf("SaveGoals failed: %v", err)
	}

	loaded, err := store.GetEntry("2024-01-01")
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if loaded.Goals["g1"] != 1 {
		t.Error("historical day values must survive goal deletion")
	}
}
