package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/tridiary/tridiary/internal/constants"
	"github.com/tridiary/tridiary/internal/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "tridiary.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreLoadWithoutInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("expected Load to fail before init")
	}
}

func TestSQLiteStoreGoalsRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	created := time.Now().Truncate(time.Second)
	goals := []models.Goal{
		{
			ID:           "g1",
			Title:        "Write",
			Type:         constants.GoalAccumulation,
			TargetEasy:   10,
			TargetHard:   50,
			TargetInsane: 100,
			Unit:         "words",
			CreatedAt:    created,
		},
		{
			ID:           "g2",
			Title:        "Run",
			Type:         constants.GoalCheckIn,
			TargetEasy:   5,
			TargetHard:   20,
			TargetInsane: 60,
			CreatedAt:    created.Add(time.Second),
		},
	}

	if err := store.SaveGoals(goals); err != nil {
		t.Fatalf("SaveGoals failed: %v", err)
	}

	loaded, err := store.LoadGoals()
	if err != nil {
		t.Fatalf("LoadGoals failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("goal count = %d, want 2", len(loaded))
	}
	if loaded[0].ID != "g1" || loaded[1].ID != "g2" {
		t.Errorf("goals not ordered by creation: %s, %s", loaded[0].ID, loaded[1].ID)
	}
	if loaded[0].Unit != "words" || loaded[0].TargetInsane != 100 {
		t.Errorf("goal fields did not round-trip: %+v", loaded[0])
	}

	// Saving a shorter list replaces the record wholesale.
	if err := store.SaveGoals(goals[:1]); err != nil {
		t.Fatalf("SaveGoals failed: %v", err)
	}
	loaded, err = store.LoadGoals()
	if err != nil {
		t.Fatalf("LoadGoals failed: %v", err)
	}
	if len(loaded) != 1 {
		t.Errorf("goal count after replace = %d, want 1", len(loaded))
	}
}

func TestSQLiteStoreGetEntryDefaultHasNoSideEffect(t *testing.T) {
	store := newTestSQLiteStore(t)

	entry, err := store.GetEntry("2024-01-01")
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if entry.Date != "2024-01-01" || entry.Content != "" || len(entry.Goals) != 0 {
		t.Errorf("default entry = %+v", entry)
	}

	entries, err := store.LoadEntries()
	if err != nil {
		t.Fatalf("LoadEntries failed: %v", err)
	}
	if len(entries) != 0 {
		t.Error("reading a missing entry must not persist it")
	}
}

func TestSQLiteStoreEntryRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	bt := time.Date(2024, 1, 2, 1, 15, 0, 0, time.Local)
	entry := models.NewEntry("2024-01-01")
	entry.Content = "stayed up too late"
	entry.BedTime = &bt
	entry.Goals["g1"] = 4
	entry.AIReflection = "rest more"

	if err := store.SaveEntry(entry); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}

	// Upsert: same date, new content.
	entry.Content = "stayed up far too late"
	if err := store.SaveEntry(entry); err != nil {
		t.Fatalf("second SaveEntry failed: %v", err)
	}

	loaded, err := store.GetEntry("2024-01-01")
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if loaded.Content != "stayed up far too late" {
		t.Errorf("content = %q, want last write to win", loaded.Content)
	}
	if loaded.BedTime == nil || !loaded.BedTime.Equal(bt) {
		t.Errorf("bedtime did not round-trip: %v", loaded.BedTime)
	}
	if loaded.Goals["g1"] != 4 {
		t.Errorf("day values did not round-trip: %+v", loaded.Goals)
	}
	if loaded.AIReflection != "rest more" {
		t.Errorf("reflection did not round-trip: %q", loaded.AIReflection)
	}

	entries, err := store.LoadEntries()
	if err != nil {
		t.Fatalf("LoadEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("entry count = %d, want 1 (no duplicate dates)", len(entries))
	}
}

func TestSQLiteStoreSleepSessionRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)

	// Missing record is the empty default.
	session, err := store.GetSleepSession()
	if err != nil {
		t.Fatalf("GetSleepSession failed: %v", err)
	}
	if session.IsActive {
		t.Error("expected inactive default session")
	}

	start := time.Now().Truncate(time.Second)
	if err := store.SaveSleepSession(models.SleepSession{StartTime: start, IsActive: true}); err != nil {
		t.Fatalf("SaveSleepSession failed: %v", err)
	}

	session, err = store.GetSleepSession()
	if err != nil {
		t.Fatalf("GetSleepSession failed: %v", err)
	}
	if !session.IsActive || !session.StartTime.Equal(start) {
		t.Errorf("sleep session did not round-trip: %+v", session)
	}

	// Overwrite with the cleared session.
	if err := store.SaveSleepSession(models.SleepSession{}); err != nil {
		t.Fatalf("SaveSleepSession failed: %v", err)
	}
	session, err = store.GetSleepSession()
	if err != nil {
		t.Fatalf("GetSleepSession failed: %v", err)
	}
	if session.IsActive {
		t.Error("expected cleared session to be inactive")
	}
}
