package autosave

import (
	"sync"
	"testing"
	"time"

	"github.com/tridiary/tridiary/internal/models"
)

// recorder collects every save call so tests can assert on count and order.
type recorder struct {
	mu    sync.Mutex
	saved []models.DiaryEntry
}

func (r *recorder) save(entry models.DiaryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, entry)
	return nil
}

func (r *recorder) entries() []models.DiaryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.DiaryEntry, len(r.saved))
	copy(out, r.saved)
	return out
}

func TestScheduleDebouncesToOneWrite(t *testing.T) {
	rec := &recorder{}
	saver := New(20*time.Millisecond, rec.save)

	entry := models.NewEntry("2024-01-01")
	for i := 0; i < 5; i++ {
		entry.Content = entry.Content + "x"
		saver.Schedule(entry)
	}

	time.Sleep(100 * time.Millisecond)

	saved := rec.entries()
	if len(saved) != 1 {
		t.Fatalf("save count = %d, want 1", len(saved))
	}
	if saved[0].Content != "xxxxx" {
		t.Errorf("saved content = %q, want the latest edit", saved[0].Content)
	}
}

func TestScheduleResetsDelay(t *testing.T) {
	rec := &recorder{}
	saver := New(50*time.Millisecond, rec.save)

	entry := models.NewEntry("2024-01-01")
	saver.Schedule(entry)
	time.Sleep(30 * time.Millisecond)
	saver.Schedule(entry)
	time.Sleep(30 * time.Millisecond)

	// 60ms after the first Schedule, but only 30ms after the second.
	if got := len(rec.entries()); got != 0 {
		t.Fatalf("save fired early, count = %d", got)
	}

	time.Sleep(60 * time.Millisecond)
	if got := len(rec.entries()); got != 1 {
		t.Errorf("save count = %d, want 1", got)
	}
}

func TestFlushWritesImmediately(t *testing.T) {
	rec := &recorder{}
	saver := New(time.Hour, rec.save)

	entry := models.NewEntry("2024-01-01")
	entry.Content = "draft"
	saver.Schedule(entry)
	saver.Flush()

	saved := rec.entries()
	if len(saved) != 1 || saved[0].Content != "draft" {
		t.Fatalf("flush did not write the pending entry: %+v", saved)
	}

	// Nothing left to write.
	saver.Flush()
	if got := len(rec.entries()); got != 1 {
		t.Errorf("second flush wrote again, count = %d", got)
	}
}

func TestCancelDiscardsPending(t *testing.T) {
	rec := &recorder{}
	saver := New(20*time.Millisecond, rec.save)

	saver.Schedule(models.NewEntry("2024-01-01"))
	saver.Cancel()

	time.Sleep(100 * time.Millisecond)
	if got := len(rec.entries()); got != 0 {
		t.Errorf("save count after cancel = %d, want 0", got)
	}
}

func TestSaveNowSupersedesPendingForSameDate(t *testing.T) {
	rec := &recorder{}
	saver := New(20*time.Millisecond, rec.save)

	stale := models.NewEntry("2024-01-01")
	stale.Content = "stale"
	saver.Schedule(stale)

	fresh := models.NewEntry("2024-01-01")
	fresh.Content = "fresh"
	if err := saver.SaveNow(fresh); err != nil {
		t.Fatalf("SaveNow failed: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	saved := rec.entries()
	if len(saved) != 1 {
		t.Fatalf("save count = %d, want 1", len(saved))
	}
	if saved[0].Content != "fresh" {
		t.Errorf("saved content = %q, pending entry must not overwrite it", saved[0].Content)
	}
}

func TestScheduleClonesDayValues(t *testing.T) {
	rec := &recorder{}
	saver := New(time.Hour, rec.save)

	entry := models.NewEntry("2024-01-01")
	entry.Goals["g1"] = 1
	saver.Schedule(entry)

	// Edits after scheduling must not reach the pending record.
	entry.Goals["g1"] = 99
	saver.Flush()

	saved := rec.entries()
	if len(saved) != 1 {
		t.Fatalf("save count = %d, want 1", len(saved))
	}
	if saved[0].Goals["g1"] != 1 {
		t.Errorf("saved value = %d, want the value at schedule time", saved[0].Goals["g1"])
	}
}

func TestSaveNowClonesDayValues(t *testing.T) {
	rec := &recorder{}
	saver := New(time.Hour, rec.save)

	entry := models.NewEntry("2024-01-01")
	entry.Goals["g1"] = 1
	if err := saver.SaveNow(entry); err != nil {
		t.Fatalf("SaveNow failed: %v", err)
	}

	entry.Goals["g1"] = 99

	saved := rec.entries()
	if len(saved) != 1 {
		t.Fatalf("save count = %d, want 1", len(saved))
	}
	if saved[0].Goals["g1"] != 1 {
		t.Errorf("saved value = %d, want the value at save time", saved[0].Goals["g1"])
	}
}

func TestScheduleConcurrentEditsDoNotShareState(t *testing.T) {
	// The save func iterates the map the way a JSON marshal would, while the
	// caller keeps mutating its own map between schedules. The race detector
	// flags any sharing between the two.
	var mu sync.Mutex
	var sums []int
	save := func(e models.DiaryEntry) error {
		total := 0
		for _, v := range e.Goals {
			total += v
		}
		mu.Lock()
		sums = append(sums, total)
		mu.Unlock()
		return nil
	}

	saver := New(time.Millisecond, save)
	entry := models.NewEntry("2024-01-01")
	for i := 0; i < 200; i++ {
		entry.Goals["g1"]++
		saver.Schedule(entry)
		time.Sleep(100 * time.Microsecond)
	}
	saver.Flush()

	mu.Lock()
	defer mu.Unlock()
	if len(sums) == 0 {
		t.Fatal("expected at least one save")
	}
	if last := sums[len(sums)-1]; last != 200 {
		t.Errorf("final saved total = %d, want 200", last)
	}
}

func TestScheduleFlushesPendingForOtherDate(t *testing.T) {
	rec := &recorder{}
	saver := New(time.Hour, rec.save)

	first := models.NewEntry("2024-01-01")
	first.Content = "monday"
	saver.Schedule(first)

	second := models.NewEntry("2024-01-02")
	second.Content = "tuesday"
	saver.Schedule(second)

	saved := rec.entries()
	if len(saved) != 1 || saved[0].Date != "2024-01-01" {
		t.Fatalf("navigating dates must flush the prior pending entry, got %+v", saved)
	}

	saver.Flush()
	saved = rec.entries()
	if len(saved) != 2 || saved[1].Date != "2024-01-02" {
		t.Errorf("final flush = %+v, want both dates in order", saved)
	}
}
