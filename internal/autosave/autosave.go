package autosave

import (
	"maps"
	"sync"
	"time"

	"github.com/tridiary/tridiary/internal/logger"
	"github.com/tridiary/tridiary/internal/models"
)

// Saver debounces diary entry writes: each edit replaces the pending record
// and resets the delay, so a burst of keystrokes costs one write. Explicit
// actions (sleep-now, manual bedtime edits) bypass the debounce via SaveNow.
//
// All writes go through one mutex so the timer goroutine and the caller never
// hit the store concurrently.
type Saver struct {
	mu      sync.Mutex
	delay   time.Duration
	save    func(models.DiaryEntry) error
	timer   *time.Timer
	pending *models.DiaryEntry
}

func New(delay time.Duration, save func(models.DiaryEntry) error) *Saver {
	return &Saver{
		delay: delay,
		save:  save,
	}
}

// Schedule records the entry as pending and (re)starts the delay. A pending
// entry for a different date is flushed first so a stale write never lands on
// the wrong date after navigation.
//
// The pending record owns a private clone of the day-value map: the caller
// keeps mutating its own map between edits, and the timer goroutine must not
// read the same map it writes.
func (s *Saver) Schedule(entry models.DiaryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil && s.pending.Date != entry.Date {
		s.flushLocked()
	}

	e := entry
	e.Goals = maps.Clone(entry.Goals)
	s.pending = &e

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.fire)
}

func (s *Saver) fire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushLocked()
}

// Flush writes the pending entry immediately, if any.
func (s *Saver) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.flushLocked()
}

// Cancel discards the pending entry without writing it.
func (s *Saver) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
}

// SaveNow writes the entry immediately and discards any pending write for the
// same date, which it supersedes.
func (s *Saver) SaveNow(entry models.DiaryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil && s.pending.Date == entry.Date {
		if s.timer != nil {
			s.timer.Stop()
			s.timer = nil
		}
		s.pending = nil
	}

	e := entry
	e.Goals = maps.Clone(entry.Goals)
	return s.save(e)
}

func (s *Saver) flushLocked() {
	if s.pending == nil {
		return
	}
	entry := *s.pending
	s.pending = nil

	if err := s.save(entry); err != nil {
		logger.Error("autosave failed", "date", entry.Date, "error", err)
	}
}
