package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tridiary/tridiary/internal/logger"
	"github.com/tridiary/tridiary/internal/models"
)

// schema is created up front; there is no versioning or migration path. A
// shape change is handled by defensive defaulting on read, not a migration
// step.
const schema = `
CREATE TABLE IF NOT EXISTS goals (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	type TEXT NOT NULL,
	target_easy INTEGER NOT NULL,
	target_hard INTEGER NOT NULL,
	target_insane INTEGER NOT NULL,
	unit TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS entries (
	date TEXT PRIMARY KEY,
	content TEXT NOT NULL DEFAULT '',
	bed_time TEXT,
	goals TEXT NOT NULL DEFAULT '{}',
	ai_reflection TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS sleep_session (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	start_time TEXT NOT NULL,
	is_active INTEGER NOT NULL
);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'tridiary init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema is idempotent; creating it here covers databases from older
	// builds that predate a table.
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) LoadGoals() ([]models.Goal, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`
		SELECT id, title, type, target_easy, target_hard, target_insane, unit, created_at
		FROM goals ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		var g models.Goal
		var createdAt string

		if err := rows.Scan(&g.ID, &g.Title, &g.Type, &g.TargetEasy, &g.TargetHard, &g.TargetInsane, &g.Unit, &createdAt); err != nil {
			return nil, err
		}

		g.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			logger.Warn("unparsable created_at on goal, defaulting", "goal", g.ID, "error", err)
			g.CreatedAt = time.Time{}
		}
		goals = append(goals, g)
	}

	return goals, rows.Err()
}

// SaveGoals replaces the stored goal list wholesale, matching the
// whole-record semantics of the JSON backend.
func (s *SQLiteStore) SaveGoals(goals []models.Goal) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM goals`); err != nil {
		return err
	}

	for _, g := range goals {
		_, err := tx.Exec(`
			INSERT INTO goals (id, title, type, target_easy, target_hard, target_insane, unit, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			g.ID, g.Title, string(g.Type), g.TargetEasy, g.TargetHard, g.TargetInsane, g.Unit,
			g.CreatedAt.Format(time.RFC3339))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) LoadEntries() (map[string]models.DiaryEntry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`SELECT date, content, bed_time, goals, ai_reflection FROM entries`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make(map[string]models.DiaryEntry)
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries[entry.Date] = entry
	}

	return entries, rows.Err()
}

func (s *SQLiteStore) GetEntry(date string) (models.DiaryEntry, error) {
	if s.db == nil {
		return models.DiaryEntry{}, fmt.Errorf("storage not loaded")
	}

	row := s.db.QueryRow(`SELECT date, content, bed_time, goals, ai_reflection FROM entries WHERE date = ?`, date)
	entry, err := scanEntry(row.Scan)
	if err == sql.ErrNoRows {
		return models.NewEntry(date), nil
	}
	if err != nil {
		return models.DiaryEntry{}, err
	}
	return entry, nil
}

func (s *SQLiteStore) SaveEntry(entry models.DiaryEntry) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	goalsJSON, err := json.Marshal(entry.Goals)
	if err != nil {
		return fmt.Errorf("failed to serialize day values: %w", err)
	}

	var bedTime sql.NullString
	if entry.BedTime != nil {
		bedTime = sql.NullString{String: entry.BedTime.Format(time.RFC3339), Valid: true}
	}

	_, err = s.db.Exec(`
		INSERT INTO entries (date, content, bed_time, goals, ai_reflection)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			content = excluded.content,
			bed_time = excluded.bed_time,
			goals = excluded.goals,
			ai_reflection = excluded.ai_reflection`,
		entry.Date, entry.Content, bedTime, string(goalsJSON), entry.AIReflection)
	return err
}

func (s *SQLiteStore) GetSleepSession() (models.SleepSession, error) {
	if s.db == nil {
		return models.SleepSession{}, fmt.Errorf("storage not loaded")
	}

	row := s.db.QueryRow(`SELECT start_time, is_active FROM sleep_session WHERE id = 1`)

	var startTime string
	var isActive bool
	err := row.Scan(&startTime, &isActive)
	if err == sql.ErrNoRows {
		return models.SleepSession{}, nil
	}
	if err != nil {
		return models.SleepSession{}, err
	}

	start, err := time.Parse(time.RFC3339, startTime)
	if err != nil {
		logger.Warn("unparsable sleep session, defaulting", "error", err)
		return models.SleepSession{}, nil
	}

	return models.SleepSession{StartTime: start, IsActive: isActive}, nil
}

func (s *SQLiteStore) SaveSleepSession(session models.SleepSession) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	_, err := s.db.Exec(`
		INSERT INTO sleep_session (id, start_time, is_active)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			start_time = excluded.start_time,
			is_active = excluded.is_active`,
		session.StartTime.Format(time.RFC3339), session.IsActive)
	return err
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// scanEntry builds a DiaryEntry from a row. Unparsable columns default
// rather than fail: a corrupt day-value blob or bedtime costs that field,
// not the whole entry.
func scanEntry(scan func(...any) error) (models.DiaryEntry, error) {
	var entry models.DiaryEntry
	var bedTime sql.NullString
	var goalsJSON string

	if err := scan(&entry.Date, &entry.Content, &bedTime, &goalsJSON, &entry.AIReflection); err != nil {
		return models.DiaryEntry{}, err
	}

	entry.Goals = models.DailyLog{}
	if goalsJSON != "" {
		if err := json.Unmarshal([]byte(goalsJSON), &entry.Goals); err != nil {
			logger.Warn("unparsable day values on entry, defaulting", "date", entry.Date, "error", err)
			entry.Goals = models.DailyLog{}
		}
	}

	if bedTime.Valid {
		t, err := time.Parse(time.RFC3339, bedTime.String)
		if err != nil {
			logger.Warn("unparsable bedtime on entry, defaulting", "date", entry.Date, "error", err)
		} else {
			entry.BedTime = &t
		}
	}

	return entry, nil
}
