package remind

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists reminders. Intentionally minimal: one table, integer
// primary key, no migrations framework.
type Store struct {
	db *sql.DB
}

type Reminder struct {
	ID        int64
	Text      string
	Due       time.Time // zero when no due time was set
	Done      bool
	CreatedAt time.Time
}

// OpenStore opens (or creates) the reminder DB under dataDir/reminders.db.
func OpenStore(dataDir string) (*Store, error) {
	return OpenStoreDSN(filepath.Join(dataDir, "reminders.db"))
}

// OpenStoreDSN opens (or creates) a reminder DB using the given sqlite
// DSN/path. Tests may pass ":memory:" to avoid touching disk.
func OpenStoreDSN(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open reminders db: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS reminders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	text TEXT NOT NULL,
	due TIMESTAMP,
	done INTEGER NOT NULL DEFAULT 0,
	notified INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`)
	if err != nil {
		return fmt.Errorf("create reminders table: %w", err)
	}
	return nil
}

// Close closes the underlying DB.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Create inserts a reminder and returns it with its assigned ID.
func (s *Store) Create(text string, due time.Time) (*Reminder, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("reminder store not initialized")
	}
	if text == "" {
		return nil, fmt.Errorf("reminder text is required")
	}

	var dueArg any
	if !due.IsZero() {
		dueArg = due.UTC().Format(time.RFC3339)
	}

	res, err := s.db.Exec(`INSERT INTO reminders (text, due) VALUES (?, ?)`, text, dueArg)
	if err != nil {
		return nil, fmt.Errorf("create reminder: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create reminder: %w", err)
	}

	return &Reminder{ID: id, Text: text, Due: due, CreatedAt: time.Now()}, nil
}

// List returns all reminders, pending first, oldest first within each group.
func (s *Store) List() ([]Reminder, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("reminder store not initialized")
	}

	rows, err := s.db.Query(
		`SELECT id, text, COALESCE(due, ''), done FROM reminders ORDER BY done ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()

	var out []Reminder
	for rows.Next() {
		var r Reminder
		var due string
		if err := rows.Scan(&r.ID, &r.Text, &due, &r.Done); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		if due != "" {
			if ts, err := time.Parse(time.RFC3339, due); err == nil {
				r.Due = ts
			}
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Complete marks a reminder as done.
func (s *Store) Complete(id int64) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("reminder store not initialized")
	}

	res, err := s.db.Exec(`UPDATE reminders SET done = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("complete reminder: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("complete reminder: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("reminder %d not found", id)
	}
	return nil
}

// DueBefore returns pending, un-notified reminders due at or before t and
// marks them notified so the scheduler alerts exactly once per reminder.
func (s *Store) DueBefore(t time.Time) ([]Reminder, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("reminder store not initialized")
	}

	cutoff := t.UTC().Format(time.RFC3339)
	rows, err := s.db.Query(
		`SELECT id, text, COALESCE(due, '') FROM reminders
		 WHERE done = 0 AND notified = 0 AND due IS NOT NULL AND due <= ?
		 ORDER BY due ASC`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("query due reminders: %w", err)
	}
	defer rows.Close()

	var out []Reminder
	for rows.Next() {
		var r Reminder
		var due string
		if err := rows.Scan(&r.ID, &r.Text, &due); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		if due != "" {
			if ts, err := time.Parse(time.RFC3339, due); err == nil {
				r.Due = ts
			}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, r := range out {
		if _, err := s.db.Exec(`UPDATE reminders SET notified = 1 WHERE id = ?`, r.ID); err != nil {
			return nil, fmt.Errorf("mark reminder notified: %w", err)
		}
	}
	return out, nil
}
