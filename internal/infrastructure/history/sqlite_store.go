// Package history persists spoken notifications in a SQLite database so
// past summaries can be reviewed from the CLI.
package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/voicehook/internal/domain"
	"github.com/doeshing/voicehook/internal/pkg/filesystem"
	"github.com/doeshing/voicehook/internal/ports"
)

// SQLiteStore persists notification records in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the notification database at path,
// defaulting to ~/.voicehook/history/history.db. A store that failed to
// open degrades to no-op saves.
func NewSQLiteStore(path string) *SQLiteStore {
	if path == "" {
		path = filepath.Join(filesystem.UserHomeDir(), ".voicehook", "history", "history.db")
	}
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		return &SQLiteStore{path: path}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		timestamp TEXT,
		summary TEXT,
		operation_kind TEXT,
		result_status TEXT,
		model TEXT,
		duration_seconds REAL,
		source TEXT
	);`)
	return err
}

// Save inserts a new record.
func (s *SQLiteStore) Save(record domain.NotificationRecord) error {
	if s.db == nil {
		return os.ErrInvalid
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO notifications
		(id, timestamp, summary, operation_kind, result_status, model, duration_seconds, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Timestamp.Format(time.RFC3339),
		record.Summary,
		string(record.OperationKind),
		string(record.ResultStatus),
		record.Model,
		record.DurationSeconds,
		record.Source,
	)
	return err
}

// Recent returns the latest entries, newest first.
func (s *SQLiteStore) Recent(limit int) ([]domain.NotificationRecord, error) {
	if s.db == nil {
		return nil, nil
	}
	query := `SELECT id, timestamp, summary, operation_kind, result_status, model, duration_seconds, source
		FROM notifications ORDER BY datetime(timestamp) DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.NotificationRecord
	for rows.Next() {
		var rec domain.NotificationRecord
		var ts, kind, status string
		if err := rows.Scan(&rec.ID, &ts, &rec.Summary, &kind, &status, &rec.Model, &rec.DurationSeconds, &rec.Source); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.Timestamp = t
		}
		rec.OperationKind = domain.OperationKind(kind)
		rec.ResultStatus = domain.ResultStatus(status)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all notification entries.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return nil
	}
	_, err := s.db.Exec("DELETE FROM notifications")
	return err
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
