package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rustyeddy/tradeledger/pkg/id"
)

// SQLite is a key-value store in a SQLite database. Every write also
// appends to an audit table of revisions.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// Revision is one historical write of a key.
type Revision struct {
	Rev       string
	Key       string
	Value     string
	WrittenAt time.Time
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	s, err := NewSQLiteDB(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLiteDB wraps an open database and makes sure the schema exists.
func NewSQLiteDB(db *sql.DB) (*SQLite, error) {
	if _, err := db.Exec(Schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLite{db: db, now: time.Now}, nil
}

func (s *SQLite) Read(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %q: %w", key, err)
	}
	return value, true, nil
}

// Write upserts the value and records the revision in one transaction.
func (s *SQLite) Write(key, value string) error {
	now := s.now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}

	_, err = tx.Exec(`
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now,
	)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("write %q: %w", key, err)
	}

	_, err = tx.Exec(`
		INSERT INTO kv_revisions
		(rev, key, value, written_at)
		VALUES (?, ?, ?, ?)`,
		id.NewRevision(now), key, value, now,
	)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record revision of %q: %w", key, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

// Revisions lists the write history of key, newest first. An empty key
// lists every key; limit <= 0 means no limit.
func (s *SQLite) Revisions(key string, limit int) ([]Revision, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.Query(`
		SELECT rev, key, value, written_at
		FROM kv_revisions
		WHERE ? = '' OR key = ?
		ORDER BY rev DESC
		LIMIT ?`, key, key, limit)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	defer rows.Close()

	var out []Revision
	for rows.Next() {
		var r Revision
		if err := rows.Scan(&r.Rev, &r.Key, &r.Value, &r.WrittenAt); err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
