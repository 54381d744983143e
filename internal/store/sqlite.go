// Package store keeps a library of named build orders in SQLite
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/napolitain/buildorder/internal/order"
)

// ErrNotFound is returned when no order matches the given id or name
var ErrNotFound = errors.New("order not found")

const schema = `
CREATE TABLE IF NOT EXISTS orders (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL UNIQUE,
    body       TEXT NOT NULL,
    creates    INTEGER NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// Entry is a stored order
type Entry struct {
	ID        string
	Name      string
	Save      order.Save
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary describes a stored order without its body
type Summary struct {
	ID        string
	Name      string
	Creates   int
	UpdatedAt time.Time
}

// SQLiteStore persists orders in a local SQLite database in WAL mode
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// Open opens (or creates) the database at path and creates the schema
func Open(ctx context.Context, path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	// SQLite has a single writer
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: %s: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	logger.Debug("order store opened", "path", path)
	return &SQLiteStore{db: db, logger: logger.With("component", "store"), now: time.Now}, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Put stores save under name, replacing any order with the same name.
// It returns the id of the stored order.
func (s *SQLiteStore) Put(ctx context.Context, name string, save order.Save) (string, error) {
	if name == "" {
		return "", errors.New("store: name is required")
	}
	if save.Creates == nil {
		save.Creates = []order.SavedCreate{}
	}
	body, err := json.Marshal(save)
	if err != nil {
		return "", fmt.Errorf("store: encode %q: %w", name, err)
	}

	now := s.now().UTC().UnixMilli()
	id := uuid.NewString()

	const q = `
		INSERT INTO orders (id, name, body, creates, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			body       = excluded.body,
			creates    = excluded.creates,
			updated_at = excluded.updated_at
		RETURNING id`
	if err := s.db.QueryRowContext(ctx, q, id, name, string(body), len(save.Creates), now, now).Scan(&id); err != nil {
		return "", fmt.Errorf("store: put %q: %w", name, err)
	}

	s.logger.Info("order stored", "id", id, "name", name, "creates", len(save.Creates))
	return id, nil
}

// Get returns the order whose id or name equals ref
func (s *SQLiteStore) Get(ctx context.Context, ref string) (Entry, error) {
	const q = `SELECT id, name, body, created_at, updated_at FROM orders WHERE id = ? OR name = ? LIMIT 1`

	var (
		e                Entry
		body             string
		created, updated int64
	)
	err := s.db.QueryRowContext(ctx, q, ref, ref).Scan(&e.ID, &e.Name, &body, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%q: %w", ref, ErrNotFound)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("store: get %q: %w", ref, err)
	}
	if err := json.Unmarshal([]byte(body), &e.Save); err != nil {
		return Entry{}, fmt.Errorf("store: decode %q: %w", ref, err)
	}
	e.CreatedAt = time.UnixMilli(created).UTC()
	e.UpdatedAt = time.UnixMilli(updated).UTC()
	return e, nil
}

// List returns every stored order, most recently updated first
func (s *SQLiteStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, creates, updated_at FROM orders ORDER BY updated_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum     Summary
			updated int64
		)
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.Creates, &updated); err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}
		sum.UpdatedAt = time.UnixMilli(updated).UTC()
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes the order whose id or name equals ref
func (s *SQLiteStore) Delete(ctx context.Context, ref string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ? OR name = ?`, ref, ref)
	if err != nil {
		return fmt.Errorf("store: delete %q: %w", ref, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete %q: %w", ref, err)
	}
	if n == 0 {
		return fmt.Errorf("%q: %w", ref, ErrNotFound)
	}
	s.logger.Info("order deleted", "ref", ref)
	return nil
}
