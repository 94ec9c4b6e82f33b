package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/kynrd/threadloom/pkg/roster"
	"github.com/kynrd/threadloom/pkg/types"
)

// SQLiteStore persists everything as JSON values in a single key-value
// table, using the pure-Go sqlite driver.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv (
	k TEXT PRIMARY KEY,
	v BLOB NOT NULL
);`

// NewSQLiteStore opens (and if needed initializes) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) get(ctx context.Context, key string, dst any) (bool, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT v FROM kv WHERE k = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return true, nil
}

func (s *SQLiteStore) put(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (k, v) VALUES (?, ?) ON CONFLICT(k) DO UPDATE SET v = excluded.v`,
		key, data)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// LoadState reads the state value, returning a fresh state when absent.
func (s *SQLiteStore) LoadState(ctx context.Context) (*types.StateStore, error) {
	state := types.NewStateStore()
	if _, err := s.get(ctx, "state", state); err != nil {
		return nil, err
	}
	return state, nil
}

// SaveState writes the state value.
func (s *SQLiteStore) SaveState(ctx context.Context, state *types.StateStore) error {
	return s.put(ctx, "state", state)
}

// SaveBatch writes one batch value.
func (s *SQLiteStore) SaveBatch(ctx context.Context, batch *types.Batch) error {
	return s.put(ctx, "batch:"+batch.ID, batch)
}

// LoadBatch reads one batch by id.
func (s *SQLiteStore) LoadBatch(ctx context.Context, id string) (*types.Batch, error) {
	batch := &types.Batch{}
	ok, err := s.get(ctx, "batch:"+id, batch)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("batch %s: %w", id, ErrNotFound)
	}
	return batch, nil
}

// ListBatches returns all stored batch ids.
func (s *SQLiteStore) ListBatches(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT k FROM kv WHERE k LIKE 'batch:%'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		ids = append(ids, strings.TrimPrefix(key, "batch:"))
	}
	return ids, rows.Err()
}

// SeedReferenceData stores a reference data set, replacing any existing one.
func (s *SQLiteStore) SeedReferenceData(ctx context.Context, personas []types.Persona, venues []types.Venue, tags []types.Tag) error {
	if err := s.put(ctx, "personas", personas); err != nil {
		return err
	}
	if err := s.put(ctx, "venues", venues); err != nil {
		return err
	}
	return s.put(ctx, "tags", tags)
}

// LoadPersonas reads the persona set, falling back to the built-in roster.
func (s *SQLiteStore) LoadPersonas(ctx context.Context) ([]types.Persona, error) {
	var out []types.Persona
	ok, err := s.get(ctx, "personas", &out)
	if err != nil {
		return nil, err
	}
	if !ok {
		return roster.DefaultPersonas(), nil
	}
	return out, nil
}

// LoadVenues reads the venue set, falling back to the built-in roster.
func (s *SQLiteStore) LoadVenues(ctx context.Context) ([]types.Venue, error) {
	var out []types.Venue
	ok, err := s.get(ctx, "venues", &out)
	if err != nil {
		return nil, err
	}
	if !ok {
		return roster.DefaultVenues(), nil
	}
	return out, nil
}

// LoadTags reads the tag set, falling back to the built-in roster.
func (s *SQLiteStore) LoadTags(ctx context.Context) ([]types.Tag, error) {
	var out []types.Tag
	ok, err := s.get(ctx, "tags", &out)
	if err != nil {
		return nil, err
	}
	if !ok {
		return roster.DefaultTags(), nil
	}
	return out, nil
}
