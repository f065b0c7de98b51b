// Package sqlite persists the in-memory store to a single SQLite table as
// JSON buckets, snapshotting on every committed write.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prodib01/BAYLOR-CDC/internal/storage/memory"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

const defaultPath = "dreams.db"

// Store is a memory.Store whose commits are mirrored to SQLite.
type Store struct {
	*memory.Store
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the database at path and loads any saved state.
func NewStore(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		path = defaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer; the memory store already serializes commits.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}

	s := &Store{db: db, path: path}
	s.Store = memory.NewStore(memory.WithCommitHook(s.persist))

	snapshot, found, err := s.load(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if found {
		s.ImportState(snapshot)
	}
	return s, nil
}

type bucket struct {
	name   string
	target func(*memory.Snapshot) any
}

var buckets = []bucket{
	{"facilitators", func(s *memory.Snapshot) any { return &s.Facilitators }},
	{"events", func(s *memory.Snapshot) any { return &s.Events }},
	{"age_groups", func(s *memory.Snapshot) any { return &s.AgeGroups }},
	{"participants", func(s *memory.Snapshot) any { return &s.Participants }},
	{"materials", func(s *memory.Snapshot) any { return &s.Materials }},
	{"material_events", func(s *memory.Snapshot) any { return &s.MaterialEvents }},
	{"attendances", func(s *memory.Snapshot) any { return &s.Attendances }},
	{"users", func(s *memory.Snapshot) any { return &s.Users }},
	{"tokens", func(s *memory.Snapshot) any { return &s.Tokens }},
	{"next_user_id", func(s *memory.Snapshot) any { return &s.NextUserID }},
}

func (s *Store) load(ctx context.Context) (memory.Snapshot, bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT bucket, payload FROM state`)
	if err != nil {
		return memory.Snapshot{}, false, fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	payloads := make(map[string][]byte)
	for rows.Next() {
		var name string
		var payload []byte
		if err := rows.Scan(&name, &payload); err != nil {
			return memory.Snapshot{}, false, fmt.Errorf("scan state: %w", err)
		}
		payloads[name] = payload
	}
	if err := rows.Err(); err != nil {
		return memory.Snapshot{}, false, fmt.Errorf("iterate state: %w", err)
	}
	if len(payloads) == 0 {
		return memory.Snapshot{}, false, nil
	}

	var snapshot memory.Snapshot
	for _, b := range buckets {
		payload, ok := payloads[b.name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(payload, b.target(&snapshot)); err != nil {
			return memory.Snapshot{}, false, fmt.Errorf("decode %s: %w", b.name, err)
		}
	}
	return snapshot, true, nil
}

// persist runs under the memory store's write lock, so snapshots reach the
// database in commit order.
func (s *Store) persist(snapshot memory.Snapshot) (retErr error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	for _, b := range buckets {
		data, err := json.Marshal(b.target(&snapshot))
		if err != nil {
			return fmt.Errorf("encode %s: %w", b.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO state(bucket, payload) VALUES(?, ?) ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload`, b.name, data); err != nil {
			return fmt.Errorf("upsert %s: %w", b.name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Ping checks the database file is still reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
