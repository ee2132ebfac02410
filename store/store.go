// Package store persists boxed literals and dense arrays in SQLite,
// keyed by UUID. Objects are stored in their canonical CBOR form.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"
	_ "modernc.org/sqlite"

	"github.com/chazu/boxlit/vm"
	"github.com/chazu/boxlit/vm/wire"
)

// ErrNotFound indicates the requested object doesn't exist.
var ErrNotFound = errors.New("store: object not found")

// log resolves the logger on each call so that a backend configured after
// package init is honored.
func log() commonlog.Logger {
	return commonlog.GetLogger("boxlit.store")
}

// Store handles SQLite storage for objects of one runtime.
type Store struct {
	db     *sql.DB
	dbPath string
	rt     *vm.Runtime
	mu     sync.Mutex
}

// Open opens (creating if needed) the database at dbPath. Use ":memory:"
// for a throwaway store.
func Open(ctx context.Context, dbPath string, rt *vm.Runtime) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes
	// writers.
	db.SetMaxOpenConns(1)

	// Set busy timeout for concurrent access
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	_, err = db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS objects (
		id   TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		data BLOB NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	log().Infof("opened store %s", dbPath)
	return &Store{db: db, dbPath: dbPath, rt: rt}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	log().Debugf("closing store %s", s.dbPath)
	return s.db.Close()
}

// Put stores obj under a new id.
func (s *Store) Put(ctx context.Context, obj vm.Object) (uuid.UUID, error) {
	id := uuid.New()
	if err := s.Save(ctx, id, obj); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Save stores obj under id, replacing any previous object.
func (s *Store) Save(ctx context.Context, id uuid.UUID, obj vm.Object) error {
	data, err := wire.Marshal(obj)
	if err != nil {
		return fmt.Errorf("encoding object: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO objects (id, type, data) VALUES (?, ?, ?)",
		id.String(), obj.PrimaryType().Name, data,
	)
	if err != nil {
		return fmt.Errorf("saving object: %w", err)
	}
	log().Debugf("saved %s %s", obj.PrimaryType(), id)
	return nil
}

// Get loads the object stored under id.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (vm.Object, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT data FROM objects WHERE id = ?", id.String()).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying object: %w", err)
	}
	obj, err := wire.Unmarshal(s.rt, data)
	if err != nil {
		return nil, fmt.Errorf("decoding object %s: %w", id, err)
	}
	return obj, nil
}

// Delete removes the object stored under id.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM objects WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("deleting object: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting object: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// IDs lists stored ids with the given type tag name, or all ids when
// typeName is empty.
func (s *Store) IDs(ctx context.Context, typeName string) ([]uuid.UUID, error) {
	query := "SELECT id FROM objects ORDER BY id"
	var args []any
	if typeName != "" {
		query = "SELECT id FROM objects WHERE type = ? ORDER BY id"
		args = append(args, typeName)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing objects: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("listing objects: %w", err)
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("listing objects: bad id %q: %w", raw, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
