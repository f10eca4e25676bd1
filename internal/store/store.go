// Package store persists serialized state snapshots in a SQL database,
// one row per storage key.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var ErrNotFound = errors.New("snapshot not found")

// Store manages snapshot persistence.
type Store struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

// New opens a database for the named driver, applies migrations and
// returns a ready store.
func New(ctx context.Context, driver, dsn string, logger *slog.Logger) (*Store, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dialect.DriverName(), dialect.DSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := dialect.ConfigureConnection(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure connection: %w", err)
	}
	if err := migrate(db, dialect, logger); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, dialect: dialect, now: time.Now}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Get returns the payload stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		s.dialect.RewriteQuery(`SELECT payload FROM snapshots WHERE storage_key = ?`),
		key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot %q: %w", key, err)
	}
	return []byte(payload), nil
}

// Put replaces the payload stored under key.
func (s *Store) Put(ctx context.Context, key string, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		s.dialect.RewriteQuery(s.dialect.UpsertSnapshotQuery()),
		key, string(payload), s.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("put snapshot %q: %w", key, err)
	}
	return nil
}

// Key binds the store to a single storage key.
func (s *Store) Key(key string) *KeyStore {
	return &KeyStore{store: s, key: key}
}

// KeyStore reads and writes one storage key.
type KeyStore struct {
	store *Store
	key   string
}

// Load returns the stored payload or ErrNotFound.
func (k *KeyStore) Load(ctx context.Context) ([]byte, error) {
	return k.store.Get(ctx, k.key)
}

// Save replaces the stored payload.
func (k *KeyStore) Save(ctx context.Context, payload []byte) error {
	return k.store.Put(ctx, k.key, payload)
}
