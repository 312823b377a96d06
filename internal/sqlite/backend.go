// Package sqlite implements the SQLite storage backend for rolodex.
// SQLite is the query engine; persons.jsonl in DataDir is the source of
// truth and is rewritten atomically on every save.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// Compile-time interface check.
var _ types.Storage = (*Backend)(nil)

// Backend implements types.Storage on SQLite and JSONL files.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	logger   *slog.Logger
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach initializes the backend with the given configuration.
// Creates DataDir and an empty persons.jsonl if they do not exist, builds a
// fresh SQLite database, and loads persons.jsonl into it.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}
	jsonlPath := filepath.Join(dataDir, personsJSONL)
	if err := ensureFile(jsonlPath); err != nil {
		return err
	}

	// The database is a cache of the JSONL file and is rebuilt on every attach.
	dbPath := filepath.Join(dataDir, "rolodex.db")
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("creating schema: %w", err)
	}

	n, err := loadPersonsJSONL(context.Background(), db, jsonlPath)
	if err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.config.DataDir = dataDir
	b.attached = true

	b.logger.Info("storage attached", "data_dir", dataDir, "persons", n)
	return nil
}

// Detach releases all resources held by the backend.
// After Detach, all operations return ErrStorageDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	b.logger.Info("storage detached", "data_dir", b.config.DataDir)
	return nil
}

// Load returns every stored person in display order.
func (b *Backend) Load(ctx context.Context) ([]types.Person, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStorageDetached
	}

	rows, err := b.db.QueryContext(ctx,
		`SELECT person_id, name, phone, email, address, tags, created_at, updated_at
		 FROM persons ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying persons: %w", err)
	}
	defer rows.Close()
	return scanPersons(rows)
}

// Save replaces the stored collection with persons, first in SQLite and then
// in persons.jsonl. A failed JSONL write leaves the previous file in place.
func (b *Backend) Save(ctx context.Context, persons []types.Person) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStorageDetached
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := replacePersons(ctx, tx, persons, false); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save transaction: %w", err)
	}

	if err := writePersonsJSONL(filepath.Join(b.config.DataDir, personsJSONL), persons); err != nil {
		return fmt.Errorf("persisting %s: %w", personsJSONL, err)
	}
	b.logger.Debug("address book saved", "persons", len(persons))
	return nil
}

// ExportTo writes persons as JSONL to path, creating parent directories.
func (b *Backend) ExportTo(ctx context.Context, path string, persons []types.Person) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrStorageDetached
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := writePersonsJSONL(path, persons); err != nil {
		return err
	}
	b.logger.Info("address book exported", "path", path, "persons", len(persons))
	return nil
}

// ImportFrom reads persons from the JSONL file at path. Malformed lines are
// skipped. The error wraps fs.ErrNotExist when the file is missing.
func (b *Backend) ImportFrom(ctx context.Context, path string) ([]types.Person, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStorageDetached
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	persons, err := readPersonsJSONL(path)
	if err != nil {
		return nil, err
	}
	b.logger.Info("address book read for import", "path", path, "persons", len(persons))
	return persons, nil
}

// ensureFile creates an empty file at path if none exists.
func ensureFile(path string) error {
	f, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
