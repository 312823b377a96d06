package types

import (
	"context"
	"errors"
)

// Storage persists the contact collection. Callers attach to a backend, load
// and save whole snapshots, and detach when done.
type Storage interface {
	// Attach connects the Storage to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached if
	// called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	Detach() error

	// Load returns every stored person in display order.
	Load(ctx context.Context) ([]Person, error)

	// Save replaces the stored collection with persons.
	Save(ctx context.Context, persons []Person) error

	// ExportTo writes persons as JSONL to path, outside the data directory.
	ExportTo(ctx context.Context, path string, persons []Person) error

	// ImportFrom reads persons from a JSONL file at path.
	ImportFrom(ctx context.Context, path string) ([]Person, error)
}

// Storage lifecycle errors.
var (
	ErrStorageDetached = errors.New("storage is detached")
	ErrAlreadyAttached = errors.New("storage is already attached")
)
