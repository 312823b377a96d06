package command

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/mesh-intelligence/rolodex/internal/addressbook"
	"github.com/mesh-intelligence/rolodex/internal/model"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

const (
	ExportWord = "export"
	ImportWord = "import"

	MessageExportSuccess = "Exported %d person(s) to %s"
	MessageImportSuccess = "Imported %d person(s) from %s"
	MessageFileNotFound  = "File not found: %s"
	MessageFileInvalid   = "Could not read persons from %s: %s"

	MessageExportUsage = ExportWord + ": Writes every person to a JSONL file.\n" +
		"Format: " + ExportWord + " PATH\n" +
		"Example: " + ExportWord + " backup/contacts.jsonl"

	MessageImportUsage = ImportWord + ": Replaces the address book with the persons in a JSONL file. Can be undone.\n" +
		"Format: " + ImportWord + " PATH\n" +
		"Example: " + ImportWord + " backup/contacts.jsonl"
)

// fileBased holds what every file-touching command shares: the storage
// handle, passed in by whoever builds the command, and the user's path.
type fileBased struct {
	store types.Storage
	path  string
}

func newFileBased(store types.Storage, path string) fileBased {
	if store == nil {
		panic("file-based command constructed without storage")
	}
	return fileBased{store: store, path: path}
}

// Path returns the file the command reads or writes.
func (f fileBased) Path() string {
	return f.path
}

// ExportCommand writes the whole address book to a file.
type ExportCommand struct {
	fileBased
}

// NewExportCommand returns an ExportCommand that writes through store.
// store must not be nil.
func NewExportCommand(store types.Storage, path string) ExportCommand {
	return ExportCommand{newFileBased(store, path)}
}

func (c ExportCommand) Execute(ctx context.Context, m model.Model) (Result, error) {
	persons := m.Persons()
	if err := c.store.ExportTo(ctx, c.path, persons); err != nil {
		return Result{}, fmt.Errorf("export to %s: %w", c.path, err)
	}
	return Result{Feedback: fmt.Sprintf(MessageExportSuccess, len(persons), c.path)}, nil
}

// ImportCommand replaces the address book with the contents of a file.
type ImportCommand struct {
	fileBased
}

// NewImportCommand returns an ImportCommand that reads through store.
// store must not be nil.
func NewImportCommand(store types.Storage, path string) ImportCommand {
	return ImportCommand{newFileBased(store, path)}
}

func (c ImportCommand) Execute(ctx context.Context, m model.Model) (Result, error) {
	persons, err := c.store.ImportFrom(ctx, c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Result{}, wrap(fmt.Sprintf(MessageFileNotFound, c.path), err)
	}
	if err != nil {
		return Result{}, fmt.Errorf("import from %s: %w", c.path, err)
	}

	description := fmt.Sprintf(MessageImportSuccess, len(persons), c.path)
	if _, err := m.ReplaceAll(description, persons); err != nil {
		if errors.Is(err, addressbook.ErrDuplicatePerson) || isValidationError(err) || errors.Is(err, types.ErrInvalidID) {
			return Result{}, wrap(fmt.Sprintf(MessageFileInvalid, c.path, err), err)
		}
		return Result{}, fmt.Errorf("import from %s: %w", c.path, err)
	}
	return Result{Feedback: description, Changed: true}, nil
}
