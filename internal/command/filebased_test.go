package command

import (
	"context"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/rolodex/internal/model"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// memStorage is a types.Storage that keeps exported files in a map.
type memStorage struct {
	files map[string][]types.Person
}

func newMemStorage() *memStorage {
	return &memStorage{files: map[string][]types.Person{}}
}

func (s *memStorage) Attach(types.Config) error                    { return nil }
func (s *memStorage) Detach() error                                { return nil }
func (s *memStorage) Load(context.Context) ([]types.Person, error) { return nil, nil }
func (s *memStorage) Save(context.Context, []types.Person) error   { return nil }

func (s *memStorage) ExportTo(_ context.Context, path string, persons []types.Person) error {
	s.files[path] = persons
	return nil
}

func (s *memStorage) ImportFrom(_ context.Context, path string) ([]types.Person, error) {
	persons, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, fs.ErrNotExist)
	}
	return persons, nil
}

func TestFileBasedCommandsRequireStorage(t *testing.T) {
	assert.Panics(t, func() { NewExportCommand(nil, "out.jsonl") })
	assert.Panics(t, func() { NewImportCommand(nil, "in.jsonl") })
}

func TestExportThenImport(t *testing.T) {
	store := newMemStorage()
	m := modelWithHistory(t, 0, "Alex", "Bernice")

	res, err := NewExportCommand(store, "backup.jsonl").Execute(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, "Exported 2 person(s) to backup.jsonl", res.Feedback)
	assert.False(t, res.Changed)

	_, err = ClearCommand{}.Execute(context.Background(), m)
	require.NoError(t, err)

	cmd := NewImportCommand(store, "backup.jsonl")
	assert.Equal(t, "backup.jsonl", cmd.Path())
	res, err = cmd.Execute(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, "Imported 2 person(s) from backup.jsonl", res.Feedback)
	assert.True(t, res.Changed)
	assert.Equal(t, []string{"Alex", "Bernice"}, personNames(m))

	res, err = UndoCommand{}.Execute(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, "The following change has been undone: \nImported 2 person(s) from backup.jsonl", res.Feedback)
	assert.Empty(t, personNames(m))
}

func TestImportMissingFile(t *testing.T) {
	m := model.New(nil, 0)
	_, err := NewImportCommand(newMemStorage(), "nope.jsonl").Execute(context.Background(), m)
	assert.EqualError(t, err, "File not found: nope.jsonl")
	assert.True(t, IsUserError(err))
}

func TestImportRejectsDuplicates(t *testing.T) {
	store := newMemStorage()
	store.files["dup.jsonl"] = []types.Person{mustPerson(t, "Alex"), mustPerson(t, "ALEX")}
	m := modelWithHistory(t, 0, "Bernice")

	_, err := NewImportCommand(store, "dup.jsonl").Execute(context.Background(), m)
	require.Error(t, err)
	assert.True(t, IsUserError(err))
	assert.Equal(t, []string{"Bernice"}, personNames(m))
}
