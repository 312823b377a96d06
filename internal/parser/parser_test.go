package parser

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/rolodex/internal/command"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// nopStorage satisfies types.Storage for commands that are only parsed.
type nopStorage struct{}

func (nopStorage) Attach(types.Config) error                                  { return nil }
func (nopStorage) Detach() error                                              { return nil }
func (nopStorage) Load(context.Context) ([]types.Person, error)               { return nil, nil }
func (nopStorage) Save(context.Context, []types.Person) error                 { return nil }
func (nopStorage) ExportTo(context.Context, string, []types.Person) error     { return nil }
func (nopStorage) ImportFrom(context.Context, string) ([]types.Person, error) { return nil, nil }

func TestParseRedo(t *testing.T) {
	p := New(nopStorage{})

	tests := []struct {
		input   string
		want    command.RedoCommand
		wantErr string
	}{
		{input: "redo", want: command.NewRedoCommand(1)},
		{input: "  redo   ", want: command.NewRedoCommand(1)},
		{input: "redo 3", want: command.NewRedoCommand(3)},
		{input: "redo\t2", want: command.NewRedoCommand(2)},
		{input: "redo \t 4\t", want: command.NewRedoCommand(4)},
		{input: "redo 100000", want: command.NewRedoCommand(100000)},
		{input: "redo 0", wantErr: command.MessageRedoNotPositive},
		{input: "redo -2", wantErr: command.MessageRedoNotPositive},
		{input: "redo abc", wantErr: command.MessageRedoNotPositive},
		{input: "redo 1 2", wantErr: command.MessageRedoNotPositive},
		{input: "redo 100001", wantErr: command.MessageRedoLimitExceeded},
		{input: "redo 99999999999999999999999", wantErr: command.MessageRedoLimitExceeded},
		{input: "redo -99999999999999999999999", wantErr: command.MessageRedoNotPositive},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := p.Parse(tt.input)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				assert.True(t, command.IsUserError(err))
				return
			}
			require.NoError(t, err)
			redo, ok := got.(command.RedoCommand)
			require.True(t, ok, "got %T", got)
			assert.True(t, tt.want.Equal(redo))
		})
	}
}

func TestParseUndo(t *testing.T) {
	p := New(nopStorage{})

	got, err := p.Parse("undo 7")
	require.NoError(t, err)
	assert.Equal(t, command.NewUndoCommand(7), got)

	got, err = p.Parse("undo")
	require.NoError(t, err)
	assert.Equal(t, command.NewUndoCommand(1), got)

	_, err = p.Parse("undo 0")
	assert.EqualError(t, err, command.MessageUndoNotPositive)
	_, err = p.Parse("undo 100001")
	assert.EqualError(t, err, command.MessageUndoLimitExceeded)
}

func TestParseAdd(t *testing.T) {
	p := New(nopStorage{})

	got, err := p.Parse("add n/John Doe p/98765432 e/johnd@example.com a/311, Clementi Ave 2 t/friends t/owesMoney")
	require.NoError(t, err)
	add, ok := got.(command.AddCommand)
	require.True(t, ok)

	assert.Equal(t, "John Doe", add.Person.Name)
	assert.Equal(t, "98765432", add.Person.Phone)
	assert.Equal(t, "johnd@example.com", add.Person.Email)
	assert.Equal(t, "311, Clementi Ave 2", add.Person.Address)
	assert.Equal(t, []string{"friends", "owesMoney"}, add.Person.Tags)
	assert.NotEmpty(t, add.Person.PersonID)
}

func TestParseAddErrors(t *testing.T) {
	p := New(nopStorage{})
	invalidFormat := fmt.Sprintf(MessageInvalidFormat, command.MessageAddUsage)

	tests := []struct {
		input   string
		wantErr string
	}{
		{input: "add", wantErr: invalidFormat},
		{input: "add p/98765432", wantErr: invalidFormat},
		{input: "add junk n/John", wantErr: invalidFormat},
		{input: "add n/John p/abc", wantErr: `Invalid person details: invalid phone number: "abc"`},
		{input: "add n/   ", wantErr: "Invalid person details: invalid name"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := p.Parse(tt.input)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestParseEdit(t *testing.T) {
	p := New(nopStorage{})

	got, err := p.Parse("edit 2 p/91234567 t/")
	require.NoError(t, err)
	edit, ok := got.(command.EditCommand)
	require.True(t, ok)
	assert.Equal(t, 2, edit.Index)
	require.NotNil(t, edit.Fields.Phone)
	assert.Equal(t, "91234567", *edit.Fields.Phone)
	assert.Nil(t, edit.Fields.Name)
	assert.True(t, edit.Fields.SetTags)
	assert.Empty(t, edit.Fields.Tags)

	_, err = p.Parse("edit 1")
	assert.EqualError(t, err, command.MessageNotEdited)

	_, err = p.Parse("edit x n/Bob")
	assert.EqualError(t, err, fmt.Sprintf(MessageInvalidFormat, command.MessageEditUsage))
}

func TestParseSimpleCommands(t *testing.T) {
	p := New(nopStorage{})

	tests := []struct {
		input string
		want  command.Command
	}{
		{input: "delete 3", want: command.DeleteCommand{Index: 3}},
		{input: "clear", want: command.ClearCommand{}},
		{input: "list", want: command.ListCommand{}},
		{input: "history", want: command.HistoryCommand{}},
		{input: "help", want: command.HelpCommand{}},
		{input: "exit", want: command.ExitCommand{}},
		{input: "find alex  yu", want: command.FindCommand{Keywords: []string{"alex", "yu"}}},
		{input: "delete\t3", want: command.DeleteCommand{Index: 3}},
		{input: "find\talex", want: command.FindCommand{Keywords: []string{"alex"}}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := p.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFileBased(t *testing.T) {
	p := New(nopStorage{})

	got, err := p.Parse("export backup/contacts.jsonl")
	require.NoError(t, err)
	export, ok := got.(command.ExportCommand)
	require.True(t, ok)
	assert.Equal(t, "backup/contacts.jsonl", export.Path())

	got, err = p.Parse("import backup/contacts.jsonl")
	require.NoError(t, err)
	_, ok = got.(command.ImportCommand)
	assert.True(t, ok)

	_, err = p.Parse("export")
	assert.EqualError(t, err, fmt.Sprintf(MessageInvalidFormat, command.MessageExportUsage))
}

func TestParseUnknownAndMalformed(t *testing.T) {
	p := New(nopStorage{})

	for _, input := range []string{"", "   ", "frobnicate", "REDO"} {
		_, err := p.Parse(input)
		assert.EqualError(t, err, MessageUnknownCommand, "input %q", input)
	}

	_, err := p.Parse("delete zero")
	assert.EqualError(t, err, fmt.Sprintf(MessageInvalidFormat, command.MessageDeleteUsage))
	_, err = p.Parse("find")
	assert.EqualError(t, err, fmt.Sprintf(MessageInvalidFormat, command.MessageFindUsage))
}

func TestTokenize(t *testing.T) {
	f := tokenize("1 n/Alex Yeoh a/Blk 30 n/Alexander t/a t/b")
	assert.Equal(t, "1", f.preamble)
	assert.Equal(t, []string{"Alex Yeoh", "Alexander"}, f.values[prefixName])
	assert.Equal(t, []string{"Blk 30"}, f.values[prefixAddress])
	assert.Equal(t, []string{"a", "b"}, f.tags())

	f = tokenize("a/lane2/n/5")
	assert.Equal(t, []string{"lane2/n/5"}, f.values[prefixAddress], "prefixes inside a value are literal")
}
