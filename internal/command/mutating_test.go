package command

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/rolodex/internal/model"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

func strPtr(s string) *string { return &s }

func TestAddCommand(t *testing.T) {
	m := model.New(nil, 0)
	p := mustPerson(t, "Alex Yeoh")

	res, err := AddCommand{Person: p}.Execute(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, "New person added: Alex Yeoh", res.Feedback)
	assert.True(t, res.Changed)

	_, err = AddCommand{Person: mustPerson(t, "alex yeoh")}.Execute(context.Background(), m)
	assert.EqualError(t, err, MessageDuplicatePerson)
	assert.True(t, IsUserError(err))
}

func TestDeleteCommand(t *testing.T) {
	m := modelWithHistory(t, 0, "Alex", "Bernice")

	tests := []struct {
		name    string
		index   int
		wantErr string
	}{
		{name: "zero", index: 0, wantErr: MessageInvalidIndex},
		{name: "past end", index: 3, wantErr: MessageInvalidIndex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DeleteCommand{Index: tt.index}.Execute(context.Background(), m)
			assert.EqualError(t, err, tt.wantErr)
		})
	}

	res, err := DeleteCommand{Index: 2}.Execute(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, "Deleted person: Bernice", res.Feedback)
	assert.Equal(t, []string{"Alex"}, personNames(m))
}

func TestEditCommand(t *testing.T) {
	m := modelWithHistory(t, 0, "Alex", "Bernice")

	res, err := EditCommand{Index: 1, Fields: EditFields{Phone: strPtr("91234567"), Tags: []string{"friends"}, SetTags: true}}.
		Execute(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, "Edited person: Alex; Phone: 91234567; Tags: [friends]", res.Feedback)

	_, err = EditCommand{Index: 1}.Execute(context.Background(), m)
	assert.EqualError(t, err, MessageNotEdited)

	_, err = EditCommand{Index: 1, Fields: EditFields{Name: strPtr("bernice")}}.Execute(context.Background(), m)
	assert.EqualError(t, err, MessageDuplicatePerson)

	_, err = EditCommand{Index: 9, Fields: EditFields{Name: strPtr("Zed")}}.Execute(context.Background(), m)
	assert.EqualError(t, err, MessageInvalidIndex)

	_, err = EditCommand{Index: 1, Fields: EditFields{Email: strPtr("nope")}}.Execute(context.Background(), m)
	require.Error(t, err)
	assert.True(t, IsUserError(err))
	assert.ErrorIs(t, err, types.ErrInvalidEmail)

	_, err = UndoCommand{}.Execute(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, "", m.Persons()[0].Phone)
}

func TestClearCommandIsUndoable(t *testing.T) {
	m := modelWithHistory(t, 0, "Alex", "Bernice")

	res, err := ClearCommand{}.Execute(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, MessageClearSuccess, res.Feedback)
	assert.Empty(t, m.Persons())

	res, err = UndoCommand{}.Execute(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, "The following change has been undone: \n"+MessageClearSuccess, res.Feedback)
	assert.Equal(t, []string{"Alex", "Bernice"}, personNames(m))
}

func TestListAndFind(t *testing.T) {
	m := modelWithHistory(t, 0, "Alex Yeoh", "Bernice Yu", "Straße Müller")

	res, err := FindCommand{Keywords: []string{"yu", "STRASSE"}}.Execute(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, "2 persons listed!\n1. Bernice Yu\n2. Straße Müller", res.Feedback)
	assert.False(t, res.Changed)

	// Indexes follow the filtered list.
	res, err = DeleteCommand{Index: 1}.Execute(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, "Deleted person: Bernice Yu", res.Feedback)

	res, err = ListCommand{}.Execute(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, "Listed all persons\n1. Alex Yeoh\n2. Straße Müller", res.Feedback)
}

func TestFindCommandEqual(t *testing.T) {
	assert.True(t, FindCommand{Keywords: []string{"a", "b"}}.Equal(FindCommand{Keywords: []string{"a", "b"}}))
	assert.False(t, FindCommand{Keywords: []string{"a"}}.Equal(FindCommand{Keywords: []string{"b"}}))
}

func TestHistoryCommand(t *testing.T) {
	m := model.New(nil, 0)
	res, err := HistoryCommand{}.Execute(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, MessageHistoryEmpty, res.Feedback)

	m = modelWithHistory(t, 1, "Alex", "Bernice")
	res, err = HistoryCommand{}.Execute(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"Changes that can be undone:",
		"  1. Added person: Alex",
		"",
		"Changes that can be redone:",
		"  1. Added person: Bernice",
	}, "\n"), res.Feedback)
}

func TestHelpAndExit(t *testing.T) {
	m := model.New(nil, 0)

	res, err := HelpCommand{}.Execute(context.Background(), m)
	require.NoError(t, err)
	assert.Contains(t, res.Feedback, MessageRedoUsage)
	assert.Contains(t, res.Feedback, MessageUndoUsage)

	res, err = ExitCommand{}.Execute(context.Background(), m)
	require.NoError(t, err)
	assert.True(t, res.Exit)
}
