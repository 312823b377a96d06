package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/rolodex/internal/model"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

func mustPerson(t *testing.T, name string) types.Person {
	t.Helper()
	p, err := types.NewPerson(name, "", "", "", nil)
	require.NoError(t, err)
	return p
}

// modelWithHistory adds each name in turn through AddCommand and then undoes
// the last undo of those additions.
func modelWithHistory(t *testing.T, undo int, names ...string) *model.Manager {
	t.Helper()
	m := model.New(nil, 0)
	for _, name := range names {
		_, err := AddCommand{Person: mustPerson(t, name)}.Execute(context.Background(), m)
		require.NoError(t, err)
	}
	if undo > 0 {
		_, err := m.UndoMany(undo)
		require.NoError(t, err)
	}
	return m
}

func personNames(m model.Model) []string {
	var out []string
	for _, p := range m.Persons() {
		out = append(out, p.Name)
	}
	return out
}
