package command

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/mesh-intelligence/rolodex/internal/model"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

const (
	FindWord = "find"

	MessagePersonsListed = "%d persons listed!"

	MessageFindUsage = FindWord + ": Finds all persons whose names contain any of the specified keywords (case-insensitive) and displays them as a list with index numbers.\n" +
		"Format: " + FindWord + " KEYWORD [MORE_KEYWORDS]...\n" +
		"Example: " + FindWord + " alice bob charlie"
)

// FindCommand narrows the displayed list to persons whose name contains one
// of Keywords as a whole word, compared under Unicode case folding.
type FindCommand struct {
	Keywords []string
}

// Equal reports whether other is a FindCommand for the same keywords.
func (c FindCommand) Equal(other Command) bool {
	o, ok := other.(FindCommand)
	return ok && slices.Equal(c.Keywords, o.Keywords)
}

func (c FindCommand) Execute(ctx context.Context, m model.Model) (Result, error) {
	m.SetFilter(nameContainsAny(c.Keywords))
	shown := m.Displayed()
	return Result{Feedback: withListing(fmt.Sprintf(MessagePersonsListed, len(shown)), shown)}, nil
}

func nameContainsAny(keywords []string) model.Predicate {
	fold := cases.Fold()
	wanted := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		wanted[fold.String(k)] = true
	}
	return func(p types.Person) bool {
		for _, word := range strings.Fields(p.Name) {
			if wanted[fold.String(word)] {
				return true
			}
		}
		return false
	}
}
