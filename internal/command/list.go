package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/rolodex/internal/model"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

const (
	ListWord = "list"

	MessageListSuccess = "Listed all persons"
)

// ListCommand shows every person.
type ListCommand struct{}

func (ListCommand) Execute(ctx context.Context, m model.Model) (Result, error) {
	m.SetFilter(model.ShowAll)
	return Result{Feedback: withListing(MessageListSuccess, m.Displayed())}, nil
}

// withListing appends a numbered line per person to header.
func withListing(header string, persons []types.Person) string {
	var b strings.Builder
	b.WriteString(header)
	for i, p := range persons {
		fmt.Fprintf(&b, "\n%d. %s", i+1, p.String())
	}
	return b.String()
}
