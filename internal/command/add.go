package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/rolodex/internal/addressbook"
	"github.com/mesh-intelligence/rolodex/internal/model"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

const (
	AddWord = "add"

	MessageAddSuccess      = "New person added: %s"
	MessageDuplicatePerson = "This person already exists in the address book"

	MessageAddUsage = AddWord + ": Adds a person to the address book.\n" +
		"Format: " + AddWord + " n/NAME [p/PHONE] [e/EMAIL] [a/ADDRESS] [t/TAG]...\n" +
		"Example: " + AddWord + " n/John Doe p/98765432 e/johnd@example.com a/311, Clementi Ave 2 t/friends"
)

// AddCommand adds a new person.
type AddCommand struct {
	Person types.Person
}

func (c AddCommand) Execute(ctx context.Context, m model.Model) (Result, error) {
	if _, err := m.AddPerson(c.Person); err != nil {
		if errors.Is(err, addressbook.ErrDuplicatePerson) {
			return Result{}, wrap(MessageDuplicatePerson, err)
		}
		return Result{}, fmt.Errorf("add person: %w", err)
	}
	return Result{
		Feedback: fmt.Sprintf(MessageAddSuccess, c.Person.String()),
		Changed:  true,
	}, nil
}
