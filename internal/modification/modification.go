// Package modification records completed changes to the address book in a
// form that can be reverted and re-applied.
//
// A Modification is immutable once constructed. Constructors clone every
// person they are given, so later edits to the caller's values never reach
// recorded history.
package modification

import (
	"fmt"

	"github.com/mesh-intelligence/rolodex/internal/addressbook"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// Modification is one completed, reversible change to the address book.
type Modification interface {
	// Description is the human-readable summary shown on undo and redo.
	Description() string

	// Apply performs the change against ab. It is called on redo, when ab is
	// in the state the change was originally made from.
	Apply(ab *addressbook.AddressBook) error

	// Revert performs the inverse change against ab. It is called on undo,
	// when ab is in the state the change produced.
	Revert(ab *addressbook.AddressBook) error
}

// Compile-time interface checks.
var (
	_ Modification = addition{}
	_ Modification = deletion{}
	_ Modification = edit{}
	_ Modification = replacement{}
)

// Added records that p was inserted at index.
func Added(p types.Person, index int) Modification {
	return addition{person: p.Clone(), index: index}
}

// Deleted records that p was removed from index.
func Deleted(p types.Person, index int) Modification {
	return deletion{person: p.Clone(), index: index}
}

// Edited records that before was replaced in place by after.
func Edited(before, after types.Person) Modification {
	return edit{before: before.Clone(), after: after.Clone()}
}

// Replaced records that the whole book went from before to after. It backs
// clear and import, which swap the collection wholesale.
func Replaced(description string, before, after []types.Person) Modification {
	return replacement{
		description: description,
		before:      clonePersons(before),
		after:       clonePersons(after),
	}
}

type addition struct {
	person types.Person
	index  int
}

func (m addition) Description() string {
	return "Added person: " + m.person.String()
}

func (m addition) Apply(ab *addressbook.AddressBook) error {
	if err := ab.Insert(m.index, m.person); err != nil {
		return fmt.Errorf("re-adding %s: %w", m.person.Name, err)
	}
	return nil
}

func (m addition) Revert(ab *addressbook.AddressBook) error {
	if err := ab.Remove(m.person.PersonID); err != nil {
		return fmt.Errorf("removing %s: %w", m.person.Name, err)
	}
	return nil
}

type deletion struct {
	person types.Person
	index  int
}

func (m deletion) Description() string {
	return "Deleted person: " + m.person.String()
}

func (m deletion) Apply(ab *addressbook.AddressBook) error {
	if err := ab.Remove(m.person.PersonID); err != nil {
		return fmt.Errorf("deleting %s: %w", m.person.Name, err)
	}
	return nil
}

func (m deletion) Revert(ab *addressbook.AddressBook) error {
	if err := ab.Insert(m.index, m.person); err != nil {
		return fmt.Errorf("restoring %s: %w", m.person.Name, err)
	}
	return nil
}

type edit struct {
	before types.Person
	after  types.Person
}

func (m edit) Description() string {
	return fmt.Sprintf("Edited person: %s\nto: %s", m.before.String(), m.after.String())
}

func (m edit) Apply(ab *addressbook.AddressBook) error {
	if err := ab.Replace(m.before.PersonID, m.after); err != nil {
		return fmt.Errorf("editing %s: %w", m.before.Name, err)
	}
	return nil
}

func (m edit) Revert(ab *addressbook.AddressBook) error {
	if err := ab.Replace(m.after.PersonID, m.before); err != nil {
		return fmt.Errorf("reverting edit of %s: %w", m.after.Name, err)
	}
	return nil
}

type replacement struct {
	description string
	before      []types.Person
	after       []types.Person
}

func (m replacement) Description() string {
	return m.description
}

func (m replacement) Apply(ab *addressbook.AddressBook) error {
	ab.Reset(m.after)
	return nil
}

func (m replacement) Revert(ab *addressbook.AddressBook) error {
	ab.Reset(m.before)
	return nil
}

func clonePersons(persons []types.Person) []types.Person {
	out := make([]types.Person, len(persons))
	for i, p := range persons {
		out[i] = p.Clone()
	}
	return out
}
