// Package addressbook holds the in-memory, ordered collection of contacts
// that every command reads and mutates.
package addressbook

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// Collection errors.
var (
	ErrPersonNotFound  = errors.New("person not found")
	ErrDuplicatePerson = errors.New("this person already exists in the address book")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// AddressBook is an ordered list of persons. Order is display order and is
// preserved across undo and redo. The zero value is an empty book.
//
// AddressBook is not safe for concurrent use; the model serialises access.
type AddressBook struct {
	persons []types.Person
}

// New returns an AddressBook holding clones of persons.
func New(persons []types.Person) *AddressBook {
	ab := &AddressBook{}
	ab.Reset(persons)
	return ab
}

// Load returns a book built by adding each of persons in order. Persons that
// fail validation or repeat an earlier identity are left out and returned as
// rejects, so a loaded book holds the same invariants as one built by Add.
func Load(persons []types.Person) (*AddressBook, []types.Person) {
	ab := &AddressBook{}
	var rejected []types.Person
	for _, p := range persons {
		if p.Validate() != nil || ab.Add(p) != nil {
			rejected = append(rejected, p.Clone())
		}
	}
	return ab, rejected
}

// Len returns the number of persons in the book.
func (ab *AddressBook) Len() int {
	return len(ab.persons)
}

// Persons returns a deep copy of the book contents in display order.
func (ab *AddressBook) Persons() []types.Person {
	out := make([]types.Person, len(ab.persons))
	for i, p := range ab.persons {
		out[i] = p.Clone()
	}
	return out
}

// At returns the person at the zero-based index.
func (ab *AddressBook) At(index int) (types.Person, error) {
	if index < 0 || index >= len(ab.persons) {
		return types.Person{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return ab.persons[index].Clone(), nil
}

// Get returns the person with the given ID.
func (ab *AddressBook) Get(id string) (types.Person, error) {
	i := ab.indexOf(id)
	if i < 0 {
		return types.Person{}, fmt.Errorf("%w: %s", ErrPersonNotFound, id)
	}
	return ab.persons[i].Clone(), nil
}

// IndexOf returns the position of the person with the given ID, or -1.
func (ab *AddressBook) IndexOf(id string) int {
	return ab.indexOf(id)
}

// Has reports whether a person with the same identity as p is in the book.
func (ab *AddressBook) Has(p types.Person) bool {
	return slices.ContainsFunc(ab.persons, p.SameIdentity)
}

// Add appends p to the end of the book.
func (ab *AddressBook) Add(p types.Person) error {
	return ab.Insert(len(ab.persons), p)
}

// Insert places p at index, shifting later persons down. Index equal to Len
// appends.
func (ab *AddressBook) Insert(index int, p types.Person) error {
	if index < 0 || index > len(ab.persons) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	if ab.indexOf(p.PersonID) >= 0 || ab.Has(p) {
		return ErrDuplicatePerson
	}
	ab.persons = slices.Insert(ab.persons, index, p.Clone())
	return nil
}

// Remove deletes the person with the given ID.
func (ab *AddressBook) Remove(id string) error {
	i := ab.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrPersonNotFound, id)
	}
	ab.persons = slices.Delete(ab.persons, i, i+1)
	return nil
}

// Replace swaps the person with the given ID for p, keeping its position.
// p may carry a different ID.
func (ab *AddressBook) Replace(id string, p types.Person) error {
	i := ab.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrPersonNotFound, id)
	}
	for j, other := range ab.persons {
		if j != i && (other.PersonID == p.PersonID || other.SameIdentity(p)) {
			return ErrDuplicatePerson
		}
	}
	ab.persons[i] = p.Clone()
	return nil
}

// Reset replaces the whole contents of the book with clones of persons.
func (ab *AddressBook) Reset(persons []types.Person) {
	ab.persons = make([]types.Person, len(persons))
	for i, p := range persons {
		ab.persons[i] = p.Clone()
	}
}

func (ab *AddressBook) indexOf(id string) int {
	return slices.IndexFunc(ab.persons, func(p types.Person) bool {
		return p.PersonID == id
	})
}
