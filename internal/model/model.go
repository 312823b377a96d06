// Package model owns the address book together with its undo/redo history.
// Every mutation made through the model is captured as a modification and
// recorded, so commands never touch the history stacks directly.
package model

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/mesh-intelligence/rolodex/internal/addressbook"
	"github.com/mesh-intelligence/rolodex/internal/history"
	"github.com/mesh-intelligence/rolodex/internal/modification"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// Predicate selects persons for the displayed list.
type Predicate func(types.Person) bool

// ShowAll is the predicate that selects every person.
func ShowAll(types.Person) bool { return true }

// Model is the API commands execute against.
type Model interface {
	// Persons returns the full collection in display order.
	Persons() []types.Person

	// Displayed returns the persons selected by the current filter. Indexes
	// given to DeletePerson and EditPerson refer to this list.
	Displayed() []types.Person

	// SetFilter changes the displayed list. A nil predicate shows everyone.
	SetFilter(pred Predicate)

	// AddPerson appends p and records the change.
	AddPerson(p types.Person) (modification.Modification, error)

	// DeletePerson removes the displayed person at index and records the change.
	DeletePerson(index int) (modification.Modification, error)

	// EditPerson replaces the displayed person at index using edit and
	// records the change. edit receives a copy of the current person.
	EditPerson(index int, edit func(p *types.Person) error) (modification.Modification, error)

	// ReplaceAll swaps the whole collection for persons and records the
	// change under description.
	ReplaceAll(description string, persons []types.Person) (modification.Modification, error)

	// UndoOne reverts the latest applied change. Returns history.ErrCannotUndo
	// when there is none.
	UndoOne() (modification.Modification, error)

	// RedoOne re-applies the latest undone change. Returns
	// history.ErrCannotRedo when there is none.
	RedoOne() (modification.Modification, error)

	// UndoMany reverts up to n changes; an empty result means none were available.
	UndoMany(n int) ([]modification.Modification, error)

	// RedoMany re-applies up to n changes; an empty result means none were available.
	RedoMany(n int) ([]modification.Modification, error)

	// History returns the applied and undone stacks, most recent last.
	History() (applied, undone []modification.Modification)
}

// Model errors.
var (
	ErrInvalidIndex = errors.New("the person index provided is invalid")
)

// Compile-time interface check.
var _ Model = (*Manager)(nil)

// Manager is the Model implementation backed by an in-memory address book.
type Manager struct {
	mu       sync.Mutex
	book     *addressbook.AddressBook
	history  *history.Manager
	filter   Predicate
	rejected []types.Person
}

// New returns a Manager holding persons with an empty history.
// historyLimit bounds the number of undoable changes; 0 means unbounded.
// Invalid persons and repeated identities are dropped; see Rejected.
func New(persons []types.Person, historyLimit int) *Manager {
	book, rejected := addressbook.Load(persons)
	return &Manager{
		book:     book,
		history:  history.New(book, history.WithLimit(historyLimit)),
		filter:   ShowAll,
		rejected: rejected,
	}
}

// Rejected returns the persons New dropped, in input order.
func (m *Manager) Rejected() []types.Person {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.rejected)
}

func (m *Manager) Persons() []types.Person {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.book.Persons()
}

func (m *Manager) Displayed() []types.Person {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.displayedLocked()
}

func (m *Manager) SetFilter(pred Predicate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if pred == nil {
		pred = ShowAll
	}
	m.filter = pred
}

func (m *Manager) AddPerson(p types.Person) (modification.Modification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	index := m.book.Len()
	if err := m.book.Add(p); err != nil {
		return nil, err
	}
	mod := modification.Added(p, index)
	m.history.Record(mod)
	return mod, nil
}

func (m *Manager) DeletePerson(index int) (modification.Modification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	target, err := m.displayedAtLocked(index)
	if err != nil {
		return nil, err
	}
	pos := m.book.IndexOf(target.PersonID)
	if err := m.book.Remove(target.PersonID); err != nil {
		return nil, err
	}
	mod := modification.Deleted(target, pos)
	m.history.Record(mod)
	return mod, nil
}

func (m *Manager) EditPerson(index int, edit func(p *types.Person) error) (modification.Modification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	before, err := m.displayedAtLocked(index)
	if err != nil {
		return nil, err
	}
	after := before.Clone()
	if err := edit(&after); err != nil {
		return nil, err
	}
	if err := after.Validate(); err != nil {
		return nil, err
	}
	if err := m.book.Replace(before.PersonID, after); err != nil {
		return nil, err
	}
	mod := modification.Edited(before, after)
	m.history.Record(mod)
	return mod, nil
}

func (m *Manager) ReplaceAll(description string, persons []types.Person) (modification.Modification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Validate the incoming set against an empty book before touching ours.
	scratch := addressbook.New(nil)
	for _, p := range persons {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if err := scratch.Add(p); err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name, err)
		}
	}
	before := m.book.Persons()
	m.book.Reset(persons)
	mod := modification.Replaced(description, before, persons)
	m.history.Record(mod)
	return mod, nil
}

func (m *Manager) UndoOne() (modification.Modification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history.UndoOne()
}

func (m *Manager) RedoOne() (modification.Modification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history.RedoOne()
}

func (m *Manager) UndoMany(n int) ([]modification.Modification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history.UndoMany(n)
}

func (m *Manager) RedoMany(n int) ([]modification.Modification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history.RedoMany(n)
}

func (m *Manager) History() (applied, undone []modification.Modification) {
	return m.history.Applied(), m.history.Undone()
}

func (m *Manager) displayedLocked() []types.Person {
	var out []types.Person
	for _, p := range m.book.Persons() {
		if m.filter(p) {
			out = append(out, p)
		}
	}
	return out
}

func (m *Manager) displayedAtLocked(index int) (types.Person, error) {
	shown := m.displayedLocked()
	if index < 0 || index >= len(shown) {
		return types.Person{}, ErrInvalidIndex
	}
	return shown[index], nil
}
