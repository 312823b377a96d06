// Package history implements linear undo/redo over the address book.
//
// Manager keeps two stacks of modifications: applied (source of undo) and
// undone (source of redo). Undo pops applied, reverts the change and pushes
// it onto undone; redo is the exact mirror. Recording a new modification
// truncates undone, so history never branches.
package history

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mesh-intelligence/rolodex/internal/addressbook"
	"github.com/mesh-intelligence/rolodex/internal/modification"
)

// History errors.
var (
	ErrCannotUndo = errors.New("no changes to undo")
	ErrCannotRedo = errors.New("no changes to redo")
)

// Manager owns the applied and undone stacks for one address book. Every
// stack transition happens under mu, so a Manager may be shared between
// goroutines; the book itself must only be mutated through the Manager or
// while no Manager call is in flight.
type Manager struct {
	mu      sync.Mutex
	book    *addressbook.AddressBook
	applied []modification.Modification // most recent last
	undone  []modification.Modification // most recently undone last
	limit   int                         // max applied entries; 0 means unbounded
}

// Option configures a Manager.
type Option func(*Manager)

// WithLimit bounds the applied stack to n entries. When a new modification
// pushes the stack past n, the oldest entry is discarded and can no longer be
// undone. n <= 0 means unbounded.
func WithLimit(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.limit = n
		}
	}
}

// New returns a Manager with empty stacks that replays changes against book.
func New(book *addressbook.AddressBook, opts ...Option) *Manager {
	m := &Manager{book: book}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Record pushes mod onto the applied stack and clears the undone stack.
// The change described by mod must already have been made to the book.
func (m *Manager) Record(mod modification.Modification) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.applied = append(m.applied, mod)
	if m.limit > 0 && len(m.applied) > m.limit {
		drop := len(m.applied) - m.limit
		clear(m.applied[:drop])
		m.applied = m.applied[drop:]
	}
	clear(m.undone)
	m.undone = m.undone[:0]
}

// UndoOne reverts the most recently applied modification and returns it.
// Returns ErrCannotUndo when nothing has been applied. If the revert itself
// fails, both stacks are left unchanged.
func (m *Manager) UndoOne() (modification.Modification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.undoOneLocked()
}

// RedoOne re-applies the most recently undone modification and returns it.
// Returns ErrCannotRedo when nothing has been undone. If the apply itself
// fails, both stacks are left unchanged.
func (m *Manager) RedoOne() (modification.Modification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.redoOneLocked()
}

// UndoMany undoes up to n modifications, stopping early without error once
// the applied stack is empty. The returned slice lists the modifications in
// the order they were undone; an empty slice means nothing was available.
// A failing revert stops the batch and is returned with the modifications
// undone so far.
func (m *Manager) UndoMany(n int) ([]modification.Modification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var done []modification.Modification
	for range n {
		mod, err := m.undoOneLocked()
		if errors.Is(err, ErrCannotUndo) {
			break
		}
		if err != nil {
			return done, err
		}
		done = append(done, mod)
	}
	return done, nil
}

// RedoMany redoes up to n modifications, stopping early without error once
// the undone stack is empty. The returned slice lists the modifications in
// the order they were redone; an empty slice means nothing was available.
// A failing apply stops the batch and is returned with the modifications
// redone so far.
func (m *Manager) RedoMany(n int) ([]modification.Modification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var done []modification.Modification
	for range n {
		mod, err := m.redoOneLocked()
		if errors.Is(err, ErrCannotRedo) {
			break
		}
		if err != nil {
			return done, err
		}
		done = append(done, mod)
	}
	return done, nil
}

// CanUndo reports whether the applied stack is non-empty.
func (m *Manager) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.applied) > 0
}

// CanRedo reports whether the undone stack is non-empty.
func (m *Manager) CanRedo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undone) > 0
}

// Applied returns a copy of the applied stack, most recent last.
func (m *Manager) Applied() []modification.Modification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]modification.Modification(nil), m.applied...)
}

// Undone returns a copy of the undone stack, most recently undone last.
func (m *Manager) Undone() []modification.Modification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]modification.Modification(nil), m.undone...)
}

// Reset discards both stacks. The book is not touched.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applied = nil
	m.undone = nil
}

func (m *Manager) undoOneLocked() (modification.Modification, error) {
	if len(m.applied) == 0 {
		return nil, ErrCannotUndo
	}
	top := len(m.applied) - 1
	mod := m.applied[top]
	if err := mod.Revert(m.book); err != nil {
		return nil, fmt.Errorf("undo %q: %w", mod.Description(), err)
	}
	m.applied[top] = nil
	m.applied = m.applied[:top]
	m.undone = append(m.undone, mod)
	return mod, nil
}

func (m *Manager) redoOneLocked() (modification.Modification, error) {
	if len(m.undone) == 0 {
		return nil, ErrCannotRedo
	}
	top := len(m.undone) - 1
	mod := m.undone[top]
	if err := mod.Apply(m.book); err != nil {
		return nil, fmt.Errorf("redo %q: %w", mod.Description(), err)
	}
	m.undone[top] = nil
	m.undone = m.undone[:top]
	m.applied = append(m.applied, mod)
	return mod, nil
}
