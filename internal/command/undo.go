package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/rolodex/internal/history"
	"github.com/mesh-intelligence/rolodex/internal/model"
)

// Undo messages.
const (
	UndoWord = "undo"

	MessageUndoSuccess         = "The following change has been undone: \n%s"
	MessageUndoSuccessMultiple = "The last %d change(s) have been undone! (Requested: %d changes)"
	MessageCannotUndo          = "There are no more changes to undo!"
	MessageUndoNotPositive     = "Number of changes to undo must be a positive integer!"
	MessageUndoLimitExceeded   = "Number of changes to undo must not exceed 100000!"

	MessageUndoUsage = UndoWord + ": Reverts the last changes to the person list.\n" +
		"Format: " + UndoWord + " [NUMBER_OF_CHANGES]\n" +
		"Parameters: NUMBER_OF_CHANGES (must be a positive integer)\n" +
		"Example: " + UndoWord + " 3\n" +
		"NUMBER_OF_CHANGES must not exceed 100000.\n" +
		"If NUMBER_OF_CHANGES is not specified, it defaults to 1."
)

// UndoCommand reverts the most recently applied changes. The zero value
// undoes a single change.
type UndoCommand struct {
	times int
}

// NewUndoCommand returns an UndoCommand for times changes.
func NewUndoCommand(times int) UndoCommand {
	return UndoCommand{times: times}
}

// Times returns the requested number of changes.
func (c UndoCommand) Times() int {
	if c.times == 0 {
		return 1
	}
	return c.times
}

// Equal reports whether other is an UndoCommand for the same number of changes.
func (c UndoCommand) Equal(other Command) bool {
	o, ok := other.(UndoCommand)
	return ok && o.Times() == c.Times()
}

func (c UndoCommand) Execute(ctx context.Context, m model.Model) (Result, error) {
	n := c.Times()
	if n < 1 || n > MaxChanges {
		panic(fmt.Sprintf("undo: change count %d outside 1..%d", n, MaxChanges))
	}

	if n == 1 {
		mod, err := m.UndoOne()
		if errors.Is(err, history.ErrCannotUndo) {
			return Result{}, wrap(MessageCannotUndo, err)
		}
		if err != nil {
			return Result{}, fmt.Errorf("undo: %w", err)
		}
		return Result{
			Feedback: fmt.Sprintf(MessageUndoSuccess, mod.Description()),
			Changed:  true,
		}, nil
	}

	mods, err := m.UndoMany(n)
	if err != nil {
		return Result{Changed: len(mods) > 0}, fmt.Errorf("undo %d: %w", n, err)
	}
	if len(mods) == 0 {
		return Result{}, wrap(MessageCannotUndo, history.ErrCannotUndo)
	}
	return Result{
		Feedback: fmt.Sprintf(MessageUndoSuccessMultiple, len(mods), n),
		Changed:  true,
	}, nil
}
