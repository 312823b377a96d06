package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/rolodex/internal/history"
	"github.com/mesh-intelligence/rolodex/internal/model"
)

// Redo messages.
const (
	RedoWord = "redo"

	MessageRedoSuccess         = "The following change has been restored: \n%s"
	MessageRedoSuccessMultiple = "The last %d undone change(s) have been restored! (Requested: %d changes)"
	MessageCannotRedo          = "There are no more changes to restore!"
	MessageRedoNotPositive     = "Number of changes to restore must be a positive integer!"
	MessageRedoLimitExceeded   = "Number of changes to restore must not exceed 100000!"

	MessageRedoUsage = RedoWord + ": Restores the last undone changes to the person list.\n" +
		"Format: " + RedoWord + " [NUMBER_OF_CHANGES]\n" +
		"Parameters: NUMBER_OF_CHANGES (must be a positive integer)\n" +
		"Example: " + RedoWord + " 3\n" +
		"NUMBER_OF_CHANGES must not exceed 100000.\n" +
		"If NUMBER_OF_CHANGES is not specified, it defaults to 1."
)

// MaxChanges is the largest batch undo or redo accepts.
const MaxChanges = 100000

// RedoCommand re-applies the most recently undone changes. The zero value
// redoes a single change.
type RedoCommand struct {
	times int
}

// NewRedoCommand returns a RedoCommand for times changes. The parser rejects
// counts outside 1..MaxChanges before construction.
func NewRedoCommand(times int) RedoCommand {
	return RedoCommand{times: times}
}

// DefaultRedoCommand returns the command for a bare "redo": one change.
func DefaultRedoCommand() RedoCommand {
	return NewRedoCommand(1)
}

// Times returns the requested number of changes.
func (c RedoCommand) Times() int {
	if c.times == 0 {
		return 1
	}
	return c.times
}

// Equal reports whether other is a RedoCommand for the same number of changes.
func (c RedoCommand) Equal(other Command) bool {
	o, ok := other.(RedoCommand)
	return ok && o.Times() == c.Times()
}

func (c RedoCommand) Execute(ctx context.Context, m model.Model) (Result, error) {
	n := c.Times()
	if n < 1 || n > MaxChanges {
		panic(fmt.Sprintf("redo: change count %d outside 1..%d", n, MaxChanges))
	}

	if n == 1 {
		mod, err := m.RedoOne()
		if errors.Is(err, history.ErrCannotRedo) {
			return Result{}, wrap(MessageCannotRedo, err)
		}
		if err != nil {
			return Result{}, fmt.Errorf("redo: %w", err)
		}
		return Result{
			Feedback: fmt.Sprintf(MessageRedoSuccess, mod.Description()),
			Changed:  true,
		}, nil
	}

	mods, err := m.RedoMany(n)
	if err != nil {
		return Result{Changed: len(mods) > 0}, fmt.Errorf("redo %d: %w", n, err)
	}
	if len(mods) == 0 {
		return Result{}, wrap(MessageCannotRedo, history.ErrCannotRedo)
	}
	return Result{
		Feedback: fmt.Sprintf(MessageRedoSuccessMultiple, len(mods), n),
		Changed:  true,
	}, nil
}
