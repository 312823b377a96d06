package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/rolodex/internal/model"
)

const (
	DeleteWord = "delete"

	MessageDeleteSuccess = "Deleted person: %s"
	MessageInvalidIndex  = "The person index provided is invalid"

	MessageDeleteUsage = DeleteWord + ": Deletes the person identified by the index number used in the displayed person list.\n" +
		"Format: " + DeleteWord + " INDEX (must be a positive integer)\n" +
		"Example: " + DeleteWord + " 1"
)

// DeleteCommand removes the person at a one-based index of the displayed list.
type DeleteCommand struct {
	Index int
}

func (c DeleteCommand) Execute(ctx context.Context, m model.Model) (Result, error) {
	shown := m.Displayed()
	if c.Index < 1 || c.Index > len(shown) {
		return Result{}, wrap(MessageInvalidIndex, model.ErrInvalidIndex)
	}
	target := shown[c.Index-1]
	if _, err := m.DeletePerson(c.Index - 1); err != nil {
		if errors.Is(err, model.ErrInvalidIndex) {
			return Result{}, wrap(MessageInvalidIndex, err)
		}
		return Result{}, fmt.Errorf("delete person: %w", err)
	}
	return Result{
		Feedback: fmt.Sprintf(MessageDeleteSuccess, target.String()),
		Changed:  true,
	}, nil
}
