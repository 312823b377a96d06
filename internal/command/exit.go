package command

import (
	"context"

	"github.com/mesh-intelligence/rolodex/internal/model"
)

const (
	ExitWord = "exit"

	MessageExit = "Exiting address book as requested ..."
)

// ExitCommand ends the session.
type ExitCommand struct{}

func (ExitCommand) Execute(ctx context.Context, m model.Model) (Result, error) {
	return Result{Feedback: MessageExit, Exit: true}, nil
}
