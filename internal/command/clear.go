package command

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/rolodex/internal/model"
)

const (
	ClearWord = "clear"

	MessageClearSuccess = "Address book has been cleared!"
)

// ClearCommand removes every person. It is undoable like any other change.
type ClearCommand struct{}

func (ClearCommand) Execute(ctx context.Context, m model.Model) (Result, error) {
	if _, err := m.ReplaceAll(MessageClearSuccess, nil); err != nil {
		return Result{}, fmt.Errorf("clear: %w", err)
	}
	return Result{Feedback: MessageClearSuccess, Changed: true}, nil
}
