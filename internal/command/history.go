package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/rolodex/internal/model"
	"github.com/mesh-intelligence/rolodex/internal/modification"
)

const (
	HistoryWord = "history"

	MessageHistoryEmpty = "No changes have been made yet."
)

// HistoryCommand lists the changes available to undo and to redo, most
// recent first.
type HistoryCommand struct{}

func (HistoryCommand) Execute(ctx context.Context, m model.Model) (Result, error) {
	applied, undone := m.History()
	if len(applied) == 0 && len(undone) == 0 {
		return Result{Feedback: MessageHistoryEmpty}, nil
	}
	var b strings.Builder
	writeStack(&b, "Changes that can be undone:", applied)
	if len(undone) > 0 {
		b.WriteString("\n")
		writeStack(&b, "Changes that can be redone:", undone)
	}
	return Result{Feedback: strings.TrimRight(b.String(), "\n")}, nil
}

func writeStack(b *strings.Builder, title string, mods []modification.Modification) {
	b.WriteString(title)
	b.WriteString("\n")
	if len(mods) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for i := len(mods) - 1; i >= 0; i-- {
		desc := strings.ReplaceAll(mods[i].Description(), "\n", " ")
		fmt.Fprintf(b, "  %d. %s\n", len(mods)-i, desc)
	}
}
