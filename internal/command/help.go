package command

import (
	"context"
	"strings"

	"github.com/mesh-intelligence/rolodex/internal/model"
)

const (
	HelpWord = "help"

	MessageClearUsage   = ClearWord + ": Removes every person. Can be undone."
	MessageListUsage    = ListWord + ": Shows every person."
	MessageHistoryUsage = HistoryWord + ": Shows the changes that can be undone and redone."
	MessageExitUsage    = ExitWord + ": Ends the session."
	MessageHelpUsage    = HelpWord + ": Shows this message."
)

// Usage is the combined usage text of every command, in the order help
// prints it.
var Usage = strings.Join([]string{
	MessageAddUsage,
	MessageEditUsage,
	MessageDeleteUsage,
	MessageClearUsage,
	MessageListUsage,
	MessageFindUsage,
	MessageUndoUsage,
	MessageRedoUsage,
	MessageHistoryUsage,
	MessageExportUsage,
	MessageImportUsage,
	MessageHelpUsage,
	MessageExitUsage,
}, "\n\n")

// HelpCommand prints the usage of every command.
type HelpCommand struct{}

func (HelpCommand) Execute(ctx context.Context, m model.Model) (Result, error) {
	return Result{Feedback: Usage}, nil
}
