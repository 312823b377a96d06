// Package parser turns a line of user input into a command.Command.
//
// Input is a command word followed by arguments. Person fields are given as
// prefixed arguments (n/NAME p/PHONE e/EMAIL a/ADDRESS t/TAG); a prefix is
// only recognised at the start of the arguments or after whitespace.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/mesh-intelligence/rolodex/internal/command"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// Parse errors shown to the user.
const (
	MessageUnknownCommand = "Unknown command"
	MessageInvalidFormat  = "Invalid command format! \n%s"
)

// Parser builds commands. File-based commands receive the storage handle
// the Parser was built with.
type Parser struct {
	store types.Storage
}

// New returns a Parser that hands store to every file-based command.
func New(store types.Storage) *Parser {
	return &Parser{store: store}
}

// Parse returns the command described by line, or a *command.Error when the
// line is malformed. No command runs during parsing.
func (p *Parser) Parse(line string) (command.Command, error) {
	word, args := splitWord(strings.TrimSpace(line))

	switch word {
	case command.AddWord:
		return parseAdd(args)
	case command.EditWord:
		return parseEdit(args)
	case command.DeleteWord:
		index, err := parseIndex(args)
		if err != nil {
			return nil, command.Errorf(MessageInvalidFormat, command.MessageDeleteUsage)
		}
		return command.DeleteCommand{Index: index}, nil
	case command.ClearWord:
		return command.ClearCommand{}, nil
	case command.ListWord:
		return command.ListCommand{}, nil
	case command.FindWord:
		if args == "" {
			return nil, command.Errorf(MessageInvalidFormat, command.MessageFindUsage)
		}
		return command.FindCommand{Keywords: strings.Fields(args)}, nil
	case command.UndoWord:
		n, err := parseChangeCount(args, command.MessageUndoNotPositive, command.MessageUndoLimitExceeded)
		if err != nil {
			return nil, err
		}
		return command.NewUndoCommand(n), nil
	case command.RedoWord:
		n, err := parseChangeCount(args, command.MessageRedoNotPositive, command.MessageRedoLimitExceeded)
		if err != nil {
			return nil, err
		}
		return command.NewRedoCommand(n), nil
	case command.HistoryWord:
		return command.HistoryCommand{}, nil
	case command.ExportWord:
		if args == "" {
			return nil, command.Errorf(MessageInvalidFormat, command.MessageExportUsage)
		}
		return command.NewExportCommand(p.store, args), nil
	case command.ImportWord:
		if args == "" {
			return nil, command.Errorf(MessageInvalidFormat, command.MessageImportUsage)
		}
		return command.NewImportCommand(p.store, args), nil
	case command.HelpWord:
		return command.HelpCommand{}, nil
	case command.ExitWord:
		return command.ExitCommand{}, nil
	default:
		return nil, command.NewError(MessageUnknownCommand)
	}
}

// splitWord separates the command word from its arguments at the first run
// of whitespace of any kind.
func splitWord(line string) (word, args string) {
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i:])
}

// parseChangeCount reads the optional NUMBER_OF_CHANGES argument of undo and
// redo. An absent argument means 1.
func parseChangeCount(args, notPositive, limitExceeded string) (int, error) {
	if args == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(args)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(args, "-") {
			return 0, command.NewError(limitExceeded)
		}
		return 0, command.NewError(notPositive)
	}
	if n <= 0 {
		return 0, command.NewError(notPositive)
	}
	if n > command.MaxChanges {
		return 0, command.NewError(limitExceeded)
	}
	return n, nil
}

// parseIndex reads a one-based index.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("index %d is not positive", n)
	}
	return n, nil
}

func parseAdd(args string) (command.Command, error) {
	fields := tokenize(args)
	names, ok := fields.values[prefixName]
	if fields.preamble != "" || !ok {
		return nil, command.Errorf(MessageInvalidFormat, command.MessageAddUsage)
	}
	person, err := types.NewPerson(
		last(names),
		last(fields.values[prefixPhone]),
		last(fields.values[prefixEmail]),
		last(fields.values[prefixAddress]),
		fields.tags(),
	)
	if err != nil {
		return nil, &command.Error{Message: fmt.Sprintf(command.MessageInvalidFields, err), Err: err}
	}
	return command.AddCommand{Person: person}, nil
}

func parseEdit(args string) (command.Command, error) {
	fields := tokenize(args)
	index, err := parseIndex(fields.preamble)
	if err != nil {
		return nil, command.Errorf(MessageInvalidFormat, command.MessageEditUsage)
	}

	var edit command.EditFields
	if v, ok := fields.values[prefixName]; ok {
		edit.Name = ptr(last(v))
	}
	if v, ok := fields.values[prefixPhone]; ok {
		edit.Phone = ptr(last(v))
	}
	if v, ok := fields.values[prefixEmail]; ok {
		edit.Email = ptr(last(v))
	}
	if v, ok := fields.values[prefixAddress]; ok {
		edit.Address = ptr(last(v))
	}
	if _, ok := fields.values[prefixTag]; ok {
		edit.Tags = fields.tags()
		edit.SetTags = true
	}
	if !edit.Any() {
		return nil, command.NewError(command.MessageNotEdited)
	}
	return command.EditCommand{Index: index, Fields: edit}, nil
}

func last(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[len(values)-1]
}

func ptr(s string) *string {
	return &s
}
