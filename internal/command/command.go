// Package command implements the units of work a user can request. Each
// command executes against a model.Model and produces a Result or a
// command-level *Error carrying a message fit for display.
package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/rolodex/internal/model"
)

// Command is a parsed user request.
type Command interface {
	// Execute runs the command against m. User-facing failures are returned
	// as *Error; any other error indicates a system fault.
	Execute(ctx context.Context, m model.Model) (Result, error)
}

// Result is the outcome of a successful command.
type Result struct {
	// Feedback is shown to the user.
	Feedback string

	// Changed is set when the address book was modified and must be saved.
	Changed bool

	// Exit asks the front end to stop reading commands.
	Exit bool
}

// Error is a command-level failure whose Message is shown to the user
// verbatim.
type Error struct {
	Message string
	Err     error // underlying cause, optional
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds an *Error with a fixed message.
func NewError(message string) *Error {
	return &Error{Message: message}
}

// Errorf builds an *Error from a format string.
func Errorf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// wrap builds an *Error with message that keeps err for errors.Is.
func wrap(message string, err error) *Error {
	return &Error{Message: message, Err: err}
}

// IsUserError reports whether err is a command-level failure.
func IsUserError(err error) bool {
	var ce *Error
	return errors.As(err, &ce)
}
