// Package cli implements the rolodex command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/rolodex/internal/paths"
)

// Exit codes.
const (
	ExitSuccess   = 0
	ExitUserError = 1 // bad input, rejected command
	ExitSysError  = 2 // storage or config failure
)

// ExitError carries the exit code a failed command should end the process with.
type ExitError struct {
	Code    int
	Message string
	Err     error // underlying cause, optional
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func userError(message string, err error) *ExitError {
	return &ExitError{Code: ExitUserError, Message: message, Err: err}
}

func sysError(message string, err error) *ExitError {
	return &ExitError{Code: ExitSysError, Message: message, Err: err}
}

// ExitCode returns the exit code for err. Errors that are not an ExitError
// come from cobra itself (unknown flag, wrong arity) and count as user errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUserError
}

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

// NewRootCmd creates the top-level "rolodex" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "rolodex",
		Short: "An address book with undo and redo",
		Long: "Rolodex keeps a list of contacts. Every change made in a session can be\n" +
			"undone and redone, one step or many at a time.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (env "+paths.EnvConfigDir+")")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (env "+paths.EnvDataDir+")")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(flags))
	root.AddCommand(newShellCmd(flags))
	root.AddCommand(newRunCmd(flags))

	return root
}

// Execute runs the root command with args and returns the process exit code.
// Errors are printed to stderr.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "rolodex:", err)
	}
	return ExitCode(err)
}
