package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const prompt = "> "

func newShellCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Read commands interactively",
		Long: "Read commands from standard input, one per line, until exit or end of input.\n" +
			"Type help for the list of commands.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, flags)
		},
	}
}

// runShell keeps reading after a failed command; only storage and config
// faults at start-up end it with an error.
func runShell(cmd *cobra.Command, flags *rootFlags) error {
	ctx := cmd.Context()
	session, closeFn, err := openSession(ctx, cmd, flags)
	if err != nil {
		return err
	}
	defer closeFn()

	out := &formatter{json: flags.jsonMode, out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		if !flags.jsonMode {
			fmt.Fprint(cmd.OutOrStdout(), prompt)
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		res, err := session.Execute(ctx, line)
		if err != nil {
			if werr := out.failure(line, err); werr != nil {
				return sysError("write output", werr)
			}
			if ctx.Err() != nil {
				return sysError("interrupted", ctx.Err())
			}
			continue
		}
		if werr := out.result(line, res); werr != nil {
			return sysError("write output", werr)
		}
		if res.Exit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return sysError("read input", err)
	}
	if !flags.jsonMode {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}
