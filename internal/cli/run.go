package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newRunCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run FILE",
		Short: "Run a script of commands in one session",
		Long: "Run every line of FILE as a command in a single session, so undo and redo\n" +
			"apply across lines. Blank lines and lines starting with # are skipped.\n" +
			"The script stops at the first failing command.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, flags, args[0])
		},
	}
}

func runScript(cmd *cobra.Command, flags *rootFlags, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return userError("open script", err)
	}
	defer f.Close()

	ctx := cmd.Context()
	session, closeFn, err := openSession(ctx, cmd, flags)
	if err != nil {
		return err
	}
	defer closeFn()

	out := &formatter{json: flags.jsonMode, out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		res, err := session.Execute(ctx, line)
		if err != nil {
			if flags.jsonMode {
				if werr := out.failure(line, err); werr != nil {
					return sysError("write output", werr)
				}
			}
			return classify(fmt.Sprintf("%s:%d: ", path, lineNo), err)
		}
		if werr := out.result(line, res); werr != nil {
			return sysError("write output", werr)
		}
		if res.Exit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return sysError("read script", err)
	}
	return nil
}
