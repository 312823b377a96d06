package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/rolodex/internal/command"
	"github.com/mesh-intelligence/rolodex/internal/paths"
)

// env is an isolated config and data directory pair.
type env struct {
	configDir string
	dataDir   string
}

func newEnv(t *testing.T) env {
	t.Helper()
	t.Setenv(paths.EnvConfigDir, "")
	t.Setenv(paths.EnvDataDir, "")
	root := t.TempDir()
	return env{
		configDir: filepath.Join(root, "config"),
		dataDir:   filepath.Join(root, "data"),
	}
}

// run executes rolodex with the env's directories and returns the exit code
// with captured stdout and stderr.
func (e env) run(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...)
	code := Execute(context.Background(), full, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func (e env) script(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "rolodex", cmd.Use)

	for _, name := range []string{"init", "version", "shell", "run"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCmd()
	for _, name := range []string{"config-dir", "data-dir", "json"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "false", cmd.PersistentFlags().Lookup("json").DefValue)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitUserError, ExitCode(userError("bad", nil)))
	assert.Equal(t, ExitSysError, ExitCode(sysError("broken", os.ErrPermission)))
	assert.Equal(t, ExitUserError, ExitCode(os.ErrInvalid))
}

func TestVersion(t *testing.T) {
	e := newEnv(t)
	code, out, _ := e.run(t, "", "version")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "rolodex v"+Version+"\nmodule: "+modulePath+"\n", out)
}

func TestUnknownSubcommand(t *testing.T) {
	e := newEnv(t)
	code, _, stderr := e.run(t, "", "frobnicate")
	assert.Equal(t, ExitUserError, code)
	assert.Contains(t, stderr, "unknown command")
}

func TestInit(t *testing.T) {
	e := newEnv(t)

	code, out, _ := e.run(t, "", "init")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "rolodex initialized successfully")

	data, err := os.ReadFile(filepath.Join(e.configDir, paths.ConfigFileName))
	require.NoError(t, err)
	var cfg configFile
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, "sqlite", cfg.Backend)
	assert.Equal(t, e.dataDir, cfg.DataDir)

	assert.FileExists(t, filepath.Join(e.dataDir, "persons.jsonl"))

	// A second init leaves config.yaml untouched.
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, paths.ConfigFileName), []byte("backend: sqlite\nhistory_limit: 3\n"), 0o644))
	code, _, _ = e.run(t, "", "init")
	require.Equal(t, ExitSuccess, code)
	data, err = os.ReadFile(filepath.Join(e.configDir, paths.ConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "history_limit: 3")
}

func TestInvalidConfig(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.MkdirAll(e.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, paths.ConfigFileName), []byte("backend: sqlite\nlog_level: loud\n"), 0o644))

	code, _, stderr := e.run(t, "exit\n", "shell")
	assert.Equal(t, ExitSysError, code)
	assert.Contains(t, stderr, "unknown log level")
}

func TestShellUndoRedo(t *testing.T) {
	e := newEnv(t)
	input := strings.Join([]string{
		"add n/Alex Yeoh p/87438807",
		"add n/Bernice Yu",
		"undo 2",
		"redo 5",
		"exit",
		"list",
	}, "\n")

	code, out, _ := e.run(t, input, "shell")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "New person added: Alex Yeoh; Phone: 87438807")
	assert.Contains(t, out, "The last 2 change(s) have been undone! (Requested: 2 changes)")
	assert.Contains(t, out, "The last 2 undone change(s) have been restored! (Requested: 5 changes)")
	assert.Contains(t, out, command.MessageExit)
	assert.NotContains(t, out, command.MessageListSuccess, "lines after exit must not run")
}

func TestShellKeepsReadingAfterError(t *testing.T) {
	e := newEnv(t)
	code, out, _ := e.run(t, "redo\nredo 0\nadd n/Alex\n", "shell")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, command.MessageCannotRedo)
	assert.Contains(t, out, command.MessageRedoNotPositive)
	assert.Contains(t, out, "New person added: Alex")
}

func TestShellPersistsBetweenRuns(t *testing.T) {
	e := newEnv(t)
	code, _, _ := e.run(t, "add n/Alex\nadd n/Bernice\ndelete 1\n", "shell")
	require.Equal(t, ExitSuccess, code)

	code, out, _ := e.run(t, "list\nundo\n", "shell")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "1. Bernice")
	assert.NotContains(t, out, "Alex")
	assert.Contains(t, out, command.MessageCannotUndo)
}

func TestShellJSON(t *testing.T) {
	e := newEnv(t)
	code, out, _ := e.run(t, "add n/Alex\nundo 100001\n", "--json", "shell")
	require.Equal(t, ExitSuccess, code)

	var responses []response
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		var r response
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &r), scanner.Text())
		responses = append(responses, r)
	}
	require.Len(t, responses, 2)

	assert.Equal(t, "ok", responses[0].Status)
	assert.Equal(t, "add n/Alex", responses[0].Input)
	assert.Equal(t, "New person added: Alex", responses[0].Feedback)

	assert.Equal(t, "error", responses[1].Status)
	assert.Equal(t, "user", responses[1].Kind)
	assert.Equal(t, command.MessageUndoLimitExceeded, responses[1].Error)
}

func TestRunScript(t *testing.T) {
	e := newEnv(t)
	path := e.script(t,
		"# seed two people",
		"add n/Alex",
		"",
		"add n/Bernice",
		"undo",
		"redo",
		"history",
	)

	code, out, _ := e.run(t, "", "run", path)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "The following change has been restored: \nAdded person: Bernice")
	assert.Contains(t, out, "Changes that can be undone:")
}

func TestRunScriptStopsAtFirstError(t *testing.T) {
	e := newEnv(t)
	path := e.script(t, "add n/Alex", "redo", "add n/Bernice")

	code, out, stderr := e.run(t, "", "run", path)
	assert.Equal(t, ExitUserError, code)
	assert.Contains(t, stderr, path+":2: "+command.MessageCannotRedo)
	assert.NotContains(t, out, "Bernice")
}

func TestRunMissingScript(t *testing.T) {
	e := newEnv(t)
	code, _, stderr := e.run(t, "", "run", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Equal(t, ExitUserError, code)
	assert.Contains(t, stderr, "open script")
}

func TestRunRequiresOneArg(t *testing.T) {
	e := newEnv(t)
	code, _, _ := e.run(t, "", "run")
	assert.Equal(t, ExitUserError, code)
}
