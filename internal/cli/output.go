package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mesh-intelligence/rolodex/internal/command"
)

// response is one JSON line written per executed command in --json mode.
type response struct {
	Status   string `json:"status"` // "ok" or "error"
	Input    string `json:"input"`
	Feedback string `json:"feedback,omitempty"`
	Error    string `json:"error,omitempty"`
	Kind     string `json:"kind,omitempty"` // "user" or "system"
}

// formatter writes command outcomes as text or JSON lines.
type formatter struct {
	json   bool
	out    io.Writer
	errOut io.Writer
}

// result reports a command that succeeded.
func (f *formatter) result(input string, res command.Result) error {
	if f.json {
		return json.NewEncoder(f.out).Encode(response{Status: "ok", Input: input, Feedback: res.Feedback})
	}
	if res.Feedback != "" {
		_, err := fmt.Fprintln(f.out, res.Feedback)
		return err
	}
	return nil
}

// failure reports a command that failed. User errors go to the normal output
// in text mode since they are the answer to what was typed.
func (f *formatter) failure(input string, err error) error {
	kind := "system"
	if command.IsUserError(err) {
		kind = "user"
	}
	if f.json {
		return json.NewEncoder(f.out).Encode(response{Status: "error", Input: input, Error: err.Error(), Kind: kind})
	}
	if kind == "user" {
		_, werr := fmt.Fprintln(f.out, err.Error())
		return werr
	}
	_, werr := fmt.Fprintln(f.errOut, "error:", err)
	return werr
}

// classify turns a command failure into an ExitError.
func classify(prefix string, err error) *ExitError {
	var ce *command.Error
	if errors.As(err, &ce) {
		return userError(prefix+ce.Message, nil)
	}
	return sysError(prefix+"command failed", err)
}
