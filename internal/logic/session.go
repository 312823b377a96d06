// Package logic connects user input to the address book: it parses a line,
// runs the resulting command against the model and persists the result.
package logic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/mesh-intelligence/rolodex/internal/command"
	"github.com/mesh-intelligence/rolodex/internal/model"
	"github.com/mesh-intelligence/rolodex/internal/parser"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// Session runs commands one at a time against a single address book.
type Session struct {
	mu     sync.Mutex
	model  *model.Manager
	parser *parser.Parser
	store  types.Storage
	logger *slog.Logger
}

// Option configures a Session.
type Option func(*sessionOptions)

type sessionOptions struct {
	logger       *slog.Logger
	historyLimit int
}

// WithLogger sets the session logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *sessionOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHistoryLimit caps the number of changes kept for undo. Zero keeps all.
func WithHistoryLimit(n int) Option {
	return func(o *sessionOptions) {
		o.historyLimit = n
	}
}

// New loads the address book from store and returns a session over it.
// store must already be attached. New panics if store is nil.
func New(ctx context.Context, store types.Storage, opts ...Option) (*Session, error) {
	if store == nil {
		panic("logic: nil storage")
	}
	o := sessionOptions{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	persons, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading address book: %w", err)
	}
	m := model.New(persons, o.historyLimit)
	for _, p := range m.Rejected() {
		o.logger.Warn("skipping stored person", "person_id", p.PersonID, "name", p.Name)
	}
	o.logger.Debug("address book loaded", "persons", len(persons)-len(m.Rejected()))

	return &Session{
		model:  m,
		parser: parser.New(store),
		store:  store,
		logger: o.logger,
	}, nil
}

// Model returns the model the session operates on.
func (s *Session) Model() model.Model {
	return s.model
}

// Execute parses line, runs it and saves the address book when the command
// changed it. A *command.Error carries a message for the user; any other
// error is a system fault. Changes made before a failure are still saved.
func (s *Session) Execute(ctx context.Context, line string) (command.Result, error) {
	if err := ctx.Err(); err != nil {
		return command.Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cmd, err := s.parser.Parse(line)
	if err != nil {
		s.logger.Debug("command rejected", "line", line, "error", err)
		return command.Result{}, err
	}

	res, err := cmd.Execute(ctx, s.model)
	if err != nil {
		s.logger.Debug("command failed", "command", fmt.Sprintf("%T", cmd), "error", err)
	}
	if res.Changed {
		if saveErr := s.store.Save(ctx, s.model.Persons()); saveErr != nil {
			s.logger.Error("saving address book failed", "error", saveErr)
			return res, errors.Join(err, fmt.Errorf("saving address book: %w", saveErr))
		}
		s.logger.Debug("address book saved", "command", fmt.Sprintf("%T", cmd))
	}
	return res, err
}
