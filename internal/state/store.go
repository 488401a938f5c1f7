package state

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/remote"
)

// Store drives Reduce synchronously: each dispatched action runs to
// completion, including any request it issues, before Dispatch returns.
type Store struct {
	client remote.Client
	logger *log.Logger
	state  State
	last   Action // outcome of the most recent request
}

// NewStore creates a store in the initial state.
func NewStore(client remote.Client, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		client: client,
		logger: logger,
		state:  New(),
	}
}

// State returns the current state.
func (s *Store) State() State {
	return s.state
}

// Dispatch applies a and any request it triggers, then returns the new state.
func (s *Store) Dispatch(ctx context.Context, a Action) State {
	var eff Effect
	s.state, eff = Reduce(s.state, a)
	s.logger.Debug("dispatch", "action", ActionName(a))

	for eff != nil {
		result := Execute(ctx, s.client, eff)
		s.last = result
		if f, ok := result.(Failed); ok {
			s.logger.Warn("request failed", "op", string(f.Op), "err", f.Err)
		}
		s.state, eff = Reduce(s.state, result)
	}
	return s.state
}

// LastResult returns the outcome of the most recent request, e.g. Created
// with the server record, or nil before any request.
func (s *Store) LastResult() Action {
	return s.last
}

// Run dispatches actions in order and stops at the first one that leaves
// an error in the state. The error is returned.
func (s *Store) Run(ctx context.Context, actions ...Action) error {
	for _, a := range actions {
		if st := s.Dispatch(ctx, a); st.Err != nil {
			return st.Err
		}
	}
	return nil
}

// ActionName returns a short name for logging, e.g. "BeginEdit".
func ActionName(a Action) string {
	name := fmt.Sprintf("%T", a)
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
