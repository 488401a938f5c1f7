// Package state holds the client-side state of the task list and the pure
// transition function that evolves it.
//
// A State value is never mutated in place. Reduce takes the current State and
// an Action and returns the next State plus, when the action needs the
// service, an Effect describing the request. Effects are executed outside the
// reducer (see Execute) and their outcome is fed back as another Action.
package state

import (
	"errors"

	"github.com/nibzard/tasklist-go/internal/cache"
	"github.com/nibzard/tasklist-go/internal/remote"
	"github.com/nibzard/tasklist-go/internal/task"
)

// OpNone marks that no request is in flight.
const OpNone remote.Op = ""

var (
	// ErrFormOpen is reported when a form is requested while another is open.
	ErrFormOpen = errors.New("finish or cancel the open form first")
	// ErrRequestPending is reported when a request is issued while another is in flight.
	ErrRequestPending = errors.New("another request is still in progress")
)

// Interaction is the modal state: exactly one of Idle, Editing or Creating.
type Interaction interface {
	interaction()
}

// Idle means no form is open.
type Idle struct{}

// Editing holds the draft of an existing task.
type Editing struct {
	Draft task.Task
}

// Creating holds the draft of a new task.
type Creating struct {
	Draft task.Input
}

func (Idle) interaction()     {}
func (Editing) interaction()  {}
func (Creating) interaction() {}

// State is the whole UI state.
type State struct {
	Cache       cache.Cache
	Search      string
	Interaction Interaction
	Loading     bool
	Pending     remote.Op
	Err         error
	ErrOp       remote.Op // operation that produced Err, OpNone for local errors

	form   int       // bumped each time a form opens
	saving savedForm // form whose save is in flight
}

// savedForm identifies the form a save was issued from and the draft sent.
type savedForm struct {
	form  int
	draft Interaction
}

// New returns the state before the first list request completes.
func New() State {
	return State{
		Interaction: Idle{},
		Loading:     true,
	}
}

// Visible returns the filter projection for the current search term.
func (s State) Visible() []task.Task {
	return cache.Filter(s.Cache, s.Search)
}

// Busy reports whether a request is in flight.
func (s State) Busy() bool {
	return s.Pending != OpNone
}

// IsIdle reports whether no form is open.
func (s State) IsIdle() bool {
	_, ok := s.Interaction.(Idle)
	return ok || s.Interaction == nil
}

// ErrorMessage returns the user-visible text of Err, or "".
func (s State) ErrorMessage() string {
	return remote.UserMessage(s.Err)
}
