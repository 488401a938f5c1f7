package state

import (
	"github.com/nibzard/tasklist-go/internal/remote"
	"github.com/nibzard/tasklist-go/internal/task"
)

// Action is an input to Reduce: a user intent or the outcome of a request.
type Action interface {
	action()
}

// User intents.
type (
	// Reload fetches the full list again.
	Reload struct{}
	// SetSearch replaces the search term.
	SetSearch struct{ Term string }
	// BeginEdit opens the edit form on a copy of a cached task.
	BeginEdit struct{ ID int }
	// BeginCreate opens the new-task form with a blank draft.
	BeginCreate struct{}
	// EditField replaces one text field of the open draft.
	EditField struct {
		Field task.Field
		Value string
	}
	// SetCompleted replaces the completed flag of the open draft.
	SetCompleted struct{ Completed bool }
	// Cancel closes the open form and discards its draft.
	Cancel struct{}
	// Save sends the open draft to the service.
	Save struct{}
	// Delete removes a task on the service.
	Delete struct{ ID int }
	// DismissError clears the surfaced error.
	DismissError struct{}
)

// Request outcomes produced by Execute.
type (
	// Loaded carries a successful list response.
	Loaded struct{ Tasks []task.Task }
	// Created carries the server's record for a new task.
	Created struct{ Task task.Task }
	// Updated carries the value the service accepted.
	Updated struct{ Task task.Task }
	// Deleted reports a successful delete.
	Deleted struct{ ID int }
	// Failed reports a failed request.
	Failed struct {
		Op  remote.Op
		Err error
	}
)

func (Reload) action()       {}
func (SetSearch) action()    {}
func (BeginEdit) action()    {}
func (BeginCreate) action()  {}
func (EditField) action()    {}
func (SetCompleted) action() {}
func (Cancel) action()       {}
func (Save) action()         {}
func (Delete) action()       {}
func (DismissError) action() {}
func (Loaded) action()       {}
func (Created) action()      {}
func (Updated) action()      {}
func (Deleted) action()      {}
func (Failed) action()       {}
