package state

import (
	"context"

	"github.com/nibzard/tasklist-go/internal/remote"
	"github.com/nibzard/tasklist-go/internal/task"
)

// Effect describes one request Reduce wants issued.
type Effect interface {
	effect()
}

type (
	// LoadEffect lists every task.
	LoadEffect struct{}
	// CreateEffect creates a task from a new draft.
	CreateEffect struct{ Input task.Input }
	// UpdateEffect stores an edit draft.
	UpdateEffect struct{ Task task.Task }
	// DeleteEffect removes a task.
	DeleteEffect struct{ ID int }
)

func (LoadEffect) effect()   {}
func (CreateEffect) effect() {}
func (UpdateEffect) effect() {}
func (DeleteEffect) effect() {}

// Execute performs eff against client and returns the outcome as an Action.
// Failures never escape: they come back as Failed.
func Execute(ctx context.Context, client remote.Client, eff Effect) Action {
	switch e := eff.(type) {
	case LoadEffect:
		tasks, err := client.List(ctx)
		if err != nil {
			return Failed{Op: remote.OpList, Err: err}
		}
		return Loaded{Tasks: tasks}

	case CreateEffect:
		created, err := client.Create(ctx, e.Input)
		if err != nil {
			return Failed{Op: remote.OpCreate, Err: err}
		}
		return Created{Task: created}

	case UpdateEffect:
		if err := client.Update(ctx, e.Task.ID, e.Task.Input()); err != nil {
			return Failed{Op: remote.OpUpdate, Err: err}
		}
		return Updated{Task: e.Task}

	case DeleteEffect:
		if err := client.Delete(ctx, e.ID); err != nil {
			return Failed{Op: remote.OpDelete, Err: err}
		}
		return Deleted{ID: e.ID}
	}
	return nil
}
