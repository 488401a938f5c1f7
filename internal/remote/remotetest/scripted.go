// Package remotetest provides test doubles for remote.Client.
package remotetest

import (
	"context"
	"fmt"
	"sync"

	"github.com/nibzard/tasklist-go/internal/remote"
	"github.com/nibzard/tasklist-go/internal/task"
)

// Call records one client invocation.
type Call struct {
	Op    remote.Op
	ID    int
	Input task.Input
}

// Scripted is an in-process remote.Client. It keeps its own task store,
// assigns ids on create, and fails any operation configured with Fail.
type Scripted struct {
	mu     sync.Mutex
	tasks  []task.Task
	nextID int
	errs   map[remote.Op]error
	calls  []Call
}

var _ remote.Client = (*Scripted)(nil)

// NewScripted returns a client whose service holds tasks.
// New ids start after the largest existing id.
func NewScripted(tasks ...task.Task) *Scripted {
	s := &Scripted{
		tasks:  append([]task.Task(nil), tasks...),
		nextID: 1,
		errs:   make(map[remote.Op]error),
	}
	for _, t := range tasks {
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
	return s
}

// SetNextID fixes the id assigned by the next create.
func (s *Scripted) SetNextID(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID = id
}

// Fail makes every call of op return err until Recover is called.
func (s *Scripted) Fail(op remote.Op, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[op] = err
}

// Recover clears a failure set with Fail.
func (s *Scripted) Recover(op remote.Op) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.errs, op)
}

// Calls returns the recorded invocations in order.
func (s *Scripted) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// Stored returns the service-side tasks.
func (s *Scripted) Stored() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]task.Task(nil), s.tasks...)
}

// ServiceFailure builds the failure a service would return with a message payload.
func ServiceFailure(op remote.Op, status int, message string) *remote.Failure {
	return &remote.Failure{
		Kind:    remote.KindService,
		Op:      op,
		Status:  status,
		Message: message,
		Err:     fmt.Errorf("API error status %d", status),
	}
}

// NetworkFailure builds a failure for a request that never completed.
func NetworkFailure(op remote.Op) *remote.Failure {
	return &remote.Failure{
		Kind: remote.KindNetwork,
		Op:   op,
		Err:  fmt.Errorf("connection refused"),
	}
}

func (s *Scripted) record(c Call) error {
	s.calls = append(s.calls, c)
	return s.errs[c.Op]
}

// List implements remote.Client.
func (s *Scripted) List(ctx context.Context) ([]task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(Call{Op: remote.OpList}); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, &remote.Failure{Kind: remote.KindNetwork, Op: remote.OpList, Err: err}
	}
	return append([]task.Task{}, s.tasks...), nil
}

// Create implements remote.Client.
func (s *Scripted) Create(ctx context.Context, in task.Input) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(Call{Op: remote.OpCreate, Input: in}); err != nil {
		return task.Task{}, err
	}
	if err := ctx.Err(); err != nil {
		return task.Task{}, &remote.Failure{Kind: remote.KindNetwork, Op: remote.OpCreate, Err: err}
	}
	created := in.WithID(s.nextID)
	s.nextID++
	s.tasks = append(s.tasks, created)
	return created, nil
}

// Update implements remote.Client.
func (s *Scripted) Update(ctx context.Context, id int, in task.Input) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(Call{Op: remote.OpUpdate, ID: id, Input: in}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return &remote.Failure{Kind: remote.KindNetwork, Op: remote.OpUpdate, Err: err}
	}
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i] = in.WithID(id)
			return nil
		}
	}
	return ServiceFailure(remote.OpUpdate, 404, "Not found.")
}

// Delete implements remote.Client.
func (s *Scripted) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(Call{Op: remote.OpDelete, ID: id}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return &remote.Failure{Kind: remote.KindNetwork, Op: remote.OpDelete, Err: err}
	}
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
			return nil
		}
	}
	return ServiceFailure(remote.OpDelete, 404, "Not found.")
}
