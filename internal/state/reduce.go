package state

import (
	"fmt"

	"github.com/nibzard/tasklist-go/internal/cache"
	"github.com/nibzard/tasklist-go/internal/remote"
	"github.com/nibzard/tasklist-go/internal/task"
)

// Reduce returns the state after applying a, plus the request to run, if any.
//
// The cache only changes on Loaded, Created, Updated and Deleted, i.e. after
// the service confirmed the write. Requests are serialized: while one is in
// flight, actions that would issue another are rejected with ErrRequestPending.
func Reduce(s State, a Action) (State, Effect) {
	if s.Interaction == nil {
		s.Interaction = Idle{}
	}

	switch a := a.(type) {
	case Reload:
		if s.Busy() {
			return s.fail(OpNone, ErrRequestPending), nil
		}
		s = s.issue(remote.OpList)
		s.Loading = true
		return s, LoadEffect{}

	case SetSearch:
		s.Search = a.Term
		return s, nil

	case BeginEdit:
		if !s.IsIdle() {
			return s.fail(OpNone, ErrFormOpen), nil
		}
		t, ok := s.Cache.Get(a.ID)
		if !ok {
			return s.fail(OpNone, fmt.Errorf("edit task %d: %w", a.ID, cache.ErrNotFoundLocal)), nil
		}
		s.form++
		s.Interaction = Editing{Draft: t}
		return s, nil

	case BeginCreate:
		if !s.IsIdle() {
			return s.fail(OpNone, ErrFormOpen), nil
		}
		s.form++
		s.Interaction = Creating{Draft: task.NewInput()}
		return s, nil

	case EditField:
		switch in := s.Interaction.(type) {
		case Editing:
			s.Interaction = Editing{Draft: in.Draft.With(a.Field, a.Value)}
		case Creating:
			s.Interaction = Creating{Draft: in.Draft.With(a.Field, a.Value)}
		}
		return s, nil

	case SetCompleted:
		switch in := s.Interaction.(type) {
		case Editing:
			d := in.Draft
			d.Completed = a.Completed
			s.Interaction = Editing{Draft: d}
		case Creating:
			d := in.Draft
			d.Completed = a.Completed
			s.Interaction = Creating{Draft: d}
		}
		return s, nil

	case Cancel:
		s.Interaction = Idle{}
		return s, nil

	case Save:
		return s.save()

	case Delete:
		if s.Busy() {
			return s.fail(OpNone, ErrRequestPending), nil
		}
		if s.Cache.Index(a.ID) < 0 {
			return s.fail(OpNone, fmt.Errorf("delete task %d: %w", a.ID, cache.ErrNotFoundLocal)), nil
		}
		return s.issue(remote.OpDelete), DeleteEffect{ID: a.ID}

	case DismissError:
		s.Err = nil
		s.ErrOp = OpNone
		return s, nil

	case Loaded:
		s.Pending = OpNone
		s.Loading = false
		s.Cache = s.Cache.Load(a.Tasks)
		return s, nil

	case Created:
		s.Pending = OpNone
		s.Cache = s.Cache.Insert(a.Task)
		s = s.closeSaved()
		return s, nil

	case Updated:
		s.Pending = OpNone
		s = s.closeSaved()
		next, err := s.Cache.Replace(a.Task.ID, a.Task)
		if err != nil {
			return s.fail(OpNone, err), nil
		}
		s.Cache = next
		return s, nil

	case Deleted:
		s.Pending = OpNone
		s = s.closeEditing(a.ID)
		next, err := s.Cache.Remove(a.ID)
		if err != nil {
			return s.fail(OpNone, err), nil
		}
		s.Cache = next
		return s, nil

	case Failed:
		s.Pending = OpNone
		s.saving = savedForm{}
		if a.Op == remote.OpList {
			s.Loading = false
		}
		return s.fail(a.Op, a.Err), nil
	}

	return s, nil
}

func (s State) save() (State, Effect) {
	switch in := s.Interaction.(type) {
	case Editing:
		if s.Busy() {
			return s.fail(OpNone, ErrRequestPending), nil
		}
		if err := in.Draft.Input().Validate(); err != nil {
			return s.fail(OpNone, err), nil
		}
		s.saving = savedForm{form: s.form, draft: in}
		return s.issue(remote.OpUpdate), UpdateEffect{Task: in.Draft}

	case Creating:
		if s.Busy() {
			return s.fail(OpNone, ErrRequestPending), nil
		}
		if err := in.Draft.Validate(); err != nil {
			return s.fail(OpNone, err), nil
		}
		s.saving = savedForm{form: s.form, draft: in}
		return s.issue(remote.OpCreate), CreateEffect{Input: in.Draft}
	}
	return s, nil
}

// issue marks op in flight and clears the previous error.
func (s State) issue(op remote.Op) State {
	s.Pending = op
	s.Err = nil
	s.ErrOp = OpNone
	return s
}

func (s State) fail(op remote.Op, err error) State {
	s.Err = err
	s.ErrOp = op
	return s
}

// closeSaved returns to Idle if the form whose save just succeeded is still
// open with the draft that was sent. A form reopened or edited since stays.
func (s State) closeSaved() State {
	if s.saving.draft != nil && s.saving.form == s.form && s.Interaction == s.saving.draft {
		s.Interaction = Idle{}
	}
	s.saving = savedForm{}
	return s
}

// closeEditing returns to Idle if the edit form is open on id.
func (s State) closeEditing(id int) State {
	if in, ok := s.Interaction.(Editing); ok && in.Draft.ID == id {
		s.Interaction = Idle{}
	}
	return s
}
