// Package cache holds the local mirror of the service's task collection.
//
// A Cache is a value: every operation returns a new Cache and leaves the
// receiver unchanged, so earlier states stay valid after later mutations.
package cache

import (
	"errors"
	"fmt"

	"github.com/nibzard/tasklist-go/internal/task"
)

// ErrNotFoundLocal is returned when a mutation targets an id the cache does not hold.
var ErrNotFoundLocal = errors.New("task not found in local list")

// Cache is an ordered list of tasks: server list order, then local creates.
type Cache struct {
	tasks []task.Task
}

// New returns a cache holding tasks in the given order.
func New(tasks ...task.Task) Cache {
	return Cache{tasks: clone(tasks)}
}

// Load replaces the entire contents.
func (c Cache) Load(tasks []task.Task) Cache {
	return Cache{tasks: clone(tasks)}
}

// Insert appends t.
func (c Cache) Insert(t task.Task) Cache {
	next := make([]task.Task, len(c.tasks), len(c.tasks)+1)
	copy(next, c.tasks)
	return Cache{tasks: append(next, t)}
}

// Replace substitutes the task with the given id in place.
// The stored task always carries id, whatever t.ID says.
func (c Cache) Replace(id int, t task.Task) (Cache, error) {
	i := c.Index(id)
	if i < 0 {
		return c, fmt.Errorf("replace task %d: %w", id, ErrNotFoundLocal)
	}
	next := clone(c.tasks)
	t.ID = id
	next[i] = t
	return Cache{tasks: next}, nil
}

// Remove deletes the task with the given id.
func (c Cache) Remove(id int) (Cache, error) {
	i := c.Index(id)
	if i < 0 {
		return c, fmt.Errorf("remove task %d: %w", id, ErrNotFoundLocal)
	}
	next := make([]task.Task, 0, len(c.tasks)-1)
	next = append(next, c.tasks[:i]...)
	next = append(next, c.tasks[i+1:]...)
	return Cache{tasks: next}, nil
}

// Index returns the position of id, or -1.
func (c Cache) Index(id int) int {
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns the task with the given id.
func (c Cache) Get(id int) (task.Task, bool) {
	if i := c.Index(id); i >= 0 {
		return c.tasks[i], true
	}
	return task.Task{}, false
}

// Len returns the number of tasks.
func (c Cache) Len() int {
	return len(c.tasks)
}

// Tasks returns a copy of the tasks in order.
func (c Cache) Tasks() []task.Task {
	return clone(c.tasks)
}

// Equal reports whether both caches hold the same tasks in the same order.
func (c Cache) Equal(other Cache) bool {
	if len(c.tasks) != len(other.tasks) {
		return false
	}
	for i := range c.tasks {
		if c.tasks[i] != other.tasks[i] {
			return false
		}
	}
	return true
}

func clone(tasks []task.Task) []task.Task {
	out := make([]task.Task, len(tasks))
	copy(out, tasks)
	return out
}
