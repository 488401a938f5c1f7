package cache

import (
	"strings"

	"github.com/nibzard/tasklist-go/internal/task"
)

// Filter returns the tasks whose title contains term, ignoring case, in cache
// order. An empty term matches every task.
func Filter(c Cache, term string) []task.Task {
	if term == "" {
		return c.Tasks()
	}
	needle := strings.ToLower(term)
	out := make([]task.Task, 0, len(c.tasks))
	for _, t := range c.tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			out = append(out, t)
		}
	}
	return out
}
