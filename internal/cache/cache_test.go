package cache

import (
	"errors"
	"reflect"
	"testing"

	"github.com/nibzard/tasklist-go/internal/task"
)

func sample() []task.Task {
	return []task.Task{
		{ID: 1, Title: "What is Go?", Description: "A language", DueDate: "2024-01-01"},
		{ID: 3, Title: "What is a goroutine?", Description: "A green thread", DueDate: "2024-01-03"},
		{ID: 5, Title: "Why channels", Description: "Sharing by communicating", DueDate: "2024-01-05", Completed: true},
	}
}

func ids(tasks []task.Task) []int {
	out := make([]int, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestLoadKeepsServerOrder(t *testing.T) {
	c := New().Load(sample())
	if c.Len() != 3 {
		t.Fatalf("Len: got %d, want 3", c.Len())
	}
	if got := ids(c.Tasks()); !reflect.DeepEqual(got, []int{1, 3, 5}) {
		t.Errorf("order: got %v, want [1 3 5]", got)
	}
}

func TestLoadCopiesInput(t *testing.T) {
	in := sample()
	c := New().Load(in)
	in[0].Title = "mutated"
	if got, _ := c.Get(1); got.Title != "What is Go?" {
		t.Errorf("cache shares caller slice: got %q", got.Title)
	}
}

func TestInsertAppends(t *testing.T) {
	before := New(sample()...)
	after := before.Insert(task.Task{ID: 7, Title: "Q1", Description: "A1", DueDate: "2024-01-01"})

	if got := ids(after.Tasks()); !reflect.DeepEqual(got, []int{1, 3, 5, 7}) {
		t.Errorf("after Insert: got %v", got)
	}
	if before.Len() != 3 {
		t.Errorf("receiver changed: Len %d", before.Len())
	}
}

func TestInsertDoesNotAliasSiblings(t *testing.T) {
	base := New(sample()...)
	a := base.Insert(task.Task{ID: 10, Title: "a"})
	b := base.Insert(task.Task{ID: 11, Title: "b"})

	if got, ok := a.Get(10); !ok || got.Title != "a" {
		t.Errorf("a lost its insert: %+v", a.Tasks())
	}
	if _, ok := b.Get(10); ok {
		t.Errorf("b sees a's insert: %+v", b.Tasks())
	}
}

func TestReplacePreservesPosition(t *testing.T) {
	before := New(sample()...)
	orig, _ := before.Get(3)
	edited := orig.With(task.FieldDescription, "new answer")

	after, err := before.Replace(3, edited)
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	want := sample()
	want[1].Description = "new answer"
	if !reflect.DeepEqual(after.Tasks(), want) {
		t.Errorf("after Replace:\n got %+v\nwant %+v", after.Tasks(), want)
	}
	if got, _ := before.Get(3); got.Description != "A green thread" {
		t.Errorf("receiver changed: %+v", got)
	}
}

func TestReplaceForcesID(t *testing.T) {
	after, err := New(sample()...).Replace(3, task.Task{ID: 99, Title: "x", DueDate: "2024-01-01"})
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if after.Index(3) != 1 || after.Index(99) != -1 {
		t.Errorf("ids after Replace: %v", ids(after.Tasks()))
	}
}

func TestReplaceMissing(t *testing.T) {
	before := New(sample()...)
	after, err := before.Replace(42, task.Task{Title: "x"})
	if !errors.Is(err, ErrNotFoundLocal) {
		t.Fatalf("Replace missing: got %v, want ErrNotFoundLocal", err)
	}
	if !after.Equal(before) {
		t.Errorf("cache changed on missing Replace")
	}
}

func TestRemove(t *testing.T) {
	before := New(sample()...)
	after, err := before.Remove(3)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if got := ids(after.Tasks()); !reflect.DeepEqual(got, []int{1, 5}) {
		t.Errorf("after Remove: got %v, want [1 5]", got)
	}
	if before.Len() != 3 {
		t.Errorf("receiver changed: Len %d", before.Len())
	}
}

func TestRemoveMissing(t *testing.T) {
	before := New(sample()...)
	after, err := before.Remove(42)
	if !errors.Is(err, ErrNotFoundLocal) {
		t.Fatalf("Remove missing: got %v, want ErrNotFoundLocal", err)
	}
	if !after.Equal(before) {
		t.Errorf("cache changed on missing Remove")
	}
}

func TestRemoveLastAndEmpty(t *testing.T) {
	c, err := New(task.Task{ID: 1}).Remove(1)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len: got %d, want 0", c.Len())
	}
	if _, err := c.Remove(1); !errors.Is(err, ErrNotFoundLocal) {
		t.Errorf("Remove on empty: got %v", err)
	}
}

func TestFilter(t *testing.T) {
	c := New(sample()...)

	tests := []struct {
		name string
		term string
		want []int
	}{
		{"empty term matches all", "", []int{1, 3, 5}},
		{"case insensitive", "WHAT", []int{1, 3}},
		{"substring", "goroutine", []int{3}},
		{"title only", "language", []int{}},
		{"no match", "rust", []int{}},
		{"mixed case term", "ChAnNeL", []int{5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(c, tt.term))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%q): got %v, want %v", tt.term, got, tt.want)
			}
		})
	}
}

func TestFilterIdempotentAndNonDestructive(t *testing.T) {
	c := New(sample()...)
	snapshot := c.Tasks()

	first := Filter(c, "what")
	second := Filter(c, "what")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Filter not idempotent: %v vs %v", first, second)
	}

	// Filtering the projection again with the same term changes nothing.
	again := Filter(New(first...), "what")
	if !reflect.DeepEqual(first, again) {
		t.Errorf("re-applying the term changed the result: %v vs %v", first, again)
	}

	first[0].Title = "mutated"
	if !reflect.DeepEqual(c.Tasks(), snapshot) {
		t.Errorf("Filter result aliases the cache")
	}
}
