package remotetest

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/nibzard/tasklist-go/internal/remote"
	"github.com/nibzard/tasklist-go/internal/task"
)

func seed() []task.Task {
	return []task.Task{
		{ID: 1, Title: "What is Go?", Description: "A language", DueDate: "2024-01-01"},
		{ID: 3, Title: "What is a channel?", Description: "A pipe", DueDate: "2024-01-03", Completed: true},
	}
}

func TestServerRoundTrip(t *testing.T) {
	srv := NewServer(t, seed()...)
	c := remote.NewHTTPClient(srv.URL)
	ctx := context.Background()

	tasks, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("List: got %d, want 2", len(tasks))
	}

	created, err := c.Create(ctx, task.Input{Title: "Q1", Description: "A1", DueDate: "2024-01-01"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID != 4 {
		t.Errorf("Create: got id %d, want 4", created.ID)
	}

	if err := c.Update(ctx, 3, task.Input{Title: "What is a channel?", Description: "new answer", DueDate: "2024-01-03"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := c.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	stored := srv.Tasks()
	if len(stored) != 2 || stored[0].ID != 3 || stored[1].ID != 4 {
		t.Fatalf("stored: got %+v", stored)
	}
	if stored[0].Description != "new answer" || stored[0].Completed {
		t.Errorf("updated task: got %+v", stored[0])
	}

	ids := srv.RequestIDs()
	if len(ids) != 4 {
		t.Fatalf("RequestIDs: got %d, want 4", len(ids))
	}
	seen := make(map[string]bool)
	for _, id := range ids {
		if id == "" || seen[id] {
			t.Errorf("request ids must be unique and non-empty: %v", ids)
		}
		seen[id] = true
	}
}

func TestServerFailNext(t *testing.T) {
	srv := NewServer(t)
	c := remote.NewHTTPClient(srv.URL)

	srv.FailNext(http.StatusInternalServerError, "database unavailable")
	_, err := c.List(context.Background())
	if got := remote.UserMessage(err); got != "database unavailable" {
		t.Errorf("UserMessage: got %q", got)
	}

	tasks, err := c.List(context.Background())
	if err != nil || len(tasks) != 0 {
		t.Errorf("second List: got %v, %v", tasks, err)
	}
}

func TestServerNotFound(t *testing.T) {
	srv := NewServer(t)
	c := remote.NewHTTPClient(srv.URL)

	err := c.Delete(context.Background(), 42)
	var f *remote.Failure
	if !errors.As(err, &f) || f.Status != http.StatusNotFound || f.Message != "Not found." {
		t.Errorf("Delete missing: got %v", err)
	}
}

func TestScripted(t *testing.T) {
	s := NewScripted(seed()...)
	ctx := context.Background()

	s.SetNextID(7)
	created, err := s.Create(ctx, task.Input{Title: "Q1"})
	if err != nil || created.ID != 7 {
		t.Fatalf("Create: got %+v, %v", created, err)
	}

	s.Fail(remote.OpUpdate, ServiceFailure(remote.OpUpdate, 400, "nope"))
	if err := s.Update(ctx, 1, task.Input{Title: "x"}); remote.UserMessage(err) != "nope" {
		t.Errorf("Update: got %v", err)
	}
	if s.Stored()[0].Title != "What is Go?" {
		t.Error("failed update must not change stored tasks")
	}
	s.Recover(remote.OpUpdate)
	if err := s.Update(ctx, 1, task.Input{Title: "x"}); err != nil {
		t.Errorf("Update after Recover: %v", err)
	}

	calls := s.Calls()
	if len(calls) != 3 || calls[0].Op != remote.OpCreate || calls[2].ID != 1 {
		t.Errorf("Calls: got %+v", calls)
	}
}
