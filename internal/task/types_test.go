package task

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestInputValidate(t *testing.T) {
	tests := []struct {
		name     string
		input    Input
		wantPath string
	}{
		{
			name:  "valid",
			input: Input{Title: "Q1", Description: "A1", DueDate: "2024-01-01"},
		},
		{
			name:  "empty description allowed",
			input: Input{Title: "Q1", DueDate: "2024-02-29"},
		},
		{
			name:     "blank title",
			input:    Input{Title: "   ", DueDate: "2024-01-01"},
			wantPath: "title",
		},
		{
			name:     "missing due date",
			input:    Input{Title: "Q1"},
			wantPath: "due_date",
		},
		{
			name:     "impossible date",
			input:    Input{Title: "Q1", DueDate: "2023-02-29"},
			wantPath: "due_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantPath == "" {
				if err != nil {
					t.Fatalf("Validate: unexpected error %v", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate: got %v, want *ValidationError", err)
			}
			if ve.Path != tt.wantPath {
				t.Errorf("Path: got %q, want %q", ve.Path, tt.wantPath)
			}
		})
	}
}

func TestNewInputDefaults(t *testing.T) {
	in := NewInput()
	if in.Title != "" || in.Description != "" || in.DueDate != "" || in.Completed {
		t.Errorf("NewInput: got %+v, want zero template", in)
	}
}

func TestTaskWithKeepsID(t *testing.T) {
	orig := Task{ID: 3, Title: "Q3", Description: "old", DueDate: "2024-03-03"}
	got := orig.With(FieldDescription, "new answer")

	if got.ID != 3 {
		t.Errorf("ID: got %d, want 3", got.ID)
	}
	if got.Description != "new answer" {
		t.Errorf("Description: got %q, want %q", got.Description, "new answer")
	}
	if got.Title != orig.Title || got.DueDate != orig.DueDate || got.Completed != orig.Completed {
		t.Errorf("other fields changed: got %+v from %+v", got, orig)
	}
	if orig.Description != "old" {
		t.Errorf("original mutated: %+v", orig)
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		name string
		want Field
		ok   bool
	}{
		{"title", FieldTitle, true},
		{"description", FieldDescription, true},
		{"due_date", FieldDueDate, true},
		{"due", FieldDueDate, true},
		{"completed", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseField(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseField(%q): got (%q, %v), want (%q, %v)", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestWireShape(t *testing.T) {
	task := Task{ID: 7, Title: "Q1", Description: "A1", DueDate: "2024-01-01"}
	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"id":7,"title":"Q1","description":"A1","due_date":"2024-01-01","completed":false}`
	if string(data) != want {
		t.Errorf("Marshal: got %s, want %s", data, want)
	}

	in, err := json.Marshal(task.Input())
	if err != nil {
		t.Fatalf("Marshal input failed: %v", err)
	}
	wantIn := `{"title":"Q1","description":"A1","due_date":"2024-01-01","completed":false}`
	if string(in) != wantIn {
		t.Errorf("Marshal input: got %s, want %s", in, wantIn)
	}
}

func TestDateDisplay(t *testing.T) {
	tests := []struct {
		date Date
		want string
	}{
		{"2024-01-01", "January 01, 2024"},
		{"2023-12-31", "December 31, 2023"},
		{"2024-07-04", "July 04, 2024"},
		{"", "Invalid Date"},
		{"2024-13-01", "Invalid Date"},
	}

	// The display must not depend on the local zone.
	orig := time.Local
	time.Local = time.FixedZone("UTC-10", -10*60*60)
	defer func() { time.Local = orig }()

	for _, tt := range tests {
		if got := tt.date.Display(); got != tt.want {
			t.Errorf("Display(%q): got %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2024, 1, 1, 23, 30, 0, 0, time.FixedZone("UTC-2", -2*60*60))
	if got := DateOf(ts); got != "2024-01-02" {
		t.Errorf("DateOf: got %q, want 2024-01-02", got)
	}
}

func TestDateRelative(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := Date("2024-01-04").Relative(now); got != "3 days from now" {
		t.Errorf("Relative future: got %q", got)
	}
	if got := Date("2023-12-25").Relative(now); got != "1 week ago" {
		t.Errorf("Relative past: got %q", got)
	}
	if got := Date("nope").Relative(now); got != "" {
		t.Errorf("Relative invalid: got %q, want empty", got)
	}
}
