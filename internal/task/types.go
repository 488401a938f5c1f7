// Package task defines the task record exchanged with the tasklist service.
package task

import (
	"fmt"
	"strings"
)

// Task is a question/answer record as stored by the service.
type Task struct {
	ID          int    `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	DueDate     Date   `json:"due_date" yaml:"due_date"`
	Completed   bool   `json:"completed" yaml:"completed"`
}

// Input is a task without a server-assigned id. It is the request body for
// create and the shape of a new draft.
type Input struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	DueDate     Date   `json:"due_date" yaml:"due_date"`
	Completed   bool   `json:"completed" yaml:"completed"`
}

// NewInput returns the blank template used for new drafts.
func NewInput() Input {
	return Input{}
}

// Input returns the task without its id.
func (t Task) Input() Input {
	return Input{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Completed:   t.Completed,
	}
}

// WithID attaches a server id to the input.
func (in Input) WithID(id int) Task {
	return Task{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Completed:   in.Completed,
	}
}

// Field names an editable text field of a draft.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldDueDate     Field = "due_date"
)

// Fields lists the text fields in form order.
func Fields() []Field {
	return []Field{FieldTitle, FieldDescription, FieldDueDate}
}

// ParseField resolves a field name.
func ParseField(name string) (Field, bool) {
	switch Field(strings.TrimSpace(name)) {
	case FieldTitle:
		return FieldTitle, true
	case FieldDescription:
		return FieldDescription, true
	case FieldDueDate, "due", "due-date":
		return FieldDueDate, true
	}
	return "", false
}

// With returns a copy of the input with one text field replaced.
func (in Input) With(field Field, value string) Input {
	switch field {
	case FieldTitle:
		in.Title = value
	case FieldDescription:
		in.Description = value
	case FieldDueDate:
		in.DueDate = Date(value)
	}
	return in
}

// Value returns the current value of a text field.
func (in Input) Value(field Field) string {
	switch field {
	case FieldTitle:
		return in.Title
	case FieldDescription:
		return in.Description
	case FieldDueDate:
		return string(in.DueDate)
	}
	return ""
}

// With returns a copy of the task with one text field replaced. The id is kept.
func (t Task) With(field Field, value string) Task {
	return t.Input().With(field, value).WithID(t.ID)
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks that the input can be sent to the service.
func (in Input) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return &ValidationError{
			Path: string(FieldTitle),
			Err:  fmt.Errorf("must not be empty"),
		}
	}
	if !in.DueDate.Valid() {
		return &ValidationError{
			Path: string(FieldDueDate),
			Err:  fmt.Errorf("expected %s, got %q", DateLayoutHint, string(in.DueDate)),
		}
	}
	return nil
}
