package ui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tasklist-go/internal/task"
)

// formFocus indexes the modal's fields in tab order.
type formFocus int

const (
	focusTitle formFocus = iota
	focusDescription
	focusDueDate
	focusCompleted
	focusCount
)

// form holds the widgets of the edit/new modal. The draft itself lives in
// state; widgets only keep cursor and scroll positions.
type form struct {
	heading     string
	title       textinput.Model
	description textarea.Model
	dueDate     textinput.Model
	focus       formFocus
}

func newForm(heading string, draft task.Input, width int) *form {
	title := textinput.New()
	title.Placeholder = "Question"
	title.Cursor.SetMode(cursor.CursorStatic)
	title.SetValue(draft.Title)

	desc := textarea.New()
	desc.Placeholder = "Answer"
	desc.ShowLineNumbers = false
	desc.Cursor.SetMode(cursor.CursorStatic)
	desc.SetHeight(3)
	desc.SetValue(draft.Description)

	due := textinput.New()
	due.Placeholder = task.DateLayoutHint
	due.CharLimit = len(task.DateLayout)
	due.Cursor.SetMode(cursor.CursorStatic)
	due.SetValue(string(draft.DueDate))

	f := &form{
		heading:     heading,
		title:       title,
		description: desc,
		dueDate:     due,
	}
	f.setWidth(width)
	f.setFocus(focusTitle)
	return f
}

func (f *form) setWidth(width int) {
	w := width - 12
	if w < 20 {
		w = 20
	}
	if w > 72 {
		w = 72
	}
	f.title.Width = w
	f.dueDate.Width = w
	f.description.SetWidth(w)
}

func (f *form) setFocus(focus formFocus) {
	f.focus = (focus + focusCount) % focusCount
	f.title.Blur()
	f.description.Blur()
	f.dueDate.Blur()
	switch f.focus {
	case focusTitle:
		f.title.Focus()
	case focusDescription:
		f.description.Focus()
	case focusDueDate:
		f.dueDate.Focus()
	}
}

func (f *form) next() { f.setFocus(f.focus + 1) }
func (f *form) prev() { f.setFocus(f.focus - 1) }

// field returns the draft field under focus, or false on the checkbox.
func (f *form) field() (task.Field, bool) {
	switch f.focus {
	case focusTitle:
		return task.FieldTitle, true
	case focusDescription:
		return task.FieldDescription, true
	case focusDueDate:
		return task.FieldDueDate, true
	}
	return "", false
}

// update feeds msg to the focused widget and returns its new value.
func (f *form) update(msg tea.Msg) (string, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case focusTitle:
		f.title, cmd = f.title.Update(msg)
		return f.title.Value(), cmd
	case focusDescription:
		f.description, cmd = f.description.Update(msg)
		return f.description.Value(), cmd
	case focusDueDate:
		f.dueDate, cmd = f.dueDate.Update(msg)
		return f.dueDate.Value(), cmd
	}
	return "", nil
}
