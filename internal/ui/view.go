package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nibzard/tasklist-go/internal/remote"
	"github.com/nibzard/tasklist-go/internal/render"
	"github.com/nibzard/tasklist-go/internal/task"
)

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Q & A List") + "\n")

	if m.showHelp {
		writeHelp(&b)
		return b.String()
	}

	b.WriteString(m.search.View() + "\n\n")
	m.writeError(&b)

	if m.form != nil {
		m.writeForm(&b)
		m.writeStatus(&b)
		return b.String()
	}

	if m.state.Loading {
		b.WriteString("Loading...\n\n")
	}
	m.writeTable(&b)
	m.writeDetail(&b)
	m.writeStatus(&b)
	writeFooter(&b)
	return b.String()
}

// errorBanner returns the text shown for the current error, or "".
func (m *tuiModel) errorBanner() string {
	msg := m.state.ErrorMessage()
	if msg == "" {
		return ""
	}
	if m.state.ErrOp == remote.OpList {
		return "Error fetching data: " + msg
	}
	return "Error: " + msg
}

func (m *tuiModel) writeError(b *strings.Builder) {
	if banner := m.errorBanner(); banner != "" {
		b.WriteString(errorStyle.Render(banner) + "  " + subtleStyle.Render("(x to dismiss)") + "\n\n")
	}
}

func (m *tuiModel) writeTable(b *strings.Builder) {
	visible := m.state.Visible()
	if len(visible) == 0 && !m.state.Loading {
		if m.state.Search != "" {
			b.WriteString(subtleStyle.Render(fmt.Sprintf("No tasks match %q.", m.state.Search)) + "\n\n")
		} else {
			b.WriteString(subtleStyle.Render("No tasks yet. Press n to add one.") + "\n\n")
		}
		return
	}

	rows := make([][]string, 0, len(visible))
	for _, t := range visible {
		rows = append(rows, render.Row(t))
	}
	cursor := m.cursor
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(subtleStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerCellStyle
			case row == cursor:
				return selectedCellStyle
			}
			return cellStyle
		}).
		Headers(render.Headers...).
		Rows(rows...)
	if m.width > 0 {
		tbl = tbl.Width(m.width)
	}
	b.WriteString(tbl.String() + "\n")
}

func (m *tuiModel) writeDetail(b *strings.Builder) {
	t, ok := m.selected()
	if !ok {
		return
	}
	due := t.DueDate.Display()
	if rel := t.DueDate.Relative(m.now()); rel != "" {
		due += " (" + rel + ")"
	}
	b.WriteString(subtleStyle.Render(fmt.Sprintf("#%d due %s", t.ID, due)) + "\n\n")
}

func (m *tuiModel) writeStatus(b *strings.Builder) {
	if !m.state.Busy() {
		return
	}
	b.WriteString(m.spinner.View() + " " + string(m.state.Pending) + "...\n\n")
}

func (m *tuiModel) writeForm(b *strings.Builder) {
	f := m.form
	d, _ := m.draft()

	var body strings.Builder
	body.WriteString(titleStyle.Render(f.heading) + "\n")
	writeField(&body, "Question", f.focus == focusTitle, f.title.View())
	writeField(&body, "Answer", f.focus == focusDescription, f.description.View())
	due := f.dueDate.View()
	if hint := dateHint(d.DueDate); hint != "" {
		due += "\n" + errorStyle.Render(hint)
	}
	writeField(&body, "Submit Date", f.focus == focusDueDate, due)
	writeField(&body, "Completed", f.focus == focusCompleted, checkbox(d.Completed))
	body.WriteString(subtleStyle.Render("tab next • space toggle • ctrl+s save • esc cancel"))

	b.WriteString(modalStyle.Render(body.String()) + "\n\n")
}

func writeField(b *strings.Builder, label string, focused bool, view string) {
	style := labelStyle
	if focused {
		style = focusedLabelStyle
	}
	b.WriteString(style.Render(label) + "\n")
	b.WriteString(view + "\n\n")
}

func checkbox(done bool) string {
	if done {
		return "[x] " + render.CompletedLabel(done)
	}
	return "[ ] " + render.CompletedLabel(done)
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  j/k, ↑/↓     Move selection\n")
	b.WriteString("  /            Search by question\n")
	b.WriteString("  n            New task\n")
	b.WriteString("  e, enter     Edit selected task\n")
	b.WriteString("  d            Delete selected task\n")
	b.WriteString("  r            Reload from the service\n")
	b.WriteString("  x            Dismiss error\n")
	b.WriteString("  ?            Toggle this help screen\n")
	b.WriteString("  q, ctrl+c    Quit\n\n")
	b.WriteString("In a form\n\n")
	b.WriteString("  tab/shift+tab  Next/previous field\n")
	b.WriteString("  space          Toggle completed\n")
	b.WriteString("  ctrl+s         Save\n")
	b.WriteString("  esc            Cancel\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString(subtleStyle.Render("? help • n new • e edit • d delete • r reload • q quit") + "\n")
}

// dateHint is shown under an invalid due date.
func dateHint(d task.Date) string {
	if d == "" || d.Valid() {
		return ""
	}
	return "expected " + task.DateLayoutHint
}
