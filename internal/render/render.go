// Package render writes task lists for non-interactive output.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/nibzard/tasklist-go/internal/task"
)

// Format selects an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a --format value. Empty means table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want table, json or yaml)", s)
}

// Headers are the column titles shared by the table output and the TUI.
var Headers = []string{"Question", "Answer", "Submit Date", "Completed"}

// Row returns the display cells of t in Headers order.
func Row(t task.Task) []string {
	return []string{t.Title, t.Description, t.DueDate.Display(), CompletedLabel(t.Completed)}
}

// CompletedLabel renders the completed flag.
func CompletedLabel(done bool) string {
	if done {
		return "Yes"
	}
	return "No"
}

// Write renders tasks to w.
func Write(w io.Writer, tasks []task.Task, format Format) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return err
		}
		return enc.Close()
	case FormatTable, "":
		_, err := io.WriteString(w, Table(tasks)+"\n")
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Table renders tasks as a bordered table.
func Table(tasks []task.Task) string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, Row(t))
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(Headers...).
		Rows(rows...).
		String()
}
