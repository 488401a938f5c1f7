// Package ui provides the interactive terminal client.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/nibzard/tasklist-go/internal/remote"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	logger *log.Logger
	now    func() time.Time
	input  io.Reader
	output io.Writer
}

// WithLogger routes dispatch and request logs to logger.
func WithLogger(logger *log.Logger) TUIOption {
	return func(c *tuiConfig) {
		c.logger = logger
	}
}

// WithClock replaces time.Now for relative due dates.
func WithClock(now func() time.Time) TUIOption {
	return func(c *tuiConfig) {
		c.now = now
	}
}

// WithIO runs the program on the given streams instead of the terminal.
// The TTY check is skipped.
func WithIO(in io.Reader, out io.Writer) TUIOption {
	return func(c *tuiConfig) {
		c.input = in
		c.output = out
	}
}

// RunTUI starts the interactive client against client. It returns when the
// user quits or ctx is canceled.
func RunTUI(ctx context.Context, client remote.Client, opts ...TUIOption) error {
	c := &tuiConfig{}
	for _, opt := range opts {
		opt(c)
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if c.output != nil {
		programOpts = append(programOpts, tea.WithInput(c.input), tea.WithOutput(c.output))
	} else {
		if !IsTTY(os.Stdout) {
			return fmt.Errorf("tui requires a TTY (try `tasklist ls`)")
		}
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	model := newTUIModel(ctx, client, c)
	_, err := tea.NewProgram(model, programOpts...).Run()
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
