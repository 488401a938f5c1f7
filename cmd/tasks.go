package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/nibzard/tasklist-go/internal/remote"
	"github.com/nibzard/tasklist-go/internal/render"
	"github.com/nibzard/tasklist-go/internal/state"
	"github.com/nibzard/tasklist-go/internal/task"
	"github.com/nibzard/tasklist-go/internal/ui"
)

// tuiCommand launches the interactive client.
func (c *cli) tuiCommand(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("tui takes no arguments, got %q", strings.Join(args, " "))
	}
	s, err := c.openSession()
	if err != nil {
		return err
	}
	defer s.Close()
	return ui.RunTUI(ctx, s.client, ui.WithLogger(s.logger))
}

// lsCommand prints the tasks matching an optional search term.
func (c *cli) lsCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	search := fs.String("search", "", "Only show tasks whose question contains the term")
	format := fs.String("format", string(render.FormatTable), "Output format: table, json or yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	f, err := render.ParseFormat(*format)
	if err != nil {
		return err
	}

	s, err := c.openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.store.Run(ctx, state.Reload{}, state.SetSearch{Term: *search}); err != nil {
		return userError(err)
	}
	return render.Write(c.stdout, s.store.State().Visible(), f)
}

// taskFlags are the field flags shared by add and edit.
type taskFlags struct {
	title       string
	description string
	due         string
	completed   bool
}

func (tf *taskFlags) bind(fs *flag.FlagSet) {
	fs.StringVar(&tf.title, "title", "", "Question text")
	fs.StringVar(&tf.description, "description", "", "Answer text")
	fs.StringVar(&tf.due, "due", "", "Submit date ("+task.DateLayoutHint+")")
	fs.BoolVar(&tf.completed, "completed", false, "Mark the task completed")
}

// actions returns the draft edits for the flags set on the command line.
func (tf *taskFlags) actions(fs *flag.FlagSet) []state.Action {
	var out []state.Action
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			out = append(out, state.EditField{Field: task.FieldTitle, Value: tf.title})
		case "description":
			out = append(out, state.EditField{Field: task.FieldDescription, Value: tf.description})
		case "due":
			out = append(out, state.EditField{Field: task.FieldDueDate, Value: tf.due})
		case "completed":
			out = append(out, state.SetCompleted{Completed: tf.completed})
		}
	})
	return out
}

// addCommand creates a task.
func (c *cli) addCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	var tf taskFlags
	tf.bind(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	s, err := c.openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	actions := []state.Action{state.Reload{}, state.BeginCreate{}}
	actions = append(actions, tf.actions(fs)...)
	actions = append(actions, state.Save{})
	if err := s.store.Run(ctx, actions...); err != nil {
		return userError(err)
	}

	created, ok := s.store.LastResult().(state.Created)
	if !ok {
		return errors.New("create finished without a task from the service")
	}
	fmt.Fprintf(c.stdout, "Created task %d\n", created.Task.ID)
	return nil
}

// editCommand changes the fields given as flags and leaves the others alone.
func (c *cli) editCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	var tf taskFlags
	tf.bind(fs)

	id, rest, err := splitID(args)
	if err != nil {
		return err
	}
	if err := fs.Parse(rest); err != nil {
		return err
	}
	if id == 0 {
		if id, err = parseID(fs.Arg(0)); err != nil {
			return err
		}
		rest = fs.Args()[1:]
	} else {
		rest = fs.Args()
	}
	if len(rest) > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(rest, " "))
	}
	edits := tf.actions(fs)
	if len(edits) == 0 {
		return errors.New("nothing to change: pass --title, --description, --due or --completed")
	}

	s, err := c.openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	actions := []state.Action{state.Reload{}, state.BeginEdit{ID: id}}
	actions = append(actions, edits...)
	actions = append(actions, state.Save{})
	if err := s.store.Run(ctx, actions...); err != nil {
		return userError(err)
	}
	fmt.Fprintf(c.stdout, "Updated task %d\n", id)
	return nil
}

// rmCommand deletes a task.
func (c *cli) rmCommand(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: tasklist rm ID")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	s, err := c.openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.store.Run(ctx, state.Reload{}, state.Delete{ID: id}); err != nil {
		return userError(err)
	}
	fmt.Fprintf(c.stdout, "Deleted task %d\n", id)
	return nil
}

// splitID takes a leading task id off args. id is 0 when args starts with a flag.
func splitID(args []string) (int, []string, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return 0, args, nil
	}
	id, err := parseID(args[0])
	return id, args[1:], err
}

func parseID(s string) (int, error) {
	if s == "" {
		return 0, errors.New("missing task id")
	}
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}

// cliError shows the user-facing message of a failure while keeping the
// cause available to errors.Is and errors.As.
type cliError struct {
	err error
}

func (e *cliError) Error() string {
	var f *remote.Failure
	if errors.As(e.err, &f) {
		return fmt.Sprintf("%s failed: %s", f.Op, remote.UserMessage(e.err))
	}
	return remote.UserMessage(e.err)
}

func (e *cliError) Unwrap() error {
	return e.err
}

func userError(err error) error {
	if err == nil {
		return nil
	}
	return &cliError{err: err}
}
