package ui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/remote"
	"github.com/nibzard/tasklist-go/internal/state"
	"github.com/nibzard/tasklist-go/internal/task"
)

// defaultWidth is used until the first window size message arrives.
const defaultWidth = 80

// resultMsg carries the outcome of an effect back into Update.
type resultMsg struct {
	action state.Action
}

type tuiModel struct {
	ctx    context.Context
	client remote.Client
	logger *log.Logger
	now    func() time.Time

	state     state.State
	search    textinput.Model
	searching bool
	cursor    int
	form      *form
	spinner   spinner.Model
	showHelp  bool
	width     int
	height    int
}

func newTUIModel(ctx context.Context, client remote.Client, c *tuiConfig) *tuiModel {
	search := textinput.New()
	search.Placeholder = "Search Tasks..."
	search.Prompt = "/ "
	search.Cursor.SetMode(cursor.CursorStatic)
	search.Width = defaultWidth - 4

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle.UnsetMarginBottom()

	logger := c.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	now := c.now
	if now == nil {
		now = time.Now
	}

	return &tuiModel{
		ctx:     ctx,
		client:  client,
		logger:  logger,
		now:     now,
		state:   state.New(),
		search:  search,
		spinner: s,
		width:   defaultWidth,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return m.dispatch(state.Reload{})
}

// dispatch runs Reduce and turns the resulting effect into a command.
func (m *tuiModel) dispatch(a state.Action) tea.Cmd {
	var eff state.Effect
	m.state, eff = state.Reduce(m.state, a)
	m.logger.Debug("dispatch", "action", state.ActionName(a))
	if f, ok := a.(state.Failed); ok {
		m.logger.Warn("request failed", "op", string(f.Op), "err", f.Err)
	}

	m.syncForm()
	m.clampCursor()

	if eff == nil {
		return nil
	}
	return tea.Batch(m.execute(eff), m.spinner.Tick)
}

func (m *tuiModel) execute(eff state.Effect) tea.Cmd {
	ctx, client := m.ctx, m.client
	return func() tea.Msg {
		return resultMsg{action: state.Execute(ctx, client, eff)}
	}
}

// syncForm opens or closes the modal widgets to match the interaction.
func (m *tuiModel) syncForm() {
	switch in := m.state.Interaction.(type) {
	case state.Editing:
		if m.form == nil {
			m.form = newForm("Edit Task", in.Draft.Input(), m.width)
		}
	case state.Creating:
		if m.form == nil {
			m.form = newForm("New Task", in.Draft, m.width)
		}
	default:
		m.form = nil
	}
}

func (m *tuiModel) clampCursor() {
	n := len(m.state.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selected returns the task under the cursor.
func (m *tuiModel) selected() (task.Task, bool) {
	visible := m.state.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return task.Task{}, false
	}
	return visible[m.cursor], true
}

// draft returns the open form's draft and completed flag.
func (m *tuiModel) draft() (task.Input, bool) {
	switch in := m.state.Interaction.(type) {
	case state.Editing:
		return in.Draft.Input(), true
	case state.Creating:
		return in.Draft, true
	}
	return task.Input{}, false
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.search.Width = msg.Width - 4
		if m.form != nil {
			m.form.setWidth(msg.Width)
		}
		return m, nil

	case resultMsg:
		return m, m.dispatch(msg.action)

	case spinner.TickMsg:
		if !m.state.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.form != nil:
			return m, m.updateForm(msg)
		case m.searching:
			return m, m.updateSearch(msg)
		default:
			return m, m.updateList(msg)
		}
	}
	return m, nil
}

func (m *tuiModel) updateList(msg tea.KeyMsg) tea.Cmd {
	if m.showHelp {
		switch msg.String() {
		case "q":
			return tea.Quit
		case "?", "esc":
			m.showHelp = false
		}
		return nil
	}

	switch msg.String() {
	case "q":
		return tea.Quit
	case "?":
		m.showHelp = true
	case "j", "down":
		m.cursor++
		m.clampCursor()
	case "k", "up":
		m.cursor--
		m.clampCursor()
	case "/":
		m.searching = true
		return m.search.Focus()
	case "n":
		return m.dispatch(state.BeginCreate{})
	case "e", "enter":
		if t, ok := m.selected(); ok {
			return m.dispatch(state.BeginEdit{ID: t.ID})
		}
	case "d":
		if t, ok := m.selected(); ok {
			return m.dispatch(state.Delete{ID: t.ID})
		}
	case "r":
		return m.dispatch(state.Reload{})
	case "x":
		return m.dispatch(state.DismissError{})
	}
	return nil
}

func (m *tuiModel) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "enter", "up", "down":
		m.searching = false
		m.search.Blur()
		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.state.Search {
		m.cursor = 0
		return tea.Batch(cmd, m.dispatch(state.SetSearch{Term: m.search.Value()}))
	}
	return cmd
}

func (m *tuiModel) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return m.dispatch(state.Cancel{})
	case "ctrl+s":
		return m.dispatch(state.Save{})
	case "tab":
		m.form.next()
		return nil
	case "shift+tab":
		m.form.prev()
		return nil
	}

	field, ok := m.form.field()
	if !ok {
		switch msg.String() {
		case " ", "space", "enter", "x":
			d, _ := m.draft()
			return m.dispatch(state.SetCompleted{Completed: !d.Completed})
		}
		return nil
	}

	value, cmd := m.form.update(msg)
	d, _ := m.draft()
	if d.Value(field) == value {
		return cmd
	}
	return tea.Batch(cmd, m.dispatch(state.EditField{Field: field, Value: value}))
}
