package ui

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/tareas/internal/models"
	"github.com/desertthunder/tareas/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ListView ViewState = iota
	NewTaskView
	RenameView
)

// Model represents the TUI application state.
//
// All mutable client state lives in [tasks.State] and is only changed inside Update.
type Model struct {
	ctx      context.Context
	view     ViewState
	ctrl     *tasks.Controller
	state    tasks.State
	list     list.Model
	input    textinput.Model
	dialog   textinput.Model
	renameCh chan tasks.PromptResult
	width    int
	height   int
	help     help.Model
	keys     keyMap
	logger   *log.Logger
	now      func() time.Time
}

// NewModel creates a new TUI model driving ctrl.
func NewModel(ctx context.Context, ctrl *tasks.Controller, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	input := textinput.New()
	input.Placeholder = "Escribe una tarea"
	input.CharLimit = 256
	input.Width = 40

	dialog := textinput.New()
	dialog.Prompt = tasks.RenameLabel + " "
	dialog.CharLimit = 256
	dialog.Width = 40

	return &Model{
		ctx:    ctx,
		view:   ListView,
		ctrl:   ctrl,
		list:   newTaskList(nil, 80, 20),
		input:  input,
		dialog: dialog,
		help:   help.New(),
		keys:   newKeyMap(),
		logger: logger,
		now:    time.Now,
	}
}

// Init loads the task list.
func (m *Model) Init() tea.Cmd {
	return m.run("load", m.ctrl.Load)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, max(msg.Height-10, 3))
		m.input.Width = max(msg.Width-10, 10)
		m.dialog.Width = max(msg.Width-10-len(tasks.RenameLabel), 10)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case NewTaskView:
			return m.handleNewTaskKeys(msg)
		case RenameView:
			return m.handleRenameKeys(msg)
		default:
			return m.handleListKeys(msg)
		}

	case outcomeMsg:
		return m, m.apply(msg)

	case clearBannerMsg:
		m.state.Banner.Expire(msg.gen)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var b strings.Builder

	if text := m.state.Banner.Current(); text != "" {
		b.WriteString(styles.banner.Render(text))
		b.WriteString("\n")
	}

	if len(m.state.Tasks) == 0 {
		b.WriteString(styles.title.Render("Gestor de Tareas"))
		b.WriteString("\n")
		b.WriteString(styles.help.Render("No hay tareas."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.list.View())
		b.WriteString("\n")
	}

	switch m.view {
	case NewTaskView:
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back}))
	case RenameView:
		b.WriteString("\n")
		b.WriteString(styles.prompt.Render(m.dialog.View()))
		b.WriteString("\n\n")
		b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back}))
	default:
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
	}

	return b.String()
}

// State returns a copy of the owned client state.
func (m *Model) State() tasks.State { return m.state }

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.create):
		m.view = NewTaskView
		m.input.SetValue(m.state.Input)
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.reload):
		return m, m.run("load", m.ctrl.Load)

	case key.Matches(msg, m.keys.toggle):
		if t, ok := m.selected(); ok {
			return m, m.run("toggle", func(ctx context.Context) (*tasks.Outcome, error) {
				return m.ctrl.Toggle(ctx, t)
			})
		}
		return m, nil

	case key.Matches(msg, m.keys.remove):
		if t, ok := m.selected(); ok {
			return m, m.run("remove", func(ctx context.Context) (*tasks.Outcome, error) {
				return m.ctrl.Remove(ctx, t.ID)
			})
		}
		return m, nil

	case key.Matches(msg, m.keys.rename):
		if t, ok := m.selected(); ok {
			return m, m.openRename(t)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleNewTaskKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit

	case key.Matches(msg, m.keys.back):
		m.view = ListView
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.enter):
		title := m.input.Value()
		m.view = ListView
		m.input.Blur()
		return m, m.run("create", func(ctx context.Context) (*tasks.Outcome, error) {
			return m.ctrl.Create(ctx, title)
		})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.state.Input = m.input.Value()
	return m, cmd
}

func (m *Model) handleRenameKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.answer(tasks.PromptResult{})
		return m, tea.Quit

	case key.Matches(msg, m.keys.back):
		m.answer(tasks.PromptResult{})
		return m, nil

	case key.Matches(msg, m.keys.enter):
		m.answer(tasks.PromptResult{Value: m.dialog.Value(), OK: true})
		return m, nil
	}

	var cmd tea.Cmd
	m.dialog, cmd = m.dialog.Update(msg)
	return m, cmd
}

// openRename shows the dialog and starts a rename that waits for its answer.
func (m *Model) openRename(t models.Task) tea.Cmd {
	ch := make(chan tasks.PromptResult, 1)
	m.renameCh = ch
	m.view = RenameView
	m.dialog.SetValue("")
	m.dialog.Placeholder = t.Title
	m.dialog.Focus()

	return m.run("rename", func(ctx context.Context) (*tasks.Outcome, error) {
		return m.ctrl.Rename(ctx, t.ID, t.Title, tasks.Reply(ch))
	})
}

// answer closes the dialog and hands its result to the waiting rename.
func (m *Model) answer(res tasks.PromptResult) {
	if m.renameCh != nil {
		m.renameCh <- res
		m.renameCh = nil
	}
	m.dialog.Blur()
	m.view = ListView
}

func (m *Model) selected() (models.Task, bool) {
	if it, ok := m.list.SelectedItem().(taskItem); ok {
		return it.task, true
	}
	return models.Task{}, false
}

// run wraps a controller call in a [tea.Cmd].
func (m *Model) run(op string, fn func(context.Context) (*tasks.Outcome, error)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		out, err := fn(ctx)
		return outcomeMsg{op: op, out: out, err: err}
	}
}

// apply folds a finished operation into the state and schedules the notification's expiry.
func (m *Model) apply(msg outcomeMsg) tea.Cmd {
	now := m.now()

	if msg.err != nil {
		if !errors.Is(msg.err, tasks.ErrRenameAbandoned) && !errors.Is(msg.err, tasks.ErrInvalidTitle) {
			m.logger.Error("operation failed", "op", msg.op, "error", msg.err)
		}
		return expireAfter(m.state.Fail(msg.err, now))
	}

	if msg.out.ReloadErr != nil {
		m.logger.Error("reload failed", "op", msg.op, "error", msg.out.ReloadErr)
	}

	gen := m.state.Apply(msg.out, now)
	if msg.out.ClearInput {
		m.input.SetValue(m.state.Input)
	}
	if msg.out.Reloaded {
		m.list.SetItems(toItems(m.state.Tasks))
		if m.list.Index() >= len(m.state.Tasks) && len(m.state.Tasks) > 0 {
			m.list.Select(len(m.state.Tasks) - 1)
		}
	}

	m.logger.Debug("applied", "op", msg.op, "tasks", len(m.state.Tasks))
	return expireAfter(gen)
}
