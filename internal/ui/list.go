package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tareas/internal/models"
)

const (
	doneMarker    = "✔ "
	pendingMarker = "⏳ "
)

var (
	_ list.Item         = taskItem{}
	_ list.ItemDelegate = taskDelegate{}
)

// taskItem wraps [models.Task] to implement [list.Item].
type taskItem struct {
	task models.Task
}

func (i taskItem) FilterValue() string { return i.task.Title }
func (i taskItem) Title() string       { return i.task.Title }
func (i taskItem) Description() string {
	if i.task.Completed.IsDone() {
		return "completada"
	}
	return "pendiente"
}

// taskDelegate renders one task per line: marker then title, struck through and dimmed when completed.
type taskDelegate struct{}

func (d taskDelegate) Height() int                             { return 1 }
func (d taskDelegate) Spacing() int                            { return 0 }
func (d taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(taskItem)
	if !ok {
		return
	}
	fmt.Fprint(w, renderTask(it.task, index == m.Index()))
}

func renderTask(t models.Task, selected bool) string {
	cursor := "  "
	if selected {
		cursor = styles.selected.Render("> ")
	}

	if t.Completed.IsDone() {
		return cursor + styles.done.Render(doneMarker+t.Title)
	}
	return cursor + styles.pending.Render(pendingMarker+t.Title)
}

func toItems(ts []models.Task) []list.Item {
	items := make([]list.Item, len(ts))
	for i, t := range ts {
		items[i] = taskItem{task: t}
	}
	return items
}

func newTaskList(ts []models.Task, width, height int) list.Model {
	l := list.New(toItems(ts), taskDelegate{}, width, height)
	l.Title = "Gestor de Tareas"
	l.Styles.Title = styles.title
	l.SetStatusBarItemName("tarea", "tareas")
	l.SetFilteringEnabled(false)
	l.SetShowFilter(false)
	l.SetShowHelp(false)
	l.SetShowPagination(true)
	l.DisableQuitKeybindings()
	return l
}
