package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tareas/internal/tasks"
)

var (
	_ tea.Msg = outcomeMsg{}
	_ tea.Msg = clearBannerMsg{}
)

// outcomeMsg carries the result of a controller operation back into Update.
type outcomeMsg struct {
	op  string
	out *tasks.Outcome
	err error
}

// clearBannerMsg expires the notification shown at generation gen.
type clearBannerMsg struct {
	gen uint64
}

// expireAfter schedules a [clearBannerMsg] for gen once the notification lifetime has passed.
func expireAfter(gen uint64) tea.Cmd {
	if gen == 0 {
		return nil
	}
	return tea.Tick(tasks.NotificationLifetime, func(time.Time) tea.Msg {
		return clearBannerMsg{gen: gen}
	})
}
