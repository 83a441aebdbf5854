package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#7D56F4", "#4caf50", "#FF0000", "#888888", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title    lipgloss.Style
	banner   lipgloss.Style
	err      lipgloss.Style
	done     lipgloss.Style
	pending  lipgloss.Style
	selected lipgloss.Style
	prompt   lipgloss.Style
	help     lipgloss.Style
}

// NewPalette builds the stylesheet from accent, notification, error, completed and help colors.
func NewPalette(accent, notice, e, done, h string) *Palette {
	return &Palette{
		title:    NewBold(accent).MarginBottom(1),
		banner:   NewBold(notice).Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(notice)),
		err:      NewBold(e),
		done:     NewStyle(done).Strikethrough(true),
		pending:  lipgloss.NewStyle(),
		selected: NewBold(accent),
		prompt:   NewBold(accent),
		help:     NewEm(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
