package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	create key.Binding
	rename key.Binding
	toggle key.Binding
	remove key.Binding
	reload key.Binding
	enter  key.Binding
	back   key.Binding
	help   key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		create: key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "nueva")),
		rename: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "editar")),
		toggle: key.NewBinding(key.WithKeys(" ", "t"), key.WithHelp("space/t", "completar")),
		remove: key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "eliminar")),
		reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recargar")),
		enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirmar")),
		back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancelar")),
		help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "ayuda")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "salir")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.create, k.toggle, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.reload},
		{k.create, k.rename, k.toggle, k.remove},
		{k.help, k.quit},
	}
}
