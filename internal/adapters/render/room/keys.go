package room

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Join         key.Binding
	Extend       key.Binding
	Layout       key.Binding
	Participants key.Binding
	EndCall      key.Binding
	Dismiss      key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Join: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "join/leave"),
		),
		Extend: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "extend"),
		),
		Layout: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "layout"),
		),
		Participants: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "participants"),
		),
		EndCall: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "end call"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Join, k.Extend, k.Layout, k.Participants, k.EndCall, k.Dismiss, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
