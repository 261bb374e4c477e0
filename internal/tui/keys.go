package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Slower key.Binding
	Faster key.Binding
	Min    key.Binding
	Max    key.Binding
	Commit key.Binding
	Toggle key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Slower: key.NewBinding(key.WithKeys(keyLeft, "h"), key.WithHelp("←/h", "slower")),
		Faster: key.NewBinding(key.WithKeys(keyRight, "l"), key.WithHelp("→/l", "faster")),
		Min:    key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "40 bpm")),
		Max:    key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "208 bpm")),
		Commit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply now")),
		Toggle: key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space/p", "play/pause")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

const (
	keyLeft  = "left"
	keyRight = "right"
)

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Slower, k.Faster, k.Toggle, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Slower, k.Faster, k.Min, k.Max},
		{k.Commit, k.Toggle},
		{k.Help, k.Quit},
	}
}
