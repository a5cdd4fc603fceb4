package input

import "github.com/charmbracelet/bubbles/key"

type Map struct {
	Quit   key.Binding
	Accept key.Binding
	Open   key.Binding
	Close  key.Binding
}

// ShortHelp implements help.KeyMap.
func (m Map) ShortHelp() []key.Binding {
	return []key.Binding{m.Accept, m.Open, m.Close, m.Quit}
}

// FullHelp implements help.KeyMap.
func (m Map) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp()}
}

// Letters are typed into the input, so every binding uses a control key.
var Default = Map{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "Quit"),
	),
	Accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "Select"),
	),
	Open: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "Menu"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "Close menu"),
	),
}
