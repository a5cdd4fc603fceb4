package command

import (
	tea "github.com/charmbracelet/bubbletea"
)

// NavigateMsg asks the root model to mount the page registered for Route.
type NavigateMsg struct {
	Route string
}

func Navigate(route string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Route: route} }
}

// SelectedMsg is emitted when the widget records a new selection.
type SelectedMsg struct {
	Item string
}

func Selected(item string) tea.Cmd {
	return func() tea.Msg { return SelectedMsg{Item: item} }
}
