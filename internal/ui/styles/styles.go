package styles

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	Accent = lipgloss.Color("#f4722b")

	Black  = lipgloss.Color("#111111")
	Gray   = lipgloss.Color("#3e3e3e")
	Border = lipgloss.Color("#cccccc")
	White  = lipgloss.Color("#cccccc")

	SelectedColour = lipgloss.Color("#4d7455")
	ButtonColour   = lipgloss.Color("#476291")

	FocusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	BlurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	CursorStyle  = FocusedStyle
	NoStyle      = lipgloss.NewStyle()

	// Widget controls.
	DragHandle = lipgloss.NewStyle().Foreground(Gray).Bold(true)
	DragActive = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	PlusButton = lipgloss.NewStyle().Foreground(ButtonColour).Bold(true)
	InputBox   = lipgloss.NewStyle().Foreground(White).Background(Black)

	// Menu.
	Menu = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
	MenuMatch = lipgloss.NewStyle().Bold(true)
	MenuRest  = lipgloss.NewStyle()

	SelectedLabel = lipgloss.NewStyle()
	SelectedValue = lipgloss.NewStyle().Bold(true).Foreground(SelectedColour)

	FooterContainerStyle = lipgloss.NewStyle().Align(lipgloss.Center)
)
