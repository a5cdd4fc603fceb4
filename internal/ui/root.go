package ui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/craft/internal/config"
	"github.com/leighmacdonald/craft/internal/ui/command"
	"github.com/leighmacdonald/craft/internal/ui/input"
	"github.com/leighmacdonald/craft/internal/ui/styles"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"
)

// page is a routable view. Teardown runs when the page is unmounted or the program exits.
type page interface {
	tea.Model
	Teardown()
}

type pageFactory func(conf config.Config) page

func defaultRoutes() map[string]pageFactory {
	return map[string]pageFactory{
		config.DefaultRoute: func(conf config.Config) page { return newBackendPage(conf) },
	}
}

// rootModel is the top level model for the ui side of the app. It owns the route table and the footer.
type rootModel struct {
	conf         config.Config
	routes       map[string]pageFactory
	route        string
	page         page
	helpView     help.Model
	height       int
	width        int
	footerHeight int
}

func newRootModel(conf config.Config, route string) *rootModel {
	model := &rootModel{
		conf:         conf,
		routes:       defaultRoutes(),
		helpView:     help.New(),
		footerHeight: 1,
	}
	model.mount(route)

	return model
}

func (m *rootModel) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("craft"), m.page.Init())
}

func (m *rootModel) Update(inMsg tea.Msg) (tea.Model, tea.Cmd) {
	logMsg(inMsg)

	switch msg := inMsg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.helpView.Width = msg.Width

		return m.propagate(m.contentSize())
	case config.Config:
		m.conf = msg
	case command.NavigateMsg:
		m.mount(msg.Route)
		_, cmd := m.propagate(m.contentSize())

		return m, tea.Batch(m.page.Init(), cmd)
	case command.SelectedMsg:
		slog.Info("Menu item selected", slog.String("item", msg.Item), slog.String("route", m.route))

		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, input.Default.Quit) {
			m.Teardown()

			return m, tea.Quit
		}
	}

	return m.propagate(inMsg)
}

// mount tears down the current page and replaces it with the one registered for route. Unknown routes
// get an empty page.
func (m *rootModel) mount(route string) {
	if m.page != nil {
		m.page.Teardown()
	}

	m.route = route
	factory, found := m.routes[route]
	if !found {
		slog.Warn("Unknown route", slog.String("route", route))
		m.page = emptyPage{}

		return
	}

	m.page = factory(m.conf)
}

// Teardown releases whatever the mounted page holds.
func (m *rootModel) Teardown() {
	m.page.Teardown()
}

func (m *rootModel) contentSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: m.width, Height: max(0, m.height-m.footerHeight)}
}

func (m *rootModel) propagate(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.page.Update(msg)
	if mounted, ok := next.(page); ok {
		m.page = mounted
	}

	return m, cmd
}

func (m *rootModel) View() string {
	footer := styles.FooterContainerStyle.
		Width(m.width).
		Render(m.helpView.View(input.Default))

	content := m.page.View()
	if m.height > 0 {
		content = lipgloss.NewStyle().
			Height(max(0, m.height-lipgloss.Height(footer))).
			MaxHeight(max(0, m.height-lipgloss.Height(footer))).
			Render(content)
	}

	view := lipgloss.JoinVertical(lipgloss.Left, content, footer)
	if m.width > 0 {
		lines := strings.Split(view, "\n")
		for idx, line := range lines {
			lines[idx] = truncate.String(line, uint(m.width))
		}
		view = strings.Join(lines, "\n")
	}

	return zone.Scan(view)
}

// logMsg is useful for debugging events. Tail the log file ~/.config/craft/craft.log
func logMsg(inMsg tea.Msg) {
	// Filter out very noisy stuff
	switch inMsg.(type) {
	case tea.MouseMsg:
		break
	default:
		slog.Debug("tea.Msg", slog.Any("msg", inMsg))
	}
}

type emptyPage struct{}

func (emptyPage) Init() tea.Cmd {
	return nil
}

func (e emptyPage) Update(_ tea.Msg) (tea.Model, tea.Cmd) {
	return e, nil
}

func (emptyPage) View() string {
	return ""
}

func (emptyPage) Teardown() {}
