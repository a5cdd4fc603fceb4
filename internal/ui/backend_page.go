package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/leighmacdonald/craft/internal/config"
	"github.com/leighmacdonald/craft/internal/slashmenu"
	"github.com/leighmacdonald/craft/internal/ui/command"
	"github.com/leighmacdonald/craft/internal/ui/input"
	"github.com/leighmacdonald/craft/internal/ui/styles"
	zone "github.com/lrstanley/bubblezone"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

const (
	handleGlyph = "⠿"
	plusGlyph   = "+"
	placeholder = "Type / or click + to open menu..."
	inputWidth  = 40
	// inputLeft is the column the text input starts at: handle, space, plus, space.
	inputLeft  = 4
	zoneHandle = "handle"
	zonePlus   = "plus"
)

// hitTester reports whether a mouse event landed inside the zone with the given id.
type hitTester func(id string, msg tea.MouseMsg) bool

func zoneHitTester(id string, msg tea.MouseMsg) bool {
	return zone.Get(id).InBounds(msg)
}

// backendPage hosts the slash menu widget.
type backendPage struct {
	menu      *slashmenu.Menu
	textInput textinput.Model
	capture   *slashmenu.Capture
	inBounds  hitTester
	zoneID    string
	clamp     bool
	width     int
	height    int
	// reserved is the number of rows kept free above and below the input for the menu.
	reserved int
}

func newBackendPage(conf config.Config) *backendPage {
	menu := slashmenu.New(editorMetrics(conf.Editor))

	return &backendPage{
		menu:      menu,
		textInput: newTextInputModel(placeholder),
		inBounds:  zoneHitTester,
		zoneID:    zone.NewPrefix(),
		clamp:     conf.Editor.ClampDrag,
		reserved:  len(menu.Items()) + 2,
	}
}

func editorMetrics(editor config.Editor) slashmenu.Metrics {
	metrics := slashmenu.CellMetrics
	if editor.CharWidth > 0 {
		metrics.CharWidth = editor.CharWidth
	}

	return metrics
}

func newTextInputModel(placeholder string) textinput.Model {
	field := textinput.New()
	field.Prompt = ""
	field.Cursor.Style = styles.CursorStyle
	field.CharLimit = 127
	field.Width = inputWidth
	field.Placeholder = placeholder
	field.PlaceholderStyle = styles.BlurredStyle
	field.PromptStyle = styles.NoStyle
	field.TextStyle = styles.NoStyle

	return field
}

func (p *backendPage) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, p.textInput.Focus())
}

func (p *backendPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.applyBounds()

		return p, nil
	case config.Config:
		p.menu.SetMetrics(editorMetrics(msg.Editor))
		p.clamp = msg.Editor.ClampDrag
		p.applyBounds()

		return p, nil
	case tea.MouseMsg:
		return p, p.onMouse(msg)
	case tea.KeyMsg:
		return p, p.onKey(msg)
	}

	var cmd tea.Cmd
	p.textInput, cmd = p.textInput.Update(msg)

	return p, cmd
}

func (p *backendPage) onKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, input.Default.Accept):
		if !p.menu.Submit() {
			return nil
		}
		p.textInput.SetValue("")

		return command.Selected(p.menu.Selected())
	case key.Matches(msg, input.Default.Open):
		return p.openMenu()
	case key.Matches(msg, input.Default.Close):
		p.menu.Close()

		return nil
	}

	before := p.textInput.Value()

	var cmd tea.Cmd
	p.textInput, cmd = p.textInput.Update(msg)

	if value := p.textInput.Value(); value != before {
		p.menu.Edit(value, p.textInput.Position(), p.layout())
	}

	return cmd
}

func (p *backendPage) onMouse(msg tea.MouseMsg) tea.Cmd {
	// While captured every pointer event belongs to the drag, wherever it happens.
	if p.capture.Held() {
		switch msg.Action {
		case tea.MouseActionMotion:
			p.capture.Move(msg.Y)
		case tea.MouseActionRelease:
			p.capture.Release()
			p.capture = nil
		case tea.MouseActionPress:
		}

		return nil
	}

	if msg.Button != tea.MouseButtonLeft {
		return nil
	}

	switch {
	case msg.Action == tea.MouseActionPress && p.inBounds(p.zoneID+zoneHandle, msg):
		p.capture = p.menu.Drag().Acquire(msg.Y)
	case msg.Action == tea.MouseActionRelease && p.inBounds(p.zoneID+zonePlus, msg):
		return p.openMenu()
	}

	return nil
}

func (p *backendPage) openMenu() tea.Cmd {
	p.menu.OpenMenu(p.layout())

	return p.textInput.Focus()
}

// Teardown drops the pointer capture whether or not a drag is in progress.
func (p *backendPage) Teardown() {
	p.capture.Release()
	p.capture = nil
}

func (p *backendPage) applyBounds() {
	if !p.clamp || p.height <= 0 {
		p.menu.Drag().ClearBounds()

		return
	}

	// Keep the controls row on screen.
	p.menu.Drag().SetBounds(-p.reserved, p.height-p.reserved-1)
}

func (p *backendPage) layout() slashmenu.Layout {
	return slashmenu.Layout{
		Container: slashmenu.Rect{Top: 0, Left: 0, Bottom: p.containerHeight(), Right: p.containerWidth()},
		Input: slashmenu.Rect{
			Top:    p.reserved,
			Left:   inputLeft,
			Bottom: p.reserved + 1,
			Right:  inputLeft + inputWidth,
		},
	}
}

func (p *backendPage) containerWidth() int {
	return inputLeft + inputWidth + 1 + lipgloss.Width(p.renderMenu(p.menu.Items()))
}

func (p *backendPage) containerHeight() int {
	height := p.reserved*2 + 1
	if p.menu.Selected() != "" {
		height++
	}

	return height
}

func (p *backendPage) View() string {
	content := p.renderContainer()
	if p.width > 0 {
		content = lipgloss.PlaceHorizontal(p.width, lipgloss.Center, content)
	}

	lines := strings.Split(content, "\n")
	offset := p.menu.Drag().Offset()
	switch {
	case offset > 0:
		lines = append(make([]string, offset), lines...)
	case offset < 0:
		lines = lines[min(-offset, len(lines)):]
	}

	if p.height > 0 && len(lines) > p.height {
		lines = lines[:p.height]
	}

	return strings.Join(lines, "\n")
}

func (p *backendPage) renderContainer() string {
	width := p.containerWidth()
	blank := strings.Repeat(" ", width)
	row := lipgloss.NewStyle().Width(width)

	handleStyle := styles.DragHandle
	if p.capture.Held() {
		handleStyle = styles.DragActive
	}

	controls := lipgloss.JoinHorizontal(lipgloss.Top,
		zone.Mark(p.zoneID+zoneHandle, handleStyle.Render(handleGlyph)),
		" ",
		zone.Mark(p.zoneID+zonePlus, styles.PlusButton.Render(plusGlyph)),
		" ",
		styles.InputBox.Width(inputWidth+1).Render(p.textInput.View()))

	lines := make([]string, 0, p.containerHeight())
	for range p.reserved {
		lines = append(lines, blank)
	}
	lines = append(lines, row.Render(controls))
	for range p.reserved {
		lines = append(lines, blank)
	}

	if selected := p.menu.Selected(); selected != "" {
		lines = append(lines, row.Render(styles.SelectedLabel.Render("Selected Menu Item: ")+
			styles.SelectedValue.Render(selected)))
	}

	background := strings.Join(lines, "\n")
	if !p.menu.IsOpen() {
		return background
	}

	menuView := p.renderMenu(nil)
	position := p.menu.Position()
	top := position.Top
	if position.Placement == slashmenu.Above {
		top -= lipgloss.Height(menuView)
	}

	left := max(0, min(position.Left, width-lipgloss.Width(menuView)))
	top = max(0, min(top, len(lines)-lipgloss.Height(menuView)))

	return overlay.New(staticView(menuView), staticView(background), overlay.Left, overlay.Top, left, top).View()
}

// renderMenu draws the given labels, or the menu's visible entries when labels is nil.
func (p *backendPage) renderMenu(labels []string) string {
	var entries []slashmenu.Entry
	if labels != nil {
		for _, label := range labels {
			entries = append(entries, slashmenu.Entry{Label: label, Rest: label})
		}
	} else {
		entries = p.menu.Visible()
	}

	rows := make([]string, len(entries))
	for idx, entry := range entries {
		rows[idx] = styles.MenuMatch.Render(entry.Match) + styles.MenuRest.Render(entry.Rest)
	}

	return styles.Menu.Render(strings.Join(rows, "\n"))
}

// staticView adapts rendered content to the tea.Model the overlay composes.
type staticView string

func (s staticView) Init() tea.Cmd {
	return nil
}

func (s staticView) Update(_ tea.Msg) (tea.Model, tea.Cmd) {
	return s, nil
}

func (s staticView) View() string {
	return string(s)
}
