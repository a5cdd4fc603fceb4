package ui

import (
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/craft/internal/config"
	"github.com/leighmacdonald/craft/internal/slashmenu"
	"github.com/leighmacdonald/craft/internal/ui/command"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func testConfig() config.Config {
	return config.Config{
		Editor: config.Editor{CharWidth: 1},
		UI:     config.UI{Route: config.DefaultRoute},
	}
}

func newTestPage(t *testing.T, conf config.Config) *backendPage {
	t.Helper()

	page := newBackendPage(conf)
	page.Init()
	page.Update(tea.WindowSizeMsg{Width: 80, Height: 20})

	return page
}

func typeText(page *backendPage, text string) {
	for _, r := range text {
		page.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// hitOnly routes every mouse event to the zone with the given suffix.
func hitOnly(page *backendPage, suffix string) hitTester {
	return func(id string, _ tea.MouseMsg) bool {
		return id == page.zoneID+suffix
	}
}

func press(y int) tea.MouseMsg {
	return tea.MouseMsg{Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
}

func motion(y int) tea.MouseMsg {
	return tea.MouseMsg{Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion}
}

func release(y int) tea.MouseMsg {
	return tea.MouseMsg{Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}
}

func TestSlashOpensMenuBelowCursor(t *testing.T) {
	page := newTestPage(t, testConfig())

	typeText(page, "/")
	require.Equal(t, slashmenu.OpenBySlash, page.menu.Mode())
	require.Equal(t, slashmenu.Position{Top: page.reserved + 1, Left: inputLeft + 1, Placement: slashmenu.Below},
		page.menu.Position())
	require.Contains(t, page.View(), "text-area")

	typeText(page, "te")
	require.Equal(t, inputLeft+3, page.menu.Position().Left)
	require.Len(t, page.menu.Visible(), 2)
	require.NotContains(t, page.View(), "select")

	page.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, page.menu.IsOpen())
	require.Equal(t, "/te", page.textInput.Value())
}

func TestCharWidthScalesOffset(t *testing.T) {
	conf := testConfig()
	conf.Editor.CharWidth = 2
	page := newTestPage(t, conf)

	typeText(page, "/s")
	require.Equal(t, inputLeft+4, page.menu.Position().Left)
}

func TestEnterSelectsExactMatch(t *testing.T) {
	page := newTestPage(t, testConfig())

	typeText(page, "/sel")
	_, cmd := page.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, cmd)
	require.Empty(t, page.menu.Selected())

	typeText(page, "ECT")
	_, cmd = page.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.Equal(t, command.SelectedMsg{Item: "select"}, cmd())
	require.Empty(t, page.textInput.Value())
	require.False(t, page.menu.IsOpen())

	view := page.View()
	require.Contains(t, view, "Selected Menu Item: ")
	require.Contains(t, view, "select")
}

func TestPlusButtonOpensFullMenuAbove(t *testing.T) {
	page := newTestPage(t, testConfig())
	page.inBounds = hitOnly(page, zonePlus)

	typeText(page, "hello")
	page.Update(press(5))
	require.False(t, page.menu.IsOpen())

	page.Update(release(5))
	require.Equal(t, slashmenu.OpenByButton, page.menu.Mode())
	require.Equal(t, slashmenu.Position{Top: page.reserved, Left: inputLeft, Placement: slashmenu.Above},
		page.menu.Position())
	require.Len(t, page.menu.Visible(), 3)
	require.Equal(t, "hello", page.textInput.Value())

	view := page.View()
	for _, item := range page.menu.Items() {
		require.Contains(t, view, item)
	}
}

func TestCtrlOOpensMenu(t *testing.T) {
	page := newTestPage(t, testConfig())

	page.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	require.Equal(t, slashmenu.OpenByButton, page.menu.Mode())

	typeText(page, "/t")
	require.Equal(t, slashmenu.OpenBySlash, page.menu.Mode())
	require.Equal(t, slashmenu.Below, page.menu.Position().Placement)
}

func TestDragHandleMovesWidget(t *testing.T) {
	page := newTestPage(t, testConfig())
	page.inBounds = hitOnly(page, zoneHandle)
	before := strings.Split(page.View(), "\n")

	page.Update(press(5))
	require.True(t, page.capture.Held())

	// Captured motion is followed wherever the pointer goes.
	page.inBounds = func(string, tea.MouseMsg) bool { return false }
	page.Update(motion(8))
	require.Equal(t, 3, page.menu.Drag().Offset())

	after := strings.Split(page.View(), "\n")
	require.Equal(t, before[0], after[3])

	page.Update(release(8))
	require.Nil(t, page.capture)
	require.False(t, page.menu.Drag().Active())

	page.Update(motion(12))
	require.Equal(t, 3, page.menu.Drag().Offset())

	page.inBounds = hitOnly(page, zoneHandle)
	page.Update(press(12))
	page.Update(motion(10))
	require.Equal(t, 1, page.menu.Drag().Offset())
}

func TestRightButtonDoesNotDrag(t *testing.T) {
	page := newTestPage(t, testConfig())
	page.inBounds = hitOnly(page, zoneHandle)

	page.Update(tea.MouseMsg{Y: 5, Button: tea.MouseButtonRight, Action: tea.MouseActionPress})
	require.False(t, page.capture.Held())
}

func TestTeardownReleasesCapture(t *testing.T) {
	page := newTestPage(t, testConfig())
	require.NotPanics(t, page.Teardown)

	page.inBounds = hitOnly(page, zoneHandle)
	page.Update(press(5))
	require.True(t, page.menu.Drag().Active())

	page.Teardown()
	require.False(t, page.menu.Drag().Active())

	page.Update(motion(9))
	require.Zero(t, page.menu.Drag().Offset())
}

func TestClampDrag(t *testing.T) {
	conf := testConfig()
	conf.Editor.ClampDrag = true
	page := newTestPage(t, conf)
	page.inBounds = hitOnly(page, zoneHandle)

	page.Update(press(0))
	page.Update(motion(100))
	require.Equal(t, 20-page.reserved-1, page.menu.Drag().Offset())

	page.Update(motion(-100))
	require.Equal(t, -page.reserved, page.menu.Drag().Offset())

	// Turning clamping off through a config reload frees the drag again.
	conf.Editor.ClampDrag = false
	page.Update(conf)
	page.Update(motion(-200))
	require.Equal(t, -200, page.menu.Drag().Offset())
}
