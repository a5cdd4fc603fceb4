package ui

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/leighmacdonald/craft/internal/config"
	"github.com/leighmacdonald/craft/internal/ui/command"
	"github.com/stretchr/testify/require"
)

func mountedPage(t *testing.T, root *rootModel) *backendPage {
	t.Helper()

	page, ok := root.page.(*backendPage)
	require.True(t, ok)

	return page
}

func TestRootMountsBackendPage(t *testing.T) {
	root := newRootModel(testConfig(), config.DefaultRoute)
	root.Init()
	root.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	page := mountedPage(t, root)
	require.Equal(t, 100, page.width)
	require.Equal(t, 30-root.footerHeight, page.height)

	view := root.View()
	require.Contains(t, view, placeholder)
	require.Contains(t, view, "ctrl+c")
}

func TestRootUnknownRoute(t *testing.T) {
	root := newRootModel(testConfig(), "/missing")
	root.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	require.IsType(t, emptyPage{}, root.page)
	require.NotContains(t, root.View(), handleGlyph)
}

func TestRootNavigateTearsDownPage(t *testing.T) {
	root := newRootModel(testConfig(), config.DefaultRoute)
	root.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	page := mountedPage(t, root)
	page.inBounds = hitOnly(page, zoneHandle)
	root.Update(press(5))
	require.True(t, page.menu.Drag().Active())

	root.Update(command.NavigateMsg{Route: "/elsewhere"})
	require.False(t, page.menu.Drag().Active())
	require.Equal(t, "/elsewhere", root.route)

	root.Update(command.NavigateMsg{Route: config.DefaultRoute})
	fresh := mountedPage(t, root)
	require.NotSame(t, page, fresh)
	require.Equal(t, 30-root.footerHeight, fresh.height)
}

func TestRootQuitTearsDownPage(t *testing.T) {
	root := newRootModel(testConfig(), config.DefaultRoute)
	root.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	page := mountedPage(t, root)
	page.inBounds = hitOnly(page, zoneHandle)
	root.Update(press(5))

	_, cmd := root.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())
	require.False(t, page.menu.Drag().Active())
}

func TestRootForwardsConfig(t *testing.T) {
	root := newRootModel(testConfig(), config.DefaultRoute)
	root.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	conf := testConfig()
	conf.Editor.CharWidth = 3
	root.Update(conf)

	require.Equal(t, 3, root.conf.Editor.CharWidth)
	require.Equal(t, 3, mountedPage(t, root).menu.Metrics().CharWidth)
}

func TestSlashMenuSelection(t *testing.T) {
	root := newRootModel(testConfig(), config.DefaultRoute)
	tm := teatest.NewTestModel(t, root, teatest.WithInitialTermSize(100, 30))

	tm.Type("/text")
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("text-area"))
	}, teatest.WithCheckInterval(time.Millisecond*50), teatest.WithDuration(time.Second*3))

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Selected Menu Item"))
	}, teatest.WithCheckInterval(time.Millisecond*50), teatest.WithDuration(time.Second*3))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second*3))

	final, ok := tm.FinalModel(t).(*rootModel)
	require.True(t, ok)
	page := mountedPage(t, final)
	require.Equal(t, "text", page.menu.Selected())
	require.Empty(t, page.textInput.Value())
}
