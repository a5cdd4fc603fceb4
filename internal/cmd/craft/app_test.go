package main

import (
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/craft/internal/config"
	"github.com/stretchr/testify/require"
)

type recordingUI struct {
	mu   sync.Mutex
	sent []tea.Msg
}

func (r *recordingUI) Send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sent = append(r.sent, msg)
}

func (r *recordingUI) Run() error { return nil }

func (r *recordingUI) messages() []tea.Msg {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]tea.Msg(nil), r.sent...)
}

func TestAppForwardsConfigUpdates(t *testing.T) {
	updates := make(chan config.Config)
	recorder := &recordingUI{}
	app := NewApp(config.Config{}, updates)
	app.ui = recorder

	done := make(chan any)
	stopped := make(chan struct{})
	go func() {
		app.Start(t.Context(), done)
		close(stopped)
	}()

	reloaded := config.Config{Editor: config.Editor{CharWidth: 2, ClampDrag: true}}
	updates <- reloaded

	close(done)
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("app did not stop")
	}

	require.Equal(t, []tea.Msg{reloaded}, recorder.messages())
	require.Equal(t, reloaded, app.config)
}
