package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/craft/internal/config"
	"github.com/leighmacdonald/craft/internal/ui"
)

type UI interface {
	Send(msg tea.Msg)
	Run() error
}

// App is the ui process container. It owns no logic of its own, it routes reloaded configs into the ui.
type App struct {
	ui            UI
	config        config.Config
	configUpdates chan config.Config
}

func NewApp(conf config.Config, configUpdates chan config.Config) *App {
	return &App{
		config:        conf,
		configUpdates: configUpdates,
	}
}

// Start forwards config reloads to the ui until the context ends or the ui exits.
func (app *App) Start(ctx context.Context, done <-chan any) {
	for {
		select {
		case conf := <-app.configUpdates:
			app.config = conf
			if app.ui != nil {
				app.ui.Send(conf)
			}
		case <-ctx.Done():
			return
		case <-done:
			return
		}
	}
}

func (app *App) createUI(ctx context.Context, route string) UI {
	if app.ui == nil {
		app.ui = ui.New(ctx, app.config, route)
	}

	return app.ui
}
