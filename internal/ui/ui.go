package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/craft/internal/config"
	zone "github.com/lrstanley/bubblezone"
)

var ErrUIExit = errors.New("ui error returned")

type UI struct {
	program *tea.Program
}

func New(ctx context.Context, conf config.Config, route string, opts ...tea.ProgramOption) *UI {
	zone.NewGlobal()

	options := append([]tea.ProgramOption{
		tea.WithMouseCellMotion(),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithFPS(30),
	}, opts...)

	return &UI{program: tea.NewProgram(newRootModel(conf, route), options...)}
}

// Run blocks until the program exits. The mounted page is torn down however the program ends.
func (t UI) Run() error {
	final, err := t.program.Run()
	if root, ok := final.(*rootModel); ok {
		root.Teardown()
	}

	if err != nil {
		return errors.Join(err, ErrUIExit)
	}

	return nil
}

func (t UI) Send(msg tea.Msg) {
	t.program.Send(msg)
}
