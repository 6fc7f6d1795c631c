package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/todo/pkg/engine"
)

// Run launches the interactive program. When changes is not nil every
// signal on it invalidates the cache, so edits made elsewhere show up.
func Run(ctx context.Context, e *engine.Engine, changes <-chan struct{}) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if changes != nil {
		go e.Watch(ctx, changes)
	}

	m := New(ctx, e)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}
