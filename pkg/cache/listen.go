package cache

import (
	tea "github.com/charmbracelet/bubbletea/v2"
)

// ClosedMsg is delivered once a subscription channel has been closed.
type ClosedMsg struct{}

// Listen returns a command that waits for the next message on ch. Callers
// re-issue it after handling each message.
func Listen(ch <-chan tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return ClosedMsg{}
		}
		return msg
	}
}
