// Package tui is the interactive list client. It renders the engine cache,
// follows cache events and turns key presses into engine verbs, including a
// keyboard drag: pick an item up, move the drop target, drop.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/todo/pkg/cache"
	"tableflip.dev/todo/pkg/engine"
	"tableflip.dev/todo/pkg/events"
	"tableflip.dev/todo/pkg/glyph"
	"tableflip.dev/todo/pkg/item"
	"tableflip.dev/todo/pkg/reorder"
)

type mode int

const (
	modeNormal mode = iota
	modeAdd
	modeEdit
)

type refreshedMsg struct{ err error }

// Model contains UI state
type Model struct {
	ctx    context.Context
	engine *engine.Engine

	events      <-chan tea.Msg
	unsubscribe func()

	items  []item.Item
	cursor int
	// over and overID locate the drop target while dragging. When the list
	// is replaced mid-drag the target follows overID.
	over   int
	overID string
	drag   reorder.Drag

	mode    mode
	editID  string
	input   textinput.Model
	keys    keyMap
	help    help.Model
	theme   Theme
	status  string
	failure bool

	width  int
	height int
}

// New creates a model over e. ctx bounds every remote call started from the
// ui.
func New(ctx context.Context, e *engine.Engine) *Model {
	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 255
	ti.Prompt = ""

	ch, unsubscribe := e.Cache().Subscribe()
	m := &Model{
		ctx:         ctx,
		engine:      e,
		events:      ch,
		unsubscribe: unsubscribe,
		input:       ti,
		keys:        defaultKeys(),
		help:        help.New(),
		theme:       DefaultTheme(),
	}
	m.sync()
	return m
}

// Init loads the list and starts listening for cache events.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(cache.Listen(m.events), m.refresh())
}

// Close stops listening to the cache.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m *Model) refresh() tea.Cmd {
	return func() tea.Msg {
		err := m.engine.Refresh(m.ctx)
		if errors.Is(err, engine.ErrSuperseded) {
			err = nil
		}
		return refreshedMsg{err: err}
	}
}

// sync copies the cache into the view and keeps cursor, drop target and
// drag consistent with it.
func (m *Model) sync() {
	m.items = m.engine.Cache().Read()
	m.cursor = clamp(m.cursor, len(m.items))
	id, ok := m.drag.Active()
	if !ok {
		return
	}
	if item.IndexOf(m.items, id) < 0 {
		m.drag.Cancel()
		m.setStatus("the item being moved went away")
		return
	}
	if version := m.engine.Cache().Version(); m.drag.Stale(version) {
		m.retarget()
		m.drag.Rebase(version)
	}
}

// retarget finds the drop target again after the list was replaced. When the
// target itself is gone the row now at its old index takes over.
func (m *Model) retarget() {
	if idx := item.IndexOf(m.items, m.overID); idx >= 0 {
		m.over = idx
		return
	}
	m.setOver(m.over)
	m.setStatus("the drop target went away")
}

func (m *Model) setOver(i int) {
	m.over = clamp(i, len(m.items))
	m.overID = ""
	if m.over < len(m.items) {
		m.overID = m.items[m.over].ID
	}
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.failure = false
}

func (m *Model) setError(err error) {
	m.status = "ERR: " + err.Error()
	m.failure = true
}

func (m *Model) current() (item.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return item.Item{}, false
	}
	return m.items[m.cursor], true
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case events.ListReplacedMsg:
		m.sync()
		cmds = append(cmds, cache.Listen(m.events))
	case events.MutationSettledMsg:
		if msg.Failed() {
			m.setError(msg.Err)
		}
		cmds = append(cmds, cache.Listen(m.events))
	case cache.ClosedMsg:
		m.events = nil
	case refreshedMsg:
		if msg.err != nil {
			m.setError(msg.err)
		}
		m.sync()
	case tea.KeyPressMsg:
		m.handleKey(msg, &cmds)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch m.mode {
	case modeAdd, modeEdit:
		m.handleInputKey(msg, cmds)
		return
	}
	if _, dragging := m.drag.Active(); dragging {
		m.handleDragKey(msg)
		return
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		*cmds = append(*cmds, tea.Quit)
	case key.Matches(msg, m.keys.Up):
		m.cursor = clamp(m.cursor-1, len(m.items))
	case key.Matches(msg, m.keys.Down):
		m.cursor = clamp(m.cursor+1, len(m.items))
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = clamp(len(m.items)-1, len(m.items))
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Refresh):
		m.setStatus("refreshing")
		*cmds = append(*cmds, m.refresh())
	case key.Matches(msg, m.keys.Toggle):
		if it, ok := m.current(); ok {
			m.run(m.engine.Toggle(m.ctx, it.Toggled()))
		}
	case key.Matches(msg, m.keys.Delete):
		if it, ok := m.current(); ok {
			m.run(m.engine.Delete(m.ctx, it.ID))
		}
	case key.Matches(msg, m.keys.MoveUp):
		if it, ok := m.current(); ok && m.cursor > 0 {
			m.cursor--
			m.run(m.engine.Reorder(m.ctx, it.ID, m.cursor))
		}
	case key.Matches(msg, m.keys.MoveDown):
		if it, ok := m.current(); ok && m.cursor < len(m.items)-1 {
			m.cursor++
			m.run(m.engine.Reorder(m.ctx, it.ID, m.cursor))
		}
	case key.Matches(msg, m.keys.Pick):
		if it, ok := m.current(); ok && m.drag.Start(it.ID, m.engine.Cache().Version()) {
			m.setOver(m.cursor)
			m.setStatus(fmt.Sprintf("moving %q", it.Title))
		}
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.input.SetValue("")
		*cmds = append(*cmds, m.input.Focus())
	case key.Matches(msg, m.keys.Edit):
		if it, ok := m.current(); ok {
			m.mode = modeEdit
			m.editID = it.ID
			m.input.SetValue(it.Title)
			m.input.CursorEnd()
			*cmds = append(*cmds, m.input.Focus())
		}
	}
}

func (m *Model) handleDragKey(msg tea.KeyPressMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.setOver(m.over - 1)
	case key.Matches(msg, m.keys.Down):
		m.setOver(m.over + 1)
	case key.Matches(msg, m.keys.Top):
		m.setOver(0)
	case key.Matches(msg, m.keys.Bottom):
		m.setOver(len(m.items) - 1)
	case key.Matches(msg, m.keys.Cancel):
		m.drag.Cancel()
		m.setStatus("")
	case key.Matches(msg, m.keys.Drop), key.Matches(msg, m.keys.Pick):
		g, ok := m.drag.Drop(m.items, m.overID)
		if !ok {
			m.setStatus("")
			return
		}
		m.cursor = g.Index
		m.setStatus("")
		m.run(m.engine.Commit(m.ctx, g))
	case key.Matches(msg, m.keys.Quit):
		m.drag.Cancel()
	}
}

func (m *Model) handleInputKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.leaveInput()
		return
	case "enter":
		title := m.input.Value()
		switch m.mode {
		case modeAdd:
			m.run(m.engine.Create(m.ctx, item.New(title, "")))
			m.cursor = len(m.items) - 1
		case modeEdit:
			if it, ok := m.engine.Cache().Find(m.editID); ok {
				it.Title = title
				m.run(m.engine.Update(m.ctx, it))
			}
		}
		m.leaveInput()
		return
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	*cmds = append(*cmds, cmd)
}

func (m *Model) leaveInput() {
	m.mode = modeNormal
	m.editID = ""
	m.input.Blur()
	m.input.SetValue("")
}

// run reports a rejected verb and shows the optimistic state right away.
// The remote outcome arrives later as a MutationSettledMsg.
func (m *Model) run(_ *engine.Pending, err error) {
	if err != nil {
		m.setError(err)
	}
	m.sync()
}

func (m *Model) footer() string {
	th := m.theme.Footer
	var lines []string
	switch m.mode {
	case modeAdd:
		lines = append(lines, th.Prompt.Render("add: ")+m.input.View())
	case modeEdit:
		lines = append(lines, th.Prompt.Render("edit: ")+m.input.View())
	}
	if n := len(m.engine.InFlight()); n > 0 {
		lines = append(lines, th.Status.Render(fmt.Sprintf("%s %d syncing, %s on failure", glyph.Pending, n, m.engine.Policy())))
	}
	if m.status != "" {
		style := th.Status
		if m.failure {
			style = th.Error
		}
		lines = append(lines, style.Render(m.status))
	}
	if _, dragging := m.drag.Active(); dragging {
		lines = append(lines, th.Help.Render(m.help.View(dragKeys{m.keys})))
	} else if m.mode == modeNormal {
		lines = append(lines, th.Help.Render(m.help.View(m.keys)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
