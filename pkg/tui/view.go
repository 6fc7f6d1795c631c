package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/todo/pkg/glyph"
	"tableflip.dev/todo/pkg/item"
)

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Todo"))
	b.WriteString(m.theme.Count.Render(fmt.Sprintf(" - %d", len(m.items))))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(m.theme.Count.Render("  nothing to do, press a to add"))
		b.WriteString("\n")
	}
	for i, it := range m.items {
		b.WriteString(m.row(i, it))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m *Model) row(i int, it item.Item) string {
	dragID, dragging := m.drag.Active()

	cursor := "  "
	switch {
	case dragging && i == m.over:
		cursor = m.theme.Target.Render(glyph.DropTarget.String()) + " "
	case !dragging && i == m.cursor:
		cursor = m.theme.Selected.Render(">") + " "
	}

	bullet := it.Bullet()
	if m.engine.IsPending(it.ID) {
		bullet = glyph.Pending
	}
	if dragging && it.ID == dragID {
		bullet = glyph.Dragging
	}

	title := it.Title
	if m.width > 0 {
		title = truncate.StringWithTail(title, uint(max(m.width-6, 1)), "…")
	}

	style := m.theme.Row
	switch {
	case dragging && it.ID == dragID:
		style = m.theme.Dragging
	case it.Completed:
		style = m.theme.Done
	case bullet == glyph.Pending:
		style = m.theme.Pending
	case !dragging && i == m.cursor:
		style = m.theme.Selected
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cursor, bullet.String(), " ", style.Render(title))
}
