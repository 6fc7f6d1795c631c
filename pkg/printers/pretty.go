package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/todo/pkg/item"
)

// shortID is how much of an id is shown with --show-id; enough to be unique
// in practice and accepted back as a prefix.
const shortID = 8

type PrettyPrint struct {
	ShowID bool
	// Width wraps descriptions; 0 means 80.
	Width int
	Out   io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) width() int {
	if pp.Width > 0 {
		return pp.Width
	}
	return 80
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " todo")
	default:
		_, _ = c.Fprintln(pp.out(), " todos")
	}
}

// List prints items in the order given.
func (pp *PrettyPrint) List(items ...item.Item) {
	if len(items) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	faint := color.New(color.Faint)
	done := color.New(color.CrossedOut, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = uint(pp.width())
	for _, it := range items {
		pos, bullet, title := it.Row()
		if it.Completed {
			title = done.Sprint(title)
		}
		if pp.ShowID {
			tbl.AddRow(faint.Sprint(pos), y.Sprint(Short(it.ID)), bullet, title)
		} else {
			tbl.AddRow(faint.Sprint(pos), bullet, title)
		}
		if it.Description != "" {
			desc := faint.Sprint(pp.describe(it.Description))
			if pp.ShowID {
				tbl.AddRow("", "", "", desc)
			} else {
				tbl.AddRow("", "", desc)
			}
		}
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Item prints a single todo with its full description.
func (pp *PrettyPrint) Item(it item.Item) {
	b := color.New(color.Bold)
	_, _ = b.Fprintln(pp.out(), it.String())
	if pp.ShowID {
		_, _ = color.New(color.Faint).Fprintf(pp.out(), "   id %s, position %d\n", it.ID, it.Position)
	}
	if it.Description != "" {
		_, _ = fmt.Fprintln(pp.out(), indent.String(wordwrap.String(it.Description, pp.width()-3), 3))
	}
}

func (pp *PrettyPrint) describe(desc string) string {
	return strings.TrimRight(wordwrap.String(desc, pp.width()/2), "\n")
}

// Short trims an id for display.
func Short(id string) string {
	if len(id) <= shortID {
		return id
	}
	return id[:shortID]
}
