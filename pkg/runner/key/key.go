// Package key provides CLI helpers to display the list legend.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/todo/pkg/glyph"
)

// Key prints the glyphs used by list output and the ui.
type Key struct {
	Out io.Writer
}

// Do renders the bullet and marker keys.
func (k *Key) Do(ctx context.Context) error {
	k.Key(ctx, glyph.DefaultGlyphs(), false)
	k.Key(ctx, glyph.DefaultGlyphs(), true)
	_, _ = fmt.Fprintln(k.out(), "")
	return nil
}

// Key renders a glyph table; when marker is true, row markers are shown.
func (k *Key) Key(_ context.Context, glyfs []glyph.Glyph, marker bool) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	if marker {
		tbl.AddRow(bold.Sprint("Markers"), bold.Sprint("Meaning"))
	} else {
		tbl.AddRow(bold.Sprint("Bullets"), bold.Sprint("Meaning"))
	}
	for _, v := range glyfs {
		if marker == v.Marker {
			tbl.AddRow(v.Symbol, v.Meaning)
		}
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(k.out(), "")
	_, _ = fmt.Fprintln(k.out(), tbl)
}

func (k *Key) out() io.Writer {
	if k.Out != nil {
		return k.Out
	}
	return color.Output
}
