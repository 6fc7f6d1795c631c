package glyph

import "fmt"

type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
	// Marker glyphs decorate a row (pending, dragging) instead of
	// describing the item state.
	Marker bool
}

const (
	escape        = "\x1b"
	resetCode     = 0
	boldCode      = 1
	faintCode     = 2
	underlineCode = 4
	strikeCode    = 9
)

func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Faint(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, faintCode, in, escape, resetCode)
}

func Underline(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, underlineCode, in, escape, resetCode)
}

func DefaultGlyphs() []Glyph {
	return []Glyph{
		{
			Key:     " ",
			Symbol:  "●",
			Meaning: "open todo",
		}, {
			Key:     "x",
			Symbol:  "✘",
			Meaning: "completed todo",
		}, {
			Key:     "m",
			Symbol:  "≡",
			Meaning: "todo being dragged",
			Marker:  true,
		}, {
			Key:     "",
			Symbol:  "›",
			Meaning: "drop target",
			Marker:  true,
		}, {
			Key:     "",
			Symbol:  "…",
			Meaning: "waiting for the server",
			Marker:  true,
		},
	}
}

func (g Glyph) String() string {
	return g.Symbol
}

type Bullet int

const (
	Task Bullet = iota
	Completed
	Dragging
	DropTarget
	Pending
)

func (b Bullet) Glyph() Glyph {
	return DefaultGlyphs()[b]
}

func (b Bullet) String() string {
	return b.Glyph().String()
}
