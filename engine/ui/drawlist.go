package ui

import (
	"github.com/remotedisplay/shell/engine/colors"
	"github.com/remotedisplay/shell/engine/text"
)

type CmdKind uint8

const (
	CmdRect CmdKind = iota
	CmdText
)

// DrawCmd is one primitive in logical coordinates.
type DrawCmd struct {
	Kind  CmdKind
	Rect  Rect
	Color colors.Color

	// CmdText only.
	Text  string
	Font  *text.Font
	Scale float32
}

// DrawData is the finalised output of one UI frame.
type DrawData struct {
	DisplaySize Vec2
	Cmds        []DrawCmd
}

func (dd *DrawData) reset(display Vec2) {
	dd.DisplaySize = display
	dd.Cmds = dd.Cmds[:0]
}

func (dd *DrawData) rect(r Rect, c colors.Color) int {
	dd.Cmds = append(dd.Cmds, DrawCmd{Kind: CmdRect, Rect: r, Color: c})
	return len(dd.Cmds) - 1
}

func (dd *DrawData) outline(r Rect, thickness float32, c colors.Color) {
	dd.rect(Rect{r.X, r.Y, r.W, thickness}, c)
	dd.rect(Rect{r.X, r.Y + r.H - thickness, r.W, thickness}, c)
	dd.rect(Rect{r.X, r.Y, thickness, r.H}, c)
	dd.rect(Rect{r.X + r.W - thickness, r.Y, thickness, r.H}, c)
}

func (dd *DrawData) text(pos Vec2, s string, f *text.Font, scale float32, c colors.Color) {
	dd.Cmds = append(dd.Cmds, DrawCmd{
		Kind:  CmdText,
		Rect:  Rect{X: pos.X, Y: pos.Y},
		Color: c,
		Text:  s,
		Font:  f,
		Scale: scale,
	})
}
