package ui

import (
	"github.com/remotedisplay/shell/engine/gfx/renderer2d"
	"github.com/remotedisplay/shell/engine/text"
)

// Renderer submits finalised draw data.
type Renderer interface {
	Render(dd *DrawData) error
}

// Renderer2D draws UI commands as batched quads.
type Renderer2D struct {
	r2d  *renderer2d.Renderer2D
	proj func() [16]float32
}

// NewRenderer2D draws through r2d. proj returns the logical-to-clip
// projection for the current frame.
func NewRenderer2D(r2d *renderer2d.Renderer2D, proj func() [16]float32) *Renderer2D {
	return &Renderer2D{r2d: r2d, proj: proj}
}

func (r *Renderer2D) Render(dd *DrawData) error {
	if len(dd.Cmds) == 0 {
		return nil
	}
	r.r2d.BeginScene(r.proj())
	for i := range dd.Cmds {
		cmd := &dd.Cmds[i]
		switch cmd.Kind {
		case CmdRect:
			if cmd.Rect.W <= 0 || cmd.Rect.H <= 0 {
				continue
			}
			r.r2d.FillRect(cmd.Rect.X, cmd.Rect.Y, cmd.Rect.W, cmd.Rect.H, cmd.Color)
		case CmdText:
			text.DrawText(r.r2d, cmd.Font, cmd.Rect.X, cmd.Rect.Y, cmd.Scale, cmd.Text, cmd.Color)
		}
	}
	return r.r2d.EndScene()
}
