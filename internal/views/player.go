package views

import (
	"github.com/remotedisplay/shell/engine/colors"
	"github.com/remotedisplay/shell/engine/core"
	"github.com/remotedisplay/shell/engine/gfx"
)

type PlayerOptions struct {
	Source SourceOptions
	// Filter is the texture filter used when the frame is scaled.
	Filter gfx.Filter
}

// Player shows the frame source full-window without the UI layer.
type Player struct {
	host Host
	opt  PlayerOptions

	src     *StubSource
	tex     gfx.Texture
	shown   uint64
	started bool
}

var _ core.View = (*Player)(nil)

func NewPlayer(host Host, opt PlayerOptions) *Player {
	return &Player{host: host, opt: opt}
}

func (p *Player) UsesImmediateModeUI() bool { return false }

// EnterForeground starts the source the first time the player is shown.
func (p *Player) EnterForeground() {
	if p.started {
		return
	}
	p.started = true
	src, err := NewStubSource(p.opt.Source)
	if err != nil {
		p.host.Log().Error("Frame source failed", "err", err)
		p.host.Pop()
		return
	}
	p.src = src
	p.src.Start()
	p.host.Log().Info("Playing", "source", "stub", "size", [2]int{p.opt.Source.Width, p.opt.Source.Height})
}

func (p *Player) LeaveForeground() {}

func (p *Player) Destroy() {
	if p.src != nil {
		p.src.Stop()
	}
	if p.tex != nil {
		p.host.Raw().R2D.Device().DestroyTexture(p.tex)
		p.tex = nil
	}
}

func (p *Player) BackPressed() { p.host.Pop() }
func (p *Player) Draw()        {}

func (p *Player) RawDraw() {
	if p.src == nil {
		return
	}
	if err := p.upload(); err != nil {
		p.host.Log().Error("Frame upload failed", "err", err)
		p.host.Pop()
		return
	}
	if p.tex == nil {
		return
	}
	raw := p.host.Raw()
	tw, th := p.tex.Size()
	x, y, w, h := letterbox(tw, th, p.host.Scale().LogicalSize())

	raw.R2D.BeginScene(raw.Projection())
	raw.R2D.DrawTexturedQuad(x+w/2, y+h/2, w, h, p.tex, colors.White, 0)
	if err := raw.R2D.EndScene(); err != nil {
		p.host.Log().Warn("Frame draw failed", "err", err)
	}
}

// upload copies a newer frame, if any, into the player texture.
func (p *Player) upload() error {
	f, ok := p.src.Latest()
	if !ok || f.Seq == p.shown {
		return nil
	}
	dev := p.host.Raw().R2D.Device()
	if p.tex != nil {
		if w, h := p.tex.Size(); w != f.W || h != f.H {
			dev.DestroyTexture(p.tex)
			p.tex = nil
		}
	}
	if p.tex == nil {
		tex, err := dev.CreateTexture(gfx.TextureDesc{
			Width:     f.W,
			Height:    f.H,
			Format:    gfx.TextureRGBA8,
			Pixels:    f.Pixels,
			MinFilter: p.opt.Filter,
			MagFilter: p.opt.Filter,
		})
		if err != nil {
			return err
		}
		p.tex = tex
	} else if err := dev.UpdateTexture(p.tex, f.Pixels); err != nil {
		return err
	}
	p.shown = f.Seq
	return nil
}

// letterbox fits a w by h picture into dst keeping its aspect ratio, centered.
func letterbox(w, h int, dst core.Vec2) (x, y, bw, bh float32) {
	if w <= 0 || h <= 0 || dst.X <= 0 || dst.Y <= 0 {
		return 0, 0, 0, 0
	}
	s := min(dst.X/float32(w), dst.Y/float32(h))
	bw, bh = float32(w)*s, float32(h)*s
	return (dst.X - bw) / 2, (dst.Y - bh) / 2, bw, bh
}
