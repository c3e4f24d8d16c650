package ui

import (
	"charm.land/log/v2"

	"github.com/remotedisplay/shell/engine/core"
)

// Bridge adapts a Context to the shell's UIBridge.
type Bridge struct {
	Ctx *Context

	renderer Renderer
	display  func() Vec2
	log      *log.Logger

	baseline  *Style
	drawData  *DrawData
	renderErr bool
}

var _ core.UIBridge = (*Bridge)(nil)

// NewBridge builds a bridge over ctx. display returns the logical display
// size for each frame. A nil renderer discards draw data.
func NewBridge(ctx *Context, r Renderer, display func() Vec2, logger *log.Logger) *Bridge {
	if logger == nil {
		logger = log.Default()
	}
	return &Bridge{Ctx: ctx, renderer: r, display: display, log: logger}
}

func (b *Bridge) NewFrame() {
	var d Vec2
	if b.display != nil {
		d = b.display()
	}
	b.Ctx.NewFrame(d)
}

func (b *Bridge) EndFrame() { b.drawData = b.Ctx.Render() }

func (b *Bridge) RenderDrawData() {
	if b.renderer == nil || b.drawData == nil {
		return
	}
	if err := b.renderer.Render(b.drawData); err != nil && !b.renderErr {
		// Reported once; later frames usually fail the same way.
		b.renderErr = true
		b.log.Error("UI render failed", "err", err)
	}
}

func (b *Bridge) ProcessEvent(ev core.Event) { b.Ctx.ProcessEvent(ev) }

func (b *Bridge) AddMousePos(x, y float32) { b.Ctx.AddMousePosEvent(x, y) }

// BackupStyle snapshots the current style as the unscaled baseline.
func (b *Bridge) BackupStyle() {
	st := b.Ctx.Style
	b.baseline = &st
}

func (b *Bridge) RestoreStyle() {
	if b.baseline == nil {
		b.Ctx.Style = DefaultStyle()
		return
	}
	b.Ctx.Style = *b.baseline
}

func (b *Bridge) ScaleAllSizes(scale float32) { b.Ctx.Style.ScaleAllSizes(scale) }

func (b *Bridge) SetFontGlobalScale(scale float32) { b.Ctx.IO.FontGlobalScale = scale }

// DebugOverlay draws the "Info" window.
func (b *Bridge) DebugOverlay(info core.DebugInfo) {
	c := b.Ctx
	st := info.Scale
	pad := c.Style.WindowPadding
	c.SetNextWindowPos(Vec2{c.IO.DisplaySize.X - pad.X, pad.Y}, Vec2{1, 0}, true)
	c.Begin("Info", 0)
	c.Textf("FPS: %.1f", info.FPS)
	c.Textf("Window Size: %dx%d", st.WindowSize.W, st.WindowSize.H)
	c.Textf("Pixel Size: %dx%d", st.PixelSize.W, st.PixelSize.H)
	if st.ScaleApplied() {
		c.Textf("Wanted DPI Scale: %gx%g", st.DPIScale.X, st.DPIScale.Y)
	} else {
		c.Textf("Wanted DPI Scale: %gx%g (not applied)", st.DPIScale.X, st.DPIScale.Y)
	}
	c.Textf("UiScale: %g", st.UIScale)
	c.Textf("View stack: %d", info.StackDepth)
	if info.RendererInfo != "" {
		c.TextDisabled(info.RendererInfo)
	}
	c.End()
}

func (b *Bridge) Framerate() float32 { return b.Ctx.Framerate() }

func (b *Bridge) Shutdown() {
	peak, capacity := b.Ctx.TextArena()
	b.log.Debug("UI text arena", "peak", peak, "cap", capacity)
	b.Ctx.Shutdown()
}
