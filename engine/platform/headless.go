package platform

import (
	"github.com/remotedisplay/shell/engine/core"
	"github.com/remotedisplay/shell/engine/gfx"
)

type HeadlessOptions struct {
	Window core.Size
	Pixels core.Size
	// MaxFrames queues a quit once that many frames were presented; 0 runs
	// until something else stops the shell.
	MaxFrames int
	// Script holds events delivered before the frame with the given index.
	Script map[int][]core.Event
	// RejectScale makes SetScale fail, as on renderers without scaling.
	RejectScale bool
	// RejectFullscreen makes SetFullscreen(true) fail, as with no monitor.
	RejectFullscreen bool
}

// HeadlessSurface is a core.Surface without a window. It draws into a
// gfx.NullDevice and replays scripted input.
type HeadlessSurface struct {
	Device *gfx.NullDevice
	Canvas

	opt    HeadlessOptions
	window core.Size
	pixels core.Size

	frame    int
	queue    []core.Event
	loaded   bool
	Presents int
	// Scales records every accepted SetScale.
	Scales     []core.Vec2
	Cursor     bool
	Fullscreen bool
	destroyed  bool
}

func NewHeadlessSurface(opt HeadlessOptions) *HeadlessSurface {
	if opt.Window == (core.Size{}) {
		opt.Window = core.Size{W: 1280, H: 720}
	}
	if opt.Pixels == (core.Size{}) {
		opt.Pixels = opt.Window
	}
	dev := gfx.NewNullDevice()
	s := &HeadlessSurface{
		Device: dev,
		Canvas: Canvas{Dev: dev},
		opt:    opt,
		window: opt.Window,
		pixels: opt.Pixels,
		Cursor: true,
	}
	_ = s.SetPixelScale(s.pixels, 1, 1)
	return s
}

// PollEvent loads the current frame's script on first call, then hands out
// queued events. Resize events update the reported sizes, keeping the pixel
// density the surface started with.
func (s *HeadlessSurface) PollEvent() (core.Event, bool) {
	if !s.loaded {
		s.loaded = true
		s.queue = append(s.queue, s.opt.Script[s.frame]...)
		if s.opt.MaxFrames > 0 && s.frame >= s.opt.MaxFrames {
			s.queue = append(s.queue, core.EventQuit{})
		}
	}
	if len(s.queue) == 0 {
		return nil, false
	}
	ev := s.queue[0]
	s.queue = s.queue[1:]
	if r, ok := ev.(core.EventWindowResized); ok {
		s.resize(r.W, r.H)
	}
	return ev, true
}

func (s *HeadlessSurface) resize(w, h int) {
	if s.opt.Window.W > 0 && s.opt.Window.H > 0 {
		s.pixels = core.Size{
			W: w * s.opt.Pixels.W / s.opt.Window.W,
			H: h * s.opt.Pixels.H / s.opt.Window.H,
		}
	}
	s.window = core.Size{W: w, H: h}
}

// Push queues ev for the current frame.
func (s *HeadlessSurface) Push(ev core.Event) { s.queue = append(s.queue, ev) }

func (s *HeadlessSurface) WindowSize() core.Size { return s.window }
func (s *HeadlessSurface) PixelSize() core.Size  { return s.pixels }

func (s *HeadlessSurface) SetScale(sx, sy float32) error {
	if s.opt.RejectScale {
		return ErrInvalidScale
	}
	if err := s.SetPixelScale(s.pixels, sx, sy); err != nil {
		return err
	}
	s.Scales = append(s.Scales, core.Vec2{X: sx, Y: sy})
	return nil
}

func (s *HeadlessSurface) SetFullscreen(on bool) error {
	if on && s.opt.RejectFullscreen {
		return ErrNoFullscreen
	}
	s.Fullscreen = on
	return nil
}

func (s *HeadlessSurface) ShowCursor(show bool) { s.Cursor = show }
func (s *HeadlessSurface) Clear()               { s.ClearBlack() }

func (s *HeadlessSurface) Present() {
	s.Presents++
	s.frame++
	s.loaded = false
	s.ClearBlack()
}

func (s *HeadlessSurface) RendererInfo() string { return s.Device.Info() }

func (s *HeadlessSurface) Destroyed() bool { return s.destroyed }

func (s *HeadlessSurface) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.Device.Shutdown()
}
