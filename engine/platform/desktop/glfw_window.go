package desktop

import (
	"fmt"

	"charm.land/log/v2"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/remotedisplay/shell/engine/core"
	"github.com/remotedisplay/shell/engine/gfx"
	glbackend "github.com/remotedisplay/shell/engine/gfx/gl"
	"github.com/remotedisplay/shell/engine/platform"
)

type WindowOptions struct {
	Title         string
	Width, Height int
	VSync         bool
	// MaxFrames queues a quit after that many presented frames; 0 = no limit.
	MaxFrames int
	Log       *log.Logger
}

// GLFWSurface implements core.Surface with a GLFW window and an OpenGL 3.3
// core context. Native callbacks are queued during glfw.PollEvents and handed
// out by PollEvent.
type GLFWSurface struct {
	w  *glfw.Window
	gl *glbackend.Device
	platform.Canvas
	log *log.Logger

	queue     []core.Event
	polled    bool
	frames    int
	maxFrames int

	// Windowed geometry restored when leaving fullscreen.
	savedX, savedY, savedW, savedH int
	fullscreen                     bool
}

// NewGLFWSurface must be called on the main thread before any GL calls.
func NewGLFWSurface(opt WindowOptions) (*GLFWSurface, error) {
	if opt.Log == nil {
		opt.Log = log.Default()
	}
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	// GL 3.3 core profile (Mac requires forward-compatible flag).
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)
	glfw.WindowHint(glfw.Samples, 0)

	win, err := glfw.CreateWindow(opt.Width, opt.Height, opt.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	if opt.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	dev, err := glbackend.NewDevice()
	if err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, err
	}

	s := &GLFWSurface{w: win, gl: dev, Canvas: platform.Canvas{Dev: dev}, log: opt.Log, maxFrames: opt.MaxFrames}
	s.installCallbacks()
	if err := s.SetPixelScale(s.PixelSize(), 1, 1); err != nil {
		s.Destroy()
		return nil, err
	}
	return s, nil
}

func (s *GLFWSurface) installCallbacks() {
	win := s.w
	win.SetCloseCallback(func(*glfw.Window) { s.push(core.EventWindowClose{}) })
	win.SetSizeCallback(func(_ *glfw.Window, w, h int) {
		s.push(core.EventWindowResized{W: w, H: h})
	})
	// Framebuffer changes without a window resize (moving to a monitor
	// with another density) still need a recompute.
	win.SetFramebufferSizeCallback(func(*glfw.Window, int, int) {
		ws := s.WindowSize()
		s.push(core.EventWindowResized{W: ws.W, H: ws.H})
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		ws, fb := s.WindowSize(), s.PixelSize()
		sx, sy := 1.0, 1.0
		if ws.W > 0 && ws.H > 0 {
			sx = float64(fb.W) / float64(ws.W)
			sy = float64(fb.H) / float64(ws.H)
		}
		s.push(core.EventMouseMove{X: float32(x * sx), Y: float32(y * sy)})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		k := translateKey(key)
		if k == core.KeyUnknown {
			return
		}
		s.push(core.EventKey{
			Key:    k,
			Down:   action != glfw.Release,
			Repeat: action == glfw.Repeat,
			Mods:   translateMods(mods),
		})
	})
	win.SetCharCallback(func(_ *glfw.Window, r rune) { s.push(core.EventChar{Rune: r}) })
	win.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if b == glfw.MouseButton4 {
			// Mouse "back" button acts as the platform back key.
			s.push(core.EventKey{Key: core.KeyBack, Down: action == glfw.Press})
			return
		}
		mb, ok := translateButton(b)
		if !ok {
			return
		}
		s.push(core.EventMouseButton{Button: mb, Down: action == glfw.Press, Mods: translateMods(mods)})
	})
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		s.push(core.EventScroll{Xoff: float32(xoff), Yoff: float32(yoff)})
	})
	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		s.push(core.EventFocus{Focused: focused})
	})
}

func (s *GLFWSurface) push(ev core.Event) { s.queue = append(s.queue, ev) }

// PollEvent pumps the native queue once per frame, then hands out the
// buffered events in order.
func (s *GLFWSurface) PollEvent() (core.Event, bool) {
	if !s.polled {
		s.polled = true
		glfw.PollEvents()
	}
	if len(s.queue) == 0 {
		return nil, false
	}
	ev := s.queue[0]
	s.queue = s.queue[1:]
	return ev, true
}

func (s *GLFWSurface) WindowSize() core.Size {
	w, h := s.w.GetSize()
	return core.Size{W: w, H: h}
}

func (s *GLFWSurface) PixelSize() core.Size {
	w, h := s.w.GetFramebufferSize()
	return core.Size{W: w, H: h}
}

func (s *GLFWSurface) SetScale(sx, sy float32) error { return s.SetPixelScale(s.PixelSize(), sx, sy) }

// SetFullscreen switches to the primary monitor's current video mode and
// back to the saved windowed geometry.
func (s *GLFWSurface) SetFullscreen(on bool) error {
	if on == s.fullscreen {
		return nil
	}
	if on {
		mon := glfw.GetPrimaryMonitor()
		if mon == nil {
			return platform.ErrNoFullscreen
		}
		s.savedX, s.savedY = s.w.GetPos()
		s.savedW, s.savedH = s.w.GetSize()
		mode := mon.GetVideoMode()
		s.w.SetMonitor(mon, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	} else {
		s.w.SetMonitor(nil, s.savedX, s.savedY, s.savedW, s.savedH, 0)
	}
	s.fullscreen = on
	s.log.Debug("Fullscreen", "on", on)
	return nil
}

func (s *GLFWSurface) ShowCursor(show bool) {
	if show {
		s.w.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	} else {
		s.w.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
	}
}

func (s *GLFWSurface) Clear() { s.ClearBlack() }

// Present shows the frame and clears the back buffer for the next one.
func (s *GLFWSurface) Present() {
	s.w.SwapBuffers()
	s.ClearBlack()
	s.polled = false
	s.frames++
	if s.maxFrames > 0 && s.frames == s.maxFrames {
		s.push(core.EventQuit{})
	}
}

func (s *GLFWSurface) RendererInfo() string { return s.gl.Info() }

func (s *GLFWSurface) Device() gfx.Device { return s.gl }

func (s *GLFWSurface) Destroy() {
	if s.w == nil {
		return
	}
	s.gl.Shutdown()
	s.w.Destroy()
	s.w = nil
	glfw.Terminate()
}

func translateKey(k glfw.Key) core.Key {
	switch k {
	case glfw.KeyEscape:
		return core.KeyEscape
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return core.KeyEnter
	case glfw.KeyTab:
		return core.KeyTab
	case glfw.KeySpace:
		return core.KeySpace
	case glfw.KeyBackspace:
		return core.KeyBackspace
	case glfw.KeyDelete:
		return core.KeyDelete
	case glfw.KeyUp:
		return core.KeyUp
	case glfw.KeyDown:
		return core.KeyDown
	case glfw.KeyLeft:
		return core.KeyLeft
	case glfw.KeyRight:
		return core.KeyRight
	case glfw.KeyHome:
		return core.KeyHome
	case glfw.KeyEnd:
		return core.KeyEnd
	case glfw.KeyPageUp:
		return core.KeyPageUp
	case glfw.KeyPageDown:
		return core.KeyPageDown
	}
	if k >= glfw.KeyF1 && k <= glfw.KeyF12 {
		return core.KeyF1 + core.Key(k-glfw.KeyF1)
	}
	return core.KeyUnknown
}

func translateButton(b glfw.MouseButton) (core.MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return core.MouseLeft, true
	case glfw.MouseButtonRight:
		return core.MouseRight, true
	case glfw.MouseButtonMiddle:
		return core.MouseMiddle, true
	}
	return 0, false
}

func translateMods(m glfw.ModifierKey) core.Mod {
	var out core.Mod
	if m&glfw.ModShift != 0 {
		out |= core.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= core.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= core.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= core.ModSuper
	}
	return out
}
