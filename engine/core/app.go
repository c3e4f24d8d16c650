package core

import (
	"time"

	"charm.land/log/v2"

	"github.com/remotedisplay/shell/engine/profiler"
)

// Size is a width/height pair in either logical units or physical pixels.
type Size struct{ W, H int }

// Vec2 is a per-axis float pair (scale factors).
type Vec2 struct{ X, Y float32 }

// Surface is the native window plus its 2D rendering context.
type Surface interface {
	// PollEvent returns the next queued native event without blocking.
	PollEvent() (Event, bool)
	// WindowSize is the logical window size.
	WindowSize() Size
	// PixelSize is the drawable size in physical pixels.
	PixelSize() Size
	// SetScale applies the physical DPI scale to the render transform.
	SetScale(sx, sy float32) error
	// SetFullscreen switches modes; on error the previous mode is kept.
	SetFullscreen(on bool) error
	ShowCursor(show bool)
	Clear()
	Present()
	RendererInfo() string
	Destroy()
}

// UIBridge is the immediate-mode UI layer as seen by the shell.
type UIBridge interface {
	// NewFrame performs renderer-side and platform-side frame setup.
	NewFrame()
	// EndFrame finalises the frame's draw data.
	EndFrame()
	// RenderDrawData submits the finalised draw data to the renderer.
	RenderDrawData()
	ProcessEvent(ev Event)
	// AddMousePos injects a pointer position in logical coordinates.
	AddMousePos(x, y float32)

	BackupStyle()
	RestoreStyle()
	ScaleAllSizes(scale float32)
	SetFontGlobalScale(scale float32)

	DebugOverlay(info DebugInfo)
	Framerate() float32
	Shutdown()
}

// DebugInfo feeds the shell's diagnostic overlay.
type DebugInfo struct {
	FPS          float32
	Scale        ScaleState
	StackDepth   int
	RendererInfo string
}

// Config for the shell run.
type Config struct {
	Bindings     Bindings
	DebugOverlay bool
}

func DefaultConfig() Config {
	return Config{Bindings: DefaultBindings(), DebugOverlay: true}
}

// Shell is the application context: it owns the surface, the UI bridge, the
// view stack and the scale state. Exactly one goroutine drives it.
type Shell struct {
	Surface Surface
	UI      UIBridge
	Views   *ViewStack
	Scaler  *Scaler
	Log     *log.Logger
	// Prof, if set, records a scope per frame phase.
	Prof *profiler.Recorder

	cfg        Config
	dispatcher *Dispatcher
	fullscreen bool
	start      time.Time

	exit        signal[struct{}]
	exitFired   bool
	exitRequest bool
}

func NewShell(surface Surface, ui UIBridge, cfg Config, logger *log.Logger) *Shell {
	if logger == nil {
		logger = log.Default()
	}
	s := &Shell{
		Surface: surface,
		UI:      ui,
		Views:   NewViewStack(),
		Log:     logger,
		cfg:     cfg,
		start:   time.Now(),
	}
	s.Scaler = NewScaler(ui, surface, logger.With("component", "scale"))
	s.dispatcher = NewDispatcher(s, cfg.Bindings)
	return s
}

func (s *Shell) Uptime() time.Duration { return time.Since(s.start) }

// Push, Pop and Replace make the shell a navigator for views.
func (s *Shell) Push(v View)    { s.Views.Push(v) }
func (s *Shell) Pop()           { s.Views.Pop() }
func (s *Shell) Replace(v View) { s.Views.Replace(v) }

// Scale returns the last computed scale state.
func (s *Shell) Scale() ScaleState { return s.Scaler.State() }

func (s *Shell) IsFullscreen() bool { return s.fullscreen }

// SetFullscreen changes the window mode and hides the cursor in fullscreen.
// Nothing changes when the surface refuses the mode.
func (s *Shell) SetFullscreen(on bool) error {
	if err := s.Surface.SetFullscreen(on); err != nil {
		return err
	}
	s.fullscreen = on
	s.Surface.ShowCursor(!on)
	return nil
}

// SetDebugOverlay toggles the diagnostic overlay drawn in UI frames.
func (s *Shell) SetDebugOverlay(on bool) { s.cfg.DebugOverlay = on }
func (s *Shell) DebugOverlay() bool      { return s.cfg.DebugOverlay }

// RequestExit asks the loop to stop at the next frame boundary, exactly as a
// quit event would.
func (s *Shell) RequestExit() { s.exitRequest = true }

// OnResolutionChanged registers fn to run after each actual logical window
// size change. The returned func unsubscribes.
func (s *Shell) OnResolutionChanged(fn func(ScaleState)) func() {
	return s.Scaler.changed.subscribe(fn)
}

// OnExit registers fn to run once, after the last view is destroyed and
// before the UI bindings and the renderer are released.
func (s *Shell) OnExit(fn func()) func() {
	return s.exit.subscribe(func(struct{}) { fn() })
}
