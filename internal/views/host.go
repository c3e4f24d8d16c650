// Package views holds the client's screens: the main menu, settings and the
// player, plus the stub frame source that feeds the player.
package views

import (
	"charm.land/log/v2"

	"github.com/remotedisplay/shell/engine/core"
	"github.com/remotedisplay/shell/engine/gfx/renderer2d"
	"github.com/remotedisplay/shell/engine/ui"
)

// Host is what a view may do to the application.
type Host interface {
	Push(v core.View)
	Pop()
	Replace(v core.View)

	Scale() core.ScaleState
	OnResolutionChanged(fn func(core.ScaleState)) func()
	RequestExit()

	IsFullscreen() bool
	SetFullscreen(on bool) error
	DebugOverlay() bool
	SetDebugOverlay(on bool)

	UI() *ui.Context
	Raw() Raw
	Log() *log.Logger
}

// Raw is the canvas for views that draw without the UI layer.
type Raw struct {
	R2D *renderer2d.Renderer2D
	// Projection maps logical coordinates to clip space for this frame.
	Projection func() [16]float32
}

// ShellHost exposes a shell to views.
type ShellHost struct {
	shell *core.Shell
	ui    *ui.Context
	raw   Raw
	log   *log.Logger
}

var _ Host = (*ShellHost)(nil)

func NewHost(shell *core.Shell, uiCtx *ui.Context, raw Raw, logger *log.Logger) *ShellHost {
	if logger == nil {
		logger = shell.Log
	}
	return &ShellHost{shell: shell, ui: uiCtx, raw: raw, log: logger}
}

func (h *ShellHost) Push(v core.View)    { h.shell.Push(v) }
func (h *ShellHost) Pop()                { h.shell.Pop() }
func (h *ShellHost) Replace(v core.View) { h.shell.Replace(v) }

func (h *ShellHost) Scale() core.ScaleState { return h.shell.Scale() }

func (h *ShellHost) OnResolutionChanged(fn func(core.ScaleState)) func() {
	return h.shell.OnResolutionChanged(fn)
}

func (h *ShellHost) RequestExit() { h.shell.RequestExit() }

func (h *ShellHost) IsFullscreen() bool          { return h.shell.IsFullscreen() }
func (h *ShellHost) SetFullscreen(on bool) error { return h.shell.SetFullscreen(on) }
func (h *ShellHost) DebugOverlay() bool          { return h.shell.DebugOverlay() }
func (h *ShellHost) SetDebugOverlay(on bool)     { h.shell.SetDebugOverlay(on) }

func (h *ShellHost) UI() *ui.Context  { return h.ui }
func (h *ShellHost) Raw() Raw         { return h.raw }
func (h *ShellHost) Log() *log.Logger { return h.log }
