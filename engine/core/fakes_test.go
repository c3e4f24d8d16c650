package core

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"charm.land/log/v2"
)

// recorder collects calls from every fake in one ordered log.
type recorder struct{ calls []string }

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) reset() { r.calls = nil }

func (r *recorder) String() string { return strings.Join(r.calls, "\n") }

// filter keeps calls starting with one of the prefixes.
func (r *recorder) filter(prefixes ...string) []string {
	var out []string
	for _, c := range r.calls {
		for _, p := range prefixes {
			if strings.HasPrefix(c, p) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

type fakeSurface struct {
	rec      *recorder
	queue    []Event
	window   Size
	pixels   Size
	scaleErr error
	fullErr  error
}

func (f *fakeSurface) PollEvent() (Event, bool) {
	if len(f.queue) == 0 {
		return nil, false
	}
	ev := f.queue[0]
	f.queue = f.queue[1:]
	return ev, true
}

func (f *fakeSurface) WindowSize() Size { return f.window }
func (f *fakeSurface) PixelSize() Size  { return f.pixels }

func (f *fakeSurface) SetScale(sx, sy float32) error {
	f.rec.add("surface.SetScale %g %g", sx, sy)
	return f.scaleErr
}

func (f *fakeSurface) SetFullscreen(on bool) error {
	f.rec.add("surface.SetFullscreen %v", on)
	return f.fullErr
}

func (f *fakeSurface) ShowCursor(show bool) { f.rec.add("surface.ShowCursor %v", show) }
func (f *fakeSurface) Clear()               { f.rec.add("surface.Clear") }
func (f *fakeSurface) Present()             { f.rec.add("surface.Present") }
func (f *fakeSurface) RendererInfo() string { return "fake" }
func (f *fakeSurface) Destroy()             { f.rec.add("surface.Destroy") }

// resize queues a resize event and updates the sizes the surface reports.
func (f *fakeSurface) resize(w, h, pw, ph int) {
	f.window = Size{w, h}
	f.pixels = Size{pw, ph}
	f.queue = append(f.queue, EventWindowResized{W: w, H: h})
}

type fakeUI struct {
	rec *recorder
}

func (u *fakeUI) NewFrame()       { u.rec.add("ui.NewFrame") }
func (u *fakeUI) EndFrame()       { u.rec.add("ui.EndFrame") }
func (u *fakeUI) RenderDrawData() { u.rec.add("ui.RenderDrawData") }

func (u *fakeUI) ProcessEvent(ev Event) { u.rec.add("ui.ProcessEvent %T", ev) }

func (u *fakeUI) AddMousePos(x, y float32) { u.rec.add("ui.AddMousePos %g %g", x, y) }

func (u *fakeUI) BackupStyle()                 { u.rec.add("ui.BackupStyle") }
func (u *fakeUI) RestoreStyle()                { u.rec.add("ui.RestoreStyle") }
func (u *fakeUI) ScaleAllSizes(s float32)      { u.rec.add("ui.ScaleAllSizes %g", s) }
func (u *fakeUI) SetFontGlobalScale(s float32) { u.rec.add("ui.SetFontGlobalScale %g", s) }
func (u *fakeUI) DebugOverlay(info DebugInfo)  { u.rec.add("ui.DebugOverlay depth=%d", info.StackDepth) }
func (u *fakeUI) Framerate() float32           { return 60 }
func (u *fakeUI) Shutdown()                    { u.rec.add("ui.Shutdown") }

// fakeView records its hooks. The optional funcs run inside the hook.
type fakeView struct {
	name string
	rec  *recorder
	ui   bool

	onBack func()
	onDraw func()

	destroyed int
}

func (v *fakeView) UsesImmediateModeUI() bool { return v.ui }
func (v *fakeView) EnterForeground()          { v.rec.add("%s.Enter", v.name) }
func (v *fakeView) LeaveForeground()          { v.rec.add("%s.Leave", v.name) }

func (v *fakeView) Destroy() {
	v.destroyed++
	v.rec.add("%s.Destroy", v.name)
}

func (v *fakeView) BackPressed() {
	v.rec.add("%s.Back", v.name)
	if v.onBack != nil {
		v.onBack()
	}
}

func (v *fakeView) Draw() {
	v.rec.add("%s.Draw", v.name)
	if v.onDraw != nil {
		v.onDraw()
	}
}

func (v *fakeView) RawDraw() { v.rec.add("%s.RawDraw", v.name) }

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func newTestShell(cfg Config) (*Shell, *fakeSurface, *recorder) {
	rec := &recorder{}
	surf := &fakeSurface{rec: rec, window: Size{1280, 720}, pixels: Size{1280, 720}}
	s := NewShell(surf, &fakeUI{rec: rec}, cfg, quietLogger())
	return s, surf, rec
}

var errNoScale = errors.New("scale unsupported")
