package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/remotedisplay/shell/engine/core"
)

var display = Vec2{1280, 720}

// newTestContext returns a context with a clock that advances 16ms per
// frame and no fonts loaded.
func newTestContext() *Context {
	c := NewContext()
	t := time.Unix(0, 0)
	c.Now = func() time.Time {
		t = t.Add(16 * time.Millisecond)
		return t
	}
	return c
}

// frame runs one UI frame around fn.
func frame(c *Context, fn func()) *DrawData {
	c.NewFrame(display)
	c.Begin("w", WindowNoTitleBar)
	fn()
	c.End()
	return c.Render()
}

func texts(dd *DrawData) []string {
	var out []string
	for _, cmd := range dd.Cmds {
		if cmd.Kind == CmdText {
			out = append(out, cmd.Text)
		}
	}
	return out
}

func mustPanicWith(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, want) {
			t.Fatalf("panic = %v, want %v", r, want)
		}
	}()
	fn()
}

func TestButtonClickOnRelease(t *testing.T) {
	c := newTestContext()
	var pressed []bool
	button := func() { pressed = append(pressed, c.Button("OK")) }

	frame(c, button) // lays out the window so hit-testing has a size
	c.AddMousePosEvent(75, 75)
	c.ProcessEvent(core.EventMouseButton{Button: core.MouseLeft, Down: true})
	frame(c, button)
	c.ProcessEvent(core.EventMouseButton{Button: core.MouseLeft, Down: false})
	frame(c, button)
	frame(c, button)

	want := []bool{false, false, true, false}
	for i := range want {
		if pressed[i] != want[i] {
			t.Fatalf("pressed = %v, want %v", pressed, want)
		}
	}
}

func TestButtonReleaseOutsideCancels(t *testing.T) {
	c := newTestContext()
	got := false
	button := func() { got = c.Button("OK") || got }

	frame(c, button)
	c.AddMousePosEvent(75, 75)
	c.ProcessEvent(core.EventMouseButton{Button: core.MouseLeft, Down: true})
	frame(c, button)
	c.AddMousePosEvent(900, 600)
	c.ProcessEvent(core.EventMouseButton{Button: core.MouseLeft, Down: false})
	frame(c, button)
	if got {
		t.Fatal("button fired after release outside")
	}
}

func TestKeyboardNavigation(t *testing.T) {
	c := newTestContext()
	var a, b bool
	buttons := func() {
		a = c.Button("Alpha")
		b = c.Button("Beta")
	}
	key := func(k core.Key, mods core.Mod) {
		c.ProcessEvent(core.EventKey{Key: k, Down: true, Mods: mods})
	}

	frame(c, buttons)
	if c.NavID() != 0 {
		t.Fatal("focus before any navigation")
	}

	key(core.KeyTab, 0)
	key(core.KeyTab, 0)
	frame(c, buttons)
	beta := c.NavID()

	key(core.KeyTab, core.ModShift)
	frame(c, buttons)
	alpha := c.NavID()
	if alpha == beta || alpha == 0 {
		t.Fatalf("shift-tab did not move focus: %d -> %d", beta, alpha)
	}

	key(core.KeyEnter, 0)
	frame(c, buttons)
	if !a || b {
		t.Fatalf("enter activated a=%v b=%v, want only Alpha", a, b)
	}

	key(core.KeyUp, 0) // wraps to the last item
	frame(c, buttons)
	if c.NavID() != beta {
		t.Fatal("up from the first item did not wrap")
	}
}

func TestLabelIDSuffix(t *testing.T) {
	c := newTestContext()
	dd := frame(c, func() {
		c.Button("Play##one")
		c.Button("Play##two")
	})
	if got := texts(dd); len(got) != 2 || got[0] != "Play" || got[1] != "Play" {
		t.Fatalf("texts = %q", got)
	}
	w := &window{name: "w"}
	if c.idFor(w, "Play##one") == c.idFor(w, "Play##two") {
		t.Fatal("id suffix ignored")
	}
}

func TestCheckboxToggles(t *testing.T) {
	c := newTestContext()
	on := false
	changed := false
	box := func() { changed = c.Checkbox("Fullscreen", &on) }

	frame(c, box)
	c.AddMousePosEvent(72, 72)
	c.ProcessEvent(core.EventMouseButton{Button: core.MouseLeft, Down: true})
	frame(c, box)
	c.ProcessEvent(core.EventMouseButton{Button: core.MouseLeft, Down: false})
	frame(c, box)
	if !changed || !on {
		t.Fatalf("changed=%v on=%v after click", changed, on)
	}
}

func TestWindowAutoSizeAndPivot(t *testing.T) {
	c := newTestContext()
	place := func() {
		c.NewFrame(display)
		c.SetNextWindowPos(Vec2{640, 360}, Vec2{0.5, 0.5}, true)
		c.Begin("menu", 0)
		c.Text("Remote display")
		c.Separator()
		c.Button("Quit")
		c.End()
		c.Render()
	}
	place()
	first, ok := c.WindowRect("menu")
	if !ok || first.W <= 0 || first.H <= 0 {
		t.Fatalf("window rect = %+v, %v", first, ok)
	}

	place()
	r, _ := c.WindowRect("menu")
	if cx, cy := r.X+r.W/2, r.Y+r.H/2; cx != 640 || cy != 360 {
		t.Fatalf("center = (%g, %g), want (640, 360)", cx, cy)
	}
}

func TestMinWidth(t *testing.T) {
	c := newTestContext()
	c.NewFrame(display)
	c.SetNextWindowMinWidth(400)
	c.Begin("wide", WindowNoTitleBar)
	c.Text("x")
	c.End()
	c.Render()
	if r, _ := c.WindowRect("wide"); r.W != 400 {
		t.Fatalf("width = %g, want 400", r.W)
	}
}

func TestStaleWindowsDropped(t *testing.T) {
	c := newTestContext()
	frame(c, func() {})
	if _, ok := c.WindowRect("w"); !ok {
		t.Fatal("window missing after its frame")
	}
	c.NewFrame(display)
	c.Render()
	if _, ok := c.WindowRect("w"); ok {
		t.Fatal("window kept after a frame without it")
	}
}

func TestMisuse(t *testing.T) {
	c := newTestContext()
	mustPanicWith(t, ErrFrameNotStarted, func() { c.Begin("x", 0) })

	c.NewFrame(display)
	mustPanicWith(t, ErrNoWindow, func() { c.Text("orphan") })
	mustPanicWith(t, ErrNoWindow, func() { c.End() })

	c.Begin("x", 0)
	mustPanicWith(t, ErrWindowOpen, func() { c.Begin("y", 0) })
	mustPanicWith(t, ErrWindowOpen, func() { c.Render() })
}

func TestFramerateSmoothing(t *testing.T) {
	c := newTestContext()
	for range 3 {
		c.NewFrame(display)
		c.Render()
	}
	if fps := c.Framerate(); fps < 62 || fps > 63 {
		t.Fatalf("framerate = %g, want ~62.5", fps)
	}
}

func TestFocusLossReleasesButtons(t *testing.T) {
	c := newTestContext()
	c.ProcessEvent(core.EventMouseButton{Button: core.MouseLeft, Down: true})
	c.NewFrame(display)
	c.Render()
	c.ProcessEvent(core.EventFocus{Focused: false})
	c.NewFrame(display)
	c.Render()
	if c.IO.MouseDown[MouseLeft] || !c.IO.MouseReleased[MouseLeft] {
		t.Fatalf("mouse state after focus loss: down=%v released=%v",
			c.IO.MouseDown[MouseLeft], c.IO.MouseReleased[MouseLeft])
	}
}

func TestScaleAllSizes(t *testing.T) {
	st := DefaultStyle()
	st.ScaleAllSizes(2)
	if st.WindowPadding != (Vec2{16, 16}) || st.ItemSpacing != (Vec2{16, 8}) {
		t.Fatalf("scaled style = %+v", st)
	}
	if st.Colors != DefaultStyle().Colors {
		t.Fatal("colors changed by scaling")
	}
	st.ScaleAllSizes(0.1)
	if st.SeparatorSize != 1 {
		t.Fatalf("separator = %g, want clamp to 1", st.SeparatorSize)
	}
}

func TestTextScalesWithFontScale(t *testing.T) {
	c := newTestContext()
	base := c.CalcTextSize("abcd")
	c.IO.FontGlobalScale = 1
	if got := c.CalcTextSize("abcd"); got.X != base.X*2 || got.Y != base.Y*2 {
		t.Fatalf("size = %+v, want twice %+v", got, base)
	}
	if !strings.Contains(strings.Join(texts(frame(c, func() { c.Textf("n=%d", 3) })), ""), "n=3") {
		t.Fatal("Textf not formatted")
	}
}

func TestRasterSizes(t *testing.T) {
	want := [fontCount]float32{60, 90, 80}
	if got := RasterSizes(); got != want {
		t.Fatalf("RasterSizes() = %v, want %v", got, want)
	}
	// At UI scale 1 the default font scale draws body text at its reference size.
	c := NewContext()
	if got := c.CalcTextSize("a").Y; got != TextSize {
		t.Fatalf("line height = %g, want %d", got, TextSize)
	}
}
