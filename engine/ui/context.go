package ui

import (
	"errors"
	"hash/fnv"
	"slices"
	"time"

	"github.com/remotedisplay/shell/engine/core"
	"github.com/remotedisplay/shell/engine/scratch"
	"github.com/remotedisplay/shell/engine/text"
)

var (
	ErrFrameNotStarted = errors.New("ui: widget call outside NewFrame/Render")
	ErrNoWindow        = errors.New("ui: widget call outside Begin/End")
	ErrWindowOpen      = errors.New("ui: Render with an open window")
)

type FontID int

const (
	FontText FontID = iota
	FontH1
	FontH2
	fontCount
)

// Reference raster sizes. Atlases are built at twice these and drawn at
// FontGlobalScale, which the scale coordinator keeps at UI scale / 2.
const (
	TextSize = 30
	H1Size   = 45
	H2Size   = 40
)

// RasterSizes returns the pixel sizes the atlases are built at.
func RasterSizes() [fontCount]float32 {
	return [fontCount]float32{TextSize * 2, H1Size * 2, H2Size * 2}
}

const (
	MouseLeft = iota
	MouseRight
	MouseMiddle
	mouseButtons
)

// IO is the per-frame input and configuration of the context.
type IO struct {
	DisplaySize Vec2
	MousePos    Vec2
	MouseDown   [mouseButtons]bool
	// MouseClicked and MouseReleased report transitions since the last frame.
	MouseClicked  [mouseButtons]bool
	MouseReleased [mouseButtons]bool
	MouseWheel    float32

	FontGlobalScale float32
	// NavEnableKeyboard moves focus with Tab/arrows and activates with
	// Enter/Space.
	NavEnableKeyboard bool

	DeltaTime float32
	Framerate float32

	keysPressed []core.EventKey
}

// KeyPressed reports whether k went down since the last frame.
func (io *IO) KeyPressed(k core.Key) bool {
	for _, e := range io.keysPressed {
		if e.Key == k {
			return true
		}
	}
	return false
}

type pendingButton struct {
	button int
	down   bool
}

type ID uint32

// Context is an immediate-mode UI: widgets are declared every frame between
// NewFrame and Render, and the result is a DrawData list.
type Context struct {
	Style Style
	IO    IO
	Fonts [fontCount]*text.Font

	// Now is the frame clock.
	Now func() time.Time

	inFrame bool
	last    time.Time
	frame   int

	pendingButtons []pendingButton
	pendingKeys    []core.EventKey
	pendingWheel   float32

	hotID, activeID ID
	navID           ID
	navOrder        []ID
	prevNavOrder    []ID
	navActivate     bool

	windows   map[string]*windowState
	current   *window
	next      nextWindow
	fontStack []FontID

	// Formatted widget text lives until the next NewFrame.
	strs *scratch.Buffer
	draw DrawData
}

func NewContext() *Context {
	return &Context{
		Style:   DefaultStyle(),
		IO:      IO{FontGlobalScale: 0.5, NavEnableKeyboard: true},
		Now:     time.Now,
		windows: make(map[string]*windowState),
		strs:    scratch.New(4096),
	}
}

// SetFont installs a font for id. Nil fonts fall back to estimated metrics.
func (c *Context) SetFont(id FontID, f *text.Font) { c.Fonts[id] = f }

// ProcessEvent feeds a native event. It reports whether the event was used.
// Pointer position arrives separately via AddMousePosEvent.
func (c *Context) ProcessEvent(ev core.Event) bool {
	switch e := ev.(type) {
	case core.EventMouseButton:
		b := int(e.Button)
		if b < 0 || b >= mouseButtons {
			return false
		}
		c.pendingButtons = append(c.pendingButtons, pendingButton{button: b, down: e.Down})
		return true
	case core.EventScroll:
		c.pendingWheel += e.Yoff
		return true
	case core.EventKey:
		if e.Down {
			c.pendingKeys = append(c.pendingKeys, e)
		}
		return true
	case core.EventFocus:
		if !e.Focused {
			for b := range c.IO.MouseDown {
				if c.IO.MouseDown[b] {
					c.pendingButtons = append(c.pendingButtons, pendingButton{button: b})
				}
			}
		}
		return true
	}
	return false
}

// AddMousePosEvent sets the pointer position in logical coordinates.
func (c *Context) AddMousePosEvent(x, y float32) {
	c.IO.MousePos = Vec2{x, y}
}

// NewFrame starts a frame for a display of the given logical size.
func (c *Context) NewFrame(display Vec2) {
	now := c.Now()
	if !c.last.IsZero() {
		dt := float32(now.Sub(c.last).Seconds())
		if dt > 0 {
			c.IO.DeltaTime = dt
			if c.IO.Framerate == 0 {
				c.IO.Framerate = 1 / dt
			} else {
				c.IO.Framerate = c.IO.Framerate*0.9 + 0.1/dt
			}
		}
	}
	c.last = now
	c.frame++

	c.IO.DisplaySize = display
	c.IO.MouseClicked = [mouseButtons]bool{}
	c.IO.MouseReleased = [mouseButtons]bool{}
	for _, pb := range c.pendingButtons {
		if pb.down {
			c.IO.MouseClicked[pb.button] = true
		} else {
			c.IO.MouseReleased[pb.button] = true
		}
		c.IO.MouseDown[pb.button] = pb.down
	}
	c.pendingButtons = c.pendingButtons[:0]
	c.IO.MouseWheel = c.pendingWheel
	c.pendingWheel = 0
	c.IO.keysPressed = append(c.IO.keysPressed[:0], c.pendingKeys...)
	c.pendingKeys = c.pendingKeys[:0]

	if !c.IO.MouseDown[MouseLeft] && !c.IO.MouseReleased[MouseLeft] {
		c.activeID = 0
	}
	c.hotID = 0
	c.updateNav()

	c.fontStack = c.fontStack[:0]
	c.strs.Reset()
	c.draw.reset(display)
	c.inFrame = true
}

// Render finalises the frame and returns its draw data. The data stays valid
// until the next NewFrame.
func (c *Context) Render() *DrawData {
	if c.current != nil {
		panic(ErrWindowOpen)
	}
	c.inFrame = false
	// Drop state for windows that were not submitted this frame.
	for name, ws := range c.windows {
		if ws.lastFrame != c.frame {
			delete(c.windows, name)
		}
	}
	return &c.draw
}

// DrawData returns the last finalised frame.
func (c *Context) DrawData() *DrawData { return &c.draw }

// Framerate is the smoothed frames per second.
func (c *Context) Framerate() float32 { return c.IO.Framerate }

// NavID is the widget holding keyboard focus, 0 if none.
func (c *Context) NavID() ID { return c.navID }

// TextArena reports the most bytes formatted text used in one frame and the
// arena capacity.
func (c *Context) TextArena() (peak, capacity int) { return c.strs.Peak(), c.strs.Cap() }

// Shutdown releases the font atlases.
func (c *Context) Shutdown() {
	for i, f := range c.Fonts {
		f.Close()
		c.Fonts[i] = nil
	}
}

func (c *Context) updateNav() {
	c.prevNavOrder, c.navOrder = c.navOrder, c.prevNavOrder[:0]
	c.navActivate = false
	if !c.IO.NavEnableKeyboard {
		return
	}
	for _, e := range c.IO.keysPressed {
		switch {
		case e.Key == core.KeyTab && e.Mods&core.ModShift != 0, e.Key == core.KeyUp:
			c.navMove(-1)
		case e.Key == core.KeyTab, e.Key == core.KeyDown:
			c.navMove(1)
		case e.Key == core.KeyEnter, e.Key == core.KeySpace:
			c.navActivate = c.navID != 0
		}
	}
}

func (c *Context) navMove(dir int) {
	order := c.prevNavOrder
	if len(order) == 0 {
		return
	}
	i := slices.Index(order, c.navID)
	switch {
	case i < 0 && dir > 0:
		i = 0
	case i < 0:
		i = len(order) - 1
	default:
		i = (i + dir + len(order)) % len(order)
	}
	c.navID = order[i]
}

func (c *Context) mustBeInWindow() *window {
	if !c.inFrame {
		panic(ErrFrameNotStarted)
	}
	if c.current == nil {
		panic(ErrNoWindow)
	}
	return c.current
}

func (c *Context) idFor(w *window, label string) ID {
	h := fnv.New32a()
	h.Write([]byte(w.name))
	h.Write([]byte{0})
	h.Write([]byte(label))
	return ID(h.Sum32())
}

// font returns the active font and the scale to draw it at.
func (c *Context) font() (*text.Font, float32) {
	id := FontText
	if n := len(c.fontStack); n > 0 {
		id = c.fontStack[n-1]
	}
	return c.Fonts[id], c.IO.FontGlobalScale
}

// PushFont selects the font for the following widgets until PopFont.
func (c *Context) PushFont(id FontID) { c.fontStack = append(c.fontStack, id) }

func (c *Context) PopFont() {
	if n := len(c.fontStack); n > 0 {
		c.fontStack = c.fontStack[:n-1]
	}
}

// CalcTextSize measures s in the active font at the global font scale.
func (c *Context) CalcTextSize(s string) Vec2 {
	f, scale := c.font()
	if f != nil {
		w, h := text.MeasureText(f, s, scale)
		return Vec2{w, h}
	}
	// Without an atlas, assume a half-em advance at the body raster size.
	size := RasterSizes()[FontText] * scale
	n := 0
	for range s {
		n++
	}
	return Vec2{float32(n) * size * 0.5, size}
}
