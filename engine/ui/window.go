package ui

type WindowFlags uint8

const (
	WindowNoTitleBar WindowFlags = 1 << iota
	WindowNoBackground
)

// windowState persists between frames.
type windowState struct {
	pos       Vec2
	size      Vec2
	lastFrame int
	placed    bool
}

// window is the scope of one Begin/End pair.
type window struct {
	name  string
	flags WindowFlags
	state *windowState

	pos     Vec2
	minSize Vec2
	bgCmd   int
	barCmd  int
	cursor  Vec2 // next item position
	lineY   float32
	lastMax Vec2 // bottom-right of the previous item
	maxX    float32
	sameLn  bool
	hovered bool
}

type nextWindow struct {
	hasPos   bool
	pos      Vec2
	pivot    Vec2
	always   bool
	minWidth float32
}

// SetNextWindowPos places the next window so that pivot (0..1 of its size)
// lands on pos. Without always the position is applied only the first time.
func (c *Context) SetNextWindowPos(pos, pivot Vec2, always bool) {
	c.next.hasPos = true
	c.next.pos = pos
	c.next.pivot = pivot
	c.next.always = always
}

// SetNextWindowMinWidth widens the next window's content area to at least w.
func (c *Context) SetNextWindowMinWidth(w float32) { c.next.minWidth = w }

// Begin opens a window. Windows size themselves to their content and cannot
// nest.
func (c *Context) Begin(name string, flags WindowFlags) {
	if !c.inFrame {
		panic(ErrFrameNotStarted)
	}
	if c.current != nil {
		panic(ErrWindowOpen)
	}
	ws, ok := c.windows[name]
	if !ok {
		ws = &windowState{pos: Vec2{60, 60}}
		c.windows[name] = ws
	}
	ws.lastFrame = c.frame

	if c.next.hasPos && (c.next.always || !ws.placed) {
		// The pivot uses the size of the previous frame.
		ws.pos = Vec2{
			X: c.next.pos.X - ws.size.X*c.next.pivot.X,
			Y: c.next.pos.Y - ws.size.Y*c.next.pivot.Y,
		}
		ws.placed = true
	}

	st := &c.Style
	w := &window{
		name:    name,
		flags:   flags,
		state:   ws,
		pos:     ws.pos,
		minSize: st.WindowMinSize,
	}
	w.minSize.X = max(w.minSize.X, c.next.minWidth)
	w.hovered = Rect{ws.pos.X, ws.pos.Y, ws.size.X, ws.size.Y}.Contains(c.IO.MousePos)
	c.next = nextWindow{}

	// Background first; its size is patched in End.
	w.bgCmd = -1
	if flags&WindowNoBackground == 0 {
		w.bgCmd = c.draw.rect(Rect{X: w.pos.X, Y: w.pos.Y}, st.Colors.WindowBg)
	}

	top := w.pos.Y
	w.barCmd = -1
	if flags&WindowNoTitleBar == 0 {
		ts := c.CalcTextSize(name)
		barH := ts.Y + st.FramePadding.Y*2
		w.barCmd = c.draw.rect(Rect{X: w.pos.X, Y: top, H: barH}, st.Colors.TitleBg)
		f, scale := c.font()
		c.draw.text(Vec2{w.pos.X + st.FramePadding.X, top + st.FramePadding.Y}, name, f, scale, st.Colors.Text)
		w.maxX = w.pos.X + st.FramePadding.X*2 + ts.X - st.WindowPadding.X
		top += barH
	}
	w.cursor = Vec2{w.pos.X + st.WindowPadding.X, top + st.WindowPadding.Y}
	w.lastMax = w.cursor
	w.maxX = max(w.maxX, w.cursor.X)
	c.current = w
}

// End closes the window opened by Begin.
func (c *Context) End() {
	w := c.mustBeInWindow()
	st := &c.Style

	contentBottom := w.cursor.Y - st.ItemSpacing.Y
	size := Vec2{
		X: max(w.maxX+st.WindowPadding.X-w.pos.X, w.minSize.X),
		Y: max(contentBottom+st.WindowPadding.Y-w.pos.Y, w.minSize.Y),
	}
	if w.bgCmd >= 0 {
		c.draw.Cmds[w.bgCmd].Rect.W = size.X
		c.draw.Cmds[w.bgCmd].Rect.H = size.Y
	}
	if w.barCmd >= 0 {
		c.draw.Cmds[w.barCmd].Rect.W = size.X
	}
	w.state.size = size
	c.current = nil
}

// itemRect reserves space for an item of the given size at the layout
// cursor and advances the cursor.
func (c *Context) itemRect(size Vec2) Rect {
	w := c.current
	st := &c.Style

	var r Rect
	if w.sameLn {
		r = Rect{X: w.lastMax.X + st.ItemSpacing.X, Y: w.lineY, W: size.X, H: size.Y}
		w.cursor.Y = max(w.cursor.Y, r.Y+size.Y+st.ItemSpacing.Y)
		w.sameLn = false
	} else {
		r = Rect{X: w.pos.X + st.WindowPadding.X, Y: w.cursor.Y, W: size.X, H: size.Y}
		w.lineY = r.Y
		w.cursor.Y = r.Y + size.Y + st.ItemSpacing.Y
	}
	w.lastMax = Vec2{r.X + r.W, r.Y + r.H}
	w.maxX = max(w.maxX, r.X+r.W)
	return r
}

// SameLine places the next item to the right of the previous one.
func (c *Context) SameLine() {
	c.mustBeInWindow().sameLn = true
}

// ContentWidth is the width available to items in the current window, based
// on the size it had last frame.
func (c *Context) ContentWidth() float32 {
	w := c.mustBeInWindow()
	return max(w.state.size.X, w.minSize.X) - c.Style.WindowPadding.X*2
}

// WindowRect returns the rect of a window as of its last End.
func (c *Context) WindowRect(name string) (Rect, bool) {
	ws, ok := c.windows[name]
	if !ok {
		return Rect{}, false
	}
	return Rect{ws.pos.X, ws.pos.Y, ws.size.X, ws.size.Y}, true
}
