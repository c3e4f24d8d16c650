package ui

import (
	"strings"

	"github.com/remotedisplay/shell/engine/colors"
)

// splitLabel separates "Visible##id" into the shown text and the id key.
func splitLabel(label string) (shown, key string) {
	if i := strings.Index(label, "##"); i >= 0 {
		return label[:i], label
	}
	return label, label
}

func (c *Context) Text(s string) { c.TextColored(c.Style.Colors.Text, s) }

func (c *Context) Textf(format string, args ...any) {
	c.mustBeInWindow()
	c.Text(c.strs.Sprintf(format, args...))
}

func (c *Context) TextDisabled(s string) { c.TextColored(c.Style.Colors.TextDisabled, s) }

func (c *Context) TextColored(col colors.Color, s string) {
	c.mustBeInWindow()
	r := c.itemRect(c.CalcTextSize(s))
	f, scale := c.font()
	c.draw.text(Vec2{r.X, r.Y}, s, f, scale, col)
}

// Spacing adds vertical space of one item gap.
func (c *Context) Spacing() {
	c.mustBeInWindow()
	c.itemRect(Vec2{0, c.Style.ItemSpacing.Y})
}

// Separator draws a horizontal rule across the window.
func (c *Context) Separator() {
	w := c.mustBeInWindow()
	st := &c.Style
	r := c.itemRect(Vec2{0, st.SeparatorSize})
	width := max(w.state.size.X, w.maxX-w.pos.X+st.WindowPadding.X)
	c.draw.rect(Rect{X: w.pos.X, Y: r.Y, W: width, H: st.SeparatorSize}, st.Colors.Separator)
}

// behavior runs the shared press logic for a clickable item and reports
// whether it was activated this frame.
func (c *Context) behavior(id ID, r Rect) (pressed, hovered, held bool) {
	w := c.current
	c.navOrder = append(c.navOrder, id)

	hovered = w.hovered && r.Contains(c.IO.MousePos) && (c.activeID == 0 || c.activeID == id)
	if hovered {
		c.hotID = id
		if c.IO.MouseClicked[MouseLeft] {
			c.activeID = id
			c.navID = id
		}
	}
	if c.activeID == id {
		held = c.IO.MouseDown[MouseLeft]
		if c.IO.MouseReleased[MouseLeft] {
			pressed = hovered
			c.activeID = 0
		}
	}
	if c.navActivate && c.navID == id {
		pressed = true
	}
	return pressed, hovered, held
}

func (c *Context) navOutline(id ID, r Rect) {
	if c.navID != id || !c.IO.NavEnableKeyboard {
		return
	}
	t := c.Style.NavOutline
	c.draw.outline(Rect{r.X - t, r.Y - t, r.W + 2*t, r.H + 2*t}, t, c.Style.Colors.NavHighlight)
}

// Button draws a framed label and reports whether it was clicked or
// activated from the keyboard.
func (c *Context) Button(label string) bool {
	w := c.mustBeInWindow()
	st := &c.Style
	shown, key := splitLabel(label)
	id := c.idFor(w, key)

	ts := c.CalcTextSize(shown)
	r := c.itemRect(Vec2{ts.X + st.FramePadding.X*2, ts.Y + st.FramePadding.Y*2})
	pressed, hovered, held := c.behavior(id, r)

	bg := st.Colors.Button
	switch {
	case held && hovered:
		bg = st.Colors.ButtonActive
	case hovered:
		bg = st.Colors.ButtonHovered
	}
	c.draw.rect(r, bg)
	f, scale := c.font()
	c.draw.text(Vec2{r.X + st.FramePadding.X, r.Y + st.FramePadding.Y}, shown, f, scale, st.Colors.Text)
	c.navOutline(id, r)
	return pressed
}

// Checkbox toggles *v when clicked and reports whether it changed.
func (c *Context) Checkbox(label string, v *bool) bool {
	w := c.mustBeInWindow()
	st := &c.Style
	shown, key := splitLabel(label)
	id := c.idFor(w, key)

	ts := c.CalcTextSize(shown)
	box := ts.Y + st.FramePadding.Y*2
	r := c.itemRect(Vec2{box + st.ItemInnerSpacing.X + ts.X, box})
	pressed, hovered, _ := c.behavior(id, r)
	if pressed {
		*v = !*v
	}

	bg := st.Colors.FrameBg
	if hovered {
		bg = st.Colors.ButtonHovered
	}
	c.draw.rect(Rect{r.X, r.Y, box, box}, bg)
	if *v {
		pad := max(1, box/5)
		c.draw.rect(Rect{r.X + pad, r.Y + pad, box - 2*pad, box - 2*pad}, st.Colors.CheckMark)
	}
	f, scale := c.font()
	c.draw.text(Vec2{r.X + box + st.ItemInnerSpacing.X, r.Y + st.FramePadding.Y}, shown, f, scale, st.Colors.Text)
	c.navOutline(id, r)
	return pressed
}
