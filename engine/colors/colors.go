package colors

type Color [4]float32

var (
	White = Color{1, 1, 1, 1}

	// UI palette, dark theme.
	WindowBg   = Color{0.06, 0.06, 0.06, 0.94}
	TitleBg    = Color{0.16, 0.29, 0.48, 1}
	FrameBg    = Color{0.16, 0.29, 0.48, 0.54}
	Accent     = Color{0.26, 0.59, 0.98, 1}
	AccentSoft = Color{0.26, 0.59, 0.98, 0.40}
	TextDim    = Color{0.50, 0.50, 0.50, 1}
	Border     = Color{0.43, 0.43, 0.50, 0.50}
)

// Scale multiplies the RGB channels by f, clamped to [0, 1].
func (c Color) Scale(f float32) Color {
	for i := 0; i < 3; i++ {
		c[i] = min(max(c[i]*f, 0), 1)
	}
	return c
}
