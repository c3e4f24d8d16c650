package ui

import "github.com/remotedisplay/shell/engine/colors"

type Vec2 struct{ X, Y float32 }

type Rect struct{ X, Y, W, H float32 }

func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Palette holds the style colors. Colors never scale.
type Palette struct {
	Text          colors.Color
	TextDisabled  colors.Color
	WindowBg      colors.Color
	TitleBg       colors.Color
	Button        colors.Color
	ButtonHovered colors.Color
	ButtonActive  colors.Color
	FrameBg       colors.Color
	CheckMark     colors.Color
	Separator     colors.Color
	NavHighlight  colors.Color
}

// Style holds the size-dependent metrics, in logical units at UI scale 1.
type Style struct {
	WindowPadding    Vec2
	FramePadding     Vec2
	ItemSpacing      Vec2
	ItemInnerSpacing Vec2
	WindowMinSize    Vec2
	SeparatorSize    float32
	NavOutline       float32

	Colors Palette
}

func DefaultStyle() Style {
	return Style{
		WindowPadding:    Vec2{8, 8},
		FramePadding:     Vec2{4, 3},
		ItemSpacing:      Vec2{8, 4},
		ItemInnerSpacing: Vec2{4, 4},
		WindowMinSize:    Vec2{32, 32},
		SeparatorSize:    1,
		NavOutline:       2,
		Colors: Palette{
			Text:          colors.White,
			TextDisabled:  colors.TextDim,
			WindowBg:      colors.WindowBg,
			TitleBg:       colors.TitleBg,
			Button:        colors.AccentSoft,
			ButtonHovered: colors.Accent,
			ButtonActive:  colors.Accent.Scale(0.8),
			FrameBg:       colors.FrameBg,
			CheckMark:     colors.Accent,
			Separator:     colors.Border,
			NavHighlight:  colors.Accent,
		},
	}
}

// ScaleAllSizes multiplies every size metric by f. Applying it twice
// compounds, so callers restore a baseline first.
func (s *Style) ScaleAllSizes(f float32) {
	scale := func(v *Vec2) {
		v.X *= f
		v.Y *= f
	}
	scale(&s.WindowPadding)
	scale(&s.FramePadding)
	scale(&s.ItemSpacing)
	scale(&s.ItemInnerSpacing)
	scale(&s.WindowMinSize)
	s.SeparatorSize = max(1, s.SeparatorSize*f)
	s.NavOutline = max(1, s.NavOutline*f)
}
