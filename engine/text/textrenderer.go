package text

import (
	"github.com/remotedisplay/shell/engine/colors"
	"github.com/remotedisplay/shell/engine/gfx/renderer2d"
)

// DrawText draws s with its top-left corner at (x, y). scale is relative to
// the size the atlas was rasterised at. Positive Y goes downward.
func DrawText(r2d *renderer2d.Renderer2D, f *Font, x, y, scale float32, s string, color colors.Color) {
	if f == nil || f.Texture == nil {
		return
	}
	penX := x
	baseY := y + f.Ascent*scale
	lineH := f.LineHeight() * scale
	var prev rune = -1

	for _, r := range s {
		if r == '\n' {
			penX = x
			baseY += lineH
			prev = -1
			continue
		}

		g, ok := f.Glyphs[r]
		if !ok {
			if sp, ok2 := f.Glyphs[' ']; ok2 {
				penX += sp.Advance * scale
			}
			prev = r
			continue
		}
		if prev >= 0 {
			penX += f.Kern(prev, r) * scale
		}

		if g.Sub.Texture != nil {
			w := float32(g.W) * scale
			h := float32(g.H) * scale
			left := penX + g.BearingX*scale
			top := baseY - g.BearingY*scale
			r2d.DrawSubTexQuad(left+w*0.5, top+h*0.5, w, h, g.Sub, color, 0)
		}

		penX += g.Advance * scale
		prev = r
	}
}

// MeasureText returns the size of s drawn at scale.
func MeasureText(f *Font, s string, scale float32) (width, height float32) {
	if f == nil {
		return 0, 0
	}
	var lineW float32
	var prev rune = -1
	lineH := f.LineHeight()
	height = lineH

	for _, r := range s {
		if r == '\n' {
			width = max(width, lineW)
			lineW = 0
			height += lineH
			prev = -1
			continue
		}

		g, ok := f.Glyphs[r]
		if !ok {
			if sp, ok2 := f.Glyphs[' ']; ok2 {
				lineW += sp.Advance
			}
			prev = r
			continue
		}
		if prev >= 0 {
			lineW += f.Kern(prev, r)
		}
		lineW += g.Advance
		prev = r
	}

	width = max(width, lineW)
	return width * scale, height * scale
}
