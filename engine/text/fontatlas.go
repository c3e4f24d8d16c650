package text

import (
	"fmt"
	"image"

	"github.com/remotedisplay/shell/engine/gfx"
	"github.com/remotedisplay/shell/engine/gfx/renderer2d"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type Glyph struct {
	Rune     rune
	Advance  float32 // pixels
	BearingX float32 // left bearing in pixels
	BearingY float32 // top bearing in pixels (distance from baseline to glyph top)
	W, H     int     // glyph bitmap size
	X, Y     int     // bitmap position in the atlas
	// Sub is the glyph's atlas region; its Texture is nil for glyphs that
	// have no bitmap.
	Sub renderer2d.SubTexture2D
}

// Font is a rasterised face: metrics and glyph UVs at SizePx, plus the atlas
// texture. Draw and measure calls take a scale relative to SizePx.
type Font struct {
	Name                     string
	SizePx                   float32
	Ascent, Descent, LineGap float32
	Glyphs                   map[rune]Glyph
	Texture                  gfx.Texture
	AtlasW, AtlasH           int

	kerning map[rune]map[rune]float32
	dev     gfx.Device
}

// Kern returns the pair adjustment in pixels at SizePx.
func (f *Font) Kern(a, b rune) float32 {
	if row, ok := f.kerning[a]; ok {
		return row[b]
	}
	return 0
}

// LineHeight at SizePx.
func (f *Font) LineHeight() float32 { return f.Ascent - f.Descent + f.LineGap }

// Close releases the atlas texture.
func (f *Font) Close() {
	if f != nil && f.Texture != nil && f.dev != nil {
		f.dev.DestroyTexture(f.Texture)
		f.Texture = nil
	}
}

const maxAtlasSize = 4096

// LoadFont builds a white glyph atlas (alpha coverage) for the Latin-1 range
// of ttf at sizePx and uploads it through dev.
func LoadFont(dev gfx.Device, name string, ttf []byte, sizePx float32) (*Font, error) {
	ft, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", name, err)
	}

	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face %s: %w", name, err)
	}
	defer face.Close()

	// Metrics in pixels
	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(-m.Descent.Round())
	lineGap := float32(m.Height.Round()) - ascent + descent

	type meas struct {
		r      rune
		w, h   int
		adv    float32
		bx, by float32
	}
	var measure []meas
	for r := rune(32); r <= 255; r++ {
		br, adv, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		measure = append(measure, meas{
			r: r,
			w: br.Max.X.Ceil() - br.Min.X.Floor(), h: br.Max.Y.Ceil() - br.Min.Y.Floor(),
			adv: float32(adv.Round()),
			bx:  float32(br.Min.X.Floor()),
			by:  float32(-br.Min.Y.Floor()), // distance from baseline to top
		})
	}

	// Shelf packer: start at 256^2 and grow until everything fits.
	const padding = 2
	atlasSize := 256
	var pos map[rune]image.Point
	for {
		x, y, rowH := padding, padding, 0
		fits := true
		pos = make(map[rune]image.Point, len(measure))

		for _, g := range measure {
			if g.w == 0 || g.h == 0 {
				continue
			}
			if g.w+padding*2 > atlasSize || g.h+padding*2 > atlasSize {
				fits = false
				break
			}
			if x+g.w+padding > atlasSize {
				x = padding
				y += rowH + padding
				rowH = 0
			}
			if y+g.h+padding > atlasSize {
				fits = false
				break
			}
			pos[g.r] = image.Pt(x, y)
			x += g.w + padding
			rowH = max(rowH, g.h)
		}

		if fits {
			break
		}
		atlasSize *= 2
		if atlasSize > maxAtlasSize {
			return nil, fmt.Errorf("font atlas for %s at %.0fpx too large (>%d)", name, sizePx, maxAtlasSize)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, atlasSize, atlasSize))
	drawer := &font.Drawer{Dst: dst, Src: image.White, Face: face}

	glyphs := make(map[rune]Glyph, len(measure))
	for _, g := range measure {
		glyph := Glyph{
			Rune: g.r, Advance: g.adv,
			BearingX: g.bx, BearingY: g.by,
			W: g.w, H: g.h,
		}
		if p, ok := pos[g.r]; ok {
			// The drawer's dot sits on the baseline.
			drawer.Dot = fixed.P(p.X-int(g.bx), p.Y+int(g.by))
			drawer.DrawString(string(g.r))
			glyph.X, glyph.Y = p.X, p.Y
		}
		glyphs[g.r] = glyph
	}
	whiten(dst)

	kerning := make(map[rune]map[rune]float32)
	for _, a := range measure {
		for _, b := range measure {
			if dx := face.Kern(a.r, b.r); dx != 0 {
				if kerning[a.r] == nil {
					kerning[a.r] = make(map[rune]float32)
				}
				kerning[a.r][b.r] = float32(dx.Round())
			}
		}
	}

	tex, err := dev.CreateTexture(gfx.TextureDesc{
		Width: atlasSize, Height: atlasSize,
		Format: gfx.TextureRGBA8,
		Pixels: dst.Pix,
		// Glyphs are drawn below their raster size.
		MinFilter: gfx.FilterLinear,
		MagFilter: gfx.FilterLinear,
	})
	if err != nil {
		return nil, fmt.Errorf("upload atlas %s: %w", name, err)
	}
	for r := range pos {
		g := glyphs[r]
		g.Sub = renderer2d.FromPixels(tex, g.X, g.Y, g.W, g.H)
		glyphs[r] = g
	}

	return &Font{
		Name:   name,
		SizePx: sizePx,
		Ascent: ascent, Descent: descent, LineGap: lineGap,
		Glyphs:  glyphs,
		Texture: tex,
		AtlasW:  atlasSize, AtlasH: atlasSize,
		kerning: kerning,
		dev:     dev,
	}, nil
}

// whiten turns premultiplied coverage into white with straight alpha.
func whiten(img *image.RGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = 255
		img.Pix[i+1] = 255
		img.Pix[i+2] = 255
	}
}
