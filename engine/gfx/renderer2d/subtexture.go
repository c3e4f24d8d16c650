package renderer2d

import "github.com/remotedisplay/shell/engine/gfx"

// SubTexture2D describes a UV sub-rect of a full texture.
type SubTexture2D struct {
	Texture gfx.Texture
	U0, V0  float32 // top-left
	U1, V1  float32 // bottom-right
}

// FromPixels builds a subtexture from pixel coordinates within an atlas.
// Row 0 of the uploaded pixels is v = 0.
func FromPixels(tex gfx.Texture, x, y, w, h int) SubTexture2D {
	atlasW, atlasH := tex.Size()
	return SubTexture2D{
		Texture: tex,
		U0:      float32(x) / float32(atlasW),
		V0:      float32(y) / float32(atlasH),
		U1:      float32(x+w) / float32(atlasW),
		V1:      float32(y+h) / float32(atlasH),
	}
}
