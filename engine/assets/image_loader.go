package assets

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
)

// LoadPNG returns width, height, and tightly packed RGBA8 pixels (row-major,
// top-left origin).
func LoadPNG(path string) (w, h int, rgba []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("decode png %q: %w", path, err)
	}
	w, h = img.Bounds().Dx(), img.Bounds().Dy()
	return w, h, PackRGBA(img), nil
}

// PackRGBA converts img to RGBA8 rows with stride == 4*width.
func PackRGBA(img image.Image) []byte {
	rgbaImg := imageToRGBA(img)
	w, h := rgbaImg.Bounds().Dx(), rgbaImg.Bounds().Dy()
	if rgbaImg.Stride == w*4 && len(rgbaImg.Pix) == w*h*4 {
		return rgbaImg.Pix
	}

	out := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		row := rgbaImg.Pix[y*rgbaImg.Stride : y*rgbaImg.Stride+w*4]
		copy(out[y*w*4:(y+1)*w*4], row)
	}
	return out
}

func imageToRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Rect.Min == (image.Point{}) {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
