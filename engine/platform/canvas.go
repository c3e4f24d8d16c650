package platform

import (
	"errors"
	"fmt"

	"github.com/remotedisplay/shell/engine/core"
	"github.com/remotedisplay/shell/engine/gfx"
	"github.com/remotedisplay/shell/engine/gfx/renderer2d"
)

var (
	ErrInvalidScale = errors.New("platform: invalid render scale")
	// ErrNoFullscreen is returned when no display can host a fullscreen window.
	ErrNoFullscreen = errors.New("platform: fullscreen unavailable")
)

// Canvas is the render target state shared by the surfaces: the device, the
// viewport and the logical projection.
type Canvas struct {
	Dev  gfx.Device
	proj [16]float32
}

// SetPixelScale maps logical units to pixels: the viewport covers the
// drawable and the projection spans pixels/scale logical units.
func (c *Canvas) SetPixelScale(pixels core.Size, sx, sy float32) error {
	if sx <= 0 || sy <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrInvalidScale, sx, sy)
	}
	c.Dev.Viewport(0, 0, pixels.W, pixels.H)
	c.proj = renderer2d.ScreenProjection(float32(pixels.W)/sx, float32(pixels.H)/sy)
	return nil
}

// Projection maps logical coordinates to clip space for the current scale.
func (c *Canvas) Projection() [16]float32 { return c.proj }

// ClearBlack clears the whole target to opaque black.
func (c *Canvas) ClearBlack() { c.Dev.Clear(0, 0, 0, 1) }
