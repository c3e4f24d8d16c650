package gfx

import (
	"errors"
	"fmt"
)

var ErrForeignHandle = errors.New("gfx: handle does not belong to this device")

// NullDevice keeps resources in memory and counts draws. Headless runs and
// tests use it in place of a GPU.
type NullDevice struct {
	Draws    int
	Clears   int
	Textures int

	viewport [4]int
}

type nullTexture struct {
	w, h   int
	pixels []byte
}

func (t *nullTexture) Size() (int, int) { return t.w, t.h }

type nullMesh struct {
	vertices []float32
	indices  []uint32
}

func (m *nullMesh) IndexCount() int { return len(m.indices) }

type nullPipeline struct{ desc PipelineDesc }

func NewNullDevice() *NullDevice { return &NullDevice{} }

func (d *NullDevice) CreateTexture(desc TextureDesc) (Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("create texture: invalid size %dx%d", desc.Width, desc.Height)
	}
	t := &nullTexture{w: desc.Width, h: desc.Height}
	if desc.Pixels != nil {
		if len(desc.Pixels) != desc.Width*desc.Height*4 {
			return nil, fmt.Errorf("create texture: %d bytes for %dx%d RGBA", len(desc.Pixels), desc.Width, desc.Height)
		}
		t.pixels = append([]byte(nil), desc.Pixels...)
	}
	d.Textures++
	return t, nil
}

func (d *NullDevice) UpdateTexture(t Texture, pixels []byte) error {
	nt, ok := t.(*nullTexture)
	if !ok {
		return ErrForeignHandle
	}
	if len(pixels) != nt.w*nt.h*4 {
		return fmt.Errorf("update texture: %d bytes for %dx%d RGBA", len(pixels), nt.w, nt.h)
	}
	nt.pixels = append(nt.pixels[:0], pixels...)
	return nil
}

func (d *NullDevice) DestroyTexture(t Texture) {
	if _, ok := t.(*nullTexture); ok {
		d.Textures--
	}
}

func (d *NullDevice) CreateMesh(desc MeshDesc) (Mesh, error) {
	return &nullMesh{vertices: desc.Vertices, indices: desc.Indices}, nil
}

func (d *NullDevice) UpdateMesh(m Mesh, vertices []float32, indices []uint32) error {
	nm, ok := m.(*nullMesh)
	if !ok {
		return ErrForeignHandle
	}
	nm.vertices = append(nm.vertices[:0], vertices...)
	nm.indices = append(nm.indices[:0], indices...)
	return nil
}

func (d *NullDevice) CreatePipeline(desc PipelineDesc) (Pipeline, error) {
	if desc.VertexSource == "" || desc.FragmentSource == "" {
		return nil, errors.New("create pipeline: empty shader source")
	}
	return &nullPipeline{desc: desc}, nil
}

func (d *NullDevice) Draw(DrawCmd)             { d.Draws++ }
func (d *NullDevice) Viewport(x, y, w, h int)  { d.viewport = [4]int{x, y, w, h} }
func (d *NullDevice) Clear(r, g, b, a float32) { d.Clears++ }
func (d *NullDevice) Info() string             { return "null device" }
func (d *NullDevice) Shutdown()                {}
func (d *NullDevice) ViewportRect() [4]int     { return d.viewport }
