// Package gfx is the GPU device abstraction shared by the GL backend, the
// null device used in headless runs, and the 2D renderer.
package gfx

import (
	"fmt"
	"strings"
)

// Opaque handles. Only the device that created a handle may use it.
type (
	Texture  interface{ Size() (w, h int) }
	Mesh     interface{ IndexCount() int }
	Pipeline interface{}
)

type TextureFormat uint8

const (
	TextureRGBA8 TextureFormat = iota
)

type Filter uint8

const (
	FilterNearest Filter = iota
	FilterLinear
)

func (f Filter) String() string {
	if f == FilterLinear {
		return "linear"
	}
	return "nearest"
}

// ParseScaleQuality maps the texture scale quality names used on the command
// line to a filter. "best" has no mipmapped path here and means linear.
func ParseScaleQuality(s string) (Filter, error) {
	switch strings.ToLower(s) {
	case "nearest", "0":
		return FilterNearest, nil
	case "linear", "1", "best", "2":
		return FilterLinear, nil
	}
	return FilterNearest, fmt.Errorf("unknown scale quality %q (want nearest, linear or best)", s)
}

type TextureDesc struct {
	Width, Height int
	Format        TextureFormat
	// Pixels may be nil to allocate without uploading.
	Pixels    []byte
	MinFilter Filter
	MagFilter Filter
}

type AttribType uint8

const (
	AttribFloat32 AttribType = iota
)

type VertexAttrib struct {
	Location uint32
	Size     int32
	Type     AttribType
	Offset   int
}

type VertexLayout struct {
	Stride     int32
	Attributes []VertexAttrib
}

type MeshDesc struct {
	Vertices []float32
	Indices  []uint32
	Layout   VertexLayout
	// Dynamic meshes are rewritten every frame.
	Dynamic bool
}

type PipelineDesc struct {
	VertexSource   string
	FragmentSource string
	Blend          bool
}

// DrawCmd draws Mesh with Pipe. Uniform values may be float32, int32,
// [2]float32, [4]float32 or [16]float32. Samplers bind textures to the named
// sampler uniforms.
type DrawCmd struct {
	Pipe     Pipeline
	Mesh     Mesh
	Uniforms map[string]any
	Samplers map[string]Texture
}

// Device creates GPU resources and executes draws.
type Device interface {
	CreateTexture(desc TextureDesc) (Texture, error)
	UpdateTexture(t Texture, pixels []byte) error
	DestroyTexture(t Texture)

	CreateMesh(desc MeshDesc) (Mesh, error)
	UpdateMesh(m Mesh, vertices []float32, indices []uint32) error

	CreatePipeline(desc PipelineDesc) (Pipeline, error)

	Draw(cmd DrawCmd)
	Viewport(x, y, w, h int)
	Clear(r, g, b, a float32)

	// Info names the device for diagnostics.
	Info() string
	Shutdown()
}
