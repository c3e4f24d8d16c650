package renderer2d

import (
	"math"
	"strconv"

	"github.com/remotedisplay/shell/engine/colors"
	"github.com/remotedisplay/shell/engine/gfx"
)

// Max textures per batch (common GL limit is 16)
const maxTexSlots = 16

// Vertex: pos2 + color4 + uv2 + texIndex1 => 9 floats
const vStride = 9
const vertsPerQuad = 4
const indsPerQuad = 6

var quadVertexLayout = gfx.VertexLayout{
	Stride: vStride * 4,
	Attributes: []gfx.VertexAttrib{
		{Location: 0, Size: 2, Type: gfx.AttribFloat32, Offset: 0},     // pos
		{Location: 1, Size: 4, Type: gfx.AttribFloat32, Offset: 2 * 4}, // color
		{Location: 2, Size: 2, Type: gfx.AttribFloat32, Offset: 6 * 4}, // uv
		{Location: 3, Size: 1, Type: gfx.AttribFloat32, Offset: 8 * 4}, // texIndex
	},
}

// Statistics counts the renderer's work. TextureCount is the most slots one
// batch used.
type Statistics struct {
	DrawCalls    int
	QuadCount    int
	TextureCount int
}

// TotalVertexCount reports vertices submitted this frame.
func (s Statistics) TotalVertexCount() int { return s.QuadCount * vertsPerQuad }

// Renderer2D batches quads in logical coordinates (origin top-left, Y down)
// and flushes them through a gfx.Device.
type Renderer2D struct {
	dev    gfx.Device
	pipe   gfx.Pipeline
	white  gfx.Texture // 1x1 white (slot 0)
	texArr [maxTexSlots]gfx.Texture
	texCnt int

	verts     []float32
	inds      []uint32
	quadCount int
	maxQuads  int

	mesh     gfx.Mesh
	samplers map[string]gfx.Texture
	uniforms map[string]any
	texNames [maxTexSlots]string

	vp     [16]float32
	stats  Statistics
	inFlow bool
	err    error
}

// New creates the renderer and compiles the shader pipeline.
func New(dev gfx.Device, vertSrc, fragSrc string, maxQuads int) (*Renderer2D, error) {
	if maxQuads <= 0 {
		maxQuads = 10000
	}
	pipe, err := dev.CreatePipeline(gfx.PipelineDesc{
		VertexSource:   vertSrc,
		FragmentSource: fragSrc,
		Blend:          true,
	})
	if err != nil {
		return nil, err
	}

	// build 1x1 white texture
	white, err := dev.CreateTexture(gfx.TextureDesc{
		Width: 1, Height: 1,
		Format: gfx.TextureRGBA8,
		Pixels: []byte{255, 255, 255, 255},
	})
	if err != nil {
		return nil, err
	}

	rd := &Renderer2D{
		dev: dev, pipe: pipe, white: white, maxQuads: maxQuads,
		verts: make([]float32, 0, maxQuads*vertsPerQuad*vStride),
		inds:  make([]uint32, 0, maxQuads*indsPerQuad),
	}

	// Create a reusable mesh large enough for the biggest batch.
	mesh, err := dev.CreateMesh(gfx.MeshDesc{
		Vertices: make([]float32, maxQuads*vertsPerQuad*vStride),
		Indices:  make([]uint32, maxQuads*indsPerQuad),
		Layout:   quadVertexLayout,
		Dynamic:  true,
	})
	if err != nil {
		return nil, err
	}
	rd.mesh = mesh

	rd.samplers = make(map[string]gfx.Texture, maxTexSlots)
	rd.uniforms = make(map[string]any, 2)
	for i := 0; i < maxTexSlots; i++ {
		rd.texNames[i] = "uTex[" + strconv.Itoa(i) + "]"
	}
	rd.resetBatch()
	return rd, nil
}

// Device returns the device the renderer draws with.
func (rd *Renderer2D) Device() gfx.Device { return rd.dev }

// BeginScene starts a batch with the given view-projection matrix. Nested
// scenes are not supported; a second BeginScene flushes the first.
func (rd *Renderer2D) BeginScene(vp [16]float32) {
	if rd.inFlow {
		rd.flush()
	}
	rd.vp = vp
	rd.inFlow = true
	rd.resetBatch()
}

// EndScene flushes the batch. The first device error of the scene, if any,
// is returned.
func (rd *Renderer2D) EndScene() error {
	rd.flush()
	rd.inFlow = false
	err := rd.err
	rd.err = nil
	return err
}

// Stats returns the counters accumulated since the renderer was created.
func (rd *Renderer2D) Stats() Statistics { return rd.stats }

// DrawQuad draws a solid color quad centered at (x, y).
func (rd *Renderer2D) DrawQuad(x, y, w, h float32, color colors.Color, rotationRad float32) {
	rd.ensureQuadCapacity()
	rd.drawQuadInternal(x, y, w, h, color, rotationRad, rd.texSlot(rd.white), 0, 0, 1, 1)
}

// FillRect draws a solid rectangle by its top-left corner.
func (rd *Renderer2D) FillRect(x, y, w, h float32, color colors.Color) {
	rd.DrawQuad(x+w*0.5, y+h*0.5, w, h, color, 0)
}

// DrawTexturedQuad draws tex centered at (x, y) with a tint.
func (rd *Renderer2D) DrawTexturedQuad(x, y, w, h float32, tex gfx.Texture, tint colors.Color, rotationRad float32) {
	rd.ensureQuadCapacity()
	slot := rd.texSlot(tex)
	rd.drawQuadInternal(x, y, w, h, tint, rotationRad, slot, 0, 0, 1, 1)
}

// DrawSubTexQuad draws the region of an atlas described by sub.
func (rd *Renderer2D) DrawSubTexQuad(x, y, w, h float32, sub SubTexture2D, tint colors.Color, rotationRad float32) {
	rd.ensureQuadCapacity()
	slot := rd.texSlot(sub.Texture)
	rd.drawQuadInternal(x, y, w, h, tint, rotationRad, slot, sub.U0, sub.V0, sub.U1, sub.V1)
}

// --- internals ---

func (rd *Renderer2D) texSlot(t gfx.Texture) float32 {
	for i := 0; i < rd.texCnt; i++ {
		if rd.texArr[i] == t {
			return float32(i)
		}
	}
	if rd.texCnt >= maxTexSlots {
		rd.flush()
	}
	rd.texArr[rd.texCnt] = t
	rd.texCnt++
	if rd.texCnt > rd.stats.TextureCount {
		rd.stats.TextureCount = rd.texCnt
	}
	return float32(rd.texCnt - 1)
}

func (rd *Renderer2D) drawQuadInternal(x, y, w, h float32, color colors.Color, rotationRad float32, texIndex float32, u0, v0, u1, v1 float32) {
	halfW := w * 0.5
	halfH := h * 0.5

	// corners (TL, TR, BL, BR) with UVs. Positive Y goes down so top is -halfH.
	corners := [4][4]float32{
		{-halfW, -halfH, u0, v0},
		{halfW, -halfH, u1, v0},
		{-halfW, halfH, u0, v1},
		{halfW, halfH, u1, v1},
	}
	c, s := float32(1), float32(0)
	if rotationRad != 0 {
		c, s = float32(math.Cos(float64(rotationRad))), float32(math.Sin(float64(rotationRad)))
	}

	startVertex := uint32(len(rd.verts) / vStride)

	for _, p := range corners {
		rx := p[0]*c - p[1]*s + x
		ry := p[0]*s + p[1]*c + y
		rd.verts = append(rd.verts,
			rx, ry,
			color[0], color[1], color[2], color[3],
			p[2], p[3],
			texIndex,
		)
	}
	rd.inds = append(rd.inds,
		startVertex+0, startVertex+2, startVertex+1,
		startVertex+1, startVertex+2, startVertex+3,
	)
	rd.quadCount++
	rd.stats.QuadCount++
}

func (rd *Renderer2D) flush() {
	if rd.quadCount == 0 {
		return
	}

	if err := rd.dev.UpdateMesh(rd.mesh, rd.verts, rd.inds); err != nil {
		if rd.err == nil {
			rd.err = err
		}
		rd.resetBatch()
		return
	}

	clear(rd.samplers)
	for i := 0; i < rd.texCnt; i++ {
		rd.samplers[rd.texNames[i]] = rd.texArr[i]
	}
	clear(rd.uniforms)
	rd.uniforms["uVP"] = rd.vp

	rd.dev.Draw(gfx.DrawCmd{
		Pipe:     rd.pipe,
		Mesh:     rd.mesh,
		Uniforms: rd.uniforms,
		Samplers: rd.samplers,
	})
	rd.stats.DrawCalls++

	rd.resetBatch()
}

func (rd *Renderer2D) resetBatch() {
	rd.verts = rd.verts[:0]
	rd.inds = rd.inds[:0]
	rd.quadCount = 0
	for i := range rd.texArr {
		rd.texArr[i] = nil
	}
	rd.texArr[0] = rd.white
	rd.texCnt = 1
}

func (rd *Renderer2D) ensureQuadCapacity() {
	if rd.quadCount >= rd.maxQuads {
		rd.flush()
	}
}
