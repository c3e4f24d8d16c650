package glbackend

import (
	"fmt"
	"sort"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/remotedisplay/shell/engine/gfx"
)

// Device is the OpenGL 3.3 core implementation of gfx.Device. It must be
// created and used on the thread that owns the current GL context.
type Device struct {
	info string
}

type texture struct {
	id   uint32
	w, h int
}

func (t *texture) Size() (int, int) { return t.w, t.h }

type mesh struct {
	vao, vbo, ebo uint32
	indexCount    int
	vboCap        int
	eboCap        int
}

func (m *mesh) IndexCount() int { return m.indexCount }

type pipeline struct {
	program  uint32
	blend    bool
	uniforms map[string]int32
}

// NewDevice loads the GL function pointers for the current context.
func NewDevice() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	d := &Device{
		info: fmt.Sprintf("OpenGL %s (%s, %s)",
			gl.GoStr(gl.GetString(gl.VERSION)),
			gl.GoStr(gl.GetString(gl.RENDERER)),
			gl.GoStr(gl.GetString(gl.VENDOR))),
	}
	gl.Disable(gl.DEPTH_TEST)
	return d, nil
}

func (d *Device) Info() string { return d.info }

func (d *Device) Shutdown() {}

func (d *Device) Viewport(x, y, w, h int) {
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))
}

func (d *Device) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func glFilter(f gfx.Filter) int32 {
	if f == gfx.FilterLinear {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func (d *Device) CreateTexture(desc gfx.TextureDesc) (gfx.Texture, error) {
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, fmt.Errorf("create texture: invalid size %dx%d", desc.Width, desc.Height)
	}
	if desc.Pixels != nil && len(desc.Pixels) != desc.Width*desc.Height*4 {
		return nil, fmt.Errorf("create texture: %d bytes for %dx%d RGBA", len(desc.Pixels), desc.Width, desc.Height)
	}
	t := &texture{w: desc.Width, h: desc.Height}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(desc.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(desc.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	var ptr unsafe.Pointer
	if len(desc.Pixels) > 0 {
		ptr = gl.Ptr(desc.Pixels)
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(desc.Width), int32(desc.Height), 0, gl.RGBA, gl.UNSIGNED_BYTE, ptr)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

func (d *Device) UpdateTexture(t gfx.Texture, pixels []byte) error {
	tex, ok := t.(*texture)
	if !ok {
		return gfx.ErrForeignHandle
	}
	if len(pixels) != tex.w*tex.h*4 {
		return fmt.Errorf("update texture: %d bytes for %dx%d RGBA", len(pixels), tex.w, tex.h)
	}
	gl.BindTexture(gl.TEXTURE_2D, tex.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(tex.w), int32(tex.h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

func (d *Device) DestroyTexture(t gfx.Texture) {
	if tex, ok := t.(*texture); ok && tex.id != 0 {
		gl.DeleteTextures(1, &tex.id)
		tex.id = 0
	}
}

func (d *Device) CreateMesh(desc gfx.MeshDesc) (gfx.Mesh, error) {
	if len(desc.Vertices) == 0 || len(desc.Indices) == 0 {
		return nil, fmt.Errorf("create mesh: empty buffers")
	}
	usage := uint32(gl.STATIC_DRAW)
	if desc.Dynamic {
		usage = gl.DYNAMIC_DRAW
	}
	m := &mesh{indexCount: len(desc.Indices), vboCap: len(desc.Vertices), eboCap: len(desc.Indices)}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(desc.Vertices)*4, gl.Ptr(desc.Vertices), usage)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(desc.Indices)*4, gl.Ptr(desc.Indices), usage)

	for _, a := range desc.Layout.Attributes {
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointerWithOffset(a.Location, a.Size, gl.FLOAT, false, desc.Layout.Stride, uintptr(a.Offset))
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m, nil
}

// UpdateMesh rewrites the leading part of the buffers. The mesh never grows
// past the size it was created with.
func (d *Device) UpdateMesh(m gfx.Mesh, vertices []float32, indices []uint32) error {
	gm, ok := m.(*mesh)
	if !ok {
		return gfx.ErrForeignHandle
	}
	if len(vertices) > gm.vboCap || len(indices) > gm.eboCap {
		return fmt.Errorf("update mesh: %d vertices/%d indices exceed capacity %d/%d",
			len(vertices), len(indices), gm.vboCap, gm.eboCap)
	}
	gl.BindVertexArray(gm.vao)
	if len(vertices) > 0 {
		gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbo)
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	}
	if len(indices) > 0 {
		gl.BufferSubData(gl.ELEMENT_ARRAY_BUFFER, 0, len(indices)*4, gl.Ptr(indices))
	}
	gl.BindVertexArray(0)
	gm.indexCount = len(indices)
	return nil
}

func (d *Device) CreatePipeline(desc gfx.PipelineDesc) (gfx.Pipeline, error) {
	prog, err := makeProgram(desc.VertexSource, desc.FragmentSource)
	if err != nil {
		return nil, err
	}
	return &pipeline{program: prog, blend: desc.Blend, uniforms: make(map[string]int32)}, nil
}

func (p *pipeline) location(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.program, gl.Str(name+"\x00"))
	p.uniforms[name] = loc
	return loc
}

func (d *Device) Draw(cmd gfx.DrawCmd) {
	p, ok := cmd.Pipe.(*pipeline)
	if !ok {
		return
	}
	m, ok := cmd.Mesh.(*mesh)
	if !ok || m.indexCount == 0 {
		return
	}

	if p.blend {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}
	gl.UseProgram(p.program)

	for name, v := range cmd.Uniforms {
		loc := p.location(name)
		if loc < 0 {
			continue
		}
		switch u := v.(type) {
		case float32:
			gl.Uniform1f(loc, u)
		case int32:
			gl.Uniform1i(loc, u)
		case [2]float32:
			gl.Uniform2f(loc, u[0], u[1])
		case [4]float32:
			gl.Uniform4f(loc, u[0], u[1], u[2], u[3])
		case [16]float32:
			gl.UniformMatrix4fv(loc, 1, false, &u[0])
		}
	}

	// Stable unit assignment keeps uTex[i] on unit i.
	names := make([]string, 0, len(cmd.Samplers))
	for name := range cmd.Samplers {
		names = append(names, name)
	}
	sort.Strings(names)
	for unit, name := range names {
		tex, ok := cmd.Samplers[name].(*texture)
		if !ok {
			continue
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, tex.id)
		if loc := p.location(name); loc >= 0 {
			gl.Uniform1i(loc, int32(unit))
		}
	}

	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(m.indexCount), gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// --- Shader utilities ---

func makeShader(src string, shaderType uint32) (uint32, error) {
	if !strings.HasSuffix(src, "\x00") {
		src += "\x00"
	}
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("shader compile error: %s", log)
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("program link error: %s", log)
	}
	return prog, nil
}
