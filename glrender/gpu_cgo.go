//go:build !tinygo && cgo

package glrender

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/glgl/v4.1-core/glgl"
	"github.com/soypat/stilllife"
	"github.com/soypat/stilllife/glbuild"
	"github.com/soypat/stilllife/scene"
)

// Mesh is a [stilllife.Mesh] uploaded to the GPU: a vertex array object with an
// interleaved vertex buffer and an optional index buffer.
type Mesh struct {
	vao       uint32
	vbos      [2]uint32
	nVertices int
	nIndices  int
	ranges    []stilllife.DrawRange
}

// NewMesh uploads m. The vertex layout is position, normal and UV at attribute
// locations 0, 1 and 2.
func NewMesh(m *stilllife.Mesh) (*Mesh, error) {
	if m == nil {
		return nil, errors.New("nil mesh")
	}
	err := m.Validate()
	if err != nil {
		return nil, err
	}
	gm := &Mesh{
		nVertices: m.NumVertices(),
		nIndices:  m.NumIndices(),
		ranges:    append([]stilllife.DrawRange(nil), m.Ranges...),
	}
	gl.GenVertexArrays(1, &gm.vao)
	gl.BindVertexArray(gm.vao)
	nbuf := int32(1)
	if gm.nIndices > 0 {
		nbuf = 2
	}
	gl.GenBuffers(nbuf, &gm.vbos[0])

	data := m.Interleaved()
	gl.BindBuffer(gl.ARRAY_BUFFER, gm.vbos[0])
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(data), gl.Ptr(data), gl.STATIC_DRAW)
	if gm.nIndices > 0 {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gm.vbos[1])
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 4*len(m.Indices), gl.Ptr(m.Indices), gl.STATIC_DRAW)
	}

	const stride = stilllife.VertexStride
	gl.VertexAttribPointer(glbuild.AttribPosition, stilllife.FloatsPerPosition, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(glbuild.AttribPosition)
	gl.VertexAttribPointer(glbuild.AttribNormal, stilllife.FloatsPerNormal, gl.FLOAT, false, stride, gl.PtrOffset(stilllife.NormalOffset))
	gl.EnableVertexAttribArray(glbuild.AttribNormal)
	gl.VertexAttribPointer(glbuild.AttribUV, stilllife.FloatsPerUV, gl.FLOAT, false, stride, gl.PtrOffset(stilllife.UVOffset))
	gl.EnableVertexAttribArray(glbuild.AttribUV)
	gl.BindVertexArray(0)
	err = glgl.Err()
	if err != nil {
		gm.Delete()
		return nil, fmt.Errorf("uploading %s: %w", m.Name, err)
	}
	return gm, nil
}

// Ranges returns the draw calls of the mesh.
func (gm *Mesh) Ranges() []stilllife.DrawRange { return gm.ranges }

// Bind binds the mesh's vertex array object.
func (gm *Mesh) Bind() { gl.BindVertexArray(gm.vao) }

// Draw issues the draw call of r. The mesh must be bound.
func (gm *Mesh) Draw(r stilllife.DrawRange) {
	mode := primitiveMode(r.Primitive)
	if r.Indexed {
		gl.DrawElements(mode, int32(r.Count), gl.UNSIGNED_INT, gl.PtrOffset(4*r.First))
		return
	}
	gl.DrawArrays(mode, int32(r.First), int32(r.Count))
}

// Delete frees the GPU buffers of the mesh.
func (gm *Mesh) Delete() {
	if gm.vbos[0] != 0 {
		gl.DeleteBuffers(1, &gm.vbos[0])
	}
	if gm.vbos[1] != 0 {
		gl.DeleteBuffers(1, &gm.vbos[1])
	}
	if gm.vao != 0 {
		gl.DeleteVertexArrays(1, &gm.vao)
	}
	*gm = Mesh{}
}

func primitiveMode(p stilllife.Primitive) uint32 {
	switch p {
	case stilllife.TriangleFan:
		return gl.TRIANGLE_FAN
	case stilllife.TriangleStrip:
		return gl.TRIANGLE_STRIP
	}
	return gl.TRIANGLES
}

// Texture is a 2D RGBA texture with mipmaps that repeats outside [0,1].
type Texture struct {
	id     uint32
	width  int
	height int
}

// NewTexture uploads img. Rows are uploaded in order, see [FlipVertical].
func NewTexture(img *image.NRGBA) (*Texture, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return nil, errors.New("empty texture image")
	} else if img.Stride != 4*w {
		return nil, errors.New("texture image must not be a subimage")
	}
	tex := &Texture{width: w, height: h}
	gl.GenTextures(1, &tex.id)
	gl.BindTexture(gl.TEXTURE_2D, tex.id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	err := glgl.Err()
	if err != nil {
		tex.Delete()
		return nil, err
	}
	return tex, nil
}

// LoadTexture loads an image file and uploads it as a texture.
func LoadTexture(filename string) (*Texture, error) {
	img, err := LoadImage(filename)
	if err != nil {
		return nil, err
	}
	return NewTexture(img)
}

// Bind binds the texture to the texture unit.
func (tex *Texture) Bind(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, tex.id)
}

// Size returns the dimensions of the texture in pixels.
func (tex *Texture) Size() (width, height int) { return tex.width, tex.height }

// Delete frees the texture.
func (tex *Texture) Delete() {
	if tex.id != 0 {
		gl.DeleteTextures(1, &tex.id)
	}
	tex.id = 0
}

// Program is the linked still life shader program.
type Program struct {
	prog     glgl.Program
	uniforms map[string]int32
}

// NewProgram compiles and links the program written by p and binds its
// samplers to the base and overlay texture units.
func NewProgram(p *glbuild.Programmer) (*Program, error) {
	vertex, fragment, err := p.ShaderSources()
	if err != nil {
		return nil, err
	}
	prog, err := glgl.CompileProgram(glgl.ShaderSource{Vertex: vertex, Fragment: fragment})
	if err != nil {
		return nil, err
	}
	program := &Program{prog: prog, uniforms: make(map[string]int32)}
	for _, name := range glbuild.Uniforms() {
		loc, err := prog.UniformLocation(name + "\x00")
		if err != nil {
			// Uniforms unused by the shader are optimized out by the driver.
			// Location -1 is silently ignored by glUniform.
			loc = -1
		}
		program.uniforms[name] = loc
	}
	prog.Bind()
	gl.Uniform1i(program.uniforms[glbuild.UniformTexture], glbuild.BaseTextureUnit)
	gl.Uniform1i(program.uniforms[glbuild.UniformTextureExtra], glbuild.OverlayTextureUnit)
	prog.Unbind()
	err = glgl.Err()
	if err != nil {
		prog.Delete()
		return nil, err
	}
	return program, nil
}

// Location returns the location of a uniform or -1 if it is not active.
func (p *Program) Location(name string) int32 {
	loc, ok := p.uniforms[name]
	if !ok {
		return -1
	}
	return loc
}

// Bind makes the program current.
func (p *Program) Bind() { p.prog.Bind() }

// Delete frees the program.
func (p *Program) Delete() { p.prog.Delete() }

// Device draws the still life with OpenGL. It implements [scene.Device].
type Device struct {
	prog     *Program
	meshes   map[scene.Shape]*Mesh
	textures map[scene.TextureID]*Texture
	bound    *Mesh
}

var _ scene.Device = (*Device)(nil)

// NewDevice uploads every mesh of set, loads every scene texture from textureDir
// and compiles the program written by p. Release resources with [Device.Delete].
func NewDevice(p *glbuild.Programmer, set stilllife.Set, textureDir string) (_ *Device, err error) {
	dev := &Device{
		meshes:   make(map[scene.Shape]*Mesh),
		textures: make(map[scene.TextureID]*Texture),
	}
	defer func() {
		if err != nil {
			dev.Delete()
		}
	}()
	for _, shape := range scene.Shapes() {
		gm, err := NewMesh(shape.Mesh(set))
		if err != nil {
			return nil, fmt.Errorf("%s mesh: %w", shape, err)
		}
		dev.meshes[shape] = gm
	}
	for _, id := range scene.Textures() {
		filename := filepath.Join(textureDir, id.Filename())
		tex, err := LoadTexture(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to load texture %s: %w", filename, err)
		}
		dev.textures[id] = tex
	}
	dev.prog, err = NewProgram(p)
	if err != nil {
		return nil, err
	}
	return dev, nil
}

// Delete frees all GPU resources owned by the device.
func (d *Device) Delete() {
	for shape, gm := range d.meshes {
		gm.Delete()
		delete(d.meshes, shape)
	}
	for id, tex := range d.textures {
		tex.Delete()
		delete(d.textures, id)
	}
	if d.prog != nil {
		d.prog.Delete()
		d.prog = nil
	}
}

// Viewport sets the viewport to the framebuffer size.
func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *Device) Clear() {
	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (d *Device) UseProgram() { d.prog.Bind() }

func (d *Device) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(d.prog.Location(name), 1, false, &m[0])
}

func (d *Device) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3f(d.prog.Location(name), v[0], v[1], v[2])
}

func (d *Device) SetVec2(name string, v mgl32.Vec2) {
	gl.Uniform2f(d.prog.Location(name), v[0], v[1])
}

func (d *Device) SetBool(name string, b bool) {
	var v int32
	if b {
		v = 1
	}
	gl.Uniform1i(d.prog.Location(name), v)
}

func (d *Device) BindTexture(unit int, id scene.TextureID) error {
	tex := d.textures[id]
	if tex == nil {
		return fmt.Errorf("texture %v not loaded", id)
	}
	tex.Bind(unit)
	return nil
}

func (d *Device) BindMesh(shape scene.Shape) ([]stilllife.DrawRange, error) {
	gm := d.meshes[shape]
	if gm == nil {
		return nil, fmt.Errorf("%w %v", errNoMesh, shape)
	}
	gm.Bind()
	d.bound = gm
	return gm.Ranges(), nil
}

func (d *Device) Draw(r stilllife.DrawRange) {
	if d.bound != nil {
		d.bound.Draw(r)
	}
}

func (d *Device) UnbindMesh() {
	gl.BindVertexArray(0)
	d.bound = nil
}

// Err returns the first pending OpenGL error.
func (d *Device) Err() error { return glgl.Err() }
