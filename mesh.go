package stilllife

import (
	"fmt"

	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// Interleaved vertex layout shared by every mesh and by the vertex shader's attribute locations.
const (
	FloatsPerPosition = 3
	FloatsPerNormal   = 3
	FloatsPerUV       = 2
	FloatsPerVertex   = FloatsPerPosition + FloatsPerNormal + FloatsPerUV
	// VertexStride is the size in bytes of one interleaved vertex.
	VertexStride = 4 * FloatsPerVertex
	// NormalOffset and UVOffset are byte offsets of the attributes within a vertex.
	NormalOffset = 4 * FloatsPerPosition
	UVOffset     = 4 * (FloatsPerPosition + FloatsPerNormal)
)

// Vertex is a single mesh vertex with position, normal and texture coordinate.
type Vertex struct {
	Pos    ms3.Vec
	Normal ms3.Vec
	UV     ms2.Vec
}

// Primitive is the topology used to assemble vertices of a [DrawRange].
type Primitive uint8

const (
	Triangles Primitive = iota
	TriangleFan
	TriangleStrip
)

func (p Primitive) String() string {
	switch p {
	case Triangles:
		return "triangles"
	case TriangleFan:
		return "triangle fan"
	case TriangleStrip:
		return "triangle strip"
	}
	return fmt.Sprintf("Primitive(%d)", uint8(p))
}

// DrawRange describes a single draw call over a mesh.
type DrawRange struct {
	Primitive Primitive
	// First is the first vertex (or index if Indexed) of the range.
	First int
	Count int
	// Indexed ranges are read through the mesh's index buffer.
	Indexed bool
	// Lateral marks the side surface of a solid of revolution.
	Lateral bool
}

// Mesh is CPU side geometry ready to be interleaved and uploaded to the GPU.
// Meshes are not modified after creation.
type Mesh struct {
	Name     string
	Vertices []Vertex
	// Indices is empty for meshes drawn without an index buffer.
	Indices []uint32
	Ranges  []DrawRange
}

// NumVertices returns the amount of vertices stored in the vertex buffer.
func (m *Mesh) NumVertices() int { return len(m.Vertices) }

// NumIndices returns the amount of indices in the index buffer. It is zero for non-indexed meshes.
func (m *Mesh) NumIndices() int { return len(m.Indices) }

// Interleaved returns the vertex buffer as position, normal and UV float32s in that order.
func (m *Mesh) Interleaved() []float32 {
	return m.AppendInterleaved(make([]float32, 0, FloatsPerVertex*len(m.Vertices)))
}

// AppendInterleaved appends the interleaved vertex buffer to dst and returns the result.
func (m *Mesh) AppendInterleaved(dst []float32) []float32 {
	for _, v := range m.Vertices {
		dst = append(dst,
			v.Pos.X, v.Pos.Y, v.Pos.Z,
			v.Normal.X, v.Normal.Y, v.Normal.Z,
			v.UV.X, v.UV.Y,
		)
	}
	return dst
}

// Validate checks that indices and draw ranges reference existing data.
func (m *Mesh) Validate() error {
	nv := uint32(len(m.Vertices))
	if nv == 0 {
		return fmt.Errorf("%s: mesh has no vertices", m.Name)
	}
	for i, idx := range m.Indices {
		if idx >= nv {
			return fmt.Errorf("%s: index %d at position %d out of range [0,%d)", m.Name, idx, i, nv)
		}
	}
	if len(m.Ranges) == 0 {
		return fmt.Errorf("%s: no draw ranges", m.Name)
	}
	for i, r := range m.Ranges {
		limit := len(m.Vertices)
		if r.Indexed {
			limit = len(m.Indices)
		}
		if r.First < 0 || r.Count < 3 || r.First+r.Count > limit {
			return fmt.Errorf("%s: range %d [%d,%d) out of bounds of %d", m.Name, i, r.First, r.First+r.Count, limit)
		}
		if r.Primitive == Triangles && r.Count%3 != 0 {
			return fmt.Errorf("%s: range %d triangle list count %d not a multiple of 3", m.Name, i, r.Count)
		}
	}
	return nil
}

// Triangles expands all draw ranges of the mesh into a flat triangle list.
func (m *Mesh) Triangles() []ms3.Triangle {
	return m.AppendTriangles(nil)
}

// AppendTriangles appends the triangles of every draw range to dst.
func (m *Mesh) AppendTriangles(dst []ms3.Triangle) []ms3.Triangle {
	for _, r := range m.Ranges {
		dst = m.appendRange(dst, r)
	}
	return dst
}

func (m *Mesh) appendRange(dst []ms3.Triangle, r DrawRange) []ms3.Triangle {
	at := func(i int) ms3.Vec {
		if r.Indexed {
			return m.Vertices[m.Indices[r.First+i]].Pos
		}
		return m.Vertices[r.First+i].Pos
	}
	switch r.Primitive {
	case Triangles:
		for i := 0; i+2 < r.Count; i += 3 {
			dst = append(dst, ms3.Triangle{at(i), at(i + 1), at(i + 2)})
		}
	case TriangleFan:
		for i := 1; i+1 < r.Count; i++ {
			dst = append(dst, ms3.Triangle{at(0), at(i), at(i + 1)})
		}
	case TriangleStrip:
		for i := 0; i+2 < r.Count; i++ {
			if i%2 == 0 {
				dst = append(dst, ms3.Triangle{at(i), at(i + 1), at(i + 2)})
			} else {
				dst = append(dst, ms3.Triangle{at(i + 1), at(i), at(i + 2)})
			}
		}
	}
	return dst
}

// NumTriangles returns the amount of triangles drawn by all ranges of the mesh.
func (m *Mesh) NumTriangles() (n int) {
	for _, r := range m.Ranges {
		switch r.Primitive {
		case Triangles:
			n += r.Count / 3
		case TriangleFan, TriangleStrip:
			n += max(0, r.Count-2)
		}
	}
	return n
}
