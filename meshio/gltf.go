package meshio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/soypat/stilllife"
	"github.com/soypat/stilllife/scene"
)

// GLTFVersion is the glTF specification version of written documents.
const GLTFVersion = "2.0"

// NewDocument returns an empty glTF document with a single scene and a single buffer.
func NewDocument() *gltf.Document {
	sceneIndex := uint32(0)
	return &gltf.Document{
		Asset: gltf.Asset{
			Version:   GLTFVersion,
			Generator: "stilllife",
		},
		Scene:   &sceneIndex,
		Scenes:  []*gltf.Scene{{Name: "still life"}},
		Buffers: []*gltf.Buffer{{}},
	}
}

func uint32Ptr(v uint32) *uint32 { return &v }

// AddMesh appends m to the document and returns its mesh index. Vertices are
// stored interleaved in a single buffer view. Each draw range of m becomes an
// indexed primitive.
func AddMesh(doc *gltf.Document, m *stilllife.Mesh) (uint32, error) {
	if len(doc.Buffers) == 0 {
		return 0, errors.New("document has no buffer")
	}
	err := m.Validate()
	if err != nil {
		return 0, err
	}
	buffer := doc.Buffers[0]

	// Interleaved vertex data.
	vertexView := uint32(len(doc.BufferViews))
	start := len(buffer.Data)
	buffer.Data = appendFloats(buffer.Data, m.Interleaved())
	doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{
		Buffer:     0,
		ByteOffset: uint32(start),
		ByteLength: uint32(len(buffer.Data) - start),
		ByteStride: stilllife.VertexStride,
	})
	posMin, posMax := bounds(m)
	nv := uint32(m.NumVertices())
	accPos := uint32(len(doc.Accessors))
	doc.Accessors = append(doc.Accessors,
		&gltf.Accessor{
			BufferView:    uint32Ptr(vertexView),
			ComponentType: gltf.ComponentFloat,
			Type:          gltf.AccessorVec3,
			Count:         nv,
			Min:           posMin[:],
			Max:           posMax[:],
		},
		&gltf.Accessor{
			BufferView:    uint32Ptr(vertexView),
			ByteOffset:    stilllife.NormalOffset,
			ComponentType: gltf.ComponentFloat,
			Type:          gltf.AccessorVec3,
			Count:         nv,
		},
		&gltf.Accessor{
			BufferView:    uint32Ptr(vertexView),
			ByteOffset:    stilllife.UVOffset,
			ComponentType: gltf.ComponentFloat,
			Type:          gltf.AccessorVec2,
			Count:         nv,
		},
	)
	attributes := gltf.Attribute{
		"POSITION":   accPos,
		"NORMAL":     accPos + 1,
		"TEXCOORD_0": accPos + 2,
	}

	// Index data: the mesh's indices followed by generated indices of non-indexed ranges.
	indices := append([]uint32(nil), m.Indices...)
	rangeStart := make([]int, len(m.Ranges))
	for i, r := range m.Ranges {
		if r.Indexed {
			rangeStart[i] = r.First
			continue
		}
		rangeStart[i] = len(indices)
		for k := 0; k < r.Count; k++ {
			indices = append(indices, uint32(r.First+k))
		}
	}
	indexView := uint32(len(doc.BufferViews))
	start = len(buffer.Data)
	buffer.Data = appendUint32s(buffer.Data, indices)
	doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{
		Buffer:     0,
		ByteOffset: uint32(start),
		ByteLength: uint32(len(buffer.Data) - start),
	})
	buffer.ByteLength = uint32(len(buffer.Data))

	mesh := &gltf.Mesh{Name: m.Name}
	for i, r := range m.Ranges {
		accIdx := uint32(len(doc.Accessors))
		doc.Accessors = append(doc.Accessors, &gltf.Accessor{
			BufferView:    uint32Ptr(indexView),
			ByteOffset:    uint32(4 * rangeStart[i]),
			ComponentType: gltf.ComponentUint,
			Type:          gltf.AccessorScalar,
			Count:         uint32(r.Count),
		})
		mesh.Primitives = append(mesh.Primitives, &gltf.Primitive{
			Attributes: attributes,
			Indices:    uint32Ptr(accIdx),
			Mode:       primitiveMode(r.Primitive),
		})
	}
	doc.Meshes = append(doc.Meshes, mesh)
	return uint32(len(doc.Meshes) - 1), nil
}

// AddStillLife appends the meshes of set and one node per scene object to the
// document's default scene. Each group is a parent node carrying the group's
// transform with its objects as children.
func AddStillLife(doc *gltf.Document, set stilllife.Set, groups []scene.Group) error {
	if doc.Scene == nil || int(*doc.Scene) >= len(doc.Scenes) {
		return errors.New("document has no default scene")
	}
	meshIdx := make(map[scene.Shape]uint32)
	for _, g := range groups {
		for _, obj := range g.Objects {
			if _, ok := meshIdx[obj.Shape]; ok {
				continue
			}
			m := obj.Shape.Mesh(set)
			if m == nil {
				return fmt.Errorf("%s %s: no mesh for %v", g.Name, obj.Name, obj.Shape)
			}
			idx, err := AddMesh(doc, m)
			if err != nil {
				return fmt.Errorf("%s mesh: %w", obj.Shape, err)
			}
			meshIdx[obj.Shape] = idx
		}
	}
	root := doc.Scenes[*doc.Scene]
	for _, g := range groups {
		parent := &gltf.Node{Name: g.Name, Matrix: g.Parent.Matrix()}
		for _, obj := range g.Objects {
			parent.Children = append(parent.Children, uint32(len(doc.Nodes)))
			doc.Nodes = append(doc.Nodes, &gltf.Node{
				Name:   g.Name + "/" + obj.Name,
				Mesh:   uint32Ptr(meshIdx[obj.Shape]),
				Matrix: obj.Local.Matrix(),
			})
		}
		root.Nodes = append(root.Nodes, uint32(len(doc.Nodes)))
		doc.Nodes = append(doc.Nodes, parent)
	}
	return nil
}

// WriteGLB writes doc to w in the binary glTF container format.
func WriteGLB(w io.Writer, doc *gltf.Document) error {
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	return enc.Encode(doc)
}

func primitiveMode(p stilllife.Primitive) gltf.PrimitiveMode {
	switch p {
	case stilllife.TriangleFan:
		return gltf.PrimitiveTriangleFan
	case stilllife.TriangleStrip:
		return gltf.PrimitiveTriangleStrip
	}
	return gltf.PrimitiveTriangles
}

func bounds(m *stilllife.Mesh) (lo, hi [3]float32) {
	lo = [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	hi = [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for _, v := range m.Vertices {
		p := [3]float32{v.Pos.X, v.Pos.Y, v.Pos.Z}
		for i := range p {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}
	return lo, hi
}

func appendFloats(b []byte, f []float32) []byte {
	for _, v := range f {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v))
	}
	return b
}

func appendUint32s(b []byte, u []uint32) []byte {
	for _, v := range u {
		b = binary.LittleEndian.AppendUint32(b, v)
	}
	return b
}
