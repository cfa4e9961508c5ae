package stilllife

import (
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// Literal unit cube centered at the origin. Positions, normals, UVs.
// Kept as the literal table, including its +X normal on the -X face.
var boxVertices = [24][8]float32{
	// Back face.
	{0.5, 0.5, -0.5, 0, 0, -1, 0, 1},
	{0.5, -0.5, -0.5, 0, 0, -1, 0, 0},
	{-0.5, -0.5, -0.5, 0, 0, -1, 1, 0},
	{-0.5, 0.5, -0.5, 0, 0, -1, 1, 1},
	// Bottom face.
	{-0.5, -0.5, 0.5, 0, -1, 0, 0, 1},
	{-0.5, -0.5, -0.5, 0, -1, 0, 0, 0},
	{0.5, -0.5, -0.5, 0, -1, 0, 1, 0},
	{0.5, -0.5, 0.5, 0, -1, 0, 1, 1},
	// Left face.
	{-0.5, 0.5, -0.5, 1, 0, 0, 0, 1},
	{-0.5, -0.5, -0.5, 1, 0, 0, 0, 0},
	{-0.5, -0.5, 0.5, 1, 0, 0, 1, 0},
	{-0.5, 0.5, 0.5, 1, 0, 0, 1, 1},
	// Right face.
	{0.5, 0.5, 0.5, 1, 0, 0, 0, 1},
	{0.5, -0.5, 0.5, 1, 0, 0, 0, 0},
	{0.5, -0.5, -0.5, 1, 0, 0, 1, 0},
	{0.5, 0.5, -0.5, 1, 0, 0, 1, 1},
	// Top face.
	{-0.5, 0.5, -0.5, 0, 1, 0, 0, 1},
	{-0.5, 0.5, 0.5, 0, 1, 0, 0, 0},
	{0.5, 0.5, 0.5, 0, 1, 0, 1, 0},
	{0.5, 0.5, -0.5, 0, 1, 0, 1, 1},
	// Front face.
	{-0.5, 0.5, 0.5, 0, 0, 1, 0, 1},
	{-0.5, -0.5, 0.5, 0, 0, 1, 0, 0},
	{0.5, -0.5, 0.5, 0, 0, 1, 1, 0},
	{0.5, 0.5, 0.5, 0, 0, 1, 1, 1},
}

var boxIndices = [36]uint32{
	0, 1, 2,
	0, 3, 2,
	4, 5, 6,
	4, 7, 6,
	8, 9, 10,
	8, 11, 10,
	12, 13, 14,
	12, 15, 14,
	16, 17, 18,
	16, 19, 18,
	20, 21, 22,
	20, 23, 22,
}

// Literal quad on the XZ plane spanning [-1,1]. The normal slot holds (1,1,1).
var planeVertices = [4][8]float32{
	{-1, 0, 1, 1, 1, 1, 0, 0},
	{1, 0, 1, 1, 1, 1, 1, 0},
	{1, 0, -1, 1, 1, 1, 1, 1},
	{-1, 0, -1, 1, 1, 1, 0, 1},
}

var planeIndices = [6]uint32{
	0, 1, 2,
	0, 3, 2,
}

// NewBox returns the indexed unit cube mesh: 24 vertices and 36 indices.
func (bld *Builder) NewBox() *Mesh {
	return literalMesh("box", boxVertices[:], boxIndices[:])
}

// NewPlane returns the indexed floor quad mesh: 4 vertices and 6 indices.
func (bld *Builder) NewPlane() *Mesh {
	return literalMesh("plane", planeVertices[:], planeIndices[:])
}

func literalMesh(name string, table [][8]float32, indices []uint32) *Mesh {
	verts := make([]Vertex, len(table))
	for i, row := range table {
		verts[i] = Vertex{
			Pos:    ms3.Vec{X: row[0], Y: row[1], Z: row[2]},
			Normal: ms3.Vec{X: row[3], Y: row[4], Z: row[5]},
			UV:     ms2.Vec{X: row[6], Y: row[7]},
		}
	}
	return &Mesh{
		Name:     name,
		Vertices: verts,
		Indices:  append([]uint32(nil), indices...),
		Ranges:   []DrawRange{{Primitive: Triangles, Count: len(indices), Indexed: true}},
	}
}
