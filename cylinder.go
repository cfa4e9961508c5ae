package stilllife

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// CylinderParams defines a capped cylinder standing on the XZ plane with its axis along +Y.
type CylinderParams struct {
	Radius float32
	Height float32
	// Sides is the amount of flat faces approximating the lateral surface.
	Sides int
}

// DefaultCylinder is the cylinder used for the bottle. Each cap fan has 36 vertices.
var DefaultCylinder = CylinderParams{
	Radius: 1,
	Height: 1,
	Sides:  34,
}

// NewCylinder generates a non-indexed cylinder drawn in three ranges:
// the bottom cap fan at y=0, the top cap fan at y=Height and the lateral triangle strip.
func (bld *Builder) NewCylinder(p CylinderParams) *Mesh {
	switch {
	case p.Radius <= 0 || p.Height <= 0:
		bld.shapeErrorf(ErrBadCylinder, "radius and height must be positive, got radius=%g height=%g", p.Radius, p.Height)
		return nil
	case p.Sides < 3:
		bld.shapeErrorf(ErrBadCylinder, "need at least 3 sides, got %d", p.Sides)
		return nil
	}
	N := p.Sides
	fanLen := N + 2
	stripLen := 2 * (N + 1)
	verts := make([]Vertex, 0, 2*fanLen+stripLen)

	down := ms3.Vec{Y: -1}
	up := ms3.Vec{Y: 1}
	top := ms3.Vec{Y: p.Height}
	appendCap := func(center, normal ms3.Vec) {
		verts = append(verts, Vertex{Pos: center, Normal: normal, UV: ms2.Vec{X: 0.5, Y: 0.5}})
		for k := 0; k <= N; k++ {
			rim := rimDir(k, N)
			verts = append(verts, Vertex{
				Pos:    ms3.Add(center, ms3.Scale(p.Radius, rim)),
				Normal: normal,
				UV:     ms2.Vec{X: 0.5 + 0.5*rim.X, Y: 0.5 + 0.5*rim.Z},
			})
		}
	}
	appendCap(ms3.Vec{}, down)
	appendCap(top, up)
	for k := 0; k <= N; k++ {
		rim := rimDir(k, N)
		u := float32(k) / float32(N)
		bottom := ms3.Scale(p.Radius, rim)
		verts = append(verts,
			Vertex{Pos: bottom, Normal: rim, UV: ms2.Vec{X: u, Y: 0}},
			Vertex{Pos: ms3.Add(bottom, top), Normal: rim, UV: ms2.Vec{X: u, Y: 1}},
		)
	}
	return &Mesh{
		Name:     "cylinder",
		Vertices: verts,
		Ranges: []DrawRange{
			{Primitive: TriangleFan, First: 0, Count: fanLen},
			{Primitive: TriangleFan, First: fanLen, Count: fanLen},
			{Primitive: TriangleStrip, First: 2 * fanLen, Count: stripLen, Lateral: true},
		},
	}
}

// rimDir returns the unit direction on the XZ plane of rim point k out of n.
// The last point (k==n) closes the loop onto the first.
func rimDir(k, n int) ms3.Vec {
	if k == n {
		k = 0
	}
	ang := float32(k) * tau / float32(n)
	return ms3.Vec{X: math32.Cos(ang), Z: math32.Sin(ang)}
}
