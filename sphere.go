package stilllife

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// SphereParams defines a UV sphere centered at the origin with its poles on the Y axis.
type SphereParams struct {
	Radius float32
	// Sectors is the amount of longitudinal subdivisions around the Y axis.
	Sectors int
	// Stacks is the amount of latitudinal subdivisions from pole to pole.
	Stacks int
}

// DefaultSphere is the sphere used for the bottle shoulder and the wall light button.
var DefaultSphere = SphereParams{
	Radius:  1,
	Sectors: 36,
	Stacks:  18,
}

// NewSphere generates an indexed UV sphere. Pole rows emit a single triangle per
// sector so no degenerate triangles are produced.
func (bld *Builder) NewSphere(p SphereParams) *Mesh {
	switch {
	case p.Radius <= 0:
		bld.shapeErrorf(ErrBadSphere, "zero or negative sphere radius %g", p.Radius)
		return nil
	case p.Sectors < 3:
		bld.shapeErrorf(ErrBadSphere, "need at least 3 sectors, got %d", p.Sectors)
		return nil
	case p.Stacks < 2:
		bld.shapeErrorf(ErrBadSphere, "need at least 2 stacks, got %d", p.Stacks)
		return nil
	}
	rowLen := p.Sectors + 1
	verts := make([]Vertex, 0, rowLen*(p.Stacks+1))
	for y := 0; y <= p.Stacks; y++ {
		v := float32(y) / float32(p.Stacks)
		elev := v * math32.Pi
		sinElev, cosElev := math32.Sin(elev), math32.Cos(elev)
		for x := 0; x <= p.Sectors; x++ {
			u := float32(x) / float32(p.Sectors)
			ang := u * tau
			n := ms3.Vec{
				X: -math32.Cos(ang) * sinElev,
				Y: cosElev,
				Z: math32.Sin(ang) * sinElev,
			}
			verts = append(verts, Vertex{
				Pos:    ms3.Scale(p.Radius, n),
				Normal: n,
				UV:     ms2.Vec{X: u, Y: 1 - v},
			})
		}
	}

	indices := make([]uint32, 0, 3*p.Sectors*(2*p.Stacks-2))
	for y := 0; y < p.Stacks; y++ {
		for x := 0; x < p.Sectors; x++ {
			v1 := uint32(y*rowLen + x + 1)
			v2 := uint32(y*rowLen + x)
			v3 := uint32((y+1)*rowLen + x)
			v4 := uint32((y+1)*rowLen + x + 1)
			if y != 0 {
				indices = append(indices, v1, v2, v4)
			}
			if y != p.Stacks-1 {
				indices = append(indices, v2, v3, v4)
			}
		}
	}
	return &Mesh{
		Name:     "sphere",
		Vertices: verts,
		Indices:  indices,
		Ranges:   []DrawRange{{Primitive: Triangles, Count: len(indices), Indexed: true}},
	}
}
