package stilllife

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// TorusParams defines a torus lying on the XY plane centered at the origin.
type TorusParams struct {
	// MainSegments is the amount of subdivisions around the central ring axis.
	MainSegments int
	// TubeSegments is the amount of subdivisions around the tube's cross section.
	TubeSegments int
	// MainRadius is the distance from the origin to the center of the tube.
	MainRadius float32
	TubeRadius float32
}

// DefaultTorus is the torus used for the binder rings.
var DefaultTorus = TorusParams{
	MainSegments: 30,
	TubeSegments: 30,
	MainRadius:   1,
	TubeRadius:   0.1,
}

// gridIdx indexes the torus point grid by main segment and tube segment.
type gridIdx struct {
	main, tube int
}

// torusCell returns the six grid points listed for cell (i,j), forming the triangles
// {(i,j), (i,j+1), (i+1,j+1)} and {(i,j), (i+1,j), (i+1,j+1)}. Neighbors past the last
// main or tube segment wrap around to index 0 which closes the surface.
func torusCell(i, j, mainSegs, tubeSegs int) [6]gridIdx {
	inext := i + 1
	if inext == mainSegs {
		inext = 0
	}
	jnext := j + 1
	if jnext == tubeSegs {
		jnext = 0
	}
	return [6]gridIdx{
		{i, j}, {i, jnext}, {inext, jnext},
		{i, j}, {inext, j}, {inext, jnext},
	}
}

// NewTorus generates a non-indexed torus triangle list. Every grid cell, including the
// wrap cells at the last main and tube segment, emits two triangles so the vertex count
// is 6*MainSegments*TubeSegments.
//
// Vertex normals point away from the torus center (the origin) and not from the tube axis,
// which shades thin tubes close enough to the true normal.
func (bld *Builder) NewTorus(p TorusParams) *Mesh {
	M, T := p.MainSegments, p.TubeSegments
	switch {
	case M < 3:
		bld.shapeErrorf(ErrBadTorus, "need at least 3 main segments, got %d", M)
		return nil
	case T < 3:
		bld.shapeErrorf(ErrBadTorus, "need at least 3 tube segments, got %d", T)
		return nil
	case p.MainRadius <= 0 || p.TubeRadius <= 0:
		bld.shapeErrorf(ErrBadTorus, "radii must be positive, got main=%g tube=%g", p.MainRadius, p.TubeRadius)
		return nil
	}
	mainStep := tau / float32(M)
	tubeStep := tau / float32(T)
	grid := make([]ms3.Vec, M*T)
	for i := 0; i < M; i++ {
		mainAngle := float32(i) * mainStep
		sinMain, cosMain := math32.Sin(mainAngle), math32.Cos(mainAngle)
		for j := 0; j < T; j++ {
			tubeAngle := float32(j) * tubeStep
			sinTube, cosTube := math32.Sin(tubeAngle), math32.Cos(tubeAngle)
			ring := p.MainRadius + p.TubeRadius*cosTube
			grid[i*T+j] = ms3.Vec{
				X: ring * cosMain,
				Y: ring * sinMain,
				Z: p.TubeRadius * sinTube,
			}
			if ms3.Norm(grid[i*T+j]) < epstol {
				// Horn torus sampled through its center, normal undefined.
				bld.shapeErrorf(ErrBadTorus, "point (%d,%d) coincides with torus center", i, j)
				return nil
			}
		}
	}

	var center ms3.Vec
	uStep := 1 / float32(M)
	vStep := 1 / float32(T)
	verts := make([]Vertex, 0, 6*M*T)
	for i := 0; i < M; i++ {
		for j := 0; j < T; j++ {
			for _, g := range torusCell(i, j, M, T) {
				pos := grid[g.main*T+g.tube]
				verts = append(verts, Vertex{
					Pos:    pos,
					Normal: ms3.Unit(ms3.Sub(pos, center)),
					UV:     ms2.Vec{X: float32(g.main) * uStep, Y: float32(g.tube) * vStep},
				})
			}
		}
	}
	return &Mesh{
		Name:     "torus",
		Vertices: verts,
		Ranges:   []DrawRange{{Primitive: Triangles, Count: len(verts)}},
	}
}
