package stilllife

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

func TestTorusCounts(t *testing.T) {
	var bld Builder
	for _, test := range []struct{ M, T int }{{3, 3}, {4, 4}, {3, 7}, {12, 5}, {30, 30}} {
		p := TorusParams{MainSegments: test.M, TubeSegments: test.T, MainRadius: 1, TubeRadius: 0.25}
		m := bld.NewTorus(p)
		wantVerts := 6 * test.M * test.T
		if m.NumVertices() != wantVerts {
			t.Errorf("%dx%d: want %d vertices, got %d", test.M, test.T, wantVerts, m.NumVertices())
		}
		if m.NumTriangles() != 2*test.M*test.T {
			t.Errorf("%dx%d: want %d triangles, got %d", test.M, test.T, 2*test.M*test.T, m.NumTriangles())
		}
		if m.NumIndices() != 0 {
			t.Errorf("%dx%d: torus must not be indexed, got %d indices", test.M, test.T, m.NumIndices())
		}
		if err := m.Validate(); err != nil {
			t.Error(err)
		}
	}
}

func TestDefaultTorus(t *testing.T) {
	var bld Builder
	m := bld.NewTorus(DefaultTorus)
	if got := m.NumTriangles(); got != 1800 {
		t.Errorf("want 1800 triangles, got %d", got)
	}
	if got := m.NumVertices(); got != 5400 {
		t.Errorf("want 5400 vertices, got %d", got)
	}
	buf := m.Interleaved()
	if len(buf) != 5400*FloatsPerVertex {
		t.Errorf("want %d floats, got %d", 5400*FloatsPerVertex, len(buf))
	}
	if FloatsPerVertex != 8 || VertexStride != 32 {
		t.Error("vertex layout must be 8 floats")
	}
	// Field order: position, normal, uv.
	v := m.Vertices[7]
	got := buf[7*FloatsPerVertex : 8*FloatsPerVertex]
	want := []float32{v.Pos.X, v.Pos.Y, v.Pos.Z, v.Normal.X, v.Normal.Y, v.Normal.Z, v.UV.X, v.UV.Y}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("interleave mismatch at float %d: want %g, got %g", i, want[i], got[i])
		}
	}
}

func TestTorusNormals(t *testing.T) {
	const tol = 1e-5
	var bld Builder
	for _, p := range []TorusParams{
		DefaultTorus,
		{MainSegments: 5, TubeSegments: 3, MainRadius: 2, TubeRadius: 0.5},
		{MainSegments: 8, TubeSegments: 9, MainRadius: 0.5, TubeRadius: 1.5},
	} {
		m := bld.NewTorus(p)
		for i, v := range m.Vertices {
			n := ms3.Norm(v.Normal)
			if math32.Abs(n-1) > tol {
				t.Fatalf("%+v: vertex %d normal not unit: %v (norm %g)", p, i, v.Normal, n)
			}
			// Normal points from torus center to vertex.
			if ms3.Dot(v.Normal, v.Pos) <= 0 {
				t.Fatalf("%+v: vertex %d normal not outward", p, i)
			}
		}
	}
}

func TestTorusCellWrap(t *testing.T) {
	const M, T = 4, 5
	for i := 0; i < M; i++ {
		for j := 0; j < T; j++ {
			cell := torusCell(i, j, M, T)
			wantNextMain := i + 1
			if i == M-1 {
				wantNextMain = 0
			}
			wantNextTube := j + 1
			if j == T-1 {
				wantNextTube = 0
			}
			want := [6]gridIdx{
				{i, j}, {i, wantNextTube}, {wantNextMain, wantNextTube},
				{i, j}, {wantNextMain, j}, {wantNextMain, wantNextTube},
			}
			if cell != want {
				t.Errorf("cell (%d,%d): want %v, got %v", i, j, want, cell)
			}
			for _, g := range cell {
				if g.main < 0 || g.main >= M || g.tube < 0 || g.tube >= T {
					t.Errorf("cell (%d,%d): grid index %v out of bounds", i, j, g)
				}
			}
		}
	}
	corner := torusCell(M-1, T-1, M, T)
	if corner[2] != (gridIdx{0, 0}) || corner[5] != (gridIdx{0, 0}) {
		t.Errorf("corner cell must wrap both axes to (0,0), got %v", corner)
	}
}

func TestTorusClosedSurface(t *testing.T) {
	// Every edge of a closed surface is shared by exactly two triangles.
	const M, T = 6, 4
	type edge struct{ a, b gridIdx }
	key := func(a, b gridIdx) edge {
		if a.main > b.main || (a.main == b.main && a.tube > b.tube) {
			a, b = b, a
		}
		return edge{a, b}
	}
	edges := make(map[edge]int)
	for i := 0; i < M; i++ {
		for j := 0; j < T; j++ {
			cell := torusCell(i, j, M, T)
			for k := 0; k < 6; k += 3 {
				a, b, c := cell[k], cell[k+1], cell[k+2]
				edges[key(a, b)]++
				edges[key(b, c)]++
				edges[key(a, c)]++
			}
		}
	}
	// Euler characteristic of a torus is zero: V - E + F = 0.
	V, E, F := M*T, len(edges), 2*M*T
	if V-E+F != 0 {
		t.Errorf("want Euler characteristic 0, got %d", V-E+F)
	}
	for e, n := range edges {
		if n != 2 {
			t.Errorf("edge %v shared by %d triangles", e, n)
		}
	}
}

func TestTorusUV(t *testing.T) {
	const M, T = 5, 4
	var bld Builder
	m := bld.NewTorus(TorusParams{MainSegments: M, TubeSegments: T, MainRadius: 1, TubeRadius: 0.2})
	for i := 0; i < M; i++ {
		for j := 0; j < T; j++ {
			base := 6 * (i*T + j)
			cell := torusCell(i, j, M, T)
			for k, g := range cell {
				uv := m.Vertices[base+k].UV
				if uv.X < 0 || uv.X >= 1 || uv.Y < 0 || uv.Y >= 1 {
					t.Errorf("cell (%d,%d) vertex %d: UV %v out of [0,1)", i, j, k, uv)
				}
				wantU := float32(g.main) / M
				wantV := float32(g.tube) / T
				if math32.Abs(uv.X-wantU) > 1e-6 || math32.Abs(uv.Y-wantV) > 1e-6 {
					t.Errorf("cell (%d,%d) vertex %d: want UV (%g,%g), got %v", i, j, k, wantU, wantV, uv)
				}
			}
			if i == M-1 {
				for _, k := range []int{2, 4, 5} {
					if m.Vertices[base+k].UV.X != 0 {
						t.Errorf("cell (%d,%d) vertex %d: wrapped main axis must have U=0", i, j, k)
					}
				}
			}
			if j == T-1 {
				for _, k := range []int{1, 2, 5} {
					if m.Vertices[base+k].UV.Y != 0 {
						t.Errorf("cell (%d,%d) vertex %d: wrapped tube axis must have V=0", i, j, k)
					}
				}
			}
		}
	}
}

func TestTorusPositions(t *testing.T) {
	const tol = 1e-5
	p := TorusParams{MainSegments: 7, TubeSegments: 6, MainRadius: 1.5, TubeRadius: 0.3}
	var bld Builder
	m := bld.NewTorus(p)
	for i := 0; i < p.MainSegments; i++ {
		for j := 0; j < p.TubeSegments; j++ {
			thMain := float32(i) * tau / float32(p.MainSegments)
			thTube := float32(j) * tau / float32(p.TubeSegments)
			ring := p.MainRadius + p.TubeRadius*math32.Cos(thTube)
			want := ms3.Vec{X: ring * math32.Cos(thMain), Y: ring * math32.Sin(thMain), Z: p.TubeRadius * math32.Sin(thTube)}
			got := m.Vertices[6*(i*p.TubeSegments+j)].Pos
			if ms3.Norm(ms3.Sub(got, want)) > tol {
				t.Errorf("grid point (%d,%d): want %v, got %v", i, j, want, got)
			}
		}
	}
}

func TestTorusBadParams(t *testing.T) {
	bld := Builder{NoDimensionPanic: true}
	for _, p := range []TorusParams{
		{MainSegments: 2, TubeSegments: 30, MainRadius: 1, TubeRadius: 0.1},
		{MainSegments: 30, TubeSegments: 2, MainRadius: 1, TubeRadius: 0.1},
		{MainSegments: 30, TubeSegments: 30, MainRadius: 0, TubeRadius: 0.1},
		{MainSegments: 30, TubeSegments: 30, MainRadius: 1, TubeRadius: -0.1},
		{MainSegments: 4, TubeSegments: 4, MainRadius: 1, TubeRadius: 1}, // Horn torus through the center.
	} {
		m := bld.NewTorus(p)
		if m != nil {
			t.Errorf("%+v: expected nil mesh", p)
		}
		err := bld.Err()
		if !errors.Is(err, ErrBadTorus) {
			t.Errorf("%+v: want ErrBadTorus, got %v", p, err)
		}
		bld.ClearErrors()
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic without NoDimensionPanic")
		}
	}()
	var panicky Builder
	panicky.NewTorus(TorusParams{MainSegments: 1, TubeSegments: 1, MainRadius: 1, TubeRadius: 1})
}
