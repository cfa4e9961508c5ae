package glrender

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/stilllife"
	"github.com/soypat/stilllife/scene"
)

var errNoMesh = errors.New("no mesh for shape")

// Renderer reads triangles into dst. It returns io.EOF once all triangles have been read.
type Renderer interface {
	ReadTriangles(dst []ms3.Triangle, userData any) (n int, err error)
}

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.ReadAll implementation.
func RenderAll(r Renderer, userData any) ([]ms3.Triangle, error) {
	const startSize = 4096
	var err error
	var nt int
	result := make([]ms3.Triangle, 0, startSize)
	buf := make([]ms3.Triangle, startSize)
	for {
		nt, err = r.ReadTriangles(buf, userData)
		if err == nil || err == io.EOF {
			result = append(result, buf[:nt]...)
		}
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

// SceneRenderer reads the triangles of scene objects in world space, transformed
// by their model matrix. Objects are read in draw order.
type SceneRenderer struct {
	set     stilllife.Set
	groups  []scene.Group
	group   int
	object  int
	pending []ms3.Triangle
	scratch []ms3.Triangle
}

// NewSceneRenderer returns a [Renderer] over the objects of groups using the meshes of set.
func NewSceneRenderer(set stilllife.Set, groups []scene.Group) (*SceneRenderer, error) {
	for _, g := range groups {
		for _, obj := range g.Objects {
			if obj.Shape.Mesh(set) == nil {
				return nil, fmt.Errorf("%s %s: %w %v", g.Name, obj.Name, errNoMesh, obj.Shape)
			}
		}
	}
	return &SceneRenderer{set: set, groups: groups}, nil
}

// ReadTriangles implements [Renderer]. userData is unused.
func (sr *SceneRenderer) ReadTriangles(dst []ms3.Triangle, userData any) (n int, err error) {
	for n < len(dst) {
		if len(sr.pending) == 0 && !sr.next() {
			return n, io.EOF
		}
		nc := copy(dst[n:], sr.pending)
		sr.pending = sr.pending[nc:]
		n += nc
	}
	return n, nil
}

// Reset rewinds the renderer to the first object.
func (sr *SceneRenderer) Reset() {
	sr.group, sr.object = 0, 0
	sr.pending = sr.pending[:0]
}

func (sr *SceneRenderer) next() bool {
	for sr.group < len(sr.groups) && sr.object >= len(sr.groups[sr.group].Objects) {
		sr.group++
		sr.object = 0
	}
	if sr.group >= len(sr.groups) {
		return false
	}
	g := sr.groups[sr.group]
	obj := g.Objects[sr.object]
	sr.object++
	model := scene.ModelMatrix(g.Parent, obj.Local)
	sr.scratch = obj.Shape.Mesh(sr.set).AppendTriangles(sr.scratch[:0])
	for i := range sr.scratch {
		for j := range sr.scratch[i] {
			sr.scratch[i][j] = transformPoint(model, sr.scratch[i][j])
		}
	}
	sr.pending = sr.scratch
	return true
}

func transformPoint(m mgl32.Mat4, p ms3.Vec) ms3.Vec {
	v := m.Mul4x1(mgl32.Vec4{p.X, p.Y, p.Z, 1})
	return ms3.Vec{X: v[0], Y: v[1], Z: v[2]}
}
