package stilllife

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

const (
	// epstol is used to check for badly conditioned lengths such as
	// radii and normal magnitudes.
	epstol = 6e-7
	tau    = 2 * math32.Pi
)

var (
	ErrBadTorus    = errors.New("bad torus parameters")
	ErrBadSphere   = errors.New("bad sphere parameters")
	ErrBadCylinder = errors.New("bad cylinder parameters")
)

// Builder wraps all mesh generation logic.
// Provides error handling strategies with panics or error accumulation during mesh generation.
type Builder struct {
	NoDimensionPanic bool
	accumErrs        []error
}

// Err returns all errors accumulated by the Builder during mesh generation.
// It is only useful if NoDimensionPanic is set.
func (bld *Builder) Err() error {
	if len(bld.accumErrs) == 0 {
		return nil
	}
	return errors.Join(bld.accumErrs...)
}

// ClearErrors discards accumulated errors.
func (bld *Builder) ClearErrors() {
	bld.accumErrs = bld.accumErrs[:0]
}

func (bld *Builder) shapeErrorf(kind error, msg string, args ...any) {
	err := fmt.Errorf("%w: %s", kind, fmt.Sprintf(msg, args...))
	if !bld.NoDimensionPanic {
		panic(err.Error())
	}
	bld.accumErrs = append(bld.accumErrs, err)
}

// Set is the group of meshes the still life is composed of. Each is generated once
// and shared by every scene object of that shape.
type Set struct {
	Box      *Mesh
	Plane    *Mesh
	Sphere   *Mesh
	Cylinder *Mesh
	Torus    *Mesh
}

// NewSet generates every mesh of the still life with their default parameters.
func (bld *Builder) NewSet() Set {
	return Set{
		Box:      bld.NewBox(),
		Plane:    bld.NewPlane(),
		Sphere:   bld.NewSphere(DefaultSphere),
		Cylinder: bld.NewCylinder(DefaultCylinder),
		Torus:    bld.NewTorus(DefaultTorus),
	}
}

// All returns the meshes of the set in a stable order.
func (s Set) All() []*Mesh {
	return []*Mesh{s.Box, s.Plane, s.Sphere, s.Cylinder, s.Torus}
}
