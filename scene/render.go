package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/stilllife"
	"github.com/soypat/stilllife/glbuild"
)

// Device is the set of graphics operations needed to draw the still life with
// a single lit textured program. Uniforms are addressed by name, see the
// Uniform constants of package glbuild.
type Device interface {
	// Clear clears color and depth buffers.
	Clear()
	// UseProgram makes the still life program current.
	UseProgram()
	SetMat4(name string, m mgl32.Mat4)
	SetVec3(name string, v mgl32.Vec3)
	SetVec2(name string, v mgl32.Vec2)
	SetBool(name string, b bool)
	// BindTexture binds the texture to the texture unit.
	BindTexture(unit int, tex TextureID) error
	// BindMesh binds the geometry of shape and returns its draw ranges.
	BindMesh(shape Shape) ([]stilllife.DrawRange, error)
	// Draw issues a draw call over a range of the bound mesh.
	Draw(r stilllife.DrawRange)
	UnbindMesh()
}

// Frame holds the camera dependent uniforms of a frame.
type Frame struct {
	View         mgl32.Mat4
	Projection   mgl32.Mat4
	ViewPosition mgl32.Vec3
}

// NewFrame returns the frame seen by cam in a viewport of the given size.
func NewFrame(cam *Camera, width, height int, ortho bool) Frame {
	return Frame{
		View:         cam.ViewMatrix(),
		Projection:   Projection(cam, width, height, ortho),
		ViewPosition: cam.Position,
	}
}

// Projection planes.
const (
	Near        = 0.1
	Far         = 100
	orthoExtent = 5
)

// Projection returns a perspective projection with the camera's zoom as field of
// view or, if ortho is set, an orthographic projection of a 10x10 box.
func Projection(cam *Camera, width, height int, ortho bool) mgl32.Mat4 {
	if ortho {
		return mgl32.Ortho(-orthoExtent, orthoExtent, -orthoExtent, orthoExtent, Near, Far)
	}
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Perspective(mgl32.DegToRad(cam.Zoom), aspect, Near, Far)
}

var errUnknownShape = errors.New("unknown shape")

// Render draws groups in order. Each object's model matrix is parent·T·R·S.
// The overlay texture is enabled only while drawing lateral ranges of objects
// that have one.
func Render(dev Device, f Frame, l Lighting, groups []Group) error {
	dev.Clear()
	dev.UseProgram()
	dev.SetBool(glbuild.UniformMultipleTextures, false)
	dev.SetMat4(glbuild.UniformView, f.View)
	dev.SetMat4(glbuild.UniformProjection, f.Projection)
	dev.SetVec3(glbuild.UniformObjectColor, l.ObjectColor)
	dev.SetVec3(glbuild.UniformLightColor, l.LightColor)
	dev.SetVec3(glbuild.UniformLightPos, l.LightPos)
	dev.SetVec3(glbuild.UniformLightColor2, l.LightColor2)
	dev.SetVec3(glbuild.UniformLightPos2, l.LightPos2)
	dev.SetVec3(glbuild.UniformViewPosition, f.ViewPosition)
	dev.SetVec2(glbuild.UniformUVScale, l.UVScale)
	for _, g := range groups {
		parent := g.Parent.Matrix()
		for _, obj := range g.Objects {
			err := renderObject(dev, parent, obj)
			if err != nil {
				return fmt.Errorf("drawing %s %s: %w", g.Name, obj.Name, err)
			}
		}
	}
	return nil
}

func renderObject(dev Device, parent mgl32.Mat4, obj Object) error {
	if obj.Shape >= numShapes {
		return errUnknownShape
	}
	if obj.Texture != NoTexture {
		err := dev.BindTexture(glbuild.BaseTextureUnit, obj.Texture)
		if err != nil {
			return err
		}
	}
	hasOverlay := obj.Overlay != NoTexture
	if hasOverlay {
		err := dev.BindTexture(glbuild.OverlayTextureUnit, obj.Overlay)
		if err != nil {
			return err
		}
	}
	ranges, err := dev.BindMesh(obj.Shape)
	if err != nil {
		return err
	}
	dev.SetMat4(glbuild.UniformModel, parent.Mul4(obj.Local.Matrix()))
	for _, r := range ranges {
		overlay := hasOverlay && r.Lateral
		if overlay {
			dev.SetBool(glbuild.UniformMultipleTextures, true)
		}
		dev.Draw(r)
		if overlay {
			dev.SetBool(glbuild.UniformMultipleTextures, false)
		}
	}
	dev.UnbindMesh()
	return nil
}
