package scene

import "github.com/go-gl/mathgl/mgl32"

// Transform is a translation, a rotation about an axis and a scale. It is
// composed as T·R·S, so scale is applied first.
type Transform struct {
	Translation mgl32.Vec3
	// Angle is the rotation angle about Axis in radians.
	Angle float32
	Axis  mgl32.Vec3
	Scale mgl32.Vec3
}

// Identity returns the transform that leaves points unchanged.
func Identity() Transform {
	return Transform{Axis: mgl32.Vec3{0, 1, 0}, Scale: mgl32.Vec3{1, 1, 1}}
}

// Matrix returns T·R·S. The rotation axis need not be normalized.
// A zero angle or zero axis produce no rotation.
func (t Transform) Matrix() mgl32.Mat4 {
	T := mgl32.Translate3D(t.Translation.Elem())
	S := mgl32.Scale3D(t.Scale.Elem())
	if t.Angle == 0 || t.Axis.Len() == 0 {
		return T.Mul4(S)
	}
	R := mgl32.HomogRotate3D(t.Angle, t.Axis.Normalize())
	return T.Mul4(R).Mul4(S)
}

// ModelMatrix returns parent·local, the model matrix of an object placed with
// local inside a group placed with parent.
func ModelMatrix(parent, local Transform) mgl32.Mat4 {
	return parent.Matrix().Mul4(local.Matrix())
}
