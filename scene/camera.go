package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Direction is a camera movement direction relative to where the camera looks.
type Direction uint8

const (
	Forward Direction = iota
	Backward
	Left
	Right
	Up
	Down
)

// Camera defaults. Angles in degrees.
const (
	DefaultYaw         = -90
	DefaultPitch       = 0
	DefaultSpeed       = 2.5
	DefaultSensitivity = 0.1
	DefaultZoom        = 45

	maxPitch = 89
	minZoom  = 1
	maxZoom  = 45
)

// Camera is a first person fly camera driven by keyboard and mouse.
type Camera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3
	Right    mgl32.Vec3
	WorldUp  mgl32.Vec3
	// Yaw and Pitch are Euler angles in degrees.
	Yaw   float32
	Pitch float32
	// MovementSpeed is in world units per second.
	MovementSpeed    float32
	MouseSensitivity float32
	// Zoom is the vertical field of view in degrees.
	Zoom float32
}

// NewCamera returns a camera at pos looking down the -Z axis.
func NewCamera(pos mgl32.Vec3) *Camera {
	c := &Camera{
		Position:         pos,
		WorldUp:          mgl32.Vec3{0, 1, 0},
		Yaw:              DefaultYaw,
		Pitch:            DefaultPitch,
		MovementSpeed:    DefaultSpeed,
		MouseSensitivity: DefaultSensitivity,
		Zoom:             DefaultZoom,
	}
	c.updateVectors()
	return c
}

// ViewMatrix returns the world to camera transform.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

// ProcessKeyboard moves the camera in direction d for dt seconds.
func (c *Camera) ProcessKeyboard(d Direction, dt float32) {
	velocity := c.MovementSpeed * dt
	switch d {
	case Forward:
		c.Position = c.Position.Add(c.Front.Mul(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Mul(velocity))
	case Left:
		c.Position = c.Position.Sub(c.Right.Mul(velocity))
	case Right:
		c.Position = c.Position.Add(c.Right.Mul(velocity))
	case Up:
		c.Position = c.Position.Add(c.Up.Mul(velocity))
	case Down:
		c.Position = c.Position.Sub(c.Up.Mul(velocity))
	}
}

// ProcessMouseMovement rotates the camera by the cursor offset. Pitch is
// constrained so the view never flips over the vertical.
func (c *Camera) ProcessMouseMovement(xoffset, yoffset float32) {
	c.Yaw += xoffset * c.MouseSensitivity
	c.Pitch += yoffset * c.MouseSensitivity
	c.Pitch = clamp(c.Pitch, -maxPitch, maxPitch)
	c.updateVectors()
}

// ProcessMouseScroll zooms the camera in for positive yoffset.
func (c *Camera) ProcessMouseScroll(yoffset float32) {
	c.Zoom = clamp(c.Zoom-yoffset, minZoom, maxZoom)
}

func (c *Camera) updateVectors() {
	yaw := mgl32.DegToRad(c.Yaw)
	pitch := mgl32.DegToRad(c.Pitch)
	front := mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}
	c.Front = front.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(v, hi))
}

// MouseTracker converts absolute cursor positions into movement offsets.
// The first position seen yields a zero offset so the camera does not jump
// when the cursor enters the window.
type MouseTracker struct {
	lastX, lastY float64
	seen         bool
}

// Offset returns the cursor movement since the last call. The y offset is
// inverted since window coordinates grow downwards.
func (mt *MouseTracker) Offset(xpos, ypos float64) (xoffset, yoffset float32) {
	if !mt.seen {
		mt.lastX, mt.lastY = xpos, ypos
		mt.seen = true
	}
	xoffset = float32(xpos - mt.lastX)
	yoffset = float32(mt.lastY - ypos)
	mt.lastX, mt.lastY = xpos, ypos
	return xoffset, yoffset
}

// Reset makes the next call to Offset yield zero.
func (mt *MouseTracker) Reset() { mt.seen = false }
