package scene

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/stilllife"
)

// Shape selects one of the shared meshes of a [stilllife.Set].
type Shape uint8

const (
	ShapeBox Shape = iota
	ShapePlane
	ShapeSphere
	ShapeCylinder
	ShapeTorus
	numShapes
)

// Shapes returns every shape in a stable order.
func Shapes() []Shape {
	return []Shape{ShapeBox, ShapePlane, ShapeSphere, ShapeCylinder, ShapeTorus}
}

func (s Shape) String() string {
	switch s {
	case ShapeBox:
		return "box"
	case ShapePlane:
		return "plane"
	case ShapeSphere:
		return "sphere"
	case ShapeCylinder:
		return "cylinder"
	case ShapeTorus:
		return "torus"
	}
	return "Shape(" + strconv.Itoa(int(s)) + ")"
}

// Mesh returns the mesh of set with shape s or nil if s is not a valid shape.
func (s Shape) Mesh(set stilllife.Set) *stilllife.Mesh {
	switch s {
	case ShapeBox:
		return set.Box
	case ShapePlane:
		return set.Plane
	case ShapeSphere:
		return set.Sphere
	case ShapeCylinder:
		return set.Cylinder
	case ShapeTorus:
		return set.Torus
	}
	return nil
}

// TextureID identifies one of the textures of the still life.
type TextureID uint8

const (
	NoTexture TextureID = iota
	TexGlass
	TexBottleCap
	TexDarkWood
	TexMetal
	TexMatteBlack
	TexArt
	TexPaper
	TexWallLight
	TexCanvas
	TexLogo
	numTextures
)

var textureFiles = [numTextures]string{
	TexGlass:      "Glass.png",
	TexBottleCap:  "BottleCap.png",
	TexDarkWood:   "DarkWood.png",
	TexMetal:      "Metal.png",
	TexMatteBlack: "MatteBlack.png",
	TexArt:        "Art.png",
	TexPaper:      "Paper.png",
	TexWallLight:  "WallLight.png",
	TexCanvas:     "Canvas.png",
	TexLogo:       "Logo.png",
}

// Textures returns every texture used by the still life in load order.
func Textures() []TextureID {
	ids := make([]TextureID, 0, numTextures-1)
	for id := NoTexture + 1; id < numTextures; id++ {
		ids = append(ids, id)
	}
	return ids
}

// Filename returns the base name of the image file of the texture within the
// texture directory. It returns an empty string for NoTexture.
func (t TextureID) Filename() string {
	if t >= numTextures {
		return ""
	}
	return textureFiles[t]
}

func (t TextureID) String() string {
	if t == NoTexture {
		return "none"
	}
	if name := t.Filename(); name != "" {
		return name
	}
	return "TextureID(" + strconv.Itoa(int(t)) + ")"
}

// Object is a single draw of a shared mesh.
type Object struct {
	Name    string
	Shape   Shape
	Texture TextureID
	// Overlay is composited over Texture on the lateral surface of the mesh
	// wherever the overlay is not fully transparent.
	Overlay TextureID
	Local   Transform
}

// Group is a set of objects placed together by a parent transform.
type Group struct {
	Name    string
	Parent  Transform
	Objects []Object
}

// Lighting holds the per frame uniforms shared by every object.
type Lighting struct {
	ObjectColor mgl32.Vec3
	LightColor  mgl32.Vec3
	LightPos    mgl32.Vec3
	LightColor2 mgl32.Vec3
	LightPos2   mgl32.Vec3
	UVScale     mgl32.Vec2
}

// DefaultLighting is a dim white key light in front of the scene and a yellow
// fill light behind it.
func DefaultLighting() Lighting {
	return Lighting{
		ObjectColor: mgl32.Vec3{1, 1, 1},
		LightColor:  mgl32.Vec3{0.5, 0.5, 0.5},
		LightPos:    mgl32.Vec3{0, 0.5, 10},
		LightColor2: mgl32.Vec3{1, 1, 0},
		LightPos2:   mgl32.Vec3{0, -1, -10},
		UVScale:     mgl32.Vec2{1, 1},
	}
}

var (
	xAxis    = mgl32.Vec3{1, 0, 0}
	yAxis    = mgl32.Vec3{0, 1, 0}
	diagAxis = mgl32.Vec3{1, 1, 1}
)

func tf(tx, ty, tz, angle float32, axis mgl32.Vec3, sx, sy, sz float32) Transform {
	return Transform{
		Translation: mgl32.Vec3{tx, ty, tz},
		Angle:       angle,
		Axis:        axis,
		Scale:       mgl32.Vec3{sx, sy, sz},
	}
}

// StillLife returns the objects of the scene in draw order. Angles are in
// radians. The returned slice is freshly allocated on every call.
func StillLife() []Group {
	return []Group{
		{
			Name:   "bottle",
			Parent: tf(0, -1, 0, 190, yAxis, 0.09, 0.09, 0.09),
			Objects: []Object{
				{Name: "base", Shape: ShapeCylinder, Texture: TexGlass, Overlay: TexLogo, Local: tf(0, 0, 0, 0, diagAxis, 3, 10, 3)},
				{Name: "neck", Shape: ShapeCylinder, Texture: TexGlass, Local: tf(0, 12, 0, 0, diagAxis, 1.6, 7, 1.6)},
				{Name: "lid", Shape: ShapeCylinder, Texture: TexBottleCap, Local: tf(0, 19, 0, 0, diagAxis, 1.75, 0.5, 1.75)},
				{Name: "shoulder", Shape: ShapeSphere, Texture: TexGlass, Local: tf(0, 10, 0, 0, diagAxis, 3, 3, 3)},
			},
		},
		{
			Name:   "binder",
			Parent: tf(2.5, 0.101, 0, -0.85, yAxis, 2, 2, 2),
			Objects: []Object{
				{Name: "ring-middle", Shape: ShapeTorus, Texture: TexMetal, Local: tf(-0.386, 0, 0, 1.57, xAxis, 0.08, 0.08, 0.08)},
				{Name: "ring-top", Shape: ShapeTorus, Texture: TexMetal, Local: tf(-0.386, 0.38, 0, 1.57, xAxis, 0.08, 0.08, 0.08)},
				{Name: "ring-bottom", Shape: ShapeTorus, Texture: TexMetal, Local: tf(-0.386, -0.4, 0, 1.57, xAxis, 0.08, 0.08, 0.08)},
				{Name: "ring-holder", Shape: ShapeBox, Texture: TexMetal, Local: tf(-0.41, 0, -0.08, 0.3, yAxis, 0.13, 1, 0.02)},
				{Name: "spine", Shape: ShapeBox, Texture: TexMatteBlack, Local: tf(-0.42, 0, -0.087, 0.3, yAxis, 0.2, 1.1, 0.01)},
				{Name: "back", Shape: ShapeBox, Texture: TexMatteBlack, Local: tf(0.045, 0, -0.115, 0, diagAxis, 0.75, 1.1, 0.01)},
				{Name: "front", Shape: ShapeBox, Texture: TexMatteBlack, Local: tf(-0.76, 0, 0.22, -2.3, yAxis, 0.75, 1.1, 0.01)},
				{Name: "paper", Shape: ShapeBox, Texture: TexPaper, Local: tf(0, 0, 0, 0, diagAxis, 0.7, 1, 0.001)},
			},
		},
		{
			Name:   "painting",
			Parent: Identity(),
			Objects: []Object{
				{Name: "canvas", Shape: ShapeBox, Texture: TexCanvas, Local: tf(-1, 0, -1, 0, yAxis, 1.5, 2, 0.3)},
				{Name: "art", Shape: ShapeBox, Texture: TexArt, Local: tf(-1, 0, -0.85, 0, yAxis, 1.5, 2, 0.001)},
			},
		},
		{
			Name:   "wall-light",
			Parent: tf(1, 1.7, -1, 0, yAxis, 1, 1, 0.4),
			Objects: []Object{
				{Name: "base", Shape: ShapeBox, Texture: TexMetal, Local: tf(-1, 0, -1, 0, yAxis, 1.8, 0.3, 0.3)},
				{Name: "light", Shape: ShapeBox, Texture: TexWallLight, Local: tf(-0.85, 0, -0.85, 0, yAxis, 1.4, 0.25, 0.001)},
				{Name: "button", Shape: ShapeSphere, Texture: TexWallLight, Local: tf(-1.7, 0, -0.85, 0, diagAxis, 0.05, 0.05, 0.05)},
			},
		},
		{
			Name:   "floor",
			Parent: Identity(),
			Objects: []Object{
				{Name: "plane", Shape: ShapePlane, Texture: TexDarkWood, Local: tf(0.7, -1, 0, 0, diagAxis, 3, 1, 1.5)},
			},
		},
	}
}
