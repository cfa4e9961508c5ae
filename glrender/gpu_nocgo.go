//go:build tinygo || !cgo

package glrender

import (
	"errors"
	"image"

	"github.com/soypat/stilllife"
	"github.com/soypat/stilllife/glbuild"
)

var errNoCGO = errors.New("OpenGL rendering requires CGo and is not supported on TinyGo")

type Mesh struct{}

func NewMesh(m *stilllife.Mesh) (*Mesh, error) { return nil, errNoCGO }

func (gm *Mesh) Delete() {}

type Texture struct{}

func NewTexture(img *image.NRGBA) (*Texture, error) { return nil, errNoCGO }

func LoadTexture(filename string) (*Texture, error) { return nil, errNoCGO }

func (tex *Texture) Delete() {}

type Program struct{}

func NewProgram(p *glbuild.Programmer) (*Program, error) { return nil, errNoCGO }

func (p *Program) Delete() {}

type Device struct{}

func NewDevice(p *glbuild.Programmer, set stilllife.Set, textureDir string) (*Device, error) {
	return nil, errNoCGO
}

func (d *Device) Delete() {}
