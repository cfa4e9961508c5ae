package glbuild

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// VersionStr is the GLSL header of every program. OpenGL 4.1 core is the
// newest version available on all desktop platforms.
const VersionStr = "#version 410 core\n"

// Vertex attribute locations. Match the interleaved layout of stilllife.Mesh.
const (
	AttribPosition = 0
	AttribNormal   = 1
	AttribUV       = 2
)

// Uniform names of the lit textured program.
const (
	UniformModel            = "model"
	UniformView             = "view"
	UniformProjection       = "projection"
	UniformObjectColor      = "objectColor"
	UniformLightColor       = "lightColor"
	UniformLightPos         = "lightPos"
	UniformLightColor2      = "lightColor2"
	UniformLightPos2        = "lightPos2"
	UniformViewPosition     = "viewPosition"
	UniformUVScale          = "uvScale"
	UniformMultipleTextures = "multipleTextures"
	UniformTexture          = "uTexture"
	UniformTextureExtra     = "uTextureExtra"
)

// Texture units sampled by uTexture and uTextureExtra respectively.
const (
	BaseTextureUnit    = 0
	OverlayTextureUnit = 9
)

// Uniforms lists every uniform declared by the programs written by [Programmer].
func Uniforms() []string {
	return []string{
		UniformModel, UniformView, UniformProjection,
		UniformObjectColor,
		UniformLightColor, UniformLightPos,
		UniformLightColor2, UniformLightPos2,
		UniformViewPosition, UniformUVScale, UniformMultipleTextures,
		UniformTexture, UniformTextureExtra,
	}
}

// PhongConfig holds the constants baked into the fragment shader.
// Light 1 is the key light with a tight bright highlight, light 2 a dim fill.
type PhongConfig struct {
	Ambient            float32
	SpecularIntensity  float32
	HighlightSize      float32
	SpecularIntensity2 float32
	HighlightSize2     float32
}

// DefaultPhong are the lighting constants of the still life.
var DefaultPhong = PhongConfig{
	Ambient:            0.1,
	SpecularIntensity:  1,
	HighlightSize:      7,
	SpecularIntensity2: 0.01,
	HighlightSize2:     3,
}

// Programmer writes the vertex and fragment shader sources of the still life program.
type Programmer struct {
	cfg     PhongConfig
	scratch []byte
}

// NewDefaultProgrammer returns a Programmer using [DefaultPhong].
func NewDefaultProgrammer() *Programmer {
	p, _ := NewProgrammer(DefaultPhong)
	return p
}

// NewProgrammer returns a Programmer with the given lighting constants.
func NewProgrammer(cfg PhongConfig) (*Programmer, error) {
	switch {
	case cfg.Ambient < 0 || cfg.SpecularIntensity < 0 || cfg.SpecularIntensity2 < 0:
		return nil, errors.New("negative light intensity")
	case cfg.HighlightSize <= 0 || cfg.HighlightSize2 <= 0:
		return nil, errors.New("highlight size must be positive")
	}
	return &Programmer{cfg: cfg, scratch: make([]byte, 0, 4096)}, nil
}

// WriteVertex writes the vertex shader to w. It transforms positions to clip
// space and passes world space position, normal and UV to the fragment stage.
func (p *Programmer) WriteVertex(w io.Writer) (int, error) {
	b := append(p.scratch[:0], VersionStr...)
	b = fmt.Appendf(b, `
layout(location = %d) in vec3 position;
layout(location = %d) in vec3 normal;
layout(location = %d) in vec2 textureCoordinate;

out vec3 vertexNormal;
out vec3 vertexFragmentPos;
out vec2 vertexTextureCoordinate;

uniform mat4 %s;
uniform mat4 %s;
uniform mat4 %s;

void main() {
	gl_Position = projection * view * model * vec4(position, 1.0);
	vertexFragmentPos = vec3(model * vec4(position, 1.0));
	// Normals in world space without translation.
	vertexNormal = mat3(transpose(inverse(model))) * normal;
	vertexTextureCoordinate = textureCoordinate;
}
`, AttribPosition, AttribNormal, AttribUV, UniformModel, UniformView, UniformProjection)
	p.scratch = b
	return w.Write(b)
}

// WriteFragment writes the fragment shader to w. It implements Phong shading with two
// point lights. When multipleTextures is set the overlay texture replaces the base
// texture wherever the overlay's alpha is non-zero.
func (p *Programmer) WriteFragment(w io.Writer) (int, error) {
	b := append(p.scratch[:0], VersionStr...)
	b = append(b, `
in vec3 vertexNormal;
in vec3 vertexFragmentPos;
in vec2 vertexTextureCoordinate;
out vec4 fragmentColor;

uniform vec3 objectColor;
uniform vec3 lightColor;
uniform vec3 lightPos;
uniform vec3 lightColor2;
uniform vec3 lightPos2;
uniform vec3 viewPosition;
uniform sampler2D uTexture;
uniform sampler2D uTextureExtra;
uniform bool multipleTextures;
uniform vec2 uvScale;

`...)
	b = AppendFloatDecl(b, "const float ambientStrength", p.cfg.Ambient)
	b = AppendFloatDecl(b, "const float specularIntensity", p.cfg.SpecularIntensity)
	b = AppendFloatDecl(b, "const float highlightSize", p.cfg.HighlightSize)
	b = AppendFloatDecl(b, "const float specularIntensity2", p.cfg.SpecularIntensity2)
	b = AppendFloatDecl(b, "const float highlightSize2", p.cfg.HighlightSize2)
	b = append(b, `
void main() {
	vec3 ambient = ambientStrength * vec3(1.0, 1.0, 1.0);
	vec3 norm = normalize(vertexNormal);

	vec3 lightDirection = normalize(lightPos - vertexFragmentPos);
	vec3 diffuse = max(dot(norm, lightDirection), 0.0) * lightColor;
	vec3 lightDirection2 = normalize(lightPos2 - vertexFragmentPos);
	vec3 diffuse2 = max(dot(norm, lightDirection2), 0.0) * lightColor2;

	vec3 viewDir = normalize(viewPosition - vertexFragmentPos);
	vec3 reflectDir = reflect(-lightDirection, norm);
	vec3 reflectDir2 = reflect(-lightDirection2, norm);
	vec3 specular = specularIntensity * pow(max(dot(viewDir, reflectDir), 0.0), highlightSize) * lightColor;
	vec3 specular2 = specularIntensity2 * pow(max(dot(viewDir, reflectDir2), 0.0), highlightSize2) * lightColor2;

	vec3 light1 = ambient + diffuse + specular;
	vec3 light2 = ambient + diffuse2 + specular2;

	vec4 textureColor = texture(uTexture, vertexTextureCoordinate * uvScale);
	fragmentColor = vec4(light1*textureColor.xyz + light2*textureColor.xyz, 1.0);
	if (multipleTextures) {
		vec4 extraTexture = texture(uTextureExtra, vertexTextureCoordinate * uvScale);
		if (extraTexture.a != 0.0) {
			fragmentColor = vec4(light1*extraTexture.xyz + light2*extraTexture.xyz, 1.0);
		}
	}
}
`...)
	p.scratch = b
	return w.Write(b)
}

// ShaderSources returns the vertex and fragment sources null terminated, ready
// to be passed to the GL driver.
func (p *Programmer) ShaderSources() (vertex, fragment string, err error) {
	var buf bytes.Buffer
	_, err = p.WriteVertex(&buf)
	if err != nil {
		return "", "", err
	}
	buf.WriteByte(0)
	vertex = buf.String()
	buf.Reset()
	_, err = p.WriteFragment(&buf)
	if err != nil {
		return "", "", err
	}
	buf.WriteByte(0)
	fragment = buf.String()
	return vertex, fragment, nil
}

// AppendFloatDecl appends a GLSL float declaration `floatVarname=v;` to b.
// floatVarname may carry qualifiers, i.e: "const float x".
func AppendFloatDecl(b []byte, floatVarname string, v float32) []byte {
	b = append(b, floatVarname...)
	b = append(b, '=')
	b = AppendFloat(b, '-', '.', v)
	b = append(b, ';', '\n')
	return b
}

// AppendFloat appends v to b with the given negative sign and decimal separator.
// The shortest representation that round trips is used and a decimal point is
// always present so the literal is a GLSL float.
func AppendFloat(b []byte, neg, decimal byte, v float32) []byte {
	start := len(b)
	b = strconv.AppendFloat(b, float64(v), 'f', -1, 32)
	idx := bytes.IndexByte(b[start:], '.')
	if idx < 0 {
		b = append(b, decimal, '0')
	} else if decimal != '.' {
		b[start+idx] = decimal
	}
	if b[start] == '-' {
		b[start] = neg
	}
	return b
}
