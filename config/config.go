// Package config holds the configuration of the still life viewer.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/soypat/stilllife/glbuild"
)

// Config configures the viewer window, assets and lighting constants.
type Config struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	// TextureDir is the directory the scene textures are loaded from.
	TextureDir string `toml:"texture_dir"`
	// Silent suppresses informational logging.
	Silent bool `toml:"silent"`
	// Camera is the initial camera position.
	Camera [3]float32 `toml:"camera"`
	Phong  Phong      `toml:"phong"`
}

// Phong holds the shading constants of the fragment shader.
type Phong struct {
	Ambient            float32 `toml:"ambient"`
	SpecularIntensity  float32 `toml:"specular_intensity"`
	HighlightSize      float32 `toml:"highlight_size"`
	SpecularIntensity2 float32 `toml:"specular_intensity2"`
	HighlightSize2     float32 `toml:"highlight_size2"`
}

// Default returns the configuration the viewer runs with when no file is given.
func Default() Config {
	p := glbuild.DefaultPhong
	return Config{
		Width:      800,
		Height:     600,
		Title:      "Still Life",
		TextureDir: "resources/textures",
		Camera:     [3]float32{0, 0, 3},
		Phong: Phong{
			Ambient:            p.Ambient,
			SpecularIntensity:  p.SpecularIntensity,
			HighlightSize:      p.HighlightSize,
			SpecularIntensity2: p.SpecularIntensity2,
			HighlightSize2:     p.HighlightSize2,
		},
	}
}

// Load reads a TOML configuration file. Fields missing from the file keep
// their default value. Unknown keys are an error.
func Load(filename string) (Config, error) {
	fp, err := os.Open(filename)
	if err != nil {
		return Config{}, err
	}
	defer fp.Close()
	cfg, err := Decode(fp)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", filename, err)
	}
	return cfg, nil
}

// Decode reads a TOML configuration from r over the defaults and validates it.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	err := dec.Decode(&cfg)
	if err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, errors.New(strict.String())
		}
		return Config{}, err
	}
	err = cfg.Validate()
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg to w as TOML.
func (cfg Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Validate checks the configuration is usable.
func (cfg Config) Validate() error {
	switch {
	case cfg.Width <= 0 || cfg.Height <= 0:
		return fmt.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height)
	case cfg.TextureDir == "":
		return errors.New("empty texture directory")
	}
	_, err := glbuild.NewProgrammer(cfg.PhongConfig())
	return err
}

// PhongConfig returns the shader constants of the configuration.
func (cfg Config) PhongConfig() glbuild.PhongConfig {
	return glbuild.PhongConfig{
		Ambient:            cfg.Phong.Ambient,
		SpecularIntensity:  cfg.Phong.SpecularIntensity,
		HighlightSize:      cfg.Phong.HighlightSize,
		SpecularIntensity2: cfg.Phong.SpecularIntensity2,
		HighlightSize2:     cfg.Phong.HighlightSize2,
	}
}
