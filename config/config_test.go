package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soypat/stilllife/glbuild"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("want 800x600 window, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Camera != [3]float32{0, 0, 3} {
		t.Errorf("unexpected camera start %v", cfg.Camera)
	}
	if cfg.PhongConfig() != glbuild.DefaultPhong {
		t.Errorf("default phong mismatch: %+v", cfg.PhongConfig())
	}
}

func TestDecode(t *testing.T) {
	const src = `
width = 1024
texture_dir = "assets"
camera = [1.0, 2.0, 5.0]

[phong]
ambient = 0.2
`
	cfg, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 1024 || cfg.Height != 600 {
		t.Errorf("want 1024x600, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.TextureDir != "assets" || cfg.Camera != [3]float32{1, 2, 5} {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Phong.Ambient != 0.2 || cfg.Phong.HighlightSize != glbuild.DefaultPhong.HighlightSize {
		t.Errorf("unexpected phong %+v", cfg.Phong)
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, src := range []string{
		"widht = 3\n",
		"width = -1\n",
		"texture_dir = \"\"\n",
		"[phong]\nhighlight_size = 0.0\n",
		"width = \"big\"\n",
	} {
		_, err := Decode(strings.NewReader(src))
		if err == nil {
			t.Errorf("expected error for %q", src)
		}
	}
}

func TestEncodeLoadRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.Title = "roundtrip"
	cfg.Silent = true
	var buf bytes.Buffer
	err := cfg.Encode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	filename := filepath.Join(t.TempDir(), "viewer.toml")
	err = os.WriteFile(filename, buf.Bytes(), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Load(filename)
	if err != nil {
		t.Fatal(err)
	}
	if got != cfg {
		t.Errorf("want %+v, got %+v", cfg, got)
	}
}
