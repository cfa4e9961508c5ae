package glrender

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/stilllife"
	"github.com/soypat/stilllife/scene"
	"golang.org/x/image/bmp"
)

func TestFlipVertical(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	FlipVertical(img)
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			got := img.NRGBAAt(x, y)
			if got.R != uint8(x) || got.G != uint8(2-y) {
				t.Errorf("pixel (%d,%d): want row %d, got %v", x, y, 2-y, got)
			}
		}
	}
	// Even row count.
	img = image.NewNRGBA(image.Rect(0, 0, 1, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 1, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{R: 2, A: 255})
	FlipVertical(img)
	if img.NRGBAAt(0, 0).R != 2 || img.NRGBAAt(0, 1).R != 1 {
		t.Error("rows not swapped")
	}
}

func TestDecodeImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 14, 22))
	for i := range src.Pix {
		src.Pix[i] = 255
	}
	src.Set(10, 20, color.RGBA{R: 255, A: 255})
	src.Set(13, 21, color.RGBA{B: 255, A: 255})
	for _, encode := range []func(io.Writer, image.Image) error{png.Encode, bmp.Encode} {
		var buf bytes.Buffer
		err := encode(&buf, src)
		if err != nil {
			t.Fatal(err)
		}
		img, err := DecodeImage(&buf)
		if err != nil {
			t.Fatal(err)
		}
		if img.Rect != image.Rect(0, 0, 4, 2) {
			t.Fatalf("want image at origin, got %v", img.Rect)
		}
		if c := img.NRGBAAt(0, 0); c.R != 255 || c.G != 0 || c.A != 255 {
			t.Errorf("unexpected top left pixel %v", c)
		}
		if c := img.NRGBAAt(3, 1); c.B != 255 || c.R != 0 || c.A != 255 {
			t.Errorf("unexpected bottom right pixel %v", c)
		}
	}
	_, err := DecodeImage(bytes.NewReader([]byte("not an image")))
	if err == nil {
		t.Error("expected error decoding garbage")
	}
}

func TestLoadImageFlipped(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 7, A: 255})
	src.SetNRGBA(0, 1, color.NRGBA{R: 9, A: 255})
	filename := filepath.Join(t.TempDir(), "tex.png")
	fp, err := os.Create(filename)
	if err != nil {
		t.Fatal(err)
	}
	err = png.Encode(fp, src)
	fp.Close()
	if err != nil {
		t.Fatal(err)
	}
	img, err := LoadImage(filename)
	if err != nil {
		t.Fatal(err)
	}
	if img.NRGBAAt(0, 0).R != 9 || img.NRGBAAt(0, 1).R != 7 {
		t.Error("loaded image not flipped")
	}
	_, err = LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSceneRenderer(t *testing.T) {
	var bld stilllife.Builder
	set := bld.NewSet()
	groups := scene.StillLife()
	sr, err := NewSceneRenderer(set, groups)
	if err != nil {
		t.Fatal(err)
	}
	want := 0
	for _, g := range groups {
		for _, obj := range g.Objects {
			want += obj.Shape.Mesh(set).NumTriangles()
		}
	}
	triangles, err := RenderAll(sr, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(triangles) != want {
		t.Fatalf("want %d triangles, got %d", want, len(triangles))
	}
	// Reading with a tiny buffer yields the same triangles.
	sr.Reset()
	buf := make([]ms3.Triangle, 7)
	var got []ms3.Triangle
	for {
		n, err := sr.ReadTriangles(buf, nil)
		got = append(got, buf[:n]...)
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatal(err)
		}
	}
	if len(got) != len(triangles) || got[len(got)-1] != triangles[len(triangles)-1] {
		t.Error("chunked read mismatch")
	}
	// Floor plane is the last object and spans x in 0.7±3 at y=-1.
	last := triangles[len(triangles)-1]
	for _, v := range last {
		if mgl32.Abs(v.Y+1) > 1e-5 || v.X < 0.7-3-1e-5 || v.X > 0.7+3+1e-5 {
			t.Errorf("floor vertex %v outside expected bounds", v)
		}
	}
}

func TestSceneRendererMissingMesh(t *testing.T) {
	_, err := NewSceneRenderer(stilllife.Set{}, scene.StillLife())
	if err == nil {
		t.Error("expected error for empty mesh set")
	}
}

func TestWriteBinarySTL(t *testing.T) {
	triangles := []ms3.Triangle{
		{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
		{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 2}, {X: 2, Y: 0, Z: 0}},
	}
	var buf bytes.Buffer
	n, err := WriteBinarySTL(&buf, triangles)
	if err != nil {
		t.Fatal(err)
	}
	const want = 80 + 4 + 2*50
	if n != want || buf.Len() != want {
		t.Fatalf("want %d bytes, got n=%d len=%d", want, n, buf.Len())
	}
	b := buf.Bytes()
	if got := binary.LittleEndian.Uint32(b[80:]); got != 2 {
		t.Errorf("want 2 triangles in header, got %d", got)
	}
	readVec := func(off int) ms3.Vec {
		return ms3.Vec{
			X: math.Float32frombits(binary.LittleEndian.Uint32(b[off:])),
			Y: math.Float32frombits(binary.LittleEndian.Uint32(b[off+4:])),
			Z: math.Float32frombits(binary.LittleEndian.Uint32(b[off+8:])),
		}
	}
	for i, wantNormal := range []ms3.Vec{{Z: 1}, {Y: 1}} {
		off := 84 + 50*i
		if got := readVec(off); got != wantNormal {
			t.Errorf("triangle %d: want normal %v, got %v", i, wantNormal, got)
		}
		for j := 0; j < 3; j++ {
			if got := readVec(off + 12*(j+1)); got != triangles[i][j] {
				t.Errorf("triangle %d vertex %d: want %v, got %v", i, j, triangles[i][j], got)
			}
		}
	}
}
