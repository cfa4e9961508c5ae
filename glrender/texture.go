package glrender

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeImage decodes a PNG, JPEG, BMP, TIFF or WebP image and converts it to
// NRGBA with its origin at (0,0).
func DecodeImage(r io.Reader) (*image.NRGBA, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	bounds := src.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("empty image %v", bounds)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Copy(dst, image.Point{}, src, bounds, draw.Src, nil)
	return dst, nil
}

// FlipVertical mirrors img about its horizontal center line in place.
// Image rows run top to bottom while OpenGL texture rows run bottom to top.
func FlipVertical(img *image.NRGBA) {
	h := img.Rect.Dy()
	rowLen := 4 * img.Rect.Dx()
	tmp := make([]byte, rowLen)
	for top, bot := 0, h-1; top < bot; top, bot = top+1, bot-1 {
		rowTop := img.Pix[top*img.Stride : top*img.Stride+rowLen]
		rowBot := img.Pix[bot*img.Stride : bot*img.Stride+rowLen]
		copy(tmp, rowTop)
		copy(rowTop, rowBot)
		copy(rowBot, tmp)
	}
}

// LoadImage reads an image file and returns it flipped, ready for upload as a texture.
func LoadImage(filename string) (*image.NRGBA, error) {
	fp, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	img, err := DecodeImage(fp)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filename, err)
	}
	FlipVertical(img)
	return img, nil
}
