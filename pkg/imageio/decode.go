package imageio

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/renderer"
)

// Decode reads an image in the given format into an 8-bit RGB buffer.
// Alpha is dropped.
func Decode(r io.Reader, format Format) (*renderer.Image, error) {
	switch format {
	case FormatTGA:
		return DecodeTGA(r)
	case FormatPNG, FormatBMP:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	// PNG and BMP register with image.Decode when their encoders are imported
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if Format(name) != format {
		return nil, fmt.Errorf("%w: got %s, want %s", ErrFormatMismatch, name, format)
	}

	bounds := img.Bounds()
	out := renderer.NewImage(bounds.Dx(), bounds.Dy())
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns 16-bit channels
			out.Pix[x+out.Width*y] = core.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
		}
	}
	return out, nil
}

// LoadFile reads an image file, choosing the decoder from the extension
func LoadFile(path string) (*renderer.Image, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	return Decode(file, format)
}
