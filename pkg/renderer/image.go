package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-raycaster/pkg/core"
)

// Image is a flat row-major buffer of 8-bit RGB pixels with the top
// row of the picture first. It implements image.Image so any standard
// encoder can consume it.
type Image struct {
	Width  int
	Height int
	Pix    []core.RGB
}

// NewImage allocates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]core.RGB, width*height),
	}
}

// Pixel returns the pixel at column x of row (row 0 is the top)
func (img *Image) Pixel(x, row int) core.RGB {
	return img.Pix[x+img.Width*row]
}

// ColorModel implements image.Image
func (img *Image) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image
func (img *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.Width, img.Height)
}

// At implements image.Image
func (img *Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(img.Bounds())) {
		return color.RGBA{}
	}
	p := img.Pixel(x, y)
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: 255}
}

// ToRGBA copies the buffer into an *image.RGBA
func (img *Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	for row := 0; row < img.Height; row++ {
		for x := 0; x < img.Width; x++ {
			p := img.Pixel(x, row)
			out.SetRGBA(x, row, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return out
}

// Equal reports whether two images have the same size and pixels
func (img *Image) Equal(other *Image) bool {
	if other == nil || img.Width != other.Width || img.Height != other.Height {
		return false
	}
	for i := range img.Pix {
		if img.Pix[i] != other.Pix[i] {
			return false
		}
	}
	return true
}
