package imageio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/renderer"
)

// tgaHeader is the 18-byte header of an uncompressed true-color TGA file
type tgaHeader struct {
	IDLength     uint8
	ColorMapType uint8
	ImageType    uint8
	ColorMap     [5]uint8
	XOrigin      uint16
	YOrigin      uint16
	Width        uint16
	Height       uint16
	PixelDepth   uint8
	Descriptor   uint8
}

const (
	tgaTrueColor = 2
	tgaDepth     = 24
	tgaTopLeft   = 32 // Descriptor bit 5: rows run top to bottom
)

// EncodeTGA writes img as an uncompressed 24-bit TGA with a top-left
// origin. Pixels are written in buffer order as BGR triples.
func EncodeTGA(w io.Writer, img *renderer.Image) error {
	if img.Width > math.MaxUint16 || img.Height > math.MaxUint16 {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrImageTooLarge, img.Width, img.Height, math.MaxUint16)
	}

	header := tgaHeader{
		ImageType:  tgaTrueColor,
		Width:      uint16(img.Width),
		Height:     uint16(img.Height),
		PixelDepth: tgaDepth,
		Descriptor: tgaTopLeft,
	}

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("failed to write TGA header: %w", err)
	}
	for _, p := range img.Pix {
		if _, err := bw.Write([]byte{p.B, p.G, p.R}); err != nil {
			return fmt.Errorf("failed to write TGA pixels: %w", err)
		}
	}
	return bw.Flush()
}

// DecodeTGA reads an uncompressed 24-bit TGA. Bottom-left origin files
// are flipped so the result is always stored top row first.
func DecodeTGA(r io.Reader) (*renderer.Image, error) {
	var header tgaHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read TGA header: %w", err)
	}
	if header.ImageType != tgaTrueColor || header.PixelDepth != tgaDepth || header.ColorMapType != 0 {
		return nil, errors.New("unsupported TGA: only uncompressed 24-bit true color is read")
	}
	if header.IDLength > 0 {
		if _, err := io.CopyN(io.Discard, r, int64(header.IDLength)); err != nil {
			return nil, fmt.Errorf("failed to skip TGA image ID: %w", err)
		}
	}

	width, height := int(header.Width), int(header.Height)
	data := make([]byte, width*height*3)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("failed to read TGA pixels: %w", err)
	}

	img := renderer.NewImage(width, height)
	topLeft := header.Descriptor&tgaTopLeft != 0
	for i := 0; i < width*height; i++ {
		x, row := i%width, i/width
		if !topLeft {
			row = height - row - 1
		}
		img.Pix[x+width*row] = core.RGB{R: data[3*i+2], G: data[3*i+1], B: data[3*i]}
	}
	return img, nil
}
