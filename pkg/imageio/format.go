package imageio

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/df07/go-raycaster/pkg/renderer"
)

// Format names an output image encoding
type Format string

const (
	FormatTGA Format = "tga"
	FormatPNG Format = "png"
	FormatBMP Format = "bmp"
)

var (
	// ErrUnknownFormat is returned for unsupported format names or extensions
	ErrUnknownFormat = errors.New("unknown image format")
	// ErrImageTooLarge is returned when dimensions do not fit the format header
	ErrImageTooLarge = errors.New("image too large for format")
	// ErrFormatMismatch is returned when the data decodes as a different format than requested
	ErrFormatMismatch = errors.New("image data does not match format")
)

// Formats lists the supported encodings
func Formats() []Format {
	return []Format{FormatTGA, FormatPNG, FormatBMP}
}

// ParseFormat accepts a format name, case-insensitive, with or without a leading dot
func ParseFormat(name string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(name), "."))
	switch f {
	case FormatTGA, FormatPNG, FormatBMP:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatBMP:
		return "image/bmp"
	default:
		return "image/x-tga"
	}
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img *renderer.Image, format Format) error {
	switch format {
	case FormatTGA:
		return EncodeTGA(w, img)
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// SaveFile encodes img into path, choosing the format from the extension
func SaveFile(path string, img *renderer.Image) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := Encode(file, img, format); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
