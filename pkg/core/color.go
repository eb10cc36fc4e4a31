package core

import (
	"fmt"

	"github.com/chewxy/math32"
)

// QuantizeMode selects how out-of-range channels are mapped to 8 bits
type QuantizeMode int

const (
	// QuantizeClamp clamps each channel to [0,1] before scaling
	QuantizeClamp QuantizeMode = iota
	// QuantizeWrap truncates c*255 and keeps the low 8 bits, so values
	// outside [0,1] wrap around instead of saturating
	QuantizeWrap
)

// String returns the flag spelling of the mode
func (m QuantizeMode) String() string {
	switch m {
	case QuantizeClamp:
		return "clamp"
	case QuantizeWrap:
		return "wrap"
	default:
		return fmt.Sprintf("QuantizeMode(%d)", int(m))
	}
}

// ParseQuantizeMode parses "clamp" or "wrap"
func ParseQuantizeMode(s string) (QuantizeMode, error) {
	switch s {
	case "clamp", "":
		return QuantizeClamp, nil
	case "wrap":
		return QuantizeWrap, nil
	default:
		return QuantizeClamp, fmt.Errorf("unknown quantize mode %q: want clamp or wrap", s)
	}
}

// Color is a linear RGB color. Channels are nominally in [0,1] but
// arithmetic never clamps them.
type Color struct {
	R, G, B float32
}

// NewColor creates a new Color
func NewColor(r, g, b float32) Color {
	return Color{R: r, G: g, B: b}
}

// Black returns the zero color
func Black() Color {
	return Color{}
}

// Multiply returns the color scaled by a scalar
func (c Color) Multiply(scalar float32) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// MultiplyColor returns the component-wise product of two colors
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Add returns the sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Subtract returns the difference of two colors
func (c Color) Subtract(other Color) Color {
	return Color{c.R - other.R, c.G - other.G, c.B - other.B}
}

// RGB is an 8-bit per channel pixel
type RGB struct {
	R, G, B uint8
}

// ToBytes quantizes the color to 8 bits per channel
func (c Color) ToBytes(mode QuantizeMode) RGB {
	return RGB{
		R: quantize(c.R, mode),
		G: quantize(c.G, mode),
		B: quantize(c.B, mode),
	}
}

func quantize(c float32, mode QuantizeMode) uint8 {
	if math32.IsNaN(c) {
		return 0
	}
	if mode == QuantizeWrap {
		scaled := c * 255
		// Beyond int64 range the low byte is meaningless anyway
		if scaled >= 1<<62 || scaled <= -(1<<62) {
			return 0
		}
		return uint8(int64(scaled))
	}
	if c < 0 {
		c = 0
	} else if c > 1 {
		c = 1
	}
	return uint8(c * 255)
}
