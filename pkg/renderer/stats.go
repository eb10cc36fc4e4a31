package renderer

import (
	"image"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Total number of pixels in the frame
	RaysCast    int           // Primary rays traced so far
	HitPixels   int           // Pixels whose ray hit a shape
	MissPixels  int           // Pixels that got the background color
	Elapsed     time.Duration // Wall time of the render
}

func newRenderStats(totalPixels int) RenderStats {
	return RenderStats{TotalPixels: totalPixels}
}

// record adds one traced pixel to the statistics
func (s *RenderStats) record(hit bool) {
	s.RaysCast++
	if hit {
		s.HitPixels++
	} else {
		s.MissPixels++
	}
}

// Coverage returns the fraction of pixels that hit a shape
func (s RenderStats) Coverage() float64 {
	if s.RaysCast == 0 {
		return 0
	}
	return float64(s.HitPixels) / float64(s.RaysCast)
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an
// image in [0,1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// RGBA returns channels in [0, 65535]
			total += (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 65535.0
		}
	}
	return total / float64(pixels)
}
