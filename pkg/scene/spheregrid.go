package scene

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-raycaster/pkg/core"
)

// oklchToRGB converts OKLCH color values to linear RGB clamped to [0,1]
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float32) core.Color {
	hRad := h * math32.Pi / 180

	// OKLCH to OKLAB
	a := c * math32.Cos(hRad)
	b := c * math32.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewColor(clamp01(r), clamp01(g), clamp01(blue))
}

func clamp01(v float32) float32 {
	return math32.Max(0, math32.Min(1, v))
}

// NewSphereGridScene creates a wall of spheres facing the camera, hue
// varying across columns and chroma across rows
func NewSphereGridScene() *Scene {
	s := NewScene()
	s.CameraConfig = CameraConfig{Kind: CameraPinhole, VFov: 40, Width: 640, Height: 480}
	s.Background = core.NewColor(0.1, 0.1, 0.12)

	gridSize := 12
	depth := float32(-20)

	// Fit the grid inside the vertical field of view at the wall's depth
	targetSize := float32(12)
	spacing := targetSize / float32(gridSize-1)
	sphereRadius := spacing * 0.4

	baseLightness := float32(0.7)
	minChroma := float32(0.05)
	maxChroma := float32(0.25)

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float32(i)*spacing - targetSize/2
			y := float32(j)*spacing - targetSize/2

			hue := float32(i) / float32(gridSize-1) * 360
			chroma := minChroma + float32(j)/float32(gridSize-1)*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math32.Sin(float32(i+j)*0.5)

			s.AddSphere(core.NewVec3(x, y, depth), sphereRadius, oklchToRGB(lightness, chroma, hue))
		}
	}

	return s
}
