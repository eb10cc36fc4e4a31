package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/material"
)

// ShadingMode selects how a hit is turned into a color
type ShadingMode int

const (
	// ShadingFacing scales the hit color by the cosine between the view
	// vector and the normal. Lights are ignored and the cosine is not
	// clamped, so surfaces facing away come out negative.
	ShadingFacing ShadingMode = iota
	// ShadingLambert sums ambient and point light contributions through
	// a Lambertian BRDF with kd = 1
	ShadingLambert
)

// String returns the flag spelling of the mode
func (m ShadingMode) String() string {
	switch m {
	case ShadingFacing:
		return "facing"
	case ShadingLambert:
		return "lambert"
	default:
		return fmt.Sprintf("ShadingMode(%d)", int(m))
	}
}

// ParseShadingMode parses "facing" or "lambert"
func ParseShadingMode(s string) (ShadingMode, error) {
	switch s {
	case "facing", "":
		return ShadingFacing, nil
	case "lambert":
		return ShadingLambert, nil
	default:
		return ShadingFacing, fmt.Errorf("unknown shading mode %q: want facing or lambert", s)
	}
}

// Config contains rendering configuration
type Config struct {
	Background core.Color        // Color for rays that hit nothing
	Quantize   core.QuantizeMode // How colors are mapped to 8 bits
	Shading    ShadingMode       // How hits are shaded
	TMin       float32           // Lower bound of the ray interval
	TMax       float32           // Initial upper bound of the ray interval
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Background: core.NewColor(0, 0.4, 0.8),
		Quantize:   core.QuantizeClamp,
		Shading:    ShadingFacing,
		TMin:       1e-5,
		TMax:       10000,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetShapes() []geometry.Shape
	GetLights() []lights.Light
}

// Raytracer is the render context: one camera, one read-only scene and
// the configuration. Every pixel depends only on these and its own
// coordinates.
type Raytracer struct {
	scene  Scene
	camera Camera
	config Config
}

// NewRaytracer creates a new raytracer with the default configuration
func NewRaytracer(scene Scene, camera Camera) *Raytracer {
	return &Raytracer{
		scene:  scene,
		camera: camera,
		config: DefaultConfig(),
	}
}

// SetConfig replaces the rendering configuration
func (rt *Raytracer) SetConfig(config Config) {
	rt.config = config
}

// Config returns the rendering configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// Scene returns the scene being rendered
func (rt *Raytracer) Scene() Scene {
	return rt.scene
}

// Camera returns the camera rays are generated from
func (rt *Raytracer) Camera() Camera {
	return rt.camera
}

// TraceRay returns the shaded color for a ray and whether it hit anything
func (rt *Raytracer) TraceRay(ray core.Ray) (core.Color, bool) {
	rec, ok := rt.Intersect(ray)
	if !ok {
		return rt.config.Background, false
	}
	return rt.Shade(ray, rec), true
}

// Intersect returns the nearest hit along the ray within the configured interval
func (rt *Raytracer) Intersect(ray core.Ray) (geometry.ShadeRec, bool) {
	return geometry.ClosestHit(rt.scene.GetShapes(), ray, rt.config.TMin, rt.config.TMax)
}

// Shade evaluates the configured shading model at a hit
func (rt *Raytracer) Shade(ray core.Ray, rec geometry.ShadeRec) core.Color {
	switch rt.config.Shading {
	case ShadingLambert:
		return rt.shadeLambert(ray, rec)
	default:
		return rec.Color.Multiply(ray.Direction.Negate().Dot(rec.Normal))
	}
}

// shadeLambert shades the hit through a Lambertian BRDF with kd = 1:
// rho for ambient light and f times the cosine for point lights. No
// shadow rays are cast.
func (rt *Raytracer) shadeLambert(ray core.Ray, rec geometry.ShadeRec) core.Color {
	brdf := material.NewLambertian(rec.Color)
	wo := ray.Direction.Negate()

	total := core.Black()
	for _, light := range rt.scene.GetLights() {
		radiance := light.Radiance(rec)
		switch light.(type) {
		case *lights.AmbientLight:
			total = total.Add(brdf.Rho(wo).MultiplyColor(radiance))
		case *lights.PointLight:
			wi := light.Direction(rec)
			if cosine := rec.Normal.Dot(wi); cosine > 0 {
				total = total.Add(brdf.F(wi, wo).MultiplyColor(radiance).Multiply(cosine))
			}
		}
	}
	return total
}

// Render renders the whole frame
func (rt *Raytracer) Render() (*Image, RenderStats) {
	img, stats, _ := rt.RenderContext(context.Background())
	return img, stats
}

// RenderContext renders the whole frame, checking for cancellation
// between rows. The image is only returned when every pixel was written.
func (rt *Raytracer) RenderContext(ctx context.Context) (*Image, RenderStats, error) {
	width, height := rt.camera.Width(), rt.camera.Height()
	img := NewImage(width, height)
	stats := newRenderStats(width * height)
	start := time.Now()

	for y := 0; y < height; y++ {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		for x := 0; x < width; x++ {
			ray := rt.camera.Ray(x, y)
			color, hit := rt.TraceRay(ray)
			stats.record(hit)

			// Scan order is bottom-up, the buffer is top row first
			img.Pix[x+width*(height-y-1)] = color.ToBytes(rt.config.Quantize)
		}
	}

	stats.Elapsed = time.Since(start)
	core.Logger().Debug("render complete",
		"width", width,
		"height", height,
		"shapes", len(rt.scene.GetShapes()),
		"hits", stats.HitPixels,
		"elapsed", stats.Elapsed)

	return img, stats, nil
}
