package renderer

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/chewxy/math32"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
)

// MockScene implements Scene for testing
type MockScene struct {
	shapes []geometry.Shape
	lights []lights.Light
}

func (m MockScene) GetShapes() []geometry.Shape { return m.shapes }
func (m MockScene) GetLights() []lights.Light   { return m.lights }

var background = DefaultConfig().Background.ToBytes(core.QuantizeClamp)

func TestRaytracer_OrthographicSphereDisk(t *testing.T) {
	const (
		size   = 500
		radius = 150
	)
	scene := MockScene{shapes: []geometry.Shape{
		geometry.NewSphere(core.NewVec3(250, 250, -1000), radius, core.NewColor(1, 0, 0)),
	}}
	raytracer := NewRaytracer(scene, NewOrthographicCamera(size, size))

	img, stats := raytracer.Render()

	if len(img.Pix) != size*size {
		t.Fatalf("Expected %d pixels, got %d", size*size, len(img.Pix))
	}

	for y := 0; y < size; y++ {
		row := size - y - 1
		for x := 0; x < size; x++ {
			dx, dy := float64(x-250), float64(y-250)
			d2 := dx*dx + dy*dy
			p := img.Pixel(x, row)

			switch {
			case d2 < radius*radius-300:
				if p == background || p.G != 0 || p.B != 0 {
					t.Fatalf("Pixel (%d,%d) inside disk: expected red, got %v", x, y, p)
				}
			case d2 > radius*radius+300:
				if p != background {
					t.Fatalf("Pixel (%d,%d) outside disk: expected background, got %v", x, y, p)
				}
			}
		}
	}

	// Center faces the viewer head on
	if center := img.Pixel(250, size-250-1); center != (core.RGB{R: 255}) {
		t.Errorf("Expected full red at disk center, got %v", center)
	}

	expectedArea := math.Pi * radius * radius
	if math.Abs(float64(stats.HitPixels)-expectedArea)/expectedArea > 0.01 {
		t.Errorf("Expected about %.0f hit pixels, got %d", expectedArea, stats.HitPixels)
	}
	if stats.HitPixels+stats.MissPixels != size*size || stats.RaysCast != size*size {
		t.Errorf("Inconsistent stats: %+v", stats)
	}
}

func TestRaytracer_ThreeSpheresPinhole(t *testing.T) {
	const size = 500
	spheres := []*geometry.Sphere{
		geometry.NewSphere(core.NewVec3(-2, 0, -5), 0.8, core.NewColor(1, 0, 0)),
		geometry.NewSphere(core.NewVec3(0, 0, -5), 0.8, core.NewColor(0, 1, 0)),
		geometry.NewSphere(core.NewVec3(2, 1.5, -6), 0.7, core.NewColor(0, 0, 1)),
	}
	scene := MockScene{}
	for _, s := range spheres {
		scene.shapes = append(scene.shapes, s)
	}
	camera := NewPinholeCamera(90, size, size)
	img, _ := NewRaytracer(scene, camera).Render()

	// Classify pixels by their only non-zero channel; the background has two
	type accum struct {
		sumX, sumRow float64
		count        int
		pixels       [][2]int
	}
	groups := make([]accum, 3)
	for row := 0; row < size; row++ {
		for x := 0; x < size; x++ {
			p := img.Pixel(x, row)
			idx := -1
			switch {
			case p.R > 0 && p.G == 0 && p.B == 0:
				idx = 0
			case p.G > 0 && p.R == 0 && p.B == 0:
				idx = 1
			case p.B > 0 && p.R == 0 && p.G == 0:
				idx = 2
			}
			if idx >= 0 {
				groups[idx].sumX += float64(x)
				groups[idx].sumRow += float64(row)
				groups[idx].count++
				groups[idx].pixels = append(groups[idx].pixels, [2]int{x, row})
			}
		}
	}

	for i, s := range spheres {
		g := groups[i]
		if g.count < 500 {
			t.Fatalf("Sphere %d: expected a visible disk, got %d pixels", i, g.count)
		}

		px, py, ok := camera.Project(s.Center)
		if !ok {
			t.Fatalf("Sphere %d: center behind camera", i)
		}
		expectedX := float64(px)
		expectedRow := float64(size-1) - float64(py)

		cx, crow := g.sumX/float64(g.count), g.sumRow/float64(g.count)
		if math.Abs(cx-expectedX) > 5 || math.Abs(crow-expectedRow) > 5 {
			t.Errorf("Sphere %d: disk centroid (%.1f, %.1f), projected center (%.1f, %.1f)",
				i, cx, crow, expectedX, expectedRow)
		}

		// Every pixel lies within a bounded radius of its own centroid, so the
		// disks cannot overlap
		for _, p := range g.pixels {
			dx, dy := float64(p[0])-cx, float64(p[1])-crow
			if dx*dx+dy*dy > 60*60 {
				t.Fatalf("Sphere %d: stray pixel at %v", i, p)
			}
		}
	}
}

func TestRaytracer_Idempotent(t *testing.T) {
	scene := MockScene{shapes: []geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, 0, -3), 1, core.NewColor(0.9, 0.2, 0.1)),
		geometry.NewTriangle(
			core.NewVec3(-2, -1, -4),
			core.NewVec3(2, -1, -4),
			core.NewVec3(0, 2, -5),
			core.NewColor(0.1, 0.8, 0.3),
		),
	}}
	raytracer := NewRaytracer(scene, NewPinholeCamera(60, 64, 48))

	first, _ := raytracer.Render()
	second, _ := raytracer.Render()

	if !first.Equal(second) {
		t.Error("Expected identical images from repeated renders")
	}
}

func TestRaytracer_RowsAreFlipped(t *testing.T) {
	// Only rays from camera row y=0, columns 1 and 2, hit this sphere
	scene := MockScene{shapes: []geometry.Shape{
		geometry.NewSphere(core.NewVec3(1.5, 0, -10), 0.9, core.NewColor(1, 1, 1)),
	}}
	img, _ := NewRaytracer(scene, NewOrthographicCamera(4, 3)).Render()

	for row := 0; row < 3; row++ {
		for x := 0; x < 4; x++ {
			hit := row == 2 && (x == 1 || x == 2)
			p := img.Pixel(x, row)
			if hit && p == background {
				t.Errorf("Expected hit at column %d of bottom row", x)
			}
			if !hit && p != background {
				t.Errorf("Expected background at (%d, row %d), got %v", x, row, p)
			}
		}
	}
}

func TestRaytracer_FacingShadingIsUnclamped(t *testing.T) {
	// Ray starts inside the sphere, so the outward normal faces away
	scene := MockScene{shapes: []geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, 0, 0), 1, core.NewColor(1, 0, 0)),
	}}
	raytracer := NewRaytracer(scene, NewOrthographicCamera(1, 1))

	color, hit := raytracer.TraceRay(core.NewRay(core.Zero(), core.NewVec3(0, 0, -1)))
	if !hit {
		t.Fatal("Expected hit")
	}
	if math32.Abs(color.R+1) > 1e-6 {
		t.Errorf("Expected red channel -1, got %f", color.R)
	}

	img, _ := raytracer.Render()
	if img.Pix[0] != (core.RGB{}) {
		t.Errorf("Expected clamped black, got %v", img.Pix[0])
	}

	config := raytracer.Config()
	config.Quantize = core.QuantizeWrap
	raytracer.SetConfig(config)
	img, _ = raytracer.Render()
	// -255 wraps to 1
	if img.Pix[0] != (core.RGB{R: 1}) {
		t.Errorf("Expected wrapped (1,0,0), got %v", img.Pix[0])
	}
}

func TestRaytracer_LambertShading(t *testing.T) {
	gray := core.NewColor(0.5, 0.5, 0.5)
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -5), 1, gray)
	ambient := lights.NewAmbientLight(core.NewColor(1, 1, 1), 0.25)
	ray := core.NewRay(core.Zero(), core.NewVec3(0, 0, -1))

	tests := []struct {
		name     string
		light    lights.Light
		expected float32
	}{
		// f = cd/π, radiance π, cosine 1 → cd, plus ambient 0.25*cd
		{"light in front", lights.NewPointLight(core.NewVec3(0, 0, 10), core.NewColor(1, 1, 1), math32.Pi), 0.625},
		// Surface faces away from the light, only ambient remains
		{"light behind", lights.NewPointLight(core.NewVec3(0, 0, -100), core.NewColor(1, 1, 1), math32.Pi), 0.125},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := MockScene{
				shapes: []geometry.Shape{sphere},
				lights: []lights.Light{ambient, tt.light},
			}
			raytracer := NewRaytracer(scene, NewOrthographicCamera(1, 1))
			config := DefaultConfig()
			config.Shading = ShadingLambert
			raytracer.SetConfig(config)

			color, hit := raytracer.TraceRay(ray)
			if !hit {
				t.Fatal("Expected hit")
			}
			if math32.Abs(color.R-tt.expected) > 1e-5 || color.R != color.G || color.G != color.B {
				t.Errorf("Expected gray %f, got %v", tt.expected, color)
			}
		})
	}
}

func TestRaytracer_TriangleIsShaded(t *testing.T) {
	// Counter-clockwise winding as seen from the camera faces +Z
	scene := MockScene{shapes: []geometry.Shape{
		geometry.NewTriangle(
			core.NewVec3(-1, -1, -3),
			core.NewVec3(1, -1, -3),
			core.NewVec3(0, 1, -3),
			core.NewColor(0, 1, 0),
		),
	}}
	raytracer := NewRaytracer(scene, NewOrthographicCamera(1, 1))

	color, hit := raytracer.TraceRay(core.NewRay(core.Zero(), core.NewVec3(0, 0, -1)))
	if !hit {
		t.Fatal("Expected hit")
	}
	if color != core.NewColor(0, 1, 0) {
		t.Errorf("Expected full green for a triangle facing the viewer, got %v", color)
	}
}

func TestRaytracer_RenderContextCancelled(t *testing.T) {
	scene := MockScene{}
	raytracer := NewRaytracer(scene, NewPinholeCamera(90, 8, 8))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	img, _, err := raytracer.RenderContext(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if img != nil {
		t.Error("Expected no image from a cancelled render")
	}
}

func TestRaytracer_EmptySceneIsBackground(t *testing.T) {
	raytracer := NewRaytracer(MockScene{}, NewPinholeCamera(90, 5, 4))
	img, stats := raytracer.Render()

	for i, p := range img.Pix {
		if p != background {
			t.Fatalf("Pixel %d: expected background, got %v", i, p)
		}
	}
	if stats.Coverage() != 0 {
		t.Errorf("Expected zero coverage, got %f", stats.Coverage())
	}
}

func TestParseShadingMode(t *testing.T) {
	tests := []struct {
		input     string
		expected  ShadingMode
		expectErr bool
	}{
		{"facing", ShadingFacing, false},
		{"", ShadingFacing, false},
		{"lambert", ShadingLambert, false},
		{"phong", ShadingFacing, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseShadingMode(tt.input)
			if (err != nil) != tt.expectErr {
				t.Fatalf("Expected error=%t, got %v", tt.expectErr, err)
			}
			if mode != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, mode)
			}
		})
	}
}
