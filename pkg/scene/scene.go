package scene

import (
	"fmt"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
	"github.com/df07/go-raycaster/pkg/renderer"
)

// CameraKind selects the projection used to generate primary rays
type CameraKind string

const (
	CameraPinhole      CameraKind = "pinhole"
	CameraOrthographic CameraKind = "orthographic"
)

// CameraConfig holds the only camera options: projection, vertical field
// of view and resolution. The camera always sits at the origin looking
// down -Z.
type CameraConfig struct {
	Kind   CameraKind
	VFov   float32 // Degrees, ignored by orthographic cameras
	Width  int
	Height int
}

// DefaultCameraConfig returns a 500x500 pinhole camera with a 90° field of view
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Kind:   CameraPinhole,
		VFov:   90,
		Width:  500,
		Height: 500,
	}
}

// Validate checks the configuration can build a camera
func (c CameraConfig) Validate() error {
	if c.Width < 1 || c.Width > 8192 {
		return fmt.Errorf("invalid image width %d: must be between 1 and 8192", c.Width)
	}
	if c.Height < 1 || c.Height > 8192 {
		return fmt.Errorf("invalid image height %d: must be between 1 and 8192", c.Height)
	}
	switch c.Kind {
	case CameraPinhole:
		if c.VFov <= 0 || c.VFov >= 180 {
			return fmt.Errorf("invalid camera FOV %f: must be between 0 and 180 degrees", c.VFov)
		}
		if hFov := c.VFov * float32(c.Width) / float32(c.Height); hFov >= 180 {
			return fmt.Errorf("horizontal FOV %f derived from %dx%d must be below 180 degrees", hFov, c.Width, c.Height)
		}
	case CameraOrthographic:
	default:
		return fmt.Errorf("unknown camera kind %q", c.Kind)
	}
	return nil
}

// Scene contains all the elements needed for rendering
type Scene struct {
	Shapes       []geometry.Shape // Objects in the scene, in insertion order
	Lights       []lights.Light   // Lights in the scene, in insertion order
	Background   core.Color       // Color for rays that hit nothing
	CameraConfig CameraConfig
}

// NewScene creates an empty scene with the default background and camera
func NewScene() *Scene {
	return &Scene{
		Shapes:       make([]geometry.Shape, 0),
		Lights:       make([]lights.Light, 0),
		Background:   renderer.DefaultConfig().Background,
		CameraConfig: DefaultCameraConfig(),
	}
}

// GetShapes returns the scene's shapes
func (s *Scene) GetShapes() []geometry.Shape {
	return s.Shapes
}

// GetLights returns the scene's lights
func (s *Scene) GetLights() []lights.Light {
	return s.Lights
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float32, color core.Color) *geometry.Sphere {
	sphere := geometry.NewSphere(center, radius, color)
	s.Shapes = append(s.Shapes, sphere)
	return sphere
}

// AddTriangle adds a triangle to the scene
func (s *Scene) AddTriangle(v0, v1, v2 core.Vec3, color core.Color) *geometry.Triangle {
	triangle := geometry.NewTriangle(v0, v1, v2, color)
	s.Shapes = append(s.Shapes, triangle)
	return triangle
}

// AddAmbientLight adds an ambient light to the scene
func (s *Scene) AddAmbientLight(color core.Color, ls float32) {
	s.Lights = append(s.Lights, lights.NewAmbientLight(color, ls))
}

// AddPointLight adds a point light to the scene
func (s *Scene) AddPointLight(location core.Vec3, color core.Color, ls float32) {
	s.Lights = append(s.Lights, lights.NewPointLight(location, color, ls))
}

// GetPrimitiveCount returns the number of shapes of each kind
func (s *Scene) GetPrimitiveCount() map[geometry.Kind]int {
	counts := make(map[geometry.Kind]int)
	for _, shape := range s.Shapes {
		counts[shape.Kind()]++
	}
	return counts
}

// NewCamera builds the camera described by CameraConfig
func (s *Scene) NewCamera() (renderer.Camera, error) {
	if err := s.CameraConfig.Validate(); err != nil {
		return nil, err
	}
	if s.CameraConfig.Kind == CameraOrthographic {
		return renderer.NewOrthographicCamera(s.CameraConfig.Width, s.CameraConfig.Height), nil
	}
	return renderer.NewPinholeCamera(s.CameraConfig.VFov, s.CameraConfig.Width, s.CameraConfig.Height), nil
}

// NewRaytracer builds the render context for this scene. The scene's
// background replaces config.Background.
func (s *Scene) NewRaytracer(config renderer.Config) (*renderer.Raytracer, error) {
	camera, err := s.NewCamera()
	if err != nil {
		return nil, fmt.Errorf("failed to create camera: %w", err)
	}
	config.Background = s.Background

	rt := renderer.NewRaytracer(s, camera)
	rt.SetConfig(config)
	return rt, nil
}
