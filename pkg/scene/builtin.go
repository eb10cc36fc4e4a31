package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-raycaster/pkg/core"
)

// ErrUnknownScene is returned by NewBuiltinScene for unregistered names
var ErrUnknownScene = errors.New("unknown scene")

// builtinScene describes a scene constructed in code
type builtinScene struct {
	displayName string
	description string
	create      func() *Scene
}

var builtinScenes = map[string]builtinScene{
	"single-sphere": {
		displayName: "Single Sphere",
		description: "Red sphere under an orthographic camera",
		create:      NewSingleSphereScene,
	},
	"sphere-triangle": {
		displayName: "Sphere and Triangle",
		description: "Single sphere with a tilted triangle in front",
		create:      NewSphereTriangleScene,
	},
	"three-spheres": {
		displayName: "Three Spheres",
		description: "Three spheres through a 90 degree pinhole camera",
		create:      NewThreeSpheresScene,
	},
	"lit-spheres": {
		displayName: "Lit Spheres",
		description: "Spheres on a triangle floor with ambient and point lights",
		create:      NewLitSpheresScene,
	},
	"spheregrid": {
		displayName: "Sphere Grid",
		description: "12x12 wall of spheres colored in OKLCH",
		create:      NewSphereGridScene,
	},
}

// BuiltinNames returns the registered scene names in sorted order
func BuiltinNames() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBuiltinScene creates a registered scene by name
func NewBuiltinScene(name string) (*Scene, error) {
	b, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return b.create(), nil
}

// NewSingleSphereScene is one red sphere seen through an orthographic
// camera, so it renders as a disk of radius 150 centered on pixel (250,250)
func NewSingleSphereScene() *Scene {
	s := NewScene()
	s.CameraConfig = CameraConfig{Kind: CameraOrthographic, Width: 500, Height: 500}
	s.AddSphere(core.NewVec3(250, 250, -1000), 150, core.NewColor(1, 0, 0))
	return s
}

// NewSphereTriangleScene adds a tilted triangle in front of the single
// sphere scene
func NewSphereTriangleScene() *Scene {
	s := NewSingleSphereScene()
	s.AddTriangle(
		core.NewVec3(0, 100, -1000),
		core.NewVec3(450, 20, -1000),
		core.NewVec3(300, 600, -800),
		core.NewColor(0.9, 0.8, 0.1),
	)
	return s
}

// NewThreeSpheresScene has three separated spheres in front of a 90°
// pinhole camera
func NewThreeSpheresScene() *Scene {
	s := NewScene()
	s.CameraConfig = CameraConfig{Kind: CameraPinhole, VFov: 90, Width: 500, Height: 500}
	s.AddSphere(core.NewVec3(-2, 0, -5), 0.8, core.NewColor(1, 0, 0))
	s.AddSphere(core.NewVec3(0, 0, -5), 0.8, core.NewColor(0, 1, 0))
	s.AddSphere(core.NewVec3(2, 1.5, -6), 0.7, core.NewColor(0, 0, 1))
	return s
}

// NewLitSpheresScene is meant for lambert shading: a floor made of two
// triangles, spheres resting on it, an ambient fill and a white point light
func NewLitSpheresScene() *Scene {
	s := NewScene()
	s.CameraConfig = CameraConfig{Kind: CameraPinhole, VFov: 50, Width: 640, Height: 480}
	s.Background = core.NewColor(0.05, 0.05, 0.1)

	floor := core.NewColor(0.8, 0.8, 0.8)
	s.AddTriangle(core.NewVec3(-10, -1, -2), core.NewVec3(10, -1, -2), core.NewVec3(10, -1, -30), floor)
	s.AddTriangle(core.NewVec3(-10, -1, -2), core.NewVec3(10, -1, -30), core.NewVec3(-10, -1, -30), floor)

	s.AddSphere(core.NewVec3(-1.5, 0, -6), 1, core.NewColor(0.9, 0.3, 0.2))
	s.AddSphere(core.NewVec3(1.2, -0.4, -5), 0.6, core.NewColor(0.2, 0.5, 0.9))
	s.AddSphere(core.NewVec3(0.5, 0.5, -9), 1.5, core.NewColor(0.3, 0.8, 0.3))

	s.AddAmbientLight(core.NewColor(1, 1, 1), 0.1)
	s.AddPointLight(core.NewVec3(5, 8, 0), core.NewColor(1, 0.95, 0.9), 2.5)
	return s
}
