package scene

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/lights"
)

// exportFile is the encoding-side twin of sceneFile
type exportFile struct {
	Background [3]float32     `toml:"background"`
	Camera     cameraRecord   `toml:"camera"`
	Objects    []objectRecord `toml:"object"`
}

// Write encodes the scene as TOML that Load reads back unchanged
func Write(w io.Writer, s *Scene) error {
	out := exportFile{
		Background: colorArray(s.Background),
		Camera: cameraRecord{
			Kind:   string(s.CameraConfig.Kind),
			FOV:    s.CameraConfig.VFov,
			Width:  s.CameraConfig.Width,
			Height: s.CameraConfig.Height,
		},
	}

	for _, shape := range s.Shapes {
		switch sh := shape.(type) {
		case *geometry.Sphere:
			out.Objects = append(out.Objects, objectRecord{
				Type:   RecordSphere,
				Origin: vecArray(sh.Center),
				Radius: &sh.Radius,
				Color:  ptr(colorArray(sh.Color)),
			})
		case *geometry.Triangle:
			out.Objects = append(out.Objects, objectRecord{
				Type:  RecordTriangle,
				V0:    vecArray(sh.V0),
				V1:    vecArray(sh.V1),
				V2:    vecArray(sh.V2),
				Color: ptr(colorArray(sh.Color)),
			})
		default:
			return fmt.Errorf("cannot encode shape %T", shape)
		}
	}

	for _, light := range s.Lights {
		switch l := light.(type) {
		case *lights.AmbientLight:
			out.Objects = append(out.Objects, objectRecord{
				Type:  RecordAmbientLight,
				Color: ptr(colorArray(l.Color)),
				Ls:    &l.Ls,
			})
		case *lights.PointLight:
			out.Objects = append(out.Objects, objectRecord{
				Type:     RecordPointLight,
				Location: vecArray(l.Location),
				Color:    ptr(colorArray(l.Color)),
				Ls:       &l.Ls,
			})
		default:
			return fmt.Errorf("cannot encode light %T", light)
		}
	}

	if err := toml.NewEncoder(w).Encode(out); err != nil {
		return fmt.Errorf("failed to encode scene: %w", err)
	}
	return nil
}

func vecArray(v core.Vec3) *[3]float32 {
	return &[3]float32{v.X, v.Y, v.Z}
}

func colorArray(c core.Color) [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

func ptr[T any](v T) *T {
	return &v
}
