package scene

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/chewxy/math32"

	"github.com/df07/go-raycaster/pkg/core"
)

// Record kinds accepted in [[object]] tables
const (
	RecordSphere       = "sphere"
	RecordTriangle     = "triangle"
	RecordPointLight   = "point_light"
	RecordAmbientLight = "ambient_light"
)

// ErrUnknownRecord is wrapped by SkippedRecord.Err for unrecognized kinds
var ErrUnknownRecord = errors.New("unknown object type")

// sceneFile mirrors the top level of a TOML scene file
type sceneFile struct {
	Background *[3]float32     `toml:"background,omitempty"`
	Camera     *cameraRecord   `toml:"camera,omitempty"`
	Objects    []toml.Primitive `toml:"object"`
}

type cameraRecord struct {
	Kind   string  `toml:"kind,omitempty"`
	FOV    float32 `toml:"fov,omitempty"`
	Width  int     `toml:"width,omitempty"`
	Height int     `toml:"height,omitempty"`
}

// objectRecord holds every field any object kind may carry. Pointer
// fields distinguish a missing value from a zero one.
type objectRecord struct {
	Type     string      `toml:"type"`
	Origin   *[3]float32 `toml:"origin,omitempty"`
	Radius   *float32    `toml:"radius,omitempty"`
	V0       *[3]float32 `toml:"v0,omitempty"`
	V1       *[3]float32 `toml:"v1,omitempty"`
	V2       *[3]float32 `toml:"v2,omitempty"`
	Location *[3]float32 `toml:"location,omitempty"`
	Color    *[3]float32 `toml:"color,omitempty"`
	Ls       *float32    `toml:"ls,omitempty"`
}

// SkippedRecord describes an [[object]] that was not added to the scene
type SkippedRecord struct {
	Index int    // Position among the [[object]] tables
	Type  string // Declared type, empty if it could not be read
	Err   error
}

func (r SkippedRecord) Error() string {
	if r.Type == "" {
		return fmt.Sprintf("object %d: %v", r.Index, r.Err)
	}
	return fmt.Sprintf("object %d (%s): %v", r.Index, r.Type, r.Err)
}

// LoadResult is a parsed scene plus the records that were skipped
type LoadResult struct {
	Scene   *Scene
	Skipped []SkippedRecord
}

// LoadFile reads and parses a TOML scene file
func LoadFile(path string) (*LoadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	result, err := Load(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return result, nil
}

// Load parses a TOML scene. Invalid syntax or an invalid camera fails the
// whole load. A malformed or unknown [[object]] is skipped, logged and
// reported in LoadResult.Skipped.
func Load(r io.Reader) (*LoadResult, error) {
	var file sceneFile
	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}

	s := NewScene()
	if file.Background != nil {
		s.Background = colorFrom(*file.Background)
	}
	if file.Camera != nil {
		s.CameraConfig = file.Camera.toConfig()
	}
	if err := s.CameraConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid camera: %w", err)
	}

	result := &LoadResult{Scene: s}
	for i, prim := range file.Objects {
		var rec objectRecord
		if err := md.PrimitiveDecode(prim, &rec); err != nil {
			result.skip(SkippedRecord{Index: i, Err: err})
			continue
		}
		if err := s.addRecord(rec); err != nil {
			result.skip(SkippedRecord{Index: i, Type: rec.Type, Err: err})
		}
	}

	core.Logger().Info("scene loaded",
		"shapes", len(s.Shapes),
		"lights", len(s.Lights),
		"skipped", len(result.Skipped))

	return result, nil
}

func (r *LoadResult) skip(rec SkippedRecord) {
	core.Logger().Warn("skipping scene object", "index", rec.Index, "type", rec.Type, "error", rec.Err)
	r.Skipped = append(r.Skipped, rec)
}

func (c cameraRecord) toConfig() CameraConfig {
	cfg := DefaultCameraConfig()
	if c.Kind != "" {
		cfg.Kind = CameraKind(c.Kind)
	}
	if c.FOV != 0 {
		cfg.VFov = c.FOV
	}
	if c.Width != 0 {
		cfg.Width = c.Width
	}
	if c.Height != 0 {
		cfg.Height = c.Height
	}
	return cfg
}

// addRecord validates a decoded object and appends it to the scene
func (s *Scene) addRecord(rec objectRecord) error {
	switch rec.Type {
	case RecordSphere:
		if err := require(rec.Origin, "origin", rec.Radius, "radius", rec.Color, "color"); err != nil {
			return err
		}
		if *rec.Radius <= 0 {
			return fmt.Errorf("invalid sphere radius %f: must be positive", *rec.Radius)
		}
		s.AddSphere(vecFrom(*rec.Origin), *rec.Radius, colorFrom(*rec.Color))

	case RecordTriangle:
		if err := require(rec.V0, "v0", rec.V1, "v1", rec.V2, "v2", rec.Color, "color"); err != nil {
			return err
		}
		s.AddTriangle(vecFrom(*rec.V0), vecFrom(*rec.V1), vecFrom(*rec.V2), colorFrom(*rec.Color))

	case RecordPointLight:
		if err := require(rec.Location, "location", rec.Color, "color", rec.Ls, "ls"); err != nil {
			return err
		}
		s.AddPointLight(vecFrom(*rec.Location), colorFrom(*rec.Color), *rec.Ls)

	case RecordAmbientLight:
		if err := require(rec.Color, "color", rec.Ls, "ls"); err != nil {
			return err
		}
		s.AddAmbientLight(colorFrom(*rec.Color), *rec.Ls)

	case "":
		return errors.New("missing field type")

	default:
		return fmt.Errorf("%w %q", ErrUnknownRecord, rec.Type)
	}
	return nil
}

// require takes (value, name) pairs and reports the first nil or
// non-finite value
func require(fields ...any) error {
	for i := 0; i+1 < len(fields); i += 2 {
		name := fields[i+1].(string)
		switch v := fields[i].(type) {
		case *[3]float32:
			if v == nil {
				return fmt.Errorf("missing field %s", name)
			}
			if !vecFrom(*v).IsFinite() {
				return fmt.Errorf("field %s is not finite: %v", name, *v)
			}
		case *float32:
			if v == nil {
				return fmt.Errorf("missing field %s", name)
			}
			if math32.IsNaN(*v) || math32.IsInf(*v, 0) {
				return fmt.Errorf("field %s is not finite: %v", name, *v)
			}
		}
	}
	return nil
}

func vecFrom(a [3]float32) core.Vec3 {
	return core.NewVec3(a[0], a[1], a[2])
}

func colorFrom(a [3]float32) core.Color {
	return core.NewColor(a[0], a[1], a[2])
}
