package lights

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
)

type LightType string

const (
	LightTypeAmbient LightType = "ambient"
	LightTypePoint   LightType = "point"
)

// Light is the closed set of light sources: *AmbientLight and *PointLight.
// Neither variant models attenuation or visibility.
type Light interface {
	Type() LightType

	// Direction returns the unit vector from the hit point toward the light,
	// or the zero vector when the light has no position
	Direction(rec geometry.ShadeRec) core.Vec3

	// Radiance returns the light's contribution, color * ls
	Radiance(rec geometry.ShadeRec) core.Color

	sealed()
}
