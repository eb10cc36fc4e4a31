package material

import (
	"github.com/df07/go-raycaster/pkg/core"
)

// BRDF describes how a surface reflects light arriving from wi toward wo.
// Directions point away from the surface and are unit length.
type BRDF interface {
	// F evaluates the BRDF for a specific pair of directions
	F(wi, wo core.Vec3) core.Color

	// Rho is the hemispherical-directional reflectance, used for ambient light
	Rho(wo core.Vec3) core.Color
}
