package lights

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
)

// PointLight emits from a single location with no distance falloff
type PointLight struct {
	Location core.Vec3
	Color    core.Color
	Ls       float32 // Radiance scaling factor
}

// NewPointLight creates a point light
func NewPointLight(location core.Vec3, color core.Color, ls float32) *PointLight {
	return &PointLight{Location: location, Color: color, Ls: ls}
}

func (p *PointLight) Type() LightType { return LightTypePoint }

// Direction returns the unit vector from the hit point to the light.
// A hit point exactly at the light location yields the zero vector.
func (p *PointLight) Direction(rec geometry.ShadeRec) core.Vec3 {
	return p.Location.Subtract(rec.Point).Normalize()
}

// Radiance is independent of distance
func (p *PointLight) Radiance(geometry.ShadeRec) core.Color {
	return p.Color.Multiply(p.Ls)
}

func (p *PointLight) sealed() {}
