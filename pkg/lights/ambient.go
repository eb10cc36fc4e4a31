package lights

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
)

// AmbientLight lights every point equally from no particular direction
type AmbientLight struct {
	Color core.Color
	Ls    float32 // Radiance scaling factor
}

// NewAmbientLight creates an ambient light
func NewAmbientLight(color core.Color, ls float32) *AmbientLight {
	return &AmbientLight{Color: color, Ls: ls}
}

func (a *AmbientLight) Type() LightType { return LightTypeAmbient }

// Direction is always the zero vector
func (a *AmbientLight) Direction(geometry.ShadeRec) core.Vec3 {
	return core.Zero()
}

func (a *AmbientLight) Radiance(geometry.ShadeRec) core.Color {
	return a.Color.Multiply(a.Ls)
}

func (a *AmbientLight) sealed() {}
