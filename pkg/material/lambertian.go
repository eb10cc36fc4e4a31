package material

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-raycaster/pkg/core"
)

// Lambertian represents a perfectly diffuse surface
type Lambertian struct {
	Kd float32    // Diffuse reflection coefficient
	Cd core.Color // Diffuse color
}

// NewLambertian creates a lambertian BRDF with kd = 1
func NewLambertian(cd core.Color) *Lambertian {
	return &Lambertian{Kd: 1, Cd: cd}
}

// F is constant: kd*cd/π
func (l *Lambertian) F(wi, wo core.Vec3) core.Color {
	return l.Cd.Multiply(l.Kd).Multiply(1 / math32.Pi)
}

// Rho is kd*cd
func (l *Lambertian) Rho(wo core.Vec3) core.Color {
	return l.Cd.Multiply(l.Kd)
}
