package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-raycaster/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float32
	Color  core.Color
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float32, color core.Color) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
		Color:  color,
	}
}

// Hit tests if a ray intersects with the sphere.
// Uses the geometric solution rather than the quadratic formula, which
// avoids cancellation when the ray origin is far from the sphere.
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float32) (ShadeRec, bool) {
	// Vector from ray origin to sphere center
	l := s.Center.Subtract(ray.Origin)
	proj := l.Dot(ray.Direction)
	l2 := l.Dot(l)
	r2 := s.Radius * s.Radius
	outside := l2 > r2

	// Origin outside and pointing away
	if proj < 0 && outside {
		return ShadeRec{}, false
	}

	// Squared distance from center to the closest approach
	m2 := l2 - proj*proj
	if m2 > r2 {
		return ShadeRec{}, false
	}

	q := math32.Sqrt(r2 - m2)
	var t float32
	if outside {
		t = proj - q
	} else {
		t = proj + q
	}

	// NaN fails both comparisons and is rejected
	if !(t >= tMin && t <= tMax) {
		return ShadeRec{}, false
	}

	rec := ShadeRec{
		T:     t,
		Point: ray.At(t),
		Color: s.Color,
	}
	rec.setNormal(ray, rec.Point.Subtract(s.Center).Normalize())

	return rec, true
}

// Kind returns KindSphere
func (s *Sphere) Kind() Kind { return KindSphere }

func (s *Sphere) sealed() {}
