package geometry

import "github.com/df07/go-raycaster/pkg/core"

// ShadeRec contains information about a ray-object intersection.
// It only lives for the duration of one nearest-hit resolution.
type ShadeRec struct {
	T         float32    // Parameter t along the ray
	Point     core.Vec3  // Point of intersection
	Normal    core.Vec3  // Unit outward surface normal
	Color     core.Color // Material color of the hit shape
	FrontFace bool       // Whether the ray arrived against the outward normal
	Shape     Shape      // Shape that was hit, set by ClosestHit
}

// setNormal records the outward normal and which side the ray came from.
// The normal is never flipped.
func (s *ShadeRec) setNormal(ray core.Ray, outwardNormal core.Vec3) {
	s.Normal = outwardNormal
	s.FrontFace = ray.Direction.Dot(outwardNormal) < 0
}

// Kind identifies a shape variant
type Kind string

const (
	KindSphere   Kind = "sphere"
	KindTriangle Kind = "triangle"
)

// Shape is the closed set of primitives a ray can hit: *Sphere and *Triangle.
type Shape interface {
	// Hit returns the intersection with the ray for t in [tMin, tMax]
	Hit(ray core.Ray, tMin, tMax float32) (ShadeRec, bool)
	Kind() Kind

	// sealed keeps the variant set closed to this package
	sealed()
}

// ClosestHit scans shapes in order and returns the nearest intersection.
// The upper bound shrinks to each accepted hit, so later shapes only
// report hits no farther than anything already found. On an exact tie
// the shape tested last wins. The returned record names the winning shape.
func ClosestHit(shapes []Shape, ray core.Ray, tMin, tMax float32) (ShadeRec, bool) {
	var closest ShadeRec
	hitAnything := false
	closestSoFar := tMax

	for _, shape := range shapes {
		if rec, ok := shape.Hit(ray, tMin, closestSoFar); ok {
			hitAnything = true
			closestSoFar = rec.T
			closest = rec
			closest.Shape = shape
		}
	}

	return closest, hitAnything
}
