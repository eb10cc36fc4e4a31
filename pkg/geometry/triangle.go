package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-raycaster/pkg/core"
)

// triangleEpsilon is the smallest determinant accepted before a ray is
// treated as parallel to the triangle plane
const triangleEpsilon = 1e-5

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3  // The three vertices
	Color      core.Color // Material color of the triangle
	normal     core.Vec3  // Cached geometric normal
}

// NewTriangle creates a new triangle from three vertices.
// The normal follows the winding: normalize((v1-v0) × (v2-v0)).
func NewTriangle(v0, v1, v2 core.Vec3, color core.Color) *Triangle {
	t := &Triangle{
		V0:    v0,
		V1:    v1,
		V2:    v2,
		Color: color,
	}
	t.computeNormal()
	return t
}

// computeNormal calculates and caches the triangle's normal vector.
// Degenerate triangles get a zero normal.
func (t *Triangle) computeNormal() {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	t.normal = edge1.Cross(edge2).Normalize()
}

// Barycentric runs the Möller-Trumbore test without a t interval and
// returns the barycentric coordinates (u, v) and ray parameter of the
// hit. ok is false when the ray is parallel to the plane or passes
// outside the triangle.
func (t *Triangle) Barycentric(ray core.Ray) (u, v, tParam float32, ok bool) {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	p := ray.Direction.Cross(edge2)
	a := edge1.Dot(p)

	// Ray lies in or parallel to the triangle plane
	if math32.Abs(a) < triangleEpsilon {
		return 0, 0, 0, false
	}

	f := 1 / a
	s := ray.Origin.Subtract(t.V0)
	u = f * s.Dot(p)
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	q := s.Cross(edge1)
	v = f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	return u, v, f * edge2.Dot(q), true
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float32) (ShadeRec, bool) {
	_, _, tParam, ok := t.Barycentric(ray)
	if !ok {
		return ShadeRec{}, false
	}

	if !(tParam >= tMin && tParam <= tMax) {
		return ShadeRec{}, false
	}

	rec := ShadeRec{
		T:     tParam,
		Point: ray.At(tParam),
		Color: t.Color,
	}
	rec.setNormal(ray, t.normal)

	return rec, true
}

// Normal returns the triangle's geometric normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// Centroid returns the average of the three vertices
func (t *Triangle) Centroid() core.Vec3 {
	return t.V0.Add(t.V1).Add(t.V2).Multiply(1.0 / 3.0)
}

// Kind returns KindTriangle
func (t *Triangle) Kind() Kind { return KindTriangle }

func (t *Triangle) sealed() {}
