package geometry

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/df07/go-raycaster/pkg/core"
)

func TestTriangle_Hit(t *testing.T) {
	// Triangle in the z=-5 plane, facing +Z
	green := core.NewColor(0, 1, 0)
	triangle := NewTriangle(
		core.NewVec3(0, 0, -5),
		core.NewVec3(1, 0, -5),
		core.NewVec3(0, 1, -5),
		green,
	)
	down := core.NewVec3(0, 0, -1)

	tests := []struct {
		name      string
		ray       core.Ray
		tMin      float32
		tMax      float32
		shouldHit bool
		expectedT float32
	}{
		{
			name:      "Ray hits triangle interior",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 0), down),
			tMin:      1e-5,
			tMax:      1e4,
			shouldHit: true,
			expectedT: 5,
		},
		{
			name:      "Ray hits triangle edge",
			ray:       core.NewRay(core.NewVec3(0.5, 0, 0), down),
			tMin:      1e-5,
			tMax:      1e4,
			shouldHit: true,
			expectedT: 5,
		},
		{
			name:      "Ray misses with u > 1",
			ray:       core.NewRay(core.NewVec3(2, 0.1, 0), down),
			tMin:      1e-5,
			tMax:      1e4,
			shouldHit: false,
		},
		{
			name:      "Ray misses with v < 0",
			ray:       core.NewRay(core.NewVec3(0.5, -0.1, 0), down),
			tMin:      1e-5,
			tMax:      1e4,
			shouldHit: false,
		},
		{
			name:      "Ray misses with u+v > 1",
			ray:       core.NewRay(core.NewVec3(0.6, 0.6, 0), down),
			tMin:      1e-5,
			tMax:      1e4,
			shouldHit: false,
		},
		{
			name:      "Ray parallel to triangle",
			ray:       core.NewRay(core.NewVec3(-1, 0.25, -5), core.NewVec3(1, 0, 0)),
			tMin:      1e-5,
			tMax:      1e4,
			shouldHit: false,
		},
		{
			name:      "Hit beyond tMax",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 0), down),
			tMin:      1e-5,
			tMax:      4,
			shouldHit: false,
		},
		{
			name:      "Triangle behind ray",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 0), core.NewVec3(0, 0, 1)),
			tMin:      1e-5,
			tMax:      1e4,
			shouldHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := triangle.Hit(tt.ray, tt.tMin, tt.tMax)

			if ok != tt.shouldHit {
				t.Fatalf("Expected hit=%t, got %t", tt.shouldHit, ok)
			}
			if !ok {
				return
			}

			if math32.Abs(rec.T-tt.expectedT) > 1e-5 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, rec.T)
			}
			expectedPoint := tt.ray.At(tt.expectedT)
			if rec.Point.Subtract(expectedPoint).Length() > 1e-5 {
				t.Errorf("Expected point %v, got %v", expectedPoint, rec.Point)
			}
			if rec.Color != green {
				t.Errorf("Expected color %v, got %v", green, rec.Color)
			}
		})
	}
}

func TestTriangle_Barycentric_Centroid(t *testing.T) {
	tests := []struct {
		name       string
		v0, v1, v2 core.Vec3
	}{
		{"axis aligned", core.NewVec3(0, 0, -5), core.NewVec3(1, 0, -5), core.NewVec3(0, 1, -5)},
		{"tilted", core.NewVec3(300, 600, -800), core.NewVec3(0, 100, -1000), core.NewVec3(450, 20, -1000)},
		{"clockwise", core.NewVec3(-1, -1, -3), core.NewVec3(0, 2, -4), core.NewVec3(2, -1, -2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			triangle := NewTriangle(tt.v0, tt.v1, tt.v2, red)
			centroid := triangle.Centroid()
			normal := triangle.Normal()

			// Start one unit-ish away along the normal and shoot straight back
			distance := float32(10)
			ray := core.NewRay(centroid.Add(normal.Multiply(distance)), normal.Negate())

			u, v, tParam, ok := triangle.Barycentric(ray)
			if !ok {
				t.Fatal("Expected ray through centroid to hit")
			}
			if u < 0 || v < 0 || u+v > 1 {
				t.Errorf("Barycentric coordinates out of range: u=%f v=%f", u, v)
			}
			if math32.Abs(u-1.0/3.0) > 1e-3 || math32.Abs(v-1.0/3.0) > 1e-3 {
				t.Errorf("Expected u=v=1/3 at centroid, got u=%f v=%f", u, v)
			}
			if math32.Abs(tParam-distance) > 1e-2 {
				t.Errorf("Expected t=%f, got %f", distance, tParam)
			}

			rec, ok := triangle.Hit(ray, 1e-5, 1e4)
			if !ok {
				t.Fatal("Expected Hit to agree with Barycentric")
			}
			// Perpendicular ray sees the front face with cosine 1
			if cos := ray.Direction.Negate().Dot(rec.Normal); math32.Abs(cos-1) > 1e-4 {
				t.Errorf("Expected cosine 1, got %f", cos)
			}
		})
	}
}

func TestTriangle_Normal(t *testing.T) {
	triangle := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		red,
	)
	if triangle.Normal() != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected normal (0,0,1), got %v", triangle.Normal())
	}

	// Reversed winding flips the normal
	reversed := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(1, 0, 0),
		red,
	)
	if reversed.Normal() != core.NewVec3(0, 0, -1) {
		t.Errorf("Expected normal (0,0,-1), got %v", reversed.Normal())
	}

	// Hit from behind reports the back face with the same normal
	ray := core.NewRay(core.NewVec3(0.2, 0.2, 1), core.NewVec3(0, 0, -1))
	rec, ok := reversed.Hit(ray, 1e-5, 1e4)
	if !ok {
		t.Fatal("Expected hit")
	}
	if rec.FrontFace {
		t.Error("Expected back face hit")
	}
	if rec.Normal != reversed.Normal() {
		t.Errorf("Expected normal %v, got %v", reversed.Normal(), rec.Normal)
	}
}

func TestTriangle_Degenerate(t *testing.T) {
	// Collinear vertices
	triangle := NewTriangle(
		core.NewVec3(0, 0, -1),
		core.NewVec3(1, 1, -1),
		core.NewVec3(2, 2, -1),
		red,
	)

	if !triangle.Normal().IsZero() {
		t.Errorf("Expected zero normal for degenerate triangle, got %v", triangle.Normal())
	}

	ray := core.NewRay(core.NewVec3(1, 1, 0), core.NewVec3(0, 0, -1))
	if _, ok := triangle.Hit(ray, 1e-5, 1e4); ok {
		t.Error("Expected degenerate triangle to never be hit")
	}
}
