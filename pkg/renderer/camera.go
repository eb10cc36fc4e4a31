package renderer

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/df07/go-raycaster/pkg/core"
)

// Camera generates one primary ray per pixel. Pixel (0,0) is the
// bottom-left of the view.
type Camera interface {
	Ray(px, py int) core.Ray
	Width() int
	Height() int
}

// PinholeCamera is a pinhole camera at the world origin looking down -Z.
// The view plane sits at z = -1.
type PinholeCamera struct {
	vFov   float32 // Vertical field of view in degrees
	hFov   float32 // Horizontal field of view in degrees
	width  int
	height int

	// View plane bounds
	l, r, t, b float32
	vp         float32 // View plane distance along Z
}

// NewPinholeCamera creates a pinhole camera. The horizontal field of view
// is vFov scaled by the aspect ratio width/height. Panics on a
// non-positive resolution.
func NewPinholeCamera(vFov float32, width, height int) *PinholeCamera {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("renderer: invalid camera resolution %dx%d", width, height))
	}

	hFov := vFov * float32(width) / float32(height)
	halfV := math32.Tan(vFov * math32.Pi / 180 / 2)
	halfH := math32.Tan(hFov * math32.Pi / 180 / 2)

	return &PinholeCamera{
		vFov:   vFov,
		hFov:   hFov,
		width:  width,
		height: height,
		l:      -halfH,
		r:      halfH,
		b:      -halfV,
		t:      halfV,
		vp:     -1,
	}
}

// Ray returns the normalized ray from the eye through the center of pixel (px, py)
func (c *PinholeCamera) Ray(px, py int) core.Ray {
	u := c.l + (c.r-c.l)*((float32(px)+0.5)/float32(c.width))
	v := c.b + (c.t-c.b)*((float32(py)+0.5)/float32(c.height))

	screen := core.NewVec3(u, v, c.vp)
	return core.NewRay(core.Zero(), screen.Normalize())
}

// Project maps a world point in front of the camera back to continuous
// pixel coordinates, the inverse of Ray. ok is false for points at or
// behind the eye plane.
func (c *PinholeCamera) Project(p core.Vec3) (x, y float32, ok bool) {
	if p.Z >= 0 {
		return 0, 0, false
	}
	// Scale onto the view plane
	scale := c.vp / p.Z
	u := p.X * scale
	v := p.Y * scale

	x = (u-c.l)/(c.r-c.l)*float32(c.width) - 0.5
	y = (v-c.b)/(c.t-c.b)*float32(c.height) - 0.5
	return x, y, true
}

// VFov returns the vertical field of view in degrees
func (c *PinholeCamera) VFov() float32 { return c.vFov }

// HFov returns the horizontal field of view in degrees
func (c *PinholeCamera) HFov() float32 { return c.hFov }

func (c *PinholeCamera) Width() int  { return c.width }
func (c *PinholeCamera) Height() int { return c.height }

// OrthographicCamera casts parallel rays down -Z, one per pixel, starting
// at (px, py, 0). World units map one-to-one onto pixels.
type OrthographicCamera struct {
	width  int
	height int
}

// NewOrthographicCamera creates an orthographic camera. Panics on a
// non-positive resolution.
func NewOrthographicCamera(width, height int) *OrthographicCamera {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("renderer: invalid camera resolution %dx%d", width, height))
	}
	return &OrthographicCamera{width: width, height: height}
}

// Ray returns the ray for pixel (px, py)
func (c *OrthographicCamera) Ray(px, py int) core.Ray {
	return core.NewRay(core.NewVec3(float32(px), float32(py), 0), core.NewVec3(0, 0, -1))
}

func (c *OrthographicCamera) Width() int  { return c.width }
func (c *OrthographicCamera) Height() int { return c.height }
