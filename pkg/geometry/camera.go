package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera is a pinhole viewpoint. Up must not be parallel to Eye-Center.
type Camera struct {
	Eye    core.Point3
	Center core.Point3 // look-at target
	Up     core.Vec3
	FovY   float64 // vertical field of view in degrees
}

// NewCamera creates a camera
func NewCamera(eye, center core.Point3, up core.Vec3, fovY float64) Camera {
	return Camera{Eye: eye, Center: center, Up: up, FovY: fovY}
}

// Basis returns the orthonormal camera frame: w points from the target back
// to the eye, u to the right and v up.
func (c Camera) Basis() (u, v, w core.Vec3, err error) {
	w, err = c.Eye.Sub(c.Center).TryNormalize()
	if err != nil {
		return u, v, w, fmt.Errorf("camera eye and center coincide: %w", err)
	}
	u, err = c.Up.Cross(w).TryNormalize()
	if err != nil {
		return u, v, w, fmt.Errorf("camera up vector is parallel to the view direction: %w", err)
	}
	v = w.Cross(u)
	return u, v, w, nil
}

// Validate checks the camera can produce rays
func (c Camera) Validate() error {
	if c.FovY <= 0 || c.FovY >= 180 {
		return fmt.Errorf("camera field of view must be in (0, 180) degrees, got %g", c.FovY)
	}
	_, _, _, err := c.Basis()
	return err
}

// Projection is a camera frame resolved for a fixed image size
type Projection struct {
	eye     core.Point3
	u, v, w core.Vec3
	scale   float64 // world units per pixel on the image plane at distance 1
	halfW   float64
	halfH   float64
}

// Project resolves the camera basis for a width x height raster
func (c Camera) Project(width, height int) (Projection, error) {
	u, v, w, err := c.Basis()
	if err != nil {
		return Projection{}, err
	}
	if width < 1 || height < 1 {
		return Projection{}, fmt.Errorf("raster size must be at least 1x1, got %dx%d", width, height)
	}
	halfH := 0.5 * float64(height)
	return Projection{
		eye:   c.Eye,
		u:     u,
		v:     v,
		w:     w,
		scale: math.Tan(0.5*c.FovY*math.Pi/180) / halfH,
		halfW: 0.5 * float64(width),
		halfH: halfH,
	}, nil
}

// RayThrough returns the unit-direction ray from the eye through the centre
// of pixel (row, col). Row 0 is the top of the image.
func (p Projection) RayThrough(row, col int) core.Ray {
	a := p.scale * ((float64(col) + 0.5) - p.halfW)
	b := p.scale * (p.halfH - (float64(row) + 0.5))
	dir := p.u.Multiply(a).Add(p.v.Multiply(b)).Subtract(p.w).Normalize()
	return core.NewRay(p.eye, dir)
}

// RayThrough is Project followed by Projection.RayThrough. A degenerate
// camera yields a zero-direction ray.
func (c Camera) RayThrough(row, col, width, height int) core.Ray {
	p, err := c.Project(width, height)
	if err != nil {
		return core.NewRay(c.Eye, core.Vec3{})
	}
	return p.RayThrough(row, col)
}
