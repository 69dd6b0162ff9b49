package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// DefaultMaxDepth is the reflection recursion bound used when a scene does not set one
const DefaultMaxDepth = 5

// ErrInvalidScene is wrapped by every Validate failure
var ErrInvalidScene = errors.New("invalid scene")

// Scene contains all the elements needed for rendering. It is built once and
// treated as read-only while rendering, so it may be shared between workers.
type Scene struct {
	Name       string
	Width      int // Image width in pixels
	Height     int // Image height in pixels
	MaxDepth   int // Maximum reflection recursion depth
	Camera     geometry.Camera
	Shapes     []geometry.Shape // Objects in the scene
	Lights     lights.Set       // Lights and their attenuation
	OutputName string           // Output file requested by the scene description, if any
}

// New creates an empty scene with the default recursion depth and no light falloff
func New() *Scene {
	return &Scene{
		MaxDepth: DefaultMaxDepth,
		Shapes:   make([]geometry.Shape, 0),
		Lights:   lights.NewSet(),
	}
}

// Validate checks the scene can be rendered
func (s *Scene) Validate() error {
	if s.Width < 1 || s.Height < 1 {
		return fmt.Errorf("%w: image size must be at least 1x1, got %dx%d", ErrInvalidScene, s.Width, s.Height)
	}
	if s.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidScene, s.MaxDepth)
	}
	if err := s.Camera.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	return nil
}

// GetPrimitiveCount returns the number of primitives in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}

// CountByKind returns how many primitives of the given kind the scene holds
func (s *Scene) CountByKind(kind geometry.Kind) int {
	count := 0
	for _, shape := range s.Shapes {
		if shape.Kind() == kind {
			count++
		}
	}
	return count
}

// Summary returns a one-line description for logs
func (s *Scene) Summary() string {
	return fmt.Sprintf("%dx%d, max depth %d, %d spheres, %d triangles, %d lights",
		s.Width, s.Height, s.MaxDepth,
		s.CountByKind(geometry.KindSphere), s.CountByKind(geometry.KindTriangle), s.Lights.Len())
}

// AddSphere adds an untransformed sphere
func (s *Scene) AddSphere(center core.Point3, radius float64, mat material.Material) *geometry.Sphere {
	sphere := geometry.NewSphere(center, radius, mat)
	s.Shapes = append(s.Shapes, sphere)
	return sphere
}

// AddTriangle adds an untransformed triangle
func (s *Scene) AddTriangle(v0, v1, v2 core.Point3, mat material.Material) *geometry.Triangle {
	triangle := geometry.NewTriangle(v0, v1, v2, mat)
	s.Shapes = append(s.Shapes, triangle)
	return triangle
}

// AddQuad adds two triangles spanning corner, corner+u, corner+u+v, corner+v
func (s *Scene) AddQuad(corner core.Point3, u, v core.Vec3, mat material.Material) {
	p1 := corner.Add(u)
	p2 := corner.Add(u).Add(v)
	p3 := corner.Add(v)
	s.AddTriangle(corner, p1, p2, mat)
	s.AddTriangle(corner, p2, p3, mat)
}

// AddPointLight adds a point light
func (s *Scene) AddPointLight(position core.Point3, color core.Vec3) {
	s.Lights.Add(lights.NewPoint(position, color))
}

// AddDirectionalLight adds a directional light; direction points towards the light
func (s *Scene) AddDirectionalLight(direction, color core.Vec3) {
	s.Lights.Add(lights.NewDirectional(direction, color))
}
