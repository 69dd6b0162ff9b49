package renderer

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	// NoHitDistance is the initial nearest distance of a scene scan. Hits at
	// or beyond it are treated as misses.
	NoHitDistance = 1e6

	// ShadowEpsilon is how much closer than the light a blocker must be
	ShadowEpsilon = 1e-7
)

// IntersectFromView returns the nearest primitive hit by a camera ray.
// Distance is measured in world space from the ray origin.
func IntersectFromView(ray core.Ray, s *scene.Scene) (geometry.Hit, bool) {
	return nearestHit(ray, s, func(int, geometry.Shape) bool { return true })
}

// IntersectFromShape is IntersectFromView for a ray leaving the surface of
// origin. Only primitives of the same kind as origin with a different index
// are candidates. This keeps a convex surface from hitting itself.
func IntersectFromShape(ray core.Ray, s *scene.Scene, origin geometry.Hit) (geometry.Hit, bool) {
	kind := origin.Kind()
	return nearestHit(ray, s, func(i int, shape geometry.Shape) bool {
		return shape.Kind() == kind && i != origin.Index
	})
}

func nearestHit(ray core.Ray, s *scene.Scene, candidate func(int, geometry.Shape) bool) (geometry.Hit, bool) {
	minDist := NoHitDistance
	var nearest geometry.Hit

	for i, shape := range s.Shapes {
		if !candidate(i, shape) {
			continue
		}
		hit, ok := shape.Intersect(ray)
		if !ok {
			continue
		}
		if dist := hit.Distance(ray.Origin); dist < minDist {
			hit.Index = i
			minDist = dist
			nearest = hit
		}
	}

	return nearest, minDist < NoHitDistance
}

// Shadowed reports whether any primitive other than the one at hit lies
// between the hit point and a point light.
func Shadowed(hit geometry.Hit, lightPos core.Point3, s *scene.Scene) bool {
	toLight := lightPos.Sub(hit.Point)
	lightDist := toLight.Length()
	ray := core.NewRay(hit.Point, toLight.Normalize())

	for i, shape := range s.Shapes {
		if i == hit.Index && shape.Kind() == hit.Kind() {
			continue
		}
		blocker, ok := shape.Intersect(ray)
		if !ok {
			continue
		}
		if blocker.Distance(hit.Point) < lightDist-ShadowEpsilon {
			return true
		}
	}
	return false
}
