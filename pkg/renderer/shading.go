package renderer

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Shader evaluates colors at hit points of one scene. A Shader is not safe
// for concurrent use; each worker owns its own.
type Shader struct {
	scene *scene.Scene

	calls        int // RecursiveColor invocations
	maxDepthSeen int
}

// NewShader creates a shader for a scene
func NewShader(s *scene.Scene) *Shader {
	return &Shader{scene: s}
}

// LocalColor is the direct Blinn-Phong shading of hit under the given lights:
// ambient + emission + the sum of every light's diffuse and specular terms.
// Point lights are shadow tested and attenuated by the set's coefficients;
// directional lights are neither.
func (sh *Shader) LocalColor(ray core.Ray, hit geometry.Hit, set lights.Set) core.Vec3 {
	normal := hit.Shape.Normal(hit.Point)
	mat := hit.Shape.GetMaterial()
	eyeDir := ray.Origin.Sub(hit.Point).Normalize()

	total := core.Vec3{}
	for _, light := range set.Lights {
		switch l := light.(type) {
		case *lights.Directional:
			lightDir := l.DirectionTo()
			halfVec := lightDir.Add(eyeDir).Normalize()
			total = total.Add(mat.Reflect(lightDir, normal, halfVec, l.Color))
		case *lights.Point:
			if Shadowed(hit, l.Position, sh.scene) {
				continue
			}
			lightDir, dist := l.DirectionFrom(hit.Point)
			halfVec := lightDir.Add(eyeDir).Normalize()
			total = total.Add(mat.Reflect(lightDir, normal, halfVec, l.Color).Multiply(set.Factor(dist)))
		}
	}

	return total.Add(mat.Base())
}

// RecursiveColor is the full color of a hit: its LocalColor under the scene
// lights plus a mirror term. The mirror term traces the reflected ray; if it
// hits something, that hit's own RecursiveColor becomes a point light placed
// at the secondary hit, LocalColor is evaluated against that single light
// (default attenuation) and the result is scaled by the surface specular.
//
// Beyond the scene's MaxDepth the result is black.
func (sh *Shader) RecursiveColor(ray core.Ray, hit geometry.Hit, depth int) core.Vec3 {
	sh.calls++
	sh.maxDepthSeen = max(sh.maxDepthSeen, depth)

	if depth > sh.scene.MaxDepth {
		return core.Vec3{}
	}

	normal := hit.Shape.Normal(hit.Point)
	mat := hit.Shape.GetMaterial()

	d := ray.Direction
	reflected := core.NewRay(hit.Point, d.Subtract(normal.Multiply(2*d.Dot(normal))).Normalize())

	reflection := core.Vec3{}
	if next, ok := IntersectFromShape(reflected, sh.scene, hit); ok {
		incoming := sh.RecursiveColor(reflected, next, depth+1)
		synthetic := lights.NewSet(lights.NewPoint(next.Point, incoming))
		reflection = sh.LocalColor(ray, hit, synthetic).MultiplyVec(mat.Specular)
	}

	return reflection.Add(sh.LocalColor(ray, hit, sh.scene.Lights))
}
