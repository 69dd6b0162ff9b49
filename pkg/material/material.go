package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material holds the Blinn-Phong reflectance of a surface.
// Components are expected in [0,1] but are not clamped.
type Material struct {
	Ambient   core.Vec3
	Diffuse   core.Vec3
	Specular  core.Vec3
	Emission  core.Vec3
	Shininess float64
}

// Default returns the material a scene description starts with:
// a 0.2 grey ambient term and nothing else.
func Default() Material {
	return Material{Ambient: core.Splat(0.2)}
}

// NewDiffuse creates a material with only a diffuse term
func NewDiffuse(diffuse core.Vec3) Material {
	return Material{Diffuse: diffuse}
}

// Base returns the light-independent part of the shading: ambient + emission
func (m Material) Base() core.Vec3 {
	return m.Ambient.Add(m.Emission)
}

// Reflect evaluates the Lambert and Blinn-Phong terms for one light.
// lightDir and halfVec point away from the surface; both dot products are
// clamped at zero before use.
func (m Material) Reflect(lightDir, normal, halfVec, lightColor core.Vec3) core.Vec3 {
	lambert := m.Diffuse.Multiply(max(0, normal.Dot(lightDir)))
	phong := m.Specular.Multiply(math.Pow(max(0, normal.Dot(halfVec)), m.Shininess))
	return lambert.Add(phong).MultiplyVec(lightColor)
}

// IsMirror reports whether the surface contributes reflections
func (m Material) IsMirror() bool {
	return !m.Specular.IsZero()
}
