package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

type LightType string

const (
	LightTypeDirectional LightType = "directional"
	LightTypePoint       LightType = "point"
)

// Light is implemented by *Directional and *Point only
type Light interface {
	Type() LightType
	GetColor() core.Vec3
	isLight()
}

// DefaultAttenuation is the constant/linear/quadratic falloff used when a
// scene does not specify one: no falloff at all.
var DefaultAttenuation = [3]float64{1, 0, 0}

// Set is a list of lights sharing one attenuation model
type Set struct {
	Attenuation [3]float64
	Lights      []Light
}

// NewSet creates a light set with DefaultAttenuation
func NewSet(lights ...Light) Set {
	return Set{
		Attenuation: DefaultAttenuation,
		Lights:      lights,
	}
}

// Add appends a light to the set
func (s *Set) Add(light Light) {
	s.Lights = append(s.Lights, light)
}

// Factor returns 1 / (a0 + a1*d + a2*d²) for a point light at distance d
func (s Set) Factor(distance float64) float64 {
	a := s.Attenuation
	return 1.0 / (a[0] + a[1]*distance + a[2]*distance*distance)
}

// Len returns the number of lights
func (s Set) Len() int {
	return len(s.Lights)
}
