package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Point is an omnidirectional light at a position, subject to shadowing
// and to the attenuation of the Set it belongs to.
type Point struct {
	Position core.Point3
	Color    core.Vec3
}

// NewPoint creates a point light
func NewPoint(position core.Point3, color core.Vec3) *Point {
	return &Point{Position: position, Color: color}
}

func (p *Point) Type() LightType     { return LightTypePoint }
func (p *Point) GetColor() core.Vec3 { return p.Color }
func (p *Point) isLight()            {}

// DirectionFrom returns the unit vector from point towards the light and the distance
func (p *Point) DirectionFrom(point core.Point3) (core.Vec3, float64) {
	toLight := p.Position.Sub(point)
	return toLight.Normalize(), toLight.Length()
}
