package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Directional is a light infinitely far away. Direction points from the
// surface towards the light. It is never shadowed or attenuated.
type Directional struct {
	Direction core.Vec3
	Color     core.Vec3
}

// NewDirectional creates a directional light
func NewDirectional(direction, color core.Vec3) *Directional {
	return &Directional{Direction: direction, Color: color}
}

func (d *Directional) Type() LightType     { return LightTypeDirectional }
func (d *Directional) GetColor() core.Vec3 { return d.Color }
func (d *Directional) isLight()            {}

// DirectionTo returns the unit vector towards the light
func (d *Directional) DirectionTo() core.Vec3 {
	return d.Direction.Normalize()
}
