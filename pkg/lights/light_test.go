package lights

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestSet_Factor(t *testing.T) {
	tests := []struct {
		name        string
		attenuation [3]float64
		distance    float64
		expected    float64
	}{
		{"default has no falloff", DefaultAttenuation, 42, 1},
		{"constant", [3]float64{2, 0, 0}, 10, 0.5},
		{"linear", [3]float64{0, 1, 0}, 4, 0.25},
		{"quadratic", [3]float64{0, 0, 1}, 4, 1.0 / 16},
		{"mixed", [3]float64{1, 2, 3}, 2, 1.0 / 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Set{Attenuation: tt.attenuation}
			assert.InDelta(t, tt.expected, s.Factor(tt.distance), 1e-12)
		})
	}
}

func TestNewSet(t *testing.T) {
	p := NewPoint(core.NewPoint3(0, 0, 5), core.Splat(1))
	d := NewDirectional(core.NewVec3(0, 1, 0), core.Splat(0.5))

	s := NewSet(p)
	s.Add(d)

	assert.Equal(t, DefaultAttenuation, s.Attenuation)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, LightTypePoint, s.Lights[0].Type())
	assert.Equal(t, LightTypeDirectional, s.Lights[1].Type())
	assert.Equal(t, core.Splat(0.5), s.Lights[1].GetColor())
}

func TestPoint_DirectionFrom(t *testing.T) {
	p := NewPoint(core.NewPoint3(0, 0, 5), core.Splat(1))
	dir, dist := p.DirectionFrom(core.NewPoint3(0, 0, 1))

	assert.Equal(t, core.NewVec3(0, 0, 1), dir)
	assert.InDelta(t, 4.0, dist, 1e-12)
}

func TestDirectional_DirectionTo(t *testing.T) {
	d := NewDirectional(core.NewVec3(0, 3, 4), core.Splat(1))
	dir := d.DirectionTo()
	assert.InDelta(t, 1.0, dir.Length(), 1e-12)
	assert.InDelta(t, 0.6, dir.Y, 1e-12)
	assert.False(t, math.IsNaN(dir.Z))
}
