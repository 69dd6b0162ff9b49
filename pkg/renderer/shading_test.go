package renderer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func assertColorNear(t *testing.T, expected, actual core.Vec3) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, 1e-9, "red")
	assert.InDelta(t, expected.Y, actual.Y, 1e-9, "green")
	assert.InDelta(t, expected.Z, actual.Z, 1e-9, "blue")
}

func TestLocalColor_Terms(t *testing.T) {
	mat := material.Material{
		Ambient:   core.NewVec3(0.1, 0.1, 0.1),
		Emission:  core.NewVec3(0, 0, 0.05),
		Diffuse:   core.NewVec3(0.5, 0.5, 0.5),
		Specular:  core.NewVec3(0.2, 0.2, 0.2),
		Shininess: 10,
	}
	s := newTestScene(1, 1)
	s.AddSphere(core.NewPoint3(0, 0, 0), 1, mat)

	ray := core.NewRay(core.NewPoint3(0, 0, 10), core.NewVec3(0, 0, -1))
	hit, ok := IntersectFromView(ray, s)
	require.True(t, ok)
	sh := NewShader(s)

	tests := []struct {
		name     string
		set      lights.Set
		expected core.Vec3
	}{
		{
			name:     "no lights leaves ambient plus emission",
			set:      lights.NewSet(),
			expected: core.NewVec3(0.1, 0.1, 0.15),
		},
		{
			name: "head-on point light",
			set:  lights.NewSet(lights.NewPoint(core.NewPoint3(0, 0, 5), core.Splat(1))),
			// N.L = N.H = 1
			expected: core.NewVec3(0.8, 0.8, 0.85),
		},
		{
			name: "attenuated point light",
			set: lights.Set{
				Attenuation: [3]float64{0, 0, 1},
				Lights:      []lights.Light{lights.NewPoint(core.NewPoint3(0, 0, 3), core.Splat(1))},
			},
			// distance 2 => factor 1/4
			expected: core.NewVec3(0.275, 0.275, 0.325),
		},
		{
			name:     "directional light behind the surface",
			set:      lights.NewSet(lights.NewDirectional(core.NewVec3(0, 0, -1), core.Splat(1))),
			expected: core.NewVec3(0.1, 0.1, 0.15),
		},
		{
			name:     "directional light is not attenuated",
			set:      lights.Set{Attenuation: [3]float64{0, 0, 100}, Lights: []lights.Light{lights.NewDirectional(core.NewVec3(0, 0, 2), core.Splat(1))}},
			expected: core.NewVec3(0.8, 0.8, 0.85),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertColorNear(t, tt.expected, sh.LocalColor(ray, hit, tt.set))
		})
	}
}

func TestLocalColor_GrazingDirectional(t *testing.T) {
	mat := material.NewDiffuse(core.Splat(1))
	s := newTestScene(1, 1)
	s.AddSphere(core.NewPoint3(0, 0, 0), 1, mat)

	ray := core.NewRay(core.NewPoint3(0, 0, 10), core.NewVec3(0, 0, -1))
	hit, ok := IntersectFromView(ray, s)
	require.True(t, ok)

	set := lights.NewSet(lights.NewDirectional(core.NewVec3(1, 0, 1), core.Splat(1)))
	c := NewShader(s).LocalColor(ray, hit, set)
	assert.InDelta(t, math.Sqrt2/2, c.X, 1e-9)
}

func TestLocalColor_ShadowedPointLight(t *testing.T) {
	s := newTestScene(1, 1)
	s.AddSphere(core.NewPoint3(0, 0, 0), 1, material.NewDiffuse(core.Splat(1)))
	s.AddSphere(core.NewPoint3(0, 0, 3), 0.5, material.Default())

	ray := core.NewRay(core.NewPoint3(0, 0, 0.5), core.NewVec3(0, 0, 1))
	hit, ok := IntersectFromView(ray, s)
	require.True(t, ok)
	require.Equal(t, 0, hit.Index)

	set := lights.NewSet(lights.NewPoint(core.NewPoint3(0, 0, 5), core.Splat(1)))
	assertColorNear(t, core.Vec3{}, NewShader(s).LocalColor(ray, hit, set))
}

func TestRecursiveColor_NoReflectionHit(t *testing.T) {
	mat := material.NewDiffuse(core.NewVec3(0.4, 0.2, 0.8))
	mat.Specular = core.Splat(1)
	s := newTestScene(1, 1)
	s.AddSphere(core.NewPoint3(0, 0, 0), 1, mat)
	s.AddPointLight(core.NewPoint3(0, 0, 5), core.Splat(1))

	ray := core.NewRay(core.NewPoint3(0, 0, 10), core.NewVec3(0, 0, -1))
	hit, ok := IntersectFromView(ray, s)
	require.True(t, ok)

	sh := NewShader(s)
	assertColorNear(t, sh.LocalColor(ray, hit, s.Lights), sh.RecursiveColor(ray, hit, 0))
	assert.Equal(t, 1, sh.calls)
}

func TestRecursiveColor_SyntheticLight(t *testing.T) {
	// A mirror sphere facing a glowing sphere. The mirror's color is its local
	// shading plus its Blinn-Phong response to a point light at the glowing
	// sphere's hit point, colored by that sphere's own recursive color.
	mirror := material.Material{Diffuse: core.Splat(0.5), Specular: core.Splat(0.5), Shininess: 1}
	glow := material.Material{Emission: core.NewVec3(1, 0.5, 0)}

	s := newTestScene(1, 1)
	s.MaxDepth = 1
	s.AddSphere(core.NewPoint3(0, 0, 0), 1, mirror)
	s.AddSphere(core.NewPoint3(0, 0, 5), 1, glow)

	ray := core.NewRay(core.NewPoint3(0, 0, 2.5), core.NewVec3(0, 0, -1))
	hit, ok := IntersectFromView(ray, s)
	require.True(t, ok)
	require.Equal(t, 0, hit.Index)

	sh := NewShader(s)
	c := sh.RecursiveColor(ray, hit, 0)

	// The glowing sphere has no specular term, so its recursive color is its emission
	incoming := glow.Emission
	// Synthetic light at (0,0,4), distance 3, default attenuation: N.L = N.H = 1.
	// The glowing sphere's surface coincides with the light, and Shadowed lets a
	// blocker within ShadowEpsilon of the light through, so the light is visible.
	expected := mirror.Diffuse.Add(mirror.Specular).MultiplyVec(incoming).MultiplyVec(mirror.Specular)
	assertColorNear(t, expected, c)
}

func TestRecursiveColor_Termination(t *testing.T) {
	for _, maxDepth := range []int{0, 1, 3, 7} {
		s := newTestScene(1, 1)
		s.MaxDepth = maxDepth
		mirror := material.Material{Specular: core.Splat(0.9), Shininess: 50}
		s.AddQuad(core.NewPoint3(-2, -2, -1), core.NewVec3(4, 0, 0), core.NewVec3(0, 4, 0), mirror)
		s.AddQuad(core.NewPoint3(-2, -2, 1), core.NewVec3(4, 0, 0), core.NewVec3(0, 4, 0), mirror)
		s.AddPointLight(core.NewPoint3(0, 0, 0), core.Splat(1))

		ray := core.NewRay(core.NewPoint3(0.1, 0.2, 0), core.NewVec3(0, 0, -1))
		hit, ok := IntersectFromView(ray, s)
		require.True(t, ok)

		sh := NewShader(s)
		sh.RecursiveColor(ray, hit, 0)

		// Facing mirrors always find a next hit, so recursion runs to the cap
		assert.Equal(t, maxDepth+1, sh.maxDepthSeen, "max depth %d", maxDepth)
		assert.Equal(t, maxDepth+2, sh.calls, "max depth %d", maxDepth)
	}
}

func TestRecursiveColor_BeyondMaxDepth(t *testing.T) {
	s := newTestScene(1, 1)
	s.MaxDepth = 2
	s.AddSphere(core.NewPoint3(0, 0, 0), 1, material.Default())

	ray := core.NewRay(core.NewPoint3(0, 0, 10), core.NewVec3(0, 0, -1))
	hit, ok := IntersectFromView(ray, s)
	require.True(t, ok)

	assertColorNear(t, core.Vec3{}, NewShader(s).RecursiveColor(ray, hit, 3))
}
