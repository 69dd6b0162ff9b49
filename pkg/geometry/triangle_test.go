package geometry

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func newUnitTriangle() *Triangle {
	return NewTriangle(
		core.NewPoint3(0, 0, 0),
		core.NewPoint3(1, 0, 0),
		core.NewPoint3(0, 1, 0),
		material.Default(),
	)
}

func TestTriangle_Intersect(t *testing.T) {
	triangle := newUnitTriangle()

	tests := []struct {
		name        string
		ray         core.Ray
		shouldHit   bool
		expectedHit core.Point3
	}{
		{
			name:        "ray hits center of triangle",
			ray:         core.NewRay(core.NewPoint3(0.25, 0.25, 1), core.NewVec3(0, 0, -1)),
			shouldHit:   true,
			expectedHit: core.NewPoint3(0.25, 0.25, 0),
		},
		{
			name:        "ray hits from behind",
			ray:         core.NewRay(core.NewPoint3(0.25, 0.25, -1), core.NewVec3(0, 0, 1)),
			shouldHit:   true,
			expectedHit: core.NewPoint3(0.25, 0.25, 0),
		},
		{
			name:        "ray hits a vertex",
			ray:         core.NewRay(core.NewPoint3(1, 0, 1), core.NewVec3(0, 0, -1)),
			shouldHit:   true,
			expectedHit: core.NewPoint3(1, 0, 0),
		},
		{
			name:        "ray hits the hypotenuse",
			ray:         core.NewRay(core.NewPoint3(0.5, 0.5, 1), core.NewVec3(0, 0, -1)),
			shouldHit:   true,
			expectedHit: core.NewPoint3(0.5, 0.5, 0),
		},
		{
			name:      "ray misses triangle",
			ray:       core.NewRay(core.NewPoint3(2, 2, 1), core.NewVec3(0, 0, -1)),
			shouldHit: false,
		},
		{
			name:      "ray parallel to triangle",
			ray:       core.NewRay(core.NewPoint3(0.25, 0.25, 1), core.NewVec3(1, 0, 0)),
			shouldHit: false,
		},
		{
			name:      "triangle behind ray",
			ray:       core.NewRay(core.NewPoint3(0.25, 0.25, 1), core.NewVec3(0, 0, 1)),
			shouldHit: false,
		},
		{
			name:      "origin on the plane",
			ray:       core.NewRay(core.NewPoint3(0.25, 0.25, 0), core.NewVec3(0, 0, -1)),
			shouldHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := triangle.Intersect(tt.ray)
			require.Equal(t, tt.shouldHit, isHit)
			if tt.shouldHit {
				assert.InDelta(t, 0, hit.Point.Distance(tt.expectedHit), 1e-9)
				assert.Equal(t, KindTriangle, hit.Kind())
			}
		})
	}
}

func TestTriangle_BarycentricClosure(t *testing.T) {
	triangle := NewTriangle(
		core.NewPoint3(-1, -1, -2),
		core.NewPoint3(3, -0.5, -2.5),
		core.NewPoint3(0, 2, -1.5),
		material.Default(),
	)
	random := rand.New(rand.NewSource(7))

	hits := 0
	for i := 0; i < 500; i++ {
		origin := core.NewPoint3(random.Float64()*6-3, random.Float64()*6-3, 5)
		target := core.NewPoint3(random.Float64()*6-3, random.Float64()*6-3, -2)
		ray := core.NewRay(origin, target.Sub(origin))

		hit, isHit := triangle.Intersect(ray)
		if !isHit {
			continue
		}
		hits++

		alpha, beta, gamma := triangle.Barycentric(hit.Point)
		assert.InDelta(t, 1.0, alpha+beta+gamma, 1e-9)
		for _, c := range []float64{alpha, beta, gamma} {
			assert.GreaterOrEqual(t, c, -1e-6)
			assert.LessOrEqual(t, c, 1.0)
		}
	}
	assert.Greater(t, hits, 0, "expected some random rays to hit")
}

func TestTriangle_Barycentric_Vertices(t *testing.T) {
	triangle := newUnitTriangle()

	a, b, c := triangle.Barycentric(triangle.V0)
	assert.InDelta(t, 1, a, 1e-12)
	assert.InDelta(t, 0, b, 1e-12)
	assert.InDelta(t, 0, c, 1e-12)

	a, b, c = triangle.Barycentric(triangle.V1)
	assert.InDelta(t, 0, a, 1e-12)
	assert.InDelta(t, 1, b, 1e-12)
	assert.InDelta(t, 0, c, 1e-12)
}

func TestTriangle_Normal(t *testing.T) {
	triangle := newUnitTriangle()
	assert.Equal(t, core.NewVec3(0, 0, 1), triangle.Normal(core.NewPoint3(0.2, 0.2, 0)))

	rotated := NewTransformedTriangle(triangle.V0, triangle.V1, triangle.V2,
		core.Rotate(core.NewVec3(1, 0, 0), 90), material.Default())
	// The object-space edge normal would still be +Z; the world normal follows the rotation
	n := rotated.Normal(core.Point3{})
	assert.InDelta(t, 0, n.Subtract(core.NewVec3(0, -1, 0)).Length(), 1e-9)
}

func TestTriangle_Intersect_Transformed(t *testing.T) {
	triangle := NewTransformedTriangle(
		core.NewPoint3(0, 0, 0),
		core.NewPoint3(1, 0, 0),
		core.NewPoint3(0, 1, 0),
		core.Translate(0, 0, -5).Mul(core.Scale(4, 4, 1)),
		material.Default(),
	)

	hit, isHit := triangle.Intersect(core.NewRay(core.NewPoint3(1, 1, 0), core.NewVec3(0, 0, -1)))
	require.True(t, isHit)
	assert.InDelta(t, 0, hit.Point.Distance(core.NewPoint3(1, 1, -5)), 1e-9)

	// outside the scaled triangle
	_, isHit = triangle.Intersect(core.NewRay(core.NewPoint3(3, 3, 0), core.NewVec3(0, 0, -1)))
	assert.False(t, isHit)
}

func TestTriangle_NearlyParallel(t *testing.T) {
	triangle := newUnitTriangle()
	dir := core.NewVec3(1, 0, -5e-7)
	_, isHit := triangle.Intersect(core.NewRay(core.NewPoint3(0, 0.25, 1e-8), dir))
	assert.False(t, isHit, "a ray within the scaled epsilon of the plane is treated as parallel")
}
