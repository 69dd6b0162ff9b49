package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

const (
	// triangleEpsilonScale quantizes the parallel test and the barycentric
	// range checks so that round-off at the edges does not open cracks.
	triangleEpsilonScale = 1e6
	// MinHitDistance rejects plane hits behind or at the ray origin
	MinHitDistance = 1e-7
)

// Triangle represents a single flat triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Point3
	Transform  core.Matrix4
	Material   material.Material
}

// NewTriangle creates an untransformed triangle
func NewTriangle(v0, v1, v2 core.Point3, mat material.Material) *Triangle {
	return NewTransformedTriangle(v0, v1, v2, core.Identity(), mat)
}

// NewTransformedTriangle creates a triangle whose object space is mapped to world space by transform
func NewTransformedTriangle(v0, v1, v2 core.Point3, transform core.Matrix4, mat material.Material) *Triangle {
	return &Triangle{
		V0:        v0,
		V1:        v1,
		V2:        v2,
		Transform: transform,
		Material:  mat,
	}
}

// planeNormal returns the unnormalized object-space normal
func (t *Triangle) planeNormal() core.Vec3 {
	return t.V1.Sub(t.V0).Cross(t.V2.Sub(t.V0))
}

// Barycentric returns the barycentric coordinates of an object-space point
// in the triangle's plane, weighting V0, V1 and V2 respectively.
func (t *Triangle) Barycentric(p core.Point3) (alpha, beta, gamma float64) {
	n := t.planeNormal()
	nn := n.Dot(n)

	normA := t.V2.Sub(t.V1).Cross(p.Sub(t.V1))
	normB := t.V0.Sub(t.V2).Cross(p.Sub(t.V2))

	alpha = n.Dot(normA) / nn
	beta = n.Dot(normB) / nn
	gamma = 1 - alpha - beta
	return alpha, beta, gamma
}

// Intersect tests a world-space ray against the triangle
func (t *Triangle) Intersect(ray core.Ray) (Hit, bool) {
	objRay := t.Transform.InverseRay(ray)
	unitNormal := t.planeNormal().Normalize()

	divisor := objRay.Direction.Dot(unitNormal)
	if !(math.Abs(divisor)*triangleEpsilonScale >= 1) {
		return Hit{}, false
	}

	dist := t.V0.Sub(objRay.Origin).Dot(unitNormal) / divisor
	if dist < MinHitDistance {
		return Hit{}, false
	}

	p := objRay.At(dist)
	alpha, beta, gamma := t.Barycentric(p)
	if !inUnitRange(alpha) || !inUnitRange(beta) || !inUnitRange(gamma) {
		return Hit{}, false
	}

	return Hit{
		Point: t.Transform.ApplyPoint(p),
		Shape: t,
	}, true
}

// inUnitRange accepts x <= 1 and x*1e6 > -1, i.e. values that truncate to a
// non-negative integer once scaled.
func inUnitRange(x float64) bool {
	return x <= 1 && x*triangleEpsilonScale > -1
}

// Normal returns the flat world-space normal; point is ignored.
// The edge cross product is taken in object space and then mapped through
// the transform's inverse transpose, so a transformed triangle does not shade
// like one using the raw object-space normal.
func (t *Triangle) Normal(point core.Point3) core.Vec3 {
	return t.Transform.InverseNormal(t.planeNormal().Normalize())
}

func (t *Triangle) Kind() Kind                      { return KindTriangle }
func (t *Triangle) GetMaterial() material.Material { return t.Material }
func (t *Triangle) GetTransform() core.Matrix4     { return t.Transform }
