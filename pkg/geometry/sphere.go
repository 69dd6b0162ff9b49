package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere in object space with its own transform
type Sphere struct {
	Center    core.Point3
	Radius    float64
	Transform core.Matrix4
	Material  material.Material
}

// NewSphere creates an untransformed sphere
func NewSphere(center core.Point3, radius float64, mat material.Material) *Sphere {
	return NewTransformedSphere(center, radius, core.Identity(), mat)
}

// NewTransformedSphere creates a sphere whose object space is mapped to world space by transform
func NewTransformedSphere(center core.Point3, radius float64, transform core.Matrix4, mat material.Material) *Sphere {
	return &Sphere{
		Center:    center,
		Radius:    radius,
		Transform: transform,
		Material:  mat,
	}
}

// Intersect finds the closest positive intersection of a world-space ray
func (s *Sphere) Intersect(ray core.Ray) (Hit, bool) {
	objRay := s.Transform.InverseRay(ray)
	oc := objRay.Origin.Sub(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := objRay.Direction.Dot(objRay.Direction)
	b := 2 * objRay.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	if a == 0 {
		return Hit{}, false
	}

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return Hit{}, false
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)

	// Sphere entirely behind the ray origin
	if t2 < 0 {
		return Hit{}, false
	}

	// Origin inside the sphere (t1 < 0) or a negative a flipped the roots
	root := t1
	if t1 < 0 || t2 < t1 {
		root = t2
	}

	return Hit{
		Point: s.Transform.ApplyPoint(objRay.At(root)),
		Shape: s,
	}, true
}

// Normal returns the world-space normal at a world-space point on the sphere
func (s *Sphere) Normal(point core.Point3) core.Vec3 {
	objPoint := s.Transform.InversePoint(point)
	return s.Transform.InverseNormal(objPoint.Sub(s.Center).Normalize())
}

func (s *Sphere) Kind() Kind                      { return KindSphere }
func (s *Sphere) GetMaterial() material.Material { return s.Material }
func (s *Sphere) GetTransform() core.Matrix4     { return s.Transform }
