package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Kind identifies the primitive variant of a Shape
type Kind int

const (
	KindSphere Kind = iota
	KindTriangle
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindTriangle:
		return "triangle"
	default:
		return "unknown"
	}
}

// Shape is implemented by *Sphere and *Triangle. Geometry lives in object
// space; the transform snapshot maps object space to world space.
type Shape interface {
	// Intersect tests a world-space ray. The returned Hit has Index 0;
	// scene scans fill it in.
	Intersect(ray core.Ray) (Hit, bool)
	// Normal returns the unit world-space surface normal at a world-space point on the shape
	Normal(point core.Point3) core.Vec3
	Kind() Kind
	GetMaterial() material.Material
	GetTransform() core.Matrix4
}
