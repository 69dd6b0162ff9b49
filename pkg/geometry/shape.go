package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Hit is the record of a ray-primitive intersection. Index refers to the
// scene's primitive list at the time of the query.
type Hit struct {
	Index int
	Point core.Point3 // world space
	Shape Shape
}

// Distance returns the world-space distance from origin to the hit point
func (h Hit) Distance(origin core.Point3) float64 {
	return origin.Distance(h.Point)
}

// Kind returns the kind of the hit primitive
func (h Hit) Kind() Kind {
	return h.Shape.Kind()
}
