package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewCornellScene creates a Cornell box built from triangle walls, lit by a
// single point light just under the ceiling
func NewCornellScene() *Scene {
	s := New()
	s.Name = "cornell"
	s.Width = 400
	s.Height = 400
	s.MaxDepth = 6
	s.Camera = geometry.NewCamera(
		core.NewPoint3(278, 278, -800), // outside the open side of the box
		core.NewPoint3(278, 278, 0),
		core.NewVec3(0, 1, 0),
		40,
	)

	ambient := core.Splat(0.08)
	white := material.Material{Ambient: ambient, Diffuse: core.Splat(0.73)}
	red := material.Material{Ambient: ambient, Diffuse: core.NewVec3(0.65, 0.05, 0.05)}
	green := material.Material{Ambient: ambient, Diffuse: core.NewVec3(0.12, 0.45, 0.15)}
	mirror := material.Material{Ambient: core.Splat(0.02), Diffuse: core.Splat(0.05), Specular: core.NewVec3(0.8, 0.8, 0.9), Shininess: 300}
	glossy := material.Material{Ambient: ambient, Diffuse: core.NewVec3(0.1, 0.2, 0.6), Specular: core.Splat(0.4), Shininess: 60}

	const size = 555.0

	// Every wall's normal faces into the box
	s.AddQuad(core.NewPoint3(0, 0, 0), core.NewVec3(0, 0, size), core.NewVec3(size, 0, 0), white)    // floor
	s.AddQuad(core.NewPoint3(0, size, 0), core.NewVec3(size, 0, 0), core.NewVec3(0, 0, size), white) // ceiling
	s.AddQuad(core.NewPoint3(0, 0, size), core.NewVec3(0, size, 0), core.NewVec3(size, 0, 0), white) // back
	s.AddQuad(core.NewPoint3(0, 0, 0), core.NewVec3(0, size, 0), core.NewVec3(0, 0, size), red)      // left
	s.AddQuad(core.NewPoint3(size, 0, 0), core.NewVec3(0, 0, size), core.NewVec3(0, size, 0), green) // right

	s.AddSphere(core.NewPoint3(185, 82.5, 169), 82.5, mirror)
	s.AddSphere(core.NewPoint3(370, 90, 351), 90, glossy)

	s.AddPointLight(core.NewPoint3(size/2, size-15, size/2), core.Splat(0.85))

	return s
}
