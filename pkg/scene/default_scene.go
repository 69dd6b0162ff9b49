package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates a default scene with three spheres on a mirror-ish floor
func NewDefaultScene() *Scene {
	s := New()
	s.Name = "default"
	s.Width = 400
	s.Height = 225
	s.Camera = geometry.NewCamera(
		core.NewPoint3(0, 1.5, 6), // slightly above the floor
		core.NewPoint3(0, 0.5, 0),
		core.NewVec3(0, 1, 0),
		40,
	)
	s.Lights.Attenuation = [3]float64{1, 0, 0.01}

	ambient := core.Splat(0.05)
	red := material.Material{Ambient: ambient, Diffuse: core.NewVec3(0.7, 0.15, 0.1), Specular: core.Splat(0.3), Shininess: 40}
	silver := material.Material{Ambient: ambient, Diffuse: core.Splat(0.1), Specular: core.Splat(0.8), Shininess: 200}
	blue := material.Material{Ambient: ambient, Diffuse: core.NewVec3(0.1, 0.2, 0.6), Specular: core.Splat(0.2), Shininess: 20}
	floor := material.Material{Ambient: ambient, Diffuse: core.NewVec3(0.5, 0.5, 0.4), Specular: core.Splat(0.15), Shininess: 10}

	s.AddSphere(core.NewPoint3(0, 0.75, 0), 0.75, red)
	s.AddSphere(core.NewPoint3(-1.8, 0.6, -0.6), 0.6, silver)
	s.Shapes = append(s.Shapes, geometry.NewTransformedSphere(
		core.NewPoint3(0, 0, 0), 1,
		core.Translate(1.8, 0.4, -0.3).Mul(core.Scale(0.6, 0.4, 0.6)),
		blue,
	))

	// Floor: a large quad at y=0 facing up
	s.AddQuad(core.NewPoint3(-20, 0, 20), core.NewVec3(40, 0, 0), core.NewVec3(0, 0, -40), floor)

	s.AddPointLight(core.NewPoint3(4, 6, 5), core.NewVec3(0.8, 0.8, 0.75))
	s.AddDirectionalLight(core.NewVec3(-1, 1, 0.5), core.Splat(0.25))

	return s
}

// NewMirrorScene creates two parallel mirrors facing each other with a sphere
// between them, so reflection rays bounce until the depth bound stops them.
func NewMirrorScene() *Scene {
	s := New()
	s.Name = "mirrors"
	s.Width = 320
	s.Height = 240
	s.MaxDepth = 8
	s.Camera = geometry.NewCamera(
		core.NewPoint3(0, 2, 7),
		core.NewPoint3(0, 1, 0),
		core.NewVec3(0, 1, 0),
		50,
	)

	mirror := material.Material{Ambient: core.Splat(0.02), Diffuse: core.Splat(0.05), Specular: core.Splat(0.9), Shininess: 100}
	ball := material.Material{Ambient: core.Splat(0.1), Diffuse: core.NewVec3(0.2, 0.7, 0.3), Specular: core.Splat(0.3), Shininess: 30}

	s.AddQuad(core.NewPoint3(-3, 0, 4), core.NewVec3(0, 0, -8), core.NewVec3(0, 4, 0), mirror)
	s.AddQuad(core.NewPoint3(3, 0, -4), core.NewVec3(0, 0, 8), core.NewVec3(0, 4, 0), mirror)
	s.AddSphere(core.NewPoint3(0, 1, 0), 1, ball)

	s.AddPointLight(core.NewPoint3(0, 5, 5), core.Splat(0.9))

	return s
}
