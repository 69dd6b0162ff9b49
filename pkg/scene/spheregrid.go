package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	// Convert hue from degrees to radians
	hRad := h * math.Pi / 180.0

	// Convert from OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// Convert from OKLAB to linear RGB
	// Using simplified approximation for OKLAB to RGB conversion
	// This is not perfectly accurate but good enough for our purposes

	// First convert to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	// Cube the values
	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// Convert LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	// Clamp to [0, 1] range
	r = math.Max(0, math.Min(1, r))
	g = math.Max(0, math.Min(1, g))
	blue = math.Max(0, math.Min(1, blue))

	return core.NewVec3(r, g, blue)
}

// NewSphereGridScene creates a scene with a grid of glossy spheres on a floor
func NewSphereGridScene() *Scene {
	s := New()
	s.Name = "spheregrid"
	s.Width = 480
	s.Height = 270
	s.MaxDepth = 3
	s.Camera = geometry.NewCamera(
		core.NewPoint3(4.5, 6, 18),   // farther back and slightly above
		core.NewPoint3(4.5, 0.8, 4.5), // center of grid
		core.NewVec3(0, 1, 0),
		40,
	)
	s.Lights.Attenuation = [3]float64{1, 0.01, 0}

	s.AddPointLight(core.NewPoint3(20, 25, 20), core.NewVec3(1.0, 0.95, 0.85))
	s.AddDirectionalLight(core.NewVec3(-0.3, 1, 0.2), core.Splat(0.2))

	// Ground quad (gray, slightly reflective)
	ground := material.Material{Ambient: core.Splat(0.05), Diffuse: core.Splat(0.5), Specular: core.Splat(0.1), Shininess: 5}
	s.AddQuad(core.NewPoint3(-50, 0, 50), core.NewVec3(100, 0, 0), core.NewVec3(0, 0, -100), ground)

	gridSize := 10

	// Fit the grid into roughly 9x9 units
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)
	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	// OKLCH parameters for color variation
	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5

			// Hue across X, chroma across Z
			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, chroma, hue)

			// Vary the highlight tightness slightly
			shininess := 20 + 40*float64((i+j)%3)
			mat := material.Material{
				Ambient:   color.Multiply(0.1),
				Diffuse:   color.Multiply(0.6),
				Specular:  core.Splat(0.35),
				Shininess: shininess,
			}

			s.AddSphere(core.NewPoint3(x, sphereRadius, z), sphereRadius, mat)
		}
	}

	return s
}
