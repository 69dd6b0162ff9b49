package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool           `json:"hit"`
	MaterialType string         `json:"materialType"`
	GeometryType string         `json:"geometryType"`
	Index        int            `json:"index"`
	Point        [3]float64     `json:"point"`
	Normal       [3]float64     `json:"normal"`
	Distance     float64        `json:"distance"`
	Color        [3]float64     `json:"color"`
	Properties   map[string]any `json:"properties"`
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func pointArray(p core.Point3) [3]float64 {
	return [3]float64{p.X, p.Y, p.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractMaterialInfo describes a Blinn-Phong material
func extractMaterialInfo(mat material.Material) (string, map[string]any) {
	properties := map[string]any{
		"ambient":   vecArray(mat.Ambient),
		"diffuse":   vecArray(mat.Diffuse),
		"specular":  vecArray(mat.Specular),
		"emission":  vecArray(mat.Emission),
		"shininess": mat.Shininess,
		"color":     hexColor(mat.Diffuse.Add(mat.Base())),
	}
	switch {
	case !mat.Emission.IsZero():
		return "emissive", properties
	case mat.IsMirror():
		return "mirror", properties
	default:
		return "diffuse", properties
	}
}

// extractGeometryInfo describes a primitive and its transform
func extractGeometryInfo(shape geometry.Shape) (string, map[string]any) {
	properties := map[string]any{
		"transformed": !shape.GetTransform().ApproxEqual(core.Identity(), 1e-12),
	}

	switch s := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = pointArray(s.Center)
		properties["radius"] = s.Radius
	case *geometry.Triangle:
		properties["vertices"] = [3][3]float64{pointArray(s.V0), pointArray(s.V1), pointArray(s.V2)}
	}
	return shape.Kind().String(), properties
}

// InspectResult contains information about the primitive seen through a pixel
type InspectResult struct {
	Hit   bool
	Ray   core.Ray
	Info  geometry.Hit
	Color core.Vec3
}

// inspectPixel casts the camera ray through the centre of a pixel and shades the nearest hit
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) (InspectResult, error) {
	projection, err := sceneObj.Camera.Project(sceneObj.Width, sceneObj.Height)
	if err != nil {
		return InspectResult{}, err
	}

	ray := projection.RayThrough(pixelY, pixelX)
	hit, ok := renderer.IntersectFromView(ray, sceneObj)
	if !ok {
		return InspectResult{Ray: ray}, nil
	}

	return InspectResult{
		Hit:   true,
		Ray:   ray,
		Info:  hit,
		Color: renderer.NewShader(sceneObj).RecursiveColor(ray, hit, 0),
	}, nil
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq := &RenderRequest{}
	if err := s.parseSceneParams(r, inspectReq); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	sceneObj, err := s.createScene(inspectReq, s.logger)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if pixelX < 0 || pixelX >= sceneObj.Width || pixelY < 0 || pixelY >= sceneObj.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	result, err := inspectPixel(sceneObj, pixelX, pixelY)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false, Index: -1})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.Info.Shape.GetMaterial())
	geometryType, geometryProps := extractGeometryInfo(result.Info.Shape)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Index:        result.Info.Index,
		Point:        pointArray(result.Info.Point),
		Normal:       vecArray(result.Info.Shape.Normal(result.Info.Point)),
		Distance:     result.Info.Distance(result.Ray.Origin),
		Color:        vecArray(result.Color),
		Properties: map[string]any{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
