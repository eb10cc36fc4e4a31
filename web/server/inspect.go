package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/renderer"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool           `json:"hit"`
	GeometryType string         `json:"geometryType,omitempty"`
	Point        [3]float32     `json:"point"`
	Normal       [3]float32     `json:"normal"`
	Distance     float32        `json:"distance"`
	FrontFace    bool           `json:"frontFace"`
	Pixel        [3]uint8       `json:"pixel"` // Quantized color the render writes for this pixel
	Properties   map[string]any `json:"properties,omitempty"`
}

// InspectResult contains the nearest hit under a pixel and the pixel it renders to
type InspectResult struct {
	Hit   bool
	Rec   geometry.ShadeRec
	Pixel core.RGB
}

// inspectPixel casts the primary ray for an image pixel. row 0 is the
// top of the image, so it maps to the camera's highest scan line.
func inspectPixel(rt *renderer.Raytracer, x, row int) InspectResult {
	camera := rt.Camera()
	ray := camera.Ray(x, camera.Height()-row-1)
	config := rt.Config()

	rec, ok := rt.Intersect(ray)
	color := config.Background
	if ok {
		color = rt.Shade(ray, rec)
	}
	return InspectResult{Hit: ok, Rec: rec, Pixel: color.ToBytes(config.Quantize)}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]any) {
	properties := make(map[string]any)

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vec3Array(geom.Center)
		properties["radius"] = geom.Radius
		properties["color"] = hexColor(geom.Color)

	case *geometry.Triangle:
		properties["v0"] = vec3Array(geom.V0)
		properties["v1"] = vec3Array(geom.V1)
		properties["v2"] = vec3Array(geom.V2)
		properties["normal"] = vec3Array(geom.Normal())
		properties["color"] = hexColor(geom.Color)
	}
	return string(shape.Kind()), properties
}

// handleInspect casts the ray through one pixel and reports what it hit
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	req, err := parseRenderRequest(values)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	sceneObj, err := s.buildScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pixelX, err := strconv.Atoi(values.Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(values.Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	width, height := sceneObj.CameraConfig.Width, sceneObj.CameraConfig.Height
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	rt, err := sceneObj.NewRaytracer(req.rendererConfig())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := inspectPixel(rt, pixelX, pixelY)
	response := InspectResponse{
		Hit:   result.Hit,
		Pixel: [3]uint8{result.Pixel.R, result.Pixel.G, result.Pixel.B},
	}
	if result.Hit {
		response.GeometryType, response.Properties = extractGeometryInfo(result.Rec.Shape)
		response.Point = vec3Array(result.Rec.Point)
		response.Normal = vec3Array(result.Rec.Normal)
		response.Distance = result.Rec.T
		response.FrontFace = result.Rec.FrontFace
	}

	writeJSON(w, http.StatusOK, response)
}

func vec3Array(v core.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func hexColor(c core.Color) string {
	b := c.ToBytes(core.QuantizeClamp)
	return fmt.Sprintf("#%02x%02x%02x", b.R, b.G, b.B)
}
