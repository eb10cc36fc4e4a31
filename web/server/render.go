package server

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/imageio"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string               // Built-in scene name or file:<name>
	Width    int                  // Image width, 0 keeps the scene's
	Height   int                  // Image height, 0 keeps the scene's
	FOV      float64              // Vertical field of view, 0 keeps the scene's
	Format   imageio.Format       // Response encoding
	Quantize core.QuantizeMode    // Out-of-range color policy
	Shading  renderer.ShadingMode // Shading mode
}

// handleRender renders a whole frame and responds with the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.buildScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rt, err := sceneObj.NewRaytracer(req.rendererConfig())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Use request context to stop rendering when the client disconnects
	img, stats, err := rt.RenderContext(r.Context())
	if err != nil {
		core.Logger().Warn("render aborted", "scene", req.Scene, "error", err)
		return
	}

	var buf bytes.Buffer
	if err := imageio.Encode(&buf, img, req.Format); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	core.Logger().Info("render served",
		"scene", req.Scene,
		"width", img.Width,
		"height", img.Height,
		"format", req.Format,
		"elapsed", stats.Elapsed)

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Render-Rays", strconv.Itoa(stats.RaysCast))
	w.Header().Set("X-Render-Elapsed-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// parseRenderRequest parses and validates query parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "single-sphere"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, 1, maxRenderDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, 1, maxRenderDimension); err != nil {
		return nil, err
	}
	if req.FOV, err = parseFloatParam(values, "fov", 0, 1, 179); err != nil {
		return nil, err
	}

	format := values.Get("format")
	if format == "" {
		format = string(imageio.FormatPNG)
	}
	if req.Format, err = imageio.ParseFormat(format); err != nil {
		return nil, err
	}
	if req.Quantize, err = core.ParseQuantizeMode(values.Get("quantize")); err != nil {
		return nil, err
	}
	if req.Shading, err = renderer.ParseShadingMode(values.Get("shading")); err != nil {
		return nil, err
	}

	return req, nil
}

// maxRenderDimension bounds the width and height of any image the server renders
const maxRenderDimension = 2000

// buildScene resolves the requested scene and applies camera overrides
func (s *Server) buildScene(req *RenderRequest) (*scene.Scene, error) {
	result, err := scene.Resolve(req.Scene, s.scenesDir)
	if err != nil {
		return nil, err
	}
	if len(result.Skipped) > 0 {
		core.Logger().Warn("scene file has skipped records", "scene", req.Scene, "skipped", len(result.Skipped))
	}

	sceneObj := result.Scene
	if req.Width > 0 {
		sceneObj.CameraConfig.Width = req.Width
	}
	if req.Height > 0 {
		sceneObj.CameraConfig.Height = req.Height
	}
	if req.FOV > 0 {
		sceneObj.CameraConfig.VFov = float32(req.FOV)
	}
	if err := sceneObj.CameraConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid camera: %w", err)
	}
	if w, h := sceneObj.CameraConfig.Width, sceneObj.CameraConfig.Height; w > maxRenderDimension || h > maxRenderDimension {
		return nil, fmt.Errorf("scene resolution %dx%d exceeds the server limit of %d", w, h, maxRenderDimension)
	}
	return sceneObj, nil
}

// rendererConfig applies the request's options to the default configuration
func (req *RenderRequest) rendererConfig() renderer.Config {
	config := renderer.DefaultConfig()
	config.Quantize = req.Quantize
	config.Shading = req.Shading
	return config
}
