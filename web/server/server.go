package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	scenesDir string
	logger    core.Logger
	mux       *http.ServeMux
}

// NewServer creates a new web server. Scene files are looked up in scenesDir.
func NewServer(port int, scenesDir string, logger core.Logger) *Server {
	if logger == nil {
		logger = core.NopLogger{}
	}
	s := &Server{
		port:      port,
		scenesDir: scenesDir,
		logger:    logger,
		mux:       http.NewServeMux(),
	}

	// API endpoints
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	return s
}

// Handler returns the HTTP handler serving every endpoint
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Infof("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string `json:"scene"`    // Scene ID, e.g. "default" or "file:mirror-box"
	Width    int    `json:"width"`    // Image width override, 0 keeps the scene's
	Height   int    `json:"height"`   // Image height override, 0 keeps the scene's
	MaxDepth int    `json:"maxDepth"` // Reflection depth override, -1 keeps the scene's
	Workers  int    `json:"workers"`  // 0 = auto-detect
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes and scene files grouped for the UI
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		s.logger.Errorf("Listing scenes in %s: %v", s.scenesDir, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// parseSceneParams parses the parameters shared by render and inspect requests
func (s *Server) parseSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 1, 2000); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", 0, 1, 2000); err != nil {
		return err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", -1, 0, 50); err != nil {
		return err
	}
	return nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds the requested scene and applies the request overrides
func (s *Server) createScene(req *RenderRequest, logger core.Logger) (*scene.Scene, error) {
	var (
		sceneObj *scene.Scene
		err      error
	)
	if name, ok := strings.CutPrefix(req.Scene, "file:"); ok {
		if name == "" || name != filepath.Base(name) {
			return nil, fmt.Errorf("invalid scene file name %q", name)
		}
		path := filepath.Join(s.scenesDir, name+scene.SceneFileExt)
		if _, statErr := os.Stat(path); statErr != nil {
			return nil, fmt.Errorf("unknown scene: %s", req.Scene)
		}
		sceneObj, err = loaders.LoadScene(path, logger)
	} else {
		sceneObj, err = scene.Create(req.Scene)
	}
	if err != nil {
		return nil, err
	}

	if req.Width > 0 {
		sceneObj.Width = req.Width
	}
	if req.Height > 0 {
		sceneObj.Height = req.Height
	}
	if req.MaxDepth >= 0 {
		sceneObj.MaxDepth = req.MaxDepth
	}
	return sceneObj, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
