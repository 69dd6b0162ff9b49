package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// BandUpdate represents a finished band of rows sent via SSE
type BandUpdate struct {
	Y0         int    `json:"y0"`
	Y1         int    `json:"y1"`
	Width      int    `json:"width"`
	ImageData  string `json:"imageData"` // Base64 encoded PNG of just this band
	BandNumber int    `json:"bandNumber"`
	TotalBands int    `json:"totalBands"`
	ElapsedMs  int64  `json:"elapsedMs"`
}

// CompleteUpdate is the final SSE event of a render
type CompleteUpdate struct {
	RenderID         string  `json:"renderId"`
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	ImageData        string  `json:"imageData"` // Base64 encoded PNG of the whole frame
	TotalPixels      int     `json:"totalPixels"`
	HitPixels        int     `json:"hitPixels"`
	Bands            int     `json:"bands"`
	Workers          int     `json:"workers"`
	PrimitiveCount   int     `json:"primitiveCount"`
	AverageLuminance float64 `json:"averageLuminance"`
	ElapsedMs        int64   `json:"elapsedMs"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "band", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender renders a scene, streaming finished bands and console output via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	renderID := uuid.NewString()
	s.setSSEHeaders(w, renderID)

	ctx := r.Context()

	// Single writer goroutine; it must finish before the handler returns
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		s.writeSSEEvents(ctx, w, sseEventChan)
		close(writerDone)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req := &RenderRequest{}
	if err := s.parseSceneParams(r, req); err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	var err error
	if req.Workers, err = parseIntParam(r.URL.Query(), "workers", 0, 1, 256); err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Console logging for this render
	consoleChan := make(chan ConsoleMessage, 50)
	webLogger := NewWebLogger(renderID, consoleChan, s.logger)
	consoleDone := make(chan struct{})
	go func() {
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
		close(consoleDone)
	}()
	defer func() {
		close(consoleChan)
		<-consoleDone
	}()

	sceneObj, err := s.createScene(req, webLogger)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	config := renderer.DefaultConfig()
	if req.Workers > 0 {
		config.Workers = req.Workers
	}
	raytracer, err := renderer.NewRaytracer(sceneObj, config, webLogger)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	startTime := time.Now()
	rows := raytracer.Config().RowsPerTask
	totalBands := (sceneObj.Height + rows - 1) / rows
	bandNumber := 0
	raytracer.OnBand = func(result renderer.BandResult) {
		bandNumber++
		s.handleBandUpdate(ctx, sseEventChan, result, sceneObj.Width, bandNumber, totalBands, startTime)
	}

	frame, err := raytracer.Render(ctx)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	s.handleComplete(ctx, sseEventChan, renderID, frame, sceneObj)
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter, renderID string) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-ID", renderID)
}

// writeSSEEvents writes every SSE event from a single goroutine until the
// channel is closed or the client goes away
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	for event := range sseEventChan {
		if ctx.Err() != nil {
			// Client disconnected; keep draining so senders never block
			continue
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			continue
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

// streamConsoleMessages forwards console messages until the console channel is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			s.logger.Errorf("Error marshaling console message: %v", err)
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		default:
			// Channel full, skip message to avoid blocking
		}
	}
}

// handleBandUpdate encodes a finished band and sends it
func (s *Server) handleBandUpdate(ctx context.Context, sseEventChan chan<- SSEEvent, result renderer.BandResult,
	width, bandNumber, totalBands int, startTime time.Time) {
	if ctx.Err() != nil {
		return
	}

	band := &renderer.Frame{Width: width, Height: result.Y1 - result.Y0, Pixels: result.Rows}
	imageData, err := imageToBase64PNG(band.Image())
	if err != nil {
		s.logger.Errorf("Error encoding band [%d,%d): %v", result.Y0, result.Y1, err)
		return
	}

	s.sendEvent(ctx, sseEventChan, "band", BandUpdate{
		Y0:         result.Y0,
		Y1:         result.Y1,
		Width:      width,
		ImageData:  imageData,
		BandNumber: bandNumber,
		TotalBands: totalBands,
		ElapsedMs:  time.Since(startTime).Milliseconds(),
	})
}

// handleComplete sends the finished frame and its statistics
func (s *Server) handleComplete(ctx context.Context, sseEventChan chan<- SSEEvent, renderID string, frame *renderer.Frame, sceneObj *scene.Scene) {
	imageData, err := imageToBase64PNG(frame.Image())
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	s.sendEvent(ctx, sseEventChan, "complete", CompleteUpdate{
		RenderID:         renderID,
		Width:            frame.Width,
		Height:           frame.Height,
		ImageData:        imageData,
		TotalPixels:      frame.Stats.TotalPixels,
		HitPixels:        frame.Stats.HitPixels,
		Bands:            frame.Stats.Bands,
		Workers:          frame.Stats.Workers,
		PrimitiveCount:   sceneObj.GetPrimitiveCount(),
		AverageLuminance: frame.AverageLuminance(),
		ElapsedMs:        frame.Stats.Elapsed.Milliseconds(),
	})
}

func (s *Server) sendEvent(ctx context.Context, sseEventChan chan<- SSEEvent, eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Errorf("Error marshaling %s event: %v", eventType, err)
		return
	}
	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: string(data)}:
	case <-ctx.Done():
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := loaders.WriteImage(&buf, loaders.FormatPNG, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan<- SSEEvent, message string) {
	s.logger.Warnf("Render request failed: %s", message)
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}
