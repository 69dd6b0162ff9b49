package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"runtime"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Config contains rendering configuration
type Config struct {
	Workers     int // Number of goroutines; 0 means runtime.NumCPU()
	RowsPerTask int // Rows in one band of work
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Workers:     runtime.NumCPU(),
		RowsPerTask: 8,
	}
}

// Raytracer renders a scene into an RGB byte buffer, one centre ray per pixel
type Raytracer struct {
	scene      *scene.Scene
	config     Config
	logger     core.Logger
	projection geometry.Projection

	// OnBand is called from the goroutine running Render each time a band
	// of rows is finished. Optional.
	OnBand func(BandResult)
}

// NewRaytracer validates the scene and prepares the camera projection
func NewRaytracer(s *scene.Scene, config Config, logger core.Logger) (*Raytracer, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	projection, err := s.Camera.Project(s.Width, s.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", scene.ErrInvalidScene, err)
	}

	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.RowsPerTask <= 0 {
		config.RowsPerTask = DefaultConfig().RowsPerTask
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Raytracer{
		scene:      s,
		config:     config,
		logger:     logger,
		projection: projection,
	}, nil
}

// Config returns the effective configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// Frame is a finished render: width*height*3 bytes, row-major RGB, row 0 at the top
type Frame struct {
	Width  int
	Height int
	Pixels []byte
	Stats  RenderStats
}

// Image converts the frame to an opaque RGBA image
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			i := (y*f.Width + x) * 3
			img.SetRGBA(x, y, color.RGBA{R: f.Pixels[i], G: f.Pixels[i+1], B: f.Pixels[i+2], A: 255})
		}
	}
	return img
}

// Render traces every pixel of the scene. Bands of rows are spread over the
// configured number of workers; cancelling ctx stops work between bands.
func (rt *Raytracer) Render(ctx context.Context) (*Frame, error) {
	start := time.Now()
	width, height := rt.scene.Width, rt.scene.Height
	pixels := make([]byte, width*height*3)

	rt.logger.Infof("Rendering %s (%s) with %d workers", rt.scene.Name, rt.scene.Summary(), rt.config.Workers)

	var (
		results []BandResult
		err     error
	)
	if rt.config.Workers == 1 {
		results, err = rt.renderSequential(ctx, pixels)
	} else {
		results, err = rt.renderParallel(ctx, pixels)
	}
	if err != nil {
		rt.logger.Warnf("Render of %s stopped: %v", rt.scene.Name, err)
		return nil, err
	}

	stats := RenderStats{
		TotalPixels: width * height,
		Rows:        height,
		Bands:       len(results),
		Workers:     rt.config.Workers,
	}
	for _, r := range results {
		stats.HitPixels += r.HitPixels
	}
	stats.Elapsed = time.Since(start)

	frame := &Frame{Width: width, Height: height, Pixels: pixels, Stats: stats}
	rt.logger.Infof("Finished %s: %s", rt.scene.Name, stats)
	return frame, nil
}

func (rt *Raytracer) renderSequential(ctx context.Context, pixels []byte) ([]BandResult, error) {
	var results []BandResult
	for i, band := range rt.bands() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		hits := rt.RenderRows(band[0], band[1], pixels)
		results = append(results, rt.finishBand(BandResult{
			TaskID:    i,
			Y0:        band[0],
			Y1:        band[1],
			HitPixels: hits,
			Elapsed:   time.Since(start),
		}, pixels))
	}
	return results, nil
}

func (rt *Raytracer) renderParallel(ctx context.Context, pixels []byte) ([]BandResult, error) {
	bands := rt.bands()
	pool := NewWorkerPool(rt, rt.config.Workers, len(bands))
	pool.Start()
	rt.logger.Debugf("Worker pool started with %d workers for %d bands", pool.GetNumWorkers(), len(bands))

	for i, band := range bands {
		pool.SubmitTask(BandTask{
			TaskID: i,
			Y0:     band[0],
			Y1:     band[1],
			Pixels: pixels,
			Ctx:    ctx,
		})
	}
	defer pool.Stop()

	var (
		results  []BandResult
		firstErr error
	)
	// Every submitted band yields exactly one result
	for range bands {
		result, _ := pool.GetResult()
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}
		results = append(results, rt.finishBand(result, pixels))
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

func (rt *Raytracer) finishBand(result BandResult, pixels []byte) BandResult {
	rowBytes := rt.scene.Width * 3
	result.Rows = pixels[result.Y0*rowBytes : result.Y1*rowBytes]
	rt.logger.Debugf("Band %d rows [%d,%d) done in %v, %d hits", result.TaskID, result.Y0, result.Y1, result.Elapsed, result.HitPixels)
	if rt.OnBand != nil {
		rt.OnBand(result)
	}
	return result
}

// bands splits the image height into [y0, y1) row ranges
func (rt *Raytracer) bands() [][2]int {
	var bands [][2]int
	for y := 0; y < rt.scene.Height; y += rt.config.RowsPerTask {
		bands = append(bands, [2]int{y, min(y+rt.config.RowsPerTask, rt.scene.Height)})
	}
	return bands
}

// RenderRows renders rows [y0, y1) into pixels and returns how many pixels
// hit geometry. Rows outside the band are not touched, so bands may be
// rendered concurrently into the same buffer.
func (rt *Raytracer) RenderRows(y0, y1 int, pixels []byte) int {
	shader := NewShader(rt.scene)
	width := rt.scene.Width
	hits := 0

	for row := y0; row < y1; row++ {
		for col := 0; col < width; col++ {
			c, hit := rt.TracePixel(shader, row, col)
			if hit {
				hits++
			}
			i := (row*width + col) * 3
			pixels[i] = toByte(c.X)
			pixels[i+1] = toByte(c.Y)
			pixels[i+2] = toByte(c.Z)
		}
	}
	return hits
}

// TracePixel returns the color seen through the centre of pixel (row, col)
// and whether the camera ray hit anything. Misses are black.
func (rt *Raytracer) TracePixel(shader *Shader, row, col int) (core.Vec3, bool) {
	ray := rt.projection.RayThrough(row, col)
	hit, ok := IntersectFromView(ray, rt.scene)
	if !ok {
		return core.Vec3{}, false
	}
	return shader.RecursiveColor(ray, hit, 0), true
}

// toByte maps a color channel to 8 bits: clamp(255*c, 0, 255), truncated.
// NaN maps to 0.
func toByte(c float64) uint8 {
	v := 255 * c
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
