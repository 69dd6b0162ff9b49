package renderer

import (
	"fmt"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	HitPixels   int           // Pixels whose camera ray hit geometry
	Rows        int           // Image rows
	Bands       int           // Bands of rows rendered
	Workers     int           // Goroutines used
	Elapsed     time.Duration // Wall time of the render
}

// Coverage returns the fraction of pixels that hit geometry
func (s RenderStats) Coverage() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.HitPixels) / float64(s.TotalPixels)
}

func (s RenderStats) String() string {
	return fmt.Sprintf("%d pixels (%.1f%% hit) in %d bands on %d workers, %v",
		s.TotalPixels, 100*s.Coverage(), s.Bands, s.Workers, s.Elapsed.Round(time.Millisecond))
}

// BandResult contains the result from rendering a band of rows
type BandResult struct {
	TaskID    int
	Y0, Y1    int
	HitPixels int
	Elapsed   time.Duration
	Rows      []byte // Finished pixels of the band, set before OnBand is called
	Error     error
}

// AverageLuminance returns the mean Rec. 709 luminance of the frame in [0,1]
func (f *Frame) AverageLuminance() float64 {
	n := len(f.Pixels) / 3
	if n == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		r := float64(f.Pixels[3*i]) / 255
		g := float64(f.Pixels[3*i+1]) / 255
		b := float64(f.Pixels[3*i+2]) / 255
		sum += 0.2126*r + 0.7152*g + 0.0722*b
	}
	return sum / float64(n)
}
