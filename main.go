package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const scenesDir = "scenes"

type options struct {
	scene    string
	output   string
	format   string
	workers  int
	maxDepth int
	debug    bool
}

func main() {
	// Parse command line flags
	var opts options
	flag.StringVar(&opts.scene, "scene", "default", "Built-in scene name, scene file name under scenes/, or path to a "+scene.SceneFileExt+" file")
	flag.StringVar(&opts.output, "output", "", "Output image path (default: the scene's output name, or output/<scene>/render_<id>.png)")
	flag.StringVar(&opts.format, "format", "", "Image format: png, bmp or tiff (default: from the output extension)")
	flag.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	flag.IntVar(&opts.maxDepth, "maxdepth", -1, "Override the scene's maximum reflection depth")
	flag.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		showHelp()
		return
	}

	logger := core.NewDefaultLogger("raytracer", opts.debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := run(ctx, opts, logger); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Built-in scenes:")
	for _, info := range scene.BuiltinScenes() {
		fmt.Printf("  %-12s %s\n", info.ID, info.Description)
	}
	if files, err := scene.ListSceneFiles(scenesDir); err == nil && len(files) > 0 {
		fmt.Println()
		fmt.Println("Scene files:")
		for _, info := range files {
			fmt.Printf("  %-12s %s\n", strings.TrimPrefix(info.ID, "file:"), info.Description)
		}
	}
}

// run renders one scene and writes it to disk, returning the output path
func run(ctx context.Context, opts options, logger core.Logger) (string, error) {
	renderID := uuid.NewString()
	logger.Infof("Render %s: scene %q", renderID, opts.scene)

	s, err := createScene(opts.scene, logger)
	if err != nil {
		return "", err
	}
	if opts.maxDepth >= 0 {
		s.MaxDepth = opts.maxDepth
	}

	config := renderer.DefaultConfig()
	if opts.workers > 0 {
		config.Workers = opts.workers
	}

	rt, err := renderer.NewRaytracer(s, config, logger)
	if err != nil {
		return "", fmt.Errorf("scene %q: %w", opts.scene, err)
	}
	frame, err := rt.Render(ctx)
	if err != nil {
		return "", err
	}

	filename, err := outputPath(opts, s, renderID)
	if err != nil {
		return "", err
	}
	var format loaders.Format
	if opts.format != "" {
		if format, err = loaders.ParseFormat(opts.format); err != nil {
			return "", err
		}
	}
	if err := loaders.SaveImage(filename, format, frame.Image()); err != nil {
		return "", err
	}

	logger.Infof("Render %s saved as %s (%s)", renderID, filename, frame.Stats)
	return filename, nil
}

// createScene resolves a built-in scene, a scene file in scenes/, or a scene file path
func createScene(name string, logger core.Logger) (*scene.Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("scene name cannot be empty")
	}

	if strings.HasSuffix(name, scene.SceneFileExt) {
		return loaders.LoadScene(name, logger)
	}

	if s, err := scene.Create(name); err == nil {
		return s, nil
	}

	path := filepath.Join(scenesDir, name+scene.SceneFileExt)
	if _, err := os.Stat(path); err == nil {
		return loaders.LoadScene(path, logger)
	}

	return nil, fmt.Errorf("unknown scene %q: not a built-in scene and no %s found", name, path)
}

// outputPath picks the -output flag, then the scene's own output name,
// then output/<scene>/render_<id>.<format>
func outputPath(opts options, s *scene.Scene, renderID string) (string, error) {
	if opts.output != "" {
		return opts.output, nil
	}

	var filename string
	if s.OutputName != "" {
		name := s.OutputName
		if filepath.Base(name) != name || name == "." || name == ".." {
			return "", fmt.Errorf("invalid output name %q: must be a plain file name", name)
		}
		if opts.format != "" {
			name = strings.TrimSuffix(name, filepath.Ext(name)) + "." + strings.ToLower(opts.format)
		}
		filename = filepath.Join("output", name)
	} else {
		ext := "png"
		if opts.format != "" {
			ext = strings.ToLower(opts.format)
		}
		filename = filepath.Join("output", s.Name, fmt.Sprintf("render_%s.%s", renderID[:8], ext))
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return "", fmt.Errorf("error creating output directory: %w", err)
	}
	return filename, nil
}
