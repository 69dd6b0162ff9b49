package main

import (
	"flag"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", "scenes", "Directory of scene files")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger := core.NewDefaultLogger("web", *debug)

	// Create and start web server
	webServer := server.NewServer(*port, *scenesDir, logger)

	logger.Infof("Whitted Raytracer Web Server")
	logger.Infof("Render with http://localhost:%d/api/render?scene=default", *port)

	if err := webServer.Start(); err != nil {
		logger.Errorf("Error starting server: %v", err)
		os.Exit(1)
	}
}
