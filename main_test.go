package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"mirrors scene", "mirrors", false},
		{"spheregrid scene", "spheregrid", false},

		// Scene files (by name)
		{"simple scene file", "simple", false},
		{"mirror-box scene file", "mirror-box", false},

		// Scene files (by path)
		{"direct scene file path", "scenes/transforms.test", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"invalid scene file path", "scenes/nonexistent.test", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType, core.NopLogger{})

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, s)
			assert.NoError(t, s.Validate())
		})
	}
}

func TestOutputPath(t *testing.T) {
	s := scene.New()
	s.Name = "custom"

	path, err := outputPath(options{output: "explicit.bmp"}, s, "0123456789")
	require.NoError(t, err)
	assert.Equal(t, "explicit.bmp", path)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	path, err = outputPath(options{format: "tiff"}, s, "0123456789")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("output", "custom", "render_01234567.tiff"), path)
	assert.DirExists(t, filepath.Join("output", "custom"))

	s.OutputName = "scene.png"
	path, err = outputPath(options{}, s, "0123456789")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("output", "scene.png"), path)

	path, err = outputPath(options{format: "bmp"}, s, "0123456789")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("output", "scene.bmp"), path)

	for _, name := range []string{"../escape.png", "sub/dir.png", "/tmp/abs.png", ".", ".."} {
		s.OutputName = name
		_, err = outputPath(options{}, s, "0123456789")
		assert.Error(t, err, name)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	sceneFile := filepath.Join(dir, "tiny.test")
	require.NoError(t, os.WriteFile(sceneFile, []byte(`size 4 3
camera 0 0 10 0 0 0 0 1 0 45
point 0 0 5 1 1 1
diffuse 1 0 0
sphere 0 0 0 2
`), 0o644))

	out := filepath.Join(dir, "tiny.bmp")
	path, err := run(context.Background(), options{scene: sceneFile, output: out, workers: 2, maxDepth: 1}, core.NopLogger{})
	require.NoError(t, err)
	assert.Equal(t, out, path)

	img, format, err := loaders.LoadImage(out)
	require.NoError(t, err)
	assert.Equal(t, loaders.FormatBMP, format)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())

	_, err = run(context.Background(), options{scene: sceneFile, output: out, format: "gif", maxDepth: -1}, core.NopLogger{})
	assert.Error(t, err)
}
