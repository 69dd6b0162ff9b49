package loaders

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})
	return img
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
		wantErr  bool
	}{
		{"out.png", FormatPNG, false},
		{"dir/out.PNG", FormatPNG, false},
		{"out.bmp", FormatBMP, false},
		{"out.tif", FormatTIFF, false},
		{"out.tiff", FormatTIFF, false},
		{"out.jpg", "", true},
		{"out", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			format, err := FormatFromPath(tt.path)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnknownFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestSaveAndLoadImage(t *testing.T) {
	src := testImage()
	dir := t.TempDir()

	for _, name := range []string{"out.png", "out.bmp", "out.tiff"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, SaveImage(path, "", src))

			img, format, err := LoadImage(path)
			require.NoError(t, err)

			expectedFormat, _ := FormatFromPath(name)
			assert.Equal(t, expectedFormat, format)
			assert.Equal(t, src.Bounds(), img.Bounds())

			// All three encodings are lossless
			for y := 0; y < 2; y++ {
				for x := 0; x < 2; x++ {
					r1, g1, b1, _ := src.At(x, y).RGBA()
					r2, g2, b2, _ := img.At(x, y).RGBA()
					assert.Equal(t, []uint32{r1, g1, b1}, []uint32{r2, g2, b2}, "pixel (%d,%d)", x, y)
				}
			}
		})
	}
}

func TestWriteImage_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := WriteImage(&buf, Format("gif"), testImage())
	assert.True(t, errors.Is(err, ErrUnknownFormat))
	assert.Zero(t, buf.Len())
}

func TestSaveImage_Errors(t *testing.T) {
	dir := t.TempDir()
	err := SaveImage(filepath.Join(dir, "out.xyz"), "", testImage())
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	err = SaveImage(filepath.Join(dir, "missing", "out.png"), FormatPNG, testImage())
	assert.Error(t, err)

	_, _, err = LoadImage(filepath.Join(dir, "nope.png"))
	assert.Error(t, err)
}
