package debug

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxLines(t *testing.T) {
	lines := BoxLines(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{-1, -1, -1}, 0.5)
	require.Len(t, lines, BoxLineVertexCount*3)

	for i := 0; i < len(lines); i += 3 {
		for axis := 0; axis < 3; axis++ {
			v := lines[i+axis]
			assert.True(t, v == -1.5 || v == 1.5, "vertex %d axis %d = %v", i/3, axis, v)
		}
	}

	// Every edge changes exactly one axis.
	for i := 0; i < len(lines); i += 6 {
		changed := 0
		for axis := 0; axis < 3; axis++ {
			if lines[i+axis] != lines[i+3+axis] {
				changed++
			}
		}
		assert.Equal(t, 1, changed, "edge %d", i/6)
	}
}

func TestSavePixelsFlipsRows(t *testing.T) {
	dir := t.TempDir()
	s := NewScreenshotter(dir, "shot")
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	// 1x2: bottom row red, top row blue as GL returns them.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	name, err := s.SavePixels(pixels, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "shot_2024-05-01_12-00-00.png"), name)

	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, color.RGBA{0, 0, 255, 255}, color.RGBAModel.Convert(img.At(0, 0)))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, color.RGBAModel.Convert(img.At(0, 1)))

	second, err := s.SaveImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "shot_2024-05-01_12-00-00_1.png"), second)
}

func TestSavePixelsSizeMismatch(t *testing.T) {
	s := NewScreenshotter(t.TempDir(), "shot")
	_, err := s.SavePixels(make([]byte, 7), 1, 2)
	assert.Error(t, err)
	_, err = s.SavePixels(nil, 0, 0)
	assert.Error(t, err)
}
