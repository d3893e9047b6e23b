package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/anthonynsimon/bild/transform"
)

// Screenshotter writes framebuffer captures as PNG files.
type Screenshotter struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewScreenshotter creates a capture handler writing prefix_<timestamp>.png into outputDir.
func NewScreenshotter(outputDir, prefix string) *Screenshotter {
	return &Screenshotter{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// Filename returns the path the next capture would use. Captures within the
// same second get a numeric suffix.
func (s *Screenshotter) Filename() string {
	base := fmt.Sprintf("%s_%s", s.prefix, s.now().Format("2006-01-02_15-04-05"))
	name := filepath.Join(s.outputDir, base+".png")
	for i := 1; fileExists(name); i++ {
		name = filepath.Join(s.outputDir, fmt.Sprintf("%s_%d.png", base, i))
	}
	return name
}

// SavePixels writes width*height RGBA pixels read back from GL. Rows are
// flipped since GL's origin is bottom-left.
func (s *Screenshotter) SavePixels(pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: %dx%d needs %d bytes, got %d", width, height, width*height*4, len(pixels))
	}
	img := &image.RGBA{
		Pix:    pixels,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	return s.SaveImage(transform.FlipV(img))
}

// SaveImage writes img as-is.
func (s *Screenshotter) SaveImage(img image.Image) (string, error) {
	if s.outputDir != "" {
		if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := s.Filename()
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return filename, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
