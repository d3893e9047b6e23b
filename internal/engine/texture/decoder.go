package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP
)

// ErrNotImage is returned for files whose content is not a recognised image.
var ErrNotImage = errors.New("not an image file")

// FileDecoder reads image files from disk.
type FileDecoder struct {
	// FlipVertical mirrors rows so that row 0 is the bottom of the picture.
	FlipVertical bool
}

// NewFileDecoder creates a decoder.
func NewFileDecoder(flipVertical bool) *FileDecoder {
	return &FileDecoder{FlipVertical: flipVertical}
}

// Decode reads path and returns its pixels as RGBA.
func (d *FileDecoder) Decode(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := DecodeBytes(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	if d.FlipVertical {
		img = transform.FlipV(img)
	}
	return img, nil
}

// DecodeBytes decodes image data. TGA carries no signature, so ext selects it.
func DecodeBytes(data []byte, ext string) (*image.RGBA, error) {
	if strings.EqualFold(ext, ".tga") {
		return DecodeTGA(data)
	}

	kind, err := filetype.Image(data)
	if err != nil || kind == filetype.Unknown {
		return nil, fmt.Errorf("%w (extension %q)", ErrNotImage, ext)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", kind.Extension, err)
	}
	return toRGBA(img), nil
}

// toRGBA returns img as *image.RGBA, copying only when needed.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	return clone.AsRGBA(img)
}
