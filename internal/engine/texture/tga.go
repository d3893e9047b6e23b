// Package texture decodes image files into RGBA pixel data for upload.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA errors.
var (
	ErrTruncatedTGA   = errors.New("truncated TGA data")
	ErrUnsupportedTGA = errors.New("unsupported TGA variant")
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeGray         = 3  // Uncompressed grayscale
	TGATypeRLE          = 10 // RLE compressed true-color
	TGATypeRLEGray      = 11 // RLE compressed grayscale
)

const (
	tgaHeaderSize            = 18
	tgaDescriptorTopToBottom = 0x20
)

// DecodeTGA decodes a TGA image. Supported are true-color (24/32 bpp) and
// grayscale (8 bpp) images, uncompressed or RLE compressed.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("%w: header", ErrTruncatedTGA)
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := int(data[2])
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped", ErrUnsupportedTGA)
	}

	gray := imageType == TGATypeGray || imageType == TGATypeRLEGray
	switch imageType {
	case TGATypeUncompressed, TGATypeRLE:
		if bpp != 24 && bpp != 32 {
			return nil, fmt.Errorf("%w: %d bpp true-color", ErrUnsupportedTGA, bpp)
		}
	case TGATypeGray, TGATypeRLEGray:
		if bpp != 8 {
			return nil, fmt.Errorf("%w: %d bpp grayscale", ErrUnsupportedTGA, bpp)
		}
	default:
		return nil, fmt.Errorf("%w: image type %d", ErrUnsupportedTGA, imageType)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("%w: image ID", ErrTruncatedTGA)
	}

	d := &tgaDecoder{
		src:         data[offset:],
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		width:       width,
		height:      height,
		bpp:         bpp / 8,
		gray:        gray,
		topToBottom: descriptor&tgaDescriptorTopToBottom != 0,
	}

	var err error
	if imageType == TGATypeRLE || imageType == TGATypeRLEGray {
		err = d.decodeRLE()
	} else {
		err = d.decodeRaw()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	src         []byte
	pos         int
	img         *image.RGBA
	width       int
	height      int
	bpp         int
	gray        bool
	topToBottom bool
}

// readPixel reads one BGR(A) or gray pixel at the cursor.
func (d *tgaDecoder) readPixel() (color.RGBA, error) {
	if d.pos+d.bpp > len(d.src) {
		return color.RGBA{}, fmt.Errorf("%w: pixel data", ErrTruncatedTGA)
	}
	p := d.src[d.pos : d.pos+d.bpp]
	d.pos += d.bpp

	if d.gray {
		return color.RGBA{R: p[0], G: p[0], B: p[0], A: 255}, nil
	}
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.bpp == 4 {
		c.A = p[3]
	}
	return c, nil
}

// set stores pixel n in file order; TGA rows run bottom-up unless flagged.
func (d *tgaDecoder) set(n int, c color.RGBA) {
	x, y := n%d.width, n/d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.img.SetRGBA(x, y, c)
}

func (d *tgaDecoder) decodeRaw() error {
	for n := 0; n < d.width*d.height; n++ {
		c, err := d.readPixel()
		if err != nil {
			return err
		}
		d.set(n, c)
	}
	return nil
}

func (d *tgaDecoder) decodeRLE() error {
	total := d.width * d.height
	for n := 0; n < total; {
		if d.pos >= len(d.src) {
			return fmt.Errorf("%w: RLE packet", ErrTruncatedTGA)
		}
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// Run-length packet: one pixel repeated
			c, err := d.readPixel()
			if err != nil {
				return err
			}
			for i := 0; i < count && n < total; i++ {
				d.set(n, c)
				n++
			}
			continue
		}

		// Raw packet: count literal pixels
		for i := 0; i < count && n < total; i++ {
			c, err := d.readPixel()
			if err != nil {
				return err
			}
			d.set(n, c)
			n++
		}
	}
	return nil
}
