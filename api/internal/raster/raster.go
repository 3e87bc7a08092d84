// Package raster holds the pixel-level model for submitted receipt photos:
// decoding into a Frame and normalizing any supported channel layout into the
// canonical 3-channel form the recognition engines consume.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
)

// ErrNoImage is returned when no image was supplied at all.
var ErrNoImage = errors.New("no image supplied")

// Frame is a raw decoded image: row-major interleaved samples with 1, 3 or 4
// channels per pixel.
type Frame struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// Decode reads an encoded image (PNG/JPEG/...) into a Frame, applying EXIF
// auto-orientation the way camera uploads expect.
func Decode(r io.Reader) (*Frame, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return FromImage(img), nil
}

// FromImage adapts a decoded Go image into a Frame. Grayscale images keep
// their single channel; everything else is converted to 4-channel NRGBA.
func FromImage(img image.Image) *Frame {
	if img == nil {
		return nil
	}
	if g, ok := img.(*image.Gray); ok {
		b := g.Bounds()
		f := &Frame{Width: b.Dx(), Height: b.Dy(), Channels: 1, Pix: make([]byte, b.Dx()*b.Dy())}
		for y := 0; y < f.Height; y++ {
			copy(f.Pix[y*f.Width:(y+1)*f.Width], g.Pix[y*g.Stride:y*g.Stride+f.Width])
		}
		return f
	}
	n := imaging.Clone(img)
	b := n.Bounds()
	f := &Frame{Width: b.Dx(), Height: b.Dy(), Channels: 4, Pix: make([]byte, b.Dx()*b.Dy()*4)}
	row := f.Width * 4
	for y := 0; y < f.Height; y++ {
		copy(f.Pix[y*row:(y+1)*row], n.Pix[y*n.Stride:y*n.Stride+row])
	}
	return f
}

// Canonical is the normalized 3-channel image in engine byte order (BGR),
// 3 bytes per pixel, no padding.
type Canonical struct {
	Width  int
	Height int
	Pix    []byte
}

// Channels is always 3 for a canonical image.
func (c *Canonical) Channels() int { return 3 }

// Normalize converts a Frame into the canonical 3-channel form: a single
// channel is duplicated, an alpha channel is dropped, and 3-channel input is
// reordered from RGB to engine byte order. The transform is pure and always
// produces a new buffer; there is no resizing or contrast adjustment.
func Normalize(f *Frame) (*Canonical, error) {
	if f == nil {
		return nil, ErrNoImage
	}
	n := f.Width * f.Height
	c := &Canonical{Width: f.Width, Height: f.Height, Pix: make([]byte, n*3)}
	switch f.Channels {
	case 1:
		for i := 0; i < n; i++ {
			v := f.Pix[i]
			c.Pix[i*3+0] = v
			c.Pix[i*3+1] = v
			c.Pix[i*3+2] = v
		}
	case 3:
		for i := 0; i < n; i++ {
			c.Pix[i*3+0] = f.Pix[i*3+2] // B
			c.Pix[i*3+1] = f.Pix[i*3+1] // G
			c.Pix[i*3+2] = f.Pix[i*3+0] // R
		}
	case 4:
		for i := 0; i < n; i++ {
			c.Pix[i*3+0] = f.Pix[i*4+2] // B
			c.Pix[i*3+1] = f.Pix[i*4+1] // G
			c.Pix[i*3+2] = f.Pix[i*4+0] // R
		}
	default:
		return nil, fmt.Errorf("unsupported channel count %d", f.Channels)
	}
	return c, nil
}

// WritePNG encodes the canonical image as a standard RGB PNG, so engines that
// consume a file path see an ordinary image file.
func (c *Canonical) WritePNG(w io.Writer) error {
	img := image.NewNRGBA(image.Rect(0, 0, c.Width, c.Height))
	n := c.Width * c.Height
	for i := 0; i < n; i++ {
		img.Pix[i*4+0] = c.Pix[i*3+2] // R
		img.Pix[i*4+1] = c.Pix[i*3+1] // G
		img.Pix[i*4+2] = c.Pix[i*3+0] // B
		img.Pix[i*4+3] = 0xFF
	}
	return png.Encode(w, img)
}
