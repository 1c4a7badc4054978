// Package bmp reads and writes 24/32-bit Windows bitmaps into a canonical RGBA buffer.
package bmp

import "fmt"

// Image is the canonical pixel buffer shared by the codec and the filters.
//
// Pix holds Width*Height words, row-major, top row first. Each word packs
// red in bits 0-7, green in 8-15, blue in 16-23 and alpha in 24-31.
type Image struct {
	Width  int
	Height int
	Pix    []uint32
}

// Pack builds a canonical pixel word from its channels.
func Pack(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// Unpack splits a canonical pixel word into its channels.
func Unpack(p uint32) (r, g, b, a uint8) {
	return uint8(p), uint8(p >> 8), uint8(p >> 16), uint8(p >> 24)
}

// Creates and returns a zeroed image of the given size
func NewImage(width, height int) (*Image, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: width must be greater than 0", ErrInvalidDimensions)
	} else if height <= 0 {
		return nil, fmt.Errorf("%w: height must be greater than 0", ErrInvalidDimensions)
	}

	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]uint32, width*height),
	}, nil
}

// At returns the pixel at column x, row y (0,0 is the top-left).
func (img *Image) At(x, y int) uint32 {
	return img.Pix[y*img.Width+x]
}

// Set stores p at column x, row y.
func (img *Image) Set(x, y int, p uint32) {
	img.Pix[y*img.Width+x] = p
}

// Returns a Copy of the image
func (img *Image) Clone() *Image {
	pix := make([]uint32, len(img.Pix))
	copy(pix, img.Pix)

	return &Image{Width: img.Width, Height: img.Height, Pix: pix}
}

// Validate reports ErrInvalidDimensions unless both sides are positive
// and the buffer holds exactly Width*Height pixels.
func (img *Image) Validate() error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidDimensions)
	}
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, img.Width, img.Height)
	}
	if len(img.Pix) != img.Width*img.Height {
		return fmt.Errorf("%w: %d pixels for %dx%d", ErrInvalidDimensions, len(img.Pix), img.Width, img.Height)
	}
	return nil
}

// Returns an image containing a single channel of the source image.
// channel can one of (`red`, `green`, and `blue`); alpha is kept as is.
func (img *Image) Channel(channel string) (*Image, error) {
	var keep uint32
	switch channel {
	case "red":
		keep = 0x000000FF
	case "green":
		keep = 0x0000FF00
	case "blue":
		keep = 0x00FF0000
	default:
		return nil, fmt.Errorf("%w: %q (only red, green, and blue are supported)", ErrInvalidChannel, channel)
	}

	out := img.Clone()
	for i, p := range out.Pix {
		out.Pix[i] = p & (keep | 0xFF000000)
	}

	return out, nil
}
