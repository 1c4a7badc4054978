// Filters perform color manipulation and per-pixel operations
package filters

import (
	"errors"
	"fmt"

	"github.com/anas-shakeel/go-bmp/internal/bmp"
	"github.com/anas-shakeel/go-bmp/internal/utils"
)

var (
	ErrInvalidRadius = errors.New("filters: radius out of range")
	ErrInvalidMethod = errors.New("filters: method must be add or multiply")
	ErrInvalidStep   = errors.New("filters: invalid pipeline step")
)

// Inverts (negates) the image, leaving alpha untouched
func Invert(img *bmp.Image) {
	for i, p := range img.Pix {
		img.Pix[i] = p ^ 0x00FFFFFF
	}
}

// Converts an image to Black-and-White
func Grayscale(img *bmp.Image) {
	for i, p := range img.Pix {
		// Find the average value for pixel
		r, g, b, a := bmp.Unpack(p)
		avg := uint8(utils.Average(int(r), int(g), int(b))) // #nosec G115

		img.Pix[i] = bmp.Pack(avg, avg, avg, a)
	}
}

// Converts an image to Black-and-White (with ITU-R 601-2 Luma Transform)
func GrayscaleLuma(img *bmp.Image) {
	for i, p := range img.Pix {
		r, g, b, a := bmp.Unpack(p)
		L := uint8(int(r)*299/1000 + int(g)*587/1000 + int(b)*114/1000) // #nosec G115

		img.Pix[i] = bmp.Pack(L, L, L, a)
	}
}

// Adjusts the Brightness of an image in-place.
//
// method can be "add" (adds value to each channel) or "multiply" (multiplies each channel by value).
// Pixel values are clipped to [0, 255].
func Brightness(img *bmp.Image, factor float64, method string) error {
	type Operation func(x, y float64) float64
	var operation Operation

	// Select an operation of brightness (additive or multiplicative)
	switch method {
	case "add":
		operation = func(x, y float64) float64 {
			return x + y
		}
	case "multiply":
		operation = func(x, y float64) float64 {
			return x * y
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}

	// Apply brightness (or darkness)
	for i, p := range img.Pix {
		r, g, b, a := bmp.Unpack(p)

		img.Pix[i] = bmp.Pack(
			utils.ClampByte(operation(float64(r), factor)),
			utils.ClampByte(operation(float64(g), factor)),
			utils.ClampByte(operation(float64(b), factor)),
			a,
		)
	}

	return nil
}

// Adjusts the Contrast of an image in-place.
// factor > 1.0 increases Contrast, factor < 1.0 decreases it.
func Contrast(img *bmp.Image, factor float64) {
	if len(img.Pix) == 0 {
		return
	}

	// Compute mean for each channel
	var sumR, sumG, sumB int
	for _, p := range img.Pix {
		r, g, b, _ := bmp.Unpack(p)
		sumR += int(r)
		sumG += int(g)
		sumB += int(b)
	}
	totalPixels := len(img.Pix)
	meanR := float64(sumR / totalPixels) // Average of all R pixels
	meanG := float64(sumG / totalPixels) // Average of all G pixels
	meanB := float64(sumB / totalPixels) // Average of all B pixels

	// Apply contrast
	for i, p := range img.Pix {
		r, g, b, a := bmp.Unpack(p)

		img.Pix[i] = bmp.Pack(
			utils.ClampByte(float64(r)*factor+(1-factor)*meanR),
			utils.ClampByte(float64(g)*factor+(1-factor)*meanG),
			utils.ClampByte(float64(b)*factor+(1-factor)*meanB),
			a,
		)
	}
}
