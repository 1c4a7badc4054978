package filters

import (
	"fmt"
	"math"

	"github.com/anas-shakeel/go-bmp/internal/bmp"
	"github.com/anas-shakeel/go-bmp/internal/utils"
)

// MaxRadius is the largest radius whose channel sums, (2*radius+1)*255, fit in an int.
const MaxRadius = (math.MaxInt/255 - 1) / 2

// Applies a box blur of the given radius to the image in-place.
//
// The blur is separable: a horizontal pass into a scratch buffer, then a vertical
// pass back into img. Each pass keeps a sliding window of 2*radius+1 samples,
// adding the newest and subtracting the oldest, with out-of-range samples clamped
// to the nearest edge. Means use truncating division and alpha is forced opaque.
func BoxBlur(img *bmp.Image, radius int) error {
	if radius < 0 || radius > MaxRadius {
		return fmt.Errorf("%w: %d", ErrInvalidRadius, radius)
	}
	if err := img.Validate(); err != nil {
		return err
	}

	width := img.Width
	height := img.Height
	scratch := make([]uint32, width*height)

	// Horizontal pass (rows)
	for y := range height {
		slideWindow(img.Pix, scratch, y*width, 1, width, radius)
	}

	// Vertical pass (columns)
	for x := range width {
		slideWindow(scratch, img.Pix, x, width, height, radius)
	}

	return nil
}

// slideWindow blurs the n samples src[start], src[start+step], ... into the same
// positions of dst.
func slideWindow(src, dst []uint32, start, step, n, radius int) {
	size := 2*radius + 1
	sample := func(i int) uint32 {
		return src[start+utils.Clamp(i, 0, n-1)*step]
	}

	var red, green, blue int
	accumulate := func(v uint32, count int) {
		red += int(v&0xFF) * count
		green += int(v>>8&0xFF) * count
		blue += int(v>>16&0xFF) * count
	}

	// Initial window [-radius, radius]: everything left of 0 clamps to index 0,
	// everything past n-1 clamps to index n-1.
	accumulate(sample(0), radius+1)
	for i := 1; i <= min(radius, n-1); i++ {
		accumulate(sample(i), 1)
	}
	if extra := radius - (n - 1); extra > 0 {
		accumulate(sample(n-1), extra)
	}

	for i := range n {
		dst[start+i*step] = 0xFF000000 | uint32(blue/size)<<16 | uint32(green/size)<<8 | uint32(red/size) // #nosec G115

		add := sample(i + radius + 1)
		sub := sample(i - radius)

		red += int(add&0xFF) - int(sub&0xFF)
		green += int(add>>8&0xFF) - int(sub>>8&0xFF)
		blue += int(add>>16&0xFF) - int(sub>>16&0xFF)
	}
}
