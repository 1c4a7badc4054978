// Adjusts image dimensions, orientation, or structure.
package adjustments

import (
	"errors"
	"fmt"

	"github.com/anas-shakeel/go-bmp/internal/bmp"
)

var ErrOutOfBounds = errors.New("invalid bounds")

// Crops a region in the image (0,0  is at the top-left of the image)
func Crop(img *bmp.Image, x, y, width, height int) (*bmp.Image, error) {
	// Validate bounds
	if x < 0 || y < 0 {
		return nil, fmt.Errorf("%w: origin (%d,%d) is negative", ErrOutOfBounds, x, y)
	} else if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d must be positive", ErrOutOfBounds, width, height)
	} else if width+x > img.Width {
		return nil, fmt.Errorf("%w: width out of bounds", ErrOutOfBounds)
	} else if height+y > img.Height {
		return nil, fmt.Errorf("%w: height out of bounds", ErrOutOfBounds)
	}

	cropped, err := bmp.NewImage(width, height)
	if err != nil {
		return nil, err
	}

	// Copy the region row by row
	for row := range height { // Height | Rows
		src := (row+y)*img.Width + x
		copy(cropped.Pix[row*width:(row+1)*width], img.Pix[src:src+width])
	}

	return cropped, nil
}
