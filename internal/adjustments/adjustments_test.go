package adjustments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anas-shakeel/go-bmp/internal/bmp"
)

func grid(t *testing.T, w, h int) *bmp.Image {
	t.Helper()
	img, err := bmp.NewImage(w, h)
	require.NoError(t, err)
	for i := range img.Pix {
		img.Pix[i] = uint32(i)
	}
	return img
}

func TestCrop(t *testing.T) {
	img := grid(t, 4, 3)

	out, err := Crop(img, 1, 1, 2, 2)
	require.NoError(t, err)

	assert.Equal(t, 2, out.Width)
	assert.Equal(t, 2, out.Height)
	assert.Equal(t, []uint32{5, 6, 9, 10}, out.Pix)

	out.Pix[0] = 99
	assert.Equal(t, uint32(5), img.Pix[5], "crop must copy pixels")
}

func TestCrop_Full(t *testing.T) {
	img := grid(t, 3, 2)

	out, err := Crop(img, 0, 0, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, img.Pix, out.Pix)
}

func TestCrop_OutOfBounds(t *testing.T) {
	img := grid(t, 4, 3)

	tests := []struct {
		name       string
		x, y, w, h int
	}{
		{"negative x", -1, 0, 2, 2},
		{"negative y", 0, -1, 2, 2},
		{"zero width", 0, 0, 0, 2},
		{"zero height", 0, 0, 2, 0},
		{"too wide", 3, 0, 2, 1},
		{"too tall", 0, 2, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Crop(img, tt.x, tt.y, tt.w, tt.h)
			assert.ErrorIs(t, err, ErrOutOfBounds)
		})
	}
}
