package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anas-shakeel/go-bmp/internal/bmp"
)

func onePixel(r, g, b, a uint8) *bmp.Image {
	return &bmp.Image{Width: 1, Height: 1, Pix: []uint32{bmp.Pack(r, g, b, a)}}
}

func TestInvert(t *testing.T) {
	img := onePixel(0, 100, 255, 0x80)
	Invert(img)
	assert.Equal(t, bmp.Pack(255, 155, 0, 0x80), img.Pix[0])
}

func TestGrayscale(t *testing.T) {
	img := onePixel(10, 20, 30, 0x40)
	Grayscale(img)
	assert.Equal(t, bmp.Pack(20, 20, 20, 0x40), img.Pix[0])
}

func TestGrayscaleLuma(t *testing.T) {
	img := onePixel(100, 100, 100, 0xFF)
	GrayscaleLuma(img)
	// 29 + 58 + 11 after per-term truncation
	assert.Equal(t, bmp.Pack(98, 98, 98, 0xFF), img.Pix[0])
}

func TestBrightness(t *testing.T) {
	tests := []struct {
		name   string
		factor float64
		method string
		want   uint32
	}{
		{"add clips high", 250, "add", bmp.Pack(255, 255, 255, 7)},
		{"add negative clips low", -50, "add", bmp.Pack(0, 50, 205, 7)},
		{"multiply", 0.5, "multiply", bmp.Pack(5, 50, 127, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := onePixel(10, 100, 255, 7)
			require.NoError(t, Brightness(img, tt.factor, tt.method))
			assert.Equal(t, tt.want, img.Pix[0])
		})
	}

	err := Brightness(onePixel(1, 1, 1, 1), 2, "divide")
	assert.ErrorIs(t, err, ErrInvalidMethod)
}

func TestContrast(t *testing.T) {
	img := &bmp.Image{Width: 2, Height: 1, Pix: []uint32{
		bmp.Pack(100, 0, 50, 1),
		bmp.Pack(200, 0, 50, 2),
	}}

	// factor 1 keeps every value
	Contrast(img, 1)
	assert.Equal(t, bmp.Pack(100, 0, 50, 1), img.Pix[0])

	// factor 0 collapses each channel onto its mean
	Contrast(img, 0)
	assert.Equal(t, bmp.Pack(150, 0, 50, 1), img.Pix[0])
	assert.Equal(t, bmp.Pack(150, 0, 50, 2), img.Pix[1])
}

func TestParsePipeline(t *testing.T) {
	tests := []struct {
		name  string
		spec  string
		steps []string
	}{
		{"empty", "", nil},
		{"single blur", "blur:10", []string{"blur:10"}},
		{"chain with spaces", " blur:2 , invert,luma ", []string{"blur:2", "invert", "luma"}},
		{"brightness defaults to multiply", "brightness:1.5", []string{"brightness:1.5"}},
		{"brightness add", "brightness:-20:add", []string{"brightness:-20:add"}},
		{"contrast and channel", "contrast:1.2,channel:red", []string{"contrast:1.2", "channel:red"}},
		{"grayscale", "grayscale", []string{"grayscale"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps, err := ParsePipeline(tt.spec)
			require.NoError(t, err)

			var got []string
			for _, s := range steps {
				got = append(got, s.String())
			}
			assert.Equal(t, tt.steps, got)
		})
	}
}

func TestParsePipeline_Errors(t *testing.T) {
	specs := []string{
		"blur",
		"blur:-1",
		"blur:abc",
		"blur:9223372036854775807",
		"blur:4611686018427387904",
		"blur:1:2",
		"invert:1",
		"brightness",
		"brightness:x",
		"brightness:2:divide",
		"contrast:",
		"channel:alpha",
		"sharpen:3",
	}

	for _, spec := range specs {
		t.Run(spec, func(t *testing.T) {
			_, err := ParsePipeline(spec)
			assert.ErrorIs(t, err, ErrInvalidStep)
		})
	}
}

func TestApply(t *testing.T) {
	steps, err := ParsePipeline("invert,channel:green")
	require.NoError(t, err)

	img := onePixel(0, 55, 255, 0x11)
	out, err := Apply(img, steps)
	require.NoError(t, err)

	assert.Equal(t, bmp.Pack(0, 200, 0, 0x11), out.Pix[0])
	// invert ran in place on the source image, the channel step built a new one
	assert.Equal(t, bmp.Pack(255, 200, 0, 0x11), img.Pix[0])
}

func TestApply_BlurRadiusZeroForcesAlpha(t *testing.T) {
	steps, err := ParsePipeline("blur:0")
	require.NoError(t, err)

	out, err := Apply(onePixel(1, 2, 3, 0), steps)
	require.NoError(t, err)
	assert.Equal(t, bmp.Pack(1, 2, 3, 0xFF), out.Pix[0])
}

func TestApply_PropagatesErrors(t *testing.T) {
	steps, err := ParsePipeline("blur:1")
	require.NoError(t, err)

	_, err = Apply(&bmp.Image{Width: 3, Height: 3}, steps)
	assert.ErrorIs(t, err, bmp.ErrInvalidDimensions)

	_, err = Apply(onePixel(0, 0, 0, 0), []Step{{Spec: "manual"}})
	assert.ErrorIs(t, err, ErrInvalidStep)
}
