package bmp

import (
	"encoding/binary"
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Encode serializes img as an uncompressed 32-bit BI_BITFIELDS bitmap whose masks
// mirror the canonical layout, so Decode(Encode(img)) returns img unchanged.
func Encode(img *Image) ([]byte, error) {
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	imageSize, totalSize, err := encodedSize(img.Width, img.Height)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	fh := FileHeader{
		Type:    [2]byte{signatureLow, signatureHigh},
		Size:    totalSize,
		OffBits: HeaderSize,
	}
	ih := InfoHeader{
		Size:        InfoHeaderSize,
		Width:       int32(img.Width),  // #nosec G115
		Height:      int32(img.Height), // #nosec G115
		Planes:      1,
		BitCount:    32,
		Compression: CompressionMask,
		SizeImage:   imageSize,
		XPixelsPerM: 1000,
		YPixelsPerM: 1000,
		RedMask:     defaultRedMask,
		GreenMask:   defaultGreenMask,
		BlueMask:    defaultBlueMask,
		AlphaMask:   defaultAlphaMask,
		CSType:      ColorSpaceSRGB,
		Intent:      IntentPicture,
	}

	out := make([]byte, totalSize)
	writeHeaders(out, &fh, &ih)

	// Stride is always a multiple of 4 at 32bpp, so rows need no padding
	pixels := out[HeaderSize:]
	for i, p := range img.Pix {
		binary.LittleEndian.PutUint32(pixels[i*4:], p)
	}

	Logger().Debug("encoded bitmap",
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
		zap.Uint32("size", totalSize),
	)

	return out, nil
}

// encodedSize returns the pixel array and file sizes of a 32-bit bitmap, both of
// which the headers store as uint32.
func encodedSize(width, height int) (imageSize, totalSize uint32, err error) {
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > math.MaxInt32 || height > math.MaxInt32 {
		return 0, 0, fmt.Errorf("%w: %dx%d exceeds the header's int32 fields", ErrInvalidDimensions, width, height)
	}

	limit := uint64(math.MaxUint32-HeaderSize) / 4
	if uint64(width) > limit/uint64(height) {
		return 0, 0, fmt.Errorf("%w: %dx%d does not fit in a 4 GiB bitmap", ErrInvalidDimensions, width, height)
	}

	imageSize = uint32(width*height) * 4 // #nosec G115 -- bounded by limit above
	return imageSize, imageSize + HeaderSize, nil
}
