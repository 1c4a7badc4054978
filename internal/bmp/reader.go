package bmp

import (
	"fmt"
	"io"
	"math/bits"

	"go.uber.org/zap"
)

// Default channel masks for uncompressed 32-bit pixels. They match the canonical layout.
const (
	defaultRedMask   = 0x000000FF
	defaultGreenMask = 0x0000FF00
	defaultBlueMask  = 0x00FF0000
	defaultAlphaMask = 0xFF000000
)

// Metadata describes a bitmap's headers without decoding its pixels.
type Metadata struct {
	FileSize    uint32
	PixelOffset uint32
	HeaderSize  uint32
	Width       int
	Height      int
	BitCount    int
	Compression uint32
	RedMask     uint32
	GreenMask   uint32
	BlueMask    uint32
	AlphaMask   uint32
	ColorSpace  uint32
	Stride      int // Bytes per row on disk, including padding
	Padding     int // Padding bytes at the end of each row
}

// MaskToShift returns the index of the lowest set bit of mask, or 0 if mask is 0.
func MaskToShift(mask uint32) int {
	if mask == 0 {
		return 0
	}
	return bits.TrailingZeros32(mask)
}

// parseHeaders validates the file and info headers and returns them.
func parseHeaders(data []byte) (FileHeader, InfoHeader, error) {
	if len(data) < HeaderSize {
		return FileHeader{}, InfoHeader{}, fmt.Errorf("%w: %d bytes, headers need %d", ErrTruncatedInput, len(data), HeaderSize)
	}

	fh := readFileHeader(data)
	if fh.Type[0] != signatureLow || fh.Type[1] != signatureHigh {
		return fh, InfoHeader{}, fmt.Errorf("%w: got %#02x %#02x", ErrInvalidSignature, fh.Type[0], fh.Type[1])
	}

	ih := readInfoHeader(data)
	if ih.Size != InfoHeaderSize {
		return fh, ih, fmt.Errorf("%w: header size %d, want %d", ErrUnsupportedHeaderVariant, ih.Size, InfoHeaderSize)
	}

	if ih.BitCount != 24 && ih.BitCount != 32 {
		return fh, ih, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedPixelFormat, ih.BitCount)
	}

	if ih.Compression != CompressionNone && !(ih.Compression == CompressionMask && ih.BitCount == 32) {
		return fh, ih, fmt.Errorf("%w: method %d at %d bits per pixel", ErrUnsupportedCompression, ih.Compression, ih.BitCount)
	}

	if ih.Width <= 0 || ih.Height <= 0 {
		return fh, ih, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, ih.Width, ih.Height)
	}

	return fh, ih, nil
}

// rowLayout returns the on-disk stride of one row and the padding it contains.
// 24-bit rows carry width%4 padding bytes, which aligns them to 4 bytes.
func rowLayout(width, bitCount int) (stride, padding int) {
	if bitCount == 24 {
		padding = width % 4
		return width*3 + padding, padding
	}
	return width * 4, 0
}

// Inspect validates the headers of a bitmap and describes them.
func Inspect(data []byte) (*Metadata, error) {
	fh, ih, err := parseHeaders(data)
	if err != nil {
		return nil, err
	}

	m := &Metadata{
		FileSize:    fh.Size,
		PixelOffset: fh.OffBits,
		HeaderSize:  ih.Size,
		Width:       int(ih.Width),
		Height:      int(ih.Height),
		BitCount:    int(ih.BitCount),
		Compression: ih.Compression,
		RedMask:     ih.RedMask,
		GreenMask:   ih.GreenMask,
		BlueMask:    ih.BlueMask,
		AlphaMask:   ih.AlphaMask,
		ColorSpace:  ih.CSType,
	}
	m.Stride, m.Padding = rowLayout(m.Width, m.BitCount)

	return m, nil
}

// Decode parses a bitmap file held in data into a canonical image.
func Decode(data []byte) (*Image, error) {
	fh, ih, err := parseHeaders(data)
	if err != nil {
		return nil, err
	}

	width := int(ih.Width)
	height := int(ih.Height)
	bitCount := int(ih.BitCount)
	stride, padding := rowLayout(width, bitCount)

	// Pixel array must fit between the declared offset and the end of the input
	offset := uint64(fh.OffBits)
	if offset > uint64(len(data)) || (uint64(len(data))-offset)/uint64(stride) < uint64(height) {
		return nil, fmt.Errorf("%w: pixel data for %dx%d at offset %d exceeds %d bytes",
			ErrTruncatedInput, width, height, offset, len(data))
	}

	img := &Image{Width: width, Height: height, Pix: make([]uint32, width*height)}
	src := data[offset:]

	switch bitCount {
	case 24:
		decode24(img, src, padding)
	case 32:
		redMask, greenMask, blueMask, alphaMask := uint32(defaultRedMask), uint32(defaultGreenMask), uint32(defaultBlueMask), uint32(defaultAlphaMask)
		if ih.Compression == CompressionMask {
			redMask, greenMask, blueMask, alphaMask = ih.RedMask, ih.GreenMask, ih.BlueMask, ih.AlphaMask
		}
		decode32(img, src, redMask, greenMask, blueMask, alphaMask)
	}

	Logger().Debug("decoded bitmap",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("bitCount", bitCount),
		zap.Uint32("compression", ih.Compression),
	)

	return img, nil
}

// decode24 copies 3-byte pixels row by row, skipping the padding after each row.
// The first byte of a pixel lands in bits 16-23 and alpha is forced opaque.
func decode24(img *Image, src []byte, padding int) {
	i, dst := 0, 0
	for range img.Height {
		for range img.Width {
			img.Pix[dst] = 0xFF000000 | uint32(src[i])<<16 | uint32(src[i+1])<<8 | uint32(src[i+2])
			i += 3
			dst++
		}
		i += padding
	}
}

// decode32 extracts each channel through its mask and repacks it in canonical order.
func decode32(img *Image, src []byte, redMask, greenMask, blueMask, alphaMask uint32) {
	redShift := MaskToShift(redMask)
	greenShift := MaskToShift(greenMask)
	blueShift := MaskToShift(blueMask)
	alphaShift := MaskToShift(alphaMask)

	c := headerCursor(src)
	for i := range img.Pix {
		w := c.u32(i * 4)
		r := (w & redMask) >> redShift & 0xFF
		g := (w & greenMask) >> greenShift & 0xFF
		b := (w & blueMask) >> blueShift & 0xFF
		a := (w & alphaMask) >> alphaShift & 0xFF
		img.Pix[i] = a<<24 | b<<16 | g<<8 | r
	}
}

// Print the Metadata of a bitmap (in human-readable format)
func (m *Metadata) Print(w io.Writer) {
	fmt.Fprintf(w, "Filesize: \t%v bytes\n", m.FileSize)
	fmt.Fprintf(w, "HeaderSize: \t%v bytes\n", m.HeaderSize)
	fmt.Fprintf(w, "Width: \t\t%v px\n", m.Width)
	fmt.Fprintf(w, "Height: \t%v px\n", m.Height)
	fmt.Fprintf(w, "BitCount: \t%vbits\n", m.BitCount)
	fmt.Fprintf(w, "Compression: \t%v\n", m.Compression)
	if m.Compression == CompressionMask {
		fmt.Fprintf(w, "Masks: \t\tR=%#08x G=%#08x B=%#08x A=%#08x\n", m.RedMask, m.GreenMask, m.BlueMask, m.AlphaMask)
	}
	fmt.Fprintf(w, "ColorSpace: \t%#08x\n", m.ColorSpace)
	fmt.Fprintf(w, "PixelOffset: \t%v bytes\n", m.PixelOffset)
	fmt.Fprintf(w, "PixelCount: \t%v pixels\n", m.Width*m.Height)
	fmt.Fprintf(w, "Stride: \t%v bytes\n", m.Stride)
	fmt.Fprintf(w, "Padding: \t%v bytes\n", m.Padding)
}
