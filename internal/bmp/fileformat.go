// BMP-specific structs and types
package bmp

import "encoding/binary"

const (
	FileHeaderSize  = 14                              // Size of the BITMAPFILEHEADER on disk
	InfoHeaderSize  = 124                             // Size of the only info header variant we accept
	HeaderSize      = FileHeaderSize + InfoHeaderSize // Offset of the pixel array in files we write
	signatureLow    = 0x42                            // 'B'
	signatureHigh   = 0x4d                            // 'M'
	CompressionNone = 0                               // BI_RGB
	CompressionMask = 3                               // BI_BITFIELDS
	ColorSpaceSRGB  = 0x73524742                      // 'sRGB'
	IntentPicture   = 4                               // LCS_GM_IMAGES
)

// The FileHeader structure contains information about the type, size,
// and layout of a file that contains a DIB [device-independent bitmap].
// https://learn.microsoft.com/en-us/windows/win32/api/wingdi/ns-wingdi-bitmapfileheader
type FileHeader struct {
	Type     [2]byte // The file type: must be 0x4d42 (ASCII string "BM").
	Size     uint32  // The size, in bytes, of the bitmap file.
	Reserved uint32  // Reserved; written as zero, ignored on read.
	OffBits  uint32  // Bitmap File Offset (In bytes) to Pixel Arrays
}

// The InfoHeader structure carries the dimensions, color format and
// channel masks of the bitmap, plus the color space fields we write but never read.
// https://learn.microsoft.com/en-us/windows/win32/api/wingdi/ns-wingdi-bitmapv5header
type InfoHeader struct {
	Size            uint32    // The number of bytes required by the structure.
	Width           int32     // The width of the bitmap, in pixels.
	Height          int32     // The height of the bitmap, in pixels
	Planes          uint16    // The number of planes for the target device.
	BitCount        uint16    // The number of bits-per-pixel.
	Compression     uint32    // The type of compression
	SizeImage       uint32    // The size of the image (in bytes).
	XPixelsPerM     int32     // The horizontal resolution, in pixels-per-meter.
	YPixelsPerM     int32     // The vertical resolution, in pixels-per-meter.
	ColorsUsed      uint32    // Number of color indexes that are actually used by bitmap.
	ColorsImportant uint32    // Number of color indexes required for displaying the bitmap.
	RedMask         uint32    // Bits holding the red channel of each pixel word.
	GreenMask       uint32    // Bits holding the green channel.
	BlueMask        uint32    // Bits holding the blue channel.
	AlphaMask       uint32    // Bits holding the alpha channel.
	CSType          uint32    // Color space of the bitmap.
	Endpoints       [9]uint32 // CIEXYZTRIPLE endpoints, unused for sRGB.
	GammaRed        uint32
	GammaGreen      uint32
	GammaBlue       uint32
	Intent          uint32 // Rendering intent.
	ProfileData     uint32 // Offset of the embedded ICC profile.
	ProfileSize     uint32
	Reserved        uint32
}

// Field offsets within the combined header block (file header followed by info header).
// Every field is little-endian; widths are implied by the accessor used.
const (
	offType        = 0
	offFileSize    = 2
	offReserved    = 6
	offOffBits     = 10
	offInfoSize    = 14
	offWidth       = 18
	offHeight      = 22
	offPlanes      = 26
	offBitCount    = 28
	offCompression = 30
	offSizeImage   = 34
	offXPPM        = 38
	offYPPM        = 42
	offColorsUsed  = 46
	offColorsImp   = 50
	offRedMask     = 54
	offGreenMask   = 58
	offBlueMask    = 62
	offAlphaMask   = 66
	offCSType      = 70
	offEndpoints   = 74
	offGammaRed    = 110
	offGammaGreen  = 114
	offGammaBlue   = 118
	offIntent      = 122
	offProfileData = 126
	offProfileSize = 130
	offInfoReserve = 134
)

// headerCursor reads and writes header fields at fixed offsets of a byte slice.
type headerCursor []byte

func (c headerCursor) u16(off int) uint16 { return binary.LittleEndian.Uint16(c[off : off+2]) }
func (c headerCursor) u32(off int) uint32 { return binary.LittleEndian.Uint32(c[off : off+4]) }
func (c headerCursor) i32(off int) int32 { return int32(c.u32(off)) } // #nosec G115
func (c headerCursor) putU16(off int, v uint16) { binary.LittleEndian.PutUint16(c[off:off+2], v) }
func (c headerCursor) putU32(off int, v uint32) { binary.LittleEndian.PutUint32(c[off:off+4], v) }
func (c headerCursor) putI32(off int, v int32) { c.putU32(off, uint32(v)) } // #nosec G115

// readFileHeader parses the file header. data must hold at least FileHeaderSize bytes.
func readFileHeader(data []byte) FileHeader {
	c := headerCursor(data)
	return FileHeader{
		Type:     [2]byte{data[offType], data[offType+1]},
		Size:     c.u32(offFileSize),
		Reserved: c.u32(offReserved),
		OffBits:  c.u32(offOffBits),
	}
}

// readInfoHeader parses the info header. data must hold at least HeaderSize bytes
// and start at the beginning of the file.
func readInfoHeader(data []byte) InfoHeader {
	c := headerCursor(data)
	h := InfoHeader{
		Size:            c.u32(offInfoSize),
		Width:           c.i32(offWidth),
		Height:          c.i32(offHeight),
		Planes:          c.u16(offPlanes),
		BitCount:        c.u16(offBitCount),
		Compression:     c.u32(offCompression),
		SizeImage:       c.u32(offSizeImage),
		XPixelsPerM:     c.i32(offXPPM),
		YPixelsPerM:     c.i32(offYPPM),
		ColorsUsed:      c.u32(offColorsUsed),
		ColorsImportant: c.u32(offColorsImp),
		RedMask:         c.u32(offRedMask),
		GreenMask:       c.u32(offGreenMask),
		BlueMask:        c.u32(offBlueMask),
		AlphaMask:       c.u32(offAlphaMask),
		CSType:          c.u32(offCSType),
		GammaRed:        c.u32(offGammaRed),
		GammaGreen:      c.u32(offGammaGreen),
		GammaBlue:       c.u32(offGammaBlue),
		Intent:          c.u32(offIntent),
		ProfileData:     c.u32(offProfileData),
		ProfileSize:     c.u32(offProfileSize),
		Reserved:        c.u32(offInfoReserve),
	}
	for i := range h.Endpoints {
		h.Endpoints[i] = c.u32(offEndpoints + 4*i)
	}
	return h
}

// writeHeaders serializes both headers into the first HeaderSize bytes of dst.
func writeHeaders(dst []byte, fh *FileHeader, ih *InfoHeader) {
	c := headerCursor(dst)

	dst[offType] = fh.Type[0]
	dst[offType+1] = fh.Type[1]
	c.putU32(offFileSize, fh.Size)
	c.putU32(offReserved, fh.Reserved)
	c.putU32(offOffBits, fh.OffBits)

	c.putU32(offInfoSize, ih.Size)
	c.putI32(offWidth, ih.Width)
	c.putI32(offHeight, ih.Height)
	c.putU16(offPlanes, ih.Planes)
	c.putU16(offBitCount, ih.BitCount)
	c.putU32(offCompression, ih.Compression)
	c.putU32(offSizeImage, ih.SizeImage)
	c.putI32(offXPPM, ih.XPixelsPerM)
	c.putI32(offYPPM, ih.YPixelsPerM)
	c.putU32(offColorsUsed, ih.ColorsUsed)
	c.putU32(offColorsImp, ih.ColorsImportant)
	c.putU32(offRedMask, ih.RedMask)
	c.putU32(offGreenMask, ih.GreenMask)
	c.putU32(offBlueMask, ih.BlueMask)
	c.putU32(offAlphaMask, ih.AlphaMask)
	c.putU32(offCSType, ih.CSType)
	for i, e := range ih.Endpoints {
		c.putU32(offEndpoints+4*i, e)
	}
	c.putU32(offGammaRed, ih.GammaRed)
	c.putU32(offGammaGreen, ih.GammaGreen)
	c.putU32(offGammaBlue, ih.GammaBlue)
	c.putU32(offIntent, ih.Intent)
	c.putU32(offProfileData, ih.ProfileData)
	c.putU32(offProfileSize, ih.ProfileSize)
	c.putU32(offInfoReserve, ih.Reserved)
}
