package bmp

import "errors"

var (
	ErrTruncatedInput           = errors.New("bmp: truncated input")
	ErrInvalidSignature         = errors.New("bmp: invalid signature, not a bitmap")
	ErrUnsupportedHeaderVariant = errors.New("bmp: unsupported info header variant")
	ErrUnsupportedPixelFormat   = errors.New("bmp: unsupported pixel format")
	ErrUnsupportedCompression   = errors.New("bmp: unsupported compression method")
	ErrInvalidDimensions        = errors.New("bmp: invalid dimensions")
	ErrInvalidChannel           = errors.New("bmp: invalid color channel")
)
