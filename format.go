package safewebp

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format identifies the container of an EncodedImage.
type Format int

const (
	FormatUnknown Format = iota
	FormatJPEG
	FormatPNG
)

func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	default:
		return "unknown"
	}
}

// EncodedImage is a caller-owned source image. The boundary never modifies
// Data.
type EncodedImage struct {
	Data   []byte
	Format Format
}

var (
	jpegMagic = []byte{0xff, 0xd8, 0xff}
	pngMagic  = []byte("\x89PNG\r\n\x1a\n")
)

// DetectFormat guesses the format of data from its leading signature. It
// returns FormatUnknown when no supported signature matches.
func DetectFormat(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return FormatPNG
	case bytes.HasPrefix(data, jpegMagic):
		return FormatJPEG
	default:
		return FormatUnknown
	}
}

// FormatFromName maps a file name's extension to a Format.
func FormatFromName(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".jpe", ".jfif":
		return FormatJPEG
	case ".png":
		return FormatPNG
	default:
		return FormatUnknown
	}
}
