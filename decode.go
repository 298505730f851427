package safewebp

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/deepteams/webp"
)

// MaxDimension is the largest width or height a Picture may have. It is the
// WebP bitstream limit; anything larger could never be encoded.
const MaxDimension = webp.MaxDimension

// sourceCodec is the pair of foreign routines used for one source format.
type sourceCodec struct {
	decodeConfig func(io.Reader) (image.Config, error)
	decode       func(io.Reader) (image.Image, error)
}

var sourceCodecs = map[Format]sourceCodec{
	FormatJPEG: {decodeConfig: jpeg.DecodeConfig, decode: jpeg.Decode},
	FormatPNG:  {decodeConfig: png.DecodeConfig, decode: png.Decode},
}

// Decode turns img into a Picture. The header is checked before any pixel
// storage is allocated; a failed decode never yields a Picture.
func (b *Boundary) Decode(img EncodedImage) (*Picture, error) {
	if len(img.Data) == 0 {
		return nil, &DecodeError{Format: img.Format, Err: ErrEmptyInput}
	}
	codec, ok := sourceCodecs[img.Format]
	if !ok {
		return nil, &DecodeError{Format: img.Format, Err: ErrUnknownFormat}
	}

	cfg, err := codec.decodeConfig(bytes.NewReader(img.Data))
	if err != nil {
		return nil, &DecodeError{Format: img.Format, Err: err}
	}
	if err := checkDimensions(cfg.Width, cfg.Height); err != nil {
		return nil, &DecodeError{Format: img.Format, Err: err}
	}

	src, err := codec.decode(bytes.NewReader(img.Data))
	if err != nil {
		return nil, &DecodeError{Format: img.Format, Err: err}
	}
	// The full decode may disagree with the header on corrupt input.
	bounds := src.Bounds()
	if err := checkDimensions(bounds.Dx(), bounds.Dy()); err != nil {
		return nil, &DecodeError{Format: img.Format, Err: err}
	}
	return newPicture(src, img.Format), nil
}

func checkDimensions(w, h int) error {
	if w <= 0 || h <= 0 || w > MaxDimension || h > MaxDimension {
		return fmt.Errorf("%w: %dx%d (max %d)", ErrBadDimension, w, h, MaxDimension)
	}
	return nil
}
