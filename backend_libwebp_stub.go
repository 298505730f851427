//go:build !cgo

package safewebp

import (
	"fmt"
	"image"
	"io"
)

type libwebpEncoder struct{}

func (libwebpEncoder) check(*EncodeConfig) error {
	return fmt.Errorf("%w: libwebp backend requires CGO_ENABLED=1", ErrUnsupported)
}

func (libwebpEncoder) encode(io.Writer, *image.NRGBA, *EncodeConfig) error {
	return fmt.Errorf("%w: libwebp backend requires CGO_ENABLED=1", ErrUnsupported)
}
