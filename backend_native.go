package safewebp

import (
	"fmt"
	"image"
	"io"

	"github.com/HugoSmits86/nativewebp"
)

type nativeEncoder struct{}

func (nativeEncoder) check(cfg *EncodeConfig) error {
	if !cfg.opts.Lossless {
		return fmt.Errorf("%w: lossy encoding", ErrUnsupported)
	}
	if cfg.opts.Exact {
		return fmt.Errorf("%w: exact", ErrUnsupported)
	}
	return requireBasic(cfg)
}

func (nativeEncoder) encode(w io.Writer, img *image.NRGBA, _ *EncodeConfig) error {
	return nativewebp.Encode(w, img, nil)
}
