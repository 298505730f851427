package safewebp

import (
	"image"
	"io"

	"github.com/deepteams/webp"
)

type deepteamsEncoder struct{}

func (deepteamsEncoder) check(*EncodeConfig) error { return nil }

func (deepteamsEncoder) encode(w io.Writer, img *image.NRGBA, cfg *EncodeConfig) error {
	// webp.Encode takes a pointer; hand it a copy so the shared config
	// stays immutable.
	opts := cfg.opts
	return webp.Encode(w, img, &opts)
}
