//go:build cgo

package safewebp

import (
	"image"
	"io"

	chai2010 "github.com/chai2010/webp"
)

type libwebpEncoder struct{}

func (libwebpEncoder) check(cfg *EncodeConfig) error {
	return requireBasic(cfg)
}

func (libwebpEncoder) encode(w io.Writer, img *image.NRGBA, cfg *EncodeConfig) error {
	return chai2010.Encode(w, img, &chai2010.Options{
		Lossless: cfg.opts.Lossless,
		Quality:  cfg.opts.Quality,
		Exact:    cfg.opts.Exact,
	})
}
