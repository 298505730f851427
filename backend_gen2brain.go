package safewebp

import (
	"fmt"
	"image"
	"io"
	"math"

	gen2brain "github.com/gen2brain/webp"
)

type gen2brainEncoder struct{}

// gen2brain treats quality 100 as a request for lossless output, so a lossy
// config at that quality cannot be honoured.
func (gen2brainEncoder) check(cfg *EncodeConfig) error {
	if !cfg.opts.Lossless && gen2brainQuality(cfg) == 100 {
		return fmt.Errorf("%w: lossy encoding at quality 100", ErrUnsupported)
	}
	return requireBasic(cfg)
}

func (gen2brainEncoder) encode(w io.Writer, img *image.NRGBA, cfg *EncodeConfig) error {
	return gen2brain.Encode(w, img, gen2brain.Options{
		Quality:  gen2brainQuality(cfg),
		Lossless: cfg.opts.Lossless,
		Method:   cfg.opts.Method,
		Exact:    cfg.opts.Exact,
	})
}

func gen2brainQuality(cfg *EncodeConfig) int {
	return int(math.Round(float64(cfg.opts.Quality)))
}

// requireBasic rejects configs that ask for features only the deepteams
// encoder exposes. Presets and method are tuning hints and are not
// rejected.
func requireBasic(cfg *EncodeConfig) error {
	o := &cfg.opts
	switch {
	case o.TargetSize > 0:
		return fmt.Errorf("%w: target size", ErrUnsupported)
	case o.TargetPSNR > 0:
		return fmt.Errorf("%w: target PSNR", ErrUnsupported)
	case o.UseSharpYUV:
		return fmt.Errorf("%w: sharp YUV", ErrUnsupported)
	case o.ICC != nil || o.EXIF != nil || o.XMP != nil:
		return fmt.Errorf("%w: metadata", ErrUnsupported)
	case o.AlphaQuality >= 0 && o.AlphaQuality < 100:
		return fmt.Errorf("%w: alpha quality", ErrUnsupported)
	}
	return nil
}
