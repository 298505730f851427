package safewebp

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/deepteams/webp"
)

// Preset selects a set of encoding parameters tuned for a kind of content.
type Preset int

const (
	PresetDefault Preset = iota
	PresetPicture
	PresetPhoto
	PresetDrawing
	PresetIcon
	PresetText
)

var presetNames = [...]string{"default", "picture", "photo", "drawing", "icon", "text"}

func (p Preset) String() string {
	if p < PresetDefault || p > PresetText {
		return fmt.Sprintf("Preset(%d)", int(p))
	}
	return presetNames[p]
}

// Presets returns every defined preset in declaration order.
func Presets() []Preset {
	return []Preset{PresetDefault, PresetPicture, PresetPhoto, PresetDrawing, PresetIcon, PresetText}
}

// ParsePreset parses a preset name such as "photo" (case-insensitive).
func ParsePreset(s string) (Preset, error) {
	for i, name := range presetNames {
		if strings.EqualFold(s, name) {
			return Preset(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPreset, s)
}

func (p Preset) foreign() (webp.Preset, bool) {
	switch p {
	case PresetDefault:
		return webp.PresetDefault, true
	case PresetPicture:
		return webp.PresetPicture, true
	case PresetPhoto:
		return webp.PresetPhoto, true
	case PresetDrawing:
		return webp.PresetDrawing, true
	case PresetIcon:
		return webp.PresetIcon, true
	case PresetText:
		return webp.PresetText, true
	}
	return 0, false
}

// EncodeConfig is a validated set of encoder parameters. The zero value is
// not valid; obtain one from MakeConfig, LosslessConfig or LossyConfig.
// An EncodeConfig is immutable and may be shared between goroutines.
type EncodeConfig struct {
	preset  Preset
	quality float32
	opts    webp.EncoderOptions
	valid   bool
}

// ConfigOption adjusts an EncodeConfig inside MakeConfig, after the preset
// has been applied and before validation.
type ConfigOption func(*EncodeConfig)

// WithLossless selects VP8L lossless encoding. Quality then controls
// compression effort rather than fidelity.
func WithLossless() ConfigOption {
	return func(c *EncodeConfig) { c.opts.Lossless = true }
}

// WithMethod sets the effort level, 0 (fastest) to 6 (smallest output).
func WithMethod(m int) ConfigOption {
	return func(c *EncodeConfig) { c.opts.Method = m }
}

// WithTargetSize asks the encoder to aim for an output of n bytes.
// Zero disables it.
func WithTargetSize(n int) ConfigOption {
	return func(c *EncodeConfig) { c.opts.TargetSize = n }
}

// WithTargetPSNR asks the encoder to search quality until the output
// reaches psnr dB. Zero disables it.
func WithTargetPSNR(psnr float32) ConfigOption {
	return func(c *EncodeConfig) { c.opts.TargetPSNR = psnr }
}

// WithSharpYUV enables the slower, sharper RGB to YUV conversion.
func WithSharpYUV() ConfigOption {
	return func(c *EncodeConfig) { c.opts.UseSharpYUV = true }
}

// WithExact keeps RGB values under fully transparent pixels.
func WithExact() ConfigOption {
	return func(c *EncodeConfig) { c.opts.Exact = true }
}

// WithAlphaQuality sets the alpha plane quality for lossy encoding (0-100).
func WithAlphaQuality(q int) ConfigOption {
	return func(c *EncodeConfig) { c.opts.AlphaQuality = q }
}

// WithMetadata embeds ICC, EXIF and XMP payloads. Nil slices are skipped.
// The payloads are copied.
func WithMetadata(icc, exif, xmp []byte) ConfigOption {
	return func(c *EncodeConfig) {
		c.opts.ICC = bytes.Clone(icc)
		c.opts.EXIF = bytes.Clone(exif)
		c.opts.XMP = bytes.Clone(xmp)
	}
}

// MakeConfig initialises the encoder defaults, applies preset and quality,
// applies opts and validates the result. Quality outside [0, 100] is
// rejected rather than clamped. Identical arguments always produce configs
// that encode a given picture to identical bytes.
func (b *Boundary) MakeConfig(preset Preset, quality float32, opts ...ConfigOption) (EncodeConfig, error) {
	return makeConfig(preset, quality, opts...)
}

func makeConfig(preset Preset, quality float32, opts ...ConfigOption) (EncodeConfig, error) {
	if math.IsNaN(float64(quality)) || quality < 0 || quality > 100 {
		return EncodeConfig{}, &ConfigError{Err: fmt.Errorf("%w: %v", ErrQualityRange, quality)}
	}
	fp, ok := preset.foreign()
	if !ok {
		return EncodeConfig{}, &ConfigError{Err: fmt.Errorf("%w: %d", ErrUnknownPreset, int(preset))}
	}

	cfg := EncodeConfig{
		preset:  preset,
		quality: quality,
		opts:    *webp.OptionsForPreset(fp, quality),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := validateOptions(&cfg.opts); err != nil {
		return EncodeConfig{}, &ConfigError{Err: err}
	}
	cfg.valid = true
	return cfg, nil
}

// LosslessConfig returns a lossless config at maximum effort.
func LosslessConfig() (EncodeConfig, error) {
	return makeConfig(PresetDefault, 100, WithLossless(), WithMethod(6))
}

// LossyConfig returns a default-preset lossy config at quality q and
// maximum effort.
func LossyConfig(q float32) (EncodeConfig, error) {
	return makeConfig(PresetDefault, q, WithMethod(6))
}

// Valid reports whether c came from MakeConfig.
func (c EncodeConfig) Valid() bool { return c.valid }

// Preset returns the preset c was built from.
func (c EncodeConfig) Preset() Preset { return c.preset }

// Quality returns the quality factor c was built with.
func (c EncodeConfig) Quality() float32 { return c.quality }

// Lossless reports whether c selects lossless encoding.
func (c EncodeConfig) Lossless() bool { return c.opts.Lossless }

// Method returns the effort level.
func (c EncodeConfig) Method() int { return c.opts.Method }

func (c EncodeConfig) String() string {
	if !c.valid {
		return "invalid"
	}
	mode := "lossy"
	if c.opts.Lossless {
		mode = "lossless"
	}
	return fmt.Sprintf("%s preset=%s q=%.1f m=%d", mode, c.preset, c.quality, c.opts.Method)
}

// validateOptions applies the WebPValidateConfig ranges to o. Negative values
// are sentinels the encoder resolves to its defaults, so most int fields only
// have an upper bound. The ranges must track webp.Encode's own check, which
// is not exported; TestValidateOptions_MatchesEncoder keeps them in step.
func validateOptions(o *webp.EncoderOptions) error {
	if o.Quality < 0 || o.Quality > 100 || math.IsNaN(float64(o.Quality)) {
		return fmt.Errorf("%w: %.2f", ErrQualityRange, o.Quality)
	}
	if o.Method < 0 || o.Method > 6 {
		return fmt.Errorf("invalid method %d (must be 0-6)", o.Method)
	}
	if o.TargetSize < 0 {
		return fmt.Errorf("invalid target size %d (must be >= 0)", o.TargetSize)
	}
	if o.TargetPSNR < 0 || math.IsNaN(float64(o.TargetPSNR)) || math.IsInf(float64(o.TargetPSNR), 0) {
		return fmt.Errorf("invalid target PSNR %.2f (must be >= 0, finite)", o.TargetPSNR)
	}
	if o.Preprocessing < 0 || o.Preprocessing > 3 {
		return fmt.Errorf("invalid preprocessing %d (must be 0-3)", o.Preprocessing)
	}
	if o.Preset < webp.PresetDefault || o.Preset > webp.PresetText {
		return fmt.Errorf("invalid preset %d", o.Preset)
	}
	if o.SNSStrength > 100 {
		return fmt.Errorf("invalid SNS strength %d (must be 0-100)", o.SNSStrength)
	}
	if o.FilterStrength > 100 {
		return fmt.Errorf("invalid filter strength %d (must be 0-100)", o.FilterStrength)
	}
	if o.FilterSharpness < 0 || o.FilterSharpness > 7 {
		return fmt.Errorf("invalid filter sharpness %d (must be 0-7)", o.FilterSharpness)
	}
	if o.FilterType > 1 {
		return fmt.Errorf("invalid filter type %d (must be 0 or 1)", o.FilterType)
	}
	if o.Partitions < 0 || o.Partitions > 3 {
		return fmt.Errorf("invalid partitions %d (must be 0-3)", o.Partitions)
	}
	if o.Segments > 4 {
		return fmt.Errorf("invalid segments %d (must be 1-4)", o.Segments)
	}
	if o.Pass > 10 {
		return fmt.Errorf("invalid pass %d (must be 1-10)", o.Pass)
	}
	qmax := o.QMax
	if qmax < 0 {
		qmax = 100
	}
	if o.QMin < 0 || qmax > 100 || o.QMin > qmax {
		return fmt.Errorf("invalid qmin/qmax %d/%d (must be 0-100, qmin <= qmax)", o.QMin, o.QMax)
	}
	if o.AlphaCompression > 1 {
		return fmt.Errorf("invalid alpha compression %d (must be 0 or 1)", o.AlphaCompression)
	}
	if o.AlphaFiltering > 2 {
		return fmt.Errorf("invalid alpha filtering %d (must be 0-2)", o.AlphaFiltering)
	}
	if o.AlphaQuality > 100 {
		return fmt.Errorf("invalid alpha quality %d (must be 0-100)", o.AlphaQuality)
	}
	for _, md := range []struct {
		name string
		data []byte
	}{{"ICC", o.ICC}, {"EXIF", o.EXIF}, {"XMP", o.XMP}} {
		if len(md.data) > maxMetadataSize {
			return fmt.Errorf("%s payload too large (%d bytes, max %d)", md.name, len(md.data), maxMetadataSize)
		}
	}
	return nil
}

// maxMetadataSize is the per-chunk limit of the encoder and demuxer.
const maxMetadataSize = 100 << 20
