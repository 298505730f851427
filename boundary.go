package safewebp

import (
	"fmt"
	"strings"
)

// Backend names a foreign WebP encoder.
type Backend int

const (
	// BackendDeepteams is the pure Go github.com/deepteams/webp encoder.
	// It honours every EncodeConfig field.
	BackendDeepteams Backend = iota
	// BackendGen2brain is libwebp through github.com/gen2brain/webp (WASM,
	// or a system libwebp via purego when present).
	BackendGen2brain
	// BackendNative is github.com/HugoSmits86/nativewebp. Lossless only.
	BackendNative
	// BackendLibwebp is libwebp through CGo (github.com/chai2010/webp).
	// Builds without CGo report ErrUnsupported for every encode.
	BackendLibwebp
)

var backendNames = [...]string{"deepteams", "gen2brain", "native", "libwebp"}

func (b Backend) String() string {
	if b < BackendDeepteams || b > BackendLibwebp {
		return fmt.Sprintf("Backend(%d)", int(b))
	}
	return backendNames[b]
}

// Backends returns every known backend.
func Backends() []Backend {
	return []Backend{BackendDeepteams, BackendGen2brain, BackendNative, BackendLibwebp}
}

// ParseBackend parses a backend name (case-insensitive).
func ParseBackend(s string) (Backend, error) {
	for i, name := range backendNames {
		if strings.EqualFold(s, name) {
			return Backend(i), nil
		}
	}
	return 0, fmt.Errorf("safewebp: unknown backend %q", s)
}

// Boundary is the checked entry point to the foreign codecs. A Boundary has
// no mutable state and may be used from several goroutines, as long as each
// Picture stays with one of them. The zero value uses BackendDeepteams.
type Boundary struct {
	backend Backend
	enc     encoder
}

// Option configures a Boundary.
type Option func(*Boundary)

// WithBackend selects the WebP encoder. The default is BackendDeepteams.
func WithBackend(b Backend) Option {
	return func(bd *Boundary) { bd.backend = b }
}

// New returns a Boundary. An unknown backend falls back to the default.
func New(opts ...Option) *Boundary {
	b := &Boundary{backend: BackendDeepteams}
	for _, opt := range opts {
		opt(b)
	}
	b.enc = encoderFor(b.backend)
	if b.enc == nil {
		b.backend = BackendDeepteams
		b.enc = encoderFor(b.backend)
	}
	return b
}

// Backend returns the encoder this boundary dispatches to.
func (b *Boundary) Backend() Backend { return b.backend }

// encoder returns the backend's encoder, resolving it for a Boundary that was
// not built by New.
func (b *Boundary) encoder() encoder {
	if b.enc != nil {
		return b.enc
	}
	if e := encoderFor(b.backend); e != nil {
		return e
	}
	return deepteamsEncoder{}
}

func encoderFor(b Backend) encoder {
	switch b {
	case BackendDeepteams:
		return deepteamsEncoder{}
	case BackendGen2brain:
		return gen2brainEncoder{}
	case BackendNative:
		return nativeEncoder{}
	case BackendLibwebp:
		return libwebpEncoder{}
	}
	return nil
}

var defaultBoundary = New()

// Decode decodes img with the default boundary.
func Decode(img EncodedImage) (*Picture, error) {
	return defaultBoundary.Decode(img)
}

// MakeConfig builds a validated config. Configs do not depend on the
// backend, so any boundary accepts the result.
func MakeConfig(preset Preset, quality float32, opts ...ConfigOption) (EncodeConfig, error) {
	return makeConfig(preset, quality, opts...)
}

// Encode encodes pic with the default boundary.
func Encode(pic *Picture, cfg EncodeConfig) ([]byte, error) {
	return defaultBoundary.Encode(pic, cfg)
}

// Convert runs the whole pipeline with the default boundary.
func Convert(img EncodedImage, cfg EncodeConfig) ([]byte, error) {
	return defaultBoundary.Convert(img, cfg)
}
