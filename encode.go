package safewebp

import (
	"bytes"
	"image"
	"io"
)

// encoder is one foreign WebP encode routine.
type encoder interface {
	// check reports whether cfg can be honoured without silently dropping
	// a requested feature.
	check(cfg *EncodeConfig) error
	encode(w io.Writer, img *image.NRGBA, cfg *EncodeConfig) error
}

// Encode consumes pic and returns its WebP encoding. The picture's storage
// is released on every path, so pic is unusable afterwards whatever the
// result. Encoding a picture twice fails with ErrConsumed.
func (b *Boundary) Encode(pic *Picture, cfg EncodeConfig) ([]byte, error) {
	var buf bytes.Buffer
	if err := b.EncodeTo(&buf, pic, cfg); err != nil {
		return nil, err
	}
	if buf.Len() == 0 {
		return nil, &EncodeError{Backend: b.backend, Err: ErrEmptyOutput}
	}
	return buf.Bytes(), nil
}

// EncodeTo is like Encode but streams the output to w. On failure w may have
// received a partial stream.
func (b *Boundary) EncodeTo(w io.Writer, pic *Picture, cfg EncodeConfig) error {
	if pic == nil {
		return &EncodeError{Backend: b.backend, Err: ErrNilPicture}
	}
	img, err := pic.take()
	if err != nil {
		return &EncodeError{Backend: b.backend, Err: err}
	}
	defer pic.free()

	if !cfg.valid {
		return &EncodeError{Backend: b.backend, Err: ErrInvalidConfig}
	}
	enc := b.encoder()
	if err := enc.check(&cfg); err != nil {
		return &EncodeError{Backend: b.backend, Err: err}
	}
	if err := enc.encode(w, img, &cfg); err != nil {
		return &EncodeError{Backend: b.backend, Err: err}
	}
	return nil
}

// Convert decodes img and encodes it with cfg. The intermediate picture
// never escapes, and it is released even when cfg is rejected.
func (b *Boundary) Convert(img EncodedImage, cfg EncodeConfig) ([]byte, error) {
	pic, err := b.Decode(img)
	if err != nil {
		return nil, err
	}
	return b.Encode(pic, cfg)
}
