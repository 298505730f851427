package safewebp

import (
	"image"
	"sync/atomic"

	xdraw "golang.org/x/image/draw"

	"github.com/deepteams/safewebp/internal/pool"
)

// The zero state is none of these, so a Picture not built by Decode can be
// neither encoded nor released.
const (
	pictureDecoded int32 = iota + 1
	pictureConsumed
	pictureReleased
)

// Picture is a fully decoded image waiting to be encoded. It is owned by the
// boundary: its pixel storage is borrowed from a pool and returned exactly
// once, either by Encode or by Release.
//
// A Picture must not be shared between goroutines. Encode claims it
// atomically, so a second Encode (or an Encode after Release) fails with
// ErrConsumed instead of reading storage that has already been handed back.
type Picture struct {
	width    int
	height   int
	hasAlpha bool
	source   Format
	img      *image.NRGBA
	state    atomic.Int32
}

// newPicture copies src into pooled NRGBA storage. Dimensions have already
// been checked by the caller.
func newPicture(src image.Image, source Format) *Picture {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := &image.NRGBA{
		Pix:    pool.Get(w * h * 4),
		Stride: w * 4,
		Rect:   image.Rect(0, 0, w, h),
	}
	// Src overwrites every pixel, so the unzeroed pooled buffer is safe.
	xdraw.Draw(dst, dst.Rect, src, b.Min, xdraw.Src)

	p := &Picture{
		width:    w,
		height:   h,
		hasAlpha: !dst.Opaque(),
		source:   source,
		img:      dst,
	}
	p.state.Store(pictureDecoded)
	return p
}

// Width returns the picture width in pixels.
func (p *Picture) Width() int { return p.width }

// Height returns the picture height in pixels.
func (p *Picture) Height() int { return p.height }

// HasAlpha reports whether any pixel is not fully opaque.
func (p *Picture) HasAlpha() bool { return p.hasAlpha }

// Source returns the format the picture was decoded from.
func (p *Picture) Source() Format { return p.source }

// Decoded reports whether the picture can still be encoded.
func (p *Picture) Decoded() bool {
	return p != nil && p.state.Load() == pictureDecoded
}

// Release discards a picture that will not be encoded. It is safe to call
// more than once and after Encode.
func (p *Picture) Release() {
	if p == nil {
		return
	}
	if p.state.CompareAndSwap(pictureDecoded, pictureReleased) {
		p.free()
	}
}

// take moves the picture to the consumed state and hands its pixels to the
// caller, who must call free when done.
func (p *Picture) take() (*image.NRGBA, error) {
	if !p.state.CompareAndSwap(pictureDecoded, pictureConsumed) {
		if p.state.Load() == 0 {
			return nil, ErrNotDecoded
		}
		return nil, ErrConsumed
	}
	return p.img, nil
}

func (p *Picture) free() {
	img := p.img
	p.img = nil
	if img != nil {
		pool.Put(img.Pix)
	}
}
