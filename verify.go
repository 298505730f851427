package safewebp

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/deepteams/webp"
	"github.com/deepteams/webp/mux"
	xwebp "golang.org/x/image/webp"
)

// Verify decodes the header of a WebP stream with golang.org/x/image/webp,
// a decoder independent of every encoder backend, and returns what it saw.
func Verify(data []byte) (image.Config, error) {
	if len(data) == 0 {
		return image.Config{}, fmt.Errorf("safewebp: verify: %w", ErrEmptyInput)
	}
	cfg, err := xwebp.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Config{}, fmt.Errorf("safewebp: verify: %w", err)
	}
	return cfg, nil
}

// VerifyDimensions checks that data decodes to a width x height image.
func VerifyDimensions(data []byte, width, height int) error {
	cfg, err := Verify(data)
	if err != nil {
		return err
	}
	if cfg.Width != width || cfg.Height != height {
		return fmt.Errorf("safewebp: verify: decoded %dx%d, want %dx%d", cfg.Width, cfg.Height, width, height)
	}
	return nil
}

// Features describes a WebP stream.
type Features struct {
	Width        int
	Height       int
	HasAlpha     bool
	HasAnimation bool
	Format       string // "lossy", "lossless" or "extended"
	LoopCount    int    // 0 means infinite
	FrameCount   int
	HasICC       bool
	HasEXIF      bool
	HasXMP       bool
}

// Inspect reads the container features of a WebP stream without decoding
// pixels.
func Inspect(data []byte) (*Features, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("safewebp: inspect: %w", ErrEmptyInput)
	}
	f, err := webp.GetFeatures(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("safewebp: inspect: %w", err)
	}
	d, err := mux.NewDemuxer(data)
	if err != nil {
		return nil, fmt.Errorf("safewebp: inspect: %w", err)
	}
	mf := d.GetFeatures()
	return &Features{
		Width:        f.Width,
		Height:       f.Height,
		HasAlpha:     f.HasAlpha,
		HasAnimation: f.HasAnimation,
		Format:       f.Format,
		LoopCount:    f.LoopCount,
		FrameCount:   f.FrameCount,
		HasICC:       mf.HasICC,
		HasEXIF:      mf.HasEXIF,
		HasXMP:       mf.HasXMP,
	}, nil
}

// Metadata holds the ICC, EXIF and XMP payloads of a WebP stream. Absent
// chunks are nil.
type Metadata struct {
	ICC  []byte
	EXIF []byte
	XMP  []byte
}

// ExtractMetadata returns copies of the metadata chunks embedded in data.
func ExtractMetadata(data []byte) (Metadata, error) {
	var md Metadata
	if len(data) == 0 {
		return md, fmt.Errorf("safewebp: metadata: %w", ErrEmptyInput)
	}
	d, err := mux.NewDemuxer(data)
	if err != nil {
		return md, fmt.Errorf("safewebp: metadata: %w", err)
	}
	for _, c := range []struct {
		id  mux.ChunkID
		dst *[]byte
	}{
		{mux.FourCCICCP, &md.ICC},
		{mux.FourCCEXIF, &md.EXIF},
		{mux.FourCCXMP, &md.XMP},
	} {
		payload, err := d.GetChunk(c.id)
		if errors.Is(err, mux.ErrChunkNotFound) {
			continue
		}
		if err != nil {
			return md, fmt.Errorf("safewebp: metadata: %w", err)
		}
		*c.dst = bytes.Clone(payload)
	}
	return md, nil
}
