package safewebp

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by DecodeError, ConfigError and EncodeError.
var (
	ErrEmptyInput    = errors.New("safewebp: empty input")
	ErrUnknownFormat = errors.New("safewebp: unknown source format")
	ErrBadDimension  = errors.New("safewebp: invalid picture dimensions")
	ErrQualityRange  = errors.New("safewebp: quality out of range [0, 100]")
	ErrUnknownPreset = errors.New("safewebp: unknown preset")
	ErrInvalidConfig = errors.New("safewebp: config was not produced by MakeConfig")
	ErrNilPicture    = errors.New("safewebp: nil picture")
	ErrConsumed      = errors.New("safewebp: picture already consumed or released")
	ErrNotDecoded    = errors.New("safewebp: picture was not produced by Decode")
	ErrUnsupported   = errors.New("safewebp: not supported by backend")
	ErrEmptyOutput   = errors.New("safewebp: encoder produced no output")
)

// DecodeError reports that the source bytes could not be turned into a
// Picture. Err is either one of the sentinels above or the error returned by
// the format's decoder.
type DecodeError struct {
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("safewebp: decode %s: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ConfigError reports a preset/quality/option combination that failed
// validation.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("safewebp: config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// EncodeError reports that a Picture could not be encoded by the backend.
type EncodeError struct {
	Backend Backend
	Err     error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("safewebp: encode (%s): %v", e.Backend, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
