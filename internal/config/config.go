// Package config loads conversion settings for the safewebp command from a
// YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/deepteams/safewebp"
)

// Config is the full set of conversion settings. Zero-valued optional
// fields mean "encoder default".
type Config struct {
	// Encoder
	Backend      string  `yaml:"backend"`
	Preset       string  `yaml:"preset"`
	Quality      float32 `yaml:"quality"`
	Lossless     bool    `yaml:"lossless"`
	Method       int     `yaml:"method"`
	TargetSize   int     `yaml:"target_size"`
	TargetPSNR   float32 `yaml:"target_psnr"`
	SharpYUV     bool    `yaml:"sharp_yuv"`
	Exact        bool    `yaml:"exact"`
	AlphaQuality int     `yaml:"alpha_quality"`

	// Run
	Workers   int    `yaml:"workers"`
	Verify    bool   `yaml:"verify"`
	LogLevel  string `yaml:"log_level"`
	OutputDir string `yaml:"output_dir"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Backend:      safewebp.BackendDeepteams.String(),
		Preset:       safewebp.PresetDefault.String(),
		Quality:      75,
		Method:       4,
		AlphaQuality: 100,
		Workers:      runtime.NumCPU(),
		LogLevel:     "info",
	}
}

// LoadFromFile loads configuration from a YAML file. Keys absent from the
// file keep their Defaults value; an empty file yields Defaults. Unknown keys
// are an error.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the fields that are not checked by safewebp.MakeConfig.
func (c Config) Validate() error {
	if _, err := safewebp.ParseBackend(c.Backend); err != nil {
		return err
	}
	if _, err := safewebp.ParsePreset(c.Preset); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid workers %d (must be >= 0)", c.Workers)
	}
	return nil
}

// EncodeConfig builds the validated encoder config.
func (c Config) EncodeConfig() (safewebp.EncodeConfig, error) {
	preset, err := safewebp.ParsePreset(c.Preset)
	if err != nil {
		return safewebp.EncodeConfig{}, err
	}
	opts := []safewebp.ConfigOption{
		safewebp.WithMethod(c.Method),
		safewebp.WithTargetSize(c.TargetSize),
		safewebp.WithTargetPSNR(c.TargetPSNR),
		safewebp.WithAlphaQuality(c.AlphaQuality),
	}
	if c.Lossless {
		opts = append(opts, safewebp.WithLossless())
	}
	if c.SharpYUV {
		opts = append(opts, safewebp.WithSharpYUV())
	}
	if c.Exact {
		opts = append(opts, safewebp.WithExact())
	}
	return safewebp.MakeConfig(preset, c.Quality, opts...)
}

// Boundary returns a boundary using the configured backend.
func (c Config) Boundary() (*safewebp.Boundary, error) {
	b, err := safewebp.ParseBackend(c.Backend)
	if err != nil {
		return nil, err
	}
	return safewebp.New(safewebp.WithBackend(b)), nil
}
