// Command safewebp converts JPEG and PNG images to WebP.
//
// Usage:
//
//	safewebp enc [options] <input>         JPEG/PNG to WebP (use "-" for stdin)
//	safewebp batch [options] <inputs...>   convert many files concurrently
//	safewebp info <input.webp>             display WebP features
//	safewebp presets                       list presets and backends
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/deepteams/safewebp"
	"github.com/deepteams/safewebp/internal/batch"
	"github.com/deepteams/safewebp/internal/config"
	"github.com/deepteams/safewebp/internal/logger"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "safewebp: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "safewebp",
		Usage:   "convert JPEG and PNG images to WebP",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:      "enc",
				Usage:     "encode a JPEG or PNG image to WebP",
				ArgsUsage: `<input> ("-" for stdin)`,
				Flags: append(encodeFlags(),
					&cli.StringFlag{Name: "o", Usage: `output path (default: <input>.webp, "-" for stdout)`},
				),
				Action: runEnc,
			},
			{
				Name:      "batch",
				Usage:     "encode many images concurrently",
				ArgsUsage: "<inputs...>",
				Flags: append(encodeFlags(),
					&cli.IntFlag{Name: "workers", Usage: "number of workers (0=one per CPU)"},
					&cli.StringFlag{Name: "outdir", Usage: "output directory (default: next to each input)"},
				),
				Action: runBatch,
			},
			{
				Name:      "info",
				Usage:     "display WebP metadata",
				ArgsUsage: `<input.webp> ("-" for stdin)`,
				Action:    runInfo,
			},
			{
				Name:   "presets",
				Usage:  "list encoder presets and backends",
				Action: runPresets,
			},
		},
	}
}

// encodeFlags are shared by enc and batch. Only flags set on the command
// line override the configuration file.
func encodeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "YAML configuration file"},
		&cli.Float64Flag{Name: "q", Value: 75, Usage: "quality 0-100"},
		&cli.StringFlag{Name: "preset", Value: "default", Usage: "preset: default/picture/photo/drawing/icon/text"},
		&cli.BoolFlag{Name: "lossless", Usage: "lossless encoding"},
		&cli.IntFlag{Name: "m", Value: 4, Usage: "compression effort 0-6"},
		&cli.IntFlag{Name: "size", Usage: "target size in bytes (0=use quality)"},
		&cli.Float64Flag{Name: "psnr", Usage: "target PSNR in dB (0=use quality)"},
		&cli.BoolFlag{Name: "sharp_yuv", Usage: "sharp RGB to YUV conversion"},
		&cli.BoolFlag{Name: "exact", Usage: "preserve RGB in transparent areas"},
		&cli.IntFlag{Name: "alpha_q", Value: 100, Usage: "alpha quality 0-100"},
		&cli.StringFlag{Name: "backend", Value: "deepteams", Usage: "encoder: " + strings.Join(backendNames(), "/")},
		&cli.BoolFlag{Name: "verify", Usage: "decode the output again and check its dimensions"},
		&cli.StringFlag{Name: "log-level", Value: "info", Usage: "debug/info/warn/error/quiet"},
	}
}

func backendNames() []string {
	var names []string
	for _, b := range safewebp.Backends() {
		names = append(names, b.String())
	}
	return names
}

// loadConfig layers command-line flags over the configuration file over
// the defaults.
func loadConfig(c *cli.Context) (config.Config, logger.Logger, error) {
	cfg := config.Defaults()
	path := c.String("config")
	if path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, nil, err
		}
		cfg = loaded
	}

	if c.IsSet("q") {
		cfg.Quality = float32(c.Float64("q"))
	}
	if c.IsSet("preset") {
		cfg.Preset = c.String("preset")
	}
	if c.IsSet("lossless") {
		cfg.Lossless = c.Bool("lossless")
	}
	if c.IsSet("m") {
		cfg.Method = c.Int("m")
	}
	if c.IsSet("size") {
		cfg.TargetSize = c.Int("size")
	}
	if c.IsSet("psnr") {
		cfg.TargetPSNR = float32(c.Float64("psnr"))
	}
	if c.IsSet("sharp_yuv") {
		cfg.SharpYUV = c.Bool("sharp_yuv")
	}
	if c.IsSet("exact") {
		cfg.Exact = c.Bool("exact")
	}
	if c.IsSet("alpha_q") {
		cfg.AlphaQuality = c.Int("alpha_q")
	}
	if c.IsSet("backend") {
		cfg.Backend = c.String("backend")
	}
	if c.IsSet("verify") {
		cfg.Verify = c.Bool("verify")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("outdir") {
		cfg.OutputDir = c.String("outdir")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	log := newLogger(c, cfg.LogLevel)
	if path != "" {
		log.Debug("Loaded configuration from %s", path)
	}
	return cfg, log, nil
}

// newLogger writes every level to the error stream so that "-o -" output
// stays clean.
func newLogger(c *cli.Context, level string) logger.Logger {
	lvl := logger.ParseLevel(level)
	if lvl == logger.LevelQuiet {
		return logger.NewNoop()
	}
	return logger.NewConsole(lvl, c.App.ErrWriter, c.App.ErrWriter)
}

// readInput reads path, or r when path is "-".
func readInput(r io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(r)
	}
	return os.ReadFile(path)
}

// --- enc ---

func runEnc(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("enc: missing input file\nUsage: safewebp enc [options] <input>")
	}
	inputPath := c.Args().First()

	cfg, log, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("enc: %w", err)
	}
	encCfg, err := cfg.EncodeConfig()
	if err != nil {
		return fmt.Errorf("enc: %w", err)
	}
	b, err := cfg.Boundary()
	if err != nil {
		return fmt.Errorf("enc: %w", err)
	}
	log.Debug("Using %s backend, %s", b.Backend(), encCfg)

	data, err := readInput(c.App.Reader, inputPath)
	if err != nil {
		return err
	}
	format := safewebp.DetectFormat(data)
	if format == safewebp.FormatUnknown && inputPath != "-" {
		format = safewebp.FormatFromName(inputPath)
	}

	pic, err := b.Decode(safewebp.EncodedImage{Data: data, Format: format})
	if err != nil {
		return fmt.Errorf("enc: %w", err)
	}
	width, height := pic.Width(), pic.Height()
	log.Debug("Decoded %s: %dx%d, alpha=%v", inputPath, width, height, pic.HasAlpha())

	out, err := b.Encode(pic, encCfg)
	if err != nil {
		return fmt.Errorf("enc: %w", err)
	}
	if cfg.Verify {
		if err := safewebp.VerifyDimensions(out, width, height); err != nil {
			return fmt.Errorf("enc: %w", err)
		}
		log.Debug("Verified %s: %dx%d", inputPath, width, height)
	}

	outputPath := c.String("o")
	if outputPath == "-" {
		_, err := c.App.Writer.Write(out)
		return err
	}
	if outputPath == "" {
		if inputPath == "-" {
			outputPath = "output.webp"
		} else {
			base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
			outputPath = filepath.Join(cfg.OutputDir, base+".webp")
		}
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		log.Error("Failed to write %s: %s", outputPath, err)
		return err
	}
	log.Info("Encoded %s to %s (%d bytes)", inputPath, outputPath, len(out))
	return nil
}

// --- batch ---

func runBatch(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("batch: missing input files\nUsage: safewebp batch [options] <inputs...>")
	}

	cfg, log, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	encCfg, err := cfg.EncodeConfig()
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	b, err := cfg.Boundary()
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	log.Debug("Using %s backend, %s", b.Backend(), encCfg)

	var inputs []string
	for _, in := range c.Args().Slice() {
		fi, err := os.Stat(in)
		if err != nil {
			log.Warn("Skipping %s: %s", in, err)
			continue
		}
		if fi.IsDir() {
			log.Warn("Skipping %s: %s", in, "is a directory")
			continue
		}
		inputs = append(inputs, in)
	}

	runner := batch.NewRunner(b, encCfg, cfg.Workers, cfg.Verify, log)
	results, err := runner.Run(c.Context, batch.Plan(inputs, cfg.OutputDir))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("Interrupted, shutting down...")
		}
		return fmt.Errorf("batch: %w", err)
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			continue
		}
		log.Info("Encoded %s to %s (%d bytes)", res.Job.Input, res.Job.Output, res.Size)
	}
	if skipped := c.NArg() - len(inputs); failed > 0 || skipped > 0 {
		return fmt.Errorf("batch: %d of %d files failed", failed+skipped, c.NArg())
	}
	return nil
}

// --- info ---

func runInfo(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("info: missing input file\nUsage: safewebp info <input.webp>")
	}
	inputPath := c.Args().First()

	data, err := readInput(c.App.Reader, inputPath)
	if err != nil {
		return err
	}
	feat, err := safewebp.Inspect(data)
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}

	name := inputPath
	if inputPath == "-" {
		name = "<stdin>"
	}

	w := c.App.Writer
	fmt.Fprintf(w, "File:       %s\n", name)
	fmt.Fprintf(w, "Format:     %s\n", feat.Format)
	fmt.Fprintf(w, "Dimensions: %d x %d\n", feat.Width, feat.Height)
	fmt.Fprintf(w, "Alpha:      %v\n", feat.HasAlpha)
	fmt.Fprintf(w, "Animation:  %v\n", feat.HasAnimation)
	if feat.HasAnimation {
		fmt.Fprintf(w, "Frames:     %d\n", feat.FrameCount)
		loop := "infinite"
		if feat.LoopCount > 0 {
			loop = fmt.Sprintf("%d", feat.LoopCount)
		}
		fmt.Fprintf(w, "Loop count: %s\n", loop)
	} else {
		// Cross-check with an independent decoder.
		status := "ok"
		if err := safewebp.VerifyDimensions(data, feat.Width, feat.Height); err != nil {
			status = err.Error()
		}
		fmt.Fprintf(w, "Decodable:  %s\n", status)
	}
	var md []string
	if feat.HasICC {
		md = append(md, "ICC")
	}
	if feat.HasEXIF {
		md = append(md, "EXIF")
	}
	if feat.HasXMP {
		md = append(md, "XMP")
	}
	if len(md) == 0 {
		md = append(md, "none")
	}
	fmt.Fprintf(w, "Metadata:   %s\n", strings.Join(md, " "))
	fmt.Fprintf(w, "File size:  %d bytes\n", len(data))
	return nil
}

// --- presets ---

func runPresets(c *cli.Context) error {
	w := c.App.Writer
	fmt.Fprintln(w, "Presets:")
	for _, p := range safewebp.Presets() {
		fmt.Fprintf(w, "  %s\n", p)
	}
	fmt.Fprintln(w, "Backends:")
	for _, b := range safewebp.Backends() {
		fmt.Fprintf(w, "  %s\n", b)
	}
	return nil
}
