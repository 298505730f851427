// Package batch converts many files concurrently. Each job decodes into its
// own Picture, so workers never share codec state.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/deepteams/safewebp"
	"github.com/deepteams/safewebp/internal/logger"
)

var (
	// ErrUnknownInput is recorded for inputs whose format cannot be determined.
	ErrUnknownInput = errors.New("batch: cannot determine input format")

	// ErrOutputCollision is recorded for every job whose output path is
	// shared with another job. None of them is converted.
	ErrOutputCollision = errors.New("batch: output path shared by several inputs")
)

// Job converts Input to Output.
type Job struct {
	Input  string
	Output string
}

// Result is the outcome of one Job. Err is nil on success.
type Result struct {
	Job    Job
	Size   int
	Width  int
	Height int
	Err    error
}

// Runner converts jobs with a fixed pool of workers.
type Runner struct {
	boundary *safewebp.Boundary
	config   safewebp.EncodeConfig
	workers  int
	verify   bool
	logger   logger.Logger
}

// NewRunner creates a runner. A nil boundary uses the default backend,
// workers <= 0 means one worker per CPU and a nil log discards messages.
// When verify is set every output is checked with safewebp.VerifyDimensions
// before it is written.
func NewRunner(b *safewebp.Boundary, cfg safewebp.EncodeConfig, workers int, verify bool, log logger.Logger) *Runner {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = logger.NewNoop()
	}
	if b == nil {
		b = safewebp.New()
	}
	return &Runner{
		boundary: b,
		config:   cfg,
		workers:  workers,
		verify:   verify,
		logger:   log.WithComponent("batch"),
	}
}

// Plan derives one job per input. Outputs keep the input's base name with a
// .webp extension, in outDir when it is non-empty and next to the input
// otherwise. Inputs that differ only in directory or extension map to the
// same output; Run rejects such jobs with ErrOutputCollision.
func Plan(inputs []string, outDir string) []Job {
	jobs := make([]Job, 0, len(inputs))
	for _, in := range inputs {
		base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in)) + ".webp"
		dir := filepath.Dir(in)
		if outDir != "" {
			dir = outDir
		}
		jobs = append(jobs, Job{Input: in, Output: filepath.Join(dir, base)})
	}
	return jobs
}

type indexedResult struct {
	index  int
	result Result
}

// Run converts all jobs and returns their results in job order. A failing
// job does not stop the others; its error is in Result.Err. Run returns a
// non-nil error only when ctx is cancelled before every job was dispatched;
// jobs that never ran then carry that error too.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}

	pending := make([]int, 0, len(jobs))
	for i, collides := range outputCollisions(jobs) {
		if collides {
			results[i] = Result{Job: jobs[i], Err: fmt.Errorf("%w: %s", ErrOutputCollision, jobs[i].Output)}
			r.logger.Warn("Skipping %s: %s", jobs[i].Input, results[i].Err)
			continue
		}
		pending = append(pending, i)
	}
	if len(pending) == 0 {
		return results, nil
	}

	workers := min(r.workers, len(pending))
	r.logger.Info("Converting %d files with %d workers", len(pending), workers)

	jobCh := make(chan int)
	resCh := make(chan indexedResult, len(jobs))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go r.worker(ctx, &wg, jobs, jobCh, resCh)
	}

	var runErr error
	sent := 0
dispatch:
	for _, i := range pending {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break dispatch
		case jobCh <- i:
			sent++
		}
	}
	close(jobCh)
	for _, i := range pending[sent:] {
		results[i] = Result{Job: jobs[i], Err: runErr}
	}

	go func() {
		wg.Wait()
		close(resCh)
	}()

	done, failed := 0, 0
	for ir := range resCh {
		results[ir.index] = ir.result
		done++
		if ir.result.Err != nil {
			failed++
		}
	}
	if runErr != nil {
		return results, runErr
	}
	r.logger.Info("Converted %d/%d files", done-failed, len(pending))
	return results, nil
}

// outputCollisions reports, per job, whether its cleaned output path is
// used by another job.
func outputCollisions(jobs []Job) []bool {
	seen := make(map[string]int, len(jobs))
	for _, j := range jobs {
		seen[filepath.Clean(j.Output)]++
	}
	collides := make([]bool, len(jobs))
	for i, j := range jobs {
		collides[i] = seen[filepath.Clean(j.Output)] > 1
	}
	return collides
}

func (r *Runner) worker(ctx context.Context, wg *sync.WaitGroup, jobs []Job, jobCh <-chan int, resCh chan<- indexedResult) {
	defer wg.Done()

	for idx := range jobCh {
		res := r.convert(ctx, jobs[idx])
		if res.Err != nil {
			r.logger.Warn("Failed to convert %s: %s", res.Job.Input, res.Err)
		}
		resCh <- indexedResult{index: idx, result: res}
	}
}

func (r *Runner) convert(ctx context.Context, job Job) Result {
	res := Result{Job: job}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	data, err := os.ReadFile(job.Input)
	if err != nil {
		res.Err = err
		return res
	}
	format := safewebp.DetectFormat(data)
	if format == safewebp.FormatUnknown {
		format = safewebp.FormatFromName(job.Input)
	}
	if format == safewebp.FormatUnknown {
		res.Err = fmt.Errorf("%w: %s", ErrUnknownInput, job.Input)
		return res
	}

	pic, err := r.boundary.Decode(safewebp.EncodedImage{Data: data, Format: format})
	if err != nil {
		res.Err = err
		return res
	}
	res.Width, res.Height = pic.Width(), pic.Height()
	r.logger.Debug("Decoded %s: %dx%d, alpha=%v", job.Input, res.Width, res.Height, pic.HasAlpha())

	out, err := r.boundary.Encode(pic, r.config)
	if err != nil {
		res.Err = err
		return res
	}
	if r.verify {
		if err := safewebp.VerifyDimensions(out, res.Width, res.Height); err != nil {
			res.Err = err
			return res
		}
	}
	if err := writeFileAtomic(job.Output, out); err != nil {
		r.logger.Error("Failed to write %s: %s", job.Output, err)
		res.Err = err
		return res
	}
	res.Size = len(out)
	r.logger.Debug("Encoded %s to %s (%d bytes)", job.Input, job.Output, res.Size)
	return res
}

// writeFileAtomic writes data next to path and renames it into place, so a
// failed run never leaves a truncated .webp behind.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".safewebp-*")
	if err != nil {
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
