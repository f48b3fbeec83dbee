package worker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"sync"
	"time"

	"github.com/palantir/upcase/pkg/pipeline/core"
	"golang.org/x/time/rate"
)

// FailurePolicy decides whether a failed job stops the run.
type FailurePolicy int

const (
	// FailurePolicyPartialOutput records per-job errors and keeps going.
	FailurePolicyPartialOutput FailurePolicy = iota
	// FailurePolicyFailFast stops dispatching on the first failed job.
	FailurePolicyFailFast
)

// Options configures RunAll. Zero values fall back to defaults; see ParseOptions
// for the YAML form.
type Options struct {
	// Workers bounds how many jobs run at once. Defaults to 4.
	Workers int `yaml:"workers"`

	// RateLimitRPS is a global limit on job starts across all workers. Set to <=0 to disable.
	RateLimitRPS float64 `yaml:"rate_limit_rps"`

	FailurePolicy FailurePolicy `yaml:"failure_policy"`

	// Logger receives per-job failures and a run summary. Nil disables logging.
	Logger *log.Logger `yaml:"-"`
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = 4
	}
	return o
}

// Job is one independent input/output pair. Each job owns its streams.
type Job struct {
	Name string
	In   io.Reader
	Out  io.Writer
}

// Result holds the outcome of one job. Transient reports whether Err was
// marked retryable; the pool never retries because job streams are consumed.
type Result struct {
	Name      string
	Err       error
	Transient bool
}

// RunAll applies t to every job and returns results in job order.
func RunAll(ctx context.Context, jobs []Job, t core.Transformer, opts Options) ([]Result, error) {
	return RunAllWithCallback(ctx, jobs, t, nil, opts)
}

// RunAllWithCallback applies t to every job and invokes onResult as each job
// completes. The callback receives completion-order results.
func RunAllWithCallback(
	ctx context.Context,
	jobs []Job,
	t core.Transformer,
	onResult func(Result) error,
	opts Options,
) ([]Result, error) {
	opts = opts.withDefaults()
	start := time.Now()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var limiter *rate.Limiter
	if opts.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), 1)
	}

	out := make([]Result, len(jobs))

	type completion struct {
		idx int
		res Result
	}

	queue := make(chan int)
	done := make(chan completion, opts.Workers)

	var wg sync.WaitGroup

	var mu sync.Mutex
	var firstErr error
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	workerFn := func() {
		defer wg.Done()
		for idx := range queue {
			if runCtx.Err() != nil {
				return
			}
			res := runOne(runCtx, jobs[idx], t, limiter)
			select {
			case done <- completion{idx: idx, res: res}:
			case <-runCtx.Done():
				return
			}
			if res.Err != nil && opts.FailurePolicy == FailurePolicyFailFast {
				fail(fmt.Errorf("job %q: %w", res.Name, res.Err))
				return
			}
		}
	}

	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go workerFn()
	}

	go func() {
		defer close(queue)
		for i := range jobs {
			select {
			case queue <- i:
			case <-runCtx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(done)
	}()

	failed := 0
	for item := range done {
		out[item.idx] = item.res
		if item.res.Err != nil {
			failed++
			logf(opts.Logger, "job %q failed (transient=%t): %v", item.res.Name, item.res.Transient, item.res.Err)
		}
		if onResult != nil {
			if err := onResult(item.res); err != nil {
				fail(err)
			}
		}
	}
	logf(opts.Logger, "run finished: jobs=%d failed=%d elapsed=%s", len(jobs), failed, time.Since(start).Round(time.Millisecond))

	mu.Lock()
	err := firstErr
	mu.Unlock()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func runOne(ctx context.Context, job Job, t core.Transformer, limiter *rate.Limiter) Result {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return Result{Name: job.Name, Err: err}
		}
	}
	err := t.Transform(job.In, job.Out)
	return Result{Name: job.Name, Err: err, Transient: isTransient(err)}
}

func isTransient(err error) bool {
	if err == nil {
		return false
	}
	var te *core.TransientError
	if errors.As(err, &te) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	return false
}

func logf(l *log.Logger, format string, args ...any) {
	if l == nil {
		return
	}
	l.Printf(format, args...)
}
