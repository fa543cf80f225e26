// Package sender runs outbound deliveries on a bounded background queue.
// Jobs are retried on transient transport errors and on Bot API flood
// control, each within its own deadline.
package sender

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jamshidbekman/rivojbot/core/logger"
)

var (
	ErrQueueClosed = errors.New("sender: queue closed")
	ErrQueueFull   = errors.New("sender: queue full")
)

// Options tune a Queue. Zero values get defaults.
type Options struct {
	QueueSize int
	Workers   int
	// MaxRetries is the number of extra attempts after the first.
	MaxRetries int
	// RetryBackoff is the first retry delay; it doubles per attempt up to
	// MaxBackoff.
	RetryBackoff time.Duration
	MaxBackoff   time.Duration
	// Timeout bounds one job including all its retries.
	Timeout time.Duration
}

// Result describes a finished job.
type Result struct {
	Err      error
	Attempts int
	Elapsed  time.Duration
}

// Job is one delivery.
type Job struct {
	// Kind and Target label logs, e.g. "notify" and "email".
	Kind   string
	Target string
	Run    func(ctx context.Context) error
	// Done, when set, observes the final outcome exactly once.
	Done func(ctx context.Context, r Result)
}

type queued struct {
	ctx context.Context
	job Job
}

// Queue is a fixed worker pool over a buffered channel.
type Queue struct {
	opts    Options
	jobs    chan queued
	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	failed  atomic.Uint64
	pending atomic.Int64
}

func NewQueue(opts Options) *Queue {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = 500 * time.Millisecond
	}
	if opts.MaxBackoff < opts.RetryBackoff {
		opts.MaxBackoff = 8 * opts.RetryBackoff
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 12 * time.Second
	}
	q := &Queue{opts: opts, jobs: make(chan queued, opts.QueueSize)}
	q.wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go func() {
			defer q.wg.Done()
			for it := range q.jobs {
				q.execute(it.ctx, it.job)
				q.pending.Add(-1)
			}
		}()
	}
	return q
}

// Enqueue hands j to the workers without blocking.
func (q *Queue) Enqueue(ctx context.Context, j Job) error {
	if j.Run == nil {
		return errors.New("sender: nil run function")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.jobs <- queued{ctx: ctx, job: j}:
		q.pending.Add(1)
		return nil
	default:
		return ErrQueueFull
	}
}

// RunNow executes j on the caller's goroutine with the same retry and
// timeout policy as queued jobs.
func (q *Queue) RunNow(ctx context.Context, j Job) error {
	if j.Run == nil {
		return errors.New("sender: nil run function")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return q.execute(ctx, j)
}

// Pending is the number of accepted jobs not yet finished.
func (q *Queue) Pending() int { return int(q.pending.Load()) }

// Failed is the number of jobs that exhausted their attempts.
func (q *Queue) Failed() uint64 { return q.failed.Load() }

// Close stops accepting jobs and waits for the accepted ones.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()
	q.wg.Wait()
}

func (q *Queue) execute(ctx context.Context, j Job) error {
	runCtx, cancel := context.WithTimeout(ctx, q.opts.Timeout)
	defer cancel()

	start := time.Now()
	res := Result{}
	for {
		res.Attempts++
		res.Err = j.Run(runCtx)
		if res.Err == nil || res.Attempts > q.opts.MaxRetries {
			break
		}
		wait, ok := retryDelay(res.Err, q.backoff(res.Attempts))
		if !ok {
			break
		}
		logger.Debug(ctx, logger.CompSender, "job.retry", append(jobAttrs(j),
			slog.Int("attempt", res.Attempts),
			slog.Duration("wait", wait),
			slog.String("error_kind", Classify(res.Err)),
		)...)
		if !sleep(runCtx, wait) {
			res.Err = errors.Join(res.Err, runCtx.Err())
			break
		}
	}
	res.Elapsed = time.Since(start)

	if res.Err != nil {
		q.failed.Add(1)
		logger.Debug(ctx, logger.CompSender, "job.fail", append(jobAttrs(j),
			slog.Int("attempts", res.Attempts),
			slog.String("error_kind", Classify(res.Err)),
			slog.String("error", Redact(res.Err)),
			slog.Duration("took", logger.RoundMS(res.Elapsed)),
		)...)
	}
	if j.Done != nil {
		j.Done(ctx, res)
	}
	return res.Err
}

func (q *Queue) backoff(attempt int) time.Duration {
	d := q.opts.RetryBackoff << (attempt - 1)
	if d <= 0 || d > q.opts.MaxBackoff {
		return q.opts.MaxBackoff
	}
	return d
}

func jobAttrs(j Job) []slog.Attr {
	attrs := []slog.Attr{slog.String("kind", j.Kind)}
	if j.Target != "" {
		attrs = append(attrs, slog.String("target", j.Target))
	}
	return attrs
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
