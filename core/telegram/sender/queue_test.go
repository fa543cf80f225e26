package sender

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

func TestQueueRunsJobs(t *testing.T) {
	q := NewQueue(Options{Workers: 2, QueueSize: 8})

	var ran atomic.Int32
	var mu sync.Mutex
	var results []Result
	for i := 0; i < 5; i++ {
		require.NoError(t, q.Enqueue(context.Background(), Job{
			Kind: "test",
			Run:  func(context.Context) error { ran.Add(1); return nil },
			Done: func(_ context.Context, r Result) {
				mu.Lock()
				results = append(results, r)
				mu.Unlock()
			},
		}))
	}
	q.Close()

	assert.EqualValues(t, 5, ran.Load())
	assert.Len(t, results, 5)
	for _, r := range results {
		assert.NoError(t, r.Err)
		assert.Equal(t, 1, r.Attempts)
	}
	assert.Zero(t, q.Pending())
	assert.Zero(t, q.Failed())
}

func TestQueueRetriesTransientErrors(t *testing.T) {
	q := NewQueue(Options{Workers: 1, MaxRetries: 3, RetryBackoff: time.Millisecond})
	defer q.Close()

	var calls int
	err := q.RunNow(context.Background(), Job{Kind: "test", Run: func(context.Context) error {
		calls++
		if calls < 3 {
			return &net.OpError{Op: "dial", Err: errors.New("refused")}
		}
		return nil
	}})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestQueueDoesNotRetryPermanentErrors(t *testing.T) {
	q := NewQueue(Options{Workers: 1, MaxRetries: 3, RetryBackoff: time.Millisecond})
	defer q.Close()

	var calls int
	var got Result
	err := q.RunNow(context.Background(), Job{
		Kind: "test",
		Run:  func(context.Context) error { calls++; return errors.New("boom") },
		Done: func(_ context.Context, r Result) { got = r },
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, got.Attempts)
	assert.EqualValues(t, 1, q.Failed())
}

func TestQueueStopsAfterMaxRetries(t *testing.T) {
	q := NewQueue(Options{Workers: 1, MaxRetries: 2, RetryBackoff: time.Millisecond})
	defer q.Close()

	var calls int
	err := q.RunNow(context.Background(), Job{Run: func(context.Context) error {
		calls++
		return &tele.Error{Code: 502, Description: "Bad Gateway"}
	}})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestQueueTimeoutBoundsJob(t *testing.T) {
	q := NewQueue(Options{Workers: 1, Timeout: 20 * time.Millisecond})
	defer q.Close()

	err := q.RunNow(context.Background(), Job{Run: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQueueRejectsAfterClose(t *testing.T) {
	q := NewQueue(Options{})
	q.Close()
	q.Close()

	err := q.Enqueue(context.Background(), Job{Run: func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestQueueFull(t *testing.T) {
	q := NewQueue(Options{Workers: 1, QueueSize: 1})
	release := make(chan struct{})
	started := make(chan struct{})
	block := Job{Run: func(context.Context) error {
		close(started)
		<-release
		return nil
	}}
	require.NoError(t, q.Enqueue(context.Background(), block))
	<-started
	require.NoError(t, q.Enqueue(context.Background(), Job{Run: func(context.Context) error { return nil }}))

	err := q.Enqueue(context.Background(), Job{Run: func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, ErrQueueFull)
	assert.Equal(t, 2, q.Pending())

	close(release)
	q.Close()
	assert.Zero(t, q.Pending())
}

func TestEnqueueRequiresRun(t *testing.T) {
	q := NewQueue(Options{})
	defer q.Close()
	assert.Error(t, q.Enqueue(context.Background(), Job{}))
	assert.Error(t, q.RunNow(context.Background(), Job{}))
}

func TestBackoffIsCapped(t *testing.T) {
	q := NewQueue(Options{RetryBackoff: 100 * time.Millisecond, MaxBackoff: 300 * time.Millisecond})
	defer q.Close()

	assert.Equal(t, 100*time.Millisecond, q.backoff(1))
	assert.Equal(t, 200*time.Millisecond, q.backoff(2))
	assert.Equal(t, 300*time.Millisecond, q.backoff(3))
	assert.Equal(t, 300*time.Millisecond, q.backoff(40))
}

func TestRetryDelay(t *testing.T) {
	wait, ok := retryDelay(tele.FloodError{RetryAfter: 3}, time.Second)
	assert.True(t, ok)
	assert.Equal(t, 3*time.Second, wait)

	_, ok = retryDelay(&tele.Error{Code: 400, Description: "Bad Request"}, time.Second)
	assert.False(t, ok)

	wait, ok = retryDelay(&net.OpError{Op: "dial", Err: errors.New("refused")}, time.Second)
	assert.True(t, ok)
	assert.Equal(t, time.Second, wait)

	_, ok = retryDelay(context.Canceled, time.Second)
	assert.False(t, ok)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, "ok", Classify(nil))
	assert.Equal(t, "timeout", Classify(context.DeadlineExceeded))
	assert.Equal(t, "canceled", Classify(context.Canceled))
	assert.Equal(t, "flood", Classify(tele.FloodError{RetryAfter: 1}))
	assert.Equal(t, "api_403", Classify(&tele.Error{Code: 403}))
	assert.Equal(t, "network", Classify(&net.OpError{Op: "dial", Err: errors.New("x")}))
	assert.Equal(t, "other", Classify(errors.New("x")))
}

func TestRedact(t *testing.T) {
	err := errors.New(`Post "https://api.telegram.org/bot123456:AA-bb_CC/sendMessage": EOF`)
	out := Redact(err)
	assert.NotContains(t, out, "123456:AA-bb_CC")
	assert.Contains(t, out, "bot<redacted>/sendMessage")
	assert.Empty(t, Redact(nil))
}
