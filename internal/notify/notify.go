// Package notify fans captured leads out to operator channels. Delivery is
// best effort: failures are logged and counted, never returned to the
// conversation.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/jamshidbekman/rivojbot/core/logger"
	"github.com/jamshidbekman/rivojbot/core/telegram/sender"
	"github.com/jamshidbekman/rivojbot/internal/lead"
	"github.com/jamshidbekman/rivojbot/internal/metrics"
)

// Destination delivers one lead to one channel.
type Destination interface {
	Name() string
	Deliver(ctx context.Context, l lead.Lead) error
}

// Options tune the background queue.
type Options struct {
	// Timeout bounds a single delivery.
	Timeout   time.Duration
	QueueSize int
	Workers   int
}

// Notifier delivers every lead to all destinations in the background.
type Notifier struct {
	dests []Destination
	queue *sender.Queue
}

// New starts the delivery workers. Close must be called to drain them.
func New(opts Options, dests ...Destination) *Notifier {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 128
	}
	if opts.Workers <= 0 {
		opts.Workers = 2
	}
	return &Notifier{
		dests: dests,
		queue: sender.NewQueue(sender.Options{
			QueueSize: opts.QueueSize,
			Workers:   opts.Workers,
			// A retried alert may duplicate one that landed before timing out.
			MaxRetries: 0,
			Timeout:    opts.Timeout,
		}),
	}
}

// Destinations returns the configured destination names.
func (n *Notifier) Destinations() []string {
	out := make([]string, 0, len(n.dests))
	for _, d := range n.dests {
		out = append(out, d.Name())
	}
	return out
}

// Notify queues l for every destination and returns immediately. Each
// destination gets one attempt bounded by the delivery timeout. When the
// queue is full or closed the delivery runs inline instead of being lost.
func (n *Notifier) Notify(ctx context.Context, l lead.Lead) {
	if ctx == nil {
		ctx = context.Background()
	}
	// Deliveries outlive the update that produced them.
	ctx = context.WithoutCancel(ctx)

	for _, d := range n.dests {
		job := n.job(d, l)
		if err := n.queue.Enqueue(ctx, job); err != nil {
			logger.Warn(ctx, logger.CompNotify, "notify.inline",
				slog.String("destination", d.Name()),
				logger.Err(err),
			)
			_ = n.queue.RunNow(ctx, job)
		}
	}
}

func (n *Notifier) job(d Destination, l lead.Lead) sender.Job {
	return sender.Job{
		Kind:   "notify",
		Target: d.Name(),
		Run:    func(ctx context.Context) error { return d.Deliver(ctx, l) },
		Done: func(ctx context.Context, r sender.Result) {
			attrs := []slog.Attr{
				slog.String("destination", d.Name()),
				slog.Int64("lead_id", l.ID),
				slog.Int64("user_id", l.UserID),
				slog.Int("attempts", r.Attempts),
				slog.Duration("took", logger.RoundMS(r.Elapsed)),
			}
			if r.Err != nil {
				metrics.Notifications.WithLabelValues(d.Name(), "fail").Inc()
				logger.Error(ctx, logger.CompNotify, "notify.fail",
					append(attrs, slog.String("status", "fail"), logger.Err(r.Err))...)
				return
			}
			metrics.Notifications.WithLabelValues(d.Name(), "ok").Inc()
			logger.Info(ctx, logger.CompNotify, "notify.sent", append(attrs, slog.String("status", "ok"))...)
		},
	}
}

// Close waits for queued deliveries to finish.
func (n *Notifier) Close() {
	n.queue.Close()
}
