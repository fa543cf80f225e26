package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jamshidbekman/rivojbot/core/logger"
	"github.com/jamshidbekman/rivojbot/internal/lead"
	"github.com/jamshidbekman/rivojbot/internal/metrics"
)

// ErrEmptyBroadcast is returned when /broadcast has no message.
var ErrEmptyBroadcast = errors.New("admin: empty broadcast message")

// BroadcastUsage explains the /broadcast syntax.
const BroadcastUsage = "📢 <b>Broadcast yuborish:</b>\n\n" +
	"Foydalanish: /broadcast [xabar]\n\n" +
	"Misol:\n<code>/broadcast Yangi aksiya boshlanadi!</code>"

// Messenger sends an HTML message to a chat.
type Messenger interface {
	SendHTML(ctx context.Context, chatID int64, html string) error
}

// BroadcastResult counts deliveries.
type BroadcastResult struct {
	Total   int
	Sent    int
	Failed  int
	Aborted bool
}

// Recipients returns distinct user ids in order of first capture.
func Recipients(leads []lead.Lead) []int64 {
	seen := make(map[int64]struct{}, len(leads))
	out := make([]int64, 0, len(leads))
	for _, l := range leads {
		if _, ok := seen[l.UserID]; ok || l.UserID == 0 {
			continue
		}
		seen[l.UserID] = struct{}{}
		out = append(out, l.UserID)
	}
	return out
}

// Broadcast sends message to every captured user, one at a time with a
// pacing pause between sends. Progress notices go to the admin's chat.
// Cancelling ctx stops the loop; the partial counts are still reported.
func (s *Service) Broadcast(ctx context.Context, userID int64, message string, out Messenger) (BroadcastResult, error) {
	if err := s.denied(ctx, userID, "broadcast"); err != nil {
		return BroadcastResult{}, err
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return BroadcastResult{}, ErrEmptyBroadcast
	}

	users := Recipients(s.leads(ctx))
	res := BroadcastResult{Total: len(users)}
	start := time.Now()

	_ = out.SendHTML(ctx, userID, fmt.Sprintf("📢 Broadcast boshlanmoqda... (%d foydalanuvchi)", res.Total))
	logger.Info(ctx, logger.CompAdmin, "broadcast.start", slog.Int("recipients", res.Total))

	for i, id := range users {
		if i > 0 && s.opts.BroadcastPacing > 0 {
			t := time.NewTimer(s.opts.BroadcastPacing)
			select {
			case <-ctx.Done():
				t.Stop()
			case <-t.C:
			}
		}
		if ctx.Err() != nil {
			res.Aborted = true
			break
		}
		if err := out.SendHTML(ctx, id, message); err != nil {
			res.Failed++
			metrics.BroadcastMessages.WithLabelValues("fail").Inc()
			logger.Debug(ctx, logger.CompAdmin, "broadcast.fail", slog.Int64("to", id), logger.Err(err))
			continue
		}
		res.Sent++
		metrics.BroadcastMessages.WithLabelValues("ok").Inc()
	}

	logger.Info(ctx, logger.CompAdmin, "broadcast.done",
		slog.Int("sent", res.Sent),
		slog.Int("failed", res.Failed),
		slog.Bool("aborted", res.Aborted),
		slog.Duration("took", logger.Took(start)),
	)
	// The summary uses a fresh context so it still arrives after a cancel.
	_ = out.SendHTML(context.WithoutCancel(ctx), userID, BroadcastSummary(res))
	return res, nil
}

// BroadcastSummary renders the final counts.
func BroadcastSummary(r BroadcastResult) string {
	return fmt.Sprintf("✅ <b>Broadcast yakunlandi!</b>\n\n✅ Muvaffaqiyatli: %d\n❌ Xatolik: %d\n📊 Jami: %d",
		r.Sent, r.Failed, r.Total)
}
