package sender

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/jamshidbekman/rivojbot/core/telegram/netutil"
)

var tokenRe = regexp.MustCompile(`bot\d+:[A-Za-z0-9_-]+`)

// Redact returns err's message with bot tokens masked.
func Redact(err error) string {
	if err == nil {
		return ""
	}
	return tokenRe.ReplaceAllString(err.Error(), "bot<redacted>")
}

// Classify maps err to a short label for logs and metrics.
func Classify(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}
	var flood tele.FloodError
	if errors.As(err, &flood) {
		return "flood"
	}
	var apiErr *tele.Error
	if errors.As(err, &apiErr) && apiErr.Code > 0 {
		return "api_" + strconv.Itoa(apiErr.Code)
	}
	if netutil.ShouldRetry(err) {
		return "network"
	}
	return "other"
}

// retryDelay decides whether err is worth another attempt and how long to
// wait first. Flood control dictates its own wait.
func retryDelay(err error, backoff time.Duration) (time.Duration, bool) {
	var flood tele.FloodError
	if errors.As(err, &flood) {
		if flood.RetryAfter > 0 {
			return time.Duration(flood.RetryAfter) * time.Second, true
		}
		return backoff, true
	}
	var apiErr *tele.Error
	if errors.As(err, &apiErr) {
		return backoff, apiErr.Code >= 500
	}
	return backoff, netutil.ShouldRetry(err)
}
