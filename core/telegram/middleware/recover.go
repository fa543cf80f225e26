package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/jamshidbekman/rivojbot/core/logger"
	tghelpers "github.com/jamshidbekman/rivojbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// Recover catches handler panics, logs them with the stack and lets onPanic
// answer the user. The panic is not propagated to the poller.
func Recover(onPanic tele.HandlerFunc) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				err := fmt.Errorf("panic: %v", r)
				logger.Error(tghelpers.BuildContext(c), logger.CompTelegram, "tg.panic",
					slog.String("status", "fail"),
					logger.Err(err),
					slog.String("stack", string(debug.Stack())),
				)
				if onPanic != nil {
					_ = onPanic(c)
				}
			}()
			return next(c)
		}
	}
}

// RecoverMiddleware is Recover without a user-facing reply.
func RecoverMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return Recover(nil)(next)
}
