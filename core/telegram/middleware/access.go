package middleware

import (
	"log/slog"

	"github.com/jamshidbekman/rivojbot/core/logger"
	tghelpers "github.com/jamshidbekman/rivojbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// AdminOptions defines how admin-only checks should behave.
type AdminOptions struct {
	// AdminID of 0 means no operator is configured and every caller is rejected.
	AdminID  int64
	OnReject tele.HandlerFunc
}

// IsAdmin reports whether userID is the configured operator.
func (o AdminOptions) IsAdmin(userID int64) bool {
	return o.AdminID != 0 && userID == o.AdminID
}

// AdminOnlyMiddleware ensures that only the admin user can invoke downstream handlers.
func AdminOnlyMiddleware(opts AdminOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			var userID int64
			if u := c.Sender(); u != nil {
				userID = u.ID
			}
			if opts.IsAdmin(userID) {
				return next(c)
			}
			logger.Warn(tghelpers.BuildContext(c), logger.CompAdmin, "admin.denied",
				slog.String("status", "denied"),
				slog.Int64("user_id", userID),
			)
			if opts.OnReject != nil {
				return opts.OnReject(c)
			}
			return nil
		}
	}
}
