package router

import (
	"context"
	"log/slog"

	"github.com/jamshidbekman/rivojbot/core/logger"
	tg "github.com/jamshidbekman/rivojbot/core/telegram"
	"github.com/jamshidbekman/rivojbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// CommandRouteOptions configures how commands are wrapped and exposed.
type CommandRouteOptions struct {
	AdminID       int64
	OnAdminReject tele.HandlerFunc
}

// CommandRoutes prepares command handlers. Admin-only commands are gated by
// AdminOnlyMiddleware before any summary logging.
func CommandRoutes(reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}

	adminOnly := middleware.AdminOnlyMiddleware(middleware.AdminOptions{
		AdminID:  opts.AdminID,
		OnReject: opts.OnAdminReject,
	})

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		route := Wrap(cmd, normalizeHandlerName(cmd), def.Handler)
		if def.AdminOnly {
			route.Handler = adminOnly(route.Handler)
		}
		routes = append(routes, route)
	}

	logger.Info(context.Background(), logger.CompWire, "tg.wire",
		slog.String("status", "ok"),
		slog.Int("commands", len(reg.Commands())),
		slog.Int("texts", len(reg.ListTexts())),
		slog.Int("callbacks", len(reg.ListCallbacks())),
	)
	return routes
}
