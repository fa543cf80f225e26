package router

import (
	"strings"
	"time"

	tg "github.com/jamshidbekman/rivojbot/core/telegram"

	tele "gopkg.in/telebot.v4"
)

// TextOptions controls fallback behaviour for text updates.
type TextOptions struct {
	UnknownText     tele.HandlerFunc
	UnknownDocument tele.HandlerFunc
}

// TextRoutes resolves plain text in this order: registered button labels,
// public command aliases, the registry text fallback, then UnknownText.
// Admin-only commands are never reachable through aliases.
func TextRoutes(reg *tg.Registry, opts TextOptions) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := strings.TrimSpace(c.Text())

		if reg != nil {
			if h, ok := reg.LookupText(text); ok {
				return handleWithSummary(c, "text."+normalizeHandlerName(text), start, func() error {
					return h(c)
				})
			}
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil && !cmd.AdminOnly {
				return handleWithSummary(c, normalizeHandlerName(key), start, func() error {
					return cmd.Handler(c)
				})
			}
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, func() error {
				return opts.UnknownText(c)
			})
		}
		logHandlerSummary(c, "unknown_text", start, "skip", nil)
		return nil
	}

	routes := []tg.Route{{Endpoint: tele.OnText, Handler: handler}}
	if opts.UnknownDocument != nil {
		routes = append(routes, Wrap(tele.OnDocument, "unexpected_document", opts.UnknownDocument))
	}
	return routes
}
