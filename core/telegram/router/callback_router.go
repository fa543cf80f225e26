package router

import (
	"log/slog"
	"time"

	tg "github.com/jamshidbekman/rivojbot/core/telegram"
	"github.com/jamshidbekman/rivojbot/core/telegram/callbacks"

	tele "gopkg.in/telebot.v4"
)

// CallbackRoute routes every callback through the registry by its unique key.
// Unknown keys go to the registry's not-found handler. Callbacks that the
// handler did not answer get an empty acknowledgement afterwards so the
// client spinner stops.
func CallbackRoute(reg *tg.Registry) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		if c.Callback() == nil {
			return nil
		}
		defer func() {
			if !callbacks.Answered(c) {
				_ = c.Respond()
			}
		}()

		key := callbacks.CallbackKey(c)
		name := "callback." + normalizeHandlerName(key)
		extras := []slog.Attr{slog.String("cb_key", key)}

		cbHandler, ok := reg.GetCallback(key)
		if !ok {
			extras = append(extras, slog.String("reason", "not_found"))
			cbHandler = reg.CallbackNotFound()
		}
		return handleWithSummary(c, name, start, func() error {
			if cbHandler == nil {
				return nil
			}
			return cbHandler(c)
		}, extras...)
	}
	return tg.Route{Endpoint: tele.OnCallback, Handler: handler}
}
