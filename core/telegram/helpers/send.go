package helpers

import (
	"context"
	"log/slog"

	"github.com/jamshidbekman/rivojbot/core/logger"

	tele "gopkg.in/telebot.v4"
)

// ChatSender is the subset of *tele.Bot used for out-of-update sends.
type ChatSender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// HTML returns send options for HTML parse mode with an optional markup.
func HTML(markup *tele.ReplyMarkup) *tele.SendOptions {
	return &tele.SendOptions{ParseMode: tele.ModeHTML, ReplyMarkup: markup}
}

// SendHTML sends an HTML message to the current chat. Sends are synchronous so
// consecutive calls arrive in order.
func SendHTML(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	err := c.Send(text, HTML(markup))
	if err != nil {
		logSendFailure(BuildContext(c), "sendMessage", err)
	}
	return err
}

// SendDocument uploads doc to the current chat.
func SendDocument(c tele.Context, doc *tele.Document, markup *tele.ReplyMarkup) error {
	err := c.Send(doc, HTML(markup))
	if err != nil {
		logSendFailure(BuildContext(c), "sendDocument", err)
	}
	return err
}

// SendHTMLTo sends an HTML message to an arbitrary chat outside of an update.
func SendHTMLTo(ctx context.Context, bot ChatSender, chatID int64, text string, markup *tele.ReplyMarkup) error {
	_, err := bot.Send(tele.ChatID(chatID), text, HTML(markup))
	if err != nil {
		logSendFailure(ctx, "sendMessage", err, slog.Int64("chat_id", chatID))
	}
	return err
}

func logSendFailure(ctx context.Context, endpoint string, err error, attrs ...slog.Attr) {
	logger.Warn(ctx, logger.CompSender, "send.fail",
		append([]slog.Attr{
			slog.String("status", "fail"),
			slog.String("endpoint", endpoint),
			logger.Err(err),
		}, attrs...)...)
}
