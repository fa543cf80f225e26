package bot

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/jamshidbekman/rivojbot/core/logger"
	"github.com/jamshidbekman/rivojbot/core/telegram/helpers"
	"github.com/jamshidbekman/rivojbot/internal/reply"
)

// Renderer delivers intents to the chat of the current update, in order.
// A failed send is logged and the remaining intents still go out.
type Renderer struct {
	// base is cancelled on shutdown and interrupts pending pauses.
	base atomic.Pointer[context.Context]
}

func NewRenderer() *Renderer {
	r := &Renderer{}
	r.Bind(context.Background())
	return r
}

// Bind sets the lifecycle context. It may be called while updates are
// being rendered.
func (r *Renderer) Bind(ctx context.Context) {
	if ctx != nil {
		r.base.Store(&ctx)
	}
}

func (r *Renderer) lifecycle() context.Context {
	return *r.base.Load()
}

func (r *Renderer) Render(c tele.Context, intents []reply.Intent) error {
	ctx := helpers.BuildContext(c)
	var errs []error
	for _, in := range intents {
		switch in.Kind {
		case reply.KindAction:
			if err := c.Notify(tele.ChatAction(in.Action)); err != nil {
				logger.Debug(ctx, logger.CompTelegram, "chat_action", slog.String("status", "fail"), logger.Err(err))
			}
		case reply.KindPause:
			if !r.pause(in.Pause) {
				return errors.Join(append(errs, context.Canceled)...)
			}
		case reply.KindText:
			if err := helpers.SendHTML(c, in.Text, markup(in.Keyboard)); err != nil {
				errs = append(errs, err)
			}
		case reply.KindDocument:
			if err := r.document(c, in); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (r *Renderer) pause(d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-r.lifecycle().Done():
		return false
	}
}

func (r *Renderer) document(c tele.Context, in reply.Intent) error {
	d := in.Document
	if d == nil {
		return nil
	}
	file := tele.FromDisk(d.Path)
	if len(d.Data) > 0 {
		file = tele.FromReader(bytes.NewReader(d.Data))
	}
	doc := &tele.Document{File: file, FileName: d.FileName, Caption: d.Caption}
	err := helpers.SendDocument(c, doc, markup(in.Keyboard))
	if err == nil || d.Fallback == "" {
		return err
	}
	return helpers.SendHTML(c, d.Fallback, markup(in.Keyboard))
}

// botMessenger adapts a bot to admin broadcasts.
type botMessenger struct {
	bot helpers.ChatSender
}

func (m botMessenger) SendHTML(ctx context.Context, chatID int64, html string) error {
	return helpers.SendHTMLTo(ctx, m.bot, chatID, html, nil)
}
