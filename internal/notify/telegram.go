package notify

import (
	"context"
	"time"

	"github.com/jamshidbekman/rivojbot/core/telegram/helpers"
	"github.com/jamshidbekman/rivojbot/internal/lead"
)

// TelegramDestination posts the lead alert to one chat: the admin's
// private chat or the operators' group.
type TelegramDestination struct {
	name     string
	bot      helpers.ChatSender
	chatID   int64
	location *time.Location
}

func NewTelegramDestination(name string, bot helpers.ChatSender, chatID int64, loc *time.Location) *TelegramDestination {
	return &TelegramDestination{name: name, bot: bot, chatID: chatID, location: loc}
}

func (d *TelegramDestination) Name() string { return d.name }

func (d *TelegramDestination) Deliver(ctx context.Context, l lead.Lead) error {
	return helpers.SendHTMLTo(ctx, d.bot, d.chatID, FormatLead(l, d.location), nil)
}
