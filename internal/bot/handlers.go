package bot

import (
	"context"
	"errors"
	"strings"
	"unicode"

	tele "gopkg.in/telebot.v4"

	"github.com/jamshidbekman/rivojbot/core/telegram/callbacks"
	"github.com/jamshidbekman/rivojbot/core/telegram/helpers"
	"github.com/jamshidbekman/rivojbot/internal/admin"
	"github.com/jamshidbekman/rivojbot/internal/conversation"
	"github.com/jamshidbekman/rivojbot/internal/lead"
	"github.com/jamshidbekman/rivojbot/internal/reply"
)

// event is a conversation operation for the sender of an update.
type event func(ctx context.Context, u conversation.User) []reply.Intent

// adminOp is an admin operation gated by the caller's id.
type adminOp func(ctx context.Context, userID int64) ([]reply.Intent, error)

// Handlers translate updates into machine and admin calls.
type Handlers struct {
	machine   *conversation.Machine
	admin     *admin.Service
	renderer  *Renderer
	messenger admin.Messenger
}

func userOf(c tele.Context) conversation.User {
	s := c.Sender()
	if s == nil {
		return conversation.User{}
	}
	return conversation.User{ID: s.ID, Username: s.Username, FirstName: s.FirstName}
}

func (h *Handlers) on(fn event) tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.renderer.Render(c, fn(helpers.BuildContext(c), userOf(c)))
	}
}

// onCallback answers with toast first so the client spinner stops before
// the slower replies start.
func (h *Handlers) onCallback(toast string, fn event) tele.HandlerFunc {
	return func(c tele.Context) error {
		_ = callbacks.Answer(c, toast)
		return h.renderer.Render(c, fn(helpers.BuildContext(c), userOf(c)))
	}
}

func (h *Handlers) Start(c tele.Context) error { return h.on(h.machine.Start)(c) }

// Role handles a main-menu role button.
func (h *Handlers) Role(role lead.Role) tele.HandlerFunc {
	return h.on(func(ctx context.Context, u conversation.User) []reply.Intent {
		return h.machine.SelectRole(ctx, u, role)
	})
}

// Problem handles the problem menu callbacks.
func (h *Handlers) Problem(c tele.Context) error {
	key := callbacks.CallbackKey(c)
	return h.onCallback("⏳ Taklif tayyorlanmoqda...", func(ctx context.Context, u conversation.User) []reply.Intent {
		return h.machine.SelectProblem(ctx, u, key)
	})(c)
}

// PriceTier handles the price_500/1000/3000 callbacks.
func (h *Handlers) PriceTier(c tele.Context) error {
	key := callbacks.CallbackKey(c)
	return h.onCallback("", func(ctx context.Context, u conversation.User) []reply.Intent {
		return h.machine.PriceTier(ctx, u, key)
	})(c)
}

// Contact handles a shared phone contact.
func (h *Handlers) Contact(c tele.Context) error {
	msg := c.Message()
	if msg == nil || msg.Contact == nil {
		return nil
	}
	shared := conversation.SharedContact{FirstName: msg.Contact.FirstName, Phone: msg.Contact.PhoneNumber}
	return h.on(func(ctx context.Context, u conversation.User) []reply.Intent {
		return h.machine.ShareContact(ctx, u, shared)
	})(c)
}

// FreeText handles any text no button or command claimed.
func (h *Handlers) FreeText(c tele.Context) error {
	text := c.Text()
	return h.on(func(ctx context.Context, u conversation.User) []reply.Intent {
		return h.machine.FreeText(ctx, u, text)
	})(c)
}

// UnknownCallback acknowledges callbacks with unregistered keys. Malformed
// problem keys still reach the machine so they are logged.
func (h *Handlers) UnknownCallback(c tele.Context) error {
	key := callbacks.CallbackKey(c)
	_ = callbacks.Answer(c, "")
	if lead.IsProblemKey(key) {
		h.machine.SelectProblem(helpers.BuildContext(c), userOf(c), key)
	}
	return nil
}

// Panic is the reply after a recovered handler panic.
func (h *Handlers) Panic(c tele.Context) error {
	return h.renderer.Render(c, h.machine.ErrorReply())
}

// AdminCommand renders an admin operation for a command.
func (h *Handlers) AdminCommand(op adminOp) tele.HandlerFunc {
	return func(c tele.Context) error {
		intents, err := op(helpers.BuildContext(c), userOf(c).ID)
		if errors.Is(err, admin.ErrPermissionDenied) {
			return helpers.SendHTML(c, admin.DeniedText, nil)
		}
		if err != nil {
			return err
		}
		return h.renderer.Render(c, intents)
	}
}

// AdminCallback renders an admin operation for an inline button.
func (h *Handlers) AdminCallback(toast string, op adminOp) tele.HandlerFunc {
	return func(c tele.Context) error {
		intents, err := op(helpers.BuildContext(c), userOf(c).ID)
		if errors.Is(err, admin.ErrPermissionDenied) {
			return callbacks.Answer(c, admin.DeniedToast)
		}
		_ = callbacks.Answer(c, toast)
		if err != nil {
			return err
		}
		return h.renderer.Render(c, intents)
	}
}

// Denied is the rejection for admin-only commands.
func (h *Handlers) Denied(c tele.Context) error {
	return helpers.SendHTML(c, admin.DeniedText, nil)
}

// Broadcast handles /broadcast <message>.
func (h *Handlers) Broadcast(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	payload := commandArgs(c.Text())
	// Pauses between sends stop on shutdown.
	bctx, cancel := mergeCancel(ctx, h.renderer.lifecycle())
	defer cancel()

	_, err := h.admin.Broadcast(bctx, userOf(c).ID, payload, h.messenger)
	switch {
	case errors.Is(err, admin.ErrPermissionDenied):
		return helpers.SendHTML(c, admin.DeniedText, nil)
	case errors.Is(err, admin.ErrEmptyBroadcast):
		return helpers.SendHTML(c, admin.BroadcastUsage, nil)
	}
	return err
}

// commandArgs returns everything after the leading command token, line
// breaks included. "/broadcast@rivoj_bot a\nb" yields "a\nb".
func commandArgs(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return text
	}
	i := strings.IndexFunc(text, unicode.IsSpace)
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(text[i:])
}

// mergeCancel returns ctx that is also cancelled when stop is done.
func mergeCancel(ctx, stop context.Context) (context.Context, context.CancelFunc) {
	merged, cancel := context.WithCancel(ctx)
	unhook := context.AfterFunc(stop, cancel)
	return merged, func() {
		unhook()
		cancel()
	}
}
