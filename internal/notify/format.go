package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/jamshidbekman/rivojbot/core/telegram/format"
	"github.com/jamshidbekman/rivojbot/internal/lead"
)

const divider = "━━━━━━━━━━━━━━━━━━━"

func selection(label string, valid bool) string {
	if !valid {
		return "❌ Ko'rsatilmagan"
	}
	return format.Escape(label)
}

// FormatLead renders the operator alert for l. Times are shown in loc.
func FormatLead(l lead.Lead, loc *time.Location) string {
	username := "❌ Yo'q"
	if u := strings.TrimPrefix(strings.TrimSpace(l.Username), "@"); u != "" {
		username = "@" + format.Escape(u)
	}

	var b strings.Builder
	b.WriteString("🔔 <b>YANGI LEAD QABUL QILINDI!</b>\n\n")
	b.WriteString(divider + "\n\n")
	b.WriteString("👤 <b>Mijoz ma'lumotlari:</b>\n\n")
	fmt.Fprintf(&b, "• Ism: %s\n", format.Bold(format.OrDefault(l.FirstName, "Foydalanuvchi")))
	fmt.Fprintf(&b, "• Telefon: %s\n", format.Code(l.Phone))
	fmt.Fprintf(&b, "• User ID: %s\n", format.Code(fmt.Sprint(l.UserID)))
	fmt.Fprintf(&b, "• Username: %s\n\n", username)
	b.WriteString(divider + "\n\n")
	b.WriteString("📊 <b>Tanlangan parametrlar:</b>\n\n")
	fmt.Fprintf(&b, "💼 Kasb: <b>%s</b>\n", selection(l.Role.Label(), l.Role.Valid()))
	fmt.Fprintf(&b, "🎯 Muammo: <b>%s</b>\n\n", selection(l.Problem.Label(), l.Problem.Valid()))
	b.WriteString(divider + "\n\n")
	fmt.Fprintf(&b, "⏰ Vaqt: %s\n\n", format.DateTime(l.CapturedAt, loc))
	b.WriteString("⚡ <b>Tez bog'lanish tavsiya etiladi!</b>")
	return b.String()
}

// subject is the e-mail subject line for l.
func subject(l lead.Lead) string {
	return fmt.Sprintf("Yangi lead: %s (%s)", format.OrDefault(l.FirstName, "Foydalanuvchi"), l.Phone)
}

// htmlBody converts the Telegram markup into a minimal HTML document.
func htmlBody(l lead.Lead, loc *time.Location) string {
	return "<html><body><p>" + strings.ReplaceAll(FormatLead(l, loc), "\n", "<br>") + "</p></body></html>"
}
