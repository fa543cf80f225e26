// Package admin implements the operator surface: the panel, lead
// statistics, recent leads, CSV export and broadcasts. Every operation is
// gated by the configured admin id.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jamshidbekman/rivojbot/core/logger"
	"github.com/jamshidbekman/rivojbot/core/telegram/format"
	"github.com/jamshidbekman/rivojbot/internal/lead"
	"github.com/jamshidbekman/rivojbot/internal/reply"
	"github.com/jamshidbekman/rivojbot/internal/stats"
)

// ErrPermissionDenied is returned to callers that are not the admin.
var ErrPermissionDenied = errors.New("admin: permission denied")

// Callback keys of the admin keyboard.
const (
	KeyStats   = "admin_stats"
	KeyLeads   = "admin_leads"
	KeyExport  = "admin_export"
	KeyRefresh = "admin_refresh"
)

// Rejection texts for commands and callback toasts.
const (
	DeniedText  = "❌ Sizda admin huquqi yo'q!"
	DeniedToast = "❌ Ruxsat yo'q!"
)

const divider = "━━━━━━━━━━━━━━━━━━━"

// Options configure a Service.
type Options struct {
	// AdminID is the only user allowed through. Zero disables the surface.
	AdminID int64
	// Location is used for "today" and rendered timestamps.
	Location *time.Location
	// RecentLimit caps RecentLeads; defaults to 10.
	RecentLimit int
	// BroadcastPacing is the pause between broadcast sends.
	BroadcastPacing time.Duration
	Now             func() time.Time
}

// Service reads the lead store on behalf of the admin.
type Service struct {
	store lead.Store
	opts  Options
}

func New(store lead.Store, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = 10
	}
	if opts.BroadcastPacing < 0 {
		opts.BroadcastPacing = 0
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{store: store, opts: opts}
}

// AdminID returns the configured admin id.
func (s *Service) AdminID() int64 { return s.opts.AdminID }

// Authorize rejects every caller but the configured admin.
func (s *Service) Authorize(userID int64) error {
	if s.opts.AdminID == 0 || userID != s.opts.AdminID {
		return ErrPermissionDenied
	}
	return nil
}

func (s *Service) denied(ctx context.Context, userID int64, op string) error {
	if err := s.Authorize(userID); err != nil {
		logger.Warn(ctx, logger.CompAdmin, "admin.denied",
			slog.String("op", op),
			slog.Int64("user_id", userID),
		)
		return err
	}
	return nil
}

// leads loads the store. A read error is logged and treated as empty.
func (s *Service) leads(ctx context.Context) []lead.Lead {
	all, err := s.store.LoadAll(ctx)
	if err != nil {
		logger.Error(ctx, logger.CompAdmin, "lead.store.read",
			slog.String("status", "fail"),
			logger.Err(err),
		)
		return nil
	}
	return all
}

// Snapshot computes the current statistics without an authorization check.
// It backs the health endpoint and the startup notice.
func (s *Service) Snapshot(ctx context.Context) stats.Snapshot {
	return stats.Compute(s.leads(ctx), s.opts.Now(), s.opts.Location)
}

func (s *Service) stamp() string {
	return format.DateTime(s.opts.Now(), s.opts.Location)
}

// Panel shows the admin keyboard.
func (s *Service) Panel(ctx context.Context, userID int64) ([]reply.Intent, error) {
	if err := s.denied(ctx, userID, "panel"); err != nil {
		return nil, err
	}
	return []reply.Intent{reply.Text("🔐 <b>ADMIN PANEL</b>\n\nAdmin funksiyalarini tanlang:", reply.KeyboardAdmin)}, nil
}

// Stats renders the full breakdown.
func (s *Service) Stats(ctx context.Context, userID int64) ([]reply.Intent, error) {
	if err := s.denied(ctx, userID, "stats"); err != nil {
		return nil, err
	}
	snap := s.Snapshot(ctx)

	var b strings.Builder
	b.WriteString("📊 <b>BOT STATISTIKASI</b>\n\n")
	b.WriteString(divider + "\n\n")
	fmt.Fprintf(&b, "📈 <b>Jami leadlar:</b> %d\n", snap.Total)
	fmt.Fprintf(&b, "🆕 <b>Bugun:</b> %d\n\n", snap.Today)

	b.WriteString(divider + "\n\n")
	b.WriteString("👥 <b>Kasblar bo'yicha:</b>\n")
	roles := snap.SortedRoles()
	if len(roles) == 0 {
		b.WriteString("  Ma'lumot yo'q\n")
	}
	for _, rc := range roles {
		fmt.Fprintf(&b, "  • %s: %d\n", format.Escape(rc.Role.Label()), rc.Count)
	}

	b.WriteString("\n" + divider + "\n\n")
	b.WriteString("🎯 <b>Muammolar bo'yicha:</b>\n")
	problems := snap.SortedProblems()
	if len(problems) == 0 {
		b.WriteString("  Ma'lumot yo'q\n")
	}
	for _, pc := range problems {
		fmt.Fprintf(&b, "  • %s: %d\n", format.Escape(pc.Problem.Label()), pc.Count)
	}

	b.WriteString("\n" + divider + "\n\n")
	fmt.Fprintf(&b, "⏰ Yangilangan: %s", s.stamp())
	return []reply.Intent{reply.Text(b.String(), reply.KeyboardAdmin)}, nil
}

// Refresh renders the short totals view.
func (s *Service) Refresh(ctx context.Context, userID int64) ([]reply.Intent, error) {
	if err := s.denied(ctx, userID, "refresh"); err != nil {
		return nil, err
	}
	snap := s.Snapshot(ctx)
	text := fmt.Sprintf("✅ <b>Statistika yangilandi!</b>\n\n📈 Jami leadlar: %d\n🆕 Bugun: %d\n\n⏰ %s",
		snap.Total, snap.Today, s.stamp())
	return []reply.Intent{reply.Text(text, reply.KeyboardAdmin)}, nil
}

// Recent returns up to n leads, newest first.
func Recent(leads []lead.Lead, n int) []lead.Lead {
	if n > len(leads) {
		n = len(leads)
	}
	out := make([]lead.Lead, 0, n)
	for i := len(leads) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, leads[i])
	}
	return out
}

// RecentLeads lists the newest leads.
func (s *Service) RecentLeads(ctx context.Context, userID int64) ([]reply.Intent, error) {
	if err := s.denied(ctx, userID, "leads"); err != nil {
		return nil, err
	}
	recent := Recent(s.leads(ctx), s.opts.RecentLimit)
	if len(recent) == 0 {
		return []reply.Intent{reply.Text("📋 Hozircha leadlar yo'q.", reply.KeyboardNone)}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 <b>SO'NGGI %d TA LEAD</b>\n\n", s.opts.RecentLimit)
	for i, l := range recent {
		b.WriteString(divider + "\n\n")
		fmt.Fprintf(&b, "%d. %s\n", i+1, format.Bold(format.OrDefault(l.FirstName, "Foydalanuvchi")))
		fmt.Fprintf(&b, "📞 %s\n", format.Escape(l.Phone))
		fmt.Fprintf(&b, "💼 %s\n", format.Escape(l.Role.Label()))
		fmt.Fprintf(&b, "🎯 %s\n", format.Escape(l.Problem.Label()))
		fmt.Fprintf(&b, "⏰ %s\n\n", format.DateTime(l.CapturedAt, s.opts.Location))
	}
	return []reply.Intent{reply.Text(strings.TrimRight(b.String(), "\n"), reply.KeyboardAdmin)}, nil
}
