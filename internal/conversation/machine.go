// Package conversation implements the lead-capture dialogue: per-user
// sessions, the step machine and the canned marketing replies.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/jamshidbekman/rivojbot/core/logger"
	"github.com/jamshidbekman/rivojbot/internal/lead"
	"github.com/jamshidbekman/rivojbot/internal/metrics"
	"github.com/jamshidbekman/rivojbot/internal/reply"
)

// ErrAssetUnavailable marks a missing or unreadable offer document.
var ErrAssetUnavailable = errors.New("offer document unavailable")

// Notifier receives every captured lead. Implementations must not block
// the caller for long and must not report delivery failures.
type Notifier interface {
	Notify(ctx context.Context, l lead.Lead)
}

// User identifies the sender of an event.
type User struct {
	ID        int64
	Username  string
	FirstName string
}

// SharedContact is the payload of a contact share.
type SharedContact struct {
	FirstName string
	Phone     string
}

// Delays are the artificial typing pauses between replies.
type Delays struct {
	Location time.Duration
	Analysis time.Duration
	FollowUp time.Duration
	Thanks   time.Duration
	Extras   time.Duration
}

// DefaultDelays match the pacing of the live bot.
func DefaultDelays() Delays {
	return Delays{
		Location: 500 * time.Millisecond,
		Analysis: 1800 * time.Millisecond,
		FollowUp: time.Second,
		Thanks:   800 * time.Millisecond,
		Extras:   1500 * time.Millisecond,
	}
}

// Options configure a Machine.
type Options struct {
	// OfferPath is the PDF sent after a problem is selected.
	OfferPath string
	Delays    Delays
	// DuplicateWindow absorbs repeated shares of the same phone; 0 disables.
	DuplicateWindow time.Duration
	// AbortOnStoreFailure replaces the thank-you with a retry request when
	// the lead could not be persisted.
	AbortOnStoreFailure bool
	Keywords            *KeywordTable
	Now                 func() time.Time
}

// Machine applies inbound events to sessions and returns the replies.
type Machine struct {
	sessions *Sessions
	store    lead.Store
	notifier Notifier
	keywords KeywordTable
	opts     Options
	now      func() time.Time
}

// NewMachine wires the machine. notifier may be nil.
func NewMachine(sessions *Sessions, store lead.Store, notifier Notifier, opts Options) *Machine {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if sessions == nil {
		sessions = NewSessions(now)
	}
	kw := DefaultKeywords()
	if opts.Keywords != nil {
		kw = *opts.Keywords
	}
	return &Machine{
		sessions: sessions,
		store:    store,
		notifier: notifier,
		keywords: kw,
		opts:     opts,
		now:      now,
	}
}

// Sessions exposes the session table for sweeping and health reporting.
func (m *Machine) Sessions() *Sessions { return m.sessions }

func logEvent(ctx context.Context, event string, s Session, attrs ...slog.Attr) {
	logger.Debug(ctx, logger.CompConversation, event,
		append([]slog.Attr{
			slog.String("step", s.Step.String()),
			slog.String("role", string(s.Role)),
			slog.String("problem", string(s.Problem)),
		}, attrs...)...)
}

func roleLabel(s Session, def string) string {
	if s.Role.Valid() {
		return s.Role.Label()
	}
	return def
}

func problemLabel(s Session, def string) string {
	if s.Problem.Valid() {
		return s.Problem.Label()
	}
	return def
}

// Start greets the user and clears the session.
func (m *Machine) Start(ctx context.Context, u User) []reply.Intent {
	s := m.sessions.Reset(u.ID)
	logEvent(ctx, "conversation.start", s)
	name := u.FirstName
	if strings.TrimSpace(name) == "" {
		name = defaultFirstName
	}
	return []reply.Intent{reply.Text(welcomeText(name), reply.KeyboardMainMenu)}
}

func (m *Machine) toStart(ctx context.Context, u User) Session {
	s := m.sessions.With(u.ID, func(s *Session) { s.Step = StepStart })
	logEvent(ctx, "conversation.main_menu", s)
	return s
}

// MainMenu moves back to StepStart. Selections are kept so a later
// contact share still carries them.
func (m *Machine) MainMenu(ctx context.Context, u User) []reply.Intent {
	m.toStart(ctx, u)
	return []reply.Intent{reply.Text(menuText, reply.KeyboardMainMenu)}
}

// ToMain is the inline-button variant of MainMenu.
func (m *Machine) ToMain(ctx context.Context, u User) []reply.Intent {
	m.toStart(ctx, u)
	return []reply.Intent{reply.Text(shortMenuText, reply.KeyboardMainMenu)}
}

// SelectRole stores the role, clears the problem and asks for a problem.
// Invalid roles produce no reply.
func (m *Machine) SelectRole(ctx context.Context, u User, role lead.Role) []reply.Intent {
	if !role.Valid() {
		logger.Warn(ctx, logger.CompConversation, "role.unknown", slog.String("role", string(role)))
		return nil
	}
	s := m.sessions.With(u.ID, func(s *Session) {
		s.Role = role
		s.Problem = ""
		s.Step = StepRoleSelected
	})
	logEvent(ctx, "conversation.role", s)

	var b reply.Builder
	b.Action(reply.ActionFindLocation).
		Pause(m.opts.Delays.Location).
		Text(roleSelectedText(role.Label()), reply.KeyboardProblems)
	return b.Intents()
}

// SelectProblem handles a problem button. Unknown keys are logged and
// ignored without touching the session.
func (m *Machine) SelectProblem(ctx context.Context, u User, key string) []reply.Intent {
	problem, ok := lead.ProblemFromKey(key)
	if !ok {
		logger.Warn(ctx, logger.CompConversation, "problem.unknown", slog.String("key", logger.SanitizeLimit(key, 64)))
		return nil
	}
	s := m.sessions.With(u.ID, func(s *Session) {
		s.Problem = problem
		s.Step = StepProblemSelected
	})
	logEvent(ctx, "conversation.problem", s)

	role := roleLabel(s, lead.UnknownLabel)
	var b reply.Builder
	b.Text(analysisText(role, problem.Label()), reply.KeyboardNone).
		Action(reply.ActionTyping).
		Pause(m.opts.Delays.Analysis).
		Text(offerReadyText(role, problem.Label()), reply.KeyboardNone).
		Action(reply.ActionUploadDocument)

	summary := offerSummaryText(role, problem.Label())
	if doc, err := m.offerDocument(s, offerCaption, summary); err != nil {
		logger.Warn(ctx, logger.CompConversation, "offer.asset", slog.String("status", "fail"), logger.Err(err))
		b.Text(summary, reply.KeyboardNone)
	} else {
		b.Doc(doc, reply.KeyboardNone)
	}

	b.Pause(m.opts.Delays.FollowUp).
		Text(nextStepText, reply.KeyboardOfferActions)
	return b.Intents()
}

// BackToProblems clears the problem and shows the problem menu again. A
// user at StepProblemSelected returns to StepRoleSelected; other steps
// are left alone.
func (m *Machine) BackToProblems(ctx context.Context, u User) []reply.Intent {
	s := m.sessions.With(u.ID, func(s *Session) {
		s.Problem = ""
		if s.Step == StepProblemSelected {
			s.Step = StepRoleSelected
		}
	})
	logEvent(ctx, "conversation.back", s)
	return []reply.Intent{reply.Text(backToProblemsText(roleLabel(s, "Yo'nalish")), reply.KeyboardProblems)}
}

// ShareContact records a lead from the current session and thanks the
// user. It is valid from any step. Notification is attempted whether or
// not the store write succeeded.
func (m *Machine) ShareContact(ctx context.Context, u User, c SharedContact) []reply.Intent {
	phone := strings.TrimSpace(c.Phone)
	if phone == "" {
		logger.Warn(ctx, logger.CompConversation, "contact.empty")
		return nil
	}
	firstName := strings.TrimSpace(c.FirstName)
	if firstName == "" {
		firstName = defaultFirstName
	}

	var (
		captured  lead.Lead
		storeErr  error
		duplicate bool
	)
	s := m.sessions.With(u.ID, func(s *Session) {
		now := m.now()
		if m.isDuplicate(s, phone, now) {
			duplicate = true
			return
		}

		captured = lead.Lead{
			UserID:    u.ID,
			Username:  u.Username,
			FirstName: firstName,
			Phone:     phone,
			Role:      s.Role,
			Problem:   s.Problem,
		}
		saved, err := m.append(ctx, captured)
		if err != nil {
			storeErr = err
			captured.CapturedAt = now.UTC()
			captured.Role = lead.ParseRole(string(captured.Role))
			captured.Problem = lead.ParseProblem(string(captured.Problem))
		} else {
			captured = saved
		}
		if storeErr != nil && m.opts.AbortOnStoreFailure {
			return
		}
		s.Contact = &Contact{FirstName: firstName, Phone: phone, SharedAt: now}
		s.Step = StepContactSent
	})

	if duplicate {
		metrics.LeadDuplicates.Inc()
		logEvent(ctx, "lead.duplicate", s)
		return []reply.Intent{reply.Text(duplicateContactText(phone), reply.KeyboardAfterContact)}
	}

	if m.notifier != nil {
		m.notifier.Notify(ctx, captured)
	}

	if storeErr != nil && m.opts.AbortOnStoreFailure {
		return []reply.Intent{reply.Text(storeFailedText, reply.KeyboardContactRequest)}
	}

	var b reply.Builder
	b.Action(reply.ActionTyping).
		Pause(m.opts.Delays.Thanks).
		Text(thankYouText(firstName, phone), reply.KeyboardNone).
		Pause(m.opts.Delays.Extras).
		Action(reply.ActionTyping).
		Text(extrasText, reply.KeyboardAfterContact).
		Pause(m.opts.Delays.FollowUp).
		Text(afterContactMenuText, reply.KeyboardMainMenu)
	return b.Intents()
}

func (m *Machine) isDuplicate(s *Session, phone string, now time.Time) bool {
	if m.opts.DuplicateWindow <= 0 || s.Step != StepContactSent || s.Contact == nil {
		return false
	}
	return s.Contact.Phone == phone && now.Sub(s.Contact.SharedAt) < m.opts.DuplicateWindow
}

func (m *Machine) append(ctx context.Context, l lead.Lead) (lead.Lead, error) {
	if m.store == nil {
		return lead.Lead{}, fmt.Errorf("%w: no store configured", lead.ErrStorageWrite)
	}
	saved, err := m.store.Append(ctx, l)
	if err != nil {
		metrics.LeadStoreFailures.WithLabelValues("append").Inc()
		logger.Error(ctx, logger.CompLeads, "lead.store.fail",
			slog.String("status", "fail"),
			slog.Int64("user_id", l.UserID),
			slog.String("role", string(l.Role)),
			slog.String("problem", string(l.Problem)),
			logger.Err(err),
		)
		return lead.Lead{}, err
	}
	metrics.LeadsCaptured.WithLabelValues(string(saved.Role)).Inc()
	logger.Info(ctx, logger.CompLeads, "lead.captured",
		slog.String("status", "ok"),
		slog.Int64("lead_id", saved.ID),
		slog.String("role", string(saved.Role)),
		slog.String("problem", string(saved.Problem)),
	)
	return saved, nil
}

// FreeText answers unrecognized text from the keyword table. The session
// is not touched.
func (m *Machine) FreeText(ctx context.Context, u User, text string) []reply.Intent {
	name, intents := m.keywords.Match(text)
	logger.Debug(ctx, logger.CompConversation, "conversation.keyword", slog.String("rule", name))
	return append([]reply.Intent(nil), intents...)
}

func (m *Machine) Help(context.Context, User) []reply.Intent {
	return []reply.Intent{reply.Text(helpText, reply.KeyboardNone)}
}

func (m *Machine) Portfolio(context.Context, User) []reply.Intent {
	var b reply.Builder
	b.Action(reply.ActionTyping).
		Text(portfolioText, reply.KeyboardNone).
		Pause(m.opts.Delays.FollowUp).
		Text(portfolioFollowUp, reply.KeyboardContactRequest)
	return b.Intents()
}

func (m *Machine) Promotions(context.Context, User) []reply.Intent {
	var b reply.Builder
	b.Action(reply.ActionTyping).
		Text(promoText, reply.KeyboardNone).
		Pause(m.opts.Delays.FollowUp).
		Text(promoFollowUp, reply.KeyboardContactRequest)
	return b.Intents()
}

// Prices answers the reply-keyboard price button.
func (m *Machine) Prices(context.Context, User) []reply.Intent {
	return []reply.Intent{reply.Text(pricesMenuText, reply.KeyboardPrices)}
}

// ViewPrices answers the inline price button shown after a contact share.
func (m *Machine) ViewPrices(context.Context, User) []reply.Intent {
	return []reply.Intent{reply.Text(pricesPickText, reply.KeyboardPrices)}
}

// PriceTier details one package. Unknown tiers produce no reply.
func (m *Machine) PriceTier(ctx context.Context, _ User, key string) []reply.Intent {
	text, ok := priceTierTexts[key]
	if !ok {
		logger.Warn(ctx, logger.CompConversation, "price.unknown", slog.String("key", logger.SanitizeLimit(key, 64)))
		return nil
	}
	var b reply.Builder
	b.Text(text, reply.KeyboardNone).
		Pause(m.opts.Delays.FollowUp).
		Text(priceFollowUp, reply.KeyboardAfterContact)
	return b.Intents()
}

func (m *Machine) PriceFull(context.Context, User) []reply.Intent {
	return []reply.Intent{reply.Text(fullPricesText, reply.KeyboardNone)}
}

// PriceBack shows the main menu without changing the step.
func (m *Machine) PriceBack(context.Context, User) []reply.Intent {
	return []reply.Intent{reply.Text(shortMenuText, reply.KeyboardMainMenu)}
}

// OfferView resends the offer document, or the price list without it.
func (m *Machine) OfferView(ctx context.Context, u User) []reply.Intent {
	s := m.sessions.GetOrCreate(u.ID)
	var b reply.Builder
	b.Action(reply.ActionUploadDocument)
	if doc, err := m.offerDocument(s, offerViewCaption, offerListText); err != nil {
		logger.Warn(ctx, logger.CompConversation, "offer.asset", slog.String("status", "fail"), logger.Err(err))
		b.Text(offerListText, reply.KeyboardNone)
	} else {
		b.Doc(doc, reply.KeyboardNone)
	}
	return b.Intents()
}

func (m *Machine) OfferDetails(_ context.Context, u User) []reply.Intent {
	s := m.sessions.GetOrCreate(u.ID)
	text := offerDetailsText(roleLabel(s, lead.UnknownLabel), problemLabel(s, lead.UnknownLabel))
	return []reply.Intent{reply.Text(text, reply.KeyboardContactRequest)}
}

// ContactNow answers the inline "send contact" button.
func (m *Machine) ContactNow(context.Context, User) []reply.Intent {
	return []reply.Intent{reply.Text(contactNowText, reply.KeyboardContactRequest)}
}

// ContactPrompt answers the contact button label sent as plain text.
func (m *Machine) ContactPrompt(context.Context, User) []reply.Intent {
	return []reply.Intent{reply.Text(contactPromptText, reply.KeyboardContactRequest)}
}

func (m *Machine) ContactAgain(context.Context, User) []reply.Intent {
	return []reply.Intent{reply.Text(contactAgainText, reply.KeyboardContactRequest)}
}

func (m *Machine) ContactCancel(context.Context, User) []reply.Intent {
	return []reply.Intent{reply.Text(contactCancelText, reply.KeyboardMainMenu)}
}

func (m *Machine) Packages(context.Context, User) []reply.Intent {
	var b reply.Builder
	b.Text(packagesText, reply.KeyboardNone).
		Pause(m.opts.Delays.FollowUp).
		Text(packagesFollowUp, reply.KeyboardAfterContact)
	return b.Intents()
}

func (m *Machine) PortfolioSummary(context.Context, User) []reply.Intent {
	return []reply.Intent{reply.Text(portfolioSummaryText, reply.KeyboardNone)}
}

func (m *Machine) Reviews(context.Context, User) []reply.Intent {
	return []reply.Intent{reply.Text(reviewsText, reply.KeyboardNone)}
}

// ErrorReply is sent after an unexpected failure while handling an update.
func (m *Machine) ErrorReply() []reply.Intent {
	return []reply.Intent{reply.Text(ErrorText, reply.KeyboardMainMenu)}
}

var nonWord = regexp.MustCompile(`[^A-Za-z0-9_]`)

// offerFileName derives "Taklif_<role>.pdf" from the role caption.
func offerFileName(s Session) string {
	name := "Umumiy"
	if s.Role.Valid() {
		if cleaned := nonWord.ReplaceAllString(s.Role.Label(), ""); cleaned != "" {
			name = cleaned
		}
	}
	return "Taklif_" + name + ".pdf"
}

func (m *Machine) offerDocument(s Session, caption, fallback string) (reply.Document, error) {
	if m.opts.OfferPath == "" {
		return reply.Document{}, fmt.Errorf("%w: no path configured", ErrAssetUnavailable)
	}
	info, err := os.Stat(m.opts.OfferPath)
	if err != nil {
		return reply.Document{}, fmt.Errorf("%w: %w", ErrAssetUnavailable, err)
	}
	if info.IsDir() || info.Size() == 0 {
		return reply.Document{}, fmt.Errorf("%w: %s is not a usable file", ErrAssetUnavailable, m.opts.OfferPath)
	}
	return reply.Document{
		Path:     m.opts.OfferPath,
		FileName: offerFileName(s),
		Caption:  caption,
		Fallback: fallback,
	}, nil
}
