// Package bot is the Telegram adapter. It wires the conversation machine,
// the admin surface, lead notifications and the ops server into the core
// runner.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"

	"github.com/jamshidbekman/rivojbot/core/logger"
	tg "github.com/jamshidbekman/rivojbot/core/telegram"
	"github.com/jamshidbekman/rivojbot/core/telegram/commands"
	"github.com/jamshidbekman/rivojbot/core/telegram/format"
	"github.com/jamshidbekman/rivojbot/core/telegram/helpers"
	"github.com/jamshidbekman/rivojbot/core/telegram/router"
	"github.com/jamshidbekman/rivojbot/internal/admin"
	"github.com/jamshidbekman/rivojbot/internal/config"
	"github.com/jamshidbekman/rivojbot/internal/conversation"
	"github.com/jamshidbekman/rivojbot/internal/lead"
	"github.com/jamshidbekman/rivojbot/internal/notify"
	"github.com/jamshidbekman/rivojbot/internal/ops"
)

var errBotNotReady = errors.New("bot: not started")

// botRef lets notification destinations be built before the bot exists.
type botRef struct {
	mu  sync.RWMutex
	bot helpers.ChatSender
}

func (r *botRef) set(b helpers.ChatSender) {
	r.mu.Lock()
	r.bot = b
	r.mu.Unlock()
}

func (r *botRef) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	r.mu.RLock()
	b := r.bot
	r.mu.RUnlock()
	if b == nil {
		return nil, errBotNotReady
	}
	return b.Send(to, what, opts...)
}

// Options carry the infrastructure built by bootstrap.
type Options struct {
	Config *config.Config
	Store  lead.Store
	// DB is set for the postgres driver and adds a health check.
	DB *sqlx.DB
	// DialBroker replaces notify.DialBroker.
	DialBroker func(url, exchange string) (*notify.Broker, error)
}

// App is the running bot.
type App struct {
	cfg      *config.Config
	store    lead.Store
	db       *sqlx.DB
	machine  *conversation.Machine
	admin    *admin.Service
	notifier *notify.Notifier
	ops      *ops.Server
	broker   *notify.Broker
	ref      *botRef
	renderer *Renderer
	handlers *Handlers

	sigMu  sync.Mutex
	signal string
}

// New builds the application graph. Nothing talks to Telegram until the
// runner calls OnStart.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("bot: nil config")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("bot: nil lead store")
	}
	loc := cfg.Location()
	a := &App{cfg: cfg, store: opts.Store, db: opts.DB, ref: &botRef{}, renderer: NewRenderer()}

	dests := a.destinations(opts.DialBroker)
	a.notifier = notify.New(notify.Options{Timeout: cfg.Notify.Timeout}, dests...)

	sessions := conversation.NewSessions(nil)
	a.machine = conversation.NewMachine(sessions, opts.Store, a.notifier, conversation.Options{
		OfferPath:           cfg.Conversation.OfferDocument,
		Delays:              delays(cfg.Conversation.TypingDelays),
		DuplicateWindow:     cfg.Conversation.DuplicateWindow,
		AbortOnStoreFailure: cfg.Storage.AbortOnFailure,
	})
	a.admin = admin.New(opts.Store, admin.Options{
		AdminID:         cfg.Telegram.AdminID,
		Location:        loc,
		BroadcastPacing: time.Duration(cfg.Broadcast.PacingMS) * time.Millisecond,
	})
	a.ops = ops.New(a.admin, sessions, ops.Options{
		Listen:         cfg.Ops.Listen,
		HealthInterval: cfg.Ops.HealthInterval,
		SweepInterval:  cfg.Conversation.SweepInterval,
		SessionTTL:     cfg.Conversation.SessionTTL,
		Checks:         a.checks(),
	})
	a.handlers = &Handlers{
		machine:   a.machine,
		admin:     a.admin,
		renderer:  a.renderer,
		messenger: botMessenger{bot: a.ref},
	}

	logger.Info(context.Background(), logger.CompApp, "wire",
		slog.String("storage", cfg.Storage.Driver),
		slog.Any("notify", a.notifier.Destinations()),
		slog.Bool("admin", cfg.Telegram.AdminID != 0),
	)
	return a, nil
}

func delays(cfg config.DelaysConfig) conversation.Delays {
	if cfg.Disabled {
		return conversation.Delays{}
	}
	def := conversation.DefaultDelays()
	return conversation.Delays{
		Location: config.Delay(cfg.LocationMS, def.Location),
		Analysis: config.Delay(cfg.AnalysisMS, def.Analysis),
		FollowUp: config.Delay(cfg.FollowUpMS, def.FollowUp),
		Thanks:   config.Delay(cfg.ThanksMS, def.Thanks),
		Extras:   config.Delay(cfg.ExtrasMS, def.Extras),
	}
}

func (a *App) destinations(dial func(url, exchange string) (*notify.Broker, error)) []notify.Destination {
	cfg := a.cfg
	loc := cfg.Location()
	var dests []notify.Destination
	if cfg.Telegram.AdminID != 0 {
		dests = append(dests, notify.NewTelegramDestination("admin", a.ref, cfg.Telegram.AdminID, loc))
	}
	if cfg.Telegram.GroupID != 0 {
		dests = append(dests, notify.NewTelegramDestination("group", a.ref, cfg.Telegram.GroupID, loc))
	}
	if e := cfg.Notify.Email; e.Enabled() {
		dests = append(dests, notify.NewEmailDestination(notify.EmailConfig{
			Host:     e.Host,
			Port:     e.Port,
			User:     e.User,
			Password: e.Password,
			From:     e.From,
			To:       e.To,
		}, loc))
	}
	if q := cfg.Notify.AMQP; q.Enabled() {
		if dial == nil {
			dial = notify.DialBroker
		}
		broker, err := dial(q.URL, q.Exchange)
		if err != nil {
			// Lead capture must not depend on the broker.
			logger.Warn(context.Background(), logger.CompNotify, "amqp.dial", slog.String("status", "fail"), logger.Err(err))
		} else {
			a.broker = broker
			dests = append(dests, notify.NewAMQPDestination(broker.Ch, q.Exchange, q.RoutingKey))
		}
	}
	return dests
}

func (a *App) checks() map[string]ops.Check {
	checks := map[string]ops.Check{}
	if a.db != nil {
		checks["postgres"] = func(ctx context.Context) error { return a.db.PingContext(ctx) }
	}
	if a.broker != nil && a.broker.Conn != nil {
		checks["amqp"] = func(context.Context) error {
			if a.broker.Conn.IsClosed() {
				return errors.New("connection closed")
			}
			return nil
		}
	}
	return checks
}

// Registry binds every command, button label and callback.
func (a *App) Registry() *tg.Registry {
	h, m := a.handlers, a.machine
	reg := tg.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{Handler: h.Start, Description: "Botni boshlash"})
	reg.RegisterCommand("/menu", commands.Command{
		Handler:     h.on(m.MainMenu),
		Description: "Asosiy menyu",
		Aliases:     []string{BtnBackMenu, BtnHome},
	})
	reg.RegisterCommand("/help", commands.Command{Handler: h.on(m.Help), Description: "Yordam", Aliases: []string{BtnHelp}})
	reg.RegisterCommand("/portfolio", commands.Command{Handler: h.on(m.Portfolio), Description: "Portfolio", Aliases: []string{BtnPortfolio}})
	reg.RegisterCommand("/aksiyalar", commands.Command{Handler: h.on(m.Promotions), Description: "Aksiyalar", Aliases: []string{BtnPromo}})
	reg.RegisterCommand("/admin", commands.Command{Handler: h.AdminCommand(a.admin.Panel), Description: "Admin panel", AdminOnly: true})
	reg.RegisterCommand("/broadcast", commands.Command{Handler: h.Broadcast, Description: "Xabar tarqatish", AdminOnly: true})

	texts := map[string]tele.HandlerFunc{
		BtnPrices:  h.on(m.Prices),
		BtnContact: h.on(m.ContactPrompt),
		BtnCancel:  h.on(m.ContactCancel),
	}
	for _, role := range lead.Roles {
		texts[role.Label()] = h.Role(role)
	}
	for text, fn := range texts {
		mustRegister(reg.RegisterText(text, fn))
	}

	cbs := map[string]tele.HandlerFunc{
		CbOfferView:      h.onCallback("📄 Taklif yuborilmoqda...", m.OfferView),
		CbOfferDetails:   h.onCallback("", m.OfferDetails),
		CbContactNow:     h.onCallback("", m.ContactNow),
		CbBackToProblems: h.onCallback("", m.BackToProblems),
		CbPackages:       h.onCallback("", m.Packages),
		CbPrices:         h.onCallback("", m.ViewPrices),
		CbPortfolio:      h.onCallback("", m.PortfolioSummary),
		CbReviews:        h.onCallback("", m.Reviews),
		CbContactAgain:   h.onCallback("", m.ContactAgain),
		CbToMain:         h.onCallback("", m.ToMain),
		CbPriceFull:      h.onCallback("", m.PriceFull),
		CbPriceBack:      h.onCallback("", m.PriceBack),

		conversation.PriceMini:     h.PriceTier,
		conversation.PriceStandard: h.PriceTier,
		conversation.PricePremium:  h.PriceTier,

		admin.KeyStats:   h.AdminCallback("", a.admin.Stats),
		admin.KeyLeads:   h.AdminCallback("", a.admin.RecentLeads),
		admin.KeyExport:  h.AdminCallback("📥 Export tayyorlanmoqda...", a.admin.Export),
		admin.KeyRefresh: h.AdminCallback("🔄 Yangilandi", a.admin.Refresh),
	}
	for _, p := range lead.Problems {
		cbs[p.Key()] = h.Problem
	}
	for key, fn := range cbs {
		mustRegister(reg.RegisterCallback(key, fn))
	}
	reg.SetCallbackNotFound(h.UnknownCallback)
	reg.SetTextFallback(h.FreeText)
	return reg
}

// mustRegister panics on duplicate keys, which are wiring bugs.
func mustRegister(err error) {
	if err != nil {
		panic(err)
	}
}

// Routes are the telebot endpoints served by the registry.
func (a *App) Routes(reg *tg.Registry) []tg.Route {
	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID:       a.cfg.Telegram.AdminID,
		OnAdminReject: a.handlers.Denied,
	})
	routes = append(routes, router.TextRoutes(reg, router.TextOptions{})...)
	return append(routes,
		router.CallbackRoute(reg),
		router.Wrap(tele.OnContact, "contact", a.handlers.Contact),
	)
}

// TelegramRunOptions implements the core runner contract.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	reg := a.Registry()
	core := a.cfg.CoreConfig()
	return tg.RunOptions{
		Config:      core,
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(core, nil, a.handlers.Panic),
		BuildRoutes: func(tg.Runtime) []tg.Route { return a.Routes(reg) },
		OnStart:     a.OnStart,
		OnStop:      a.OnStop,
	}, nil
}

// OnStart binds the live bot, starts ops and greets the admin.
func (a *App) OnStart(ctx context.Context, rt tg.Runtime) error {
	if rt.Bot != nil {
		a.ref.set(rt.Bot)
	}
	a.renderer.Bind(ctx)
	if err := a.ops.Start(ctx); err != nil {
		return err
	}
	a.notifyAdmin(ctx, a.startupText(ctx))
	return nil
}

// OnStop says goodbye to the admin and drains background work.
func (a *App) OnStop(ctx context.Context, _ tg.Runtime) error {
	a.notifyAdmin(ctx, a.shutdownText())
	err := a.ops.Stop(ctx)
	a.notifier.Close()
	if cerr := a.broker.Close(); cerr != nil {
		logger.Warn(ctx, logger.CompNotify, "amqp.close", slog.String("status", "fail"), logger.Err(cerr))
	}
	return err
}

// NoteSignal records the signal that stopped the bot for the shutdown notice.
func (a *App) NoteSignal(name string) {
	a.sigMu.Lock()
	a.signal = name
	a.sigMu.Unlock()
}

func (a *App) notifyAdmin(ctx context.Context, text string) {
	if a.cfg.Telegram.AdminID == 0 {
		return
	}
	_ = helpers.SendHTMLTo(ctx, a.ref, a.cfg.Telegram.AdminID, text, nil)
}

func (a *App) startupText(ctx context.Context) string {
	snap := a.admin.Snapshot(ctx)
	return fmt.Sprintf("🚀 <b>Bot ishga tushdi!</b>\n\n⏰ Vaqt: %s\n📊 Jami leadlar: %d\n\n✅ Bot normal ishlayapti.",
		format.DateTime(time.Now(), a.cfg.Location()), snap.Total)
}

func (a *App) shutdownText() string {
	a.sigMu.Lock()
	sig := a.signal
	a.sigMu.Unlock()
	if sig == "" {
		sig = "shutdown"
	}
	return fmt.Sprintf("⚠️ <b>Bot to'xtatildi</b>\n\n📅 %s\n🔄 Signal: %s",
		format.DateTime(time.Now(), a.cfg.Location()), format.Escape(sig))
}

// FatalText is the admin alert for an unrecoverable error.
func FatalText(err error, at time.Time, loc *time.Location) string {
	return fmt.Sprintf("❌ <b>Bot xatosi!</b>\n\n<code>%s</code>\n\n⏰ %s",
		format.Escape(logger.SanitizeLimit(err.Error(), 500)), format.DateTime(at, loc))
}

// ReportFatal alerts the admin about err through a one-off bot client.
// It is best effort and silent when no admin or token is configured.
func ReportFatal(cfg *config.Config, err error) {
	if cfg == nil || err == nil || cfg.Telegram.AdminID == 0 || cfg.Telegram.Token == "" {
		return
	}
	b, berr := tele.NewBot(tele.Settings{Token: cfg.Telegram.Token, Offline: true})
	if berr != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = helpers.SendHTMLTo(ctx, b, cfg.Telegram.AdminID, FatalText(err, time.Now(), cfg.Location()), nil)
}
