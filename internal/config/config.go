// Package config holds the application configuration: the reusable core
// settings plus lead storage, conversation pacing, notifications and ops.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/gookit/validate"

	coreconfig "github.com/jamshidbekman/rivojbot/core/config"
	coredatabase "github.com/jamshidbekman/rivojbot/core/database"
)

// Storage drivers.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

const (
	defaultLeadsFile      = "leads.jsonl"
	defaultOfferDocument  = "offer.pdf"
	defaultTimezone       = "Asia/Tashkent"
	defaultSessionTTL     = 24 * time.Hour
	defaultHealthInterval = 5 * time.Minute
	defaultSweepInterval  = time.Minute
	defaultNotifyTimeout  = 10 * time.Second
	defaultPacingMS       = 100
	defaultRoutingKey     = "lead.captured"
)

type StorageConfig struct {
	Driver string `yaml:"driver" envconfig:"LEADS_DRIVER" validate:"required|in:file,postgres"`
	Path   string `yaml:"path" envconfig:"LEADS_FILE"`
	// AbortOnFailure asks the user to resend the contact when the lead
	// could not be stored instead of thanking them.
	AbortOnFailure bool `yaml:"abort_on_failure" envconfig:"LEADS_ABORT_ON_FAILURE"`
}

// DelaysConfig are typing pauses in milliseconds; 0 keeps the default.
type DelaysConfig struct {
	LocationMS int `yaml:"location_ms" validate:"min:0"`
	AnalysisMS int `yaml:"analysis_ms" validate:"min:0"`
	FollowUpMS int `yaml:"follow_up_ms" validate:"min:0"`
	ThanksMS   int `yaml:"thanks_ms" validate:"min:0"`
	ExtrasMS   int `yaml:"extras_ms" validate:"min:0"`
	// Disabled drops every pause.
	Disabled bool `yaml:"disabled" envconfig:"TYPING_DELAYS_DISABLED"`
}

type ConversationConfig struct {
	OfferDocument   string        `yaml:"offer_document" envconfig:"OFFER_DOCUMENT"`
	SessionTTL      time.Duration `yaml:"session_ttl" envconfig:"SESSION_TTL"`
	SweepInterval   time.Duration `yaml:"sweep_interval"`
	DuplicateWindow time.Duration `yaml:"duplicate_window" envconfig:"DUPLICATE_WINDOW"`
	Timezone        string        `yaml:"timezone" envconfig:"BOT_TIMEZONE"`
	TypingDelays    DelaysConfig  `yaml:"typing_delays"`
}

type EmailConfig struct {
	Host     string   `yaml:"host" envconfig:"SMTP_HOST"`
	Port     int      `yaml:"port" envconfig:"SMTP_PORT" validate:"min:0|max:65535"`
	User     string   `yaml:"user" envconfig:"SMTP_USER"`
	Password string   `yaml:"password" envconfig:"SMTP_PASSWORD"`
	From     string   `yaml:"from" envconfig:"SMTP_FROM"`
	To       []string `yaml:"to" envconfig:"SMTP_TO"`
}

// Enabled reports whether lead e-mails should be sent.
func (e EmailConfig) Enabled() bool {
	return strings.TrimSpace(e.Host) != "" && len(e.To) > 0
}

type AMQPConfig struct {
	URL        string `yaml:"url" envconfig:"AMQP_URL"`
	Exchange   string `yaml:"exchange" envconfig:"AMQP_EXCHANGE"`
	RoutingKey string `yaml:"routing_key" envconfig:"AMQP_ROUTING_KEY"`
}

// Enabled reports whether lead events should be published.
func (a AMQPConfig) Enabled() bool { return strings.TrimSpace(a.URL) != "" }

type NotifyConfig struct {
	Timeout time.Duration `yaml:"timeout" envconfig:"NOTIFY_TIMEOUT"`
	Email   EmailConfig   `yaml:"email"`
	AMQP    AMQPConfig    `yaml:"amqp"`
}

type BroadcastConfig struct {
	PacingMS int `yaml:"pacing_ms" envconfig:"BROADCAST_PACING_MS" validate:"min:0"`
}

type OpsConfig struct {
	// Listen is the health/metrics address; empty disables the server.
	Listen         string        `yaml:"listen" envconfig:"OPS_LISTEN"`
	HealthInterval time.Duration `yaml:"health_interval" envconfig:"HEALTH_INTERVAL"`
}

// Config is the full application configuration.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Database     coredatabase.Config `yaml:"database"`
	Storage      StorageConfig       `yaml:"storage"`
	Conversation ConversationConfig  `yaml:"conversation"`
	Notify       NotifyConfig        `yaml:"notify"`
	Broadcast    BroadcastConfig     `yaml:"broadcast"`
	Ops          OpsConfig           `yaml:"ops"`

	location *time.Location
}

// CoreConfig exposes the embedded core settings.
func (c *Config) CoreConfig() *coreconfig.Config { return &c.Config }

// Location is the zone used for "today" and rendered timestamps.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// UsesPostgres reports whether leads live in PostgreSQL.
func (c *Config) UsesPostgres() bool { return c.Storage.Driver == DriverPostgres }

// Load reads path (optional) and the environment, then normalizes.
func Load(path string) (*Config, error) {
	// Seeded before decoding so an explicit 0 turns pacing off.
	cfg := Config{Broadcast: BroadcastConfig{PacingMS: defaultPacingMS}}
	if err := coreconfig.Decode(path, &cfg); err != nil {
		return nil, err
	}
	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates cfg and fills defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil config", coreconfig.ErrConfiguration)
	}
	if err := coreconfig.Normalize(&cfg.Config); err != nil {
		return err
	}

	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = DriverFile
	}
	if strings.TrimSpace(cfg.Storage.Path) == "" {
		cfg.Storage.Path = defaultLeadsFile
	}
	if cfg.UsesPostgres() {
		if strings.TrimSpace(cfg.Database.Host) == "" || strings.TrimSpace(cfg.Database.Name) == "" {
			return fmt.Errorf("%w: database.host and database.name are required for the postgres driver", coreconfig.ErrConfiguration)
		}
		if cfg.Database.Port == "" {
			cfg.Database.Port = "5432"
		}
		if cfg.Database.MigrationsDir == "" {
			cfg.Database.MigrationsDir = "migrations"
		}
	}

	conv := &cfg.Conversation
	if strings.TrimSpace(conv.OfferDocument) == "" {
		conv.OfferDocument = defaultOfferDocument
	}
	if conv.SessionTTL <= 0 {
		conv.SessionTTL = defaultSessionTTL
	}
	if conv.SweepInterval <= 0 {
		conv.SweepInterval = defaultSweepInterval
	}
	if conv.DuplicateWindow < 0 {
		return fmt.Errorf("%w: conversation.duplicate_window must be >= 0", coreconfig.ErrConfiguration)
	}
	if strings.TrimSpace(conv.Timezone) == "" {
		conv.Timezone = defaultTimezone
	}
	loc, err := time.LoadLocation(conv.Timezone)
	if err != nil {
		return fmt.Errorf("%w: conversation.timezone %q: %v", coreconfig.ErrConfiguration, conv.Timezone, err)
	}
	cfg.location = loc

	if cfg.Notify.Timeout <= 0 {
		cfg.Notify.Timeout = defaultNotifyTimeout
	}
	if cfg.Notify.Email.Port == 0 {
		cfg.Notify.Email.Port = 587
	}
	if cfg.Notify.AMQP.RoutingKey == "" {
		cfg.Notify.AMQP.RoutingKey = defaultRoutingKey
	}
	if cfg.Ops.HealthInterval <= 0 {
		cfg.Ops.HealthInterval = defaultHealthInterval
	}

	for _, section := range []any{&cfg.Storage, &cfg.Conversation.TypingDelays, &cfg.Notify.Email, &cfg.Broadcast} {
		if err := check(section); err != nil {
			return err
		}
	}
	return nil
}

func check(section any) error {
	v := validate.Struct(section)
	if !v.Validate() {
		return fmt.Errorf("%w: %s", coreconfig.ErrConfiguration, v.Errors.One())
	}
	return nil
}

// Delay converts a millisecond setting, falling back to def when zero.
func Delay(ms int, def time.Duration) time.Duration {
	if ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}
