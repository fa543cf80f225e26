package notify

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/jamshidbekman/rivojbot/internal/lead"
)

// MailSender is satisfied by *gomail.Dialer.
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailConfig describes the SMTP relay.
type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       []string
}

// EmailDestination mails the lead alert to the sales inbox.
type EmailDestination struct {
	cfg      EmailConfig
	mailer   MailSender
	location *time.Location
}

// NewEmailDestination dials cfg.Host per message.
func NewEmailDestination(cfg EmailConfig, loc *time.Location) *EmailDestination {
	return NewEmailDestinationWith(cfg, gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password), loc)
}

func NewEmailDestinationWith(cfg EmailConfig, mailer MailSender, loc *time.Location) *EmailDestination {
	return &EmailDestination{cfg: cfg, mailer: mailer, location: loc}
}

func (d *EmailDestination) Name() string { return "email" }

func (d *EmailDestination) Deliver(ctx context.Context, l lead.Lead) error {
	if len(d.cfg.To) == 0 {
		return fmt.Errorf("email: no recipients configured")
	}
	m := gomail.NewMessage()
	m.SetHeader("From", d.cfg.From)
	m.SetHeader("To", d.cfg.To...)
	m.SetHeader("Subject", subject(l))
	m.SetBody("text/html", htmlBody(l, d.location))

	// gomail has no context support; honour cancellation before dialing.
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.mailer.DialAndSend(m); err != nil {
		return fmt.Errorf("email: send: %w", err)
	}
	return nil
}
