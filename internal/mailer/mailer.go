package mailer

import (
	"context"
	"fmt"
	"regexp"

	"dailypay-backend/internal/config"
	"dailypay-backend/internal/logger"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

//go:generate mockgen -destination=mocks/mailer_mock.go -package=mocks dailypay-backend/internal/mailer Mailer

type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
	Text    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns an SMTP mailer when SMTP_HOST is set and a log-only mailer otherwise.
func New(cfg config.SMTPConfig) Mailer {
	if cfg.Host == "" {
		logger.Warn("SMTP_HOST not set, password reset emails will only be logged")
		return &LogMailer{}
	}
	return NewSMTPMailer(cfg)
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	from := msg.From
	if from == "" {
		from = m.from
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		gm.AddAlternative("text/html", msg.HTML)
	}

	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

// LogMailer writes messages to the log instead of delivering them. Reset
// tokens are redacted so the log cannot be used to take over an account.
type LogMailer struct{}

var tokenParam = regexp.MustCompile(`token=[^&\s"]+`)

func (LogMailer) Send(_ context.Context, msg Message) error {
	logger.Info("Email not delivered, SMTP disabled",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", redactTokens(msg.Text)),
	)
	return nil
}

func redactTokens(s string) string {
	return tokenParam.ReplaceAllString(s, "token=REDACTED")
}
