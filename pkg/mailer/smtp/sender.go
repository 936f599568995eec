// Package smtp implements mailer.Sender over SMTP with go-mail.
package smtp

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"

	"github.com/go-mail/mail"

	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/mailer"
)

// ErrAuth is returned when the sender has no username or password.
var ErrAuth = errors.New("smtp: username and password are required")

// Sender sends email through one SMTP account.
type Sender struct {
	cfg      Config
	username string
	password string
}

// New creates a Sender that authenticates as username.
// The username is also the From address unless the Email sets one.
func New(cfg Config, username, password string) *Sender {
	if cfg.TLSMode == "" {
		cfg.TLSMode = TLSModeAuto
	}
	return &Sender{cfg: cfg, username: username, password: password}
}

// Send implements mailer.Sender. The SMTP dialog itself is not cancellable;
// ctx is checked before dialing.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if s.username == "" || s.password == "" {
		return ErrAuth
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.dialer().DialAndSend(s.message(email)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (s *Sender) message(email *mailer.Email) *mail.Message {
	from := email.From
	if from == "" {
		from = s.username
	}

	m := mail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	if email.ReplyTo != "" {
		m.SetHeader("Reply-To", email.ReplyTo)
	}

	switch {
	case email.Text != "" && email.HTML != "":
		m.SetBody("text/plain", email.Text)
		m.AddAlternative("text/html", email.HTML)
	case email.Text != "":
		m.SetBody("text/plain", email.Text)
	default:
		m.SetBody("text/html", email.HTML)
	}

	for _, a := range email.Attachments {
		settings := []mail.FileSetting{}
		if a.ContentType != "" {
			settings = append(settings, mail.SetHeader(map[string][]string{
				"Content-Type": {a.ContentType},
			}))
		}
		m.AttachReader(a.Filename, bytes.NewReader(a.Content), settings...)
	}
	return m
}

func (s *Sender) dialer() *mail.Dialer {
	d := mail.NewDialer(s.cfg.Host, s.cfg.Port, s.username, s.password)
	if s.cfg.Timeout > 0 {
		d.Timeout = s.cfg.Timeout
	}
	d.TLSConfig = &tls.Config{
		ServerName:         s.cfg.Host,
		InsecureSkipVerify: s.cfg.InsecureSkipVerify,
	}

	switch s.cfg.TLSMode {
	case TLSModeSSL:
		d.SSL = true
	case TLSModeStartTLS:
		d.StartTLSPolicy = mail.MandatoryStartTLS
	case TLSModeNone:
		d.StartTLSPolicy = mail.NoStartTLS
	default:
		d.StartTLSPolicy = mail.OpportunisticStartTLS
	}
	return d
}

var _ mailer.Sender = (*Sender)(nil)
