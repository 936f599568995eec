// Package resend implements mailer.Sender using the Resend API.
package resend

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v3"

	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/mailer"
)

// ErrAPIKey is returned when the sender has no API key.
var ErrAPIKey = errors.New("resend: api key is required")

// Sender sends email through one Resend account.
type Sender struct {
	client      *resend.Client
	config      Config
	apiKey      string
	senderEmail string
}

// New creates a Sender with apiKey sending from senderEmail.
func New(cfg Config, senderEmail, apiKey string) *Sender {
	return &Sender{
		client:      resend.NewClient(apiKey),
		config:      cfg,
		apiKey:      apiKey,
		senderEmail: senderEmail,
	}
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if s.apiKey == "" {
		return ErrAPIKey
	}

	req := s.request(email)
	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}
	return nil
}

func (s *Sender) request(email *mailer.Email) *resend.SendEmailRequest {
	from := email.From
	if from == "" {
		from = mailer.Address(s.config.SenderName, s.senderEmail)
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
	}

	for _, a := range email.Attachments {
		req.Attachments = append(req.Attachments, &resend.Attachment{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: a.ContentType,
		})
	}
	for name, value := range email.Tags {
		req.Tags = append(req.Tags, resend.Tag{Name: name, Value: value})
	}
	return req
}

var _ mailer.Sender = (*Sender)(nil)
