package mailer

import (
	"context"
	"fmt"
	"strings"
	texttemplate "text/template"
)

// Mailer composes certificate emails from templates and passes them to a Sender.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New returns a Mailer sending through sender.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{sender: sender, renderer: renderer, config: cfg}
}

// SendParams describes one templated email.
type SendParams struct {
	To       string
	Template string
	Data     any

	Subject     string // overrides the template's Subject
	Layout      string // overrides Config.DefaultLayout
	From        string
	ReplyTo     string
	Tags        Tags
	Attachments []Attachment
}

// Send composes params into an Email and sends it with SendRaw.
func (m *Mailer) Send(ctx context.Context, params SendParams) error {
	email, err := m.Compose(params)
	if err != nil {
		return err
	}
	return m.SendRaw(ctx, email)
}

// Compose renders params without sending.
// The subject is params.Subject, else the template's Subject frontmatter, else
// Config.FallbackSubject, and is executed as a text/template with params.Data.
func (m *Mailer) Compose(params SendParams) (*Email, error) {
	if params.To == "" {
		return nil, ErrNoRecipient
	}

	layout := firstNonEmpty(params.Layout, m.config.DefaultLayout)
	result, err := m.renderer.Render(layout, params.Template, params.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}

	front, _ := result.Metadata["Subject"].(string)
	subject, err := executeSubject(firstNonEmpty(params.Subject, front, m.config.FallbackSubject), params.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}

	return &Email{
		To:          []string{params.To},
		From:        params.From,
		ReplyTo:     params.ReplyTo,
		Subject:     subject,
		HTML:        result.HTML,
		Text:        result.Text,
		Tags:        params.Tags,
		Attachments: params.Attachments,
	}, nil
}

// SendRaw checks that email has a recipient, a subject and a body, then sends it.
func (m *Mailer) SendRaw(ctx context.Context, email *Email) error {
	if len(email.To) == 0 {
		return ErrNoRecipient
	}
	if email.Subject == "" {
		return ErrNoSubject
	}
	if email.HTML == "" && email.Text == "" {
		return ErrNoContent
	}

	if err := m.sender.Send(ctx, email); err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	return nil
}

// firstNonEmpty returns the first non-empty value.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func executeSubject(subject string, data any) (string, error) {
	tmpl, err := texttemplate.New("subject").Funcs(plainFuncs).Option("missingkey=zero").Parse(subject)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
