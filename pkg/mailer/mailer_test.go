package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSender is a mock implementation of Sender.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, email *Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{Data: []byte(`<html><body>{{.Content}}</body></html>`)},
		"layouts/alt.html":  &fstest.MapFile{Data: []byte(`<div class="alt">{{.Content}}</div>`)},
		"welcome.md": &fstest.MapFile{Data: []byte(`---
Subject: Welcome {{.Name}}
---
Hello **{{.Name}}**!
`)},
		"plain.md": &fstest.MapFile{Data: []byte("No frontmatter here.\n")},
	}
}

func newTestMailer(sender Sender) *Mailer {
	return New(sender, NewRenderer(testFS()), Config{
		DefaultLayout:   "base.html",
		FallbackSubject: "Notification",
	})
}

func TestMailer_Send_Success(t *testing.T) {
	t.Parallel()

	mockSender := &MockSender{}
	mockSender.On("Send", mock.Anything, mock.MatchedBy(func(email *Email) bool {
		return email.To[0] == "alice@example.com" &&
			email.Subject == "Welcome Alice" &&
			strings.Contains(email.HTML, "<strong>Alice</strong>") &&
			strings.Contains(email.Text, "Hello **Alice**!")
	})).Return(nil)

	err := newTestMailer(mockSender).Send(context.Background(), SendParams{
		To:       "alice@example.com",
		Template: "welcome.md",
		Data:     map[string]string{"Name": "Alice"},
	})

	require.NoError(t, err)
	mockSender.AssertExpectations(t)
}

func TestMailer_Send_NoRecipient(t *testing.T) {
	t.Parallel()

	mockSender := &MockSender{}
	err := newTestMailer(mockSender).Send(context.Background(), SendParams{Template: "welcome.md"})

	require.ErrorIs(t, err, ErrNoRecipient)
	mockSender.AssertNotCalled(t, "Send")
}

func TestMailer_Send_RenderFailure(t *testing.T) {
	t.Parallel()

	mockSender := &MockSender{}
	err := newTestMailer(mockSender).Send(context.Background(), SendParams{
		To:       "alice@example.com",
		Template: "missing.md",
	})

	require.ErrorIs(t, err, ErrRenderFailed)
	require.ErrorIs(t, err, ErrTemplateNotFound)
	mockSender.AssertNotCalled(t, "Send")
}

func TestMailer_Send_SenderFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")
	mockSender := &MockSender{}
	mockSender.On("Send", mock.Anything, mock.Anything).Return(boom)

	err := newTestMailer(mockSender).Send(context.Background(), SendParams{
		To:       "alice@example.com",
		Template: "welcome.md",
		Data:     map[string]string{"Name": "Alice"},
	})

	require.ErrorIs(t, err, ErrSendFailed)
	require.ErrorIs(t, err, boom)
}

func TestMailer_Send_SubjectResolution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		subject  string
		want     string
	}{
		{"params override", "welcome.md", "Hi {{.Name}}", "Hi Alice"},
		{"frontmatter", "welcome.md", "", "Welcome Alice"},
		{"config fallback", "plain.md", "", "Notification"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got *Email
			sender := SenderFunc(func(_ context.Context, e *Email) error {
				got = e
				return nil
			})

			err := newTestMailer(sender).Send(context.Background(), SendParams{
				To:       "alice@example.com",
				Template: tt.template,
				Subject:  tt.subject,
				Data:     map[string]string{"Name": "Alice"},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Subject)
		})
	}
}

func TestMailer_Send_SubjectTemplatingError(t *testing.T) {
	t.Parallel()

	mockSender := &MockSender{}
	err := newTestMailer(mockSender).Send(context.Background(), SendParams{
		To:       "alice@example.com",
		Template: "plain.md",
		Subject:  "{{.Name",
	})

	require.ErrorIs(t, err, ErrRenderFailed)
	mockSender.AssertNotCalled(t, "Send")
}

func TestMailer_Send_PassesOptionalFields(t *testing.T) {
	t.Parallel()

	var got *Email
	sender := SenderFunc(func(_ context.Context, e *Email) error {
		got = e
		return nil
	})

	att := Attachment{Filename: "JANE_DOE.pdf", ContentType: "application/pdf", Content: []byte("%PDF-")}
	err := newTestMailer(sender).Send(context.Background(), SendParams{
		To:          "jane@example.com",
		Template:    "plain.md",
		Layout:      "alt.html",
		From:        "org@example.com",
		ReplyTo:     "reply@example.com",
		Tags:        Tags{"batch_id": "b1"},
		Attachments: []Attachment{att},
	})

	require.NoError(t, err)
	assert.Equal(t, "org@example.com", got.From)
	assert.Equal(t, "reply@example.com", got.ReplyTo)
	assert.Equal(t, "b1", got.Tags["batch_id"])
	assert.Equal(t, []Attachment{att}, got.Attachments)
	assert.Contains(t, got.HTML, `<div class="alt">`)
}

func TestMailer_SendRaw_Validation(t *testing.T) {
	t.Parallel()

	m := newTestMailer(&MockSender{})
	ctx := context.Background()

	require.ErrorIs(t, m.SendRaw(ctx, &Email{Subject: "s", Text: "t"}), ErrNoRecipient)
	require.ErrorIs(t, m.SendRaw(ctx, &Email{To: []string{"a@b.c"}, Text: "t"}), ErrNoSubject)
	require.ErrorIs(t, m.SendRaw(ctx, &Email{To: []string{"a@b.c"}, Subject: "s"}), ErrNoContent)
}

func TestMailer_SendRaw_TextOnly(t *testing.T) {
	t.Parallel()

	mockSender := &MockSender{}
	mockSender.On("Send", mock.Anything, mock.Anything).Return(nil)

	err := newTestMailer(mockSender).SendRaw(context.Background(), &Email{
		To:      []string{"a@b.c"},
		Subject: "s",
		Text:    "plain body",
	})
	require.NoError(t, err)
	mockSender.AssertNumberOfCalls(t, "Send", 1)
}

func TestDefaultTemplates_Certificate(t *testing.T) {
	t.Parallel()

	var got *Email
	sender := SenderFunc(func(_ context.Context, e *Email) error {
		got = e
		return nil
	})
	m := New(sender, NewRenderer(DefaultTemplates()), Config{DefaultLayout: "base.html"})

	err := m.Send(context.Background(), SendParams{
		To:       "jane@x.com",
		Template: CertificateTemplate,
		Data:     map[string]string{"Name": "JANE DOE"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Your Certificate", got.Subject)
	assert.Equal(t, "Dear JANE DOE,\n\nPlease find your certificate attached.\n\nRegards.\n", got.Text)
	assert.Contains(t, got.HTML, "<p>Dear JANE DOE,</p>")
}

func TestDefaultTemplates_CertificateLiteralName(t *testing.T) {
	t.Parallel()

	m := New(SenderFunc(func(context.Context, *Email) error { return nil }),
		NewRenderer(DefaultTemplates()), Config{DefaultLayout: "base.html"})

	tests := []struct {
		name     string
		wantHTML string
		denyHTML string
	}{
		{"*JANE* DOE", "<p>Dear *JANE* DOE,</p>", "<em>"},
		{"<ANNA> LEE", "<p>Dear &lt;ANNA&gt; LEE,</p>", "<ANNA>"},
		{"JOHN [DOE](HTTP://EVIL.EXAMPLE)", "<p>Dear JOHN [DOE](HTTP://EVIL.EXAMPLE),</p>", "<a"},
		{"__MARY__ `SMITH`", "<p>Dear __MARY__ `SMITH`,</p>", "<strong>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			email, err := m.Compose(SendParams{
				To:       "x@example.com",
				Template: CertificateTemplate,
				Data:     map[string]string{"Name": tt.name},
			})
			require.NoError(t, err)
			assert.Contains(t, email.HTML, tt.wantHTML)
			assert.NotContains(t, email.HTML, tt.denyHTML)
			assert.NotContains(t, email.HTML, `\`)
			assert.True(t, strings.HasPrefix(email.Text, "Dear "+tt.name+",\n"), email.Text)
		})
	}
}

func TestMailer_Compose(t *testing.T) {
	t.Parallel()

	mockSender := &MockSender{}
	m := newTestMailer(mockSender)

	email, err := m.Compose(SendParams{
		To:       "eve@example.com",
		Template: "welcome.md",
		Data:     map[string]string{"Name": `<img src=x onerror=alert(1)>`},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"eve@example.com"}, email.To)
	assert.NotContains(t, email.HTML, "onerror")
	assert.NotContains(t, email.HTML, "<img")
	mockSender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)

	_, err = m.Compose(SendParams{Template: "welcome.md"})
	require.ErrorIs(t, err, ErrNoRecipient)
}
