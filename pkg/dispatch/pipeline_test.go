package dispatch_test

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/artifact"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/certificate"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/dispatch"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/history"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/mailer"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/recipient"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/storage"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/validator"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)

type fakeSender struct {
	mu      sync.Mutex
	sent    []*mailer.Email
	failFor map[string]error
	creds   []dispatch.Credentials
}

func (f *fakeSender) factory(c dispatch.Credentials) mailer.Sender {
	f.mu.Lock()
	f.creds = append(f.creds, c)
	f.mu.Unlock()
	return f
}

func (f *fakeSender) Send(_ context.Context, e *mailer.Email) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failFor[e.To[0]]; err != nil {
		return err
	}
	f.sent = append(f.sent, e)
	return nil
}

type env struct {
	outDir    string
	ledger    *history.Ledger
	sender    *fakeSender
	pipeline  *dispatch.Pipeline
	templates string
	fonts     string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	root := t.TempDir()

	e := &env{
		outDir:    filepath.Join(root, "generated_certificates"),
		templates: filepath.Join(root, "templates"),
		fonts:     filepath.Join(root, "fonts"),
		ledger:    history.NewLedger(filepath.Join(root, "sent_history.xlsx")),
		sender:    &fakeSender{failFor: map[string]error{}},
	}
	require.NoError(t, os.MkdirAll(e.templates, 0o755))
	require.NoError(t, os.MkdirAll(e.fonts, 0o755))
	writeTemplate(t, filepath.Join(e.templates, "award.png"))
	require.NoError(t, os.WriteFile(filepath.Join(e.fonts, "arial.ttf"), goregular.TTF, 0o644))

	local, err := storage.NewLocal(e.outDir)
	require.NoError(t, err)

	e.pipeline, err = dispatch.New(dispatch.Config{
		TemplatesDir:    e.templates,
		FontsDir:        e.fonts,
		Store:           artifact.NewStore(local),
		Ledger:          e.ledger,
		NewSender:       e.sender.factory,
		RendererOptions: []certificate.Option{certificate.WithFontSize(20), certificate.WithOffsetY(40)},
		Clock:           func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return e
}

func writeTemplate(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 320, 120))
	for y := range 120 {
		for x := range 320 {
			img.Set(x, y, color.White)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func (e *env) outputs(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(e.outDir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, en := range entries {
		names = append(names, en.Name())
	}
	return names
}

func creds() dispatch.Credentials {
	return dispatch.Credentials{Address: "org@example.com", Secret: "app-password"}
}

func csvSource(body string) recipient.Source {
	return recipient.Source{File: strings.NewReader(body), Filename: "people.csv"}
}

func TestPipeline_SendSingleRecipient(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	ctx := context.Background()

	res, err := e.pipeline.Run(ctx, dispatch.Batch{
		Credentials: creds(),
		Template:    "award.png",
		Source:      recipient.Source{ManualName: "Jane Doe", ManualEmail: " jane@x.com "},
		Mode:        dispatch.ModeSend,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.BatchID)
	assert.Equal(t, 1, res.Sent)
	assert.Empty(t, res.Warnings)
	assert.Empty(t, res.PreviewPath)
	assert.Equal(t, "Successfully sent 1 certificate(s).", res.Summary())
	assert.Equal(t, []string{"JANE_DOE.pdf"}, e.outputs(t))

	require.Len(t, e.sender.sent, 1)
	msg := e.sender.sent[0]
	assert.Equal(t, []string{"jane@x.com"}, msg.To)
	assert.Equal(t, "Your Certificate", msg.Subject)
	assert.Contains(t, msg.Text, "Dear JANE DOE,")
	assert.Equal(t, res.BatchID, msg.Tags["batch_id"])
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "JANE_DOE.pdf", msg.Attachments[0].Filename)
	assert.True(t, strings.HasPrefix(string(msg.Attachments[0].Content), "%PDF-"))
	assert.Equal(t, []dispatch.Credentials{creds()}, e.sender.creds)

	entries, err := e.ledger.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []history.Entry{{Name: "JANE DOE", Email: "jane@x.com", SentAt: fixedNow}}, entries)
}

func TestPipeline_InvalidEmailIsSkipped(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	ctx := context.Background()

	res, err := e.pipeline.Run(ctx, dispatch.Batch{
		Credentials: creds(),
		Template:    "award.png",
		Source:      csvSource("NAME,GMAIL\nA,bad-email\nB,b@x.com\n"),
		Mode:        dispatch.ModeSend,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Sent)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, dispatch.WarningInvalidEmail, res.Warnings[0].Kind)
	assert.Equal(t, "Invalid email format: bad-email", res.Warnings[0].Message)
	assert.Equal(t, []string{"B.pdf"}, e.outputs(t))

	entries, err := e.ledger.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "B", entries[0].Name)
}

func TestPipeline_PreviewStopsAfterFirst(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	res, err := e.pipeline.Run(context.Background(), dispatch.Batch{
		Credentials: creds(),
		Template:    "award.png",
		Source:      csvSource("NAME,GMAIL\nnot valid,nope\nAnn,ann@x.com\nBob,bob@x.com\n"),
		Mode:        dispatch.ModePreview,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, res.Sent)
	assert.True(t, strings.HasSuffix(res.PreviewPath, "/ANN.png"), res.PreviewPath)
	assert.FileExists(t, filepath.FromSlash(res.PreviewPath))
	assert.ElementsMatch(t, []string{"ANN.pdf", "ANN.png"}, e.outputs(t))
	require.Len(t, res.Warnings, 1)

	assert.Empty(t, e.sender.sent)
	assert.Empty(t, e.sender.creds)
	assert.False(t, e.ledger.Exists())
}

func TestPipeline_PreviewWithoutValidRecipient(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	res, err := e.pipeline.Run(context.Background(), dispatch.Batch{
		Credentials: creds(),
		Template:    "award.png",
		Source:      recipient.Source{ManualName: "X", ManualEmail: "broken"},
		Mode:        dispatch.ModePreview,
	})
	require.NoError(t, err)
	assert.Empty(t, res.PreviewPath)
	assert.Equal(t, "No preview generated.", res.Summary())
	assert.False(t, e.ledger.Exists())
}

func TestPipeline_MissingColumnWritesNothing(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	res, err := e.pipeline.Run(context.Background(), dispatch.Batch{
		Credentials: creds(),
		Template:    "award.png",
		Source:      csvSource("NAME,EMAIL\nJane,jane@x.com\n"),
		Mode:        dispatch.ModeSend,
	})
	require.ErrorIs(t, err, dispatch.ErrConfiguration)
	require.ErrorIs(t, err, recipient.ErrMissingColumns)
	assert.Nil(t, res)
	assert.Empty(t, e.outputs(t))
	assert.False(t, e.ledger.Exists())
}

func TestPipeline_SendFailureIsPerRecipient(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	e.sender.failFor["a@x.com"] = errors.New("535 authentication failed")
	ctx := context.Background()

	res, err := e.pipeline.Run(ctx, dispatch.Batch{
		Credentials: creds(),
		Template:    "award.png",
		Source:      csvSource("NAME,GMAIL\nA,a@x.com\nB,b@x.com\n"),
		Mode:        dispatch.ModeSend,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Sent)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, dispatch.WarningSendFailed, res.Warnings[0].Kind)
	assert.True(t, strings.HasPrefix(res.Warnings[0].Message, "Failed to send to a@x.com: "))
	assert.Contains(t, res.Warnings[0].Message, "535 authentication failed")

	// The artifact exists even though its send failed.
	assert.ElementsMatch(t, []string{"A.pdf", "B.pdf"}, e.outputs(t))

	entries, err := e.ledger.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b@x.com", entries[0].Email)
	assert.Len(t, e.sender.creds, 1, "one sender per batch")
}

func TestPipeline_ConfigurationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		batch dispatch.Batch
		field string
	}{
		{
			name:  "missing credentials",
			batch: dispatch.Batch{Template: "award.png", Mode: dispatch.ModeSend, Source: recipient.Source{ManualName: "A", ManualEmail: "a@x.com"}},
			field: "credentials",
		},
		{
			name:  "missing template",
			batch: dispatch.Batch{Credentials: creds(), Mode: dispatch.ModeSend, Source: recipient.Source{ManualName: "A", ManualEmail: "a@x.com"}},
			field: "template",
		},
		{
			name:  "template outside directory",
			batch: dispatch.Batch{Credentials: creds(), Template: "../award.png", Mode: dispatch.ModeSend, Source: recipient.Source{ManualName: "A", ManualEmail: "a@x.com"}},
			field: "template",
		},
		{
			name:  "unknown mode",
			batch: dispatch.Batch{Credentials: creds(), Template: "award.png", Mode: "dry-run", Source: recipient.Source{ManualName: "A", ManualEmail: "a@x.com"}},
			field: "mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newEnv(t)
			_, err := e.pipeline.Run(context.Background(), tt.batch)
			require.ErrorIs(t, err, dispatch.ErrConfiguration)

			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.True(t, verrs.Has(tt.field), verrs.Error())
			assert.Empty(t, e.outputs(t))
		})
	}
}

func TestPipeline_NoRecipients(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	_, err := e.pipeline.Run(context.Background(), dispatch.Batch{
		Credentials: creds(),
		Template:    "award.png",
		Source:      recipient.Source{ManualName: "Only Name"},
		Mode:        dispatch.ModeSend,
	})
	require.ErrorIs(t, err, dispatch.ErrConfiguration)
	require.ErrorIs(t, err, recipient.ErrNoRecipients)
}

func TestPipeline_RenderingErrorAborts(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	_, err := e.pipeline.Run(context.Background(), dispatch.Batch{
		Credentials: creds(),
		Template:    "award.png",
		Font:        "missing.ttf",
		Source:      csvSource("NAME,GMAIL\nA,a@x.com\nB,b@x.com\n"),
		Mode:        dispatch.ModeSend,
	})
	require.ErrorIs(t, err, dispatch.ErrRendering)
	require.ErrorIs(t, err, certificate.ErrFont)
	assert.Empty(t, e.outputs(t))
	assert.Empty(t, e.sender.sent)
	assert.False(t, e.ledger.Exists())
}

func TestPipeline_BadFontIgnoredWithoutValidRecipients(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	res, err := e.pipeline.Run(context.Background(), dispatch.Batch{
		Credentials: creds(),
		Template:    "award.png",
		Font:        "missing.ttf",
		Source:      recipient.Source{ManualName: "A", ManualEmail: "not-an-email"},
		Mode:        dispatch.ModeSend,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Sent)
	assert.Len(t, res.Warnings, 1)
	// The ledger is still written once per send batch.
	assert.True(t, e.ledger.Exists())
}

func TestPipeline_HistoryFailureKeepsResult(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	require.NoError(t, os.WriteFile(e.ledger.Path(), []byte("garbage"), 0o644))

	res, err := e.pipeline.Run(context.Background(), dispatch.Batch{
		Credentials: creds(),
		Template:    "award.png",
		Source:      recipient.Source{ManualName: "Jane Doe", ManualEmail: "jane@x.com"},
		Mode:        dispatch.ModeSend,
	})
	require.ErrorIs(t, err, dispatch.ErrHistory)
	require.ErrorIs(t, err, history.ErrCorrupt)
	require.NotNil(t, res)
	assert.Equal(t, 1, res.Sent)
	assert.Len(t, e.sender.sent, 1)
}

func TestNew_RequiresCollaborators(t *testing.T) {
	t.Parallel()

	_, err := dispatch.New(dispatch.Config{})
	require.Error(t, err)
}
