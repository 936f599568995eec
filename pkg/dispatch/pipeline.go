package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/artifact"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/certificate"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/history"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/logger"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/mailer"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/recipient"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/validator"
)

// DefaultFont is used when a batch does not name a font.
const DefaultFont = "arial.ttf"

// SenderFactory builds a Sender for one batch's credentials.
type SenderFactory func(Credentials) mailer.Sender

// Config holds everything a Pipeline needs. Nothing is read from globals.
type Config struct {
	TemplatesDir string
	FontsDir     string
	DefaultFont  string

	Store     *artifact.Store
	Ledger    *history.Ledger
	NewSender SenderFactory

	// EmailTemplates defaults to mailer.DefaultTemplates().
	EmailTemplates fs.FS
	Mailer         mailer.Config

	RendererOptions []certificate.Option

	// Clock defaults to time.Now.
	Clock  func() time.Time
	Logger *slog.Logger
}

// Pipeline runs batches against one Config.
type Pipeline struct {
	cfg      Config
	renderer *mailer.Renderer
	log      *slog.Logger
}

// New validates cfg and returns a Pipeline.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Store == nil || cfg.Ledger == nil || cfg.NewSender == nil {
		return nil, errors.New("dispatch: store, ledger and sender factory are required")
	}
	if cfg.DefaultFont == "" {
		cfg.DefaultFont = DefaultFont
	}
	if cfg.EmailTemplates == nil {
		cfg.EmailTemplates = mailer.DefaultTemplates()
	}
	if cfg.Mailer.DefaultLayout == "" {
		cfg.Mailer.DefaultLayout = "base.html"
	}
	if cfg.Mailer.FallbackSubject == "" {
		cfg.Mailer.FallbackSubject = "Your Certificate"
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNope()
	}

	return &Pipeline{
		cfg:      cfg,
		renderer: mailer.NewRenderer(cfg.EmailTemplates),
		log:      cfg.Logger,
	}, nil
}

// Run executes batch. Recipients are handled strictly in order.
//
// A non-nil error means the batch was aborted, except for ErrHistory: then all
// sends have happened, the ledger could not be updated, and Result is returned
// alongside the error.
func (p *Pipeline) Run(ctx context.Context, batch Batch) (*Result, error) {
	res := &Result{
		BatchID:  uuid.NewString(),
		Mode:     batch.Mode,
		Warnings: []Warning{},
	}
	ctx = logger.WithBatchID(ctx, res.BatchID)

	if err := batch.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	recipients, err := recipient.Resolve(batch.Source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	font := batch.Font
	if font == "" {
		font = p.cfg.DefaultFont
	}
	cert := certificate.NewRenderer(
		filepath.Join(p.cfg.TemplatesDir, batch.Template),
		filepath.Join(p.cfg.FontsDir, font),
		p.cfg.RendererOptions...,
	)

	p.log.InfoContext(ctx, "batch started",
		slog.String("mode", string(batch.Mode)),
		slog.String("template", batch.Template),
		slog.String("font", font),
		slog.Int("recipients", len(recipients)),
	)

	preview := batch.Mode == ModePreview
	var (
		m       *mailer.Mailer
		pending []history.Entry
	)

	for _, candidate := range recipients {
		r := recipient.Normalize(candidate)

		if !validator.IsEmail(r.Email) {
			w := invalidEmail(r)
			p.log.WarnContext(ctx, "skipping recipient", slog.String("email", r.Email), slog.String("reason", string(w.Kind)))
			res.Warnings = append(res.Warnings, w)
			continue
		}

		img, err := cert.Render(r.Name)
		if err != nil {
			p.log.ErrorContext(ctx, "batch aborted", slog.String("error", err.Error()))
			return nil, fmt.Errorf("%w: %w", ErrRendering, err)
		}

		paths, err := p.cfg.Store.Save(ctx, img, r.Name, preview)
		if err != nil {
			p.log.ErrorContext(ctx, "batch aborted", slog.String("error", err.Error()))
			return nil, fmt.Errorf("%w: %w", ErrArtifact, err)
		}

		if preview {
			res.PreviewPath = filepath.ToSlash(paths.Preview)
			p.log.InfoContext(ctx, "preview generated", slog.String("path", res.PreviewPath))
			return res, nil
		}

		if m == nil {
			m = mailer.New(p.cfg.NewSender(batch.Credentials), p.renderer, p.cfg.Mailer)
		}
		if err := p.send(ctx, m, res.BatchID, r, paths.Document); err != nil {
			p.log.WarnContext(ctx, "send failed", slog.String("email", r.Email), slog.String("error", err.Error()))
			res.Warnings = append(res.Warnings, sendFailed(r, err))
			continue
		}

		pending = append(pending, history.Entry{Name: r.Name, Email: r.Email, SentAt: p.cfg.Clock()})
		p.log.InfoContext(ctx, "certificate sent", slog.String("email", r.Email))
	}

	if preview {
		return res, nil
	}

	res.Sent = len(pending)
	if err := p.cfg.Ledger.MergeAndFlush(ctx, pending); err != nil {
		p.log.ErrorContext(ctx, "history flush failed", slog.String("error", err.Error()))
		return res, fmt.Errorf("%w: %w", ErrHistory, err)
	}

	p.log.InfoContext(ctx, "batch finished",
		slog.Int("sent", res.Sent),
		slog.Int("warnings", len(res.Warnings)),
	)
	return res, nil
}

func (p *Pipeline) send(ctx context.Context, m *mailer.Mailer, batchID string, r recipient.Recipient, document string) error {
	att, err := mailer.AttachmentFromFile(document)
	if err != nil {
		return err
	}
	return m.Send(ctx, mailer.SendParams{
		To:          r.Email,
		Template:    mailer.CertificateTemplate,
		Data:        map[string]string{"Name": r.Name},
		Tags:        mailer.Tags{"batch_id": batchID},
		Attachments: []mailer.Attachment{att},
	})
}
