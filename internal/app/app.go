// Package app builds the application components from a loaded Config.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/internal/config"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/internal/server"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/artifact"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/catalog"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/dispatch"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/health"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/history"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/logger"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/mailer"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/mailer/resend"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/mailer/smtp"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/storage"
)

const sentryFlushTimeout = 2 * time.Second

// App holds the wired components shared by the CLI and the HTTP server.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Catalog  *catalog.Catalog
	Ledger   *history.Ledger
	Store    *artifact.Store
	Pipeline *dispatch.Pipeline

	shutdownHooks []func(context.Context) error
}

// Option configures New.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	newSender dispatch.SenderFactory
}

// WithLogger replaces the logger built from Config.Log.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSenderFactory replaces the provider selected by Config.MailerProvider.
func WithSenderFactory(f dispatch.SenderFactory) Option {
	return func(o *options) {
		if f != nil {
			o.newSender = f
		}
	}
}

// New creates directories, storage, the ledger and the pipeline.
func New(cfg config.Config, opts ...Option) (*App, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	a := &App{Config: cfg, Logger: o.logger}
	if a.Logger == nil {
		a.Logger = logger.New(cfg.Log, logger.BatchIDExtractor(), server.RequestIDExtractor())
		if cfg.Log.SentryDSN != "" {
			a.OnShutdown(func(context.Context) error {
				sentry.Flush(sentryFlushTimeout)
				return nil
			})
		}
	}

	local, err := storage.NewLocal(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("app: output directory: %w", err)
	}

	storeOpts := []artifact.Option{artifact.WithLogger(a.Logger)}
	if cfg.Mirror.Enabled() {
		mirror, err := storage.NewS3(cfg.Mirror)
		if err != nil {
			return nil, fmt.Errorf("app: certificate mirror: %w", err)
		}
		storeOpts = append(storeOpts, artifact.WithMirror(mirror))
		a.Logger.Info("certificate mirror enabled", slog.String("bucket", cfg.Mirror.Bucket))
	}
	a.Store = artifact.NewStore(local, storeOpts...)

	a.Catalog, err = catalog.New(cfg.TemplatesDir, cfg.FontsDir, catalog.WithMaxUploadSize(cfg.MaxUploadSize))
	if err != nil {
		return nil, fmt.Errorf("app: catalog: %w", err)
	}

	a.Ledger = history.NewLedger(cfg.HistoryPath)

	newSender := o.newSender
	if newSender == nil {
		newSender = SenderFactory(cfg)
	}

	a.Pipeline, err = dispatch.New(dispatch.Config{
		TemplatesDir: cfg.TemplatesDir,
		FontsDir:     cfg.FontsDir,
		DefaultFont:  cfg.DefaultFont,
		Store:        a.Store,
		Ledger:       a.Ledger,
		NewSender:    newSender,
		Mailer:       cfg.Mailer,
		Logger:       a.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("app: pipeline: %w", err)
	}

	return a, nil
}

// SenderFactory returns the mail provider chosen by cfg.MailerProvider.
// Batch credentials are the SMTP login for "smtp" and the sender address plus API key for "resend".
func SenderFactory(cfg config.Config) dispatch.SenderFactory {
	if cfg.MailerProvider == config.ProviderResend {
		return func(c dispatch.Credentials) mailer.Sender {
			return resend.New(cfg.Resend, c.Address, c.Secret)
		}
	}
	return func(c dispatch.Credentials) mailer.Sender {
		return smtp.New(cfg.SMTP, c.Address, c.Secret)
	}
}

// Checks are the readiness checks for the configured directories and default font.
func (a *App) Checks() health.Checks {
	return health.Checks{
		"output_dir":    health.DirWritable(a.Config.OutputDir),
		"templates_dir": health.DirWritable(a.Config.TemplatesDir),
		"default_font":  health.FileExists(a.Catalog.FontPath(a.Config.DefaultFont)),
	}
}

// Server builds the HTTP server over the app's components.
func (a *App) Server() *server.Server {
	return server.New(server.Deps{
		Pipeline:  a.Pipeline,
		Catalog:   a.Catalog,
		Ledger:    a.Ledger,
		OutputDir: a.Config.OutputDir,
		Checks:    a.Checks(),
	},
		server.WithLogger(a.Logger),
		server.WithAddress(a.Config.Addr),
		server.WithShutdownTimeout(a.Config.ShutdownTimeout),
		server.WithMaxUploadSize(a.Config.MaxUploadSize),
	)
}

// OnShutdown registers fn to run from Shutdown. Hooks run in registration order.
func (a *App) OnShutdown(fn func(context.Context) error) {
	if fn != nil {
		a.shutdownHooks = append(a.shutdownHooks, fn)
	}
}

// Shutdown runs the registered hooks and returns the first error.
func (a *App) Shutdown(ctx context.Context) error {
	var first error
	for _, fn := range a.shutdownHooks {
		if err := fn(ctx); err != nil {
			a.Logger.ErrorContext(ctx, "shutdown hook failed", slog.String("error", err.Error()))
			if first == nil {
				first = err
			}
		}
	}
	return first
}
