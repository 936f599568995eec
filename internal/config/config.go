// Package config loads application settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/logger"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/mailer"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/mailer/resend"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/mailer/smtp"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/storage"
)

// Mail providers.
const (
	ProviderSMTP   = "smtp"
	ProviderResend = "resend"
)

// ErrInvalid is returned when a loaded value is out of range.
var ErrInvalid = errors.New("config: invalid value")

// Config is the full application configuration.
type Config struct {
	TemplatesDir string `env:"AUTOCERTIFY_TEMPLATES_DIR" envDefault:"static/certificate_templates"`
	FontsDir     string `env:"AUTOCERTIFY_FONTS_DIR" envDefault:"fonts"`
	OutputDir    string `env:"AUTOCERTIFY_OUTPUT_DIR" envDefault:"generated_certificates"`
	HistoryPath  string `env:"AUTOCERTIFY_HISTORY_PATH" envDefault:"sent_history.xlsx"`
	DefaultFont  string `env:"AUTOCERTIFY_DEFAULT_FONT" envDefault:"arial.ttf"`

	Addr            string        `env:"AUTOCERTIFY_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"AUTOCERTIFY_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	MaxUploadSize   int64         `env:"AUTOCERTIFY_MAX_UPLOAD_SIZE" envDefault:"20971520"`

	MailerProvider string `env:"MAILER_PROVIDER" envDefault:"smtp"`

	Log    logger.Config
	Mailer mailer.Config
	SMTP   smtp.Config
	Resend resend.Config

	// Mirror is the optional S3 copy of generated certificates.
	Mirror storage.Config
}

// Load reads .env files (missing files are ignored) and then the process
// environment. Variables already set in the environment win over .env values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that env parsing cannot.
func (c *Config) Validate() error {
	c.MailerProvider = strings.ToLower(strings.TrimSpace(c.MailerProvider))
	switch c.MailerProvider {
	case ProviderSMTP, ProviderResend:
	default:
		return fmt.Errorf("%w: MAILER_PROVIDER must be %q or %q, got %q", ErrInvalid, ProviderSMTP, ProviderResend, c.MailerProvider)
	}

	switch c.SMTP.TLSMode {
	case smtp.TLSModeAuto, smtp.TLSModeStartTLS, smtp.TLSModeSSL, smtp.TLSModeNone:
	default:
		return fmt.Errorf("%w: SMTP_TLS_MODE %q", ErrInvalid, c.SMTP.TLSMode)
	}

	for name, v := range map[string]string{
		"AUTOCERTIFY_TEMPLATES_DIR": c.TemplatesDir,
		"AUTOCERTIFY_FONTS_DIR":     c.FontsDir,
		"AUTOCERTIFY_OUTPUT_DIR":    c.OutputDir,
		"AUTOCERTIFY_HISTORY_PATH":  c.HistoryPath,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalid, name)
		}
	}
	return nil
}
