package smtp

import "time"

// TLS modes.
const (
	TLSModeAuto     = "auto"     // STARTTLS when the server offers it
	TLSModeStartTLS = "starttls" // STARTTLS required
	TLSModeSSL      = "ssl"      // implicit TLS, usually port 465
	TLSModeNone     = "none"     // plaintext, local relays only
)

// Config holds SMTP server settings. Credentials are supplied per Sender.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	Host               string        `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port               int           `env:"SMTP_PORT" envDefault:"587"`
	TLSMode            string        `env:"SMTP_TLS_MODE" envDefault:"starttls"`
	Timeout            time.Duration `env:"SMTP_TIMEOUT" envDefault:"30s"`
	InsecureSkipVerify bool          `env:"SMTP_INSECURE_SKIP_VERIFY"`
}
