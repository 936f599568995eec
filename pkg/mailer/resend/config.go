package resend

// Config holds Resend settings shared by every batch.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	// SenderName is shown in the From header when set.
	SenderName string `env:"RESEND_FROM_NAME"`
}
