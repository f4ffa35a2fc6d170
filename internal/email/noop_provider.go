package email

import (
	"creatorhub_backend/internal/config"
	"creatorhub_backend/internal/logger"
)

// NoopProvider logs instead of delivering. Used when email is disabled.
type NoopProvider struct{}

func (NoopProvider) Send(to, subject, body string) error {
	logger.Debug("Email delivery disabled, dropping message", "to", to, "subject", subject)
	return nil
}

// NewProvider builds the provider selected by config, falling back to the
// noop provider when delivery is disabled or misconfigured.
func NewProvider(cfg *config.Config) Provider {
	if !cfg.Email.Enabled {
		return NoopProvider{}
	}
	provider, err := NewSMTPProvider(cfg)
	if err != nil {
		logger.Warn("SMTP misconfigured, falling back to noop email provider", "error", err)
		return NoopProvider{}
	}
	return provider
}
