package mail_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"nearby/internal/config"
	"nearby/internal/services"
)

var Module = fx.Provide(provideMailService)

// provideMailService returns nil when SMTP is not configured.
func provideMailService(cfg *config.Config, logger *zap.Logger) services.IMailService {
	if !cfg.SMTP.Enabled() {
		logger.Info("SMTP not configured, suggestion notices are disabled")
		return nil
	}
	logger.Info("SMTP mail service enabled", zap.String("host", cfg.SMTP.Host), zap.Int("port", cfg.SMTP.Port))
	return services.NewSMTPMailService(cfg.SMTP)
}
