package notify

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/palletworks/portal/internal/config"
)

// Module wires the notification sender. Without SMTP configuration the
// sender degrades to structured log lines, which keeps local setups and
// tests free of a mail dependency.
var Module = fx.Provide(newSender)

type senderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newSender(p senderParams) (Sender, error) {
	if p.Config.SMTPHost == "" {
		p.Logger.Warn("smtp host not configured, notifications will only be logged")
		return &LogSender{logger: p.Logger}, nil
	}
	return NewSMTPSender(
		p.Config.SMTPHost,
		p.Config.SMTPPort,
		p.Config.SMTPUsername,
		p.Config.SMTPPassword,
		p.Config.SMTPFrom,
	)
}

// LogSender writes notifications to the log instead of delivering them.
type LogSender struct {
	logger *slog.Logger
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.logger.Info("notification",
		slog.String("kind", string(msg.Kind)),
		slog.String("recipient", msg.Recipient),
		slog.String("subject", subject(msg)),
	)
	return nil
}
