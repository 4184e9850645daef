package notify

import (
	"context"

	"go.uber.org/zap"
)

// Notifier delivers an out-of-band message to a destination. The
// production wiring logs instead of sending; a real transport (SMTP,
// SendGrid, webhook) slots in behind the same interface.
type Notifier interface {
	Send(ctx context.Context, destination, subject, body string) error
}

// LogNotifier writes every message to the service log. It stands in
// for email delivery.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(ctx context.Context, destination, subject, body string) error {
	n.logger.Info("Sending notification",
		zap.String("destination", destination),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
