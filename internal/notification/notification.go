package notification

import (
	"context"
	"log/slog"
)

// Notification kinds emitted after successful transaction flows.
const (
	KindDeposit    = "deposit"
	KindWithdrawal = "withdrawal"
	KindTransfer   = "transfer"
)

// Message describes a best-effort notification about a completed operation.
type Message struct {
	Kind        string
	Destination string
	Body        string
}

// Notifier delivers notifications. Delivery failures are ignored by callers;
// notifications never affect transaction outcomes.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// LoggerNotifier writes notifications to the structured log. Stands in for a
// real push/SMS channel.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier builds a notifier backed by the application logger.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send logs the notification.
func (n *LoggerNotifier) Send(_ context.Context, msg Message) error {
	n.logger.Info("notification",
		slog.String("kind", msg.Kind),
		slog.String("destination", msg.Destination),
		slog.String("body", msg.Body),
	)
	return nil
}
