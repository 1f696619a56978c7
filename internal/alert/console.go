package alert

import (
	"context"
	"log/slog"
)

// Console logs alerts using slog. Useful for development and for
// line-mode streaming.
type Console struct {
	logger *slog.Logger
}

// NewConsole creates a console notifier.
func NewConsole(logger *slog.Logger) *Console {
	if logger == nil {
		logger = slog.Default()
	}
	return &Console{logger: logger}
}

// Name returns the name of the notifier.
func (c *Console) Name() string {
	return "console"
}

// Notify logs the alert at a level matching its severity.
func (c *Console) Notify(ctx context.Context, severity Severity, message string, fields ...any) error {
	attrs := make([]any, 0, len(fields)+2)
	attrs = append(attrs, "severity", severity.String())
	attrs = append(attrs, fields...)

	switch severity {
	case SeverityCritical:
		c.logger.Error("[ALERT] "+message, attrs...)
	case SeverityHigh, SeverityWarning:
		c.logger.Warn("[ALERT] "+message, attrs...)
	default:
		c.logger.Info("[ALERT] "+message, attrs...)
	}

	return nil
}
