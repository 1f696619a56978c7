package alert

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Multi fans alerts out to several notifiers.
type Multi struct {
	mu        sync.RWMutex
	notifiers []Notifier
	logger    *slog.Logger
}

// NewMulti creates a multi-channel notifier.
func NewMulti(logger *slog.Logger, notifiers ...Notifier) *Multi {
	if logger == nil {
		logger = slog.Default()
	}
	return &Multi{notifiers: notifiers, logger: logger}
}

// Name returns the name of the notifier.
func (m *Multi) Name() string {
	return "multi"
}

// Add registers another notifier.
func (m *Multi) Add(n Notifier) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifiers = append(m.notifiers, n)
}

// Notify delivers the alert to every channel concurrently. Failures
// are logged and joined into one error.
func (m *Multi) Notify(ctx context.Context, severity Severity, message string, fields ...any) error {
	m.mu.RLock()
	notifiers := make([]Notifier, len(m.notifiers))
	copy(notifiers, m.notifiers)
	m.mu.RUnlock()

	if len(notifiers) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	errCh := make(chan error, len(notifiers))

	for _, n := range notifiers {
		wg.Add(1)
		go func(n Notifier) {
			defer wg.Done()
			if err := n.Notify(ctx, severity, message, fields...); err != nil {
				m.logger.Error("notifier failed",
					"notifier", n.Name(),
					"severity", severity.String(),
					"error", err,
				)
				errCh <- err
			}
		}(n)
	}

	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
