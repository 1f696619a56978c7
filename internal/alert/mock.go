package alert

import (
	"context"
	"strings"
	"sync"
)

// Mock captures alerts for tests.
type Mock struct {
	mu   sync.Mutex
	sent []Captured
	fail error
}

// Captured is one alert recorded by a Mock.
type Captured struct {
	Severity Severity
	Message  string
	Fields   []any
}

// NewMock creates a capturing notifier.
func NewMock() *Mock {
	return &Mock{}
}

// Name returns the name of the notifier.
func (m *Mock) Name() string {
	return "mock"
}

// Fail makes every subsequent Notify return err.
func (m *Mock) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
}

// Notify records the alert.
func (m *Mock) Notify(_ context.Context, severity Severity, message string, fields ...any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, Captured{Severity: severity, Message: message, Fields: fields})
	return nil
}

// Alerts returns all captured alerts.
func (m *Mock) Alerts() []Captured {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Captured, len(m.sent))
	copy(out, m.sent)
	return out
}

// Count returns the number of captured alerts.
func (m *Mock) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// Clear drops all captured alerts.
func (m *Mock) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = m.sent[:0]
}

// HasSeverity reports whether an alert with the severity was captured.
func (m *Mock) HasSeverity(severity Severity) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.sent {
		if a.Severity == severity {
			return true
		}
	}
	return false
}

// HasMessageContaining reports whether any captured message contains
// the substring.
func (m *Mock) HasMessageContaining(substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.sent {
		if strings.Contains(a.Message, substr) {
			return true
		}
	}
	return false
}

// Last returns the most recent captured alert, or nil if none.
func (m *Mock) Last() *Captured {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return nil
	}
	last := m.sent[len(m.sent)-1]
	return &last
}
