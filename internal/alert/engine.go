package alert

import (
	"context"
	"errors"
	"fmt"

	"github.com/tathienbao/quant-ta/internal/config"
	"github.com/tathienbao/quant-ta/internal/observer"
)

// Rule is one threshold over a panel column. A value above Above or
// below Below breaches the rule.
type Rule struct {
	Column   string
	Above    *float64
	Below    *float64
	Severity Severity
}

// breached reports whether v violates the rule.
func (r Rule) breached(v float64) bool {
	if r.Above != nil && v > *r.Above {
		return true
	}
	if r.Below != nil && v < *r.Below {
		return true
	}
	return false
}

// describe renders the breach message for a value.
func (r Rule) describe(v float64) string {
	if r.Above != nil && v > *r.Above {
		return fmt.Sprintf("%s = %.4f above %.4f", r.Column, v, *r.Above)
	}
	if r.Below != nil && v < *r.Below {
		return fmt.Sprintf("%s = %.4f below %.4f", r.Column, v, *r.Below)
	}
	return fmt.Sprintf("%s = %.4f back in range", r.Column, v)
}

// RulesFromConfig maps configured rules to engine rules.
func RulesFromConfig(rules []config.RuleConfig) ([]Rule, error) {
	out := make([]Rule, 0, len(rules))
	for i, rc := range rules {
		severity, err := ParseSeverity(rc.Severity)
		if err != nil {
			return nil, fmt.Errorf("alerts.rules[%d]: %w", i, err)
		}
		out = append(out, Rule{
			Column:   rc.Column,
			Above:    rc.Above,
			Below:    rc.Below,
			Severity: severity,
		})
	}
	return out, nil
}

// Engine evaluates rules against snapshots and notifies on breach
// transitions: once when a rule enters breach, and once, at info
// level, when it leaves.
type Engine struct {
	notifier Notifier
	rules    []Rule
	active   []bool
}

// NewEngine creates an engine delivering through the given notifier.
func NewEngine(notifier Notifier, rules []Rule) *Engine {
	return &Engine{
		notifier: notifier,
		rules:    rules,
		active:   make([]bool, len(rules)),
	}
}

// Observe checks every rule against the snapshot. Columns that are
// missing or not yet warmed up are skipped without touching rule
// state. Notification failures are joined into one error.
func (e *Engine) Observe(ctx context.Context, snap observer.Snapshot) error {
	var errs []error

	for i := range e.rules {
		rule := &e.rules[i]
		cv, ok := snap.Value(rule.Column)
		if !ok || !cv.Ready {
			continue
		}

		breached := rule.breached(cv.Value)
		switch {
		case breached && !e.active[i]:
			e.active[i] = true
			err := e.notifier.Notify(ctx, rule.Severity, rule.describe(cv.Value),
				"column", rule.Column,
				"value", cv.Value,
				"symbol", snap.Symbol,
				"seq", snap.Seq,
			)
			if err != nil {
				errs = append(errs, err)
			}
		case !breached && e.active[i]:
			e.active[i] = false
			err := e.notifier.Notify(ctx, SeverityInfo, rule.describe(cv.Value),
				"column", rule.Column,
				"value", cv.Value,
				"symbol", snap.Symbol,
				"seq", snap.Seq,
			)
			if err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errors.Join(errs...)
}

// ActiveBreaches returns the columns currently in breach.
func (e *Engine) ActiveBreaches() []string {
	var out []string
	for i, rule := range e.rules {
		if e.active[i] {
			out = append(out, rule.Column)
		}
	}
	return out
}
