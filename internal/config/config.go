// Package config handles configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the full application configuration.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Panel   PanelConfig   `yaml:"panel"`
	Alerts  AlertsConfig  `yaml:"alerts"`
	Metrics MetricsConfig `yaml:"metrics"`
	Store   StoreConfig   `yaml:"store"`
}

// SourceConfig selects and shapes the candle source.
type SourceConfig struct {
	Type           string          `yaml:"type"` // csv | synthetic
	Path           string          `yaml:"path"`
	Symbol         string          `yaml:"symbol"`
	PaceBarsPerSec float64         `yaml:"pace_bars_per_sec"` // 0 = as fast as possible
	Synthetic      SyntheticConfig `yaml:"synthetic"`
}

// SyntheticConfig shapes the generated candle series.
type SyntheticConfig struct {
	Bars       int     `yaml:"bars"`
	Seed       int64   `yaml:"seed"`
	StartPrice float64 `yaml:"start_price"`
	Drift      float64 `yaml:"drift"`
	Volatility float64 `yaml:"volatility"`
}

// PanelConfig lists the indicator pipelines to run per candle.
type PanelConfig struct {
	WarmupBars int               `yaml:"warmup_bars"` // suppression period applied to every column
	Indicators []IndicatorConfig `yaml:"indicators"`
}

// IndicatorConfig describes one panel entry. Only the parameters the
// indicator type uses are read; the rest stay zero.
type IndicatorConfig struct {
	Type         string  `yaml:"type"`
	Period       int     `yaml:"period"`
	ShortPeriod  int     `yaml:"short_period"`
	LongPeriod   int     `yaml:"long_period"`
	SignalPeriod int     `yaml:"signal_period"`
	Smoothing    int     `yaml:"smoothing"`
	Slow         int     `yaml:"slow"`
	Multiplier   float64 `yaml:"multiplier"`
	Price        string  `yaml:"price"` // close | open | high | low | typical | mean | weighted_close
}

// AlertsConfig holds threshold alert settings.
type AlertsConfig struct {
	Enabled bool         `yaml:"enabled"`
	Rules   []RuleConfig `yaml:"rules"`
}

// RuleConfig describes one threshold rule over a panel column.
type RuleConfig struct {
	Column   string   `yaml:"column"`
	Above    *float64 `yaml:"above"`
	Below    *float64 `yaml:"below"`
	Severity string   `yaml:"severity"`
}

// MetricsConfig holds metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port"`
	Path    string `yaml:"path"`
}

// StoreConfig holds snapshot persistence settings.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// indicatorTypes are the panel entry types the observer can build.
var indicatorTypes = map[string]bool{
	"sma": true, "ema": true, "rma": true, "rsi": true,
	"macd": true, "bollinger": true, "stochastics": true,
	"aroon": true, "aroon_osc": true, "atr": true,
	"vwap": true, "vwma": true,
	"min": true, "max": true, "min_index": true, "max_index": true,
	"stddev": true,
}

// priceMappers are the accepted values for an entry's price field.
var priceMappers = map[string]bool{
	"": true, "close": true, "open": true, "high": true, "low": true,
	"typical": true, "mean": true, "weighted_close": true,
}

// severities are the accepted alert rule severities.
var severities = map[string]bool{
	"info": true, "warning": true, "high": true, "critical": true,
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes loads configuration from YAML bytes.
func LoadFromBytes(data []byte) (*Config, error) {
	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration and fills defaults. Indicator
// parameter combinations are proven later, when the panel is built.
func (c *Config) Validate() error {
	var errs []string

	// Source validation
	switch c.Source.Type {
	case "csv":
		if c.Source.Path == "" {
			errs = append(errs, "source.path is required for csv sources")
		}
		if c.Source.Symbol == "" {
			errs = append(errs, "source.symbol is required for csv sources")
		}
	case "synthetic":
		if c.Source.Symbol == "" {
			c.Source.Symbol = "SYN"
		}
		if c.Source.Synthetic.Bars <= 0 {
			c.Source.Synthetic.Bars = 500
		}
	default:
		errs = append(errs, fmt.Sprintf("source.type '%s' must be 'csv' or 'synthetic'", c.Source.Type))
	}
	if c.Source.PaceBarsPerSec < 0 {
		errs = append(errs, "source.pace_bars_per_sec must not be negative")
	}

	// Panel validation
	if c.Panel.WarmupBars < 0 {
		errs = append(errs, "panel.warmup_bars must not be negative")
	}
	if len(c.Panel.Indicators) == 0 {
		errs = append(errs, "panel.indicators must not be empty")
	}
	for i, ind := range c.Panel.Indicators {
		if !indicatorTypes[ind.Type] {
			errs = append(errs, fmt.Sprintf("panel.indicators[%d].type '%s' is not supported", i, ind.Type))
		}
		if !priceMappers[ind.Price] {
			errs = append(errs, fmt.Sprintf("panel.indicators[%d].price '%s' is not supported", i, ind.Price))
		}
	}

	// Alert validation
	if c.Alerts.Enabled {
		for i := range c.Alerts.Rules {
			rule := &c.Alerts.Rules[i]
			if rule.Column == "" {
				errs = append(errs, fmt.Sprintf("alerts.rules[%d].column is required", i))
			}
			if rule.Above == nil && rule.Below == nil {
				errs = append(errs, fmt.Sprintf("alerts.rules[%d] needs 'above' or 'below'", i))
			}
			if rule.Severity == "" {
				rule.Severity = "warning"
			} else if !severities[rule.Severity] {
				errs = append(errs, fmt.Sprintf("alerts.rules[%d].severity '%s' is not supported", i, rule.Severity))
			}
		}
	}

	// Metrics defaults
	if c.Metrics.Port <= 0 {
		c.Metrics.Port = 9090
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}

	// Store validation
	if c.Store.Enabled && c.Store.Path == "" {
		errs = append(errs, "store.path is required when store is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}

	return nil
}

// Addr returns the metrics listen address.
func (m MetricsConfig) Addr() string {
	return fmt.Sprintf(":%d", m.Port)
}
