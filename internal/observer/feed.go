// Package observer connects candle feeds to indicator panels and
// publishes one snapshot per candle.
package observer

import (
	"context"
	"fmt"

	"github.com/tathienbao/quant-ta/internal/config"
	"github.com/tathienbao/quant-ta/pkg/market"
	"golang.org/x/time/rate"
)

// feedBuffer is the channel depth feeds publish on.
const feedBuffer = 100

// CandleFeed defines the interface for candle sources.
type CandleFeed interface {
	// Subscribe starts streaming candles for a symbol. The channel is
	// closed when the source is exhausted or the context is cancelled.
	Subscribe(ctx context.Context, symbol string) (<-chan market.Candle, error)

	// Close shuts down the feed and releases resources.
	Close() error

	// Name returns the feed identifier (e.g. "csv", "synthetic").
	Name() string
}

// NewFeed builds the feed described by a source configuration.
func NewFeed(cfg config.SourceConfig) (CandleFeed, error) {
	switch cfg.Type {
	case "csv":
		return NewCSVFeed(cfg.Path, cfg.Symbol, cfg.PaceBarsPerSec), nil
	case "synthetic":
		opts := market.DefaultSyntheticOptions()
		opts.Symbol = cfg.Symbol
		if cfg.Synthetic.StartPrice > 0 {
			opts.StartPrice = cfg.Synthetic.StartPrice
		}
		if cfg.Synthetic.Drift != 0 {
			opts.Drift = cfg.Synthetic.Drift
		}
		if cfg.Synthetic.Volatility != 0 {
			opts.Volatility = cfg.Synthetic.Volatility
		}
		return NewSyntheticFeed(cfg.Synthetic.Bars, cfg.Synthetic.Seed, opts, cfg.PaceBarsPerSec), nil
	default:
		return nil, fmt.Errorf("unsupported source type: %s", cfg.Type)
	}
}

// pump streams candles for one symbol on a buffered channel, pacing
// them when pace is positive.
func pump(ctx context.Context, candles []market.Candle, symbol string, pace float64) <-chan market.Candle {
	var limiter *rate.Limiter
	if pace > 0 {
		limiter = rate.NewLimiter(rate.Limit(pace), 1)
	}

	ch := make(chan market.Candle, feedBuffer)
	go func() {
		defer close(ch)
		for _, c := range candles {
			if c.Symbol != symbol {
				continue
			}
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					return
				}
			}
			select {
			case <-ctx.Done():
				return
			case ch <- c:
			}
		}
	}()
	return ch
}

// CSVFeed streams candles parsed from a CSV file.
type CSVFeed struct {
	path    string
	symbol  string
	pace    float64
	candles []market.Candle
	loaded  bool
}

// NewCSVFeed creates a feed over a CSV file. Candles are loaded on the
// first Subscribe. A positive pace limits delivery to that many bars
// per second.
func NewCSVFeed(path, symbol string, pace float64) *CSVFeed {
	return &CSVFeed{path: path, symbol: symbol, pace: pace}
}

// Subscribe starts streaming the file's candles.
func (f *CSVFeed) Subscribe(ctx context.Context, symbol string) (<-chan market.Candle, error) {
	if !f.loaded {
		candles, err := market.ReadCSV(f.path, f.symbol)
		if err != nil {
			return nil, err
		}
		f.candles = candles
		f.loaded = true
	}
	return pump(ctx, f.candles, symbol, f.pace), nil
}

// Close releases the loaded candles.
func (f *CSVFeed) Close() error {
	f.candles = nil
	f.loaded = false
	return nil
}

// Name returns the feed identifier.
func (f *CSVFeed) Name() string { return "csv" }

// CandleCount returns the number of loaded candles.
func (f *CSVFeed) CandleCount() int { return len(f.candles) }

// SyntheticFeed streams a deterministic generated series.
type SyntheticFeed struct {
	bars    int
	seed    int64
	opts    market.SyntheticOptions
	pace    float64
	candles []market.Candle
}

// NewSyntheticFeed creates a feed over a generated series. The series
// is built once, on the first Subscribe.
func NewSyntheticFeed(bars int, seed int64, opts market.SyntheticOptions, pace float64) *SyntheticFeed {
	return &SyntheticFeed{bars: bars, seed: seed, opts: opts, pace: pace}
}

// Subscribe starts streaming the generated candles.
func (f *SyntheticFeed) Subscribe(ctx context.Context, symbol string) (<-chan market.Candle, error) {
	if f.candles == nil {
		f.candles = market.Synthetic(f.bars, f.seed, f.opts)
	}
	return pump(ctx, f.candles, symbol, f.pace), nil
}

// Close releases the generated candles.
func (f *SyntheticFeed) Close() error {
	f.candles = nil
	return nil
}

// Name returns the feed identifier.
func (f *SyntheticFeed) Name() string { return "synthetic" }

// MemoryFeed streams a fixed slice of candles. Useful for tests.
type MemoryFeed struct {
	candles []market.Candle
}

// NewMemoryFeed creates a feed over pre-built candles.
func NewMemoryFeed(candles []market.Candle) *MemoryFeed {
	return &MemoryFeed{candles: candles}
}

// Subscribe starts streaming the in-memory candles.
func (f *MemoryFeed) Subscribe(ctx context.Context, symbol string) (<-chan market.Candle, error) {
	return pump(ctx, f.candles, symbol, 0), nil
}

// Close is a no-op for memory feeds.
func (f *MemoryFeed) Close() error { return nil }

// Name returns the feed identifier.
func (f *MemoryFeed) Name() string { return "memory" }

// AddCandle appends a candle to the feed.
func (f *MemoryFeed) AddCandle(c market.Candle) {
	f.candles = append(f.candles, c)
}
