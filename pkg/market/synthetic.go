package market

import (
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// SyntheticOptions shape a generated candle series.
type SyntheticOptions struct {
	Symbol     string
	StartPrice float64       // first open
	Drift      float64       // per-bar drift of the log price
	Volatility float64       // per-bar volatility of the log price
	BaseVolume float64       // volume is uniform in [0.5, 1.5) of this
	Start      time.Time     // timestamp of the first candle
	Interval   time.Duration // spacing between candles
}

// DefaultSyntheticOptions returns the options used by the demo command.
func DefaultSyntheticOptions() SyntheticOptions {
	return SyntheticOptions{
		Symbol:     "SYN",
		StartPrice: 100,
		Drift:      0.0005,
		Volatility: 0.02,
		BaseVolume: 1000,
		Start:      time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC),
		Interval:   5 * time.Minute,
	}
}

// Synthetic generates n candles along a geometric Brownian walk. The
// same seed always yields the same series, so fixtures built from it
// are stable across runs.
func Synthetic(n int, seed int64, opts SyntheticOptions) []Candle {
	if n <= 0 {
		return nil
	}
	opts = opts.withDefaults()

	rng := rand.New(rand.NewSource(seed))
	candles := make([]Candle, 0, n)

	price := opts.StartPrice
	ts := opts.Start

	for i := 0; i < n; i++ {
		open := price
		step := opts.Drift - opts.Volatility*opts.Volatility/2 +
			opts.Volatility*rng.NormFloat64()
		price = open * math.Exp(step)

		wick := math.Abs(rng.NormFloat64()) * opts.Volatility / 2
		high := math.Max(open, price) * (1 + wick)
		low := math.Min(open, price) * (1 - wick)
		volume := opts.BaseVolume * (0.5 + rng.Float64())

		candles = append(candles, Candle{
			Symbol: opts.Symbol,
			Time:   ts,
			Open:   decimal.NewFromFloat(open).Round(4),
			High:   decimal.NewFromFloat(high).Round(4),
			Low:    decimal.NewFromFloat(low).Round(4),
			Close:  decimal.NewFromFloat(price).Round(4),
			Volume: decimal.NewFromFloat(volume).Round(0),
		})
		ts = ts.Add(opts.Interval)
	}

	return candles
}

// withDefaults fills structural zero values; zero drift and volatility
// stay as given since a flat walk is a valid series.
func (o SyntheticOptions) withDefaults() SyntheticOptions {
	def := DefaultSyntheticOptions()
	if o.Symbol == "" {
		o.Symbol = def.Symbol
	}
	if o.StartPrice <= 0 {
		o.StartPrice = def.StartPrice
	}
	if o.BaseVolume <= 0 {
		o.BaseVolume = def.BaseVolume
	}
	if o.Start.IsZero() {
		o.Start = def.Start
	}
	if o.Interval <= 0 {
		o.Interval = def.Interval
	}
	return o
}
