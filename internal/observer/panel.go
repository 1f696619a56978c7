package observer

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tathienbao/quant-ta/internal/config"
	"github.com/tathienbao/quant-ta/pkg/indicator"
	"github.com/tathienbao/quant-ta/pkg/market"
)

// ColumnValue is one named indicator reading within a snapshot.
type ColumnValue struct {
	Column string
	Value  float64
	Ready  bool
}

// Snapshot carries every panel reading for one candle.
type Snapshot struct {
	Symbol  string
	Time    time.Time
	Seq     int64
	Close   decimal.Decimal
	Values  []ColumnValue
	Elapsed time.Duration // time spent advancing the pipelines
}

// Value returns the reading of a named column.
func (s Snapshot) Value(column string) (ColumnValue, bool) {
	for _, v := range s.Values {
		if v.Column == column {
			return v, true
		}
	}
	return ColumnValue{}, false
}

// pipeline is one configured indicator together with the names of the
// columns it yields per candle.
type pipeline struct {
	names   []string
	advance func(market.Candle) []indicator.Maybe[float64]
	reset   func()
}

// Panel advances a set of indicator pipelines one candle at a time.
type Panel struct {
	pipelines []pipeline
	columns   []string
	seq       int64
}

// NewPanel builds the pipelines a panel configuration describes. Every
// entry is wrapped so its first cfg.WarmupBars outputs are withheld.
func NewPanel(cfg config.PanelConfig) (*Panel, error) {
	if len(cfg.Indicators) == 0 {
		return nil, fmt.Errorf("panel has no indicators")
	}

	p := &Panel{}
	for i, entry := range cfg.Indicators {
		pipe, err := buildPipeline(entry, cfg.WarmupBars)
		if err != nil {
			return nil, fmt.Errorf("panel.indicators[%d] (%s): %w", i, entry.Type, err)
		}
		p.pipelines = append(p.pipelines, pipe)
		p.columns = append(p.columns, pipe.names...)
	}
	return p, nil
}

// Columns returns every column name, in configuration order.
func (p *Panel) Columns() []string {
	out := make([]string, len(p.columns))
	copy(out, p.columns)
	return out
}

// OnCandle advances every pipeline with the candle and collects their
// readings into one snapshot.
func (p *Panel) OnCandle(c market.Candle) Snapshot {
	start := time.Now()

	p.seq++
	snap := Snapshot{
		Symbol: c.Symbol,
		Time:   c.Time,
		Seq:    p.seq,
		Close:  c.Close,
		Values: make([]ColumnValue, 0, len(p.columns)),
	}
	for _, pipe := range p.pipelines {
		outs := pipe.advance(c)
		for i, out := range outs {
			snap.Values = append(snap.Values, ColumnValue{
				Column: pipe.names[i],
				Value:  out.Value,
				Ready:  out.Valid,
			})
		}
	}

	snap.Elapsed = time.Since(start)
	return snap
}

// Reset restarts every pipeline and the sequence counter.
func (p *Panel) Reset() {
	for _, pipe := range p.pipelines {
		pipe.reset()
	}
	p.seq = 0
}

// inputPipeline wires a single-output indicator behind a candle
// projection and a warm-up guard.
func inputPipeline[Mid any](ind indicator.Indicator[Mid, float64], project func(market.Candle) Mid, warmup int, name string) (pipeline, error) {
	mature, err := indicator.NewMature[Mid, float64](ind, warmup)
	if err != nil {
		return pipeline{}, fmt.Errorf("warmup: %w", err)
	}
	pipe := indicator.NewInputMap[market.Candle, Mid, indicator.Maybe[float64]](mature, project)
	return pipeline{
		names: []string{name},
		advance: func(c market.Candle) []indicator.Maybe[float64] {
			return []indicator.Maybe[float64]{pipe.Next(c)}
		},
		reset: pipe.Reset,
	}, nil
}

// structPipeline wires a multi-output indicator, fanning its output
// struct into one column per field.
func structPipeline[T any](ind indicator.Indicator[float64, T], mapper market.ValueMapper, warmup int, names []string, fields []func(T) float64) (pipeline, error) {
	mature, err := indicator.NewMature[float64, T](ind, warmup)
	if err != nil {
		return pipeline{}, fmt.Errorf("warmup: %w", err)
	}
	pipe := indicator.NewInputMap[market.Candle, float64, indicator.Maybe[T]](mature, mapper)
	return pipeline{
		names: names,
		advance: func(c market.Candle) []indicator.Maybe[float64] {
			out := pipe.Next(c)
			vals := make([]indicator.Maybe[float64], len(fields))
			for i, f := range fields {
				vals[i] = indicator.Maybe[float64]{Value: f(out.Value), Valid: out.Valid}
			}
			return vals
		},
		reset: pipe.Reset,
	}, nil
}

// mapperFor resolves the price field of a panel entry to a candle
// mapper and a column name suffix.
func mapperFor(price string) (market.ValueMapper, string, error) {
	switch price {
	case "", "close":
		return market.ClosePrice, "", nil
	case "open":
		return market.OpenPrice, "_open", nil
	case "high":
		return market.HighPrice, "_high", nil
	case "low":
		return market.LowPrice, "_low", nil
	case "typical":
		return market.TypicalPrice, "_typical", nil
	case "mean":
		return market.MeanPrice, "_mean", nil
	case "weighted_close":
		return market.WeightedClose, "_weighted_close", nil
	default:
		return nil, "", fmt.Errorf("unsupported price mapper: %s", price)
	}
}

// colName joins an indicator kind, its periods, and a price suffix
// into a column name such as macd_12_26_9 or sma_20_typical.
func colName(kind, suffix string, periods ...int) string {
	name := kind
	for _, p := range periods {
		name += fmt.Sprintf("_%d", p)
	}
	return name + suffix
}

// buildPipeline constructs the pipeline one panel entry describes.
func buildPipeline(e config.IndicatorConfig, warmup int) (pipeline, error) {
	mapper, suffix, err := mapperFor(e.Price)
	if err != nil {
		return pipeline{}, err
	}

	switch e.Type {
	case "sma":
		sma, err := indicator.NewSMA(e.Period)
		if err != nil {
			return pipeline{}, err
		}
		return inputPipeline[float64](sma, mapper, warmup, colName("sma", suffix, e.Period))

	case "ema":
		ema, err := indicator.NewEMA(e.Period)
		if err != nil {
			return pipeline{}, err
		}
		return inputPipeline[float64](ema, mapper, warmup, colName("ema", suffix, e.Period))

	case "rma":
		rma, err := indicator.NewRMA(e.Period)
		if err != nil {
			return pipeline{}, err
		}
		return inputPipeline[float64](rma, mapper, warmup, colName("rma", suffix, e.Period))

	case "rsi":
		period := e.Period
		if period == 0 {
			period = indicator.DefaultRSIPeriod
		}
		rsi, err := indicator.NewRSI(period)
		if err != nil {
			return pipeline{}, err
		}
		return inputPipeline[float64](rsi, mapper, warmup, colName("rsi", suffix, period))

	case "min":
		min, err := indicator.NewMin(e.Period)
		if err != nil {
			return pipeline{}, err
		}
		return inputPipeline[float64](min, mapper, warmup, colName("min", suffix, e.Period))

	case "max":
		max, err := indicator.NewMax(e.Period)
		if err != nil {
			return pipeline{}, err
		}
		return inputPipeline[float64](max, mapper, warmup, colName("max", suffix, e.Period))

	case "min_index":
		mi, err := indicator.NewMinIndex(e.Period)
		if err != nil {
			return pipeline{}, err
		}
		asFloat := indicator.NewMap[float64, int, float64](mi, func(i int) float64 { return float64(i) })
		return inputPipeline[float64](asFloat, mapper, warmup, colName("min_index", suffix, e.Period))

	case "max_index":
		mi, err := indicator.NewMaxIndex(e.Period)
		if err != nil {
			return pipeline{}, err
		}
		asFloat := indicator.NewMap[float64, int, float64](mi, func(i int) float64 { return float64(i) })
		return inputPipeline[float64](asFloat, mapper, warmup, colName("max_index", suffix, e.Period))

	case "aroon_osc":
		period := e.Period
		if period == 0 {
			period = indicator.DefaultAroonPeriod
		}
		osc, err := indicator.NewAroonOscillator(period)
		if err != nil {
			return pipeline{}, err
		}
		return inputPipeline[float64](osc, mapper, warmup, colName("aroon_osc", suffix, period))

	case "stddev":
		sd, err := indicator.NewStdDev(e.Period)
		if err != nil {
			return pipeline{}, err
		}
		base := colName("stddev", suffix, e.Period)
		return structPipeline[indicator.StdDevOutput](sd, mapper, warmup,
			[]string{base, base + "_mean"},
			[]func(indicator.StdDevOutput) float64{
				func(o indicator.StdDevOutput) float64 { return o.StdDev },
				func(o indicator.StdDevOutput) float64 { return o.Mean },
			})

	case "macd":
		short, long, signal := e.ShortPeriod, e.LongPeriod, e.SignalPeriod
		if short == 0 && long == 0 && signal == 0 {
			short = indicator.DefaultMACDShortPeriod
			long = indicator.DefaultMACDLongPeriod
			signal = indicator.DefaultMACDSignalPeriod
		}
		macd, err := indicator.NewMACD(short, long, signal)
		if err != nil {
			return pipeline{}, err
		}
		base := colName("macd", suffix, short, long, signal)
		return structPipeline[indicator.MACDOutput](macd, mapper, warmup,
			[]string{base, base + "_signal", base + "_hist"},
			[]func(indicator.MACDOutput) float64{
				func(o indicator.MACDOutput) float64 { return o.MACD },
				func(o indicator.MACDOutput) float64 { return o.Signal },
				func(o indicator.MACDOutput) float64 { return o.Histogram },
			})

	case "bollinger":
		multiplier := e.Multiplier
		if multiplier == 0 {
			multiplier = 2.0
		}
		bb, err := indicator.NewBollingerBands(e.Period, multiplier)
		if err != nil {
			return pipeline{}, err
		}
		base := colName("bollinger", suffix, e.Period)
		return structPipeline[indicator.BollingerBandsOutput](bb, mapper, warmup,
			[]string{base, base + "_upper", base + "_lower"},
			[]func(indicator.BollingerBandsOutput) float64{
				func(o indicator.BollingerBandsOutput) float64 { return o.Average },
				func(o indicator.BollingerBandsOutput) float64 { return o.Upper },
				func(o indicator.BollingerBandsOutput) float64 { return o.Lower },
			})

	case "stochastics":
		k, d, slow := e.Period, e.Smoothing, e.Slow
		if k == 0 && d == 0 && slow == 0 {
			k = indicator.DefaultStochasticsKPeriod
			d = indicator.DefaultStochasticsDPeriod
			slow = indicator.DefaultStochasticsSlowDPeriod
		}
		stoch, err := indicator.NewStochastics(k, d, slow)
		if err != nil {
			return pipeline{}, err
		}
		base := colName("stoch", suffix, k, d, slow)
		return structPipeline[indicator.StochasticsOutput](stoch, mapper, warmup,
			[]string{base, base + "_d", base + "_slow_d"},
			[]func(indicator.StochasticsOutput) float64{
				func(o indicator.StochasticsOutput) float64 { return o.K },
				func(o indicator.StochasticsOutput) float64 { return o.D },
				func(o indicator.StochasticsOutput) float64 { return o.SlowD },
			})

	case "aroon":
		period := e.Period
		if period == 0 {
			period = indicator.DefaultAroonPeriod
		}
		aroon, err := indicator.NewAroon(period)
		if err != nil {
			return pipeline{}, err
		}
		base := colName("aroon", suffix, period)
		return structPipeline[indicator.AroonOutput](aroon, mapper, warmup,
			[]string{base + "_up", base + "_down"},
			[]func(indicator.AroonOutput) float64{
				func(o indicator.AroonOutput) float64 { return o.Up },
				func(o indicator.AroonOutput) float64 { return o.Down },
			})

	case "atr":
		atr, err := indicator.NewATR(e.Period)
		if err != nil {
			return pipeline{}, err
		}
		return inputPipeline[indicator.HLC](atr, market.HLC, warmup, colName("atr", "", e.Period))

	case "vwap":
		return inputPipeline[indicator.PriceVolume](indicator.NewVWAP(), market.PriceVolume, warmup, "vwap")

	case "vwma":
		vwma, err := indicator.NewVWMA(e.Period)
		if err != nil {
			return pipeline{}, err
		}
		return inputPipeline[indicator.PriceVolume](vwma, market.PriceVolume, warmup, colName("vwma", "", e.Period))

	default:
		return pipeline{}, fmt.Errorf("unsupported indicator type: %s", e.Type)
	}
}
