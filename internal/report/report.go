// Package report aggregates panel snapshots into end-of-run statistics.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tathienbao/quant-ta/internal/observer"
	"gonum.org/v1/gonum/stat"
)

// Collector accumulates snapshots for end-of-run reporting.
type Collector struct {
	symbol string
	bars   int
	start  time.Time
	end    time.Time

	firstClose decimal.Decimal
	lastClose  decimal.Decimal
	closes     []decimal.Decimal

	order  []string
	series map[string][]float64
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{series: make(map[string][]float64)}
}

// Observe records one snapshot. Only ready column values enter the series.
func (c *Collector) Observe(snap observer.Snapshot) {
	if c.bars == 0 {
		c.symbol = snap.Symbol
		c.start = snap.Time
		c.firstClose = snap.Close
		for _, v := range snap.Values {
			c.order = append(c.order, v.Column)
		}
	}

	c.bars++
	c.end = snap.Time
	c.lastClose = snap.Close
	c.closes = append(c.closes, snap.Close)

	for _, v := range snap.Values {
		if !v.Ready {
			continue
		}
		c.series[v.Column] = append(c.series[v.Column], v.Value)
	}
}

// ColumnStats summarizes one indicator column over a run.
type ColumnStats struct {
	Column string
	Count  int
	First  float64
	Last   float64
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Report holds the end-of-run statistics for a stream.
type Report struct {
	Symbol      string
	Bars        int
	Start       time.Time
	End         time.Time
	FirstClose  decimal.Decimal
	LastClose   decimal.Decimal
	TotalReturn decimal.Decimal // As ratio (0.15 = 15%)
	MaxDrawdown decimal.Decimal // As ratio
	Columns     []ColumnStats
}

// Summary computes the report from everything observed so far.
func (c *Collector) Summary() Report {
	rep := Report{
		Symbol:      c.symbol,
		Bars:        c.bars,
		Start:       c.start,
		End:         c.end,
		FirstClose:  c.firstClose,
		LastClose:   c.lastClose,
		TotalReturn: totalReturn(c.firstClose, c.lastClose),
		MaxDrawdown: maxDrawdown(c.closes),
	}

	for _, column := range c.order {
		rep.Columns = append(rep.Columns, columnStats(column, c.series[column]))
	}

	return rep
}

// columnStats computes the per-column summary. A column that never became
// ready reports Count 0 and zero statistics.
func columnStats(column string, values []float64) ColumnStats {
	cs := ColumnStats{Column: column, Count: len(values)}
	if len(values) == 0 {
		return cs
	}

	cs.First = values[0]
	cs.Last = values[len(values)-1]
	cs.Min = values[0]
	cs.Max = values[0]
	for _, v := range values {
		if v < cs.Min {
			cs.Min = v
		}
		if v > cs.Max {
			cs.Max = v
		}
	}

	cs.Mean = stat.Mean(values, nil)
	if len(values) >= 2 {
		cs.StdDev = stat.StdDev(values, nil)
	}

	return cs
}

// totalReturn is (last - first) / first.
func totalReturn(first, last decimal.Decimal) decimal.Decimal {
	if first.IsZero() {
		return decimal.Zero
	}
	return last.Sub(first).Div(first)
}

// maxDrawdown returns the largest peak-to-trough decline of the close series.
func maxDrawdown(closes []decimal.Decimal) decimal.Decimal {
	if len(closes) == 0 {
		return decimal.Zero
	}

	hwm := closes[0]
	maxDD := decimal.Zero

	for _, close := range closes {
		if close.GreaterThan(hwm) {
			hwm = close
		}
		if hwm.IsPositive() {
			dd := hwm.Sub(close).Div(hwm)
			if dd.GreaterThan(maxDD) {
				maxDD = dd
			}
		}
	}

	return maxDD
}

// Format renders the report as a human-readable text block.
func (r Report) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "=== STREAM SUMMARY (%s) ===\n", r.Symbol)
	fmt.Fprintf(&b, "Bars:             %d\n", r.Bars)
	if !r.Start.IsZero() {
		fmt.Fprintf(&b, "Period:           %s .. %s\n",
			r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
	}
	fmt.Fprintf(&b, "First Close:      %s\n", r.FirstClose)
	fmt.Fprintf(&b, "Last Close:       %s\n", r.LastClose)
	fmt.Fprintf(&b, "Total Return:     %.2f%%\n", r.TotalReturn.Mul(decimal.NewFromInt(100)).InexactFloat64())
	fmt.Fprintf(&b, "Max Drawdown:     %.2f%%\n", r.MaxDrawdown.Mul(decimal.NewFromInt(100)).InexactFloat64())

	if len(r.Columns) > 0 {
		b.WriteString("\n=== INDICATORS ===\n")
		fmt.Fprintf(&b, "%-24s %8s %12s %12s %12s %12s %12s\n",
			"column", "count", "last", "min", "max", "mean", "stddev")
		for _, cs := range r.Columns {
			fmt.Fprintf(&b, "%-24s %8d %12.4f %12.4f %12.4f %12.4f %12.4f\n",
				cs.Column, cs.Count, cs.Last, cs.Min, cs.Max, cs.Mean, cs.StdDev)
		}
	}

	return b.String()
}
