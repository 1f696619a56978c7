package observer

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tathienbao/quant-ta/internal/config"
	"github.com/tathienbao/quant-ta/pkg/indicator"
)

func singlePanel(t *testing.T, entry config.IndicatorConfig, warmup int) *Panel {
	t.Helper()
	p, err := NewPanel(config.PanelConfig{
		WarmupBars: warmup,
		Indicators: []config.IndicatorConfig{entry},
	})
	if err != nil {
		t.Fatalf("NewPanel: %v", err)
	}
	return p
}

func TestNewPanel_Columns(t *testing.T) {
	cfg := config.PanelConfig{
		Indicators: []config.IndicatorConfig{
			{Type: "sma", Period: 20},
			{Type: "ema", Period: 12},
			{Type: "rma", Period: 9},
			{Type: "rsi"}, // default period
			{Type: "macd"},
			{Type: "bollinger", Period: 20},
			{Type: "stochastics"},
			{Type: "aroon"},
			{Type: "aroon_osc", Period: 10},
			{Type: "atr", Period: 14},
			{Type: "vwap"},
			{Type: "vwma", Period: 20},
			{Type: "min", Period: 5},
			{Type: "max", Period: 5},
			{Type: "min_index", Period: 5},
			{Type: "max_index", Period: 5},
			{Type: "stddev", Period: 10},
			{Type: "sma", Period: 20, Price: "typical"},
		},
	}

	p, err := NewPanel(cfg)
	if err != nil {
		t.Fatalf("NewPanel: %v", err)
	}

	want := []string{
		"sma_20",
		"ema_12",
		"rma_9",
		"rsi_14",
		"macd_12_26_9", "macd_12_26_9_signal", "macd_12_26_9_hist",
		"bollinger_20", "bollinger_20_upper", "bollinger_20_lower",
		"stoch_14_3_3", "stoch_14_3_3_d", "stoch_14_3_3_slow_d",
		"aroon_14_up", "aroon_14_down",
		"aroon_osc_10",
		"atr_14",
		"vwap",
		"vwma_20",
		"min_5",
		"max_5",
		"min_index_5",
		"max_index_5",
		"stddev_10", "stddev_10_mean",
		"sma_20_typical",
	}

	got := p.Columns()
	if len(got) != len(want) {
		t.Fatalf("len(Columns()) = %d, want %d\ngot: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Columns()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPanel_OnCandle_SMA(t *testing.T) {
	p := singlePanel(t, config.IndicatorConfig{Type: "sma", Period: 2}, 0)

	wants := []float64{1, 1.5, 2.5, 3.5}
	for i, c := range flatCandles("MES", 1, 2, 3, 4) {
		snap := p.OnCandle(c)
		cv, ok := snap.Value("sma_2")
		if !ok {
			t.Fatalf("bar %d: column sma_2 missing", i)
		}
		if !cv.Ready {
			t.Errorf("bar %d: Ready = false, want true", i)
		}
		if math.Abs(cv.Value-wants[i]) > 1e-9 {
			t.Errorf("bar %d: Value = %v, want %v", i, cv.Value, wants[i])
		}
	}
}

func TestPanel_Warmup(t *testing.T) {
	p := singlePanel(t, config.IndicatorConfig{Type: "sma", Period: 2}, 2)

	candles := flatCandles("MES", 1, 2, 3, 4)
	wantReady := []bool{false, false, true, true}
	wantValue := []float64{0, 0, 2.5, 3.5}

	for i, c := range candles {
		snap := p.OnCandle(c)
		cv, _ := snap.Value("sma_2")
		if cv.Ready != wantReady[i] {
			t.Errorf("bar %d: Ready = %v, want %v", i, cv.Ready, wantReady[i])
		}
		if cv.Ready && math.Abs(cv.Value-wantValue[i]) > 1e-9 {
			t.Errorf("bar %d: Value = %v, want %v", i, cv.Value, wantValue[i])
		}
	}
}

func TestPanel_MACDFanOut(t *testing.T) {
	p := singlePanel(t, config.IndicatorConfig{
		Type: "macd", ShortPeriod: 2, LongPeriod: 4, SignalPeriod: 3,
	}, 3)

	for i, c := range flatCandles("MES", 10, 12, 11, 14, 13, 16, 15, 18) {
		snap := p.OnCandle(c)

		line, _ := snap.Value("macd_2_4_3")
		signal, _ := snap.Value("macd_2_4_3_signal")
		hist, _ := snap.Value("macd_2_4_3_hist")

		if line.Ready != signal.Ready || line.Ready != hist.Ready {
			t.Fatalf("bar %d: fan-out readiness differs: %v %v %v",
				i, line.Ready, signal.Ready, hist.Ready)
		}
		if wantReady := i >= 3; line.Ready != wantReady {
			t.Errorf("bar %d: Ready = %v, want %v", i, line.Ready, wantReady)
		}
		if line.Ready && math.Abs(hist.Value-(line.Value-signal.Value)) > 1e-9 {
			t.Errorf("bar %d: hist = %v, want macd-signal = %v",
				i, hist.Value, line.Value-signal.Value)
		}
	}
}

func TestPanel_MinIndexAsFloat(t *testing.T) {
	p := singlePanel(t, config.IndicatorConfig{Type: "min_index", Period: 3}, 0)

	wants := []float64{0, 1, 2}
	for i, c := range flatCandles("MES", 3, 4, 5) {
		snap := p.OnCandle(c)
		cv, _ := snap.Value("min_index_3")
		if cv.Value != wants[i] {
			t.Errorf("bar %d: Value = %v, want %v", i, cv.Value, wants[i])
		}
	}
}

func TestPanel_PriceMapper(t *testing.T) {
	p, err := NewPanel(config.PanelConfig{
		Indicators: []config.IndicatorConfig{
			{Type: "sma", Period: 2},
			{Type: "sma", Period: 2, Price: "high"},
		},
	})
	if err != nil {
		t.Fatalf("NewPanel: %v", err)
	}

	for i := 0; i < 3; i++ {
		c := flatCandle("MES", 100, i)
		c.High = decimal.NewFromInt(110)
		snap := p.OnCandle(c)

		onClose, _ := snap.Value("sma_2")
		onHigh, ok := snap.Value("sma_2_high")
		if !ok {
			t.Fatal("column sma_2_high missing")
		}
		if math.Abs(onClose.Value-100) > 1e-9 {
			t.Errorf("bar %d: close-based = %v, want 100", i, onClose.Value)
		}
		if math.Abs(onHigh.Value-110) > 1e-9 {
			t.Errorf("bar %d: high-based = %v, want 110", i, onHigh.Value)
		}
	}
}

func TestNewPanel_BuildErrors(t *testing.T) {
	tests := []struct {
		name     string
		entry    config.IndicatorConfig
		wantErr  string
		paramErr bool
	}{
		{
			name:     "sma zero period",
			entry:    config.IndicatorConfig{Type: "sma"},
			wantErr:  "period",
			paramErr: true,
		},
		{
			name:     "macd inverted periods",
			entry:    config.IndicatorConfig{Type: "macd", ShortPeriod: 26, LongPeriod: 12, SignalPeriod: 9},
			wantErr:  "short_period < long_period",
			paramErr: true,
		},
		{
			name:     "bollinger negative multiplier",
			entry:    config.IndicatorConfig{Type: "bollinger", Period: 20, Multiplier: -1},
			wantErr:  "multiplier",
			paramErr: true,
		},
		{
			name:    "unknown type",
			entry:   config.IndicatorConfig{Type: "ichimoku"},
			wantErr: "unsupported indicator type",
		},
		{
			name:    "unknown price",
			entry:   config.IndicatorConfig{Type: "sma", Period: 2, Price: "median"},
			wantErr: "unsupported price mapper",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPanel(config.PanelConfig{
				Indicators: []config.IndicatorConfig{tt.entry},
			})
			if err == nil {
				t.Fatal("NewPanel: expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
			if tt.paramErr && !errors.Is(err, indicator.ErrInvalidParameter) {
				t.Errorf("errors.Is(err, ErrInvalidParameter) = false, err = %v", err)
			}
		})
	}
}

func TestNewPanel_Empty(t *testing.T) {
	if _, err := NewPanel(config.PanelConfig{}); err == nil {
		t.Error("NewPanel: expected error for empty panel")
	}
}

func TestPanel_Reset(t *testing.T) {
	p, err := NewPanel(config.PanelConfig{
		WarmupBars: 1,
		Indicators: []config.IndicatorConfig{
			{Type: "sma", Period: 2},
			{Type: "macd", ShortPeriod: 2, LongPeriod: 3, SignalPeriod: 2},
		},
	})
	if err != nil {
		t.Fatalf("NewPanel: %v", err)
	}

	candles := flatCandles("MES", 5, 7, 6, 9, 8)

	var first []Snapshot
	for _, c := range candles {
		first = append(first, p.OnCandle(c))
	}

	p.Reset()

	for i, c := range candles {
		snap := p.OnCandle(c)
		if snap.Seq != first[i].Seq {
			t.Errorf("bar %d: Seq = %d, want %d after reset", i, snap.Seq, first[i].Seq)
		}
		for j, cv := range snap.Values {
			want := first[i].Values[j]
			if cv != want {
				t.Errorf("bar %d, column %s: %+v, want %+v after reset", i, cv.Column, cv, want)
			}
		}
	}
}

func TestPanel_SnapshotMeta(t *testing.T) {
	p := singlePanel(t, config.IndicatorConfig{Type: "sma", Period: 2}, 0)

	c := flatCandle("MES", 101.5, 0)
	snap := p.OnCandle(c)

	if snap.Symbol != "MES" {
		t.Errorf("Symbol = %q, want MES", snap.Symbol)
	}
	if !snap.Time.Equal(time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)) {
		t.Errorf("Time = %v, want candle time", snap.Time)
	}
	if !snap.Close.Equal(c.Close) {
		t.Errorf("Close = %s, want %s", snap.Close, c.Close)
	}
	if snap.Seq != 1 {
		t.Errorf("Seq = %d, want 1", snap.Seq)
	}

	snap = p.OnCandle(flatCandle("MES", 102, 1))
	if snap.Seq != 2 {
		t.Errorf("Seq = %d, want 2", snap.Seq)
	}
}

func TestSnapshot_Value(t *testing.T) {
	snap := Snapshot{Values: []ColumnValue{
		{Column: "sma_2", Value: 1.5, Ready: true},
	}}

	if cv, ok := snap.Value("sma_2"); !ok || cv.Value != 1.5 {
		t.Errorf("Value(sma_2) = %+v, %v; want 1.5, true", cv, ok)
	}
	if _, ok := snap.Value("rsi_14"); ok {
		t.Error("Value(rsi_14) = true, want false")
	}
}
