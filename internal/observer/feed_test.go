package observer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tathienbao/quant-ta/internal/config"
	"github.com/tathienbao/quant-ta/pkg/market"
)

// flatCandle builds a candle whose four prices all equal px.
func flatCandle(symbol string, px float64, bar int) market.Candle {
	d := decimal.NewFromFloat(px)
	return market.Candle{
		Symbol: symbol,
		Time:   time.Date(2024, 1, 2, 9, 30+5*bar, 0, 0, time.UTC),
		Open:   d, High: d, Low: d, Close: d,
		Volume: decimal.NewFromInt(1000),
	}
}

func flatCandles(symbol string, closes ...float64) []market.Candle {
	out := make([]market.Candle, len(closes))
	for i, px := range closes {
		out[i] = flatCandle(symbol, px, i)
	}
	return out
}

func collect(t *testing.T, ch <-chan market.Candle) []market.Candle {
	t.Helper()
	var out []market.Candle
	for c := range ch {
		out = append(out, c)
	}
	return out
}

func TestCSVFeed_Subscribe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bars.csv")
	csvData := `timestamp,open,high,low,close,volume
2024-01-01 09:30:00,5000,5010,4990,5005,1000
2024-01-01 09:35:00,5005,5015,5000,5010,1200
2024-01-01 09:40:00,5010,5020,5005,5015,1100
`
	if err := os.WriteFile(path, []byte(csvData), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	feed := NewCSVFeed(path, "MES", 0)
	ch, err := feed.Subscribe(context.Background(), "MES")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	candles := collect(t, ch)
	if len(candles) != 3 {
		t.Fatalf("len(candles) = %d, want 3", len(candles))
	}
	if candles[0].Symbol != "MES" {
		t.Errorf("Symbol = %q, want MES", candles[0].Symbol)
	}
	if want := decimal.NewFromInt(5005); !candles[0].Close.Equal(want) {
		t.Errorf("Close = %s, want %s", candles[0].Close, want)
	}
	if feed.CandleCount() != 3 {
		t.Errorf("CandleCount() = %d, want 3", feed.CandleCount())
	}
}

func TestCSVFeed_FileNotFound(t *testing.T) {
	feed := NewCSVFeed(filepath.Join(t.TempDir(), "missing.csv"), "MES", 0)
	if _, err := feed.Subscribe(context.Background(), "MES"); err == nil {
		t.Error("Subscribe: expected error for missing file")
	}
}

func TestCSVFeed_Close(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bars.csv")
	if err := os.WriteFile(path, []byte("2024-01-01,5000,5010,4990,5005,1000\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	feed := NewCSVFeed(path, "MES", 0)
	if _, err := feed.Subscribe(context.Background(), "MES"); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if err := feed.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if feed.CandleCount() != 0 {
		t.Errorf("CandleCount() after Close = %d, want 0", feed.CandleCount())
	}

	// A feed can be reopened after Close.
	ch, err := feed.Subscribe(context.Background(), "MES")
	if err != nil {
		t.Fatalf("Subscribe after Close: %v", err)
	}
	if got := len(collect(t, ch)); got != 1 {
		t.Errorf("candles after reopen = %d, want 1", got)
	}
}

func TestCSVFeed_Paced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bars.csv")
	csvData := `2024-01-01 09:30:00,5000,5010,4990,5005,1000
2024-01-01 09:35:00,5005,5015,5000,5010,1200
2024-01-01 09:40:00,5010,5020,5005,5015,1100
`
	if err := os.WriteFile(path, []byte(csvData), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	feed := NewCSVFeed(path, "MES", 1000)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ch, err := feed.Subscribe(ctx, "MES")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if got := len(collect(t, ch)); got != 3 {
		t.Errorf("len(candles) = %d, want 3", got)
	}
}

func TestMemoryFeed_Subscribe(t *testing.T) {
	feed := NewMemoryFeed(flatCandles("MES", 100, 101, 102))
	feed.AddCandle(flatCandle("MES", 103, 3))

	ch, err := feed.Subscribe(context.Background(), "MES")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	candles := collect(t, ch)
	if len(candles) != 4 {
		t.Fatalf("len(candles) = %d, want 4", len(candles))
	}
	if want := decimal.NewFromInt(103); !candles[3].Close.Equal(want) {
		t.Errorf("last close = %s, want %s", candles[3].Close, want)
	}
}

func TestMemoryFeed_FiltersSymbol(t *testing.T) {
	candles := append(flatCandles("MES", 100, 101), flatCandle("MGC", 2000, 2))
	feed := NewMemoryFeed(candles)

	ch, err := feed.Subscribe(context.Background(), "MES")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if got := len(collect(t, ch)); got != 2 {
		t.Errorf("len(candles) = %d, want 2", got)
	}
}

func TestSyntheticFeed_Subscribe(t *testing.T) {
	opts := market.DefaultSyntheticOptions()
	opts.Symbol = "SYN"

	a := NewSyntheticFeed(40, 42, opts, 0)
	b := NewSyntheticFeed(40, 42, opts, 0)

	chA, err := a.Subscribe(context.Background(), "SYN")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	chB, err := b.Subscribe(context.Background(), "SYN")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	candlesA := collect(t, chA)
	candlesB := collect(t, chB)
	if len(candlesA) != 40 {
		t.Fatalf("len(candles) = %d, want 40", len(candlesA))
	}
	for i := range candlesA {
		if !candlesA[i].Close.Equal(candlesB[i].Close) {
			t.Fatalf("bar %d differs between same-seed feeds", i)
		}
	}
}

func TestFeed_ContextCancelled(t *testing.T) {
	candles := make([]market.Candle, 500)
	for i := range candles {
		candles[i] = flatCandle("MES", 100, i)
	}
	feed := NewMemoryFeed(candles)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := feed.Subscribe(ctx, "MES")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	received := 0
	for range ch {
		received++
		if received == 5 {
			cancel()
			break
		}
	}
	for range ch {
		received++
	}

	if received < 5 {
		t.Errorf("received = %d, want at least 5", received)
	}
	if received >= len(candles) {
		t.Errorf("received = %d, want fewer than %d after cancel", received, len(candles))
	}
}

func TestNewFeed(t *testing.T) {
	feed, err := NewFeed(config.SourceConfig{Type: "csv", Path: "data.csv", Symbol: "MES"})
	if err != nil {
		t.Fatalf("NewFeed(csv): %v", err)
	}
	if feed.Name() != "csv" {
		t.Errorf("Name() = %q, want csv", feed.Name())
	}

	feed, err = NewFeed(config.SourceConfig{
		Type:   "synthetic",
		Symbol: "SYN",
		Synthetic: config.SyntheticConfig{
			Bars: 10, Seed: 7, StartPrice: 250, Volatility: 0.01,
		},
	})
	if err != nil {
		t.Fatalf("NewFeed(synthetic): %v", err)
	}
	if feed.Name() != "synthetic" {
		t.Errorf("Name() = %q, want synthetic", feed.Name())
	}

	ch, err := feed.Subscribe(context.Background(), "SYN")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	candles := collect(t, ch)
	if len(candles) != 10 {
		t.Fatalf("len(candles) = %d, want 10", len(candles))
	}
	if want := decimal.NewFromInt(250); !candles[0].Open.Equal(want) {
		t.Errorf("first open = %s, want %s", candles[0].Open, want)
	}

	if _, err := NewFeed(config.SourceConfig{Type: "websocket"}); err == nil {
		t.Error("NewFeed(websocket): expected error")
	}
}
