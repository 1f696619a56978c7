package market

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tathienbao/quant-ta/pkg/indicator"
)

func sampleCandle() Candle {
	return Candle{
		Symbol: "MES",
		Time:   time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC),
		Open:   decimal.RequireFromString("5000.25"),
		High:   decimal.RequireFromString("5010.50"),
		Low:    decimal.RequireFromString("4990.00"),
		Close:  decimal.RequireFromString("5005.75"),
		Volume: decimal.RequireFromString("1250"),
	}
}

func TestCandle_Mappers(t *testing.T) {
	c := sampleCandle()

	tests := []struct {
		name   string
		mapper ValueMapper
		want   float64
	}{
		{"open", OpenPrice, 5000.25},
		{"high", HighPrice, 5010.50},
		{"low", LowPrice, 4990.00},
		{"close", ClosePrice, 5005.75},
		{"volume", Volume, 1250},
		{"typical", TypicalPrice, (5010.50 + 4990.00 + 5005.75) / 3},
		{"mean", MeanPrice, (5010.50 + 4990.00 + 5000.25 + 5005.75) / 4},
		{"weighted_close", WeightedClose, (5010.50 + 4990.00 + 2*5005.75) / 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.mapper(c)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestCandle_PriceVolume(t *testing.T) {
	c := sampleCandle()
	pv := PriceVolume(c)

	if pv.Price != 5005.75 {
		t.Errorf("Price = %v, want 5005.75", pv.Price)
	}
	if pv.Volume != 1250 {
		t.Errorf("Volume = %v, want 1250", pv.Volume)
	}
}

func TestCandle_HLC(t *testing.T) {
	c := sampleCandle()
	hlc := HLC(c)

	want := indicator.HLC{High: 5010.50, Low: 4990.00, Close: 5005.75}
	if hlc != want {
		t.Errorf("HLC = %+v, want %+v", hlc, want)
	}
}

// TestCandle_IndicatorPipeline feeds candles into an indicator through
// a mapper and checks it matches feeding the closes directly.
func TestCandle_IndicatorPipeline(t *testing.T) {
	closes := []string{"100", "102", "101", "105", "104"}
	candles := make([]Candle, len(closes))
	for i, s := range closes {
		px := decimal.RequireFromString(s)
		candles[i] = Candle{
			Symbol: "MES",
			Time:   time.Date(2024, 1, 2, 9, 30+5*i, 0, 0, time.UTC),
			Open:   px, High: px, Low: px, Close: px,
			Volume: decimal.NewFromInt(1000),
		}
	}

	smaDirect, err := indicator.NewSMA(3)
	if err != nil {
		t.Fatalf("NewSMA(3): %v", err)
	}
	smaInner, err := indicator.NewSMA(3)
	if err != nil {
		t.Fatalf("NewSMA(3): %v", err)
	}
	pipe := indicator.NewInputMap[Candle, float64, float64](smaInner, ClosePrice)

	for i, c := range candles {
		want := smaDirect.Next(ClosePrice(c))
		got := pipe.Next(c)
		if got != want {
			t.Errorf("bar %d: pipeline = %v, want %v", i, got, want)
		}
	}
}
