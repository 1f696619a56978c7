// Package market provides the candle data model shared by feeds,
// panels, and storage, plus mappers that project candles onto
// indicator inputs.
package market

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tathienbao/quant-ta/pkg/indicator"
)

// Candle is one OHLCV bar. Prices and volume are decimals so values
// parsed from an exchange or a file survive storage exactly.
type Candle struct {
	Symbol string
	Time   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume decimal.Decimal
}

// ValueMapper projects a candle onto the float64 input of an indicator.
type ValueMapper func(Candle) float64

// OpenPrice returns the open price.
func OpenPrice(c Candle) float64 { return c.Open.InexactFloat64() }

// HighPrice returns the high price.
func HighPrice(c Candle) float64 { return c.High.InexactFloat64() }

// LowPrice returns the low price.
func LowPrice(c Candle) float64 { return c.Low.InexactFloat64() }

// ClosePrice returns the close price.
func ClosePrice(c Candle) float64 { return c.Close.InexactFloat64() }

// Volume returns the traded volume.
func Volume(c Candle) float64 { return c.Volume.InexactFloat64() }

// TypicalPrice returns (high + low + close) / 3.
func TypicalPrice(c Candle) float64 {
	return (HighPrice(c) + LowPrice(c) + ClosePrice(c)) / 3
}

// MeanPrice returns (high + low + open + close) / 4.
func MeanPrice(c Candle) float64 {
	return (HighPrice(c) + LowPrice(c) + OpenPrice(c) + ClosePrice(c)) / 4
}

// WeightedClose returns (high + low + 2*close) / 4.
func WeightedClose(c Candle) float64 {
	return (HighPrice(c) + LowPrice(c) + ClosePrice(c)*2) / 4
}

// PriceVolume projects the candle onto the input of volume-weighted
// indicators, using the close as the representative price.
func PriceVolume(c Candle) indicator.PriceVolume {
	return indicator.PriceVolume{Price: ClosePrice(c), Volume: Volume(c)}
}

// HLC projects the candle onto the input of bar-range indicators.
func HLC(c Candle) indicator.HLC {
	return indicator.HLC{High: HighPrice(c), Low: LowPrice(c), Close: ClosePrice(c)}
}
