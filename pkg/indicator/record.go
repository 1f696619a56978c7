package indicator

// Pricer yields the representative price of a record.
type Pricer interface {
	Price() float64
}

// Volumer yields the traded volume of a record.
type Volumer interface {
	Volume() float64
}

// PriceVolumer combines Pricer and Volumer for volume-weighted indicators.
type PriceVolumer interface {
	Pricer
	Volumer
}

// Candlestick yields the four prices and volume of one bar.
type Candlestick interface {
	Open() float64
	High() float64
	Low() float64
	Close() float64
	Volumer
}

// MeanPrice returns (high + low + open + close) / 4.
func MeanPrice(c Candlestick) float64 {
	return (c.High() + c.Low() + c.Open() + c.Close()) / 4
}

// TypicalPrice returns (high + low + close) / 3.
func TypicalPrice(c Candlestick) float64 {
	return (c.High() + c.Low() + c.Close()) / 3
}

// WeightedClose returns (high + low + 2*close) / 4.
func WeightedClose(c Candlestick) float64 {
	return (c.High() + c.Low() + c.Close()*2) / 4
}

// FromPrice adapts any float64 indicator to consume price-yielding
// records. Both type parameters must be named at the call site:
//
//	FromPrice[bar, float64](sma)
func FromPrice[R Pricer, Out any](inner Indicator[float64, Out]) *InputMap[R, float64, Out] {
	return NewInputMap[R, float64, Out](inner, func(r R) float64 { return r.Price() })
}

// FromClose adapts any float64 indicator to consume the close price of
// candlestick records.
func FromClose[R Candlestick, Out any](inner Indicator[float64, Out]) *InputMap[R, float64, Out] {
	return NewInputMap[R, float64, Out](inner, func(r R) float64 { return r.Close() })
}

// FromTypicalPrice adapts any float64 indicator to consume the typical
// price of candlestick records.
func FromTypicalPrice[R Candlestick, Out any](inner Indicator[float64, Out]) *InputMap[R, float64, Out] {
	return NewInputMap[R, float64, Out](inner, func(r R) float64 { return TypicalPrice(r) })
}

// FromPriceVolume adapts a volume-weighted indicator, such as VWAP or
// VWMA, to consume records carrying both price and volume.
func FromPriceVolume[R PriceVolumer, Out any](inner Indicator[PriceVolume, Out]) *InputMap[R, PriceVolume, Out] {
	return NewInputMap[R, PriceVolume, Out](inner, func(r R) PriceVolume {
		return PriceVolume{Price: r.Price(), Volume: r.Volume()}
	})
}

// FromHLC adapts a bar-range indicator, such as ATR, to consume
// candlestick records.
func FromHLC[R Candlestick, Out any](inner Indicator[HLC, Out]) *InputMap[R, HLC, Out] {
	return NewInputMap[R, HLC, Out](inner, func(r R) HLC {
		return HLC{High: r.High(), Low: r.Low(), Close: r.Close()}
	})
}
