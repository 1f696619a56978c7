package indicator

// BollingerBandsOutput carries the moving average and the band placed
// multiplier deviations above and below it.
type BollingerBandsOutput struct {
	Average float64
	Upper   float64
	Lower   float64
}

// BollingerBands computes volatility bands around a simple moving average:
// upper and lower sit multiplier population standard deviations away from
// the mean of the last period inputs.
type BollingerBands struct {
	stddev     *StdDev
	multiplier float64
}

// NewBollingerBands returns BollingerBands over the given period and band
// multiplier.
func NewBollingerBands(period int, multiplier float64) (*BollingerBands, error) {
	stddev, err := NewStdDev(period)
	if err != nil {
		return nil, err
	}
	if multiplier < 0 {
		return nil, &RangeError{Param: "multiplier", Value: multiplier, Min: 0.0}
	}
	return &BollingerBands{stddev: stddev, multiplier: multiplier}, nil
}

// Next consumes one input and returns the updated bands.
func (b *BollingerBands) Next(in float64) BollingerBandsOutput {
	return b.bands(b.stddev.Next(in))
}

func (b *BollingerBands) bands(sd StdDevOutput) BollingerBandsOutput {
	spread := sd.StdDev * b.multiplier
	return BollingerBandsOutput{
		Average: sd.Mean,
		Upper:   sd.Mean + spread,
		Lower:   sd.Mean - spread,
	}
}

// Current returns the bands from the most recent advance.
func (b *BollingerBands) Current() (BollingerBandsOutput, bool) {
	sd, ok := b.stddev.Current()
	if !ok {
		return BollingerBandsOutput{}, false
	}
	return b.bands(sd), true
}

// Reset clears all data.
func (b *BollingerBands) Reset() {
	b.stddev.Reset()
}
