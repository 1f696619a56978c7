package indicator

import "math"

// ATR computes the average true range: a simple moving average of the true
// range, where true range is the largest of high-low, |high-prevClose| and
// |low-prevClose|. The first bar has no previous close, so its true range
// is high-low.
type ATR struct {
	sma       *SMA
	prevClose float64
	primed    bool
}

// NewATR returns an ATR over the given period.
func NewATR(period int) (*ATR, error) {
	sma, err := NewSMA(period)
	if err != nil {
		return nil, err
	}
	return &ATR{sma: sma}, nil
}

// Next consumes one bar and returns the updated average range.
func (a *ATR) Next(in HLC) float64 {
	tr := in.High - in.Low
	if a.primed {
		tr = max(tr, math.Abs(in.High-a.prevClose), math.Abs(in.Low-a.prevClose))
	}
	a.prevClose = in.Close
	a.primed = true
	return a.sma.Next(tr)
}

// Current returns the average range from the most recent advance.
func (a *ATR) Current() (float64, bool) {
	return a.sma.Current()
}

// Reset clears all data.
func (a *ATR) Reset() {
	a.sma.Reset()
	a.prevClose = 0
	a.primed = false
}
