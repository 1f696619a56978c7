package indicator

// EMA computes an exponential moving average with smoothing factor
// 2 / (period + 1). The first input seeds the average.
type EMA struct {
	period int
	alpha  float64
	cur    float64
	primed bool
}

// NewEMA returns an EMA over the given period.
func NewEMA(period int) (*EMA, error) {
	if period < 1 {
		return nil, &RangeError{Param: "period", Value: period, Min: 1}
	}
	return &EMA{period: period, alpha: 2 / float64(period+1)}, nil
}

// Next consumes one input and returns the updated average.
func (e *EMA) Next(in float64) float64 {
	if !e.primed {
		e.cur = in
		e.primed = true
		return e.cur
	}
	e.cur += (in - e.cur) * e.alpha
	return e.cur
}

// Current returns the average from the most recent advance.
func (e *EMA) Current() (float64, bool) {
	return e.cur, e.primed
}

// Reset clears all data.
func (e *EMA) Reset() {
	e.cur = 0
	e.primed = false
}
