package indicator

// RMA computes Wilder's running moving average, the smoothing used inside
// RSI: each input moves the average by 1/period of the distance to it. The
// first input seeds the average.
//
// A period of 1 would make the average track the input exactly, so the
// minimum period is 2.
type RMA struct {
	period int
	cur    float64
	primed bool
}

// NewRMA returns an RMA over the given period.
func NewRMA(period int) (*RMA, error) {
	if period < 2 {
		return nil, &RangeError{Param: "period", Value: period, Min: 2}
	}
	return &RMA{period: period}, nil
}

// Next consumes one input and returns the updated average.
func (r *RMA) Next(in float64) float64 {
	if !r.primed {
		r.cur = in
		r.primed = true
		return r.cur
	}
	r.cur += (in - r.cur) / float64(r.period)
	return r.cur
}

// Current returns the average from the most recent advance.
func (r *RMA) Current() (float64, bool) {
	return r.cur, r.primed
}

// Reset clears all data.
func (r *RMA) Reset() {
	r.cur = 0
	r.primed = false
}
