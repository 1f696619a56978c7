package indicator

// VWMA computes a volume-weighted moving average over the last period
// inputs: the sum of price times volume divided by the sum of volume. The
// first input primes the whole window.
type VWMA struct {
	period int
	ring   []PriceVolume
	head   int // index of the oldest pair once primed
	sum    float64
	vol    float64
	primed bool
}

// NewVWMA returns a VWMA over the given period.
func NewVWMA(period int) (*VWMA, error) {
	if period < 1 {
		return nil, &RangeError{Param: "period", Value: period, Min: 1}
	}
	return &VWMA{period: period, ring: make([]PriceVolume, period)}, nil
}

// Next consumes one price/volume pair and returns the updated average.
func (v *VWMA) Next(in PriceVolume) float64 {
	if !v.primed {
		for i := range v.ring {
			v.ring[i] = in
		}
		v.sum = in.Price * in.Volume * float64(v.period)
		v.vol = in.Volume * float64(v.period)
		v.primed = true
	} else {
		old := v.ring[v.head]
		v.ring[v.head] = in
		v.head = (v.head + 1) % v.period
		v.sum += in.Price*in.Volume - old.Price*old.Volume
		v.vol += in.Volume - old.Volume
	}
	return v.sum / v.vol
}

// Current returns the average from the most recent advance.
func (v *VWMA) Current() (float64, bool) {
	if !v.primed {
		return 0, false
	}
	return v.sum / v.vol, true
}

// Reset clears all data.
func (v *VWMA) Reset() {
	v.head = 0
	v.sum = 0
	v.vol = 0
	v.primed = false
}
