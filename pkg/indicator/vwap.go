package indicator

// VWAP computes the volume-weighted average price over the whole series
// seen so far: each input pulls the average towards its price in
// proportion to its share of the cumulative volume. VWAP carries no
// window, so construction cannot fail.
type VWAP struct {
	cur    float64
	total  float64
	primed bool
}

// NewVWAP returns a VWAP.
func NewVWAP() *VWAP {
	return &VWAP{}
}

// Next consumes one price/volume pair and returns the updated average.
func (v *VWAP) Next(in PriceVolume) float64 {
	v.total += in.Volume
	if !v.primed {
		v.cur = in.Price
		v.primed = true
		return v.cur
	}
	v.cur += (in.Price - v.cur) * in.Volume / v.total
	return v.cur
}

// Current returns the average from the most recent advance.
func (v *VWAP) Current() (float64, bool) {
	return v.cur, v.primed
}

// Reset clears all data.
func (v *VWAP) Reset() {
	v.cur = 0
	v.total = 0
	v.primed = false
}
