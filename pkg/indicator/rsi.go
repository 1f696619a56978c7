package indicator

// DefaultRSIPeriod is the conventional RSI look-back.
const DefaultRSIPeriod = 14

// RSI computes the relative strength index on a 0..1 scale: Wilder's
// running averages of upward and downward moves, combined as
// up / (up + down). The first input only establishes the reference price,
// priming both averages with zero movement.
type RSI struct {
	up   *RMA
	down *RMA
	prev float64
}

// NewRSI returns an RSI over the given period.
func NewRSI(period int) (*RSI, error) {
	up, err := NewRMA(period)
	if err != nil {
		return nil, err
	}
	down, err := NewRMA(period)
	if err != nil {
		return nil, err
	}
	return &RSI{up: up, down: down}, nil
}

// Next consumes one input and returns the updated index.
func (r *RSI) Next(in float64) float64 {
	if _, primed := r.up.Current(); !primed {
		r.up.Next(0)
		r.down.Next(0)
	} else {
		change := in - r.prev
		r.up.Next(max(change, 0))
		r.down.Next(max(-change, 0))
	}
	r.prev = in
	v, _ := r.Current()
	return v
}

// Current returns the index from the most recent advance.
func (r *RSI) Current() (float64, bool) {
	up, ok := r.up.Current()
	if !ok {
		return 0, false
	}
	down, ok := r.down.Current()
	if !ok {
		return 0, false
	}
	switch {
	case up <= 0 && down <= 0:
		return 0.5, true
	case up <= 0:
		return 0, true
	case down <= 0:
		return 1, true
	default:
		return 1 / (1 + down/up), true
	}
}

// Reset clears all data.
func (r *RSI) Reset() {
	r.up.Reset()
	r.down.Reset()
	r.prev = 0
}
