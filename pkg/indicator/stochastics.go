package indicator

// Conventional stochastic oscillator periods.
const (
	DefaultStochasticsKPeriod     = 14
	DefaultStochasticsDPeriod     = 3
	DefaultStochasticsSlowDPeriod = 3
)

// StochasticsOutput carries fast %K, %D, and slow %D, each on a 0..1 scale.
type StochasticsOutput struct {
	K     float64
	D     float64
	SlowD float64
}

// Stochastics computes the stochastic oscillator: %K places the newest
// input inside the high/low range of the last kPeriod inputs, %D is the
// ratio of dPeriod moving averages of the numerator and denominator of %K,
// and slow %D smooths %D once more. The first input establishes the range
// and primes the smoothing averages with zero, reporting the 0.5
// midpoint.
type Stochastics struct {
	min    *Min
	max    *Max
	dNum   *SMA
	dDen   *SMA
	slowD  *SMA
	cur    StochasticsOutput
	primed bool
}

// NewStochastics returns a Stochastics over the given range, %D and
// slow %D periods.
func NewStochastics(kPeriod, dPeriod, slowDPeriod int) (*Stochastics, error) {
	min, err := NewMin(kPeriod)
	if err != nil {
		return nil, err
	}
	max, err := NewMax(kPeriod)
	if err != nil {
		return nil, err
	}
	dNum, err := NewSMA(dPeriod)
	if err != nil {
		return nil, err
	}
	dDen, err := NewSMA(dPeriod)
	if err != nil {
		return nil, err
	}
	slowD, err := NewSMA(slowDPeriod)
	if err != nil {
		return nil, err
	}
	return &Stochastics{min: min, max: max, dNum: dNum, dDen: dDen, slowD: slowD}, nil
}

// Next consumes one input and returns the updated oscillator values.
func (s *Stochastics) Next(in float64) StochasticsOutput {
	if !s.primed {
		s.min.Next(in)
		s.max.Next(in)
		s.dNum.Next(0)
		s.dDen.Next(0)
		s.slowD.Next(0)
		s.primed = true
		s.cur = StochasticsOutput{K: 0.5, D: 0.5, SlowD: 0.5}
		return s.cur
	}
	low := s.min.Next(in)
	high := s.max.Next(in)
	num := s.dNum.Next(in - low)
	den := s.dDen.Next(high - low)

	k := 0.5
	if high != low {
		k = (in - low) / (high - low)
	}
	d := 0.5
	if den != 0 {
		d = num / den
	}
	s.cur = StochasticsOutput{K: k, D: d, SlowD: s.slowD.Next(d)}
	return s.cur
}

// Current returns the oscillator values from the most recent advance.
func (s *Stochastics) Current() (StochasticsOutput, bool) {
	if !s.primed {
		return StochasticsOutput{}, false
	}
	return s.cur, true
}

// Reset clears all data.
func (s *Stochastics) Reset() {
	s.min.Reset()
	s.max.Reset()
	s.dNum.Reset()
	s.dDen.Reset()
	s.slowD.Reset()
	s.cur = StochasticsOutput{}
	s.primed = false
}
