package indicator

// SMA computes a simple moving average: the arithmetic mean of the last
// period inputs. The first input primes the whole window, so every advance
// yields a defined mean.
type SMA struct {
	period int
	ring   []float64
	head   int // index of the oldest value once primed
	sum    float64
	cur    float64
	primed bool
}

// NewSMA returns an SMA over the given period.
func NewSMA(period int) (*SMA, error) {
	if period < 1 {
		return nil, &RangeError{Param: "period", Value: period, Min: 1}
	}
	return &SMA{period: period, ring: make([]float64, period)}, nil
}

// Next consumes one input and returns the mean of the updated window.
func (s *SMA) Next(in float64) float64 {
	if !s.primed {
		for i := range s.ring {
			s.ring[i] = in
		}
		s.sum = in * float64(s.period)
		s.primed = true
	} else {
		old := s.ring[s.head]
		s.ring[s.head] = in
		s.head = (s.head + 1) % s.period
		s.sum += in - old
	}
	s.cur = s.sum / float64(s.period)
	return s.cur
}

// Current returns the mean from the most recent advance.
func (s *SMA) Current() (float64, bool) {
	return s.cur, s.primed
}

// Reset clears all data.
func (s *SMA) Reset() {
	s.head = 0
	s.sum = 0
	s.cur = 0
	s.primed = false
}
