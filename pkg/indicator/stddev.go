package indicator

import "math"

// StdDevOutput carries the window mean together with its population
// standard deviation.
type StdDevOutput struct {
	Mean   float64
	StdDev float64
}

// StdDev computes the mean and population standard deviation of the last
// period inputs in a single pass, updating the sum of squared deviations
// incrementally as values enter and leave the window. The first input
// primes the whole window, giving a deviation of zero.
type StdDev struct {
	period int
	ring   []float64
	head   int // index of the oldest value once primed
	mean   float64
	sse    float64 // sum of squared deviations from the mean
	primed bool
}

// NewStdDev returns a StdDev over the given period.
func NewStdDev(period int) (*StdDev, error) {
	if period < 1 {
		return nil, &RangeError{Param: "period", Value: period, Min: 1}
	}
	return &StdDev{period: period, ring: make([]float64, period)}, nil
}

// Next consumes one input and returns the updated mean and deviation.
func (s *StdDev) Next(in float64) StdDevOutput {
	if !s.primed {
		for i := range s.ring {
			s.ring[i] = in
		}
		s.mean = in
		s.sse = 0
		s.primed = true
		return s.output()
	}
	old := s.ring[s.head]
	s.ring[s.head] = in
	s.head = (s.head + 1) % s.period
	delta := in - old
	oldMean := s.mean
	s.mean += delta / float64(s.period)
	s.sse += delta * (in - s.mean + old - oldMean)
	return s.output()
}

func (s *StdDev) output() StdDevOutput {
	return StdDevOutput{Mean: s.mean, StdDev: math.Sqrt(s.sse / float64(s.period))}
}

// Current returns the mean and deviation from the most recent advance.
func (s *StdDev) Current() (StdDevOutput, bool) {
	if !s.primed {
		return StdDevOutput{}, false
	}
	return s.output(), true
}

// Reset clears all data.
func (s *StdDev) Reset() {
	s.head = 0
	s.mean = 0
	s.sse = 0
	s.primed = false
}
