package indicator

// Max tracks the highest of the last period inputs. The first input primes
// the whole window.
type Max struct {
	period int
	ring   []float64
	head   int // index of the oldest value once primed
	max    float64
	primed bool
}

// NewMax returns a Max over the given period.
func NewMax(period int) (*Max, error) {
	if period < 1 {
		return nil, &RangeError{Param: "period", Value: period, Min: 1}
	}
	return &Max{period: period, ring: make([]float64, period)}, nil
}

// Next consumes one input and returns the highest value in the window.
func (m *Max) Next(in float64) float64 {
	if !m.primed {
		for i := range m.ring {
			m.ring[i] = in
		}
		m.max = in
		m.primed = true
		return m.max
	}
	old := m.ring[m.head]
	m.ring[m.head] = in
	m.head = (m.head + 1) % m.period
	switch {
	case m.max <= in:
		m.max = in
	case m.max == old:
		// The maximum just left the window; rescan.
		m.max = m.ring[0]
		for _, v := range m.ring[1:] {
			if v > m.max {
				m.max = v
			}
		}
	}
	return m.max
}

// Current returns the maximum from the most recent advance.
func (m *Max) Current() (float64, bool) {
	return m.max, m.primed
}

// Reset clears all data.
func (m *Max) Reset() {
	m.head = 0
	m.max = 0
	m.primed = false
}
