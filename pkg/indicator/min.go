package indicator

// Min tracks the lowest of the last period inputs. The first input primes
// the whole window.
type Min struct {
	period int
	ring   []float64
	head   int // index of the oldest value once primed
	min    float64
	primed bool
}

// NewMin returns a Min over the given period.
func NewMin(period int) (*Min, error) {
	if period < 1 {
		return nil, &RangeError{Param: "period", Value: period, Min: 1}
	}
	return &Min{period: period, ring: make([]float64, period)}, nil
}

// Next consumes one input and returns the lowest value in the window.
func (m *Min) Next(in float64) float64 {
	if !m.primed {
		for i := range m.ring {
			m.ring[i] = in
		}
		m.min = in
		m.primed = true
		return m.min
	}
	old := m.ring[m.head]
	m.ring[m.head] = in
	m.head = (m.head + 1) % m.period
	switch {
	case m.min >= in:
		m.min = in
	case m.min == old:
		// The minimum just left the window; rescan.
		m.min = m.ring[0]
		for _, v := range m.ring[1:] {
			if v < m.min {
				m.min = v
			}
		}
	}
	return m.min
}

// Current returns the minimum from the most recent advance.
func (m *Min) Current() (float64, bool) {
	return m.min, m.primed
}

// Reset clears all data.
func (m *Min) Reset() {
	m.head = 0
	m.min = 0
	m.primed = false
}
