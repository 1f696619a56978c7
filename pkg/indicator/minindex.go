package indicator

// MinIndex reports how many advances ago the lowest value of the last
// period inputs arrived, 0 meaning the newest input. Ties resolve to the
// most recent occurrence. The first input primes the whole window.
type MinIndex struct {
	period int
	ring   []float64
	head   int // slot of the newest value
	idx    int // offset of the minimum, 0 = newest
	primed bool
}

// NewMinIndex returns a MinIndex over the given period.
func NewMinIndex(period int) (*MinIndex, error) {
	if period < 1 {
		return nil, &RangeError{Param: "period", Value: period, Min: 1}
	}
	return &MinIndex{period: period, ring: make([]float64, period)}, nil
}

// at reads the value i advances back from the newest one.
func (m *MinIndex) at(i int) float64 {
	return m.ring[(m.head+i)%m.period]
}

// Next consumes one input and returns the offset of the window minimum.
func (m *MinIndex) Next(in float64) int {
	if !m.primed {
		for i := range m.ring {
			m.ring[i] = in
		}
		m.idx = 0
		m.primed = true
		return m.idx
	}
	minVal := m.at(m.idx)
	head := (m.head + m.period - 1) % m.period
	old := m.ring[head]
	m.ring[head] = in
	m.head = head
	switch {
	case in <= minVal:
		m.idx = 0
	case minVal == old:
		// The minimum just left the window; rescan.
		for i := 0; i < m.period; i++ {
			if m.at(m.idx) > m.at(i) {
				m.idx = i
			}
		}
	default:
		m.idx++
	}
	return m.idx
}

// Current returns the offset from the most recent advance.
func (m *MinIndex) Current() (int, bool) {
	return m.idx, m.primed
}

// Reset clears all data.
func (m *MinIndex) Reset() {
	m.head = 0
	m.idx = 0
	m.primed = false
}
