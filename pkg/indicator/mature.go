package indicator

// Mature hides the first period outputs of an indicator while it warms up.
// The child still advances on every call, but Next returns an invalid
// Maybe until period outputs have been suppressed, and Current reports
// nothing over the same span. From then on outputs flow through untouched.
type Mature[In, Out any] struct {
	inner  Indicator[In, Out]
	period int
	cnt    int
}

// NewMature wraps inner so its first period outputs are withheld. A
// period of zero passes everything through from the first advance.
func NewMature[In, Out any](inner Indicator[In, Out], period int) (*Mature[In, Out], error) {
	if period < 0 {
		return nil, &RangeError{Param: "period", Value: period, Min: 0}
	}
	return &Mature[In, Out]{inner: inner, period: period, cnt: period + 1}, nil
}

// Next advances the wrapped indicator and returns its output once the
// warm-up span has passed.
func (m *Mature[In, Out]) Next(in In) Maybe[Out] {
	out := m.inner.Next(in)
	if m.cnt <= 1 {
		m.cnt = 0
		return Maybe[Out]{Value: out, Valid: true}
	}
	m.cnt--
	return Maybe[Out]{}
}

// Current returns the wrapped indicator's current value once mature.
func (m *Mature[In, Out]) Current() (Maybe[Out], bool) {
	if m.cnt > 0 {
		return Maybe[Out]{}, false
	}
	v, ok := m.inner.Current()
	return Maybe[Out]{Value: v, Valid: ok}, true
}

// Reset resets the wrapped indicator and restarts the warm-up span.
func (m *Mature[In, Out]) Reset() {
	m.inner.Reset()
	m.cnt = m.period + 1
}
