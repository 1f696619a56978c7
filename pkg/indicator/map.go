package indicator

// Map applies a projection to every output of an indicator. The projection
// runs once per advance and once per valid Current call, so it should be
// cheap and free of side effects.
type Map[In, Mid, Out any] struct {
	inner Indicator[In, Mid]
	f     func(Mid) Out
}

// NewMap wraps inner so each of its outputs passes through f. The input
// type cannot be inferred from inner, so call sites name it explicitly:
//
//	NewMap[float64](sma, func(v float64) float64 { return v * 2 })
func NewMap[In, Mid, Out any](inner Indicator[In, Mid], f func(Mid) Out) *Map[In, Mid, Out] {
	return &Map[In, Mid, Out]{inner: inner, f: f}
}

// Next advances the wrapped indicator and returns the projected output.
func (m *Map[In, Mid, Out]) Next(in In) Out {
	return m.f(m.inner.Next(in))
}

// Current returns the projection of the wrapped indicator's current value.
func (m *Map[In, Mid, Out]) Current() (Out, bool) {
	v, ok := m.inner.Current()
	if !ok {
		var zero Out
		return zero, false
	}
	return m.f(v), true
}

// Reset resets the wrapped indicator.
func (m *Map[In, Mid, Out]) Reset() {
	m.inner.Reset()
}
