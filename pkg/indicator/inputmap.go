package indicator

// InputMap applies a projection to every input before it reaches the
// wrapped indicator. It is the building block that adapts record types,
// such as candles, to numeric indicators; the FromPrice family of
// constructors builds on it.
type InputMap[In, Mid, Out any] struct {
	inner Indicator[Mid, Out]
	f     func(In) Mid
}

// NewInputMap wraps inner so each input passes through f first.
func NewInputMap[In, Mid, Out any](inner Indicator[Mid, Out], f func(In) Mid) *InputMap[In, Mid, Out] {
	return &InputMap[In, Mid, Out]{inner: inner, f: f}
}

// Next projects the input and advances the wrapped indicator with it.
func (m *InputMap[In, Mid, Out]) Next(in In) Out {
	return m.inner.Next(m.f(in))
}

// Current returns the wrapped indicator's current value.
func (m *InputMap[In, Mid, Out]) Current() (Out, bool) {
	return m.inner.Current()
}

// Reset resets the wrapped indicator.
func (m *InputMap[In, Mid, Out]) Reset() {
	m.inner.Reset()
}
