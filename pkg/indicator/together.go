package indicator

// Together drives two indicators with the same input and pairs their
// outputs. The left indicator advances first on every call.
type Together[In, L, R any] struct {
	lhs Indicator[In, L]
	rhs Indicator[In, R]
}

// NewTogether returns the parallel combination of lhs and rhs.
func NewTogether[In, L, R any](lhs Indicator[In, L], rhs Indicator[In, R]) *Together[In, L, R] {
	return &Together[In, L, R]{lhs: lhs, rhs: rhs}
}

// Next advances both indicators with the input and pairs their outputs.
func (t *Together[In, L, R]) Next(in In) Pair[L, R] {
	left := t.lhs.Next(in)
	right := t.rhs.Next(in)
	return Pair[L, R]{Left: left, Right: right}
}

// Current pairs both current values; it reports false unless both sides
// have one.
func (t *Together[In, L, R]) Current() (Pair[L, R], bool) {
	left, lok := t.lhs.Current()
	right, rok := t.rhs.Current()
	if !lok || !rok {
		return Pair[L, R]{}, false
	}
	return Pair[L, R]{Left: left, Right: right}, true
}

// Reset resets both indicators.
func (t *Together[In, L, R]) Reset() {
	t.lhs.Reset()
	t.rhs.Reset()
}
