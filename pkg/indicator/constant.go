package indicator

// Constant ignores every input and always produces the same value. It is
// useful as a fixed leg in compositions and in tests.
type Constant[In, Out any] struct {
	value Out
}

// NewConstant returns an indicator that always yields value.
func NewConstant[In, Out any](value Out) *Constant[In, Out] {
	return &Constant[In, Out]{value: value}
}

// Next discards the input and returns the constant.
func (c *Constant[In, Out]) Next(In) Out {
	return c.value
}

// Current always returns the constant.
func (c *Constant[In, Out]) Current() (Out, bool) {
	return c.value, true
}

// Reset does nothing; a constant has no state.
func (c *Constant[In, Out]) Reset() {}
