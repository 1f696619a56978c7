package indicator

// Composition chains two indicators in series: every output of the inner
// one becomes an input of the outer one. The intermediate value is not
// observable through the composite; Current reports the outer indicator
// only.
type Composition[In, Mid, Out any] struct {
	inner Indicator[In, Mid]
	outer Indicator[Mid, Out]
}

// NewComposition returns the serial composition of inner feeding outer.
func NewComposition[In, Mid, Out any](inner Indicator[In, Mid], outer Indicator[Mid, Out]) *Composition[In, Mid, Out] {
	return &Composition[In, Mid, Out]{inner: inner, outer: outer}
}

// Pushforward chains inner into outer, naming the receiving stage first.
// It builds the same composite as NewComposition(inner, outer).
func Pushforward[In, Mid, Out any](outer Indicator[Mid, Out], inner Indicator[In, Mid]) *Composition[In, Mid, Out] {
	return NewComposition(inner, outer)
}

// Pullback chains inner into outer, naming the feeding stage first. It
// builds the same composite as NewComposition(inner, outer).
func Pullback[In, Mid, Out any](inner Indicator[In, Mid], outer Indicator[Mid, Out]) *Composition[In, Mid, Out] {
	return NewComposition(inner, outer)
}

// Next advances the inner indicator and feeds its output to the outer one.
func (c *Composition[In, Mid, Out]) Next(in In) Out {
	return c.outer.Next(c.inner.Next(in))
}

// Current returns the outer indicator's current value.
func (c *Composition[In, Mid, Out]) Current() (Out, bool) {
	return c.outer.Current()
}

// Reset resets both stages.
func (c *Composition[In, Mid, Out]) Reset() {
	c.inner.Reset()
	c.outer.Reset()
}
