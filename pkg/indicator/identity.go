package indicator

// Identity passes every input through unchanged. It anchors compositions
// whose one leg should see the raw series.
type Identity[T any] struct {
	cur    T
	primed bool
}

// NewIdentity returns an identity indicator.
func NewIdentity[T any]() *Identity[T] {
	return &Identity[T]{}
}

// Next returns the input unchanged.
func (i *Identity[T]) Next(in T) T {
	i.cur = in
	i.primed = true
	return in
}

// Current returns the most recent input.
func (i *Identity[T]) Current() (T, bool) {
	return i.cur, i.primed
}

// Reset clears the stored input.
func (i *Identity[T]) Reset() {
	var zero T
	i.cur = zero
	i.primed = false
}
