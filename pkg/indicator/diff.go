package indicator

import "golang.org/x/exp/constraints"

// Number is the constraint on Diff outputs: any type with built-in
// subtraction.
type Number interface {
	constraints.Integer | constraints.Float
}

// Diff advances two indicators from the two halves of a paired input and
// emits the left output minus the right one. The left indicator advances
// first on every call.
type Diff[L, R any, N Number] struct {
	lhs Indicator[L, N]
	rhs Indicator[R, N]
}

// NewDiff returns the difference of lhs and rhs.
func NewDiff[L, R any, N Number](lhs Indicator[L, N], rhs Indicator[R, N]) *Diff[L, R, N] {
	return &Diff[L, R, N]{lhs: lhs, rhs: rhs}
}

// Next advances both indicators and returns left minus right.
func (d *Diff[L, R, N]) Next(in Pair[L, R]) N {
	left := d.lhs.Next(in.Left)
	right := d.rhs.Next(in.Right)
	return left - right
}

// Current returns the difference of both current values; it reports false
// unless both sides have one.
func (d *Diff[L, R, N]) Current() (N, bool) {
	left, lok := d.lhs.Current()
	right, rok := d.rhs.Current()
	if !lok || !rok {
		var zero N
		return zero, false
	}
	return left - right, true
}

// Reset resets both indicators.
func (d *Diff[L, R, N]) Reset() {
	d.lhs.Reset()
	d.rhs.Reset()
}
