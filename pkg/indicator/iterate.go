package indicator

import "iter"

// Iter streams every value of seq through ind, yielding one output per
// input. The indicator keeps its state afterwards, so a partial range
// can be resumed or inspected with Current.
func Iter[In, Out any](ind Indicator[In, Out], seq iter.Seq[In]) iter.Seq[Out] {
	return func(yield func(Out) bool) {
		for in := range seq {
			if !yield(ind.Next(in)) {
				return
			}
		}
	}
}

// IterSlice advances ind over every input and collects the outputs.
func IterSlice[In, Out any](ind Indicator[In, Out], inputs []In) []Out {
	outs := make([]Out, 0, len(inputs))
	for _, in := range inputs {
		outs = append(outs, ind.Next(in))
	}
	return outs
}

// Apply advances ind over every input and reports its final value. With no
// inputs it simply reports the indicator's current state.
func Apply[In, Out any](ind Indicator[In, Out], inputs []In) (Out, bool) {
	for _, in := range inputs {
		ind.Next(in)
	}
	return ind.Current()
}
