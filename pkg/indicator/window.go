package indicator

// Window collects the last size outputs of an indicator into a slice,
// oldest first. Until size outputs have arrived, the earliest output pads
// the front of the slice. Every advance and every valid Current call
// returns a freshly allocated copy, so callers may keep or modify the
// slice without corrupting the window.
type Window[In, Out any] struct {
	inner Indicator[In, Out]
	size  int
	ring  []Out // grows to size, then recycles via head
	head  int   // index of the oldest output once full
}

// NewWindow wraps inner so each advance also yields its trailing outputs.
func NewWindow[In, Out any](inner Indicator[In, Out], size int) (*Window[In, Out], error) {
	if size < 1 {
		return nil, &RangeError{Param: "size", Value: size, Min: 1}
	}
	return &Window[In, Out]{inner: inner, size: size, ring: make([]Out, 0, size)}, nil
}

// Next advances the wrapped indicator and returns the updated window.
func (w *Window[In, Out]) Next(in In) []Out {
	out := w.inner.Next(in)
	if len(w.ring) < w.size {
		w.ring = append(w.ring, out)
	} else {
		w.ring[w.head] = out
		w.head = (w.head + 1) % w.size
	}
	return w.view()
}

// view copies the window out, oldest first, padding the front with the
// earliest output while the ring is still filling.
func (w *Window[In, Out]) view() []Out {
	v := make([]Out, w.size)
	if len(w.ring) < w.size {
		pad := w.size - len(w.ring)
		for i := 0; i <= pad; i++ {
			v[i] = w.ring[0]
		}
		copy(v[pad+1:], w.ring[1:])
		return v
	}
	for i := range v {
		v[i] = w.ring[(w.head+i)%w.size]
	}
	return v
}

// Current returns a copy of the window from the most recent advance.
func (w *Window[In, Out]) Current() ([]Out, bool) {
	if len(w.ring) == 0 {
		return nil, false
	}
	return w.view(), true
}

// Reset resets the wrapped indicator and empties the window.
func (w *Window[In, Out]) Reset() {
	w.inner.Reset()
	w.ring = w.ring[:0]
	w.head = 0
}
