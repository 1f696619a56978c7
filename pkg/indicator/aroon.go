package indicator

// DefaultAroonPeriod is the conventional Aroon look-back.
const DefaultAroonPeriod = 14

// AroonOutput carries the up and down lines, each on a 0..1 scale.
type AroonOutput struct {
	Up   float64
	Down float64
}

// Aroon measures how recently the highest and lowest values of the last
// period+1 inputs arrived: 1 when the extreme is the newest input, falling
// towards 0 as it ages out of the window.
type Aroon struct {
	period int
	maxIdx *MaxIndex
	minIdx *MinIndex
}

// NewAroon returns an Aroon over the given period.
func NewAroon(period int) (*Aroon, error) {
	if period < 1 {
		return nil, &RangeError{Param: "period", Value: period, Min: 1}
	}
	maxIdx, err := NewMaxIndex(period + 1)
	if err != nil {
		return nil, err
	}
	minIdx, err := NewMinIndex(period + 1)
	if err != nil {
		return nil, err
	}
	return &Aroon{period: period, maxIdx: maxIdx, minIdx: minIdx}, nil
}

// Next consumes one input and returns the updated lines.
func (a *Aroon) Next(in float64) AroonOutput {
	return a.lines(a.maxIdx.Next(in), a.minIdx.Next(in))
}

func (a *Aroon) lines(maxIdx, minIdx int) AroonOutput {
	return AroonOutput{
		Up:   float64(a.period-maxIdx) / float64(a.period),
		Down: float64(a.period-minIdx) / float64(a.period),
	}
}

// Current returns the lines from the most recent advance.
func (a *Aroon) Current() (AroonOutput, bool) {
	maxIdx, ok := a.maxIdx.Current()
	if !ok {
		return AroonOutput{}, false
	}
	minIdx, ok := a.minIdx.Current()
	if !ok {
		return AroonOutput{}, false
	}
	return a.lines(maxIdx, minIdx), true
}

// Reset clears all data.
func (a *Aroon) Reset() {
	a.maxIdx.Reset()
	a.minIdx.Reset()
}

// AroonOscillator collapses Aroon into a single -1..1 line: the up line
// minus the down line.
type AroonOscillator struct {
	aroon *Aroon
}

// NewAroonOscillator returns an AroonOscillator over the given period.
func NewAroonOscillator(period int) (*AroonOscillator, error) {
	aroon, err := NewAroon(period)
	if err != nil {
		return nil, err
	}
	return &AroonOscillator{aroon: aroon}, nil
}

// Next consumes one input and returns the updated oscillator value.
func (a *AroonOscillator) Next(in float64) float64 {
	out := a.aroon.Next(in)
	return out.Up - out.Down
}

// Current returns the oscillator value from the most recent advance.
func (a *AroonOscillator) Current() (float64, bool) {
	out, ok := a.aroon.Current()
	if !ok {
		return 0, false
	}
	return out.Up - out.Down, true
}

// Reset clears all data.
func (a *AroonOscillator) Reset() {
	a.aroon.Reset()
}
