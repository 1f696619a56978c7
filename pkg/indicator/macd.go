package indicator

// Conventional MACD periods.
const (
	DefaultMACDShortPeriod  = 12
	DefaultMACDLongPeriod   = 26
	DefaultMACDSignalPeriod = 9
)

// MACDOutput carries the MACD line, its signal line, and their difference.
type MACDOutput struct {
	MACD      float64
	Signal    float64
	Histogram float64
}

// MACD computes moving average convergence divergence: the difference
// between a short and a long EMA of the input, a simple moving average of
// that difference as the signal line, and the histogram between the two.
type MACD struct {
	macd   *Diff[float64, float64, float64]
	signal *SMA
}

// NewMACD returns a MACD with the given short, long and signal periods.
// The short period must be strictly below the long one.
func NewMACD(shortPeriod, longPeriod, signalPeriod int) (*MACD, error) {
	if shortPeriod >= longPeriod {
		return nil, &RelationError{
			Left:       "short_period",
			Op:         "<",
			Right:      "long_period",
			LeftValue:  shortPeriod,
			RightValue: longPeriod,
		}
	}
	short, err := NewEMA(shortPeriod)
	if err != nil {
		return nil, err
	}
	long, err := NewEMA(longPeriod)
	if err != nil {
		return nil, err
	}
	signal, err := NewSMA(signalPeriod)
	if err != nil {
		return nil, err
	}
	return &MACD{macd: NewDiff[float64, float64, float64](short, long), signal: signal}, nil
}

// Next consumes one input and returns the updated lines.
func (m *MACD) Next(in float64) MACDOutput {
	macd := m.macd.Next(Pair[float64, float64]{Left: in, Right: in})
	signal := m.signal.Next(macd)
	return MACDOutput{MACD: macd, Signal: signal, Histogram: macd - signal}
}

// Current returns the lines from the most recent advance.
func (m *MACD) Current() (MACDOutput, bool) {
	macd, ok := m.macd.Current()
	if !ok {
		return MACDOutput{}, false
	}
	signal, ok := m.signal.Current()
	if !ok {
		return MACDOutput{}, false
	}
	return MACDOutput{MACD: macd, Signal: signal, Histogram: macd - signal}, true
}

// Reset clears all data.
func (m *MACD) Reset() {
	m.macd.Reset()
	m.signal.Reset()
}
