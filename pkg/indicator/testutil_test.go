package indicator

import (
	"math"
	"math/rand"
	"testing"
)

// precision below which two outputs count as equal in tests.
const precision = 1e-8

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= precision
}

// checkSeries advances nothing; it compares already collected outputs
// against the expected ones.
func checkSeries(t *testing.T, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d outputs, want %d", len(got), len(want))
	}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("output[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

// testSeries builds a reproducible random walk around 100.
func testSeries(n int) []float64 {
	rng := rand.New(rand.NewSource(7))
	out := make([]float64, n)
	price := 100.0
	for i := range out {
		price += rng.Float64()*2 - 1
		out[i] = price
	}
	return out
}

// testBars builds a reproducible series of random bars with consistent
// high/low bounds and positive volume.
func testBars(n int) []testBar {
	rng := rand.New(rand.NewSource(11))
	bars := make([]testBar, n)
	price := 100.0
	for i := range bars {
		price += rng.Float64()*2 - 1
		high := price + rng.Float64()
		low := price - rng.Float64()
		open := low + (high-low)*rng.Float64()
		bars[i] = testBar{open: open, high: high, low: low, close: price, volume: 1 + rng.Float64()*99}
	}
	return bars
}

// testBar is a record type exercising the capability interfaces.
type testBar struct {
	open, high, low, close, volume float64
}

func (b testBar) Open() float64   { return b.open }
func (b testBar) High() float64   { return b.high }
func (b testBar) Low() float64    { return b.low }
func (b testBar) Close() float64  { return b.close }
func (b testBar) Volume() float64 { return b.volume }
func (b testBar) Price() float64  { return WeightedClose(b) }

// trailingWindow copies the period values ending at index i, repeating the
// first series value while the prefix is still short. It mirrors how the
// windowed indicators prime themselves.
func trailingWindow(series []float64, i, period int) []float64 {
	win := make([]float64, period)
	for j := 0; j < period; j++ {
		k := i - period + 1 + j
		if k < 0 {
			k = 0
		}
		win[j] = series[k]
	}
	return win
}

// checkResetRerun feeds inputs, resets, feeds them again and expects the
// two runs to agree exactly.
func checkResetRerun[In any, Out comparable](t *testing.T, ind Indicator[In, Out], inputs []In) {
	t.Helper()
	first := make([]Out, 0, len(inputs))
	for _, in := range inputs {
		first = append(first, ind.Next(in))
	}
	ind.Reset()
	if _, ok := ind.Current(); ok {
		t.Fatal("Current() reports a value right after Reset()")
	}
	for i, in := range inputs {
		if got := ind.Next(in); got != first[i] {
			t.Fatalf("rerun output[%d] = %v, want %v", i, got, first[i])
		}
	}
}

// checkCurrentMatchesNext verifies that after every advance Current
// reports exactly the value Next returned.
func checkCurrentMatchesNext[In any, Out comparable](t *testing.T, ind Indicator[In, Out], inputs []In) {
	t.Helper()
	if _, ok := ind.Current(); ok {
		t.Fatal("Current() reports a value before the first advance")
	}
	for i, in := range inputs {
		want := ind.Next(in)
		got, ok := ind.Current()
		if !ok {
			t.Fatalf("Current() reports no value after advance %d", i)
		}
		if got != want {
			t.Fatalf("Current() = %v after advance %d, want %v", got, i, want)
		}
	}
}
