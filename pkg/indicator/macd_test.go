package indicator

import (
	"errors"
	"testing"
)

func TestMACD_KnownSeries(t *testing.T) {
	macd, err := NewMACD(2, 4, 2)
	if err != nil {
		t.Fatalf("NewMACD(2, 4, 2): %v", err)
	}

	inputs := []float64{100, 200, 300, 200, 100, 0}
	want := []MACDOutput{
		{MACD: 0, Signal: 0, Histogram: 0},
		{MACD: 26.66666667, Signal: 13.33333333, Histogram: 13.33333333},
		{MACD: 51.55555556, Signal: 39.11111111, Histogram: 12.44444444},
		{MACD: 16.11851852, Signal: 33.83703704, Histogram: -17.71851852},
		{MACD: -21.93382716, Signal: -2.90765432, Histogram: -19.02617284},
		{MACD: -50.36194239, Signal: -36.14788477, Histogram: -14.21405761},
	}
	for i, in := range inputs {
		got := macd.Next(in)
		if !almostEqual(got.MACD, want[i].MACD) ||
			!almostEqual(got.Signal, want[i].Signal) ||
			!almostEqual(got.Histogram, want[i].Histogram) {
			t.Errorf("output[%d] = %+v, want %+v", i, got, want[i])
		}
	}
}

func TestMACD_InvalidPeriods(t *testing.T) {
	cases := [][3]int{
		{0, 2, 2},
		{2, 0, 2},
		{2, 3, 0},
	}
	for _, c := range cases {
		_, err := NewMACD(c[0], c[1], c[2])
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("NewMACD(%d, %d, %d) error = %v, want ErrInvalidParameter", c[0], c[1], c[2], err)
		}
	}
}

func TestMACD_ShortMustBeBelowLong(t *testing.T) {
	_, err := NewMACD(26, 12, 9)
	var relErr *RelationError
	if !errors.As(err, &relErr) {
		t.Fatalf("NewMACD(26, 12, 9) error = %v, want RelationError", err)
	}
	want := "expected to be short_period < long_period, found 26 < 12."
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestMACD_CurrentAndReset(t *testing.T) {
	macd, err := NewMACD(DefaultMACDShortPeriod, DefaultMACDLongPeriod, DefaultMACDSignalPeriod)
	if err != nil {
		t.Fatalf("NewMACD: %v", err)
	}
	checkCurrentMatchesNext[float64, MACDOutput](t, macd, testSeries(60))

	macd.Reset()
	checkResetRerun[float64, MACDOutput](t, macd, testSeries(60))
}
