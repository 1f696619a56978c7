package indicator

import (
	"errors"
	"testing"
)

func TestVWMA_KnownSeries(t *testing.T) {
	vwma, err := NewVWMA(4)
	if err != nil {
		t.Fatalf("NewVWMA(4): %v", err)
	}

	inputs := []PriceVolume{
		{Price: 101, Volume: 1},
		{Price: 102, Volume: 1},
		{Price: 101, Volume: 2},
		{Price: 102, Volume: 2},
		{Price: 102, Volume: 3},
		{Price: 102, Volume: 1},
	}
	want := []float64{101, 101.25, 101.2, 101.5, 101.75, 101.75}
	checkSeries(t, IterSlice[PriceVolume, float64](vwma, inputs), want)
}

func TestVWMA_InvalidPeriod(t *testing.T) {
	_, err := NewVWMA(0)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("NewVWMA(0) error = %v, want ErrInvalidParameter", err)
	}
}

func TestVWMA_CurrentAndReset(t *testing.T) {
	vwma, err := NewVWMA(5)
	if err != nil {
		t.Fatalf("NewVWMA(5): %v", err)
	}

	bars := testBars(50)
	inputs := make([]PriceVolume, len(bars))
	for i, b := range bars {
		inputs[i] = PriceVolume{Price: b.Price(), Volume: b.Volume()}
	}
	checkCurrentMatchesNext[PriceVolume, float64](t, vwma, inputs)

	vwma.Reset()
	checkResetRerun[PriceVolume, float64](t, vwma, inputs)
}
