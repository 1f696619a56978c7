package indicator

import "testing"

func TestVWAP_KnownSeries(t *testing.T) {
	vwap := NewVWAP()

	inputs := []PriceVolume{
		{Price: 101, Volume: 1},
		{Price: 102, Volume: 1},
		{Price: 101, Volume: 2},
		{Price: 102, Volume: 2},
		{Price: 102, Volume: 2},
		{Price: 102, Volume: 2},
	}
	want := []float64{101, 101.5, 101.25, 101.5, 101.625, 101.7}
	checkSeries(t, IterSlice[PriceVolume, float64](vwap, inputs), want)
}

func TestVWAP_CurrentAndReset(t *testing.T) {
	vwap := NewVWAP()

	bars := testBars(50)
	inputs := make([]PriceVolume, len(bars))
	for i, b := range bars {
		inputs[i] = PriceVolume{Price: b.Price(), Volume: b.Volume()}
	}
	checkCurrentMatchesNext[PriceVolume, float64](t, vwap, inputs)

	vwap.Reset()
	checkResetRerun[PriceVolume, float64](t, vwap, inputs)
}
