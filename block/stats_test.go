package block

import (
	"math"
	"slices"
	"testing"

	"github.com/fieldspec/speclib/profile"
)

func TestSummary(t *testing.T) {
	a := profile.Profile{X: profile.XNums([]float64{400, 410}), Y: []float64{1, 10}, XUnit: "nm"}
	b := a.Clone()
	b.Y = []float64{3, 20}
	blk, err := Assemble(singleGroup(t, record(t, 1, a, nil), record(t, 2, b, nil)))
	if err != nil {
		t.Fatal(err)
	}

	s := blk.Summary()
	if !slices.Equal(s.Mean, []float64{2, 15}) {
		t.Errorf("Mean = %v, expected [2 15]", s.Mean)
	}
	if !slices.Equal(s.Min, []float64{1, 10}) || !slices.Equal(s.Max, []float64{3, 20}) {
		t.Errorf("Min/Max = %v / %v", s.Min, s.Max)
	}
	if !slices.Equal(s.N, []int{2, 2}) {
		t.Errorf("N = %v, expected [2 2]", s.N)
	}
	// Sample standard deviation of {1,3} and {10,20}.
	if math.Abs(s.StdDev[0]-math.Sqrt2) > 1e-12 {
		t.Errorf("StdDev[0] = %v, expected sqrt(2)", s.StdDev[0])
	}
}

func TestSummarySkipsMaskedSamples(t *testing.T) {
	a := profile.Profile{Y: []float64{2, 2}}
	b := profile.Profile{Y: []float64{8, 8}}
	blk, err := Assemble(singleGroup(t, record(t, 1, a, nil), record(t, 2, b, nil)))
	if err != nil {
		t.Fatal(err)
	}
	blk.MaskProfile(1)

	s := blk.Summary()
	if !slices.Equal(s.Mean, []float64{2, 2}) {
		t.Errorf("Mean over masked block = %v, expected [2 2]", s.Mean)
	}
	if !slices.Equal(s.N, []int{1, 1}) {
		t.Errorf("N = %v, expected [1 1]", s.N)
	}
	if s.StdDev[0] != 0 {
		t.Errorf("single-sample StdDev = %v, expected 0", s.StdDev[0])
	}
}

func TestSummaryAllMasked(t *testing.T) {
	blk, err := Assemble(singleGroup(t, record(t, 1, profile.Profile{Y: []float64{1}}, nil)))
	if err != nil {
		t.Fatal(err)
	}
	blk.MaskProfile(0)
	s := blk.Summary()
	if !math.IsNaN(s.Mean[0]) || !math.IsNaN(s.Min[0]) {
		t.Errorf("fully masked band should summarise as NaN, got mean=%v min=%v", s.Mean[0], s.Min[0])
	}
	if s.N[0] != 0 {
		t.Errorf("N = %d, expected 0", s.N[0])
	}
}

func TestMeanProfile(t *testing.T) {
	a := profile.Profile{X: profile.XNums([]float64{400, 410}), Y: []float64{0.2, 0.4}, XUnit: "nm", YUnit: "Reflectance"}
	b := a.Clone()
	b.Y = []float64{0.4, 0.6}
	blk, err := Assemble(singleGroup(t, record(t, 1, a, nil), record(t, 2, b, nil)))
	if err != nil {
		t.Fatal(err)
	}

	mean := blk.MeanProfile()
	if !mean.Valid() {
		t.Fatal("mean profile must be valid")
	}
	if math.Abs(mean.Y[0]-0.3) > 1e-12 || math.Abs(mean.Y[1]-0.5) > 1e-12 {
		t.Errorf("mean y = %v, expected [0.3 0.5]", mean.Y)
	}
	if mean.XUnit != "nm" || mean.YUnit != "Reflectance" {
		t.Error("mean profile lost the setting's units")
	}
	if !slices.Equal(mean.X, a.X) {
		t.Error("mean profile lost the shared x axis")
	}
}
