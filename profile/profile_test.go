package profile

import (
	"math"
	"testing"
)

func TestValid(t *testing.T) {
	tests := []struct {
		name  string
		p     Profile
		valid bool
	}{
		{"empty", Profile{}, true},
		{"y only", Profile{Y: []float64{1, 2, 3}}, true},
		{"empty y", Profile{Y: []float64{}}, true},
		{"matching x", Profile{X: XNums([]float64{1, 2, 3}), Y: []float64{1, 2, 3}}, true},
		{"matching bbl", Profile{Y: []float64{1, 2}, BBL: []int{1, 0}}, true},
		{"mismatched x", Profile{X: XNums([]float64{1, 2, 3, 4}), Y: []float64{1, 2, 3}}, false},
		{"mismatched bbl", Profile{Y: []float64{1, 2, 3}, BBL: []int{1}}, false},
		{"x without y", Profile{X: XNums([]float64{1, 2})}, false},
		{"bbl without y", Profile{BBL: []int{1, 1}}, false},
		{"units only", Profile{XUnit: "nm", YUnit: "Reflectance"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, expected %v", got, tt.valid)
			}
		})
	}
}

func TestValidateForeignValues(t *testing.T) {
	tests := []struct {
		name  string
		v     any
		valid bool
	}{
		{"nil", nil, true},
		{"profile value", Profile{Y: []float64{1}}, true},
		{"profile pointer", &Profile{Y: []float64{1}}, true},
		{"nil pointer", (*Profile)(nil), false},
		{"map with y", map[string]any{"y": []float64{1, 2}}, true},
		{"map with mismatched x", map[string]any{"x": []float64{1}, "y": []float64{1, 2}}, false},
		{"json text", `{"y":[1,2,3]}`, true},
		{"garbage text", "not json", false},
		{"garbage blob", []byte{0xff, 0x00, 0x13}, false},
		{"number", 42, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validate(tt.v); got != tt.valid {
				t.Errorf("Validate(%v) = %v, expected %v", tt.v, got, tt.valid)
			}
		})
	}
}

func TestCloneSeversSlices(t *testing.T) {
	p := Profile{X: XNums([]float64{1, 2}), Y: []float64{3, 4}, BBL: []int{1, 1}}
	c := p.Clone()
	c.Y[0] = 99
	c.X[0] = XNum(99)
	c.BBL[0] = 0
	if p.Y[0] != 3 || p.X[0].Num != 1 || p.BBL[0] != 1 {
		t.Error("Clone shares slices with the source profile")
	}
}

func TestEqualTreatsNaNAsEqual(t *testing.T) {
	a := Profile{Y: []float64{1, math.NaN()}}
	b := Profile{Y: []float64{1, math.NaN()}}
	if !a.Equal(b) {
		t.Error("profiles with identical NaN positions should compare equal")
	}
	c := Profile{Y: []float64{1, 2}}
	if a.Equal(c) {
		t.Error("NaN should not compare equal to a number")
	}
}

func TestGoodBands(t *testing.T) {
	p := Profile{Y: []float64{1, 2, 3}}
	if got := p.GoodBands(); got != 3 {
		t.Errorf("GoodBands() without bbl = %d, expected 3", got)
	}
	p.BBL = []int{1, 0, 1}
	if got := p.GoodBands(); got != 2 {
		t.Errorf("GoodBands() = %d, expected 2", got)
	}
}

func TestXValue(t *testing.T) {
	if XNum(500).IsDate() {
		t.Error("numeric sample reported as date")
	}
	if !XDate("2024-05-17").IsDate() {
		t.Error("date sample not reported as date")
	}
	if got := XNum(500.5).String(); got != "500.5" {
		t.Errorf("String() = %q, expected %q", got, "500.5")
	}
	if got := XDate("2024-05-17").String(); got != "2024-05-17" {
		t.Errorf("String() = %q, expected %q", got, "2024-05-17")
	}
}
