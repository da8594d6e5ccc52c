package profile

import (
	"math"
	"slices"
	"strconv"
)

// XValue is a single x-axis sample. A sample is either a number (wavelength,
// wavenumber, band index) or an ISO-8601 date string for temporal profiles.
// The zero value is the number 0.
type XValue struct {
	Num  float64
	Date string // non-empty means the sample is a date, Num is ignored
}

// XNum wraps a numeric x-axis sample.
func XNum(v float64) XValue { return XValue{Num: v} }

// XDate wraps an ISO-8601 date sample, e.g. "2024-05-17" or a full timestamp.
func XDate(s string) XValue { return XValue{Date: s} }

// IsDate reports whether the sample is a date rather than a number.
func (v XValue) IsDate() bool { return v.Date != "" }

// String renders the sample the way it appears in the text representation.
func (v XValue) String() string {
	if v.IsDate() {
		return v.Date
	}
	return strconv.FormatFloat(v.Num, 'g', -1, 64)
}

// XNums converts a plain numeric slice to x-axis samples.
func XNums(vs []float64) []XValue {
	if vs == nil {
		return nil
	}
	out := make([]XValue, len(vs))
	for i, v := range vs {
		out[i] = XValue{Num: v}
	}
	return out
}

// Profile is the canonical in-memory form of one spectral profile: paired
// x/y samples, units, and an optional bad band list. It is a pure value
// type: freely copyable, no identity, no hidden caches. Absent components
// are nil slices and empty unit strings; the encoded forms omit them
// entirely rather than storing explicit nulls.
type Profile struct {
	X     []XValue  // x-axis samples; nil when absent (band index implied)
	Y     []float64 // measured values; required for a non-empty profile
	XUnit string    // e.g. "nm", "Micrometers"; "" when absent
	YUnit string    // e.g. "Reflectance"; "" when absent
	BBL   []int     // 0/1 good-band flags, same length as Y; nil = all good
}

// Empty returns the canonical all-absent profile, the result of decoding an
// empty or unusable payload.
func Empty() Profile { return Profile{} }

// IsEmpty reports whether every component is absent.
func (p Profile) IsEmpty() bool {
	return p.X == nil && p.Y == nil && p.BBL == nil && p.XUnit == "" && p.YUnit == ""
}

// Valid reports whether the profile satisfies the structural invariants:
// a present X or BBL must match Y in length, and a profile with X or BBL
// but no Y is malformed. The empty profile is valid.
func (p Profile) Valid() bool {
	if p.Y == nil {
		return p.X == nil && p.BBL == nil
	}
	if p.X != nil && len(p.X) != len(p.Y) {
		return false
	}
	if p.BBL != nil && len(p.BBL) != len(p.Y) {
		return false
	}
	return true
}

// Validate is the permissive entry point used on foreign values: it accepts
// a Profile, a pointer to one, or any payload the codec understands, and
// reports whether the value is structurally a profile. It never panics and
// returns false for anything unrecognisable.
func Validate(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case Profile:
		return t.Valid()
	case *Profile:
		return t != nil && t.Valid()
	default:
		p, err := DecodeStrict(v)
		if err != nil {
			return false
		}
		return p.Valid()
	}
}

// Clone returns a deep copy. Profiles are values, but the slices they carry
// are shared on plain assignment; Clone severs that.
func (p Profile) Clone() Profile {
	return Profile{
		X:     slices.Clone(p.X),
		Y:     slices.Clone(p.Y),
		XUnit: p.XUnit,
		YUnit: p.YUnit,
		BBL:   slices.Clone(p.BBL),
	}
}

// Equal reports deep equality of two profiles. NaN y-values compare equal
// to NaN so that round-trip tests over sentinel no-data values hold.
func (p Profile) Equal(o Profile) bool {
	if p.XUnit != o.XUnit || p.YUnit != o.YUnit {
		return false
	}
	if !slices.Equal(p.X, o.X) || !slices.Equal(p.BBL, o.BBL) {
		return false
	}
	return slices.EqualFunc(p.Y, o.Y, func(a, b float64) bool {
		return a == b || (math.IsNaN(a) && math.IsNaN(b))
	})
}

// GoodBands returns the number of bands flagged good. With no bad band list
// every band counts as good.
func (p Profile) GoodBands() int {
	if p.BBL == nil {
		return len(p.Y)
	}
	n := 0
	for _, f := range p.BBL {
		if f != 0 {
			n++
		}
	}
	return n
}
