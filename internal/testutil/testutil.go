// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"testing"

	"github.com/fieldspec/speclib/profile"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertProfilesEqual fails the test when two profiles differ.
func AssertProfilesEqual(t *testing.T, got, want profile.Profile) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("profile mismatch:\n  got  %+v\n  want %+v", got, want)
	}
}

// Reflectance builds a test profile on a nanometer grid starting at 400nm
// with 10nm spacing and the given y values.
func Reflectance(y ...float64) profile.Profile {
	x := make([]profile.XValue, len(y))
	for i := range x {
		x[i] = profile.XNum(400 + 10*float64(i))
	}
	return profile.Profile{
		X:     x,
		Y:     y,
		XUnit: profile.UnitNanometers,
		YUnit: profile.UnitReflectance,
	}
}

// BareProfile builds a test profile with only y values, leaving the x-axis
// to default to the band index.
func BareProfile(y ...float64) profile.Profile {
	return profile.Profile{Y: y}
}
