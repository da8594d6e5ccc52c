// Package-level unit vocabulary and normalization for profile axes.

package profile

import "strings"

// Common x-axis unit constants. Stored values are free-form strings coming
// from vendor files; these are the spellings the library itself writes.
const (
	UnitNanometers  = "nm"
	UnitMicrometers = "μm"
	UnitMillimeters = "mm"
	UnitBandIndex   = "Band Index"
	UnitDateTime    = "DateTime"
)

// Common y-axis unit constants.
const (
	UnitReflectance = "Reflectance"
	UnitRadiance    = "Radiance"
)

// unitAliases folds the spellings seen in vendor files onto the canonical
// constants. Matching is case-insensitive.
var unitAliases = map[string]string{
	"nm":          UnitNanometers,
	"nanometers":  UnitNanometers,
	"nanometres":  UnitNanometers,
	"um":          UnitMicrometers,
	"μm":          UnitMicrometers,
	"micrometers": UnitMicrometers,
	"micrometres": UnitMicrometers,
	"microns":     UnitMicrometers,
	"mm":          UnitMillimeters,
	"millimeters": UnitMillimeters,
	"millimetres": UnitMillimeters,
	"band index":  UnitBandIndex,
	"band number": UnitBandIndex,
	"index":       UnitBandIndex,
	"datetime":    UnitDateTime,
	"date":        UnitDateTime,
	"decimal year": UnitDateTime,
}

// NormalizeUnit maps a free-form unit string onto the canonical spelling.
// Empty and all-whitespace strings normalize to "" so that "" and absent
// compare equal when grouping. Unknown units pass through trimmed.
func NormalizeUnit(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return ""
	}
	if canonical, ok := unitAliases[strings.ToLower(u)]; ok {
		return canonical
	}
	return u
}

// wavelengthScale gives the factor from a unit to nanometers.
var wavelengthScale = map[string]float64{
	UnitNanometers:  1,
	UnitMicrometers: 1e3,
	UnitMillimeters: 1e6,
}

// ConvertWavelength converts a wavelength value between length units.
// Values in non-length units (band index, dates, unknown) are returned
// unchanged, mirroring the tolerant behaviour of the formats being read.
func ConvertWavelength(v float64, fromUnit, toUnit string) float64 {
	from, okFrom := wavelengthScale[NormalizeUnit(fromUnit)]
	to, okTo := wavelengthScale[NormalizeUnit(toUnit)]
	if !okFrom || !okTo {
		return v
	}
	return v * from / to
}

// IsWavelengthUnit reports whether the unit denotes a physical wavelength
// scale convertible by ConvertWavelength.
func IsWavelengthUnit(u string) bool {
	_, ok := wavelengthScale[NormalizeUnit(u)]
	return ok
}
