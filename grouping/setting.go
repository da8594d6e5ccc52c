package grouping

import (
	"slices"
	"strconv"
	"strings"

	"github.com/fieldspec/speclib/profile"
)

// Setting is the grouping key of a profile: its x-axis samples, normalized
// units and bad band list. Two profiles with equal settings share a
// wavelength grid and can be stacked into the same block. A Setting is
// immutable; its canonical key is computed once at construction.
//
// The source field name is carried as provenance and is excluded from
// equality by default (see Options.GroupByField).
type Setting struct {
	x     []profile.XValue
	xUnit string
	yUnit string
	bbl   []int
	field string
	key   string
}

// NewSetting derives a setting from a decoded profile. A profile without an
// x-axis gets the sequential band index 0..len(y)-1. Units are normalized so
// that "" and absent compare equal, and x/bbl are copied so later mutation
// of the profile cannot reach into the key.
func NewSetting(p profile.Profile, fieldName string) Setting {
	s := Setting{
		xUnit: profile.NormalizeUnit(p.XUnit),
		yUnit: profile.NormalizeUnit(p.YUnit),
		field: fieldName,
	}
	if p.X != nil {
		s.x = slices.Clone(p.X)
	} else {
		s.x = make([]profile.XValue, len(p.Y))
		for i := range s.x {
			s.x[i] = profile.XNum(float64(i))
		}
	}
	if p.BBL != nil {
		s.bbl = slices.Clone(p.BBL)
	}
	s.key = s.canonicalKey()
	return s
}

// canonicalKey builds a deterministic signature over (x, xUnit, yUnit, bbl).
// The full signature is used rather than a hash of it so that distinct
// settings can never collide into one group.
func (s Setting) canonicalKey() string {
	var b strings.Builder
	b.Grow(16 * (len(s.x) + len(s.bbl)))
	for i, v := range s.x {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(v.String())
	}
	b.WriteByte('|')
	b.WriteString(s.xUnit)
	b.WriteByte('|')
	b.WriteString(s.yUnit)
	b.WriteByte('|')
	if s.bbl != nil {
		for i, f := range s.bbl {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(f))
		}
	}
	return b.String()
}

// Key returns the canonical signature used as the map key during grouping.
func (s Setting) Key() string { return s.key }

// X returns the x-axis samples. The slice must not be mutated.
func (s Setting) X() []profile.XValue { return s.x }

// NBands returns the number of bands on the shared grid.
func (s Setting) NBands() int { return len(s.x) }

// XUnit returns the normalized x-axis unit, "" when absent.
func (s Setting) XUnit() string { return s.xUnit }

// YUnit returns the normalized y-axis unit, "" when absent.
func (s Setting) YUnit() string { return s.yUnit }

// BBL returns the bad band list, nil when every band is good. The slice
// must not be mutated.
func (s Setting) BBL() []int { return s.bbl }

// FieldName returns the name of the source column this setting was derived
// from. Provenance only; not part of equality.
func (s Setting) FieldName() string { return s.field }

// Equal reports whether two settings describe the same spectral grid:
// equal x samples, units and bad band list. FieldName does not participate.
func (s Setting) Equal(o Setting) bool {
	return s.key == o.key
}
