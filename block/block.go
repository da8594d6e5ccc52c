package block

import (
	"fmt"
	"math"
	"slices"

	"github.com/paulmach/orb"

	"github.com/fieldspec/speclib/grouping"
	"github.com/fieldspec/speclib/profile"
)

// Block is a dense stack of profiles sharing one spectral setting. The
// logical shape is (nBands, 1, nProfiles); the middle axis is a size-1
// placeholder kept so that downstream raster-style consumers always see
// three dimensions. Values is band-major: sample (band b, profile i) lives
// at Values[b*NProfiles()+i].
//
// A block owns its buffers. Profile values are copied in on assembly and
// copied out on extraction; nothing aliases back to the source records.
type Block struct {
	Setting grouping.Setting
	Values  []float64
	// Mask flags individual samples as absent, parallel to Values. A nil
	// mask means every sample is present.
	Mask []bool
	// FIDs holds the source feature identifier per profile column.
	FIDs []int64
	// PosX/PosY carry per-profile positions, parallel to FIDs. They are
	// allocated only when at least one profile in the group had geometry;
	// positions of the others are NaN. CRS tags their reference system.
	PosX []float64
	PosY []float64
	CRS  string
	// Meta is free-form auxiliary metadata. It survives the variant-map
	// round trip verbatim.
	Meta map[string]any
}

// Extracted is one profile pulled back out of a block.
type Extracted struct {
	FID     int64
	Profile profile.Profile
	Point   *orb.Point // nil when the block has no position for this column
}

// NBands returns the size of the leading axis.
func (b *Block) NBands() int { return b.Setting.NBands() }

// NProfiles returns the size of the trailing axis.
func (b *Block) NProfiles() int { return len(b.FIDs) }

// Shape returns the full (bands, 1, profiles) shape.
func (b *Block) Shape() [3]int { return [3]int{b.NBands(), 1, b.NProfiles()} }

// At returns the sample at (band, profile). Masked samples read as NaN.
func (b *Block) At(band, i int) float64 {
	idx := band*b.NProfiles() + i
	if b.Mask != nil && b.Mask[idx] {
		return math.NaN()
	}
	return b.Values[idx]
}

// Masked reports whether the sample at (band, profile) is masked.
func (b *Block) Masked(band, i int) bool {
	return b.Mask != nil && b.Mask[band*b.NProfiles()+i]
}

// MaskProfile masks every band of profile column i.
func (b *Block) MaskProfile(i int) {
	if b.Mask == nil {
		b.Mask = make([]bool, len(b.Values))
	}
	n := b.NProfiles()
	for band := 0; band < b.NBands(); band++ {
		b.Mask[band*n+i] = true
	}
}

// profileMasked reports whether every band of column i is masked.
func (b *Block) profileMasked(i int) bool {
	if b.Mask == nil {
		return false
	}
	n := b.NProfiles()
	for band := 0; band < b.NBands(); band++ {
		if !b.Mask[band*n+i] {
			return false
		}
	}
	return b.NBands() > 0
}

// HasPositions reports whether the block carries per-profile geolocation.
func (b *Block) HasPositions() bool { return b.PosX != nil }

// Assemble stacks one group into a block. Profile i's y values land in
// column i; FIDs follow group membership order. A profile whose y length
// disagrees with the setting's band count gets a fully masked column rather
// than aborting the batch. Positions are all-or-nothing: the arrays exist
// iff at least one record in the group has geometry, with NaN for the rest.
func Assemble(g *grouping.Group) (*Block, error) {
	if g == nil {
		return nil, fmt.Errorf("assemble: nil group")
	}
	nBands := g.Setting.NBands()
	nProfiles := len(g.Profiles)
	b := &Block{
		Setting: g.Setting,
		Values:  make([]float64, nBands*nProfiles),
		FIDs:    make([]int64, nProfiles),
	}
	for i, pr := range g.Profiles {
		b.FIDs[i] = pr.FID
		y := pr.Profile.Y
		if len(y) != nBands {
			b.MaskProfile(i)
			continue
		}
		for band, v := range y {
			b.Values[band*nProfiles+i] = v
		}
	}
	hasGeom := false
	for _, rec := range g.Records {
		if _, ok := rec.Point(); ok {
			hasGeom = true
			break
		}
	}
	if hasGeom {
		b.PosX = make([]float64, nProfiles)
		b.PosY = make([]float64, nProfiles)
		for i := range b.PosX {
			b.PosX[i] = math.NaN()
			b.PosY[i] = math.NaN()
		}
		for i, rec := range g.Records {
			if pt, ok := rec.Point(); ok {
				b.PosX[i] = pt.X()
				b.PosY[i] = pt.Y()
			}
		}
	}
	return b, nil
}

// Profiles converts the block back into per-feature profiles using the
// shared setting for x, units and bad band list. Fully masked columns are
// dropped: assembly keeps every input, extraction returns only columns that
// still carry data. Partially masked samples come back as NaN.
func (b *Block) Profiles() []Extracted {
	nBands := b.NBands()
	nProfiles := b.NProfiles()
	out := make([]Extracted, 0, nProfiles)
	for i := 0; i < nProfiles; i++ {
		if b.profileMasked(i) {
			continue
		}
		p := profile.Profile{
			X:     slices.Clone(b.Setting.X()),
			Y:     make([]float64, nBands),
			XUnit: b.Setting.XUnit(),
			YUnit: b.Setting.YUnit(),
			BBL:   slices.Clone(b.Setting.BBL()),
		}
		for band := 0; band < nBands; band++ {
			p.Y[band] = b.At(band, i)
		}
		e := Extracted{FID: b.FIDs[i], Profile: p}
		if b.HasPositions() && !math.IsNaN(b.PosX[i]) && !math.IsNaN(b.PosY[i]) {
			pt := orb.Point{b.PosX[i], b.PosY[i]}
			e.Point = &pt
		}
		out = append(out, e)
	}
	return out
}
