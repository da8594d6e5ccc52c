package block

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/fieldspec/speclib/profile"
)

// BandSummary holds per-band statistics across the profiles of a block.
// All slices have NBands entries. Bands with no unmasked samples hold NaN.
type BandSummary struct {
	Mean   []float64
	StdDev []float64
	Min    []float64
	Max    []float64
	// N counts the unmasked samples contributing to each band.
	N []int
}

// Summary computes per-band statistics over the unmasked samples of the
// block. This is the vectorized aggregation the blocks exist for: one pass
// per band instead of one decode per profile.
func (b *Block) Summary() BandSummary {
	nBands := b.NBands()
	nProfiles := b.NProfiles()
	s := BandSummary{
		Mean:   make([]float64, nBands),
		StdDev: make([]float64, nBands),
		Min:    make([]float64, nBands),
		Max:    make([]float64, nBands),
		N:      make([]int, nBands),
	}
	row := make([]float64, 0, nProfiles)
	for band := 0; band < nBands; band++ {
		row = row[:0]
		for i := 0; i < nProfiles; i++ {
			if b.Masked(band, i) {
				continue
			}
			v := b.Values[band*nProfiles+i]
			if math.IsNaN(v) {
				continue
			}
			row = append(row, v)
		}
		s.N[band] = len(row)
		if len(row) == 0 {
			s.Mean[band] = math.NaN()
			s.StdDev[band] = math.NaN()
			s.Min[band] = math.NaN()
			s.Max[band] = math.NaN()
			continue
		}
		mean, std := stat.MeanStdDev(row, nil)
		s.Mean[band] = mean
		if len(row) == 1 {
			// MeanStdDev yields NaN for a single sample; report 0 spread.
			std = 0
		}
		s.StdDev[band] = std
		s.Min[band] = floats.Min(row)
		s.Max[band] = floats.Max(row)
	}
	return s
}

// MeanProfile aggregates the block into a single profile on the shared
// setting, with the per-band mean as y. This mirrors the classic
// spectral-library operation of collapsing many field measurements of one
// target into a reference spectrum.
func (b *Block) MeanProfile() profile.Profile {
	s := b.Summary()
	return profile.Profile{
		X:     slices.Clone(b.Setting.X()),
		Y:     s.Mean,
		XUnit: b.Setting.XUnit(),
		YUnit: b.Setting.YUnit(),
		BBL:   slices.Clone(b.Setting.BBL()),
	}
}
