package partition

import (
	"fmt"

	"github.com/skyframe-data/skypart/internal/healpix"
)

// DestinationPixelMap groups an alignment the other way around: for each
// distinct destination cell, the occupied fine pixel indexes (at the
// alignment's highest order) that roll up into it. Together the slices
// partition the histogram's non-zero pixels exactly once. The histogram
// must be the one the alignment was generated from.
func DestinationPixelMap(histogram []uint64, a *Alignment) (map[CellAlignment][]uint64, error) {
	if len(histogram) != a.Len() {
		return nil, fmt.Errorf("histogram length %d does not match alignment length %d: %w",
			len(histogram), a.Len(), healpix.ErrInvalidArgument)
	}
	result := make(map[CellAlignment][]uint64)
	for idx, count := range histogram {
		if count == 0 {
			continue
		}
		cell := a.Cell(uint64(idx))
		if cell == nil {
			continue
		}
		result[*cell] = append(result[*cell], uint64(idx))
	}
	return result, nil
}

// DestinationPixels returns the distinct destination pixels of an
// alignment in breadth-first order. This is the leaf pixel list of the
// resulting catalog partition.
func DestinationPixels(a *Alignment) []healpix.Pixel {
	dests := a.Destinations()
	pixels := make([]healpix.Pixel, len(dests))
	for i, d := range dests {
		pixels[i] = healpix.Pixel{Order: d.Order, Pixel: d.Pixel}
	}
	return pixels
}
