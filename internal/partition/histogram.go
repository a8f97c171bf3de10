// Package partition computes sky partition alignments from pixel count
// histograms: quadtree aggregation of fine-order counts, rollup of sparse
// regions into coarser pixels under a per-pixel row threshold, and the
// sparse pixel tree describing the resulting partition set.
package partition

import (
	"fmt"

	"github.com/skyframe-data/skypart/internal/healpix"
)

// Histogram holds one count per pixel at a fixed order. Index position is
// the NESTED pixel number.
type Histogram struct {
	order  healpix.Order
	counts []uint64
}

// EmptyHistogram returns a zero-filled histogram sized for the given order.
func EmptyHistogram(order healpix.Order) (*Histogram, error) {
	npix, err := healpix.Order2Npix(order)
	if err != nil {
		return nil, err
	}
	return &Histogram{order: order, counts: make([]uint64, npix)}, nil
}

// NewHistogram wraps an existing count slice. The slice length must match
// the pixel count of some order; the histogram takes ownership of it.
func NewHistogram(counts []uint64) (*Histogram, error) {
	order, err := healpix.Npix2Order(uint64(len(counts)))
	if err != nil {
		return nil, fmt.Errorf("histogram of length %d: %w", len(counts), err)
	}
	return &Histogram{order: order, counts: counts}, nil
}

// Order returns the order the histogram was built at.
func (h *Histogram) Order() healpix.Order { return h.order }

// Len returns the number of pixels covered (equal to Order2Npix(Order)).
func (h *Histogram) Len() int { return len(h.counts) }

// Count returns the count at the given pixel index.
func (h *Histogram) Count(pixel uint64) uint64 { return h.counts[pixel] }

// Counts exposes the underlying slice. Callers must not resize it.
func (h *Histogram) Counts() []uint64 { return h.counts }

// Total returns the sum of all counts.
func (h *Histogram) Total() uint64 {
	var total uint64
	for _, c := range h.counts {
		total += c
	}
	return total
}

// Add merges another histogram of the same order into h.
func (h *Histogram) Add(other *Histogram) error {
	if other == nil || len(other.counts) != len(h.counts) {
		return fmt.Errorf("histogram partials have incompatible sizes: %w", healpix.ErrInvalidArgument)
	}
	for i, c := range other.counts {
		h.counts[i] += c
	}
	return nil
}

// NonZeroPixels returns the pixel indexes with a non-zero count, ascending.
func (h *Histogram) NonZeroPixels() []uint64 {
	var pixels []uint64
	for i, c := range h.counts {
		if c > 0 {
			pixels = append(pixels, uint64(i))
		}
	}
	return pixels
}

// SparseHistogram is the compact partial-histogram form exchanged between
// pipeline stages: only the non-zero pixel indexes and their counts.
type SparseHistogram struct {
	order   healpix.Order
	indexes []uint64
	counts  []uint64
}

// NewSparseHistogram builds a sparse histogram from parallel index/count
// slices at the given order. Indexes must be valid pixel numbers; zero
// counts are permitted and preserved.
func NewSparseHistogram(indexes, counts []uint64, order healpix.Order) (*SparseHistogram, error) {
	npix, err := healpix.Order2Npix(order)
	if err != nil {
		return nil, err
	}
	if len(indexes) != len(counts) {
		return nil, fmt.Errorf("index and count slices differ in length (%d vs %d): %w",
			len(indexes), len(counts), healpix.ErrInvalidArgument)
	}
	for _, idx := range indexes {
		if idx >= npix {
			return nil, fmt.Errorf("pixel %d does not exist at order %d: %w",
				idx, order, healpix.ErrInvalidArgument)
		}
	}
	return &SparseHistogram{
		order:   order,
		indexes: append([]uint64(nil), indexes...),
		counts:  append([]uint64(nil), counts...),
	}, nil
}

// Order returns the order the sparse histogram was built at.
func (s *SparseHistogram) Order() healpix.Order { return s.order }

// ToDense expands the sparse form into a full Histogram. Duplicate indexes
// accumulate.
func (s *SparseHistogram) ToDense() (*Histogram, error) {
	h, err := EmptyHistogram(s.order)
	if err != nil {
		return nil, err
	}
	for i, idx := range s.indexes {
		h.counts[idx] += s.counts[i]
	}
	return h, nil
}

// Add accumulates another sparse partial of the same order into s.
func (s *SparseHistogram) Add(other *SparseHistogram) error {
	if other == nil || other.order != s.order {
		return fmt.Errorf("histogram partials have incompatible orders: %w", healpix.ErrInvalidArgument)
	}
	s.indexes = append(s.indexes, other.indexes...)
	s.counts = append(s.counts, other.counts...)
	return nil
}
