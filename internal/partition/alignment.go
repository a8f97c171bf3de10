package partition

import (
	"errors"
	"fmt"

	"github.com/skyframe-data/skypart/internal/healpix"
)

// ErrThresholdExceeded reports a finest-order pixel whose count alone is
// over the per-cell limit; such a pixel cannot be subdivided further.
var ErrThresholdExceeded = errors.New("single pixel count exceeds threshold")

// ThresholdPolicy selects how the row threshold bounds a destination cell.
type ThresholdPolicy string

const (
	// MaxDensityPerCell treats the threshold as the maximum number of rows
	// allowed in one destination pixel: each fine pixel rolls up to its
	// coarsest ancestor whose aggregated count stays at or under the
	// threshold. This is the default.
	MaxDensityPerCell ThresholdPolicy = "max_density_per_cell"

	// MinCountPerCell treats the threshold as the minimum number of rows a
	// destination pixel should hold: each fine pixel rolls up to its finest
	// ancestor whose aggregated count reaches the threshold, or to the
	// lowest order if none does.
	MinCountPerCell ThresholdPolicy = "min_count_per_cell"
)

// CellAlignment is the destination of one fine pixel: the chosen pixel at
// a coarser (or equal) order, together with the aggregated row count of
// that destination.
type CellAlignment struct {
	Order healpix.Order `json:"order"`
	Pixel uint64        `json:"pixel"`
	Count uint64        `json:"count"`
}

// Alignment maps every pixel at the highest order to its destination cell.
// Entries for empty fine pixels are nil.
type Alignment struct {
	HighestOrder healpix.Order
	LowestOrder  healpix.Order
	Threshold    uint64
	Policy       ThresholdPolicy

	cells []*CellAlignment
}

// Len returns the number of fine pixels covered, Order2Npix(HighestOrder).
func (a *Alignment) Len() int { return len(a.cells) }

// Cell returns the destination for the given fine pixel index, or nil if
// the pixel is empty.
func (a *Alignment) Cell(pixel uint64) *CellAlignment { return a.cells[pixel] }

// Destinations returns the distinct destination cells in breadth-first
// pixel order.
func (a *Alignment) Destinations() []CellAlignment {
	seen := make(map[CellAlignment]struct{})
	var pixels []healpix.Pixel
	byPixel := make(map[healpix.Pixel]CellAlignment)
	for _, cell := range a.cells {
		if cell == nil {
			continue
		}
		if _, ok := seen[*cell]; ok {
			continue
		}
		seen[*cell] = struct{}{}
		p := healpix.Pixel{Order: cell.Order, Pixel: cell.Pixel}
		pixels = append(pixels, p)
		byPixel[p] = *cell
	}
	healpix.SortPixels(pixels)
	dests := make([]CellAlignment, len(pixels))
	for i, p := range pixels {
		dests[i] = byPixel[p]
	}
	return dests
}

// AlignmentOptions bundles the tuning knobs for GenerateAlignment. The
// zero value of Policy means MaxDensityPerCell.
type AlignmentOptions struct {
	LowestOrder healpix.Order   `json:"lowest_order"`
	Threshold   uint64          `json:"threshold"`
	Policy      ThresholdPolicy `json:"threshold_policy,omitempty"`
}

// GenerateAlignment computes the rollup from every pixel at the histogram's
// order (the highest order) to a destination pixel at an order bounded
// below by lowestOrder, using the default MaxDensityPerCell policy.
//
// The histogram length must equal Order2Npix(highestOrder) and
// lowestOrder must not exceed highestOrder; violations fail with
// ErrInvalidArgument. Orders beyond MaxOrder fail with ErrOutOfRange.
func GenerateAlignment(histogram []uint64, highestOrder, lowestOrder healpix.Order, threshold uint64) (*Alignment, error) {
	return GenerateAlignmentWithOptions(histogram, highestOrder, AlignmentOptions{
		LowestOrder: lowestOrder,
		Threshold:   threshold,
	})
}

// GenerateAlignmentWithOptions is GenerateAlignment with an explicit
// threshold policy.
func GenerateAlignmentWithOptions(histogram []uint64, highestOrder healpix.Order, opts AlignmentOptions) (*Alignment, error) {
	npix, err := healpix.Order2Npix(highestOrder)
	if err != nil {
		return nil, err
	}
	if _, err := healpix.Order2Npix(opts.LowestOrder); err != nil {
		return nil, err
	}
	if opts.LowestOrder > highestOrder {
		return nil, fmt.Errorf("lowest order %d exceeds highest order %d: %w",
			opts.LowestOrder, highestOrder, healpix.ErrInvalidArgument)
	}
	if uint64(len(histogram)) != npix {
		return nil, fmt.Errorf("histogram length %d does not match order %d (npix %d): %w",
			len(histogram), highestOrder, npix, healpix.ErrInvalidArgument)
	}
	policy := opts.Policy
	if policy == "" {
		policy = MaxDensityPerCell
	}
	if policy != MaxDensityPerCell && policy != MinCountPerCell {
		return nil, fmt.Errorf("unknown threshold policy %q: %w", policy, healpix.ErrInvalidArgument)
	}

	sums := nestedSums(histogram, highestOrder, opts.LowestOrder)

	a := &Alignment{
		HighestOrder: highestOrder,
		LowestOrder:  opts.LowestOrder,
		Threshold:    opts.Threshold,
		Policy:       policy,
	}
	switch policy {
	case MaxDensityPerCell:
		a.cells, err = sweepMaxDensity(sums, highestOrder, opts.LowestOrder, opts.Threshold)
	case MinCountPerCell:
		a.cells = sweepMinCount(sums, highestOrder, opts.LowestOrder, opts.Threshold)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// nestedSums aggregates the fine histogram into one count slice per order
// from lowestOrder through highestOrder. sums[k-lowestOrder] holds the
// counts at order k; each parent count is the sum of its four children
// (parent index = child index >> 2).
func nestedSums(histogram []uint64, highestOrder, lowestOrder healpix.Order) [][]uint64 {
	levels := int(highestOrder-lowestOrder) + 1
	sums := make([][]uint64, levels)
	sums[levels-1] = histogram
	for level := levels - 2; level >= 0; level-- {
		child := sums[level+1]
		parent := make([]uint64, len(child)/4)
		for i, c := range child {
			parent[i>>2] += c
		}
		sums[level] = parent
	}
	return sums
}

// sweepMaxDensity walks the orders coarse to fine. A pixel whose subtree
// fits under the threshold claims the whole subtree; descendants of a
// claimed pixel inherit its destination. A finest-order pixel that still
// exceeds the threshold cannot be split and is an error.
func sweepMaxDensity(sums [][]uint64, highestOrder, lowestOrder healpix.Order, threshold uint64) ([]*CellAlignment, error) {
	levels := len(sums)
	aligned := make([][]*CellAlignment, levels)
	for level := 0; level < levels; level++ {
		readOrder := lowestOrder + healpix.Order(level)
		aligned[level] = make([]*CellAlignment, len(sums[level]))
		for idx, sum := range sums[level] {
			if level > 0 {
				if parent := aligned[level-1][idx>>2]; parent != nil {
					aligned[level][idx] = parent
					continue
				}
			}
			switch {
			case sum == 0:
				// empty region, excluded from the partition set
			case sum <= threshold:
				aligned[level][idx] = &CellAlignment{Order: readOrder, Pixel: uint64(idx), Count: sum}
			case readOrder == highestOrder:
				return nil, fmt.Errorf("pixel %d at order %d holds %d rows (threshold %d): %w",
					idx, readOrder, sum, threshold, ErrThresholdExceeded)
			}
		}
	}
	return aligned[levels-1], nil
}

// sweepMinCount maps each non-empty fine pixel to the finest ancestor
// whose aggregated count reaches the threshold, falling back to the
// lowest-order ancestor. Counts grow monotonically toward coarser orders,
// so scanning fine to coarse finds the deepest qualifying level first.
func sweepMinCount(sums [][]uint64, highestOrder, lowestOrder healpix.Order, threshold uint64) []*CellAlignment {
	levels := len(sums)
	fine := sums[levels-1]
	cells := make([]*CellAlignment, len(fine))
	memo := make(map[CellAlignment]*CellAlignment)
	for idx, count := range fine {
		if count == 0 {
			continue
		}
		chosen := CellAlignment{Order: lowestOrder, Pixel: uint64(idx) >> (2 * uint(highestOrder-lowestOrder))}
		chosen.Count = sums[0][chosen.Pixel]
		for level := levels - 1; level >= 0; level-- {
			pixel := uint64(idx) >> (2 * uint(levels-1-level))
			if sums[level][pixel] >= threshold {
				chosen = CellAlignment{
					Order: lowestOrder + healpix.Order(level),
					Pixel: pixel,
					Count: sums[level][pixel],
				}
				break
			}
		}
		if shared, ok := memo[chosen]; ok {
			cells[idx] = shared
		} else {
			cell := chosen
			memo[chosen] = &cell
			cells[idx] = &cell
		}
	}
	return cells
}
