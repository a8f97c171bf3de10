// Package skypart computes HEALPix sky partition alignments for data
// catalogs: given a histogram of row counts at a fine pixel order and a
// per-pixel row threshold, it derives the coarse-to-fine pixel layout
// that keeps every partition under (or above, depending on policy) the
// threshold.
//
// The root package re-exports the core types and operations; the
// implementation lives in internal packages (healpix index math,
// partition alignment, catalog persistence, inspection output).
package skypart

import (
	"github.com/skyframe-data/skypart/internal/healpix"
	"github.com/skyframe-data/skypart/internal/partition"
)

// Core index math.

// Order is a hierarchy depth in the HEALPix NESTED pixelization;
// 0 is coarsest.
type Order = healpix.Order

// MaxOrder is the deepest supported order (12 * 4^29 pixels fit uint64).
const MaxOrder = healpix.MaxOrder

// Pixel is a single HEALPix pixel identified by order and pixel number.
type Pixel = healpix.Pixel

// Order2Npix returns the number of pixels at an order: 12 * 4^order.
var Order2Npix = healpix.Order2Npix

// Npix2Order returns the order matching a total pixel count.
var Npix2Order = healpix.Npix2Order

// NewPixel validates and constructs a Pixel.
var NewPixel = healpix.NewPixel

// SortPixels sorts pixels in breadth-first traversal order.
var SortPixels = healpix.SortPixels

// Error taxonomy. All failures are local and synchronous; check with
// errors.Is.

// ErrInvalidArgument reports malformed input shape or ordering.
var ErrInvalidArgument = healpix.ErrInvalidArgument

// ErrOutOfRange reports an order beyond the safe numeric bound.
var ErrOutOfRange = healpix.ErrOutOfRange

// ErrThresholdExceeded reports a finest-order pixel too full to split.
var ErrThresholdExceeded = partition.ErrThresholdExceeded

// Alignment generation.

// Alignment maps every fine pixel to its destination cell.
type Alignment = partition.Alignment

// CellAlignment is one destination: order, pixel and aggregated count.
type CellAlignment = partition.CellAlignment

// AlignmentOptions bundles lowest order, threshold and policy.
type AlignmentOptions = partition.AlignmentOptions

// ThresholdPolicy selects how the threshold bounds a destination cell.
type ThresholdPolicy = partition.ThresholdPolicy

const (
	// MaxDensityPerCell caps rows per destination pixel (default).
	MaxDensityPerCell = partition.MaxDensityPerCell
	// MinCountPerCell sets a row floor per destination pixel.
	MinCountPerCell = partition.MinCountPerCell
)

// GenerateAlignment computes the fine-to-coarse rollup for a histogram.
var GenerateAlignment = partition.GenerateAlignment

// GenerateAlignmentWithOptions is GenerateAlignment with a policy choice.
var GenerateAlignmentWithOptions = partition.GenerateAlignmentWithOptions

// DestinationPixelMap inverts an alignment into destination->members.
var DestinationPixelMap = partition.DestinationPixelMap

// DestinationPixels lists an alignment's distinct destination pixels.
var DestinationPixels = partition.DestinationPixels

// Histograms and trees.

// Histogram is a dense per-pixel count array at a fixed order.
type Histogram = partition.Histogram

// SparseHistogram is the compact partial-histogram interchange form.
type SparseHistogram = partition.SparseHistogram

// PixelTree is a sparse quadtree over a partition's pixels.
type PixelTree = partition.PixelTree

// EmptyHistogram returns a zero-filled histogram for an order.
var EmptyHistogram = partition.EmptyHistogram

// NewHistogram wraps a count slice, inferring its order.
var NewHistogram = partition.NewHistogram

// NewSparseHistogram builds a sparse histogram from index/count pairs.
var NewSparseHistogram = partition.NewSparseHistogram

// NewPixelTree builds a pixel tree from partition leaf pixels.
var NewPixelTree = partition.NewPixelTree
