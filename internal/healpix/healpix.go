// Package healpix implements integer pixel-index math for the HEALPix
// NESTED numbering scheme: order/pixel-count conversions, parent/child
// navigation, and the order-29 spatial index used to key catalog rows.
//
// Only index arithmetic lives here. Mapping sky coordinates (ra/dec) onto
// pixels requires full spherical geometry and is left to the host
// application.
package healpix

import (
	"errors"
	"fmt"
)

// Order identifies a depth level in the pixel hierarchy. 0 is coarsest;
// each pixel at order k subdivides into 4 children at order k+1.
type Order = uint8

const (
	// MaxOrder is the deepest supported order. 12 * 4^29 is the largest
	// pixel count that fits a uint64 pixel index alongside the spatial
	// index packing below.
	MaxOrder Order = 29

	// SpatialIndexOrder is the fixed order used for packed spatial index
	// values (one order-29 pixel number per catalog row).
	SpatialIndexOrder Order = 29

	// BasePixels is the number of pixels at order 0.
	BasePixels uint64 = 12
)

var (
	// ErrInvalidArgument reports malformed input shape or ordering.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange reports an order beyond the safe numeric bound.
	ErrOutOfRange = errors.New("order out of range")
)

// Order2Npix returns the total number of pixels at the given order:
// 12 * 4^order. Orders above MaxOrder fail with ErrOutOfRange rather
// than silently wrapping.
func Order2Npix(order Order) (uint64, error) {
	if order > MaxOrder {
		return 0, fmt.Errorf("order %d exceeds maximum %d: %w", order, MaxOrder, ErrOutOfRange)
	}
	return BasePixels << (2 * uint(order)), nil
}

// Npix2Order returns the order whose pixel count is npix, or
// ErrInvalidArgument if npix is not 12 * 4^k for any supported k.
func Npix2Order(npix uint64) (Order, error) {
	for order := Order(0); order <= MaxOrder; order++ {
		count := BasePixels << (2 * uint(order))
		if count == npix {
			return order, nil
		}
		if count > npix {
			break
		}
	}
	return 0, fmt.Errorf("%d is not a pixel count for any order: %w", npix, ErrInvalidArgument)
}
