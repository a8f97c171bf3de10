package healpix

import (
	"fmt"
	"sort"
)

// Pixel is a single HEALPix pixel in the NESTED scheme, identified by its
// order and pixel number at that order.
type Pixel struct {
	Order Order
	Pixel uint64
}

// NewPixel validates the order and pixel number and returns the pixel.
func NewPixel(order Order, pixel uint64) (Pixel, error) {
	npix, err := Order2Npix(order)
	if err != nil {
		return Pixel{}, err
	}
	if pixel >= npix {
		return Pixel{}, fmt.Errorf("pixel %d does not exist at order %d (npix %d): %w",
			pixel, order, npix, ErrInvalidArgument)
	}
	return Pixel{Order: order, Pixel: pixel}, nil
}

func (p Pixel) String() string {
	return fmt.Sprintf("Order: %d, Pixel: %d", p.Order, p.Pixel)
}

// Parent returns the enclosing pixel one order coarser. Calling Parent on
// an order-0 pixel returns the pixel unchanged.
func (p Pixel) Parent() Pixel {
	if p.Order == 0 {
		return p
	}
	return Pixel{Order: p.Order - 1, Pixel: p.Pixel >> 2}
}

// AncestorAt returns the enclosing pixel at the given coarser order.
func (p Pixel) AncestorAt(order Order) (Pixel, error) {
	if order > p.Order {
		return Pixel{}, fmt.Errorf("order %d is finer than pixel order %d: %w",
			order, p.Order, ErrInvalidArgument)
	}
	shift := 2 * uint(p.Order-order)
	return Pixel{Order: order, Pixel: p.Pixel >> shift}, nil
}

// Children returns the four pixels one order finer that subdivide p.
func (p Pixel) Children() ([4]Pixel, error) {
	var children [4]Pixel
	if p.Order >= MaxOrder {
		return children, fmt.Errorf("order %d has no subdivisions: %w", p.Order, ErrOutOfRange)
	}
	base := p.Pixel << 2
	for i := uint64(0); i < 4; i++ {
		children[i] = Pixel{Order: p.Order + 1, Pixel: base + i}
	}
	return children, nil
}

// DescendantsAt returns the half-open pixel number range [first, last) that
// p covers at the given finer order.
func (p Pixel) DescendantsAt(order Order) (first, last uint64, err error) {
	if order < p.Order {
		return 0, 0, fmt.Errorf("order %d is coarser than pixel order %d: %w",
			order, p.Order, ErrInvalidArgument)
	}
	if order > MaxOrder {
		return 0, 0, fmt.Errorf("order %d exceeds maximum %d: %w", order, MaxOrder, ErrOutOfRange)
	}
	shift := 2 * uint(order-p.Order)
	return p.Pixel << shift, (p.Pixel + 1) << shift, nil
}

// Contains reports whether other falls within p (inclusive of p itself).
func (p Pixel) Contains(other Pixel) bool {
	if other.Order < p.Order {
		return false
	}
	return other.Pixel>>(2*uint(other.Order-p.Order)) == p.Pixel
}

// SpatialIndex returns the packed order-29 index of the first descendant of
// p: the smallest spatial index value falling inside the pixel.
func (p Pixel) SpatialIndex() uint64 {
	return p.Pixel << (2 * uint(SpatialIndexOrder-p.Order))
}

// SpatialIndexToPixel converts a packed order-29 index value back to the
// containing pixel at the target order.
func SpatialIndexToPixel(index uint64, order Order) (Pixel, error) {
	if order > SpatialIndexOrder {
		return Pixel{}, fmt.Errorf("order %d exceeds spatial index order %d: %w",
			order, SpatialIndexOrder, ErrOutOfRange)
	}
	return Pixel{Order: order, Pixel: index >> (2 * uint(SpatialIndexOrder-order))}, nil
}

// SortPixels sorts pixels in place in breadth-first traversal order of the
// pixel hierarchy: by spatial index prefix, coarser pixel first on ties.
// This matches ordering rows by their packed spatial index, not the
// depth-first (order, pixel) ordering.
func SortPixels(pixels []Pixel) {
	sort.SliceStable(pixels, func(i, j int) bool {
		a, b := pixels[i].SpatialIndex(), pixels[j].SpatialIndex()
		if a != b {
			return a < b
		}
		return pixels[i].Order < pixels[j].Order
	})
}
