package healpix

import (
	"errors"
	"testing"
)

func TestOrder2Npix(t *testing.T) {
	cases := []struct {
		order Order
		npix  uint64
	}{
		{0, 12},
		{1, 48},
		{2, 192},
		{10, 12582912},
		{29, 12 * (1 << 58)},
	}
	for _, tc := range cases {
		got, err := Order2Npix(tc.order)
		if err != nil {
			t.Fatalf("Order2Npix(%d) failed: %v", tc.order, err)
		}
		if got != tc.npix {
			t.Errorf("Order2Npix(%d) = %d, want %d", tc.order, got, tc.npix)
		}
	}
}

func TestOrder2NpixQuadruples(t *testing.T) {
	prev, err := Order2Npix(0)
	if err != nil {
		t.Fatalf("Order2Npix(0) failed: %v", err)
	}
	for order := Order(1); order <= MaxOrder; order++ {
		got, err := Order2Npix(order)
		if err != nil {
			t.Fatalf("Order2Npix(%d) failed: %v", order, err)
		}
		if got != 4*prev {
			t.Errorf("Order2Npix(%d) = %d, want 4 * %d", order, got, prev)
		}
		prev = got
	}
}

func TestOrder2NpixOutOfRange(t *testing.T) {
	_, err := Order2Npix(MaxOrder + 1)
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for order %d, got %v", MaxOrder+1, err)
	}
}

func TestNpix2Order(t *testing.T) {
	for order := Order(0); order <= MaxOrder; order++ {
		npix, err := Order2Npix(order)
		if err != nil {
			t.Fatalf("Order2Npix(%d) failed: %v", order, err)
		}
		got, err := Npix2Order(npix)
		if err != nil {
			t.Fatalf("Npix2Order(%d) failed: %v", npix, err)
		}
		if got != order {
			t.Errorf("Npix2Order(%d) = %d, want %d", npix, got, order)
		}
	}
}

func TestNpix2OrderInvalid(t *testing.T) {
	for _, npix := range []uint64{0, 1, 10, 13, 47, 49, 191, 193} {
		if _, err := Npix2Order(npix); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Npix2Order(%d): expected ErrInvalidArgument, got %v", npix, err)
		}
	}
}
