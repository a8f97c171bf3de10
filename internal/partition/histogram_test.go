package partition

import (
	"errors"
	"testing"

	"github.com/skyframe-data/skypart/internal/healpix"
)

func TestEmptyHistogram(t *testing.T) {
	h, err := EmptyHistogram(1)
	if err != nil {
		t.Fatalf("EmptyHistogram failed: %v", err)
	}
	if h.Len() != 48 {
		t.Errorf("expected 48 pixels at order 1, got %d", h.Len())
	}
	if h.Total() != 0 {
		t.Errorf("expected empty histogram, total = %d", h.Total())
	}

	if _, err := EmptyHistogram(30); !errors.Is(err, healpix.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for order 30, got %v", err)
	}
}

func TestNewHistogramInfersOrder(t *testing.T) {
	h, err := NewHistogram(make([]uint64, 192))
	if err != nil {
		t.Fatalf("NewHistogram failed: %v", err)
	}
	if h.Order() != 2 {
		t.Errorf("expected order 2, got %d", h.Order())
	}

	if _, err := NewHistogram(make([]uint64, 100)); !errors.Is(err, healpix.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for length 100, got %v", err)
	}
}

func TestHistogramAdd(t *testing.T) {
	a, _ := EmptyHistogram(0)
	b, _ := EmptyHistogram(0)
	a.Counts()[3] = 5
	b.Counts()[3] = 2
	b.Counts()[7] = 1

	if err := a.Add(b); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if a.Count(3) != 7 || a.Count(7) != 1 {
		t.Errorf("unexpected counts after Add: %v", a.Counts())
	}
	if a.Total() != 8 {
		t.Errorf("expected total 8, got %d", a.Total())
	}

	c, _ := EmptyHistogram(1)
	if err := a.Add(c); !errors.Is(err, healpix.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument adding mismatched orders, got %v", err)
	}
}

func TestHistogramNonZeroPixels(t *testing.T) {
	h, _ := EmptyHistogram(0)
	h.Counts()[1] = 4
	h.Counts()[8] = 9

	got := h.NonZeroPixels()
	if len(got) != 2 || got[0] != 1 || got[1] != 8 {
		t.Errorf("NonZeroPixels = %v, want [1 8]", got)
	}
}

func TestSparseHistogramRoundTrip(t *testing.T) {
	s, err := NewSparseHistogram([]uint64{1, 8}, []uint64{4, 9}, 0)
	if err != nil {
		t.Fatalf("NewSparseHistogram failed: %v", err)
	}

	h, err := s.ToDense()
	if err != nil {
		t.Fatalf("ToDense failed: %v", err)
	}
	if h.Count(1) != 4 || h.Count(8) != 9 || h.Total() != 13 {
		t.Errorf("unexpected dense histogram: %v", h.Counts())
	}
}

func TestSparseHistogramAddAccumulates(t *testing.T) {
	a, _ := NewSparseHistogram([]uint64{1}, []uint64{4}, 0)
	b, _ := NewSparseHistogram([]uint64{1, 2}, []uint64{6, 1}, 0)

	if err := a.Add(b); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	h, err := a.ToDense()
	if err != nil {
		t.Fatalf("ToDense failed: %v", err)
	}
	if h.Count(1) != 10 || h.Count(2) != 1 {
		t.Errorf("unexpected counts after sparse Add: %v", h.Counts())
	}

	c, _ := NewSparseHistogram(nil, nil, 1)
	if err := a.Add(c); !errors.Is(err, healpix.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument adding mismatched orders, got %v", err)
	}
}

func TestSparseHistogramValidation(t *testing.T) {
	if _, err := NewSparseHistogram([]uint64{12}, []uint64{1}, 0); !errors.Is(err, healpix.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for pixel 12 at order 0, got %v", err)
	}
	if _, err := NewSparseHistogram([]uint64{1, 2}, []uint64{1}, 0); !errors.Is(err, healpix.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for mismatched slice lengths, got %v", err)
	}
}
