package partition

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// HistogramStats summarizes the occupied pixels of a histogram.
type HistogramStats struct {
	Order         int     `json:"order"`
	Pixels        int     `json:"pixels"`
	NonZeroPixels int     `json:"non_zero_pixels"`
	TotalRows     uint64  `json:"total_rows"`
	MaxCount      uint64  `json:"max_count"`
	MeanCount     float64 `json:"mean_count"`
	MedianCount   float64 `json:"median_count"`
	P95Count      float64 `json:"p95_count"`
}

// Stats computes summary statistics over the non-zero counts of h. Mean,
// median and p95 are taken over occupied pixels only; a histogram with no
// occupied pixels reports zeros.
func Stats(h *Histogram) HistogramStats {
	s := HistogramStats{
		Order:  int(h.Order()),
		Pixels: h.Len(),
	}
	var occupied []float64
	for _, c := range h.Counts() {
		if c == 0 {
			continue
		}
		s.NonZeroPixels++
		s.TotalRows += c
		if c > s.MaxCount {
			s.MaxCount = c
		}
		occupied = append(occupied, float64(c))
	}
	if len(occupied) == 0 {
		return s
	}
	sort.Float64s(occupied)
	s.MeanCount = stat.Mean(occupied, nil)
	s.MedianCount = stat.Quantile(0.5, stat.Empirical, occupied, nil)
	s.P95Count = stat.Quantile(0.95, stat.Empirical, occupied, nil)
	return s
}
