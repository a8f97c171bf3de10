package inspect

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/skyframe-data/skypart/internal/partition"
)

// SaveCountDistribution writes a PNG plot of the occupied pixel counts of
// a histogram, sorted ascending, with the rollup threshold drawn as a
// horizontal rule. Useful for eyeballing where a threshold will split the
// sky.
func SaveCountDistribution(h *partition.Histogram, threshold uint64, path string) error {
	var counts []float64
	for _, c := range h.Counts() {
		if c > 0 {
			counts = append(counts, float64(c))
		}
	}
	sort.Float64s(counts)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Pixel counts at order %d", h.Order())
	p.X.Label.Text = "occupied pixel (sorted)"
	p.Y.Label.Text = "rows"

	pts := make(plotter.XYs, len(counts))
	for i, c := range counts {
		pts[i] = plotter.XY{X: float64(i), Y: c}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("build count line: %w", err)
	}
	line.Width = vg.Points(1)
	p.Add(line)
	p.Legend.Add("counts", line)

	if threshold > 0 && len(counts) > 0 {
		rule := plotter.XYs{
			{X: 0, Y: float64(threshold)},
			{X: float64(len(counts) - 1), Y: float64(threshold)},
		}
		thresholdLine, err := plotter.NewLine(rule)
		if err != nil {
			return fmt.Errorf("build threshold line: %w", err)
		}
		thresholdLine.Width = vg.Points(1)
		thresholdLine.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		p.Add(thresholdLine)
		p.Legend.Add("threshold", thresholdLine)
	}

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save count distribution plot: %w", err)
	}
	return nil
}
