package inspect

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/skyframe-data/skypart/internal/catalog"
	"github.com/skyframe-data/skypart/internal/partition"
)

// RenderAlignmentPage writes a self-contained HTML page summarizing an
// alignment: destination pixels per order and rows per order as bar
// charts.
func RenderAlignmentPage(w io.Writer, title string, a *partition.Alignment) error {
	subtitle := fmt.Sprintf("orders %d..%d threshold=%d policy=%s",
		a.LowestOrder, a.HighestOrder, a.Threshold, a.Policy)
	return renderOrderCountsPage(w, title, subtitle, OrderCounts(a))
}

// RenderPartitionPage is RenderAlignmentPage for a stored partition list.
func RenderPartitionPage(w io.Writer, title string, parts []catalog.Partition) error {
	subtitle := fmt.Sprintf("%d partitions", len(parts))
	return renderOrderCountsPage(w, title, subtitle, OrderCountsFromPartitions(parts))
}

func renderOrderCountsPage(w io.Writer, title, subtitle string, counts []OrderCount) error {
	orders := make([]string, len(counts))
	pixels := make([]opts.BarData, len(counts))
	rows := make([]opts.BarData, len(counts))
	for i, oc := range counts {
		orders[i] = strconv.Itoa(oc.Order)
		pixels[i] = opts.BarData{Value: oc.Pixels}
		rows[i] = opts.BarData{Value: oc.Rows}
	}

	pixelBar := charts.NewBar()
	pixelBar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: title + ": partitions per order", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "order"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "pixels"}),
	)
	pixelBar.SetXAxis(orders).
		AddSeries("pixels", pixels,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	rowBar := charts.NewBar()
	rowBar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: title + ": rows per order"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "order"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "rows"}),
	)
	rowBar.SetXAxis(orders).
		AddSeries("rows", rows,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	page := components.NewPage()
	page.AddCharts(pixelBar, rowBar)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("render partition summary page: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
