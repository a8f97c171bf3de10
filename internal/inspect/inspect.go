// Package inspect renders quick visual summaries of a computed partition
// set: pixels-per-order bar charts (go-echarts HTML) and count
// distribution plots (gonum/plot PNG).
package inspect

import (
	"github.com/skyframe-data/skypart/internal/catalog"
	"github.com/skyframe-data/skypart/internal/partition"
)

// OrderCount is the number of destination pixels and aggregate rows at
// one order of a partition set.
type OrderCount struct {
	Order  int    `json:"order"`
	Pixels int    `json:"pixels"`
	Rows   uint64 `json:"rows"`
}

// OrderCounts summarizes an alignment's destination cells per order,
// ascending. Orders with no destination pixels between the lowest and
// highest used order are included with zero counts so charts show gaps.
func OrderCounts(a *partition.Alignment) []OrderCount {
	dests := a.Destinations()
	parts := make([]catalog.Partition, len(dests))
	for i, d := range dests {
		parts[i] = catalog.Partition{Order: d.Order, Pixel: d.Pixel, RowCount: d.Count}
	}
	return OrderCountsFromPartitions(parts)
}

// OrderCountsFromPartitions is OrderCounts over a stored partition list.
func OrderCountsFromPartitions(parts []catalog.Partition) []OrderCount {
	if len(parts) == 0 {
		return nil
	}

	minOrder, maxOrder := parts[0].Order, parts[0].Order
	byOrder := make(map[int]*OrderCount)
	for _, p := range parts {
		if p.Order < minOrder {
			minOrder = p.Order
		}
		if p.Order > maxOrder {
			maxOrder = p.Order
		}
		oc, ok := byOrder[int(p.Order)]
		if !ok {
			oc = &OrderCount{Order: int(p.Order)}
			byOrder[int(p.Order)] = oc
		}
		oc.Pixels++
		oc.Rows += p.RowCount
	}

	counts := make([]OrderCount, 0, int(maxOrder-minOrder)+1)
	for order := int(minOrder); order <= int(maxOrder); order++ {
		if oc, ok := byOrder[order]; ok {
			counts = append(counts, *oc)
		} else {
			counts = append(counts, OrderCount{Order: order})
		}
	}
	return counts
}
