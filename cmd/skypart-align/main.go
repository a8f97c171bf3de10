// Command skypart-align computes a partition alignment from a pixel count
// histogram and optionally persists or visualizes the result.
//
// The histogram file holds one count per line (dense, pixel index =
// line number) or "index,count" pairs with -sparse. Example:
//
//	skypart-align -histogram counts.csv -lowest-order 0 -threshold 1000000 \
//	    -db catalogs.db -name gaia_dr3 -partition-csv partition_info.csv
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/skyframe-data/skypart/internal/catalog"
	"github.com/skyframe-data/skypart/internal/healpix"
	"github.com/skyframe-data/skypart/internal/inspect"
	"github.com/skyframe-data/skypart/internal/partition"
	"github.com/skyframe-data/skypart/internal/version"
)

// alignConfig mirrors the tuning flags; fields are pointers so a config
// file only overrides what it sets. Explicit flags win over the file.
type alignConfig struct {
	LowestOrder *uint   `json:"lowest_order,omitempty"`
	Threshold   *uint64 `json:"threshold,omitempty"`
	Policy      *string `json:"threshold_policy,omitempty"`
}

func main() {
	histPath := flag.String("histogram", "", "histogram file (one count per line, or index,count with -sparse)")
	sparse := flag.Bool("sparse", false, "treat histogram file as index,count pairs")
	highest := flag.Uint("highest-order", 10, "histogram order (required with -sparse; inferred otherwise)")
	lowest := flag.Uint("lowest-order", 0, "coarsest order the rollup may reach")
	threshold := flag.Uint64("threshold", 1_000_000, "row threshold per destination pixel")
	policy := flag.String("policy", string(partition.MaxDensityPerCell),
		"threshold policy: max_density_per_cell or min_count_per_cell")
	configPath := flag.String("config", "", "JSON tuning config (flags override file values)")
	dbPath := flag.String("db", "", "sqlite catalog database to save the partition list into")
	name := flag.String("name", "", "catalog name (required with -db)")
	outCSV := flag.String("partition-csv", "", "write the partition list CSV to this path")
	outHTML := flag.String("html", "", "write an order summary HTML page to this path")
	outPNG := flag.String("png", "", "write a count distribution PNG to this path")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	if *histPath == "" {
		log.Fatal("[align] -histogram is required")
	}
	if *dbPath != "" && *name == "" {
		log.Fatal("[align] -name is required with -db")
	}

	if *configPath != "" {
		if err := applyConfig(*configPath, lowest, threshold, policy); err != nil {
			log.Fatalf("[align] failed to load config: %v", err)
		}
	}

	h, err := readHistogram(*histPath, *sparse, healpix.Order(*highest))
	if err != nil {
		log.Fatalf("[align] failed to read histogram: %v", err)
	}
	stats := partition.Stats(h)
	log.Printf("[align] order %d: %d of %d pixels occupied, %d rows (max %d per pixel)",
		stats.Order, stats.NonZeroPixels, stats.Pixels, stats.TotalRows, stats.MaxCount)

	a, err := partition.GenerateAlignmentWithOptions(h.Counts(), h.Order(), partition.AlignmentOptions{
		LowestOrder: healpix.Order(*lowest),
		Threshold:   *threshold,
		Policy:      partition.ThresholdPolicy(*policy),
	})
	if err != nil {
		log.Fatalf("[align] alignment failed: %v", err)
	}

	for _, oc := range inspect.OrderCounts(a) {
		if oc.Pixels == 0 {
			continue
		}
		log.Printf("[align] order %d: %d partitions, %d rows", oc.Order, oc.Pixels, oc.Rows)
	}

	parts := catalog.PartitionsFromAlignment(a)
	log.Printf("[align] %d destination partitions", len(parts))

	if *outCSV != "" {
		if err := writePartitionCSV(*outCSV, parts); err != nil {
			log.Fatalf("[align] %v", err)
		}
		log.Printf("[align] wrote partition list to %s", *outCSV)
	}

	if *outHTML != "" {
		if err := writeAlignmentHTML(*outHTML, *name, a); err != nil {
			log.Fatalf("[align] %v", err)
		}
		log.Printf("[align] wrote summary page to %s", *outHTML)
	}

	if *outPNG != "" {
		if err := inspect.SaveCountDistribution(h, *threshold, *outPNG); err != nil {
			log.Fatalf("[align] %v", err)
		}
		log.Printf("[align] wrote count distribution to %s", *outPNG)
	}

	if *dbPath != "" {
		store, err := catalog.NewStore(*dbPath)
		if err != nil {
			log.Fatalf("[align] failed to open catalog database: %v", err)
		}
		defer store.Close()

		info := &catalog.Info{
			Name:         *name,
			CatalogType:  catalog.TypeObject,
			TotalRows:    stats.TotalRows,
			HighestOrder: int(h.Order()),
			LowestOrder:  int(*lowest),
			Threshold:    *threshold,
		}
		if err := store.SaveCatalog(info, parts); err != nil {
			log.Fatalf("[align] failed to save catalog: %v", err)
		}
		log.Printf("[align] saved catalog %s (%s)", info.Name, info.CatalogID)
	}
}

// applyConfig overlays config-file values onto flag defaults, leaving
// flags the user set explicitly untouched.
func applyConfig(path string, lowest *uint, threshold *uint64, policy *string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var cfg alignConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if cfg.LowestOrder != nil && !set["lowest-order"] {
		*lowest = *cfg.LowestOrder
	}
	if cfg.Threshold != nil && !set["threshold"] {
		*threshold = *cfg.Threshold
	}
	if cfg.Policy != nil && !set["policy"] {
		*policy = *cfg.Policy
	}
	return nil
}

// readHistogram loads a dense or sparse histogram file. Dense files infer
// their order from the line count; sparse files need the order flag.
func readHistogram(path string, sparse bool, order healpix.Order) (*partition.Histogram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var indexes, counts []uint64
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if sparse {
			fields := strings.SplitN(text, ",", 2)
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: expected index,count", line)
			}
			idx, err := strconv.ParseUint(strings.TrimSpace(fields[0]), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad index: %w", line, err)
			}
			count, err := strconv.ParseUint(strings.TrimSpace(fields[1]), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad count: %w", line, err)
			}
			indexes = append(indexes, idx)
			counts = append(counts, count)
			continue
		}
		count, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad count: %w", line, err)
		}
		counts = append(counts, count)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if sparse {
		s, err := partition.NewSparseHistogram(indexes, counts, order)
		if err != nil {
			return nil, err
		}
		return s.ToDense()
	}
	return partition.NewHistogram(counts)
}

func writePartitionCSV(path string, parts []catalog.Partition) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return catalog.WritePartitionCSV(f, parts)
}

func writeAlignmentHTML(path, name string, a *partition.Alignment) error {
	if name == "" {
		name = "alignment"
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return inspect.RenderAlignmentPage(f, name, a)
}
