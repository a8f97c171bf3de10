// Command skypart-inspect summarizes catalogs stored in a sqlite catalog
// database: lists catalogs, prints partition breakdowns, and exports
// partition CSVs or HTML charts.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/skyframe-data/skypart/internal/catalog"
	"github.com/skyframe-data/skypart/internal/inspect"
	"github.com/skyframe-data/skypart/internal/version"
)

func main() {
	dbPath := flag.String("db", "catalogs.db", "sqlite catalog database")
	name := flag.String("name", "", "catalog name to inspect (omit to list all catalogs)")
	outCSV := flag.String("partition-csv", "", "write the catalog's partition list CSV to this path")
	outHTML := flag.String("html", "", "write an order summary HTML page to this path")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	store, err := catalog.NewStore(*dbPath)
	if err != nil {
		log.Fatalf("[inspect] failed to open catalog database: %v", err)
	}
	defer store.Close()

	if *name == "" {
		listCatalogs(store)
		return
	}

	info, err := store.GetCatalogByName(*name)
	if err != nil {
		log.Fatalf("[inspect] %v", err)
	}
	parts, err := store.GetPartitions(info.CatalogID)
	if err != nil {
		log.Fatalf("[inspect] %v", err)
	}

	fmt.Printf("catalog:       %s (%s)\n", info.Name, info.CatalogID)
	fmt.Printf("type:          %s\n", info.CatalogType)
	fmt.Printf("total rows:    %d\n", info.TotalRows)
	fmt.Printf("orders:        %d..%d (threshold %d)\n", info.LowestOrder, info.HighestOrder, info.Threshold)
	fmt.Printf("partitions:    %d\n", len(parts))
	for _, oc := range inspect.OrderCountsFromPartitions(parts) {
		if oc.Pixels == 0 {
			continue
		}
		fmt.Printf("  order %2d:    %d partitions, %d rows\n", oc.Order, oc.Pixels, oc.Rows)
	}

	if *outCSV != "" {
		f, err := os.Create(*outCSV)
		if err != nil {
			log.Fatalf("[inspect] failed to create %s: %v", *outCSV, err)
		}
		defer f.Close()
		if err := catalog.WritePartitionCSV(f, parts); err != nil {
			log.Fatalf("[inspect] %v", err)
		}
		log.Printf("[inspect] wrote partition list to %s", *outCSV)
	}

	if *outHTML != "" {
		f, err := os.Create(*outHTML)
		if err != nil {
			log.Fatalf("[inspect] failed to create %s: %v", *outHTML, err)
		}
		defer f.Close()
		if err := inspect.RenderPartitionPage(f, info.Name, parts); err != nil {
			log.Fatalf("[inspect] %v", err)
		}
		log.Printf("[inspect] wrote summary page to %s", *outHTML)
	}
}

func listCatalogs(store *catalog.Store) {
	infos, err := store.ListCatalogs()
	if err != nil {
		log.Fatalf("[inspect] %v", err)
	}
	if len(infos) == 0 {
		fmt.Println("no catalogs")
		return
	}
	for _, info := range infos {
		fmt.Printf("%-30s %-8s rows=%-12d orders=%d..%d id=%s\n",
			info.Name, info.CatalogType, info.TotalRows,
			info.LowestOrder, info.HighestOrder, info.CatalogID)
	}
}
