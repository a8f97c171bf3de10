// Package catalog persists partitioned-catalog metadata: the catalog info
// record plus the chosen partition pixel list, stored in sqlite. Partition
// lists also round-trip to the CSV interchange format
// ("Norder,Npix,row_count") used by catalog importers.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/skyframe-data/skypart/internal/healpix"
	"github.com/skyframe-data/skypart/internal/partition"
)

// CatalogType distinguishes the dataset flavors a partition set can back.
type CatalogType string

const (
	TypeObject CatalogType = "object"
	TypeSource CatalogType = "source"
	TypeMargin CatalogType = "margin"
	TypeIndex  CatalogType = "index"
)

// Info is the catalog metadata record. CatalogID is assigned on first
// save when empty.
type Info struct {
	CatalogID    string      `json:"catalog_id"`
	Name         string      `json:"catalog_name"`
	CatalogType  CatalogType `json:"catalog_type"`
	TotalRows    uint64      `json:"total_rows"`
	HighestOrder int         `json:"highest_order"`
	LowestOrder  int         `json:"lowest_order"`
	Threshold    uint64      `json:"pixel_threshold"`
	CreatedAt    int64       `json:"created_at,omitempty"`
}

// Partition is one leaf pixel of a catalog with its row count.
type Partition struct {
	Order    healpix.Order `json:"order"`
	Pixel    uint64        `json:"pixel"`
	RowCount uint64        `json:"row_count"`
}

// Validate checks the info record for obvious misconfiguration.
func (info *Info) Validate() error {
	if info.Name == "" {
		return fmt.Errorf("catalog name is required: %w", healpix.ErrInvalidArgument)
	}
	if info.HighestOrder < 0 || info.HighestOrder > int(healpix.MaxOrder) {
		return fmt.Errorf("highest order %d out of range: %w", info.HighestOrder, healpix.ErrOutOfRange)
	}
	if info.LowestOrder < 0 || info.LowestOrder > info.HighestOrder {
		return fmt.Errorf("lowest order %d exceeds highest order %d: %w",
			info.LowestOrder, info.HighestOrder, healpix.ErrInvalidArgument)
	}
	return nil
}

// LoadInfo reads a catalog info JSON file.
func LoadInfo(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog info %s: %w", path, err)
	}
	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse catalog info %s: %w", path, err)
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}
	return &info, nil
}

// SaveInfo writes a catalog info JSON file, assigning a UUID if needed.
func SaveInfo(info *Info, path string) error {
	if err := info.Validate(); err != nil {
		return err
	}
	if info.CatalogID == "" {
		info.CatalogID = uuid.New().String()
	}
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog info: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write catalog info %s: %w", path, err)
	}
	return nil
}

// PartitionsFromAlignment extracts the destination partition list from an
// alignment, sorted breadth-first.
func PartitionsFromAlignment(a *partition.Alignment) []Partition {
	dests := a.Destinations()
	parts := make([]Partition, len(dests))
	for i, d := range dests {
		parts[i] = Partition{Order: d.Order, Pixel: d.Pixel, RowCount: d.Count}
	}
	return parts
}
