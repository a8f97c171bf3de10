package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/skyframe-data/skypart/internal/healpix"
)

// Column headers of the partition list interchange format.
var partitionCSVHeader = []string{"Norder", "Npix", "row_count"}

// WritePartitionCSV writes a partition list in the interchange format:
// a header row followed by one "Norder,Npix,row_count" row per partition.
func WritePartitionCSV(w io.Writer, parts []Partition) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(partitionCSVHeader); err != nil {
		return fmt.Errorf("write partition header: %w", err)
	}
	for _, p := range parts {
		record := []string{
			strconv.FormatUint(uint64(p.Order), 10),
			strconv.FormatUint(p.Pixel, 10),
			strconv.FormatUint(p.RowCount, 10),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write partition %d/%d: %w", p.Order, p.Pixel, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadPartitionCSV parses a partition list in the interchange format.
// The header row is required and validated.
func ReadPartitionCSV(r io.Reader) ([]Partition, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read partition header: %w", err)
	}
	if len(header) != 3 || header[0] != "Norder" || header[1] != "Npix" || header[2] != "row_count" {
		return nil, fmt.Errorf("unexpected partition header %v: %w", header, healpix.ErrInvalidArgument)
	}

	var parts []Partition
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read partition line %d: %w", line, err)
		}
		order, err := strconv.ParseUint(record[0], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("parse Norder on line %d: %w", line, err)
		}
		pixel, err := strconv.ParseUint(record[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse Npix on line %d: %w", line, err)
		}
		count, err := strconv.ParseUint(record[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse row_count on line %d: %w", line, err)
		}
		if _, err := healpix.NewPixel(healpix.Order(order), pixel); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		parts = append(parts, Partition{
			Order:    healpix.Order(order),
			Pixel:    pixel,
			RowCount: count,
		})
	}
	return parts, nil
}
