package catalog

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/skyframe-data/skypart/internal/healpix"
)

// Store persists catalog info records and their partition lists.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the sqlite database at path and ensures the
// schema exists.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000; PRAGMA foreign_keys = ON;`); err != nil {
		return nil, fmt.Errorf("failed to set pragmas: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS catalogs (
			catalog_id        TEXT PRIMARY KEY,
			name              TEXT UNIQUE NOT NULL,
			catalog_type      TEXT NOT NULL,
			total_rows        BIGINT NOT NULL,
			highest_order     INTEGER NOT NULL,
			lowest_order      INTEGER NOT NULL,
			threshold         BIGINT NOT NULL,
			created_at        BIGINT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS partitions (
			catalog_id        TEXT NOT NULL,
			norder            INTEGER NOT NULL,
			npix              BIGINT NOT NULL,
			row_count         BIGINT NOT NULL,
			PRIMARY KEY (catalog_id, norder, npix),
			FOREIGN KEY (catalog_id) REFERENCES catalogs(catalog_id) ON DELETE CASCADE
		);
	`)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// DB exposes the underlying handle, mainly for migrations and tests.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// retryOnBusy retries a write a few times when sqlite reports the
// database locked by a concurrent writer.
func retryOnBusy(fn func() error) error {
	var err error
	for attempt := 0; attempt < 5; attempt++ {
		err = fn()
		if err == nil || !isBusy(err) {
			return err
		}
		time.Sleep(time.Duration(attempt+1) * 10 * time.Millisecond)
	}
	return err
}

func isBusy(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}

// SaveCatalog inserts a catalog and its partition list in one
// transaction. If info.CatalogID is empty, a UUID is generated.
func (s *Store) SaveCatalog(info *Info, parts []Partition) error {
	if err := info.Validate(); err != nil {
		return err
	}
	if info.CatalogID == "" {
		info.CatalogID = uuid.New().String()
	}
	if info.CreatedAt == 0 {
		info.CreatedAt = time.Now().UnixNano()
	}

	return retryOnBusy(func() error {
		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("begin save catalog: %w", err)
		}
		defer tx.Rollback()

		_, err = tx.Exec(`
			INSERT INTO catalogs (
				catalog_id, name, catalog_type, total_rows,
				highest_order, lowest_order, threshold, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			info.CatalogID, info.Name, string(info.CatalogType), info.TotalRows,
			info.HighestOrder, info.LowestOrder, info.Threshold, info.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert catalog %s: %w", info.Name, err)
		}

		stmt, err := tx.Prepare(`
			INSERT INTO partitions (catalog_id, norder, npix, row_count)
			VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare partition insert: %w", err)
		}
		defer stmt.Close()

		for _, p := range parts {
			if _, err := stmt.Exec(info.CatalogID, p.Order, p.Pixel, p.RowCount); err != nil {
				return fmt.Errorf("insert partition %d/%d: %w", p.Order, p.Pixel, err)
			}
		}

		return tx.Commit()
	})
}

// GetCatalog returns the catalog info for an ID.
func (s *Store) GetCatalog(catalogID string) (*Info, error) {
	row := s.db.QueryRow(`
		SELECT catalog_id, name, catalog_type, total_rows,
		       highest_order, lowest_order, threshold, created_at
		FROM catalogs
		WHERE catalog_id = ?`, catalogID)
	return scanInfo(row)
}

// GetCatalogByName returns the catalog info for a unique name.
func (s *Store) GetCatalogByName(name string) (*Info, error) {
	row := s.db.QueryRow(`
		SELECT catalog_id, name, catalog_type, total_rows,
		       highest_order, lowest_order, threshold, created_at
		FROM catalogs
		WHERE name = ?`, name)
	return scanInfo(row)
}

func scanInfo(row *sql.Row) (*Info, error) {
	var info Info
	var catalogType string
	err := row.Scan(
		&info.CatalogID, &info.Name, &catalogType, &info.TotalRows,
		&info.HighestOrder, &info.LowestOrder, &info.Threshold, &info.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("catalog not found")
		}
		return nil, fmt.Errorf("scan catalog: %w", err)
	}
	info.CatalogType = CatalogType(catalogType)
	return &info, nil
}

// ListCatalogs returns all catalog info records, newest first.
func (s *Store) ListCatalogs() ([]*Info, error) {
	rows, err := s.db.Query(`
		SELECT catalog_id, name, catalog_type, total_rows,
		       highest_order, lowest_order, threshold, created_at
		FROM catalogs
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query catalogs: %w", err)
	}
	defer rows.Close()

	var infos []*Info
	for rows.Next() {
		var info Info
		var catalogType string
		if err := rows.Scan(
			&info.CatalogID, &info.Name, &catalogType, &info.TotalRows,
			&info.HighestOrder, &info.LowestOrder, &info.Threshold, &info.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan catalog: %w", err)
		}
		info.CatalogType = CatalogType(catalogType)
		infos = append(infos, &info)
	}
	return infos, rows.Err()
}

// GetPartitions returns a catalog's partition list in breadth-first pixel
// order.
func (s *Store) GetPartitions(catalogID string) ([]Partition, error) {
	rows, err := s.db.Query(`
		SELECT norder, npix, row_count
		FROM partitions
		WHERE catalog_id = ?`, catalogID)
	if err != nil {
		return nil, fmt.Errorf("query partitions: %w", err)
	}
	defer rows.Close()

	var parts []Partition
	for rows.Next() {
		var p Partition
		if err := rows.Scan(&p.Order, &p.Pixel, &p.RowCount); err != nil {
			return nil, fmt.Errorf("scan partition: %w", err)
		}
		parts = append(parts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	SortPartitions(parts)
	return parts, nil
}

// DeleteCatalog removes a catalog and, via cascade, its partitions.
func (s *Store) DeleteCatalog(catalogID string) error {
	return retryOnBusy(func() error {
		res, err := s.db.Exec(`DELETE FROM catalogs WHERE catalog_id = ?`, catalogID)
		if err != nil {
			return fmt.Errorf("delete catalog: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("catalog %s not found", catalogID)
		}
		return nil
	})
}

// SortPartitions sorts a partition list breadth-first, matching the order
// partitions are traversed when building a pixel tree.
func SortPartitions(parts []Partition) {
	pixels := make([]healpix.Pixel, len(parts))
	byPixel := make(map[healpix.Pixel]Partition, len(parts))
	for i, p := range parts {
		pixel := healpix.Pixel{Order: p.Order, Pixel: p.Pixel}
		pixels[i] = pixel
		byPixel[pixel] = p
	}
	healpix.SortPixels(pixels)
	for i, pixel := range pixels {
		parts[i] = byPixel[pixel]
	}
}
