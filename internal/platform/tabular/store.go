package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/stockyard-erp/stockyard/internal/shared"
)

// Table describes one delimited file: its name on disk and the fixed
// header row. Column order is part of the contract and is preserved
// across every read and write.
type Table struct {
	File   string
	Header []string
}

// Store reads and writes whole tables under a data directory. Every
// write replaces the full file; there is no row-level update.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data dir: %v", shared.ErrStorage, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory the store operates on.
func (s *Store) Dir() string {
	return s.dir
}

// ReadAll returns the data rows of the table in file order, header
// excluded. A missing file yields no rows and no error so the first run
// starts from empty tables; any other failure is a storage error.
func (s *Store) ReadAll(table Table) ([][]string, error) {
	f, err := os.Open(filepath.Join(s.dir, table.File))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: open %s: %v", shared.ErrStorage, table.File, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(table.Header)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", shared.ErrStorage, table.File, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[1:], nil
}

// WriteAll rewrites the table with its header followed by rows. The
// rows land in a temp file first and are renamed over the target so a
// failed write never leaves a truncated table behind.
func (s *Store) WriteAll(table Table, rows [][]string) error {
	tmp, err := os.CreateTemp(s.dir, table.File+".*")
	if err != nil {
		return fmt.Errorf("%w: temp file for %s: %v", shared.ErrStorage, table.File, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	writer := csv.NewWriter(tmp)
	if err := writer.Write(table.Header); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write header %s: %v", shared.ErrStorage, table.File, err)
	}
	for _, row := range rows {
		if len(row) != len(table.Header) {
			tmp.Close()
			return fmt.Errorf("%w: row width %d != header width %d in %s", shared.ErrStorage, len(row), len(table.Header), table.File)
		}
		if err := writer.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("%w: write row %s: %v", shared.ErrStorage, table.File, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: flush %s: %v", shared.ErrStorage, table.File, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", shared.ErrStorage, table.File, err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, table.File)); err != nil {
		return fmt.Errorf("%w: replace %s: %v", shared.ErrStorage, table.File, err)
	}
	return nil
}

// Append loads the table, adds one row and rewrites the whole file.
func (s *Store) Append(table Table, row []string) error {
	rows, err := s.ReadAll(table)
	if err != nil {
		return err
	}
	return s.WriteAll(table, append(rows, row))
}
