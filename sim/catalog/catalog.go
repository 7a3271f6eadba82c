// Package catalog persists the set of files of a simulator as a plain
// record-per-file table of (name, size). Block placement is not stored: restoring
// a catalog re-runs allocation, so layouts may differ from the saved session.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/blocksim/blocksim/sim"
)

var header = []string{"name", "size"}

// Record is one row of the catalog.
type Record struct {
	Name string
	Size int
}

// Catalog is an ordered list of file records.
type Catalog struct {
	Records []Record
}

// FromSimulator captures the files currently present in s, sorted by name.
func FromSimulator(s *sim.Simulator) *Catalog {
	files := s.Files()
	c := &Catalog{Records: make([]Record, 0, len(files))}
	for _, f := range files {
		c.Records = append(c.Records, Record{Name: f.Name, Size: f.Size})
	}
	return c
}

// Save writes the catalog as CSV with a name,size header.
func (c *Catalog) Save(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range c.Records {
		if err := cw.Write([]string{r.Name, strconv.Itoa(r.Size)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveFile writes the catalog to path, replacing any existing file.
func (c *Catalog) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating catalog: %w", err)
	}
	if err := c.Save(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing catalog: %w", err)
	}
	return f.Close()
}

// Load parses a CSV catalog. The header row is required.
func Load(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)
	first, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty catalog: missing %v header", header)
	}
	if err != nil {
		return nil, fmt.Errorf("reading catalog header: %w", err)
	}
	if first[0] != header[0] || first[1] != header[1] {
		return nil, fmt.Errorf("unexpected catalog header %v, want %v", first, header)
	}
	c := &Catalog{}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading catalog: %w", err)
		}
		size, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("catalog line %d: invalid size %q", line, row[1])
		}
		c.Records = append(c.Records, Record{Name: row[0], Size: size})
	}
	return c, nil
}

// LoadFile parses the catalog stored at path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Failure is a catalog row that could not be restored.
type Failure struct {
	Record Record
	Err    error
}

// Restore creates every cataloged file on s in table order. Rows that cannot be
// created (duplicates, no space) are skipped and returned in table order along
// with the number of files that were created.
func (c *Catalog) Restore(s *sim.Simulator) (int, []Failure) {
	var failures []Failure
	for _, r := range c.Records {
		if _, err := s.CreateFile(r.Name, r.Size); err != nil {
			logrus.Warnf("catalog: could not restore %q: %v", r.Name, err)
			failures = append(failures, Failure{Record: r, Err: err})
		}
	}
	return len(c.Records) - len(failures), failures
}
