package dataset

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed careers.csv
var defaultCSV []byte

// CSVSource reads rows from a CSV document with a header line naming the
// columns interest, keywords, careers and (optionally) personality_traits.
type CSVSource struct {
	name string
	open func() (io.ReadCloser, error)
}

// NewCSVFile reads the CSV file at path.
func NewCSVFile(path string) *CSVSource {
	return &CSVSource{name: path, open: func() (io.ReadCloser, error) { return os.Open(path) }}
}

// NewEmbedded reads the dataset bundled with the binary.
func NewEmbedded() *CSVSource {
	return &CSVSource{name: "embedded", open: func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(defaultCSV)), nil
	}}
}

// Rows parses the whole document.
func (s *CSVSource) Rows(ctx context.Context) ([]Row, error) {
	f, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", s.name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dataset %s: %w", s.name, ErrEmptyDataset)
		}
		return nil, fmt.Errorf("dataset %s: read header: %w", s.name, err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"interest", "keywords", "careers"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("dataset %s: missing column %q", s.name, required)
		}
	}

	var rows []Row
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset %s: %w", s.name, err)
		}
		rows = append(rows, Row{
			Interest:          field(rec, cols, "interest"),
			Keywords:          field(rec, cols, "keywords"),
			Careers:           field(rec, cols, "careers"),
			PersonalityTraits: field(rec, cols, "personality_traits"),
		})
	}
	return rows, nil
}

func field(rec []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}
