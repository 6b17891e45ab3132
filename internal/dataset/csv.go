package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ReadCSV parses a stream log. The first column is the reference-clock index and
// must be numeric; remaining columns are typed numeric when every non-empty cell
// parses as a float, text otherwise. Empty numeric cells become NaN.
func ReadCSV(r io.Reader, name string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("stream %q: missing header", name)
		}
		return nil, fmt.Errorf("stream %q: read header: %w", name, err)
	}
	if len(header) == 0 || strings.TrimSpace(header[0]) == "" {
		return nil, fmt.Errorf("stream %q: empty index column name", name)
	}

	raw := make([][]string, len(header))
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("stream %q: line %d: %w", name, line, err)
		}
		for i := range header {
			raw[i] = append(raw[i], rec[i])
		}
	}

	index, ok := parseFloats(raw[0])
	if !ok {
		return nil, fmt.Errorf("stream %q: index column %q is not numeric", name, header[0])
	}

	t := NewTable(name, strings.TrimSpace(header[0]), index)
	for i := 1; i < len(header); i++ {
		col := strings.TrimSpace(header[i])
		if vals, ok := parseFloats(raw[i]); ok {
			t.WithFloat(col, vals)
		} else {
			t.WithText(col, raw[i])
		}
	}
	return t, nil
}

// parseFloats converts cells to float64. Empty and NaN-like cells map to NaN.
// It reports false as soon as a non-numeric cell is found.
func parseFloats(cells []string) ([]float64, bool) {
	out := make([]float64, len(cells))
	for i, c := range cells {
		c = strings.TrimSpace(c)
		switch strings.ToLower(c) {
		case "", "nan", "null":
			out[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
