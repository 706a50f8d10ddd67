// Package loader reads star catalogues and asterism lists into an
// astro.Builder.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/litescript/ls-sky/internal/astro"
	"github.com/litescript/ls-sky/internal/coords"
)

// ErrMissingColumn is returned when a HYG header lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// HYG loads stars from a CSV extract of the HYG database. Columns are
// located by header name, so extracts may drop or reorder columns.
var HYG astro.Loader = astro.LoaderFunc(loadHYG)

var hygRequired = []string{"rarad", "decrad"}

type hygColumns map[string]int

func (c hygColumns) get(record []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func loadHYG(r io.Reader, b *astro.Builder) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return fmt.Errorf("read HYG header: %w", err)
	}
	cols := make(hygColumns, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range hygRequired {
		if _, ok := cols[name]; !ok {
			return fmt.Errorf("HYG header: %w %q", ErrMissingColumn, name)
		}
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read HYG record: %w", err)
		}
		line, _ := cr.FieldPos(0)
		star, err := parseHYGStar(cols, record)
		if err != nil {
			return fmt.Errorf("HYG line %d: %w", line, err)
		}
		b.AddStar(star)
	}
}

func parseHYGStar(cols hygColumns, record []string) (*astro.Star, error) {
	hip, err := parseInt(cols.get(record, "hip"))
	if err != nil {
		return nil, fmt.Errorf("hip: %w", err)
	}
	mag, err := parseFloat(cols.get(record, "mag"))
	if err != nil {
		return nil, fmt.Errorf("mag: %w", err)
	}
	ci, err := parseFloat(cols.get(record, "ci"))
	if err != nil {
		return nil, fmt.Errorf("ci: %w", err)
	}
	ra, err := strconv.ParseFloat(cols.get(record, "rarad"), 64)
	if err != nil {
		return nil, fmt.Errorf("rarad: %w", err)
	}
	dec, err := strconv.ParseFloat(cols.get(record, "decrad"), 64)
	if err != nil {
		return nil, fmt.Errorf("decrad: %w", err)
	}
	eq, err := coords.NewEquatorial(ra, dec)
	if err != nil {
		return nil, err
	}
	return astro.NewStar(hip, hygName(cols, record), eq, mag, ci)
}

// hygName prefers the proper name, then the Bayer designation, and falls
// back to "? <constellation>".
func hygName(cols hygColumns, record []string) string {
	con := cols.get(record, "con")
	if proper := cols.get(record, "proper"); proper != "" {
		return proper
	}
	if bayer := cols.get(record, "bayer"); bayer != "" {
		return bayer + " " + con
	}
	return "? " + con
}

// Blank fields read as zero.
func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
