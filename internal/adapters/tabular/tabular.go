// Package tabular turns delimited text exports into field-name keyed records.
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/okian/touchline/internal/domain/model"
)

// Sentinel errors for this package.
var (
	ErrNoHeader = errors.New("tabular: missing header row")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse reads comma-separated text with a header row. Quoted fields may
// contain commas. Rows shorter than the header get empty values; rows that
// cannot be read are skipped. Values are trimmed and never coerced.
func Parse(r io.Reader) ([]model.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("tabular: read header: %w", err)
	}
	fields := make([]string, len(header))
	for i, h := range header {
		fields[i] = strings.TrimSpace(h)
	}

	var out []model.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			continue
		}
		if err != nil {
			return out, fmt.Errorf("tabular: read row: %w", err)
		}
		if isBlank(row) {
			continue
		}
		rec := make(model.Record, len(fields))
		for i, f := range fields {
			if f == "" {
				continue
			}
			if i < len(row) {
				rec[f] = strings.TrimSpace(row[i])
			} else {
				rec[f] = ""
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// ParseBytes is Parse over an in-memory document. A leading UTF-8 BOM is dropped.
func ParseBytes(b []byte) ([]model.Record, error) {
	b = bytes.TrimPrefix(b, utf8BOM)
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}
	return Parse(bytes.NewReader(b))
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
