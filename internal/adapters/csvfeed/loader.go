// Package csvfeed reads the product catalog export. The file is read
// once at process start; a reload requires a restart.
package csvfeed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hamelyn/checkout-gateway/internal/domain"
)

type Loader struct {
	path            string
	defaultCurrency string
}

func NewLoader(path, defaultCurrency string) *Loader {
	return &Loader{path: path, defaultCurrency: defaultCurrency}
}

// Load parses the export into load-ordered records. Header names are
// matched case-insensitively after trimming; missing optional columns
// yield empty values. Rows without an id are skipped. Unreadable or
// unparseable input returns ErrCatalogLoad; whether that aborts
// startup is the bootstrap's strict-load policy.
func (l *Loader) Load(ctx context.Context) ([]domain.ProductRecord, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrCatalogLoad, l.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header of %s: %v", domain.ErrCatalogLoad, l.path, err)
	}
	columns := indexColumns(header)

	var records []domain.ProductRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrCatalogLoad, err)
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrCatalogLoad, l.path, err)
		}

		id := strings.TrimSpace(field(row, columns, "id"))
		if id == "" {
			continue
		}
		record := domain.ProductRecord{
			ID:       id,
			Title:    strings.TrimSpace(field(row, columns, "title")),
			RawPrice: strings.TrimSpace(field(row, columns, "price")),
			Currency: strings.ToUpper(strings.TrimSpace(l.defaultCurrency)),
			Link:     strings.TrimSpace(field(row, columns, "link")),
			ImageURL: strings.TrimSpace(field(row, columns, "image link")),
		}
		if minor, currency, err := domain.NormalizePrice(record.RawPrice, l.defaultCurrency); err == nil {
			record.PriceMinorUnits = minor
			record.Currency = currency
			record.PriceValid = true
		}
		records = append(records, record)
	}
	return records, nil
}

// indexColumns maps normalized header names to positions. Synonyms of
// the image column seen in real exports are folded into "image link".
func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		switch key {
		case "image_link", "image":
			key = "image link"
		}
		if _, ok := columns[key]; !ok {
			columns[key] = i
		}
	}
	return columns
}

func field(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}
