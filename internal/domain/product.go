package domain

import (
	"fmt"
	"strings"
)

// ProductRecord is one row of the catalog export, fully derived at
// load time. Currency is always set; PriceValid marks whether the raw
// price normalized cleanly.
type ProductRecord struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	RawPrice        string `json:"raw_price"`
	PriceMinorUnits int64  `json:"price_minor_units"`
	Currency        string `json:"currency"`
	PriceValid      bool   `json:"price_valid"`
	Link            string `json:"link"`
	ImageURL        string `json:"image_url,omitempty"`
}

// Catalog is the immutable in-memory product collection. It is built
// once at startup and shared read-only across requests, so no locking
// is needed afterwards.
type Catalog struct {
	records []ProductRecord
	byID    map[string]int
}

// NewCatalog indexes records by id. Source data does not guarantee
// unique ids; the first occurrence in load order wins, matching what a
// linear scan over the file would return.
func NewCatalog(records []ProductRecord) *Catalog {
	byID := make(map[string]int, len(records))
	for i, rec := range records {
		id := strings.TrimSpace(rec.ID)
		if id == "" {
			continue
		}
		if _, ok := byID[id]; !ok {
			byID[id] = i
		}
	}
	return &Catalog{records: records, byID: byID}
}

// Lookup resolves a product id compared as a trimmed string.
func (c *Catalog) Lookup(id string) (ProductRecord, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return ProductRecord{}, fmt.Errorf("%w: empty product id", ErrInvalidInput)
	}
	idx, ok := c.byID[trimmed]
	if !ok {
		return ProductRecord{}, fmt.Errorf("%w: id %q", ErrProductNotFound, trimmed)
	}
	return c.records[idx], nil
}

// First returns up to n records in load order.
func (c *Catalog) First(n int) []ProductRecord {
	if n < 0 {
		n = 0
	}
	if n > len(c.records) {
		n = len(c.records)
	}
	out := make([]ProductRecord, n)
	copy(out, c.records[:n])
	return out
}

func (c *Catalog) Size() int {
	return len(c.records)
}
