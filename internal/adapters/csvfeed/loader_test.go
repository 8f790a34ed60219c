package csvfeed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hamelyn/checkout-gateway/internal/domain"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestLoadNormalizesRecords(t *testing.T) {
	t.Parallel()

	path := writeCatalog(t, ""+
		" ID , Title , Price , Link ,Image Link\n"+
		"1,Vinilo,\"12,99 EUR\",https://tienda.example.com/p/1,https://img.example.com/1.jpg\n"+
		"2,CD,9.50€,https://tienda.example.com/p/2,not-a-url\n")

	records, err := NewLoader(path, "EUR").Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if first.ID != "1" || first.Title != "Vinilo" {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if !first.PriceValid || first.PriceMinorUnits != 1299 || first.Currency != "EUR" {
		t.Fatalf("price not normalized: %+v", first)
	}
	if records[1].PriceMinorUnits != 950 {
		t.Fatalf("second record price: %+v", records[1])
	}
	if records[1].ImageURL != "not-a-url" {
		t.Fatalf("loader must not rewrite image urls, got %q", records[1].ImageURL)
	}
}

func TestLoadToleratesMissingOptionalColumns(t *testing.T) {
	t.Parallel()

	path := writeCatalog(t, "id,title,price\n1,Libro,5\n")
	records, err := NewLoader(path, "EUR").Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Link != "" || rec.ImageURL != "" {
		t.Fatalf("optional columns should be empty: %+v", rec)
	}
	if rec.PriceMinorUnits != 500 || rec.Currency != "EUR" {
		t.Fatalf("price: %+v", rec)
	}
}

func TestLoadToleratesRaggedRowsAndSynonyms(t *testing.T) {
	t.Parallel()

	path := writeCatalog(t, "id,title,price,image_link\n1,A,3,https://img.example.com/a.jpg\n2,B,4\n")
	records, err := NewLoader(path, "EUR").Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ImageURL != "https://img.example.com/a.jpg" {
		t.Fatalf("image_link synonym not recognized: %+v", records[0])
	}
	if records[1].ImageURL != "" {
		t.Fatalf("ragged row should yield empty image: %+v", records[1])
	}
}

func TestLoadSkipsRowsWithoutID(t *testing.T) {
	t.Parallel()

	path := writeCatalog(t, "id,title,price\n,NoID,5\n1,OK,5\n")
	records, err := NewLoader(path, "EUR").Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 1 || records[0].ID != "1" {
		t.Fatalf("expected only the row with an id, got %+v", records)
	}
}

func TestLoadKeepsRecordsWithInvalidPrices(t *testing.T) {
	t.Parallel()

	path := writeCatalog(t, "id,title,price\n1,Gratis,free\n")
	records, err := NewLoader(path, "EUR").Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	rec := records[0]
	if rec.PriceValid || rec.PriceMinorUnits != 0 {
		t.Fatalf("invalid price must not validate: %+v", rec)
	}
	if rec.Currency != "EUR" {
		t.Fatalf("currency must fall back to the default, got %q", rec.Currency)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewLoader(filepath.Join(t.TempDir(), "missing.csv"), "EUR").Load(context.Background())
	if !errors.Is(err, domain.ErrCatalogLoad) {
		t.Fatalf("expected ErrCatalogLoad, got %v", err)
	}
}
