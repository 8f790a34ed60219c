package ports

import (
	"context"

	"github.com/hamelyn/checkout-gateway/internal/domain"
)

// CatalogSource produces the product records the catalog is built
// from. It is invoked exactly once, at process start.
type CatalogSource interface {
	Load(ctx context.Context) ([]domain.ProductRecord, error)
}
