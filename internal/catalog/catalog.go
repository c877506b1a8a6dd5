// Package catalog defines the product lookup contract consumed by the
// pricing engine. Implementations live in the repository layer; the engine
// only ever sees this interface.
package catalog

import (
	"context"

	"github.com/construsol/proposal-service/internal/domain/model"
)

// Catalog resolves product codes to immutable pricing snapshots.
type Catalog interface {
	// GetProduct returns the product with the given code. A missing
	// product is reported as *errs.CatalogLookupError.
	GetProduct(ctx context.Context, code string) (model.ProductRecord, error)

	// ListProductsByCategory returns every product tagged with the given
	// category. An empty result is not an error.
	ListProductsByCategory(ctx context.Context, category string) ([]model.ProductRecord, error)
}
