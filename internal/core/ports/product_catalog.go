package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/product"
)

// ProductCatalog is the read-only lookup contract for catalog products.
// The catalog is owned by another subsystem; this core only ever reads
// the pricing records it needs to secure a cart.
type ProductCatalog interface {
	// GetByIDs retrieves the catalog records for the given product ids,
	// keyed by id. Missing or delisted products are simply absent from
	// the result; callers decide whether absence is an error.
	GetByIDs(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]product.Product, error)
}
