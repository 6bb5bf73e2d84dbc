// Package productrepo reads the product catalog. The catalog is owned by
// another subsystem; this adapter only ever queries it, never writes.
package productrepo

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/product"
)

// ProductDTO is the database representation of a catalog product.
type ProductDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name            string
	Price           decimal.Decimal `gorm:"type:decimal(10,2)"`
	Category        string
	LoyaltyEligible bool
	PromoEligible   bool
}

// TableName overrides the default GORM table name.
func (ProductDTO) TableName() string {
	return "products"
}

// GormProductCatalog implements ProductCatalog using GORM.
type GormProductCatalog struct {
	db *gorm.DB
}

// NewGormProductCatalog creates a new GORM product catalog.
func NewGormProductCatalog(db *gorm.DB) *GormProductCatalog {
	return &GormProductCatalog{db: db}
}

// GetByIDs retrieves the catalog products for the given IDs, keyed by ID.
// Unknown IDs are simply absent from the result.
func (c *GormProductCatalog) GetByIDs(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]product.Product, error) {
	if len(ids) == 0 {
		return map[kernel.UUID]product.Product{}, nil
	}

	rawIDs := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		rawIDs = append(rawIDs, id.Bytes())
	}

	var dtos []ProductDTO
	if err := c.db.WithContext(ctx).Find(&dtos, "id IN ?", rawIDs).Error; err != nil {
		return nil, err
	}

	catalog := make(map[kernel.UUID]product.Product, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}

		price, err := kernel.NewMoney(dto.Price)
		if err != nil {
			return nil, err
		}

		p, err := product.RestoreProduct(id, dto.Name, price, dto.Category, dto.LoyaltyEligible, dto.PromoEligible)
		if err != nil {
			return nil, err
		}
		catalog[id] = p
	}

	return catalog, nil
}
