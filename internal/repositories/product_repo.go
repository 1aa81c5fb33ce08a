package repositories

import (
	"github.com/shopspring/decimal"

	"storefront/internal/models"
)

// ProductFilter holds optional catalog search filters; nil/empty fields are ignored.
type ProductFilter struct {
	CategoryID string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Color      string
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	Search(filter ProductFilter) ([]models.Product, error)
	ListByCategory(categoryID string) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
