package services

import (
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CategoryService handles business logic for catalog categories.
type CategoryService struct {
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo repositories.CategoryRepository, productRepo repositories.ProductRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// GetAllCategories retrieves all categories.
func (s *CategoryService) GetAllCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

// GetCategoryByID retrieves a single category by its ID.
func (s *CategoryService) GetCategoryByID(id string) (*models.Category, error) {
	return s.categoryRepo.GetByID(id)
}

// ListProducts retrieves all products in a category. The category must exist.
func (s *CategoryService) ListProducts(categoryID string) ([]models.Product, error) {
	if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
		return nil, err
	}
	return s.productRepo.ListByCategory(categoryID)
}

// CreateCategory creates a new category.
func (s *CategoryService) CreateCategory(category *models.Category) error {
	return s.categoryRepo.Create(category)
}
