package services

import (
	"mboaconnect/internal/models"
	"mboaconnect/internal/repositories"

	"github.com/google/uuid"
)

// ProductService handles business logic related to catalog products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if product.Price.IsNegative() {
		return NewValidationError("product price cannot be negative")
	}
	if product.Stock < 0 {
		return NewValidationError("product stock cannot be negative")
	}
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product. Orders already placed keep the
// unit price they were created with.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if product.Price.IsNegative() {
		return NewValidationError("product price cannot be negative")
	}
	if product.Stock < 0 {
		return NewValidationError("product stock cannot be negative")
	}
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}
