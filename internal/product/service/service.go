// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"

	producterrors "github.com/abgdnv/inventory/internal/product/errors"
	"github.com/abgdnv/inventory/internal/product/store"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int) (*ProductDto, error)

	// FindAll returns the products matching the optional category and name filters.
	// Returns an empty slice if no products match.
	FindAll(ctx context.Context, category, name string) ([]ProductDto, error)

	// Create adds a new product to the system.
	// Returns ValidationError if a required field is missing.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// Replace overwrites all fields of an existing product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Replace(ctx context.Context, id int, product ProductCreateDto) (*ProductDto, error)

	// Patch overwrites only the supplied fields of an existing product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Patch(ctx context.Context, id int, patch ProductPatchDto) (*ProductDto, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int) error
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
}

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	return &Service{
		repository: repo,
	}
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Stock    int     `json:"stock"`
}

// ProductCreateDto represents the payload for creating or replacing a product.
// Fields are pointers so that presence is validated rather than non-zero values.
type ProductCreateDto struct {
	Name     *string  `json:"name"     validate:"required"`
	Price    *float64 `json:"price"    validate:"required"`
	Category *string  `json:"category" validate:"required"`
	Stock    *int     `json:"stock"    validate:"required"`
}

// ProductPatchDto represents the payload for a partial update.
type ProductPatchDto struct {
	Name     Optional[string]  `json:"name"`
	Price    Optional[float64] `json:"price"`
	Category Optional[string]  `json:"category"`
	Stock    Optional[int]     `json:"stock"`
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id int) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}

	return toDto(product), nil
}

// FindAll retrieves the products matching the filters and returns them as ProductDTOs.
func (s *Service) FindAll(ctx context.Context, category, name string) ([]ProductDto, error) {
	products, err := s.repository.FindAll(ctx, store.Filter{Category: category, Name: name})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	productDTOs := make([]ProductDto, len(products))

	for i, item := range products {
		productDTOs[i] = *toDto(&item)
	}

	return productDTOs, nil
}

// Create creates a new product and returns it as a ProductDto.
func (s *Service) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	fields, err := toFields(product)
	if err != nil {
		return nil, err
	}
	p, err := s.repository.Create(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return toDto(p), nil
}

// Replace overwrites an existing product and returns the updated product as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) Replace(ctx context.Context, id int, product ProductCreateDto) (*ProductDto, error) {
	fields, err := toFields(product)
	if err != nil {
		return nil, err
	}
	updated, err := s.repository.Replace(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to replace product with ID %d: %w", id, err)
	}

	return toDto(updated), nil
}

// Patch applies a partial update and returns the updated product as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) Patch(ctx context.Context, id int, patch ProductPatchDto) (*ProductDto, error) {
	updated, err := s.repository.Patch(ctx, id, store.ProductPatch{
		Name:     patch.Name.Ptr(),
		Price:    patch.Price.Ptr(),
		Category: patch.Category.Ptr(),
		Stock:    patch.Stock.Ptr(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to patch product with ID %d: %w", id, err)
	}

	return toDto(updated), nil
}

// DeleteByID deletes a product by its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) DeleteByID(ctx context.Context, id int) error {
	if err := s.repository.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product with ID %d: %w", id, err)
	}
	return nil
}

// toFields converts a ProductCreateDto to store fields, failing on any missing field.
func toFields(product ProductCreateDto) (store.ProductFields, error) {
	missing := make(map[string]string)
	if product.Name == nil {
		missing["name"] = "required"
	}
	if product.Price == nil {
		missing["price"] = "required"
	}
	if product.Category == nil {
		missing["category"] = "required"
	}
	if product.Stock == nil {
		missing["stock"] = "required"
	}
	if len(missing) > 0 {
		return store.ProductFields{}, &producterrors.ValidationError{Fields: missing}
	}
	return store.ProductFields{
		Name:     *product.Name,
		Price:    *product.Price,
		Category: *product.Category,
		Stock:    *product.Stock,
	}, nil
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Category: product.Category,
		Stock:    product.Stock,
	}
}
