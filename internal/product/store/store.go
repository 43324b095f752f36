// Package store provides an interface for product storage operations.
package store

import "context"

// Product represents a product entity in the store.
type Product struct {
	ID       int
	Name     string
	Price    float64
	Category string
	Stock    int
}

// ProductFields holds every mutable field of a product.
type ProductFields struct {
	Name     string
	Price    float64
	Category string
	Stock    int
}

// ProductPatch holds the fields of a partial update. A nil field is left untouched.
type ProductPatch struct {
	Name     *string
	Price    *float64
	Category *string
	Stock    *int
}

// Filter narrows FindAll results. Empty values match everything.
type Filter struct {
	// Category is compared case-insensitively against the whole category.
	Category string
	// Name is matched case-insensitively as a substring of the product name.
	Name string
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type ProductStore interface {
	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int) (*Product, error)

	// FindAll returns the products matching the filter in insertion order.
	// Returns an empty slice if no products match.
	FindAll(ctx context.Context, filter Filter) ([]Product, error)

	// Create adds a new product to the store and returns it with its assigned ID.
	Create(ctx context.Context, fields ProductFields) (*Product, error)

	// Replace overwrites every field of an existing product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Replace(ctx context.Context, id int, fields ProductFields) (*Product, error)

	// Patch overwrites only the fields set in the patch.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Patch(ctx context.Context, id int, patch ProductPatch) (*Product, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int) error
}
