package store

import (
	"context"
	"strings"
	"sync"

	"github.com/abgdnv/inventory/internal/product/errors"
	"golang.org/x/text/cases"
)

// inMemory implements ProductStore using an insertion-ordered slice.
type inMemory struct {
	mu       sync.RWMutex
	products []Product
}

// NewInMemoryStore creates a new instance of ProductStore holding the given products.
// The products are stored in the order given.
func NewInMemoryStore(initial ...Product) ProductStore {
	products := make([]Product, len(initial))
	copy(products, initial)
	return &inMemory{
		products: products,
	}
}

// FindByID retrieves a product by its ID.
func (s *inMemory) FindByID(_ context.Context, id int) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, errors.ErrProductNotFound
	}
	p := s.products[i]
	return &p, nil
}

// FindAll retrieves the products matching the filter.
func (s *inMemory) FindAll(_ context.Context, filter Filter) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// cases.Caser is stateful, one per call
	folder := cases.Fold()
	category := folder.String(filter.Category)
	name := folder.String(filter.Name)

	list := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if category != "" && folder.String(p.Category) != category {
			continue
		}
		if name != "" && !strings.Contains(folder.String(p.Name), name) {
			continue
		}
		list = append(list, p)
	}
	return list, nil
}

// Create creates a new product and returns it.
func (s *inMemory) Create(_ context.Context, fields ProductFields) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := Product{
		ID:       s.nextID(),
		Name:     fields.Name,
		Price:    fields.Price,
		Category: fields.Category,
		Stock:    fields.Stock,
	}
	s.products = append(s.products, product)

	return &product, nil
}

// Replace overwrites all fields of the product with the given ID.
func (s *inMemory) Replace(_ context.Context, id int, fields ProductFields) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, errors.ErrProductNotFound
	}
	p := &s.products[i]
	p.Name = fields.Name
	p.Price = fields.Price
	p.Category = fields.Category
	p.Stock = fields.Stock

	updated := *p
	return &updated, nil
}

// Patch overwrites the fields set in the patch.
func (s *inMemory) Patch(_ context.Context, id int, patch ProductPatch) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, errors.ErrProductNotFound
	}
	p := &s.products[i]
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}

	updated := *p
	return &updated, nil
}

// DeleteByID deletes a product by its ID.
func (s *inMemory) DeleteByID(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return errors.ErrProductNotFound
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	return nil
}

// indexOf returns the position of the product with the given ID, or -1.
// Callers must hold the lock.
func (s *inMemory) indexOf(id int) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

// nextID returns one past the highest ID present, or 1 for an empty store.
// Callers must hold the write lock.
func (s *inMemory) nextID() int {
	maxID := 0
	for _, p := range s.products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}
