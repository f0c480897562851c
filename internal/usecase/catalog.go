package usecase

import (
	"context"

	"github.com/threadcart/garmentshop/internal/cache"
	"github.com/threadcart/garmentshop/internal/domain/model"
	"github.com/threadcart/garmentshop/internal/domain/repository"
)

// CatalogUseCase manages the product catalog with a read-through cache.
type CatalogUseCase struct {
	products repository.ProductRepository
	cache    cache.ProductCache
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository, productCache cache.ProductCache) *CatalogUseCase {
	return &CatalogUseCase{products: products, cache: productCache}
}

// Add creates a new catalog product.
func (u *CatalogUseCase) Add(ctx context.Context, title string, price float64, stock int) (*model.Product, error) {
	return u.products.Create(ctx, title, price, stock)
}

// Get fetches one product, preferring the cache.
func (u *CatalogUseCase) Get(ctx context.Context, id int64) (*model.Product, error) {
	if p, ok := u.cache.Get(ctx, id); ok {
		return p, nil
	}
	p, err := u.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.cache.Set(ctx, p)
	return p, nil
}

// List returns the full catalog, newest first.
func (u *CatalogUseCase) List(ctx context.Context) ([]model.Product, error) {
	return u.products.List(ctx)
}

// Remove deletes a product and drops its cache entry.
func (u *CatalogUseCase) Remove(ctx context.Context, id int64) error {
	if err := u.products.Delete(ctx, id); err != nil {
		return err
	}
	u.cache.Invalidate(ctx, id)
	return nil
}

// MarkPaid flips the product's shadow payment flag and invalidates the cache.
func (u *CatalogUseCase) MarkPaid(ctx context.Context, id int64) error {
	if err := u.products.UpdatePaymentStatus(ctx, id, model.PaymentStatusPaid); err != nil {
		return err
	}
	u.cache.Invalidate(ctx, id)
	return nil
}
