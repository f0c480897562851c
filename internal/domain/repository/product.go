package repository

import (
	"context"

	"github.com/threadcart/garmentshop/internal/domain/model"
)

// ProductRepository describes persistence operations for the catalog.
type ProductRepository interface {
	Create(ctx context.Context, title string, price float64, stock int) (*model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status model.PaymentStatus) error
	Delete(ctx context.Context, id int64) error
}
