package repository

import (
	"context"

	"github.com/threadcart/garmentshop/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
//
// Create enforces the one-active-order-per-(buyer, product) rule atomically
// and returns ErrAlreadyExists when the slot is taken. UpdateStatus and
// Cancel are conditional writes that only fire while the order is pending,
// so concurrent transitions cannot both win.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByBuyer(ctx context.Context, email string) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error)
	Cancel(ctx context.Context, id int64) (*model.Order, error)
}
