package handlers

import (
	"context"

	"github.com/threadcart/garmentshop/internal/domain/model"
	"github.com/threadcart/garmentshop/internal/usecase"
)

// AuthFacade describes account capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, email, password string) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (int64, error)
	UserByID(ctx context.Context, id int64) (*model.User, error)
	SetUserStatus(ctx context.Context, id int64, status model.UserStatus) error
}

// CatalogFacade exposes catalog operations over HTTP.
type CatalogFacade interface {
	AddProduct(ctx context.Context, title string, price float64, stock int) (*model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	Products(ctx context.Context) ([]model.Product, error)
	RemoveProduct(ctx context.Context, id int64) error
}

// OrderFacade encapsulates order lifecycle operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, buyerEmail string, productID int64, quantity int, unitPrice float64) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) (*model.Order, error)
	CancelOrder(ctx context.Context, orderID int64) (*model.Order, error)
	Orders(ctx context.Context, buyerEmail string) ([]model.Order, error)
}

// CheckoutFacade bridges the hosted payment flow.
type CheckoutFacade interface {
	CreateCheckoutSession(ctx context.Context, buyerEmail string, productID int64, quantity int, unitPrice float64) (*model.CheckoutSession, error)
	ReconcilePayment(ctx context.Context, sessionID string) (*usecase.ReconciliationResult, error)
}

// TrackingFacade exposes fulfillment milestones.
type TrackingFacade interface {
	AppendTracking(ctx context.Context, orderID int64, status, note string) (*model.TrackingEvent, error)
	TrackingHistory(ctx context.Context, orderID int64) ([]model.TrackingEvent, error)
}

// CommerceFacade aggregates the full set of operations used across handlers.
type CommerceFacade interface {
	AuthFacade
	CatalogFacade
	OrderFacade
	CheckoutFacade
	TrackingFacade
	HealthCheck(ctx context.Context) error
}
