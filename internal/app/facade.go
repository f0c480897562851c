package app

import (
	"context"
	"time"

	"github.com/threadcart/garmentshop/internal/domain/model"
	"github.com/threadcart/garmentshop/internal/usecase"
)

// HealthChecker reports storage reachability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// CommerceFacade aggregates the shop's use cases behind the surface the
// HTTP handlers and the session sweeper consume.
type CommerceFacade struct {
	auth     *usecase.AuthUseCase
	catalog  *usecase.CatalogUseCase
	orders   *usecase.OrderUseCase
	checkout *usecase.CheckoutUseCase
	tracking *usecase.TrackingUseCase
	health   HealthChecker
}

// NewCommerceFacade constructs CommerceFacade.
func NewCommerceFacade(
	auth *usecase.AuthUseCase,
	catalog *usecase.CatalogUseCase,
	orders *usecase.OrderUseCase,
	checkout *usecase.CheckoutUseCase,
	tracking *usecase.TrackingUseCase,
	health HealthChecker,
) *CommerceFacade {
	return &CommerceFacade{
		auth:     auth,
		catalog:  catalog,
		orders:   orders,
		checkout: checkout,
		tracking: tracking,
		health:   health,
	}
}

func (f *CommerceFacade) Register(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Register(ctx, email, password)
}

func (f *CommerceFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *CommerceFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *CommerceFacade) UserByID(ctx context.Context, id int64) (*model.User, error) {
	return f.auth.GetByID(ctx, id)
}

func (f *CommerceFacade) SetUserStatus(ctx context.Context, id int64, status model.UserStatus) error {
	return f.auth.SetUserStatus(ctx, id, status)
}

func (f *CommerceFacade) AddProduct(ctx context.Context, title string, price float64, stock int) (*model.Product, error) {
	return f.catalog.Add(ctx, title, price, stock)
}

func (f *CommerceFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.Get(ctx, id)
}

func (f *CommerceFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.catalog.List(ctx)
}

func (f *CommerceFacade) RemoveProduct(ctx context.Context, id int64) error {
	return f.catalog.Remove(ctx, id)
}

func (f *CommerceFacade) PlaceOrder(ctx context.Context, buyerEmail string, productID int64, quantity int, unitPrice float64) (*model.Order, error) {
	return f.orders.Place(ctx, buyerEmail, productID, quantity, unitPrice)
}

func (f *CommerceFacade) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, orderID, status)
}

func (f *CommerceFacade) CancelOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	return f.orders.Cancel(ctx, orderID)
}

func (f *CommerceFacade) Orders(ctx context.Context, buyerEmail string) ([]model.Order, error) {
	return f.orders.ListByBuyer(ctx, buyerEmail)
}

func (f *CommerceFacade) CreateCheckoutSession(ctx context.Context, buyerEmail string, productID int64, quantity int, unitPrice float64) (*model.CheckoutSession, error) {
	return f.checkout.CreateSession(ctx, buyerEmail, productID, quantity, unitPrice)
}

func (f *CommerceFacade) ReconcilePayment(ctx context.Context, sessionID string) (*usecase.ReconciliationResult, error) {
	return f.checkout.Reconcile(ctx, sessionID)
}

func (f *CommerceFacade) UnreconciledSessions(ctx context.Context, olderThan time.Duration, limit int) ([]string, error) {
	return f.checkout.UnreconciledSessions(ctx, olderThan, limit)
}

func (f *CommerceFacade) AppendTracking(ctx context.Context, orderID int64, status, note string) (*model.TrackingEvent, error) {
	return f.tracking.Append(ctx, orderID, status, note)
}

func (f *CommerceFacade) TrackingHistory(ctx context.Context, orderID int64) ([]model.TrackingEvent, error) {
	return f.tracking.History(ctx, orderID)
}

func (f *CommerceFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
