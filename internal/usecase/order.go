package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/threadcart/garmentshop/internal/adapter/events"
	domainErrors "github.com/threadcart/garmentshop/internal/domain/errors"
	"github.com/threadcart/garmentshop/internal/domain/model"
	"github.com/threadcart/garmentshop/internal/domain/repository"
	"github.com/threadcart/garmentshop/internal/metrics"
)

// OrderUseCase owns order status transitions, the duplicate-order guard and
// tracking-event emission for the cash-on-delivery flow.
type OrderUseCase struct {
	users     repository.UserRepository
	catalog   *CatalogUseCase
	orders    repository.OrderRepository
	trackings repository.TrackingRepository
	publisher events.Publisher
	logger    *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	users repository.UserRepository,
	catalog *CatalogUseCase,
	orders repository.OrderRepository,
	trackings repository.TrackingRepository,
	publisher events.Publisher,
	logger *slog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		users:     users,
		catalog:   catalog,
		orders:    orders,
		trackings: trackings,
		publisher: publisher,
		logger:    logger,
	}
}

// Place creates a COD order for the buyer. The buyer must be a known,
// non-suspended account; the store constraint rejects a second active order
// for the same buyer and product.
func (u *OrderUseCase) Place(ctx context.Context, buyerEmail string, productID int64, quantity int, unitPrice float64) (*model.Order, error) {
	if quantity <= 0 || unitPrice < 0 {
		return nil, fmt.Errorf("%w: quantity and price must be positive", domainErrors.ErrInvalidOrder)
	}

	buyer, err := u.users.GetByEmail(ctx, buyerEmail)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrForbidden
		}
		return nil, err
	}
	if !buyer.CanOrder() {
		return nil, domainErrors.ErrForbidden
	}

	product, err := u.catalog.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	order, err := u.orders.Create(ctx, &model.Order{
		ProductID:     product.ID,
		ProductTitle:  product.Title,
		BuyerEmail:    buyer.Email,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		TotalPrice:    unitPrice * float64(quantity),
		PaymentMethod: model.PaymentMethodCOD,
		PaymentStatus: model.PaymentStatusUnpaid,
		Status:        model.OrderStatusPending,
	})
	if err != nil {
		return nil, err
	}

	// The order is the record of truth; everything past this point is
	// best-effort and never rolls it back.
	u.emitTracking(ctx, order.ID, model.TrackingOrderPlaced, "COD order created")
	u.publisher.OrderCreated(ctx, order)
	metrics.OrdersPlacedTotal.Inc()

	return order, nil
}

// UpdateStatus applies a manager transition. The tracking event is written
// before the conditional update, matching the observed system: a lost race
// can leave an event for a transition that never committed.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, orderID int64, rawStatus string) (*model.Order, error) {
	status, known := model.ParseOrderStatus(rawStatus)
	if !known {
		return nil, domainErrors.ErrInvalidTransition
	}

	current, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !model.CanTransition(current.Status, status) {
		return nil, domainErrors.ErrInvalidTransition
	}

	u.emitTracking(ctx, orderID, string(status), fmt.Sprintf("Order %s by manager", status))

	order, err := u.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	metrics.OrderStatusUpdatesTotal.Inc()
	return order, nil
}

// Cancel moves a pending order to canceled. Any other state is rejected.
func (u *OrderUseCase) Cancel(ctx context.Context, orderID int64) (*model.Order, error) {
	order, err := u.orders.Cancel(ctx, orderID)
	if err != nil {
		return nil, err
	}
	metrics.OrdersCanceledTotal.Inc()
	return order, nil
}

// Get fetches one order.
func (u *OrderUseCase) Get(ctx context.Context, orderID int64) (*model.Order, error) {
	return u.orders.GetByID(ctx, orderID)
}

// ListByBuyer returns the buyer's orders, newest first.
func (u *OrderUseCase) ListByBuyer(ctx context.Context, email string) ([]model.Order, error) {
	return u.orders.ListByBuyer(ctx, email)
}

func (u *OrderUseCase) emitTracking(ctx context.Context, orderID int64, status, note string) {
	if _, err := u.trackings.Create(ctx, orderID, status, note); err != nil {
		u.logger.Error("tracking event write failed",
			slog.Int64("order_id", orderID),
			slog.String("status", status),
			slog.String("error", err.Error()),
		)
	}
}
