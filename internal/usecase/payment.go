package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/threadcart/garmentshop/internal/adapter/events"
	"github.com/threadcart/garmentshop/internal/adapter/payment"
	domainErrors "github.com/threadcart/garmentshop/internal/domain/errors"
	"github.com/threadcart/garmentshop/internal/domain/model"
	"github.com/threadcart/garmentshop/internal/domain/repository"
	"github.com/threadcart/garmentshop/internal/metrics"
)

// CheckoutURLs carry the redirect targets attached to every session.
type CheckoutURLs struct {
	Success string
	Cancel  string
}

// ReconciliationResult reports the outcome of converting a paid session
// into an order.
type ReconciliationResult struct {
	OrderID int64
	Created bool
}

// CheckoutUseCase bridges the hosted payment gateway into order records.
// Reconciliation is idempotent: the duplicate-order constraint ensures a
// replayed session can materialize at most one order.
type CheckoutUseCase struct {
	users     repository.UserRepository
	catalog   *CatalogUseCase
	orders    repository.OrderRepository
	trackings repository.TrackingRepository
	sessions  repository.SessionRepository
	gateway   payment.Gateway
	publisher events.Publisher
	urls      CheckoutURLs
	logger    *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(
	users repository.UserRepository,
	catalog *CatalogUseCase,
	orders repository.OrderRepository,
	trackings repository.TrackingRepository,
	sessions repository.SessionRepository,
	gateway payment.Gateway,
	publisher events.Publisher,
	urls CheckoutURLs,
	logger *slog.Logger,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		users:     users,
		catalog:   catalog,
		orders:    orders,
		trackings: trackings,
		sessions:  sessions,
		gateway:   gateway,
		publisher: publisher,
		urls:      urls,
		logger:    logger,
	}
}

// CreateSession starts a hosted checkout for the buyer and returns the
// gateway redirect URL. Purchase intent travels only in session metadata;
// no order exists until the payment is reconciled.
func (u *CheckoutUseCase) CreateSession(ctx context.Context, buyerEmail string, productID int64, quantity int, unitPrice float64) (*model.CheckoutSession, error) {
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

	session, err := u.gateway.CreateSession(ctx, payment.SessionRequest{
		Title:      product.Title,
		UnitPrice:  unitPrice,
		Quantity:   quantity,
		SuccessURL: u.urls.Success,
		CancelURL:  u.urls.Cancel,
		Metadata: model.CheckoutMetadata{
			ProductID:  product.ID,
			BuyerEmail: buyer.Email,
			Quantity:   quantity,
			UnitPrice:  unitPrice,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := u.sessions.Record(ctx, session.ID); err != nil {
		u.logger.Error("record checkout session failed",
			slog.String("session_id", session.ID),
			slog.String("error", err.Error()),
		)
	}
	metrics.CheckoutSessionsTotal.Inc()

	return session, nil
}

// Reconcile converts a completed gateway session into an order plus its
// first tracking event, exactly once per buyer+product.
func (u *CheckoutUseCase) Reconcile(ctx context.Context, sessionID string) (*ReconciliationResult, error) {
	start := time.Now()
	defer func() { metrics.ReconcileDuration.Observe(time.Since(start).Seconds()) }()

	session, err := u.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Paid() {
		return nil, domainErrors.ErrPaymentIncomplete
	}

	meta := session.Metadata
	product, err := u.catalog.Get(ctx, meta.ProductID)
	if err != nil {
		return nil, err
	}

	order, err := u.orders.Create(ctx, &model.Order{
		ProductID:     product.ID,
		ProductTitle:  product.Title,
		BuyerEmail:    meta.BuyerEmail,
		Quantity:      meta.Quantity,
		UnitPrice:     meta.UnitPrice,
		TotalPrice:    meta.UnitPrice * float64(meta.Quantity),
		PaymentMethod: model.PaymentMethodOnline,
		PaymentStatus: model.PaymentStatusPaid,
		Status:        model.OrderStatusPending,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			// Replayed success callback; the first reconciliation won.
			u.markReconciled(ctx, sessionID)
		}
		return nil, err
	}

	// Order is committed; the rest is best-effort.
	u.emitTracking(ctx, order.ID, model.TrackingPaymentSuccess, "gateway payment completed")

	if err := u.catalog.MarkPaid(ctx, product.ID); err != nil {
		u.logger.Error("product payment flag update failed",
			slog.Int64("product_id", product.ID),
			slog.String("error", err.Error()),
		)
	}

	u.markReconciled(ctx, sessionID)
	u.publisher.OrderCreated(ctx, order)
	metrics.PaymentsReconciledTotal.Inc()

	return &ReconciliationResult{OrderID: order.ID, Created: true}, nil
}

func (u *CheckoutUseCase) emitTracking(ctx context.Context, orderID int64, status, note string) {
	if _, err := u.trackings.Create(ctx, orderID, status, note); err != nil {
		u.logger.Error("tracking event write failed",
			slog.Int64("order_id", orderID),
			slog.String("status", status),
			slog.String("error", err.Error()),
		)
	}
}

func (u *CheckoutUseCase) markReconciled(ctx context.Context, sessionID string) {
	if err := u.sessions.MarkReconciled(ctx, sessionID); err != nil {
		u.logger.Error("mark session reconciled failed",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}
}

// UnreconciledSessions lists session ids eligible for a sweep pass.
func (u *CheckoutUseCase) UnreconciledSessions(ctx context.Context, olderThan time.Duration, limit int) ([]string, error) {
	return u.sessions.ListUnreconciled(ctx, olderThan, limit)
}
