package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/threadcart/garmentshop/internal/adapter/payment"
	domainErrors "github.com/threadcart/garmentshop/internal/domain/errors"
	"github.com/threadcart/garmentshop/internal/domain/model"
	"github.com/threadcart/garmentshop/internal/test"
)

type checkoutFixture struct {
	users     *test.UserRepositoryStub
	products  *test.ProductRepositoryStub
	orders    *test.OrderRepositoryStub
	trackings *test.TrackingRepositoryStub
	sessions  *test.SessionRepositoryStub
	gateway   *test.GatewayStub
	publisher *test.PublisherStub
	uc        *CheckoutUseCase
}

func newCheckoutFixture() *checkoutFixture {
	f := &checkoutFixture{
		users:     test.NewUserRepositoryStub(),
		products:  test.NewProductRepositoryStub(),
		orders:    &test.OrderRepositoryStub{},
		trackings: &test.TrackingRepositoryStub{},
		sessions:  &test.SessionRepositoryStub{},
		gateway:   &test.GatewayStub{Sessions: make(map[string]*model.CheckoutSession)},
		publisher: &test.PublisherStub{},
	}
	catalog := NewCatalogUseCase(f.products, test.NewProductCacheStub())
	urls := CheckoutURLs{Success: "https://shop.dev/ok", Cancel: "https://shop.dev/cancel"}
	f.uc = NewCheckoutUseCase(f.users, catalog, f.orders, f.trackings, f.sessions, f.gateway, f.publisher, urls, discardLogger())
	return f
}

func (f *checkoutFixture) seedPaidSession(id string, meta model.CheckoutMetadata) {
	f.gateway.Sessions[id] = &model.CheckoutSession{
		ID:            id,
		PaymentStatus: "paid",
		AmountTotal:   meta.UnitPrice * float64(meta.Quantity),
		Metadata:      meta,
	}
}

func TestCheckoutCreateSessionSuccess(t *testing.T) {
	f := newCheckoutFixture()
	f.users.Add(&model.User{Email: "buyer@shop.dev", Status: model.UserStatusActive})
	product := f.products.Add(&model.Product{Title: "denim jacket", Price: 80})

	session, err := f.uc.CreateSession(context.Background(), "buyer@shop.dev", product.ID, 1, 80)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.URL == "" {
		t.Fatalf("expected redirect url")
	}
	if len(f.gateway.CreateRequests) != 1 {
		t.Fatalf("expected one gateway call")
	}
	req := f.gateway.CreateRequests[0]
	if req.Metadata.ProductID != product.ID || req.Metadata.BuyerEmail != "buyer@shop.dev" {
		t.Fatalf("metadata must carry purchase intent, got %+v", req.Metadata)
	}
	if req.SuccessURL != "https://shop.dev/ok" || req.CancelURL != "https://shop.dev/cancel" {
		t.Fatalf("unexpected redirect urls: %s %s", req.SuccessURL, req.CancelURL)
	}
	if len(f.sessions.Recorded) != 1 || f.sessions.Recorded[0] != session.ID {
		t.Fatalf("session id must be recorded for the sweeper")
	}
	if len(f.orders.Created) != 0 {
		t.Fatalf("no order may exist before reconciliation")
	}
}

func TestCheckoutCreateSessionSuspendedBuyer(t *testing.T) {
	f := newCheckoutFixture()
	f.users.Add(&model.User{Email: "blocked@shop.dev", Status: model.UserStatusSuspended})
	f.products.Add(&model.Product{Title: "denim jacket", Price: 80})

	if _, err := f.uc.CreateSession(context.Background(), "blocked@shop.dev", 1, 1, 80); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if len(f.gateway.CreateRequests) != 0 {
		t.Fatalf("suspended buyer must not reach the gateway")
	}
}

func TestCheckoutCreateSessionGatewayFailure(t *testing.T) {
	f := newCheckoutFixture()
	f.users.Add(&model.User{Email: "buyer@shop.dev", Status: model.UserStatusActive})
	product := f.products.Add(&model.Product{Title: "denim jacket", Price: 80})
	f.gateway.CreateSessionFn = func(context.Context, payment.SessionRequest) (*model.CheckoutSession, error) {
		return nil, domainErrors.ErrUpstreamUnavailable
	}

	if _, err := f.uc.CreateSession(context.Background(), "buyer@shop.dev", product.ID, 1, 80); !errors.Is(err, domainErrors.ErrUpstreamUnavailable) {
		t.Fatalf("expected upstream unavailable, got %v", err)
	}
	if len(f.sessions.Recorded) != 0 {
		t.Fatalf("failed session must not be recorded")
	}
}

func TestCheckoutReconcilePaidSession(t *testing.T) {
	f := newCheckoutFixture()
	product := f.products.Add(&model.Product{Title: "wool sweater", Price: 55})
	f.seedPaidSession("cs_ok", model.CheckoutMetadata{
		ProductID:  product.ID,
		BuyerEmail: "buyer@shop.dev",
		Quantity:   2,
		UnitPrice:  55,
	})

	result, err := f.uc.Reconcile(context.Background(), "cs_ok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Created || result.OrderID == 0 {
		t.Fatalf("expected a freshly created order, got %+v", result)
	}
	created := f.orders.Created[0]
	if created.PaymentMethod != model.PaymentMethodOnline || created.PaymentStatus != model.PaymentStatusPaid {
		t.Fatalf("unexpected payment fields: %s %s", created.PaymentMethod, created.PaymentStatus)
	}
	if created.Status != model.OrderStatusPending {
		t.Fatalf("reconciled order must start pending, got %s", created.Status)
	}
	if created.TotalPrice != 110 {
		t.Fatalf("expected total 110, got %f", created.TotalPrice)
	}
	if len(f.trackings.Events) != 1 || f.trackings.Events[0].Status != model.TrackingPaymentSuccess {
		t.Fatalf("expected payment-success tracking event, got %+v", f.trackings.Events)
	}
	if len(f.products.PaymentUpdates) != 1 || f.products.PaymentUpdates[0].Status != model.PaymentStatusPaid {
		t.Fatalf("product payment flag must be set, got %+v", f.products.PaymentUpdates)
	}
	if len(f.sessions.Reconciled) != 1 || f.sessions.Reconciled[0] != "cs_ok" {
		t.Fatalf("session must be marked reconciled")
	}
	if len(f.publisher.Published) != 1 {
		t.Fatalf("expected one published event")
	}
}

func TestCheckoutReconcileUnpaidSession(t *testing.T) {
	f := newCheckoutFixture()
	f.gateway.Sessions["cs_open"] = &model.CheckoutSession{ID: "cs_open", PaymentStatus: "unpaid"}

	if _, err := f.uc.Reconcile(context.Background(), "cs_open"); !errors.Is(err, domainErrors.ErrPaymentIncomplete) {
		t.Fatalf("expected payment incomplete, got %v", err)
	}
	if len(f.orders.Created) != 0 {
		t.Fatalf("unpaid session must not create an order")
	}
	if len(f.sessions.Reconciled) != 0 {
		t.Fatalf("unpaid session must stay unreconciled")
	}
}

func TestCheckoutReconcileUnknownSession(t *testing.T) {
	f := newCheckoutFixture()

	if _, err := f.uc.Reconcile(context.Background(), "cs_missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCheckoutReconcileReplayedSession(t *testing.T) {
	f := newCheckoutFixture()
	product := f.products.Add(&model.Product{Title: "wool sweater", Price: 55})
	f.seedPaidSession("cs_replay", model.CheckoutMetadata{
		ProductID:  product.ID,
		BuyerEmail: "buyer@shop.dev",
		Quantity:   1,
		UnitPrice:  55,
	})
	f.orders.CreateFn = func(context.Context, *model.Order) (*model.Order, error) {
		return nil, domainErrors.ErrAlreadyExists
	}

	if _, err := f.uc.Reconcile(context.Background(), "cs_replay"); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
	if len(f.trackings.Events) != 0 || len(f.publisher.Published) != 0 {
		t.Fatalf("replay must not duplicate side effects")
	}
	if len(f.sessions.Reconciled) != 1 || f.sessions.Reconciled[0] != "cs_replay" {
		t.Fatalf("replayed session must still be marked reconciled")
	}
}

func TestCheckoutUnreconciledSessionsPassThrough(t *testing.T) {
	f := newCheckoutFixture()
	f.sessions.Pending = []string{"cs_a", "cs_b"}

	ids, err := f.uc.UnreconciledSessions(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 pending sessions, got %d", len(ids))
	}
}
