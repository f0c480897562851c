package test

import (
	"context"

	"github.com/threadcart/garmentshop/internal/adapter/payment"
	domainErrors "github.com/threadcart/garmentshop/internal/domain/errors"
	"github.com/threadcart/garmentshop/internal/domain/model"
)

// GatewayStub implements the checkout gateway contract for tests.
type GatewayStub struct {
	CreateSessionFn   func(context.Context, payment.SessionRequest) (*model.CheckoutSession, error)
	RetrieveSessionFn func(context.Context, string) (*model.CheckoutSession, error)

	CreateRequests []payment.SessionRequest
	Retrieved      []string
	Sessions       map[string]*model.CheckoutSession
}

// CreateSession tracks invocations and returns configured responses.
func (s *GatewayStub) CreateSession(ctx context.Context, req payment.SessionRequest) (*model.CheckoutSession, error) {
	s.CreateRequests = append(s.CreateRequests, req)
	if s.CreateSessionFn != nil {
		return s.CreateSessionFn(ctx, req)
	}
	return &model.CheckoutSession{
		ID:            "cs_test",
		URL:           "https://gateway.example/cs_test",
		PaymentStatus: "unpaid",
		AmountTotal:   req.UnitPrice * float64(req.Quantity),
		Metadata:      req.Metadata,
	}, nil
}

// RetrieveSession tracks invocations and returns configured responses.
func (s *GatewayStub) RetrieveSession(ctx context.Context, sessionID string) (*model.CheckoutSession, error) {
	s.Retrieved = append(s.Retrieved, sessionID)
	if s.RetrieveSessionFn != nil {
		return s.RetrieveSessionFn(ctx, sessionID)
	}
	if session, ok := s.Sessions[sessionID]; ok {
		return session, nil
	}
	return nil, domainErrors.ErrNotFound
}

// PublisherStub records the orders announced to the event stream.
type PublisherStub struct {
	Published []model.Order
}

// OrderCreated records the published order.
func (s *PublisherStub) OrderCreated(ctx context.Context, order *model.Order) {
	s.Published = append(s.Published, *order)
}

// ProductCacheStub is an in-memory stand-in for the redis cache.
type ProductCacheStub struct {
	Items       map[int64]*model.Product
	Sets        []int64
	Invalidated []int64
}

// NewProductCacheStub constructs the stub with an initialized map.
func NewProductCacheStub() *ProductCacheStub {
	return &ProductCacheStub{Items: make(map[int64]*model.Product)}
}

// Get returns the cached product when present.
func (s *ProductCacheStub) Get(ctx context.Context, id int64) (*model.Product, bool) {
	product, ok := s.Items[id]
	return product, ok
}

// Set stores the product and records the call.
func (s *ProductCacheStub) Set(ctx context.Context, product *model.Product) {
	s.Sets = append(s.Sets, product.ID)
	s.Items[product.ID] = product
}

// Invalidate drops the product and records the call.
func (s *ProductCacheStub) Invalidate(ctx context.Context, id int64) {
	s.Invalidated = append(s.Invalidated, id)
	delete(s.Items, id)
}
