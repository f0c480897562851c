package test

import (
	"context"
	"time"

	domainErrors "github.com/threadcart/garmentshop/internal/domain/errors"
	"github.com/threadcart/garmentshop/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error

	StatusUpdates []UserStatusUpdate
}

// UserStatusUpdate records a single UpdateStatus call.
type UserStatusUpdate struct {
	ID     int64
	Status model.UserStatus
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Add seeds a user and returns it, assigning the next identifier.
func (s *UserRepositoryStub) Add(user *model.User) *model.User {
	if user.ID == 0 {
		user.ID = s.Next
		s.Next++
	}
	s.Users[user.Email] = user
	s.ByID[user.ID] = user
	return user
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, email, passwordHash string, role model.UserRole) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{
		ID:           s.Next,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Status:       model.UserStatusActive,
		CreatedAt:    time.Now(),
	}
	s.Next++
	s.Users[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateStatus records the call and mutates the stored user.
func (s *UserRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.UserStatus) error {
	s.StatusUpdates = append(s.StatusUpdates, UserStatusUpdate{ID: id, Status: status})
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.Status = status
	return nil
}

// ProductRepositoryStub stores products in-memory for tests.
type ProductRepositoryStub struct {
	Products map[int64]*model.Product
	Next     int64
	Err      error

	PaymentUpdates []ProductPaymentUpdate
	Deleted        []int64
}

// ProductPaymentUpdate records a single UpdatePaymentStatus call.
type ProductPaymentUpdate struct {
	ID     int64
	Status model.PaymentStatus
}

// NewProductRepositoryStub constructs stub repository with initialized maps.
func NewProductRepositoryStub() *ProductRepositoryStub {
	return &ProductRepositoryStub{Products: make(map[int64]*model.Product), Next: 1}
}

// Add seeds a product and returns it, assigning the next identifier.
func (s *ProductRepositoryStub) Add(product *model.Product) *model.Product {
	if product.ID == 0 {
		product.ID = s.Next
		s.Next++
	}
	s.Products[product.ID] = product
	return product
}

// Create stores a new product with the next identifier.
func (s *ProductRepositoryStub) Create(ctx context.Context, title string, price float64, stock int) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Products == nil {
		s.Products = make(map[int64]*model.Product)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	product := &model.Product{
		ID:            s.Next,
		Title:         title,
		Price:         price,
		Stock:         stock,
		PaymentStatus: model.PaymentStatusUnpaid,
		CreatedAt:     time.Now(),
	}
	s.Next++
	s.Products[product.ID] = product
	return product, nil
}

// GetByID fetches product by identifier or returns not found.
func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if product, ok := s.Products[id]; ok {
		return product, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns every stored product.
func (s *ProductRepositoryStub) List(ctx context.Context) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Product, 0, len(s.Products))
	for _, p := range s.Products {
		out = append(out, *p)
	}
	return out, nil
}

// UpdatePaymentStatus records the call and mutates the stored product.
func (s *ProductRepositoryStub) UpdatePaymentStatus(ctx context.Context, id int64, status model.PaymentStatus) error {
	s.PaymentUpdates = append(s.PaymentUpdates, ProductPaymentUpdate{ID: id, Status: status})
	if s.Err != nil {
		return s.Err
	}
	product, ok := s.Products[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	product.PaymentStatus = status
	return nil
}

// Delete removes the product or returns not found.
func (s *ProductRepositoryStub) Delete(ctx context.Context, id int64) error {
	s.Deleted = append(s.Deleted, id)
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Products[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Products, id)
	return nil
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn       func(context.Context, *model.Order) (*model.Order, error)
	GetByIDFn      func(context.Context, int64) (*model.Order, error)
	ListByBuyerFn  func(context.Context, string) ([]model.Order, error)
	UpdateStatusFn func(context.Context, int64, model.OrderStatus) (*model.Order, error)
	CancelFn       func(context.Context, int64) (*model.Order, error)

	Created       []model.Order
	Orders        []model.Order
	StatusUpdates []OrderStatusUpdate
	Canceled      []int64
}

// OrderStatusUpdate records a single UpdateStatus call.
type OrderStatusUpdate struct {
	ID     int64
	Status model.OrderStatus
}

// Create tracks invocations and returns configured responses.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	s.Created = append(s.Created, *order)
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	created := *order
	created.ID = int64(len(s.Created))
	created.CreatedAt = time.Now()
	return &created, nil
}

// GetByID returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, o := range s.Orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByBuyer returns orders from configured slice.
func (s *OrderRepositoryStub) ListByBuyer(ctx context.Context, email string) ([]model.Order, error) {
	if s.ListByBuyerFn != nil {
		return s.ListByBuyerFn(ctx, email)
	}
	var out []model.Order
	for _, o := range s.Orders {
		if o.BuyerEmail == email {
			out = append(out, o)
		}
	}
	return out, nil
}

// UpdateStatus tracks invocations and returns configured responses.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	s.StatusUpdates = append(s.StatusUpdates, OrderStatusUpdate{ID: id, Status: status})
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status)
	}
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := *order
	updated.Status = status
	return &updated, nil
}

// Cancel tracks invocations and returns configured responses.
func (s *OrderRepositoryStub) Cancel(ctx context.Context, id int64) (*model.Order, error) {
	s.Canceled = append(s.Canceled, id)
	if s.CancelFn != nil {
		return s.CancelFn(ctx, id)
	}
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := *order
	updated.Status = model.OrderStatusCanceled
	return &updated, nil
}

// TrackingRepositoryStub records milestones appended during tests.
type TrackingRepositoryStub struct {
	CreateFn      func(context.Context, int64, string, string) (*model.TrackingEvent, error)
	ListByOrderFn func(context.Context, int64) ([]model.TrackingEvent, error)

	Events []model.TrackingEvent
}

// Create tracks invocations and returns configured responses.
func (s *TrackingRepositoryStub) Create(ctx context.Context, orderID int64, status, note string) (*model.TrackingEvent, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, orderID, status, note)
	}
	event := model.TrackingEvent{
		ID:        int64(len(s.Events) + 1),
		OrderID:   orderID,
		Status:    status,
		Note:      note,
		CreatedAt: time.Now(),
	}
	s.Events = append(s.Events, event)
	return &event, nil
}

// ListByOrder returns milestones from the stored slice.
func (s *TrackingRepositoryStub) ListByOrder(ctx context.Context, orderID int64) ([]model.TrackingEvent, error) {
	if s.ListByOrderFn != nil {
		return s.ListByOrderFn(ctx, orderID)
	}
	var out []model.TrackingEvent
	for _, e := range s.Events {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

// SessionRepositoryStub records checkout session bookkeeping in tests.
type SessionRepositoryStub struct {
	RecordFn           func(context.Context, string) error
	MarkReconciledFn   func(context.Context, string) error
	ListUnreconciledFn func(context.Context, time.Duration, int) ([]string, error)

	Recorded   []string
	Reconciled []string
	Pending    []string
}

// Record tracks invocations and returns configured responses.
func (s *SessionRepositoryStub) Record(ctx context.Context, sessionID string) error {
	s.Recorded = append(s.Recorded, sessionID)
	if s.RecordFn != nil {
		return s.RecordFn(ctx, sessionID)
	}
	return nil
}

// MarkReconciled tracks invocations and returns configured responses.
func (s *SessionRepositoryStub) MarkReconciled(ctx context.Context, sessionID string) error {
	s.Reconciled = append(s.Reconciled, sessionID)
	if s.MarkReconciledFn != nil {
		return s.MarkReconciledFn(ctx, sessionID)
	}
	return nil
}

// ListUnreconciled returns the configured pending sessions.
func (s *SessionRepositoryStub) ListUnreconciled(ctx context.Context, olderThan time.Duration, limit int) ([]string, error) {
	if s.ListUnreconciledFn != nil {
		return s.ListUnreconciledFn(ctx, olderThan, limit)
	}
	if limit > 0 && len(s.Pending) > limit {
		return s.Pending[:limit], nil
	}
	return s.Pending, nil
}
