package usecase

import (
	"context"

	"github.com/threadcart/garmentshop/internal/domain/model"
	"github.com/threadcart/garmentshop/internal/domain/repository"
)

// TrackingUseCase exposes manual tracking notes and fulfillment history.
type TrackingUseCase struct {
	orders    repository.OrderRepository
	trackings repository.TrackingRepository
}

// NewTrackingUseCase constructs TrackingUseCase.
func NewTrackingUseCase(orders repository.OrderRepository, trackings repository.TrackingRepository) *TrackingUseCase {
	return &TrackingUseCase{orders: orders, trackings: trackings}
}

// Append records a manual milestone. The order must exist.
func (u *TrackingUseCase) Append(ctx context.Context, orderID int64, status, note string) (*model.TrackingEvent, error) {
	if _, err := u.orders.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return u.trackings.Create(ctx, orderID, status, note)
}

// History returns an order's milestones, oldest first.
func (u *TrackingUseCase) History(ctx context.Context, orderID int64) ([]model.TrackingEvent, error) {
	if _, err := u.orders.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	return u.trackings.ListByOrder(ctx, orderID)
}
