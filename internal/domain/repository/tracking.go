package repository

import (
	"context"

	"github.com/threadcart/garmentshop/internal/domain/model"
)

// TrackingRepository stores immutable fulfillment milestones.
type TrackingRepository interface {
	Create(ctx context.Context, orderID int64, status, note string) (*model.TrackingEvent, error)
	ListByOrder(ctx context.Context, orderID int64) ([]model.TrackingEvent, error)
}
