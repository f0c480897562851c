package dto

import (
	"time"

	"github.com/threadcart/garmentshop/internal/domain/model"
)

// TrackingRequest describes a manual milestone payload.
type TrackingRequest struct {
	OrderID int64  `json:"orderId"`
	Status  string `json:"status"`
	Note    string `json:"note"`
}

// TrackingResponse is the public milestone representation.
type TrackingResponse struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"orderId"`
	Status    string    `json:"status"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToTrackingResponse converts a tracking event into its transport form.
func ToTrackingResponse(event *model.TrackingEvent) TrackingResponse {
	return TrackingResponse{
		ID:        event.ID,
		OrderID:   event.OrderID,
		Status:    event.Status,
		Note:      event.Note,
		CreatedAt: event.CreatedAt,
	}
}
