package dto

import (
	"time"

	"github.com/threadcart/garmentshop/internal/domain/model"
)

// ProductRequest describes a new catalog item payload.
type ProductRequest struct {
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// ProductResponse is the public catalog item representation.
type ProductResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Price         float64   `json:"price"`
	Stock         int       `json:"stock"`
	PaymentStatus string    `json:"paymentStatus"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToProductResponse converts a product model into its transport form.
func ToProductResponse(product *model.Product) ProductResponse {
	return ProductResponse{
		ID:            product.ID,
		Title:         product.Title,
		Price:         product.Price,
		Stock:         product.Stock,
		PaymentStatus: string(product.PaymentStatus),
		CreatedAt:     product.CreatedAt,
	}
}
