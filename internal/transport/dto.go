package transport

import (
	"github.com/google/uuid"

	"github.com/Skotchmaster/chalher_shop/internal/models"
)

type CreateCartItemRequest struct {
	UserSessionID string    `json:"user_session_id"`
	ProductID     uuid.UUID `json:"product_id"`
	Quantity      uint      `json:"quantity"`
	Message       *string   `json:"message"`
}

// MergeCartItemRequest adds Quantity (default 1) to the matching line.
type MergeCartItemRequest struct {
	UserSessionID string    `json:"user_session_id"`
	ProductID     uuid.UUID `json:"product_id"`
	Quantity      *int      `json:"quantity"`
	Message       *string   `json:"message"`
}

type PatchCartItemRequest struct {
	Quantity *int `json:"quantity"`
}

type SearchProductsResponse struct {
	Total    int64            `json:"total"`
	Products []models.Product `json:"products"`
}
