package helpers

import model "auction-engine/internal/models"

// Request DTOs. Caller identity travels in the body; authentication happens upstream.
type UpdateStatusRequest struct {
	UserID string            `json:"user_id" binding:"required"`
	Status model.OrderStatus `json:"status" binding:"required,oneof=PROCESSING COMPLETED CANCELLED"`
}

type CancelRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type MessageRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Body   string `json:"body" binding:"required"`
}

type RatingRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// NonNilOrders keeps empty lists rendering as [] instead of null
func NonNilOrders(orders []model.Order) []model.Order {
	if orders == nil {
		return []model.Order{}
	}
	return orders
}
