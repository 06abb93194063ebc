package handler

//go:generate mockgen -source=order_handler.go -destination=mock_order_service.go -package=handler

import (
	"context"
	"net/http"

	model "auction-engine/internal/models"
	biddinghelpers "auction-engine/services/bidding/helpers"
	"auction-engine/services/orders/helpers"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
)

type OrderServiceInterface interface {
	GetOrder(ctx context.Context, orderID, userID string) (model.Order, error)
	GetOrderByListing(ctx context.Context, listingID, userID string) (model.Order, error)
	ListOrders(ctx context.Context, userID string) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID, userID string, next model.OrderStatus) (model.Order, error)
	Cancel(ctx context.Context, orderID, userID string) (model.Order, error)
	PostMessage(ctx context.Context, orderID, userID, body string) (model.OrderMessage, error)
	Rate(ctx context.Context, orderID, userID string, score int, comment string) (model.Order, error)
}

type OrderHandler struct {
	service OrderServiceInterface
}

func NewOrderHandler(service OrderServiceInterface) *OrderHandler {
	return &OrderHandler{service: service}
}

// ListOrdersHandler handles GET /orders?user_id=
func (h *OrderHandler) ListOrdersHandler(c *gin.Context) {
	userID := c.Query("user_id")
	orders, err := h.service.ListOrders(c.Request.Context(), userID)
	if err != nil {
		biddinghelpers.RespondError(c, "ListOrdersHandler", err, map[string]any{"user_id": userID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NonNilOrders(orders), "orders retrieved successfully")
}

// GetOrderHandler handles GET /orders/:order_id?user_id=
func (h *OrderHandler) GetOrderHandler(c *gin.Context) {
	orderID, userID := c.Param("order_id"), c.Query("user_id")
	order, err := h.service.GetOrder(c.Request.Context(), orderID, userID)
	if err != nil {
		biddinghelpers.RespondError(c, "GetOrderHandler", err, map[string]any{"order_id": orderID, "user_id": userID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, order, "order retrieved successfully")
}

// GetOrderByListingHandler handles GET /listings/:listing_id/order?user_id=
func (h *OrderHandler) GetOrderByListingHandler(c *gin.Context) {
	listingID, userID := c.Param("listing_id"), c.Query("user_id")
	order, err := h.service.GetOrderByListing(c.Request.Context(), listingID, userID)
	if err != nil {
		biddinghelpers.RespondError(c, "GetOrderByListingHandler", err, map[string]any{"listing_id": listingID, "user_id": userID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, order, "order retrieved successfully")
}

// UpdateStatusHandler handles PATCH /orders/:order_id/status
func (h *OrderHandler) UpdateStatusHandler(c *gin.Context) {
	orderID := c.Param("order_id")
	var req helpers.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		biddinghelpers.HandleBindError(c, "UpdateStatusHandler", err)
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), orderID, req.UserID, req.Status)
	if err != nil {
		biddinghelpers.RespondError(c, "UpdateStatusHandler", err, map[string]any{
			"order_id": orderID,
			"user_id":  req.UserID,
			"status":   req.Status,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, order, "order status updated successfully")
	biddinghelpers.LogSuccess("UpdateStatusHandler", "order status updated successfully", map[string]any{
		"order_id": orderID,
		"status":   order.Status,
	})
}

// CancelHandler handles POST /orders/:order_id/cancel
func (h *OrderHandler) CancelHandler(c *gin.Context) {
	orderID := c.Param("order_id")
	var req helpers.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		biddinghelpers.HandleBindError(c, "CancelHandler", err)
		return
	}

	order, err := h.service.Cancel(c.Request.Context(), orderID, req.UserID)
	if err != nil {
		biddinghelpers.RespondError(c, "CancelHandler", err, map[string]any{"order_id": orderID, "user_id": req.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, order, "order cancelled successfully")
	biddinghelpers.LogSuccess("CancelHandler", "order cancelled successfully", map[string]any{"order_id": orderID})
}

// PostMessageHandler handles POST /orders/:order_id/messages
func (h *OrderHandler) PostMessageHandler(c *gin.Context) {
	orderID := c.Param("order_id")
	var req helpers.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		biddinghelpers.HandleBindError(c, "PostMessageHandler", err)
		return
	}

	msg, err := h.service.PostMessage(c.Request.Context(), orderID, req.UserID, req.Body)
	if err != nil {
		biddinghelpers.RespondError(c, "PostMessageHandler", err, map[string]any{"order_id": orderID, "user_id": req.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, msg, "message posted successfully")
}

// RateHandler handles POST /orders/:order_id/rating
func (h *OrderHandler) RateHandler(c *gin.Context) {
	orderID := c.Param("order_id")
	var req helpers.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		biddinghelpers.HandleBindError(c, "RateHandler", err)
		return
	}

	order, err := h.service.Rate(c.Request.Context(), orderID, req.UserID, req.Score, req.Comment)
	if err != nil {
		biddinghelpers.RespondError(c, "RateHandler", err, map[string]any{
			"order_id": orderID,
			"user_id":  req.UserID,
			"score":    req.Score,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, order, "rating recorded successfully")
	biddinghelpers.LogSuccess("RateHandler", "rating recorded successfully", map[string]any{
		"order_id":  orderID,
		"seller_id": order.SellerID,
		"score":     req.Score,
	})
}
