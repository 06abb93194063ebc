package server

import (
	"net/http"

	"auction-engine/internal/metrics"
	biddinghandler "auction-engine/services/bidding/handler"
	orderhandler "auction-engine/services/orders/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(biddingService biddinghandler.BiddingServiceInterface, orderService orderhandler.OrderServiceInterface, m *metrics.Metrics) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(MetricsMiddleware(m))

	biddingHandler := biddinghandler.NewBiddingHandler(biddingService)
	orderHandler := orderhandler.NewOrderHandler(orderService)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	listings := router.Group("/listings")
	{
		listings.POST("", biddingHandler.CreateListingHandler)
		listings.GET("/:listing_id", biddingHandler.GetListingHandler)
		listings.GET("/:listing_id/bids", biddingHandler.GetBidsHandler)
		listings.POST("/:listing_id/bids", biddingHandler.PlaceBidHandler)
		listings.POST("/:listing_id/auto-bids", biddingHandler.RegisterAutoBidHandler)
		listings.GET("/:listing_id/auto-bid-events", biddingHandler.GetAutoBidEventsHandler)
		listings.POST("/:listing_id/buy-now", biddingHandler.BuyNowHandler)
		listings.GET("/:listing_id/order", orderHandler.GetOrderByListingHandler)
	}

	orders := router.Group("/orders")
	{
		orders.GET("", orderHandler.ListOrdersHandler)
		orders.GET("/:order_id", orderHandler.GetOrderHandler)
		orders.PATCH("/:order_id/status", orderHandler.UpdateStatusHandler)
		orders.POST("/:order_id/cancel", orderHandler.CancelHandler)
		orders.POST("/:order_id/messages", orderHandler.PostMessageHandler)
		orders.POST("/:order_id/rating", orderHandler.RateHandler)
	}

	return router
}
