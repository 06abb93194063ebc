package handler

//go:generate mockgen -source=bidding_handler.go -destination=mock_bidding_service.go -package=handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	bidding "auction-engine/internal/biddingService"
	model "auction-engine/internal/models"
	"auction-engine/services/bidding/helpers"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
)

type BiddingServiceInterface interface {
	CreateListing(ctx context.Context, in bidding.NewListing) (model.Listing, error)
	GetListing(ctx context.Context, listingID string) (model.Listing, error)
	ListBids(ctx context.Context, listingID string, limit int) ([]model.Bid, error)
	ListAutoBidEvents(ctx context.Context, listingID string) ([]model.AutoBidEvent, error)
	PlaceManualBid(ctx context.Context, listingID, bidderID string, amount int64) (bidding.BidOutcome, error)
	RegisterAutoBid(ctx context.Context, listingID, bidderID string, maxBidAmount int64) (bidding.AutoBidOutcome, error)
	BuyNow(ctx context.Context, listingID, buyerID string) (model.Order, error)
	MinimumNextBid(l model.Listing) int64
}

type BiddingHandler struct {
	service BiddingServiceInterface
	now     func() time.Time
}

func NewBiddingHandler(service BiddingServiceInterface) *BiddingHandler {
	return &BiddingHandler{service: service, now: time.Now}
}

func (h *BiddingHandler) listingResponse(l model.Listing) helpers.ListingResponse {
	return helpers.NewListingResponse(l, h.service.MinimumNextBid(l), h.now())
}

// CreateListingHandler handles POST /listings
func (h *BiddingHandler) CreateListingHandler(c *gin.Context) {
	var req helpers.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateListingHandler", err)
		return
	}

	in := bidding.NewListing{
		ListingID:           req.ListingID,
		SellerID:            req.SellerID,
		Name:                req.Name,
		Description:         req.Description,
		StartPrice:          req.StartPrice,
		PriceStep:           req.PriceStep,
		BuyNowPrice:         req.BuyNowPrice,
		AutoExtend:          req.AutoExtend,
		AllowUnratedBidders: req.AllowUnratedBidders,
		AutoBidDisabled:     req.AutoBidDisabled,
		EndAt:               req.EndAt,
	}
	if req.StartAt != nil {
		in.StartAt = *req.StartAt
	}

	l, err := h.service.CreateListing(c.Request.Context(), in)
	if err != nil {
		helpers.RespondError(c, "CreateListingHandler", err, map[string]any{"seller_id": req.SellerID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, h.listingResponse(l), "listing created successfully")
	helpers.LogSuccess("CreateListingHandler", "listing created successfully", map[string]any{
		"listing_id": l.ListingID,
		"seller_id":  l.SellerID,
	})
}

// GetListingHandler handles GET /listings/:listing_id
func (h *BiddingHandler) GetListingHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	l, err := h.service.GetListing(c.Request.Context(), listingID)
	if err != nil {
		helpers.RespondError(c, "GetListingHandler", err, map[string]any{"listing_id": listingID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, h.listingResponse(l), "listing retrieved successfully")
}

// GetBidsHandler handles GET /listings/:listing_id/bids
func (h *BiddingHandler) GetBidsHandler(c *gin.Context) {
	listingID := c.Param("listing_id")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			helpers.HandleBindError(c, "GetBidsHandler", fmt.Errorf("limit %q is not a non-negative integer", raw))
			return
		}
		limit = n
	}

	bids, err := h.service.ListBids(c.Request.Context(), listingID, limit)
	if err != nil {
		helpers.RespondError(c, "GetBidsHandler", err, map[string]any{"listing_id": listingID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBidResponses(bids), "bids retrieved successfully")
	helpers.LogSuccess("GetBidsHandler", "bids retrieved successfully", map[string]any{
		"listing_id": listingID,
		"count":      len(bids),
	})
}

// GetAutoBidEventsHandler handles GET /listings/:listing_id/auto-bid-events
func (h *BiddingHandler) GetAutoBidEventsHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	evs, err := h.service.ListAutoBidEvents(c.Request.Context(), listingID)
	if err != nil {
		helpers.RespondError(c, "GetAutoBidEventsHandler", err, map[string]any{"listing_id": listingID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewAutoBidEventResponses(evs), "auto-bid events retrieved successfully")
}

// PlaceBidHandler handles POST /listings/:listing_id/bids
func (h *BiddingHandler) PlaceBidHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	out, err := h.service.PlaceManualBid(c.Request.Context(), listingID, req.BidderID, req.Amount)
	if err != nil {
		helpers.RespondError(c, "PlaceBidHandler", err, map[string]any{
			"listing_id": listingID,
			"bidder_id":  req.BidderID,
			"amount":     req.Amount,
		})
		return
	}

	resp := helpers.PlaceBidResponse{
		Listing:          h.listingResponse(out.Listing),
		AutoBids:         helpers.NewBidResponses(out.AutoBids),
		Events:           helpers.NewAutoBidEventResponses(out.Events),
		AutoBidTriggered: out.AutoBidTriggered(),
		Extended:         out.Extended,
	}

	status, message := http.StatusCreated, "bid recorded successfully"
	if out.Bid != nil {
		bid := helpers.NewBidResponse(*out.Bid)
		resp.Bid = &bid
	} else {
		status, message = http.StatusOK, "already the highest bidder"
	}

	utils.JSONResponse(c, status, resp, message)
	helpers.LogSuccess("PlaceBidHandler", message, map[string]any{
		"listing_id":         listingID,
		"bidder_id":          req.BidderID,
		"amount":             req.Amount,
		"price":              out.Listing.CurrentPrice,
		"auto_bid_triggered": resp.AutoBidTriggered,
	})
}

// RegisterAutoBidHandler handles POST /listings/:listing_id/auto-bids
func (h *BiddingHandler) RegisterAutoBidHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	var req helpers.AutoBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterAutoBidHandler", err)
		return
	}

	out, err := h.service.RegisterAutoBid(c.Request.Context(), listingID, req.BidderID, req.MaxBidAmount)
	if err != nil {
		helpers.RespondError(c, "RegisterAutoBidHandler", err, map[string]any{
			"listing_id": listingID,
			"bidder_id":  req.BidderID,
		})
		return
	}

	resp := helpers.AutoBidResponse{
		Ceiling:          out.Ceiling,
		Listing:          h.listingResponse(out.Listing),
		AutoBids:         helpers.NewBidResponses(out.AutoBids),
		Events:           helpers.NewAutoBidEventResponses(out.Events),
		AutoBidTriggered: out.AutoBidTriggered(),
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "auto-bid registered successfully")
	helpers.LogSuccess("RegisterAutoBidHandler", "auto-bid registered successfully", map[string]any{
		"listing_id":         listingID,
		"bidder_id":          req.BidderID,
		"auto_bid_triggered": resp.AutoBidTriggered,
	})
}

// BuyNowHandler handles POST /listings/:listing_id/buy-now
func (h *BiddingHandler) BuyNowHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	var req helpers.BuyNowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "BuyNowHandler", err)
		return
	}

	order, err := h.service.BuyNow(c.Request.Context(), listingID, req.BuyerID)
	if err != nil {
		helpers.RespondError(c, "BuyNowHandler", err, map[string]any{
			"listing_id": listingID,
			"buyer_id":   req.BuyerID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, order, "item bought successfully")
	helpers.LogSuccess("BuyNowHandler", "item bought successfully", map[string]any{
		"listing_id": listingID,
		"order_id":   order.OrderID,
		"buyer_id":   req.BuyerID,
	})
}
