package helpers

import (
	"time"

	model "auction-engine/internal/models"
	"auction-engine/utils"
)

// Request/Response DTOs
type CreateListingRequest struct {
	ListingID           string     `json:"listing_id"`
	SellerID            string     `json:"seller_id" binding:"required"`
	Name                string     `json:"name" binding:"required"`
	Description         string     `json:"description"`
	StartPrice          int64      `json:"start_price" binding:"required,gt=0"`
	PriceStep           int64      `json:"price_step" binding:"required,gt=0"`
	BuyNowPrice         *int64     `json:"buy_now_price" binding:"omitempty,gt=0"`
	AutoExtend          bool       `json:"auto_extend"`
	AllowUnratedBidders bool       `json:"allow_unrated_bidders"`
	AutoBidDisabled     bool       `json:"auto_bid_disabled"`
	StartAt             *time.Time `json:"start_at"`
	EndAt               time.Time  `json:"end_at" binding:"required"`
}

type PlaceBidRequest struct {
	BidderID string `json:"bidder_id" binding:"required"`
	Amount   int64  `json:"amount" binding:"required,gt=0"`
}

type AutoBidRequest struct {
	BidderID     string `json:"bidder_id" binding:"required"`
	MaxBidAmount int64  `json:"max_bid_amount" binding:"required,gt=0"`
}

type BuyNowRequest struct {
	BuyerID string `json:"buyer_id" binding:"required"`
}

type ListingResponse struct {
	ListingID           string `json:"listing_id"`
	SellerID            string `json:"seller_id"`
	Name                string `json:"name"`
	Description         string `json:"description,omitempty"`
	StartPrice          int64  `json:"start_price"`
	PriceStep           int64  `json:"price_step"`
	CurrentPrice        int64  `json:"current_price"`
	CurrentBidder       string `json:"current_bidder,omitempty"`
	MinimumNextBid      int64  `json:"minimum_next_bid"`
	BuyNowPrice         *int64 `json:"buy_now_price,omitempty"`
	BidCount            int64  `json:"bid_count"`
	AutoExtend          bool   `json:"auto_extend"`
	AllowUnratedBidders bool   `json:"allow_unrated_bidders"`
	AutoBidDisabled     bool   `json:"auto_bid_disabled"`
	Status              string `json:"status"`
	Highlighted         bool   `json:"highlighted"`
	StartAt             string `json:"start_at"`
	EndAt               string `json:"end_at"`
}

type BidResponse struct {
	BidID     string `json:"bid_id"`
	ListingID string `json:"listing_id"`
	Bidder    string `json:"bidder"`
	Amount    int64  `json:"amount"`
	IsAuto    bool   `json:"is_auto"`
	CreatedAt string `json:"created_at"`
}

type PlaceBidResponse struct {
	Listing          ListingResponse        `json:"listing"`
	Bid              *BidResponse           `json:"bid"`
	AutoBids         []BidResponse          `json:"auto_bids"`
	Events           []AutoBidEventResponse `json:"events"`
	AutoBidTriggered bool                   `json:"auto_bid_triggered"`
	Extended         bool                   `json:"extended"`
}

type AutoBidResponse struct {
	Ceiling          model.AutoBidCeiling   `json:"ceiling"`
	Listing          ListingResponse        `json:"listing"`
	AutoBids         []BidResponse          `json:"auto_bids"`
	Events           []AutoBidEventResponse `json:"events"`
	AutoBidTriggered bool                   `json:"auto_bid_triggered"`
}

// AutoBidEventResponse is the public view of an auto-bid audit event. The
// ceiling stays private to the registrant and bidder ids are masked.
type AutoBidEventResponse struct {
	EventID        string `json:"event_id"`
	ListingID      string `json:"listing_id"`
	Bidder         string `json:"bidder"`
	BidID          string `json:"bid_id"`
	EventType      string `json:"event_type"`
	PreviousBidder string `json:"previous_bidder,omitempty"`
	Amount         int64  `json:"amount"`
	TriggeredAt    string `json:"triggered_at"`
}

// NewListingResponse renders a listing for public view. The leader is masked.
func NewListingResponse(l model.Listing, minimumNextBid int64, now time.Time) ListingResponse {
	return ListingResponse{
		ListingID:           l.ListingID,
		SellerID:            l.SellerID,
		Name:                l.Name,
		Description:         l.Description,
		StartPrice:          l.StartPrice,
		PriceStep:           l.PriceStep,
		CurrentPrice:        l.CurrentPrice,
		CurrentBidder:       utils.MaskBidderName(l.CurrentBidderID),
		MinimumNextBid:      minimumNextBid,
		BuyNowPrice:         l.BuyNowPrice,
		BidCount:            l.BidCount,
		AutoExtend:          l.AutoExtend,
		AllowUnratedBidders: l.AllowUnratedBidders,
		AutoBidDisabled:     l.AutoBidDisabled,
		Status:              string(l.Status),
		Highlighted:         l.HighlightUntil != nil && now.Before(*l.HighlightUntil),
		StartAt:             l.StartAt.UTC().Format(time.RFC3339),
		EndAt:               l.EndAt.UTC().Format(time.RFC3339),
	}
}

func NewBidResponse(b model.Bid) BidResponse {
	return BidResponse{
		BidID:     b.BidID,
		ListingID: b.ListingID,
		Bidder:    utils.MaskBidderName(b.BidderID),
		Amount:    b.Amount,
		IsAuto:    b.IsAuto,
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func NewBidResponses(bids []model.Bid) []BidResponse {
	out := make([]BidResponse, 0, len(bids))
	for _, b := range bids {
		out = append(out, NewBidResponse(b))
	}
	return out
}

func NewAutoBidEventResponse(e model.AutoBidEvent) AutoBidEventResponse {
	return AutoBidEventResponse{
		EventID:        e.EventID,
		ListingID:      e.ListingID,
		Bidder:         utils.MaskBidderName(e.BidderID),
		BidID:          e.BidID,
		EventType:      string(e.EventType),
		PreviousBidder: utils.MaskBidderName(e.PreviousBidderID),
		Amount:         e.Amount,
		TriggeredAt:    e.TriggeredAt.UTC().Format(time.RFC3339),
	}
}

// NewAutoBidEventResponses never returns nil so the payload encodes as []
func NewAutoBidEventResponses(events []model.AutoBidEvent) []AutoBidEventResponse {
	out := make([]AutoBidEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, NewAutoBidEventResponse(e))
	}
	return out
}
