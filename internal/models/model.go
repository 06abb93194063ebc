package models

import "time"

// ListingStatus is the one-way auction state of a listing
type ListingStatus string

const (
	ListingActive ListingStatus = "ACTIVE"
	ListingEnded  ListingStatus = "ENDED"
)

// Listing represents one auction for a single item
type Listing struct {
	ListingID           string        `json:"listing_id"`
	SellerID            string        `json:"seller_id"`
	Name                string        `json:"name"`
	Description         string        `json:"description"`
	StartPrice          int64         `json:"start_price"`
	PriceStep           int64         `json:"price_step"`
	CurrentPrice        int64         `json:"current_price"`
	BuyNowPrice         *int64        `json:"buy_now_price,omitempty"`
	CurrentBidderID     string        `json:"current_bidder_id,omitempty"`
	BidCount            int64         `json:"bid_count"`
	AutoExtend          bool          `json:"auto_extend"`
	AllowUnratedBidders bool          `json:"allow_unrated_bidders"`
	AutoBidDisabled     bool          `json:"auto_bid_disabled"`
	HighlightUntil      *time.Time    `json:"highlight_until,omitempty"`
	Status              ListingStatus `json:"status"`
	StartAt             time.Time     `json:"start_at"`
	EndAt               time.Time     `json:"end_at"`
	Version             int64         `json:"version"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// HasLeader reports whether anyone has bid on the listing yet
func (l Listing) HasLeader() bool {
	return l.CurrentBidderID != ""
}

// IsOpen reports whether the listing accepts bids at the given instant
func (l Listing) IsOpen(now time.Time) bool {
	return l.Status == ListingActive && now.Before(l.EndAt)
}

// IsExpired reports an ACTIVE listing whose end time has passed but which has not been closed yet
func (l Listing) IsExpired(now time.Time) bool {
	return l.Status == ListingActive && !now.Before(l.EndAt)
}

// OnStepGrid reports whether amount equals start_price + k*price_step for some k >= 0
func (l Listing) OnStepGrid(amount int64) bool {
	if amount < l.StartPrice || l.PriceStep <= 0 {
		return false
	}
	return (amount-l.StartPrice)%l.PriceStep == 0
}

// Bid represents an immutable ledger entry, manual or automatic
type Bid struct {
	BidID     string    `json:"bid_id"`
	ListingID string    `json:"listing_id"`
	BidderID  string    `json:"bidder_id"`
	Amount    int64     `json:"amount"`
	IsAuto    bool      `json:"is_auto"`
	CreatedAt time.Time `json:"created_at"`
}

// AutoBidCeiling is a bidder's private maximum for one listing
type AutoBidCeiling struct {
	ListingID    string    `json:"listing_id"`
	BidderID     string    `json:"bidder_id"`
	MaxBidAmount int64     `json:"max_bid_amount"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AutoBidEventType classifies an automatic counter-bid
type AutoBidEventType string

const (
	// AutoBidPlace records a ceiling taking the lead from someone else
	AutoBidPlace AutoBidEventType = "PLACE"
	// AutoBidRecalculate records a leader raising its own price to hold off a challenger
	AutoBidRecalculate AutoBidEventType = "RECALCULATE"
)

// AutoBidEvent is the audit record of one automatic counter-bid
type AutoBidEvent struct {
	EventID          string           `json:"event_id"`
	ListingID        string           `json:"listing_id"`
	BidderID         string           `json:"bidder_id"`
	BidID            string           `json:"bid_id"`
	EventType        AutoBidEventType `json:"event_type"`
	PreviousBidderID string           `json:"previous_bidder_id,omitempty"`
	Amount           int64            `json:"amount"`
	Ceiling          int64            `json:"ceiling"`
	TriggeredAt      time.Time        `json:"triggered_at"`
}

// OrderStatus is the post-auction workflow state
type OrderStatus string

const (
	OrderPendingPayment OrderStatus = "PENDING_PAYMENT"
	OrderProcessing     OrderStatus = "PROCESSING"
	OrderCompleted      OrderStatus = "COMPLETED"
	OrderCancelled      OrderStatus = "CANCELLED"
)

// OrderMessage is one entry of the seller/winner thread
type OrderMessage struct {
	MessageID string    `json:"message_id"`
	OrderID   string    `json:"order_id"`
	SenderID  string    `json:"sender_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Rating is the winner's single verdict on the seller
type Rating struct {
	Score     int       `json:"score"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Order is created exactly once per listing at closure
type Order struct {
	OrderID    string         `json:"order_id"`
	ListingID  string         `json:"listing_id"`
	SellerID   string         `json:"seller_id"`
	WinnerID   string         `json:"winner_id"`
	FinalPrice int64          `json:"final_price"`
	Status     OrderStatus    `json:"status"`
	Messages   []OrderMessage `json:"messages"`
	Rating     *Rating        `json:"rating,omitempty"`
	Version    int64          `json:"version"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// IsParticipant reports whether userID is the seller or the winner
func (o Order) IsParticipant(userID string) bool {
	return userID != "" && (userID == o.SellerID || userID == o.WinnerID)
}

// Bidder is the eligibility view of a user
type Bidder struct {
	BidderID  string `json:"bidder_id"`
	Confirmed bool   `json:"confirmed"`
	Positive  int    `json:"positive"`
	Negative  int    `json:"negative"`
}

// HasRatingHistory reports whether the bidder has received any rating
func (b Bidder) HasRatingHistory() bool {
	return b.Positive+b.Negative > 0
}

// PositivePercent is the share of positive ratings; unrated bidders count as 100
func (b Bidder) PositivePercent() float64 {
	total := b.Positive + b.Negative
	if total == 0 {
		return 100
	}
	return float64(b.Positive) / float64(total) * 100
}

// RatingSummary aggregates the ratings a user has received
type RatingSummary struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
}
