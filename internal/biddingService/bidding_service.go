package bidding

import (
	"context"
	"fmt"
	"strings"
	"time"

	"auction-engine/internal/biddingerrors"
	"auction-engine/internal/eligibility"
	"auction-engine/internal/events"
	"auction-engine/internal/locker"
	"auction-engine/internal/metrics"
	model "auction-engine/internal/models"
	"auction-engine/internal/repository"
	"auction-engine/utils"
)

// Bid history page sizes
const (
	DefaultBidHistoryLimit = 20
	MaxBidHistoryLimit     = 50
)

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Settings are the tunable rules of the engine
type Settings struct {
	AutoExtendWindow       time.Duration
	AutoExtendMargin       time.Duration
	OpeningBidAtStartPrice bool
	MinBidderRatingPercent float64
	MaxCascadeIterations   int
	MaxConflictRetries     int
	HighlightNewDuration   time.Duration
}

// DefaultSettings returns the production defaults
func DefaultSettings() Settings {
	return Settings{
		AutoExtendWindow:       5 * time.Minute,
		AutoExtendMargin:       10 * time.Minute,
		MinBidderRatingPercent: 80,
		MaxCascadeIterations:   1000,
		MaxConflictRetries:     3,
		HighlightNewDuration:   time.Hour,
	}
}

// Option customizes a BiddingService
type Option func(*BiddingService)

func WithClock(c Clock) Option { return func(s *BiddingService) { s.clock = c } }

func WithSettings(st Settings) Option { return func(s *BiddingService) { s.settings = st } }

func WithPublisher(p events.Publisher) Option { return func(s *BiddingService) { s.publisher = p } }

func WithMetrics(m *metrics.Metrics) Option { return func(s *BiddingService) { s.metrics = m } }

// BiddingService is the bid resolution engine. Every mutation of a listing
// runs under that listing's lock and is committed as one atomic write.
type BiddingService struct {
	repo      repository.AuctionDB
	bidders   eligibility.Provider
	locks     locker.Locker
	clock     Clock
	settings  Settings
	publisher events.Publisher
	metrics   *metrics.Metrics
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(repo repository.AuctionDB, bidders eligibility.Provider, locks locker.Locker, opts ...Option) *BiddingService {
	s := &BiddingService{
		repo:      repo,
		bidders:   bidders,
		locks:     locks,
		clock:     systemClock{},
		settings:  DefaultSettings(),
		publisher: events.Nop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewListing is the seller input for CreateListing
type NewListing struct {
	ListingID           string
	SellerID            string
	Name                string
	Description         string
	StartPrice          int64
	PriceStep           int64
	BuyNowPrice         *int64
	AutoExtend          bool
	AllowUnratedBidders bool
	AutoBidDisabled     bool
	StartAt             time.Time
	EndAt               time.Time
}

// BidOutcome is the settled state after a manual bid and its cascade
type BidOutcome struct {
	Listing  model.Listing
	Bid      *model.Bid // nil when the leader re-bid and nothing changed
	AutoBids []model.Bid
	Events   []model.AutoBidEvent
	Extended bool
}

// AutoBidTriggered reports whether standing ceilings reacted
func (o BidOutcome) AutoBidTriggered() bool { return len(o.Events) > 0 }

// AutoBidOutcome is the settled state after a ceiling registration
type AutoBidOutcome struct {
	Ceiling  model.AutoBidCeiling
	Listing  model.Listing
	AutoBids []model.Bid
	Events   []model.AutoBidEvent
}

// AutoBidTriggered reports whether the registration moved the price
func (o AutoBidOutcome) AutoBidTriggered() bool { return len(o.Events) > 0 }

// MinimumNextBid is the lowest amount the next bid on l must reach
func (s *BiddingService) MinimumNextBid(l model.Listing) int64 {
	if !l.HasLeader() && s.settings.OpeningBidAtStartPrice {
		return l.CurrentPrice
	}
	return l.CurrentPrice + l.PriceStep
}

// CreateListing validates seller input and stores an ACTIVE listing
func (s *BiddingService) CreateListing(ctx context.Context, in NewListing) (model.Listing, error) {
	now := s.clock.Now().UTC()
	if in.StartAt.IsZero() {
		in.StartAt = now
	}
	if err := validateNewListing(in, now); err != nil {
		return model.Listing{}, err
	}

	id := in.ListingID
	if id == "" {
		id = utils.GenerateID()
	}
	l := model.Listing{
		ListingID:           id,
		SellerID:            in.SellerID,
		Name:                strings.TrimSpace(in.Name),
		Description:         in.Description,
		StartPrice:          in.StartPrice,
		PriceStep:           in.PriceStep,
		CurrentPrice:        in.StartPrice,
		BuyNowPrice:         in.BuyNowPrice,
		AutoExtend:          in.AutoExtend,
		AllowUnratedBidders: in.AllowUnratedBidders,
		AutoBidDisabled:     in.AutoBidDisabled,
		Status:              model.ListingActive,
		StartAt:             in.StartAt.UTC(),
		EndAt:               in.EndAt.UTC(),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if s.settings.HighlightNewDuration > 0 {
		until := now.Add(s.settings.HighlightNewDuration)
		l.HighlightUntil = &until
	}

	if err := s.repo.CreateListing(ctx, l); err != nil {
		return model.Listing{}, fmt.Errorf("service: failed to create listing: %w", err)
	}
	utils.Info("Listing created", map[string]any{
		"listing_id":  l.ListingID,
		"seller_id":   l.SellerID,
		"start_price": l.StartPrice,
		"price_step":  l.PriceStep,
		"end_at":      l.EndAt,
	})
	return l, nil
}

func validateNewListing(in NewListing, now time.Time) error {
	switch {
	case in.SellerID == "":
		return fmt.Errorf("service: %w - missing seller", biddingerrors.ErrInvalidListing)
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("service: %w - missing name", biddingerrors.ErrInvalidListing)
	case in.StartPrice <= 0:
		return fmt.Errorf("service: %w - start price must be positive", biddingerrors.ErrInvalidListing)
	case in.PriceStep <= 0:
		return fmt.Errorf("service: %w - price step must be positive", biddingerrors.ErrInvalidListing)
	case in.BuyNowPrice != nil && *in.BuyNowPrice <= in.StartPrice:
		return fmt.Errorf("service: %w - buy-now price must exceed start price", biddingerrors.ErrInvalidListing)
	case !in.EndAt.After(in.StartAt):
		return fmt.Errorf("service: %w - end time must follow start time", biddingerrors.ErrInvalidListing)
	case !in.EndAt.After(now):
		return fmt.Errorf("service: %w - end time already passed", biddingerrors.ErrInvalidListing)
	}
	return nil
}

// GetListing returns a listing, closing it first if its end time has passed
func (s *BiddingService) GetListing(ctx context.Context, listingID string) (model.Listing, error) {
	if listingID == "" {
		return model.Listing{}, fmt.Errorf("service: %w - empty listing ID", biddingerrors.ErrInvalidListing)
	}

	l, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return model.Listing{}, fmt.Errorf("service: failed to get listing %s: %w", listingID, err)
	}
	if !l.IsExpired(s.clock.Now()) {
		return l, nil
	}

	tx, err := s.inListing(ctx, listingID, nil)
	if err != nil {
		return model.Listing{}, err
	}
	return tx.listing, nil
}

// ListBids returns the bid history newest first
func (s *BiddingService) ListBids(ctx context.Context, listingID string, limit int) ([]model.Bid, error) {
	if _, err := s.GetListing(ctx, listingID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultBidHistoryLimit
	}
	if limit > MaxBidHistoryLimit {
		limit = MaxBidHistoryLimit
	}

	bids, err := s.repo.GetBidsByListing(ctx, listingID, limit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for listing %s: %w", listingID, err)
	}
	return bids, nil
}

// ListAutoBidEvents returns the automatic bidding audit log of a listing
func (s *BiddingService) ListAutoBidEvents(ctx context.Context, listingID string) ([]model.AutoBidEvent, error) {
	if _, err := s.GetListing(ctx, listingID); err != nil {
		return nil, err
	}

	evs, err := s.repo.GetAutoBidEvents(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get auto-bid events for listing %s: %w", listingID, err)
	}
	return evs, nil
}

// PlaceManualBid validates a bid, records it, then lets standing auto-bids respond
func (s *BiddingService) PlaceManualBid(ctx context.Context, listingID, bidderID string, amount int64) (BidOutcome, error) {
	if listingID == "" || bidderID == "" {
		return BidOutcome{}, fmt.Errorf("service: %w - missing listingID or bidderID", biddingerrors.ErrInvalidBid)
	}
	if amount <= 0 {
		return BidOutcome{}, fmt.Errorf("service: %w - non-positive bid amount", biddingerrors.ErrInvalidBid)
	}

	facts, err := s.lookupBidder(ctx, bidderID)
	if err != nil {
		return BidOutcome{}, err
	}

	var out BidOutcome
	tx, err := s.inListing(ctx, listingID, func(tx *listingTx) error {
		out = BidOutcome{}
		l := tx.listing
		if !l.IsOpen(tx.now) {
			return fmt.Errorf("service: listing %s: %w", listingID, biddingerrors.ErrAuctionClosed)
		}
		if err := s.checkEligible(l, bidderID, facts); err != nil {
			return err
		}
		if floor := s.MinimumNextBid(l); amount < floor {
			return fmt.Errorf("service: %w - minimum next bid is %d", biddingerrors.ErrBidTooLow, floor)
		}
		if !l.OnStepGrid(amount) {
			return fmt.Errorf("service: %w - amount %d is not start price %d plus a multiple of %d",
				biddingerrors.ErrInvalidBidStep, amount, l.StartPrice, l.PriceStep)
		}
		if l.CurrentBidderID == bidderID {
			return nil
		}

		bid := tx.placeBid(bidderID, amount, false)
		out.Bid = &bid
		out.Extended = s.autoExtend(tx)
		return s.cascade(tx)
	})
	if err != nil {
		return BidOutcome{}, err
	}

	out.Listing = tx.listing
	out.Events = tx.doneEvents
	for _, b := range tx.doneBids {
		if b.IsAuto {
			out.AutoBids = append(out.AutoBids, b)
		}
	}
	return out, nil
}

// autoExtend pushes end_at out when a bid lands inside the closing window
func (s *BiddingService) autoExtend(tx *listingTx) bool {
	l := &tx.listing
	if !l.AutoExtend || s.settings.AutoExtendMargin <= 0 {
		return false
	}
	remaining := l.EndAt.Sub(tx.now)
	if remaining <= 0 || remaining > s.settings.AutoExtendWindow {
		return false
	}
	l.EndAt = l.EndAt.Add(s.settings.AutoExtendMargin)
	return true
}

// RegisterAutoBid stores a bidder's ceiling and runs the cascade it may trigger
func (s *BiddingService) RegisterAutoBid(ctx context.Context, listingID, bidderID string, maxBidAmount int64) (AutoBidOutcome, error) {
	if listingID == "" || bidderID == "" {
		return AutoBidOutcome{}, fmt.Errorf("service: %w - missing listingID or bidderID", biddingerrors.ErrInvalidBid)
	}
	if maxBidAmount <= 0 {
		return AutoBidOutcome{}, fmt.Errorf("service: %w - non-positive ceiling", biddingerrors.ErrInvalidBid)
	}

	facts, err := s.lookupBidder(ctx, bidderID)
	if err != nil {
		return AutoBidOutcome{}, err
	}

	var ceiling model.AutoBidCeiling
	tx, err := s.inListing(ctx, listingID, func(tx *listingTx) error {
		l := tx.listing
		if !l.IsOpen(tx.now) {
			return fmt.Errorf("service: listing %s: %w", listingID, biddingerrors.ErrAuctionClosed)
		}
		if l.AutoBidDisabled {
			return fmt.Errorf("service: listing %s: %w", listingID, biddingerrors.ErrAutoBidDisabled)
		}
		if err := s.checkEligible(l, bidderID, facts); err != nil {
			return err
		}
		if floor := s.MinimumNextBid(l); maxBidAmount < floor {
			return fmt.Errorf("service: %w - ceiling must reach at least %d", biddingerrors.ErrAutoBidCeilingTooLow, floor)
		}
		if !l.OnStepGrid(maxBidAmount) {
			return fmt.Errorf("service: %w - ceiling %d is not start price %d plus a multiple of %d",
				biddingerrors.ErrInvalidBidStep, maxBidAmount, l.StartPrice, l.PriceStep)
		}

		ceiling = tx.upsertCeiling(bidderID, maxBidAmount)
		return s.cascade(tx)
	})
	if err != nil {
		return AutoBidOutcome{}, err
	}

	return AutoBidOutcome{
		Ceiling:  ceiling,
		Listing:  tx.listing,
		AutoBids: tx.doneBids,
		Events:   tx.doneEvents,
	}, nil
}

// BuyNow ends the auction immediately at the buy-now price
func (s *BiddingService) BuyNow(ctx context.Context, listingID, buyerID string) (model.Order, error) {
	if listingID == "" || buyerID == "" {
		return model.Order{}, fmt.Errorf("service: %w - missing listingID or buyerID", biddingerrors.ErrInvalidBid)
	}

	facts, err := s.lookupBidder(ctx, buyerID)
	if err != nil {
		return model.Order{}, err
	}

	tx, err := s.inListing(ctx, listingID, func(tx *listingTx) error {
		l := tx.listing
		if !l.IsOpen(tx.now) {
			return fmt.Errorf("service: listing %s: %w", listingID, biddingerrors.ErrAuctionClosed)
		}
		if err := s.checkEligible(l, buyerID, facts); err != nil {
			return err
		}
		if l.BuyNowPrice == nil {
			return fmt.Errorf("service: listing %s: %w", listingID, biddingerrors.ErrBuyNowUnavailable)
		}
		if l.HasLeader() && *l.BuyNowPrice <= l.CurrentPrice {
			return fmt.Errorf("service: listing %s at %d: %w", listingID, l.CurrentPrice, biddingerrors.ErrBuyNowSurpassed)
		}

		tx.placeBid(buyerID, *l.BuyNowPrice, false)
		tx.close(closeReasonBuyNow)
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}
	if tx.doneOrder == nil {
		return model.Order{}, fmt.Errorf("service: listing %s: buy-now committed without an order", listingID)
	}
	return *tx.doneOrder, nil
}
