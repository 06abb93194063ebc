package bidding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-engine/internal/biddingerrors"
	model "auction-engine/internal/models"
	"auction-engine/internal/repository"
	"auction-engine/utils"
)

const (
	closeReasonExpired = "expired"
	closeReasonBuyNow  = "buy_now"
)

// listingTx is the in-memory working copy of one serialized listing
// transaction. Everything is computed here and written with a single commit.
type listingTx struct {
	now      time.Time
	listing  model.Listing
	version  int64
	ceilings []model.AutoBidCeiling

	// pending writes
	bids    []model.Bid
	events  []model.AutoBidEvent
	ceiling *model.AutoBidCeiling
	order   *model.Order
	closing bool

	// results of this transaction that survived commit
	doneBids   []model.Bid
	doneEvents []model.AutoBidEvent
	doneOrder  *model.Order
	closed     string
}

func newListingTx(l model.Listing, ceilings []model.AutoBidCeiling, now time.Time) *listingTx {
	return &listingTx{
		now:      now,
		listing:  l,
		version:  l.Version,
		ceilings: ceilings,
	}
}

func (tx *listingTx) dirty() bool {
	return len(tx.bids) > 0 || len(tx.events) > 0 || tx.ceiling != nil || tx.order != nil || tx.closing
}

func (tx *listingTx) mutation() repository.Mutation {
	return repository.Mutation{
		Listing:         tx.listing,
		ExpectedVersion: tx.version,
		Bids:            tx.bids,
		Events:          tx.events,
		Ceiling:         tx.ceiling,
		Order:           tx.order,
	}
}

// settle moves pending writes to the done set after a successful commit
func (tx *listingTx) settle(committed model.Listing) {
	tx.listing = committed
	tx.version = committed.Version
	tx.doneBids = append(tx.doneBids, tx.bids...)
	tx.doneEvents = append(tx.doneEvents, tx.events...)
	if tx.order != nil {
		tx.doneOrder = tx.order
	}
	tx.bids, tx.events, tx.ceiling, tx.order, tx.closing = nil, nil, nil, nil, false
}

// placeBid appends a ledger row and moves price and leader
func (tx *listingTx) placeBid(bidderID string, amount int64, auto bool) model.Bid {
	bid := model.Bid{
		BidID:     utils.GenerateID(),
		ListingID: tx.listing.ListingID,
		BidderID:  bidderID,
		Amount:    amount,
		IsAuto:    auto,
		CreatedAt: tx.now,
	}
	tx.listing.CurrentPrice = amount
	tx.listing.CurrentBidderID = bidderID
	tx.listing.BidCount++
	tx.listing.UpdatedAt = tx.now
	tx.bids = append(tx.bids, bid)
	return bid
}

// upsertCeiling replaces the bidder's ceiling in the snapshot and stages the write
func (tx *listingTx) upsertCeiling(bidderID string, maxAmount int64) model.AutoBidCeiling {
	c := model.AutoBidCeiling{
		ListingID:    tx.listing.ListingID,
		BidderID:     bidderID,
		MaxBidAmount: maxAmount,
		CreatedAt:    tx.now,
		UpdatedAt:    tx.now,
	}
	for i, existing := range tx.ceilings {
		if existing.BidderID == bidderID {
			c.CreatedAt = existing.CreatedAt
			tx.ceilings[i] = c
			tx.ceiling = &c
			return c
		}
	}
	tx.ceilings = append(tx.ceilings, c)
	tx.ceiling = &c
	return c
}

// close ends the listing and stages the order when there is a winner
func (tx *listingTx) close(reason string) {
	l := &tx.listing
	l.Status = model.ListingEnded
	l.UpdatedAt = tx.now
	tx.closing = true
	tx.closed = reason

	if !l.HasLeader() {
		return
	}
	tx.order = &model.Order{
		OrderID:    utils.GenerateID(),
		ListingID:  l.ListingID,
		SellerID:   l.SellerID,
		WinnerID:   l.CurrentBidderID,
		FinalPrice: l.CurrentPrice,
		Status:     model.OrderPendingPayment,
		Messages:   []model.OrderMessage{},
		Version:    1,
		CreatedAt:  tx.now,
		UpdatedAt:  tx.now,
	}
}

type notifications struct {
	autoBids []model.AutoBidEvent
	orders   []model.Order
}

func (n *notifications) add(other notifications) {
	n.autoBids = append(n.autoBids, other.autoBids...)
	n.orders = append(n.orders, other.orders...)
}

// inListing runs op inside the listing's critical section. A version
// conflict re-runs the whole transaction from a fresh snapshot; nothing of
// the failed attempt was written. op may be nil for read paths that only
// need the lazy closure. Notifications go out after the lock is released.
func (s *BiddingService) inListing(ctx context.Context, listingID string, op func(tx *listingTx) error) (*listingTx, error) {
	var pending notifications
	defer func() { s.notify(context.WithoutCancel(ctx), pending) }()

	for attempt := 0; ; attempt++ {
		tx, notes, err := s.runLocked(ctx, listingID, op)
		pending.add(notes)
		if errors.Is(err, biddingerrors.ErrVersionConflict) && attempt < s.settings.MaxConflictRetries {
			utils.Warn("Listing version conflict, retrying", map[string]any{
				"listing_id": listingID,
				"attempt":    attempt + 1,
			})
			continue
		}
		return tx, err
	}
}

func (s *BiddingService) runLocked(ctx context.Context, listingID string, op func(tx *listingTx) error) (*listingTx, notifications, error) {
	var notes notifications

	waitStart := time.Now()
	release, err := s.locks.Acquire(ctx, listingID)
	if err != nil {
		return nil, notes, fmt.Errorf("service: lock listing %s: %w", listingID, err)
	}
	defer release()
	s.metrics.LockWaited(time.Since(waitStart))

	listing, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return nil, notes, fmt.Errorf("service: failed to load listing %s: %w", listingID, err)
	}
	ceilings, err := s.repo.GetCeilings(ctx, listingID)
	if err != nil {
		return nil, notes, fmt.Errorf("service: failed to load auto-bids for listing %s: %w", listingID, err)
	}

	tx := newListingTx(listing, ceilings, s.clock.Now().UTC())

	if s.ensureClosed(tx) {
		if err := s.commit(ctx, tx, &notes); err != nil {
			return nil, notes, err
		}
	}
	if op == nil {
		return tx, notes, nil
	}

	if err := op(tx); err != nil {
		return tx, notes, err
	}
	if tx.dirty() {
		if err := s.commit(ctx, tx, &notes); err != nil {
			return nil, notes, err
		}
	}
	return tx, notes, nil
}

func (s *BiddingService) commit(ctx context.Context, tx *listingTx, notes *notifications) error {
	m := tx.mutation()
	committed, err := s.repo.CommitListing(ctx, m)
	if err != nil {
		return fmt.Errorf("service: failed to commit listing %s: %w", tx.listing.ListingID, err)
	}

	for _, b := range m.Bids {
		switch {
		case b.IsAuto:
			s.metrics.BidPlaced("auto")
		case tx.closed == closeReasonBuyNow:
			s.metrics.BidPlaced("buy_now")
		default:
			s.metrics.BidPlaced("manual")
		}
	}
	if tx.closing {
		s.metrics.AuctionClosed(tx.closed, m.Order != nil)
		fields := map[string]any{
			"listing_id": committed.ListingID,
			"reason":     tx.closed,
			"price":      committed.CurrentPrice,
		}
		if m.Order != nil {
			fields["order_id"] = m.Order.OrderID
			fields["winner_id"] = m.Order.WinnerID
		}
		utils.Info("Auction closed", fields)
	}

	notes.autoBids = append(notes.autoBids, m.Events...)
	if m.Order != nil {
		notes.orders = append(notes.orders, *m.Order)
	}
	tx.settle(committed)
	return nil
}

func (s *BiddingService) notify(ctx context.Context, n notifications) {
	for _, e := range n.autoBids {
		s.publisher.AutoBidTriggered(ctx, e)
	}
	for _, o := range n.orders {
		s.publisher.OrderCreated(ctx, o)
	}
}
