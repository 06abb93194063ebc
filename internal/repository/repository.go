package repository

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"auction-engine/internal/biddingerrors"
	model "auction-engine/internal/models"
)

// Mutation is everything a single serialized listing transaction writes.
// It is applied all-or-nothing, guarded by a compare-and-set on the
// listing version.
type Mutation struct {
	Listing         model.Listing
	ExpectedVersion int64
	Bids            []model.Bid
	Events          []model.AutoBidEvent
	Ceiling         *model.AutoBidCeiling
	Order           *model.Order
}

// AuctionDB defines listing, ledger and auto-bid storage for the bid engine
type AuctionDB interface {
	CreateListing(ctx context.Context, listing model.Listing) error
	GetListing(ctx context.Context, listingID string) (model.Listing, error)
	ListActiveExpired(ctx context.Context, now time.Time) ([]string, error)
	GetCeilings(ctx context.Context, listingID string) ([]model.AutoBidCeiling, error)
	GetBidsByListing(ctx context.Context, listingID string, limit int) ([]model.Bid, error)
	GetAutoBidEvents(ctx context.Context, listingID string) ([]model.AutoBidEvent, error)
	CommitListing(ctx context.Context, m Mutation) (model.Listing, error)
}

// OrderDB defines order storage for the post-auction workflow
type OrderDB interface {
	GetOrder(ctx context.Context, orderID string) (model.Order, error)
	GetOrderByListing(ctx context.Context, listingID string) (model.Order, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]model.Order, error)
	UpdateOrder(ctx context.Context, order model.Order, expectedVersion int64) (model.Order, error)
	AppendOrderMessage(ctx context.Context, msg model.OrderMessage) error
	AggregateRating(ctx context.Context, userID string) (model.RatingSummary, error)
}

type ceilingKey struct {
	listingID string
	bidderID  string
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB and OrderDB
type MemoryRepo struct {
	mu             sync.RWMutex
	listings       map[string]model.Listing        // key: listingID
	bids           map[string][]model.Bid          // key: listingID -> ledger in commit order
	events         map[string][]model.AutoBidEvent // key: listingID
	ceilings       map[ceilingKey]model.AutoBidCeiling
	orders         map[string]model.Order // key: orderID
	orderByListing map[string]string      // key: listingID -> orderID
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		listings:       make(map[string]model.Listing),
		bids:           make(map[string][]model.Bid),
		events:         make(map[string][]model.AutoBidEvent),
		ceilings:       make(map[ceilingKey]model.AutoBidCeiling),
		orders:         make(map[string]model.Order),
		orderByListing: make(map[string]string),
	}
}

// CreateListing stores a new listing
func (r *MemoryRepo) CreateListing(_ context.Context, listing model.Listing) error {
	if listing.ListingID == "" {
		return fmt.Errorf("repository: create listing: %w", biddingerrors.ErrInvalidListing)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[listing.ListingID]; ok {
		return fmt.Errorf("repository: create listing %s: %w", listing.ListingID, biddingerrors.ErrListingExists)
	}
	r.listings[listing.ListingID] = listing
	return nil
}

// GetListing returns the stored state of a listing
func (r *MemoryRepo) GetListing(_ context.Context, listingID string) (model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listing, ok := r.listings[listingID]
	if !ok {
		return model.Listing{}, fmt.Errorf("repository: get listing %s: %w", listingID, biddingerrors.ErrListingNotFound)
	}
	return listing, nil
}

// ListActiveExpired returns ids of ACTIVE listings whose end time is at or before now
func (r *MemoryRepo) ListActiveExpired(_ context.Context, now time.Time) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0)
	for id, l := range r.listings {
		if l.IsExpired(now) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// GetCeilings returns every standing auto-bid ceiling of a listing
func (r *MemoryRepo) GetCeilings(_ context.Context, listingID string) ([]model.AutoBidCeiling, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.AutoBidCeiling, 0)
	for k, c := range r.ceilings {
		if k.listingID == listingID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BidderID < out[j].BidderID })
	return out, nil
}

// GetBidsByListing returns the ledger newest first; limit <= 0 returns everything
func (r *MemoryRepo) GetBidsByListing(_ context.Context, listingID string, limit int) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ledger := r.bids[listingID]
	n := len(ledger)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]model.Bid, 0, n)
	for i := len(ledger) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, ledger[i])
	}
	return out, nil
}

// GetAutoBidEvents returns the audit log of a listing in commit order
func (r *MemoryRepo) GetAutoBidEvents(_ context.Context, listingID string) ([]model.AutoBidEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]model.AutoBidEvent{}, r.events[listingID]...), nil
}

// CommitListing applies a mutation atomically if the stored version still matches
func (r *MemoryRepo) CommitListing(_ context.Context, m Mutation) (model.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := m.Listing.ListingID
	stored, ok := r.listings[id]
	if !ok {
		return model.Listing{}, fmt.Errorf("repository: commit listing %s: %w", id, biddingerrors.ErrListingNotFound)
	}
	if stored.Version != m.ExpectedVersion {
		return model.Listing{}, fmt.Errorf("repository: commit listing %s (have v%d, want v%d): %w",
			id, stored.Version, m.ExpectedVersion, biddingerrors.ErrVersionConflict)
	}
	if m.Order != nil {
		if _, exists := r.orderByListing[id]; exists {
			return model.Listing{}, fmt.Errorf("repository: commit listing %s: %w", id, biddingerrors.ErrOrderExists)
		}
	}

	next := m.Listing
	next.Version = m.ExpectedVersion + 1
	r.listings[id] = next

	if len(m.Bids) > 0 {
		r.bids[id] = append(r.bids[id], m.Bids...)
	}
	if len(m.Events) > 0 {
		r.events[id] = append(r.events[id], m.Events...)
	}
	if m.Ceiling != nil {
		key := ceilingKey{listingID: m.Ceiling.ListingID, bidderID: m.Ceiling.BidderID}
		c := *m.Ceiling
		if prev, exists := r.ceilings[key]; exists {
			c.CreatedAt = prev.CreatedAt
		}
		r.ceilings[key] = c
	}
	if m.Order != nil {
		o := *m.Order
		o.Messages = append([]model.OrderMessage{}, o.Messages...)
		r.orders[o.OrderID] = o
		r.orderByListing[id] = o.OrderID
	}

	return next, nil
}

// GetOrder returns an order with its message thread
func (r *MemoryRepo) GetOrder(_ context.Context, orderID string) (model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[orderID]
	if !ok {
		return model.Order{}, fmt.Errorf("repository: get order %s: %w", orderID, biddingerrors.ErrOrderNotFound)
	}
	return copyOrder(o), nil
}

// GetOrderByListing returns the order materialized for a listing
func (r *MemoryRepo) GetOrderByListing(_ context.Context, listingID string) (model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderID, ok := r.orderByListing[listingID]
	if !ok {
		return model.Order{}, fmt.Errorf("repository: get order for listing %s: %w", listingID, biddingerrors.ErrOrderNotFound)
	}
	return copyOrder(r.orders[orderID]), nil
}

// ListOrdersByUser returns orders where the user is seller or winner, newest first
func (r *MemoryRepo) ListOrdersByUser(_ context.Context, userID string) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Order, 0)
	for _, o := range r.orders {
		if o.IsParticipant(userID) {
			out = append(out, copyOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].OrderID < out[j].OrderID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UpdateOrder persists status and rating changes if the stored version still matches
func (r *MemoryRepo) UpdateOrder(_ context.Context, order model.Order, expectedVersion int64) (model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[order.OrderID]
	if !ok {
		return model.Order{}, fmt.Errorf("repository: update order %s: %w", order.OrderID, biddingerrors.ErrOrderNotFound)
	}
	if stored.Version != expectedVersion {
		return model.Order{}, fmt.Errorf("repository: update order %s: %w", order.OrderID, biddingerrors.ErrVersionConflict)
	}

	stored.Status = order.Status
	stored.Rating = order.Rating
	stored.UpdatedAt = order.UpdatedAt
	stored.Version = expectedVersion + 1
	r.orders[order.OrderID] = stored
	return copyOrder(stored), nil
}

// AppendOrderMessage adds a message to an order thread
func (r *MemoryRepo) AppendOrderMessage(_ context.Context, msg model.OrderMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[msg.OrderID]
	if !ok {
		return fmt.Errorf("repository: append message to order %s: %w", msg.OrderID, biddingerrors.ErrOrderNotFound)
	}
	o.Messages = append(o.Messages, msg)
	r.orders[msg.OrderID] = o
	return nil
}

// AggregateRating counts the ratings a user received as a seller
func (r *MemoryRepo) AggregateRating(_ context.Context, userID string) (model.RatingSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sum model.RatingSummary
	for _, o := range r.orders {
		if o.SellerID != userID || o.Rating == nil {
			continue
		}
		if o.Rating.Score > 0 {
			sum.Positive++
		} else {
			sum.Negative++
		}
	}
	return sum, nil
}

// AddListing adds a listing to the repository without validation. This method is intended for tests and seeding.
func (r *MemoryRepo) AddListing(listing model.Listing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings[listing.ListingID] = listing
}

func copyOrder(o model.Order) model.Order {
	o.Messages = append([]model.OrderMessage{}, o.Messages...)
	if o.Rating != nil {
		rating := *o.Rating
		o.Rating = &rating
	}
	return o
}
