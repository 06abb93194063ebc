package eligibility

import (
	"context"
	"fmt"
	"sync"

	"auction-engine/internal/biddingerrors"
	model "auction-engine/internal/models"
)

// Provider exposes the facts the bid engine needs to gate a bidder
type Provider interface {
	Lookup(ctx context.Context, bidderID string) (model.Bidder, error)
}

// RatingSource supplies the ratings a user has received
type RatingSource interface {
	AggregateRating(ctx context.Context, userID string) (model.RatingSummary, error)
}

// Directory is an in-memory user registry. Ratings come from the
// RatingSource when one is set, so closed orders feed back into eligibility.
type Directory struct {
	mu      sync.RWMutex
	bidders map[string]model.Bidder
	ratings RatingSource
}

// NewDirectory creates an empty Directory; ratings may be nil
func NewDirectory(ratings RatingSource) *Directory {
	return &Directory{
		bidders: make(map[string]model.Bidder),
		ratings: ratings,
	}
}

// Register adds or replaces a user. Rating counts given here are a baseline
// that received order ratings are added to.
func (d *Directory) Register(b model.Bidder) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bidders[b.BidderID] = b
}

// Lookup implements Provider
func (d *Directory) Lookup(ctx context.Context, bidderID string) (model.Bidder, error) {
	d.mu.RLock()
	b, ok := d.bidders[bidderID]
	d.mu.RUnlock()
	if !ok {
		return model.Bidder{}, fmt.Errorf("eligibility: lookup %s: %w", bidderID, biddingerrors.ErrBidderNotFound)
	}

	if d.ratings != nil {
		sum, err := d.ratings.AggregateRating(ctx, bidderID)
		if err != nil {
			return model.Bidder{}, fmt.Errorf("eligibility: ratings for %s: %w", bidderID, err)
		}
		b.Positive += sum.Positive
		b.Negative += sum.Negative
	}
	return b, nil
}
