package bidding

import (
	"context"
	"errors"
	"fmt"

	"auction-engine/internal/biddingerrors"
	model "auction-engine/internal/models"
)

// bidderFacts is what the provider knew about a bidder before the lock was taken
type bidderFacts struct {
	bidder model.Bidder
	known  bool
}

// lookupBidder queries the provider outside the listing lock. An unknown
// bidder is not an error here; the gate reports it in its proper order.
func (s *BiddingService) lookupBidder(ctx context.Context, bidderID string) (bidderFacts, error) {
	b, err := s.bidders.Lookup(ctx, bidderID)
	if errors.Is(err, biddingerrors.ErrBidderNotFound) {
		return bidderFacts{}, nil
	}
	if err != nil {
		return bidderFacts{}, fmt.Errorf("service: failed to look up bidder %s: %w", bidderID, err)
	}
	return bidderFacts{bidder: b, known: true}, nil
}

// checkEligible applies the bidding gate for one listing
func (s *BiddingService) checkEligible(l model.Listing, bidderID string, f bidderFacts) error {
	var reason string
	switch {
	case !f.known:
		reason = biddingerrors.ReasonUnknownBidder
	case !f.bidder.Confirmed:
		reason = biddingerrors.ReasonUnconfirmed
	case bidderID == l.SellerID:
		reason = biddingerrors.ReasonSelfBid
	case !f.bidder.HasRatingHistory() && !l.AllowUnratedBidders:
		reason = biddingerrors.ReasonUnrated
	case f.bidder.HasRatingHistory() && f.bidder.PositivePercent() < s.settings.MinBidderRatingPercent:
		reason = biddingerrors.ReasonRatingTooLow
	default:
		return nil
	}
	return fmt.Errorf("service: listing %s: %w", l.ListingID, biddingerrors.NotEligible(bidderID, reason))
}
