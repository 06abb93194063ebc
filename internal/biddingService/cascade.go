package bidding

import (
	"fmt"
	"sort"

	"auction-engine/internal/biddingerrors"
	model "auction-engine/internal/models"
	"auction-engine/utils"
)

// autoBidStep is one automatic counter-bid chosen by planAutoBid
type autoBidStep struct {
	ceiling   model.AutoBidCeiling
	amount    int64
	eventType model.AutoBidEventType
}

// outranks orders ceilings: higher max first, then the earlier update, then the lower bidder id
func outranks(a, b model.AutoBidCeiling) bool {
	if a.MaxBidAmount != b.MaxBidAmount {
		return a.MaxBidAmount > b.MaxBidAmount
	}
	if !a.UpdatedAt.Equal(b.UpdatedAt) {
		return a.UpdatedAt.Before(b.UpdatedAt)
	}
	return a.BidderID < b.BidderID
}

// planAutoBid picks the next automatic bid for a listing, or reports quiescence.
//
// Challengers are ceilings of anyone but the leader that can still pay floor.
// If the leader's own ceiling outranks the best challenger, the leader raises
// its price just enough to stay ahead (RECALCULATE). Otherwise the best
// challenger takes the lead at the lowest price that beats every other
// competing ceiling by one step, capped at its own max (PLACE).
func planAutoBid(l model.Listing, ceilings []model.AutoBidCeiling, floor int64) (autoBidStep, bool) {
	var (
		leaderCeiling model.AutoBidCeiling
		leaderHas     bool
		challengers   []model.AutoBidCeiling
	)
	for _, c := range ceilings {
		if l.HasLeader() && c.BidderID == l.CurrentBidderID {
			leaderCeiling, leaderHas = c, true
			continue
		}
		if c.MaxBidAmount >= floor {
			challengers = append(challengers, c)
		}
	}
	if len(challengers) == 0 {
		return autoBidStep{}, false
	}

	sort.Slice(challengers, func(i, j int) bool { return outranks(challengers[i], challengers[j]) })
	best := challengers[0]

	if leaderHas && outranks(leaderCeiling, best) {
		return autoBidStep{
			ceiling:   leaderCeiling,
			amount:    min(leaderCeiling.MaxBidAmount, best.MaxBidAmount+l.PriceStep),
			eventType: model.AutoBidRecalculate,
		}, true
	}

	amount := floor
	if len(challengers) > 1 {
		amount = max(amount, challengers[1].MaxBidAmount+l.PriceStep)
	}
	if leaderHas {
		amount = max(amount, leaderCeiling.MaxBidAmount+l.PriceStep)
	}
	return autoBidStep{
		ceiling:   best,
		amount:    min(best.MaxBidAmount, amount),
		eventType: model.AutoBidPlace,
	}, true
}

// cascade applies automatic counter-bids until no standing ceiling can move the price
func (s *BiddingService) cascade(tx *listingTx) error {
	if tx.listing.AutoBidDisabled {
		return nil
	}

	for rounds := 0; ; rounds++ {
		step, ok := planAutoBid(tx.listing, tx.ceilings, s.MinimumNextBid(tx.listing))
		if !ok {
			s.metrics.CascadeSettled(rounds)
			return nil
		}
		if rounds >= s.settings.MaxCascadeIterations {
			utils.Error("Auto-bid cascade did not settle", map[string]any{
				"listing_id": tx.listing.ListingID,
				"rounds":     rounds,
				"price":      tx.listing.CurrentPrice,
			})
			return fmt.Errorf("service: listing %s after %d rounds: %w", tx.listing.ListingID, rounds, biddingerrors.ErrCascadeUnsettled)
		}

		previous := tx.listing.CurrentBidderID
		bid := tx.placeBid(step.ceiling.BidderID, step.amount, true)
		tx.events = append(tx.events, model.AutoBidEvent{
			EventID:          utils.GenerateID(),
			ListingID:        tx.listing.ListingID,
			BidderID:         step.ceiling.BidderID,
			BidID:            bid.BidID,
			EventType:        step.eventType,
			PreviousBidderID: previous,
			Amount:           step.amount,
			Ceiling:          step.ceiling.MaxBidAmount,
			TriggeredAt:      tx.now,
		})
	}
}
