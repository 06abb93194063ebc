package bidding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-engine/utils"
)

// ensureClosed ends an ACTIVE listing whose end time has passed. Every path
// that touches a listing runs it first, under the listing lock.
func (s *BiddingService) ensureClosed(tx *listingTx) bool {
	if !tx.listing.IsExpired(tx.now) {
		return false
	}
	tx.close(closeReasonExpired)
	return true
}

// FinalizeResult counts listings closed by one sweep
type FinalizeResult struct {
	Processed     int `json:"processed"`
	WithoutWinner int `json:"without_winner"`
}

// FinalizeExpired closes every ACTIVE listing whose end time has passed.
// Failures on one listing do not stop the sweep; they are returned joined.
func (s *BiddingService) FinalizeExpired(ctx context.Context) (FinalizeResult, error) {
	var res FinalizeResult

	ids, err := s.repo.ListActiveExpired(ctx, s.clock.Now().UTC())
	if err != nil {
		return res, fmt.Errorf("service: failed to list expired listings: %w", err)
	}

	var errs []error
	for _, id := range ids {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		tx, err := s.inListing(ctx, id, nil)
		if err != nil {
			utils.Warn("Failed to finalize listing", map[string]any{"listing_id": id, "error": err.Error()})
			errs = append(errs, err)
			continue
		}
		if tx.closed == "" {
			continue // closed by a concurrent request
		}
		res.Processed++
		if tx.doneOrder == nil {
			res.WithoutWinner++
		}
	}
	return res, errors.Join(errs...)
}

// Finalizer periodically sweeps expired listings so they close without
// waiting for the next access
type Finalizer struct {
	svc      *BiddingService
	interval time.Duration
}

// NewFinalizer creates a Finalizer running every interval
func NewFinalizer(svc *BiddingService, interval time.Duration) *Finalizer {
	return &Finalizer{svc: svc, interval: interval}
}

// Run sweeps once immediately and then on every tick until ctx is done
func (f *Finalizer) Run(ctx context.Context) error {
	utils.Info("Auction finalizer started", map[string]any{"interval": f.interval.String()})

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		f.runOnce(ctx)
		select {
		case <-ctx.Done():
			utils.Info("Auction finalizer stopped", nil)
			return nil
		case <-ticker.C:
		}
	}
}

func (f *Finalizer) runOnce(ctx context.Context) {
	res, err := f.svc.FinalizeExpired(ctx)
	if err != nil && ctx.Err() == nil {
		utils.Error("Auction finalizer sweep failed", map[string]any{"error": err.Error()})
	}
	if res.Processed > 0 {
		utils.Info("Finalized ended auctions", map[string]any{
			"processed":      res.Processed,
			"without_winner": res.WithoutWinner,
		})
	}
}
