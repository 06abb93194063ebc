package biddingerrors

import (
	"errors"
	"fmt"
)

// Repository-level errors
var (
	ErrListingNotFound  = errors.New("listing not found")
	ErrListingExists    = errors.New("listing already exists")
	ErrOrderNotFound    = errors.New("order not found")
	ErrOrderExists      = errors.New("order already exists for listing")
	ErrVersionConflict  = errors.New("concurrent modification detected")
	ErrLockTimeout      = errors.New("timed out waiting for listing lock")
	ErrBidderNotFound   = errors.New("bidder not found")
	ErrCascadeUnsettled = errors.New("auto-bid cascade did not settle")
)

// Bidding errors
var (
	ErrInvalidBid           = errors.New("invalid bid")
	ErrInvalidListing       = errors.New("invalid listing")
	ErrAuctionClosed        = errors.New("auction closed")
	ErrBidderNotEligible    = errors.New("bidder not eligible")
	ErrBidTooLow            = errors.New("bid amount too low")
	ErrInvalidBidStep       = errors.New("bid amount not aligned with price step")
	ErrAutoBidCeilingTooLow = errors.New("auto-bid ceiling too low")
	ErrAutoBidDisabled      = errors.New("auto-bid disabled for listing")
	ErrBuyNowUnavailable    = errors.New("buy-now not available for listing")
	// ErrBuyNowSurpassed is the buy-now refusal once bidding has reached the buy-now price
	ErrBuyNowSurpassed      = fmt.Errorf("%w: bidding reached the buy-now price", ErrBuyNowUnavailable)
)

// Order lifecycle errors
var (
	ErrNotOrderParticipant    = errors.New("user is not part of this order")
	ErrSellerRequired         = errors.New("only the seller can perform this action")
	ErrWinnerRequired         = errors.New("only the winner can perform this action")
	ErrInvalidOrderTransition = errors.New("invalid order status transition")
	ErrRatingNotAllowed       = errors.New("rating not allowed for order")
	ErrAlreadyRated           = errors.New("order already rated")
	ErrEmptyMessage           = errors.New("message cannot be empty")
	ErrInvalidScore           = errors.New("score must be +1 or -1")
)

// Reasons a bidder can be turned away by the eligibility gate
const (
	ReasonUnknownBidder = "UNKNOWN_BIDDER"
	ReasonUnconfirmed   = "UNCONFIRMED"
	ReasonSelfBid       = "SELF_BID"
	ReasonUnrated       = "RATING_REQUIRED"
	ReasonRatingTooLow  = "RATING_TOO_LOW"
)

// EligibilityError carries the reason behind ErrBidderNotEligible
type EligibilityError struct {
	BidderID string
	Reason   string
}

func (e *EligibilityError) Error() string {
	return fmt.Sprintf("bidder %s not eligible: %s", e.BidderID, e.Reason)
}

func (e *EligibilityError) Unwrap() error {
	return ErrBidderNotEligible
}

// NotEligible builds an EligibilityError for bidderID
func NotEligible(bidderID, reason string) error {
	return &EligibilityError{BidderID: bidderID, Reason: reason}
}

// IsTransient reports errors that are safe to retry without re-deriving intent
func IsTransient(err error) bool {
	return errors.Is(err, ErrLockTimeout) || errors.Is(err, ErrVersionConflict)
}
