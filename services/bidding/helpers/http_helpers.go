package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"auction-engine/internal/biddingerrors"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
)

// ErrorCodeKey is the gin context key holding the code of a failed request,
// read by the metrics middleware
const ErrorCodeKey = "api_error_code"

// Stable error codes returned to API clients
const (
	CodeInvalidRequest         = "INVALID_REQUEST"
	CodeListingNotFound        = "LISTING_NOT_FOUND"
	CodeListingExists          = "LISTING_EXISTS"
	CodeInvalidListing         = "INVALID_LISTING"
	CodeInvalidBid             = "INVALID_BID"
	CodeAuctionClosed          = "AUCTION_CLOSED"
	CodeBidderNotEligible      = "BIDDER_NOT_ELIGIBLE"
	CodeBidTooLow              = "BID_TOO_LOW"
	CodeInvalidBidStep         = "INVALID_BID_STEP"
	CodeAutoBidCeilingTooLow   = "AUTO_BID_CEILING_TOO_LOW"
	CodeAutoBidDisabled        = "AUTO_BID_DISABLED"
	CodeBuyNowUnavailable      = "BUY_NOW_UNAVAILABLE"
	CodeBuyNowSurpassed        = "BUY_NOW_SURPASSED"
	CodeBusy                   = "LISTING_BUSY"
	CodeOrderNotFound          = "ORDER_NOT_FOUND"
	CodeOrderExists            = "ORDER_EXISTS"
	CodeNotOrderParticipant    = "NOT_ORDER_PARTICIPANT"
	CodeSellerRequired         = "SELLER_REQUIRED"
	CodeWinnerRequired         = "WINNER_REQUIRED"
	CodeInvalidOrderTransition = "INVALID_ORDER_TRANSITION"
	CodeRatingNotAllowed       = "RATING_NOT_ALLOWED"
	CodeAlreadyRated           = "ALREADY_RATED"
	CodeEmptyMessage           = "EMPTY_MESSAGE"
	CodeInvalidScore           = "INVALID_SCORE"
	CodeInternal               = "INTERNAL"
)

// HTTPError is the transport view of a domain error
type HTTPError struct {
	Status  int
	Code    string
	Message string
}

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	c.Set(ErrorCodeKey, CodeInvalidRequest)
	utils.JSONError(c, http.StatusBadRequest, CodeInvalidRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code, stable code and message
func MapErrorToHTTP(err error) HTTPError {
	var eligErr *biddingerrors.EligibilityError
	switch {
	case errors.Is(err, biddingerrors.ErrListingNotFound):
		return HTTPError{http.StatusNotFound, CodeListingNotFound, "listing not found"}
	case errors.Is(err, biddingerrors.ErrListingExists):
		return HTTPError{http.StatusConflict, CodeListingExists, "listing already exists"}
	case errors.Is(err, biddingerrors.ErrInvalidListing):
		return HTTPError{http.StatusBadRequest, CodeInvalidListing, "invalid listing details"}
	case errors.Is(err, biddingerrors.ErrInvalidBid):
		return HTTPError{http.StatusBadRequest, CodeInvalidBid, "invalid bid details"}
	case errors.Is(err, biddingerrors.ErrAuctionClosed):
		return HTTPError{http.StatusConflict, CodeAuctionClosed, "auction closed"}
	case errors.As(err, &eligErr):
		return HTTPError{http.StatusForbidden, CodeBidderNotEligible, "bidder not eligible: " + eligErr.Reason}
	case errors.Is(err, biddingerrors.ErrBidderNotEligible):
		return HTTPError{http.StatusForbidden, CodeBidderNotEligible, "bidder not eligible"}
	case errors.Is(err, biddingerrors.ErrBidTooLow):
		return HTTPError{http.StatusConflict, CodeBidTooLow, "bid amount too low"}
	case errors.Is(err, biddingerrors.ErrInvalidBidStep):
		return HTTPError{http.StatusUnprocessableEntity, CodeInvalidBidStep, "bid amount not aligned with price step"}
	case errors.Is(err, biddingerrors.ErrAutoBidCeilingTooLow):
		return HTTPError{http.StatusConflict, CodeAutoBidCeilingTooLow, "auto-bid ceiling too low"}
	case errors.Is(err, biddingerrors.ErrAutoBidDisabled):
		return HTTPError{http.StatusBadRequest, CodeAutoBidDisabled, "auto-bid disabled for listing"}
	case errors.Is(err, biddingerrors.ErrBuyNowSurpassed):
		return HTTPError{http.StatusConflict, CodeBuyNowSurpassed, "bidding already reached the buy-now price"}
	case errors.Is(err, biddingerrors.ErrBuyNowUnavailable):
		return HTTPError{http.StatusBadRequest, CodeBuyNowUnavailable, "buy-now not available"}
	case biddingerrors.IsTransient(err):
		return HTTPError{http.StatusServiceUnavailable, CodeBusy, "listing busy, retry shortly"}
	case errors.Is(err, biddingerrors.ErrOrderNotFound):
		return HTTPError{http.StatusNotFound, CodeOrderNotFound, "order not found"}
	case errors.Is(err, biddingerrors.ErrOrderExists):
		return HTTPError{http.StatusConflict, CodeOrderExists, "order already exists"}
	case errors.Is(err, biddingerrors.ErrNotOrderParticipant):
		return HTTPError{http.StatusForbidden, CodeNotOrderParticipant, "not a participant of this order"}
	case errors.Is(err, biddingerrors.ErrSellerRequired):
		return HTTPError{http.StatusForbidden, CodeSellerRequired, "only the seller can do this"}
	case errors.Is(err, biddingerrors.ErrWinnerRequired):
		return HTTPError{http.StatusForbidden, CodeWinnerRequired, "only the winner can do this"}
	case errors.Is(err, biddingerrors.ErrInvalidOrderTransition):
		return HTTPError{http.StatusConflict, CodeInvalidOrderTransition, "invalid order status transition"}
	case errors.Is(err, biddingerrors.ErrRatingNotAllowed):
		return HTTPError{http.StatusConflict, CodeRatingNotAllowed, "rating not allowed"}
	case errors.Is(err, biddingerrors.ErrAlreadyRated):
		return HTTPError{http.StatusConflict, CodeAlreadyRated, "order already rated"}
	case errors.Is(err, biddingerrors.ErrEmptyMessage):
		return HTTPError{http.StatusUnprocessableEntity, CodeEmptyMessage, "message cannot be empty"}
	case errors.Is(err, biddingerrors.ErrInvalidScore):
		return HTTPError{http.StatusUnprocessableEntity, CodeInvalidScore, "score must be +1 or -1"}
	default:
		return HTTPError{http.StatusInternalServerError, CodeInternal, "internal server error"}
	}
}

// RespondError maps err, writes the error envelope and logs it. Client
// errors log at warn level, everything else at error level.
func RespondError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	he := MapErrorToHTTP(err)
	c.Set(ErrorCodeKey, he.Code)
	utils.JSONError(c, he.Status, he.Code, fmt.Errorf("%s: %w", he.Message, err), he.Message)

	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["code"] = he.Code
	fields["error"] = err.Error()
	if he.Status >= http.StatusInternalServerError {
		utils.Error(handlerName+": request failed", fields)
		return
	}
	utils.Warn(handlerName+": request rejected", fields)
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
