package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	bidding "auction-engine/internal/biddingService"
	"auction-engine/internal/biddingerrors"
	model "auction-engine/internal/models"
	"auction-engine/services/bidding/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func activeListing(id string) model.Listing {
	return model.Listing{
		ListingID:       id,
		SellerID:        "seller",
		Name:            "Vintage camera",
		StartPrice:      1_000_000,
		PriceStep:       50_000,
		CurrentPrice:    1_050_000,
		CurrentBidderID: "alice",
		BidCount:        1,
		Status:          model.ListingActive,
		StartAt:         now,
		EndAt:           now.Add(time.Hour),
	}
}

func newTestRouter(mockService *MockBiddingServiceInterface) *gin.Engine {
	h := NewBiddingHandler(mockService)
	h.now = func() time.Time { return now }

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/listings", h.CreateListingHandler)
	router.GET("/listings/:listing_id", h.GetListingHandler)
	router.GET("/listings/:listing_id/bids", h.GetBidsHandler)
	router.GET("/listings/:listing_id/auto-bid-events", h.GetAutoBidEventsHandler)
	router.POST("/listings/:listing_id/bids", h.PlaceBidHandler)
	router.POST("/listings/:listing_id/auto-bids", h.RegisterAutoBidHandler)
	router.POST("/listings/:listing_id/buy-now", h.BuyNowHandler)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

// Test PlaceBidHandler
func TestPlaceBidHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockBiddingServiceInterface(ctrl)
	router := newTestRouter(mockService)

	tests := []struct {
		name           string
		listingID      string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedCode   string
		expectedMsg    string
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name:        "success_valid_bid",
			listingID:   "l1",
			requestBody: helpers.PlaceBidRequest{BidderID: "bob", Amount: 1_100_000},
			mockSetup: func() {
				l := activeListing("l1")
				l.CurrentPrice, l.CurrentBidderID, l.BidCount = 1_100_000, "bob", 2
				mockService.EXPECT().
					PlaceManualBid(gomock.Any(), "l1", "bob", int64(1_100_000)).
					Return(bidding.BidOutcome{
						Listing: l,
						Bid:     &model.Bid{BidID: uuid.NewString(), ListingID: "l1", BidderID: "bob", Amount: 1_100_000, CreatedAt: now},
					}, nil)
				mockService.EXPECT().MinimumNextBid(gomock.Any()).Return(int64(1_150_000))
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "bid recorded successfully",
			validateData: func(t *testing.T, data map[string]any) {
				bid := data["bid"].(map[string]any)
				_, parseErr := uuid.Parse(bid["bid_id"].(string))
				require.NoError(t, parseErr, "BidID should be a valid UUID")
				require.Equal(t, "b*b", bid["bidder"])
				require.Equal(t, 1_100_000.0, bid["amount"])
				listing := data["listing"].(map[string]any)
				require.Equal(t, 1_150_000.0, listing["minimum_next_bid"])
				require.Equal(t, "b*b", listing["current_bidder"])
				require.Equal(t, false, data["auto_bid_triggered"])
				require.Empty(t, data["events"])
			},
		},
		{
			name:        "success_cascade_outbids_bidder",
			listingID:   "l1",
			requestBody: helpers.PlaceBidRequest{BidderID: "carol", Amount: 1_150_000},
			mockSetup: func() {
				l := activeListing("l1")
				l.CurrentPrice, l.CurrentBidderID = 1_200_000, "bob"
				auto := model.Bid{BidID: "b2", ListingID: "l1", BidderID: "bob", Amount: 1_200_000, IsAuto: true, CreatedAt: now}
				mockService.EXPECT().
					PlaceManualBid(gomock.Any(), "l1", "carol", int64(1_150_000)).
					Return(bidding.BidOutcome{
						Listing:  l,
						Bid:      &model.Bid{BidID: "b1", ListingID: "l1", BidderID: "carol", Amount: 1_150_000, CreatedAt: now},
						AutoBids: []model.Bid{auto},
						Events: []model.AutoBidEvent{{
							EventID: "e1", ListingID: "l1", BidderID: "bob", BidID: "b2", EventType: model.AutoBidPlace,
							PreviousBidderID: "carol", Amount: 1_200_000, Ceiling: 3_000_000, TriggeredAt: now,
						}},
					}, nil)
				mockService.EXPECT().MinimumNextBid(gomock.Any()).Return(int64(1_250_000))
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "bid recorded successfully",
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, true, data["auto_bid_triggered"])
				require.Len(t, data["auto_bids"], 1)
				require.Len(t, data["events"], 1)

				// the rival's ceiling must never reach the outbid bidder
				ev := data["events"].([]any)[0].(map[string]any)
				require.NotContains(t, ev, "ceiling")
				require.NotContains(t, ev, "bidder_id")
				require.NotContains(t, ev, "previous_bidder_id")
				require.Equal(t, "b*b", ev["bidder"])
				require.Equal(t, "c***l", ev["previous_bidder"])
				require.Equal(t, string(model.AutoBidPlace), ev["event_type"])
				require.Equal(t, 1_200_000.0, ev["amount"])
				require.Equal(t, now.Format(time.RFC3339), ev["triggered_at"])
			},
		},
		{
			name:        "leader_rebid_is_noop",
			listingID:   "l1",
			requestBody: helpers.PlaceBidRequest{BidderID: "alice", Amount: 1_200_000},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceManualBid(gomock.Any(), "l1", "alice", int64(1_200_000)).
					Return(bidding.BidOutcome{Listing: activeListing("l1")}, nil)
				mockService.EXPECT().MinimumNextBid(gomock.Any()).Return(int64(1_100_000))
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "already the highest bidder",
			validateData: func(t *testing.T, data map[string]any) {
				require.Nil(t, data["bid"])
			},
		},
		{
			name:           "invalid_json",
			listingID:      "l1",
			requestBody:    `{invalid json}`,
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   helpers.CodeInvalidRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "missing_bidder_id",
			listingID:      "l1",
			requestBody:    helpers.PlaceBidRequest{Amount: 50},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   helpers.CodeInvalidRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:           "negative_amount",
			listingID:      "l1",
			requestBody:    helpers.PlaceBidRequest{BidderID: "bob", Amount: -10},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   helpers.CodeInvalidRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:        "service_bid_too_low",
			listingID:   "l2",
			requestBody: helpers.PlaceBidRequest{BidderID: "bob", Amount: 50},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceManualBid(gomock.Any(), "l2", "bob", int64(50)).
					Return(bidding.BidOutcome{}, fmt.Errorf("service: %w", biddingerrors.ErrBidTooLow))
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   helpers.CodeBidTooLow,
			expectedMsg:    "bid amount too low",
		},
		{
			name:        "service_invalid_step",
			listingID:   "l2",
			requestBody: helpers.PlaceBidRequest{BidderID: "bob", Amount: 1_060_000},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceManualBid(gomock.Any(), "l2", "bob", int64(1_060_000)).
					Return(bidding.BidOutcome{}, biddingerrors.ErrInvalidBidStep)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   helpers.CodeInvalidBidStep,
			expectedMsg:    "price step",
		},
		{
			name:        "service_not_eligible_with_reason",
			listingID:   "l2",
			requestBody: helpers.PlaceBidRequest{BidderID: "newbie", Amount: 1_100_000},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceManualBid(gomock.Any(), "l2", "newbie", int64(1_100_000)).
					Return(bidding.BidOutcome{}, fmt.Errorf("service: listing l2: %w",
						biddingerrors.NotEligible("newbie", biddingerrors.ReasonUnrated)))
			},
			expectedStatus: http.StatusForbidden,
			expectedCode:   helpers.CodeBidderNotEligible,
			expectedMsg:    biddingerrors.ReasonUnrated,
		},
		{
			name:        "service_auction_closed",
			listingID:   "l3",
			requestBody: helpers.PlaceBidRequest{BidderID: "bob", Amount: 1_100_000},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceManualBid(gomock.Any(), "l3", "bob", int64(1_100_000)).
					Return(bidding.BidOutcome{}, biddingerrors.ErrAuctionClosed)
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   helpers.CodeAuctionClosed,
			expectedMsg:    "auction closed",
		},
		{
			name:        "service_lock_timeout",
			listingID:   "l3",
			requestBody: helpers.PlaceBidRequest{BidderID: "carol", Amount: 1_100_000},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceManualBid(gomock.Any(), "l3", "carol", int64(1_100_000)).
					Return(bidding.BidOutcome{}, biddingerrors.ErrLockTimeout)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   helpers.CodeBusy,
			expectedMsg:    "retry",
		},
		{
			name:        "service_listing_not_found",
			listingID:   "missing",
			requestBody: helpers.PlaceBidRequest{BidderID: "bob", Amount: 1_100_000},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceManualBid(gomock.Any(), "missing", "bob", int64(1_100_000)).
					Return(bidding.BidOutcome{}, biddingerrors.ErrListingNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   helpers.CodeListingNotFound,
			expectedMsg:    "listing not found",
		},
		{
			name:        "service_generic_error",
			listingID:   "l4",
			requestBody: helpers.PlaceBidRequest{BidderID: "bob", Amount: 1_100_000},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceManualBid(gomock.Any(), "l4", "bob", int64(1_100_000)).
					Return(bidding.BidOutcome{}, errors.New("database failure"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   helpers.CodeInternal,
			expectedMsg:    "internal server error",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			w, resp := doRequest(t, router, http.MethodPost, "/listings/"+tc.listingID+"/bids", tc.requestBody)

			require.Equal(t, tc.expectedStatus, w.Code)
			require.Contains(t, resp["message"], tc.expectedMsg)
			if tc.expectedCode != "" {
				require.Equal(t, tc.expectedCode, resp["code"])
			}
			if tc.validateData != nil {
				tc.validateData(t, resp["data"].(map[string]any))
			}
		})
	}
}

// Test RegisterAutoBidHandler
func TestRegisterAutoBidHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockBiddingServiceInterface(ctrl)
	router := newTestRouter(mockService)

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedCode   string
	}{
		{
			name:        "success",
			requestBody: helpers.AutoBidRequest{BidderID: "bob", MaxBidAmount: 1_500_000},
			mockSetup: func() {
				mockService.EXPECT().
					RegisterAutoBid(gomock.Any(), "l1", "bob", int64(1_500_000)).
					Return(bidding.AutoBidOutcome{
						Ceiling: model.AutoBidCeiling{ListingID: "l1", BidderID: "bob", MaxBidAmount: 1_500_000},
						Listing: activeListing("l1"),
						Events: []model.AutoBidEvent{{
							EventID: "e1", ListingID: "l1", BidderID: "alice", BidID: "b3", EventType: model.AutoBidPlace,
							PreviousBidderID: "bob", Amount: 1_550_000, Ceiling: 2_000_000, TriggeredAt: now,
						}},
					}, nil)
				mockService.EXPECT().MinimumNextBid(gomock.Any()).Return(int64(1_100_000))
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing_ceiling",
			requestBody:    map[string]any{"bidder_id": "bob"},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   helpers.CodeInvalidRequest,
		},
		{
			name:        "ceiling_too_low",
			requestBody: helpers.AutoBidRequest{BidderID: "carol", MaxBidAmount: 1_000_000},
			mockSetup: func() {
				mockService.EXPECT().
					RegisterAutoBid(gomock.Any(), "l1", "carol", int64(1_000_000)).
					Return(bidding.AutoBidOutcome{}, biddingerrors.ErrAutoBidCeilingTooLow)
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   helpers.CodeAutoBidCeilingTooLow,
		},
		{
			name:        "disabled",
			requestBody: helpers.AutoBidRequest{BidderID: "dave", MaxBidAmount: 1_500_000},
			mockSetup: func() {
				mockService.EXPECT().
					RegisterAutoBid(gomock.Any(), "l1", "dave", int64(1_500_000)).
					Return(bidding.AutoBidOutcome{}, biddingerrors.ErrAutoBidDisabled)
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   helpers.CodeAutoBidDisabled,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			w, resp := doRequest(t, router, http.MethodPost, "/listings/l1/auto-bids", tc.requestBody)
			require.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectedCode != "" {
				require.Equal(t, tc.expectedCode, resp["code"])
				return
			}
			data := resp["data"].(map[string]any)
			require.Equal(t, 1_500_000.0, data["ceiling"].(map[string]any)["max_bid_amount"])

			events := data["events"].([]any)
			require.Len(t, events, 1)
			ev := events[0].(map[string]any)
			require.NotContains(t, ev, "ceiling")
			require.Equal(t, "a***e", ev["bidder"])
			require.Equal(t, "b*b", ev["previous_bidder"])
		})
	}
}

// Test BuyNowHandler
func TestBuyNowHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockBiddingServiceInterface(ctrl)
	router := newTestRouter(mockService)

	mockService.EXPECT().
		BuyNow(gomock.Any(), "l1", "alice").
		Return(model.Order{OrderID: "o1", ListingID: "l1", SellerID: "seller", WinnerID: "alice", FinalPrice: 5_000_000, Status: model.OrderPendingPayment}, nil)
	w, resp := doRequest(t, router, http.MethodPost, "/listings/l1/buy-now", helpers.BuyNowRequest{BuyerID: "alice"})
	require.Equal(t, http.StatusCreated, w.Code)
	data := resp["data"].(map[string]any)
	require.Equal(t, "o1", data["order_id"])
	require.Equal(t, string(model.OrderPendingPayment), data["status"])

	mockService.EXPECT().
		BuyNow(gomock.Any(), "l1", "bob").
		Return(model.Order{}, biddingerrors.ErrBuyNowUnavailable)
	w, resp = doRequest(t, router, http.MethodPost, "/listings/l1/buy-now", helpers.BuyNowRequest{BuyerID: "bob"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, helpers.CodeBuyNowUnavailable, resp["code"])

	mockService.EXPECT().
		BuyNow(gomock.Any(), "l1", "carol").
		Return(model.Order{}, fmt.Errorf("service: listing l1 at 5000000: %w", biddingerrors.ErrBuyNowSurpassed))
	w, resp = doRequest(t, router, http.MethodPost, "/listings/l1/buy-now", helpers.BuyNowRequest{BuyerID: "carol"})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, helpers.CodeBuyNowSurpassed, resp["code"])
	require.Equal(t, "bidding already reached the buy-now price", resp["message"])

	w, _ = doRequest(t, router, http.MethodPost, "/listings/l1/buy-now", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

// Test CreateListingHandler
func TestCreateListingHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockBiddingServiceInterface(ctrl)
	router := newTestRouter(mockService)
	end := now.Add(2 * time.Hour)
	highlight := now.Add(time.Hour)

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "success",
			requestBody: map[string]any{
				"seller_id": "seller", "name": "Vintage camera", "start_price": 1_000_000,
				"price_step": 50_000, "buy_now_price": 5_000_000, "auto_extend": true, "end_at": end,
			},
			mockSetup: func() {
				mockService.EXPECT().
					CreateListing(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, in bidding.NewListing) (model.Listing, error) {
						require.Equal(t, "seller", in.SellerID)
						require.True(t, in.AutoExtend)
						require.NotNil(t, in.BuyNowPrice)
						require.Equal(t, int64(5_000_000), *in.BuyNowPrice)
						require.True(t, end.Equal(in.EndAt))
						require.True(t, in.StartAt.IsZero())
						l := activeListing("new")
						l.CurrentPrice, l.CurrentBidderID, l.BidCount = 1_000_000, "", 0
						l.HighlightUntil = &highlight
						return l, nil
					})
				mockService.EXPECT().MinimumNextBid(gomock.Any()).Return(int64(1_050_000))
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing_end",
			requestBody:    map[string]any{"seller_id": "seller", "name": "x", "start_price": 10, "price_step": 1},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   helpers.CodeInvalidRequest,
		},
		{
			name: "service_rejects",
			requestBody: map[string]any{
				"seller_id": "seller", "name": "x", "start_price": 10, "price_step": 1, "end_at": now.Add(-time.Hour),
			},
			mockSetup: func() {
				mockService.EXPECT().
					CreateListing(gomock.Any(), gomock.Any()).
					Return(model.Listing{}, biddingerrors.ErrInvalidListing)
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   helpers.CodeInvalidListing,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			w, resp := doRequest(t, router, http.MethodPost, "/listings", tc.requestBody)
			require.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectedCode != "" {
				require.Equal(t, tc.expectedCode, resp["code"])
				return
			}
			data := resp["data"].(map[string]any)
			require.Equal(t, "new", data["listing_id"])
			require.Equal(t, true, data["highlighted"])
			require.Equal(t, 1_050_000.0, data["minimum_next_bid"])
			require.NotContains(t, data, "current_bidder")
		})
	}
}

// Test GetListingHandler, GetBidsHandler and GetAutoBidEventsHandler
func TestReadHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockBiddingServiceInterface(ctrl)
	router := newTestRouter(mockService)

	t.Run("listing", func(t *testing.T) {
		mockService.EXPECT().GetListing(gomock.Any(), "l1").Return(activeListing("l1"), nil)
		mockService.EXPECT().MinimumNextBid(gomock.Any()).Return(int64(1_100_000))

		w, resp := doRequest(t, router, http.MethodGet, "/listings/l1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := resp["data"].(map[string]any)
		require.Equal(t, "a***e", data["current_bidder"])
		require.Equal(t, false, data["highlighted"])
		require.Equal(t, now.Add(time.Hour).Format(time.RFC3339), data["end_at"])
	})

	t.Run("listing_not_found", func(t *testing.T) {
		mockService.EXPECT().GetListing(gomock.Any(), "nope").Return(model.Listing{}, biddingerrors.ErrListingNotFound)

		w, resp := doRequest(t, router, http.MethodGet, "/listings/nope", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		require.Equal(t, helpers.CodeListingNotFound, resp["code"])
	})

	t.Run("bids_masked_with_limit", func(t *testing.T) {
		bids := make([]model.Bid, 5)
		for i := range bids {
			bids[i] = model.Bid{BidID: uuid.NewString(), ListingID: "l1", BidderID: fmt.Sprintf("bidder%d", i), Amount: int64(5-i) * 100, CreatedAt: now}
		}
		mockService.EXPECT().ListBids(gomock.Any(), "l1", 5).Return(bids, nil)

		w, resp := doRequest(t, router, http.MethodGet, "/listings/l1/bids?limit=5", nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := resp["data"].([]any)
		require.Len(t, data, 5)
		require.Equal(t, "b*****0", data[0].(map[string]any)["bidder"])
	})

	t.Run("bids_default_limit", func(t *testing.T) {
		mockService.EXPECT().ListBids(gomock.Any(), "l1", 0).Return(nil, nil)

		w, resp := doRequest(t, router, http.MethodGet, "/listings/l1/bids", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, resp["data"], 0)
	})

	t.Run("bids_bad_limit", func(t *testing.T) {
		w, resp := doRequest(t, router, http.MethodGet, "/listings/l1/bids?limit=abc", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, helpers.CodeInvalidRequest, resp["code"])
	})

	t.Run("auto_bid_events", func(t *testing.T) {
		mockService.EXPECT().ListAutoBidEvents(gomock.Any(), "l1").Return(nil, nil)

		w, resp := doRequest(t, router, http.MethodGet, "/listings/l1/auto-bid-events", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, resp["data"], 0)
	})

	t.Run("auto_bid_events_hide_ceiling", func(t *testing.T) {
		mockService.EXPECT().ListAutoBidEvents(gomock.Any(), "l1").Return([]model.AutoBidEvent{
			{EventID: "e1", ListingID: "l1", BidderID: "alice", BidID: "b1", EventType: model.AutoBidPlace, Amount: 1_000_000, Ceiling: 3_000_000, TriggeredAt: now},
			{EventID: "e2", ListingID: "l1", BidderID: "alice", BidID: "b3", EventType: model.AutoBidRecalculate, PreviousBidderID: "bob", Amount: 1_150_000, Ceiling: 3_000_000, TriggeredAt: now},
		}, nil)

		w, resp := doRequest(t, router, http.MethodGet, "/listings/l1/auto-bid-events", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NotContains(t, w.Body.String(), "3000000")

		data := resp["data"].([]any)
		require.Len(t, data, 2)
		for _, raw := range data {
			ev := raw.(map[string]any)
			require.NotContains(t, ev, "ceiling")
			require.NotContains(t, ev, "bidder_id")
			require.Equal(t, "a***e", ev["bidder"])
		}
		require.NotContains(t, data[0].(map[string]any), "previous_bidder")
		require.Equal(t, "b*b", data[1].(map[string]any)["previous_bidder"])
		require.Equal(t, string(model.AutoBidRecalculate), data[1].(map[string]any)["event_type"])
	})
}
