package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	bidding "auction-engine/internal/biddingService"
	"auction-engine/internal/eligibility"
	"auction-engine/internal/locker"
	"auction-engine/internal/metrics"
	model "auction-engine/internal/models"
	orders "auction-engine/internal/orderService"
	"auction-engine/internal/repository"
	"auction-engine/internal/server"
	"auction-engine/services/bidding/helpers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const sellerID = "seller1"

// SetupTestRouter initializes the full stack on the in-memory repository with
// a handful of registered bidders.
func SetupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	repo := repository.NewMemoryRepo()

	directory := eligibility.NewDirectory(repo)
	for _, id := range []string{sellerID, "alice", "bob", "carol"} {
		directory.Register(model.Bidder{BidderID: id, Confirmed: true, Positive: 5})
	}
	directory.Register(model.Bidder{BidderID: "newbie", Confirmed: true})

	service := bidding.NewBiddingService(repo, directory, locker.NewLocal(time.Second))
	orderService := orders.NewOrderService(repo, nil)
	return server.SetupRouter(service, orderService, metrics.New())
}

// ExecuteRequestAndParse executes an HTTP request on the given router and
// returns the decoded envelope. For successful requests the payload is
// unwrapped from "data" when it is an object.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		require.NoError(t, err, "failed to marshal body")
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "failed to unmarshal response")
		if w.Code < http.StatusMultipleChoices {
			if data, ok := resp["data"].(map[string]any); ok {
				resp = data
			}
		}
	}
	return resp, w
}

// ExecuteRequestAndList executes a request whose payload is a JSON array
func ExecuteRequestAndList(t *testing.T, router *gin.Engine, url string) []any {
	t.Helper()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data []any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

// createListing posts a listing ending in one hour with a 1,000,000 start and 50,000 step
func createListing(t *testing.T, router *gin.Engine, listingID string, buyNow *int64) map[string]any {
	t.Helper()

	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/listings", helpers.CreateListingRequest{
		ListingID:   listingID,
		SellerID:    sellerID,
		Name:        "Vintage camera",
		StartPrice:  1_000_000,
		PriceStep:   50_000,
		BuyNowPrice: buyNow,
		EndAt:       time.Now().Add(time.Hour),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return resp
}
