package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetrics_Exposition(t *testing.T) {
	t.Parallel()

	m := New()
	m.BidPlaced("manual")
	m.BidPlaced("auto")
	m.BidPlaced("auto")
	m.CascadeSettled(2)
	m.AuctionClosed("expired", false)
	m.LockWaited(3 * time.Millisecond)
	m.APIError("BID_TOO_LOW")
	m.ObserveHTTP("POST", "/listings/:listing_id/bids", "200", 10*time.Millisecond)

	body := scrape(t, m)
	require.Contains(t, body, `auction_bids_placed_total{kind="manual"} 1`)
	require.Contains(t, body, `auction_bids_placed_total{kind="auto"} 2`)
	require.Contains(t, body, `auction_auctions_closed_total{outcome="unsold",reason="expired"} 1`)
	require.Contains(t, body, `auction_api_errors_total{code="BID_TOO_LOW"} 1`)
	require.Contains(t, body, "auction_cascade_iterations_count 1")
	require.Contains(t, body, "auction_listing_lock_wait_seconds_count 1")
	require.Contains(t, body, "go_goroutines")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics
	require.NotPanics(t, func() {
		m.BidPlaced("manual")
		m.CascadeSettled(1)
		m.AuctionClosed("buy_now", true)
		m.LockWaited(time.Second)
		m.APIError("X")
		m.ObserveHTTP("GET", "/", "200", time.Second)
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
