package bidding

import (
	"context"
	"sync"
	"testing"
	"time"

	"auction-engine/internal/eligibility"
	"auction-engine/internal/locker"
	model "auction-engine/internal/models"
	"auction-engine/internal/repository"

	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingPublisher struct {
	mu       sync.Mutex
	autoBids []model.AutoBidEvent
	orders   []model.Order
}

func (p *recordingPublisher) AutoBidTriggered(_ context.Context, e model.AutoBidEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.autoBids = append(p.autoBids, e)
}

func (p *recordingPublisher) OrderCreated(_ context.Context, o model.Order) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orders = append(p.orders, o)
}

func (p *recordingPublisher) OrderStatusChanged(context.Context, model.Order) {}

func (p *recordingPublisher) counts() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.autoBids), len(p.orders)
}

type harness struct {
	repo  *repository.MemoryRepo
	dir   *eligibility.Directory
	locks *locker.Local
	clock *fakeClock
	pub   *recordingPublisher
	svc   *BiddingService
}

const (
	startPrice = int64(1_000_000)
	priceStep  = int64(50_000)
	sellerID   = "seller"
)

// newHarness wires the engine on the in-memory store with a controllable clock
func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()

	repo := repository.NewMemoryRepo()
	dir := eligibility.NewDirectory(repo)
	for _, id := range []string{sellerID, "alice", "bob", "carol", "dave", "erin"} {
		dir.Register(model.Bidder{BidderID: id, Confirmed: true, Positive: 5})
	}
	dir.Register(model.Bidder{BidderID: "newbie", Confirmed: true})
	dir.Register(model.Bidder{BidderID: "unconfirmed", Positive: 5})
	dir.Register(model.Bidder{BidderID: "grumpy", Confirmed: true, Positive: 1, Negative: 1})

	h := &harness{
		repo:  repo,
		dir:   dir,
		locks: locker.NewLocal(time.Second),
		clock: &fakeClock{now: base},
		pub:   &recordingPublisher{},
	}
	all := append([]Option{WithClock(h.clock), WithPublisher(h.pub)}, opts...)
	h.svc = NewBiddingService(repo, dir, h.locks, all...)
	return h
}

// listing creates an ACTIVE listing starting at 1,000,000 with a 50,000 step, ending in one hour
func (h *harness) listing(t *testing.T, mods ...func(*NewListing)) model.Listing {
	t.Helper()
	in := NewListing{
		SellerID:   sellerID,
		Name:       "Vintage camera",
		StartPrice: startPrice,
		PriceStep:  priceStep,
		EndAt:      base.Add(time.Hour),
	}
	for _, m := range mods {
		m(&in)
	}
	l, err := h.svc.CreateListing(context.Background(), in)
	require.NoError(t, err)
	return l
}

// seedCeiling stores a ceiling without running the cascade
func (h *harness) seedCeiling(t *testing.T, listingID, bidderID string, maxAmount int64, at time.Time) {
	t.Helper()
	ctx := context.Background()
	l, err := h.repo.GetListing(ctx, listingID)
	require.NoError(t, err)
	_, err = h.repo.CommitListing(ctx, repository.Mutation{
		Listing:         l,
		ExpectedVersion: l.Version,
		Ceiling:         &model.AutoBidCeiling{ListingID: listingID, BidderID: bidderID, MaxBidAmount: maxAmount, CreatedAt: at, UpdatedAt: at},
	})
	require.NoError(t, err)
}

func (h *harness) stored(t *testing.T, listingID string) model.Listing {
	t.Helper()
	l, err := h.repo.GetListing(context.Background(), listingID)
	require.NoError(t, err)
	return l
}

func (h *harness) ledger(t *testing.T, listingID string) []model.Bid {
	t.Helper()
	bids, err := h.repo.GetBidsByListing(context.Background(), listingID, 0)
	require.NoError(t, err)
	// oldest first reads better in assertions
	for i, j := 0, len(bids)-1; i < j; i, j = i+1, j-1 {
		bids[i], bids[j] = bids[j], bids[i]
	}
	return bids
}

func withBuyNow(price int64) func(*NewListing) {
	return func(in *NewListing) { in.BuyNowPrice = &price }
}

func amounts(bids []model.Bid) []int64 {
	out := make([]int64, 0, len(bids))
	for _, b := range bids {
		out = append(out, b.Amount)
	}
	return out
}
