package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bidding "auction-engine/internal/biddingService"
	"auction-engine/internal/biddingerrors"
	"auction-engine/internal/config"
	"auction-engine/internal/eligibility"
	"auction-engine/internal/events"
	"auction-engine/internal/locker"
	"auction-engine/internal/metrics"
	model "auction-engine/internal/models"
	orders "auction-engine/internal/orderService"
	"auction-engine/internal/repository"
	"auction-engine/internal/server"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// store is what the services need from a backend
type store interface {
	repository.AuctionDB
	repository.OrderDB
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	utils.SetLevel(cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		utils.Fatal("Auction server stopped with error", map[string]any{"error": err.Error()})
	}
	utils.Info("Auction server stopped", nil)
}

func run(ctx context.Context, cfg config.Config) error {
	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				utils.Warn("Failed to release resource", map[string]any{"error": err.Error()})
			}
		}
	}()

	repo, closeRepo, err := openStore(cfg)
	if err != nil {
		return err
	}
	closers = append(closers, closeRepo)

	locks, closeLocks, err := openLocker(ctx, cfg)
	if err != nil {
		return err
	}
	closers = append(closers, closeLocks)

	sink, closeSink, err := openSink(cfg)
	if err != nil {
		return err
	}
	closers = append(closers, closeSink)

	var publisher events.Publisher = events.Nop{}
	if sink != nil {
		publisher = events.NewBus(sink)
	}

	m := metrics.New()
	directory := eligibility.NewDirectory(repo)

	biddingSvc := bidding.NewBiddingService(repo, directory, locks,
		bidding.WithSettings(bidding.Settings{
			AutoExtendWindow:       cfg.AutoExtendWindow,
			AutoExtendMargin:       cfg.AutoExtendMargin,
			OpeningBidAtStartPrice: cfg.OpeningBidAtStartPrice,
			MinBidderRatingPercent: cfg.MinBidderRatingPercent,
			MaxCascadeIterations:   cfg.MaxCascadeIterations,
			MaxConflictRetries:     cfg.MaxConflictRetries,
			HighlightNewDuration:   cfg.HighlightNewDuration,
		}),
		bidding.WithPublisher(publisher),
		bidding.WithMetrics(m),
	)
	orderSvc := orders.NewOrderService(repo, publisher)

	if cfg.SeedDemoData {
		if err := seedDemoData(ctx, biddingSvc, directory); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.SetupRouter(biddingSvc, orderSvc, m),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		utils.Info("Starting auction server", map[string]any{
			"addr":   cfg.HTTPAddr,
			"store":  cfg.StoreDriver,
			"locks":  cfg.LockDriver,
			"events": cfg.EventsDriver,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if cfg.FinalizerEnabled {
		g.Go(func() error {
			return bidding.NewFinalizer(biddingSvc, cfg.FinalizeInterval).Run(gctx)
		})
	}

	return g.Wait()
}

func openStore(cfg config.Config) (store, func() error, error) {
	switch cfg.StoreDriver {
	case "sqlite":
		repo, err := repository.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	default:
		return repository.NewMemoryRepo(), func() error { return nil }, nil
	}
}

func openLocker(ctx context.Context, cfg config.Config) (locker.Locker, func() error, error) {
	if cfg.LockDriver != "redis" {
		return locker.NewLocal(cfg.LockTimeout), func() error { return nil }, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}
	return locker.NewRedis(client, locker.RedisOptions{
		LeaseTTL: cfg.LockLeaseTTL,
		Timeout:  cfg.LockTimeout,
	}), client.Close, nil
}

func openSink(cfg config.Config) (events.Sink, func() error, error) {
	noop := func() error { return nil }
	switch cfg.EventsDriver {
	case "none":
		return nil, noop, nil
	case "nats":
		conn, err := events.ConnectNATS(cfg.NATSURL)
		if err != nil {
			return nil, nil, err
		}
		sink, err := events.NewNATSSink(conn)
		if err != nil {
			conn.Close()
			return nil, nil, err
		}
		return sink, sink.Close, nil
	case "kafka":
		sink := events.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		return sink, sink.Close, nil
	default:
		return events.LogSink{}, noop, nil
	}
}

// seedDemoData registers sample bidders and opens a few listings for local runs
func seedDemoData(ctx context.Context, svc *bidding.BiddingService, dir *eligibility.Directory) error {
	bidders := []model.Bidder{
		{BidderID: "seller1", Confirmed: true, Positive: 12},
		{BidderID: "alice", Confirmed: true, Positive: 8, Negative: 1},
		{BidderID: "bob", Confirmed: true, Positive: 5},
		{BidderID: "carol", Confirmed: true, Positive: 3},
		{BidderID: "newbie", Confirmed: true},
	}
	for _, b := range bidders {
		dir.Register(b)
	}

	buyNow := int64(5_000_000)
	end := time.Now().Add(24 * time.Hour)
	listings := []bidding.NewListing{
		{ListingID: "listing1", SellerID: "seller1", Name: "Vintage camera", StartPrice: 1_000_000, PriceStep: 50_000, EndAt: end, AutoExtend: true},
		{ListingID: "listing2", SellerID: "seller1", Name: "Mechanical watch", StartPrice: 2_000_000, PriceStep: 100_000, BuyNowPrice: &buyNow, EndAt: end},
		{ListingID: "listing3", SellerID: "seller1", Name: "First edition novel", StartPrice: 150_000, PriceStep: 10_000, AllowUnratedBidders: true, EndAt: end},
	}
	for _, in := range listings {
		if _, err := svc.CreateListing(ctx, in); err != nil && !errors.Is(err, biddingerrors.ErrListingExists) {
			return fmt.Errorf("seed listing %s: %w", in.ListingID, err)
		}
	}
	utils.Info("Seeded demo data", map[string]any{"bidders": len(bidders), "listings": len(listings)})
	return nil
}
