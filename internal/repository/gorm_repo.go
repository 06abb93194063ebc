package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-engine/internal/biddingerrors"
	model "auction-engine/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type listingRow struct {
	ID                  string `gorm:"primaryKey;size:64"`
	SellerID            string `gorm:"size:64;not null;index"`
	Name                string `gorm:"size:255"`
	Description         string
	StartPrice          int64 `gorm:"not null"`
	PriceStep           int64 `gorm:"not null"`
	CurrentPrice        int64 `gorm:"not null"`
	BuyNowPrice         *int64
	CurrentBidderID     string `gorm:"size:64"`
	BidCount            int64  `gorm:"not null;default:0"`
	AutoExtend          bool   `gorm:"not null;default:false"`
	AllowUnratedBidders bool   `gorm:"not null;default:false"`
	AutoBidDisabled     bool   `gorm:"not null;default:false"`
	HighlightUntil      *time.Time
	Status              string    `gorm:"size:16;not null;index:idx_listings_status_end"`
	StartAt             time.Time `gorm:"not null"`
	EndAt               time.Time `gorm:"not null;index:idx_listings_status_end"`
	Version             int64     `gorm:"not null;default:0"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (listingRow) TableName() string { return "listings" }

type bidRow struct {
	ID        string    `gorm:"primaryKey;size:64"`
	ListingID string    `gorm:"size:64;not null;index:idx_bids_listing_created"`
	BidderID  string    `gorm:"size:64;not null;index"`
	Amount    int64     `gorm:"not null"`
	IsAuto    bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null;index:idx_bids_listing_created"`
}

func (bidRow) TableName() string { return "bids" }

type ceilingRow struct {
	ListingID    string `gorm:"primaryKey;size:64"`
	BidderID     string `gorm:"primaryKey;size:64"`
	MaxBidAmount int64  `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ceilingRow) TableName() string { return "auto_bids" }

type autoBidEventRow struct {
	ID               string    `gorm:"primaryKey;size:64"`
	Seq              int64     `gorm:"not null;index"`
	ListingID        string    `gorm:"size:64;not null;index:idx_events_listing_triggered"`
	BidderID         string    `gorm:"size:64;not null"`
	BidID            string    `gorm:"size:64"`
	EventType        string    `gorm:"size:16;not null"`
	PreviousBidderID string    `gorm:"size:64"`
	Amount           int64     `gorm:"not null"`
	Ceiling          int64     `gorm:"not null"`
	TriggeredAt      time.Time `gorm:"not null;index:idx_events_listing_triggered"`
}

func (autoBidEventRow) TableName() string { return "auto_bid_events" }

type orderRow struct {
	ID            string `gorm:"primaryKey;size:64"`
	ListingID     string `gorm:"size:64;not null;uniqueIndex"`
	SellerID      string `gorm:"size:64;not null;index"`
	WinnerID      string `gorm:"size:64;not null;index"`
	FinalPrice    int64  `gorm:"not null"`
	Status        string `gorm:"size:32;not null"`
	RatingScore   *int
	RatingComment string
	RatedAt       *time.Time
	Version       int64 `gorm:"not null;default:1"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (orderRow) TableName() string { return "orders" }

type orderMessageRow struct {
	ID        string    `gorm:"primaryKey;size:64"`
	OrderID   string    `gorm:"size:64;not null;index:idx_messages_order_created"`
	SenderID  string    `gorm:"size:64;not null"`
	Body      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;index:idx_messages_order_created"`
}

func (orderMessageRow) TableName() string { return "order_messages" }

// GormRepo is a SQL-backed implementation of AuctionDB and OrderDB
type GormRepo struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) a SQLite database file and migrates the schema
func OpenSQLite(path string) (*GormRepo, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("repository: open sqlite %s: %w", path, err)
	}
	return NewGormRepo(db)
}

// NewGormRepo wraps an open gorm connection and migrates the schema
func NewGormRepo(db *gorm.DB) (*GormRepo, error) {
	if err := db.AutoMigrate(
		&listingRow{},
		&bidRow{},
		&ceilingRow{},
		&autoBidEventRow{},
		&orderRow{},
		&orderMessageRow{},
	); err != nil {
		return nil, fmt.Errorf("repository: migrate: %w", err)
	}
	return &GormRepo{db: db}, nil
}

// Close releases the connection pool
func (r *GormRepo) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("repository: close: %w", err)
	}
	return sqlDB.Close()
}

// CreateListing stores a new listing
func (r *GormRepo) CreateListing(ctx context.Context, listing model.Listing) error {
	if listing.ListingID == "" {
		return fmt.Errorf("repository: create listing: %w", biddingerrors.ErrInvalidListing)
	}
	row := toListingRow(listing)
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if res.Error != nil {
		return fmt.Errorf("repository: create listing %s: %w", listing.ListingID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("repository: create listing %s: %w", listing.ListingID, biddingerrors.ErrListingExists)
	}
	return nil
}

// GetListing returns the stored state of a listing
func (r *GormRepo) GetListing(ctx context.Context, listingID string) (model.Listing, error) {
	return r.getListing(r.db.WithContext(ctx), listingID)
}

func (r *GormRepo) getListing(tx *gorm.DB, listingID string) (model.Listing, error) {
	var row listingRow
	if err := tx.First(&row, "id = ?", listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Listing{}, fmt.Errorf("repository: get listing %s: %w", listingID, biddingerrors.ErrListingNotFound)
		}
		return model.Listing{}, fmt.Errorf("repository: get listing %s: %w", listingID, err)
	}
	return row.toModel(), nil
}

// ListActiveExpired returns ids of ACTIVE listings whose end time is at or before now
func (r *GormRepo) ListActiveExpired(ctx context.Context, now time.Time) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&listingRow{}).
		Where("status = ? AND end_at <= ?", string(model.ListingActive), now).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("repository: list expired listings: %w", err)
	}
	return ids, nil
}

// GetCeilings returns every standing auto-bid ceiling of a listing
func (r *GormRepo) GetCeilings(ctx context.Context, listingID string) ([]model.AutoBidCeiling, error) {
	var rows []ceilingRow
	if err := r.db.WithContext(ctx).Where("listing_id = ?", listingID).Order("bidder_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("repository: get ceilings for listing %s: %w", listingID, err)
	}
	out := make([]model.AutoBidCeiling, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.AutoBidCeiling{
			ListingID:    row.ListingID,
			BidderID:     row.BidderID,
			MaxBidAmount: row.MaxBidAmount,
			CreatedAt:    row.CreatedAt,
			UpdatedAt:    row.UpdatedAt,
		})
	}
	return out, nil
}

// GetBidsByListing returns the ledger newest first; limit <= 0 returns everything.
// Amounts strictly increase along a listing's ledger, so amount breaks timestamp ties.
func (r *GormRepo) GetBidsByListing(ctx context.Context, listingID string, limit int) ([]model.Bid, error) {
	q := r.db.WithContext(ctx).Where("listing_id = ?", listingID).Order("created_at DESC, amount DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []bidRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("repository: get bids for listing %s: %w", listingID, err)
	}
	out := make([]model.Bid, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.Bid{
			BidID:     row.ID,
			ListingID: row.ListingID,
			BidderID:  row.BidderID,
			Amount:    row.Amount,
			IsAuto:    row.IsAuto,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

// GetAutoBidEvents returns the audit log of a listing in commit order
func (r *GormRepo) GetAutoBidEvents(ctx context.Context, listingID string) ([]model.AutoBidEvent, error) {
	var rows []autoBidEventRow
	if err := r.db.WithContext(ctx).Where("listing_id = ?", listingID).Order("seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("repository: get auto-bid events for listing %s: %w", listingID, err)
	}
	out := make([]model.AutoBidEvent, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.AutoBidEvent{
			EventID:          row.ID,
			ListingID:        row.ListingID,
			BidderID:         row.BidderID,
			BidID:            row.BidID,
			EventType:        model.AutoBidEventType(row.EventType),
			PreviousBidderID: row.PreviousBidderID,
			Amount:           row.Amount,
			Ceiling:          row.Ceiling,
			TriggeredAt:      row.TriggeredAt,
		})
	}
	return out, nil
}

// CommitListing applies a mutation in one SQL transaction guarded by the listing version
func (r *GormRepo) CommitListing(ctx context.Context, m Mutation) (model.Listing, error) {
	id := m.Listing.ListingID
	var committed model.Listing

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		l := m.Listing
		res := tx.Model(&listingRow{}).
			Where("id = ? AND version = ?", id, m.ExpectedVersion).
			Updates(map[string]any{
				"current_price":     l.CurrentPrice,
				"current_bidder_id": l.CurrentBidderID,
				"bid_count":         l.BidCount,
				"status":            string(l.Status),
				"end_at":            l.EndAt,
				"version":           m.ExpectedVersion + 1,
				"updated_at":        l.UpdatedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if _, err := r.getListing(tx, id); err != nil {
				return err
			}
			return biddingerrors.ErrVersionConflict
		}

		if len(m.Bids) > 0 {
			rows := make([]bidRow, 0, len(m.Bids))
			for _, b := range m.Bids {
				rows = append(rows, bidRow{
					ID:        b.BidID,
					ListingID: b.ListingID,
					BidderID:  b.BidderID,
					Amount:    b.Amount,
					IsAuto:    b.IsAuto,
					CreatedAt: b.CreatedAt,
				})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}

		if len(m.Events) > 0 {
			var seq int64
			if err := tx.Model(&autoBidEventRow{}).Where("listing_id = ?", id).
				Select("COALESCE(MAX(seq), 0)").Scan(&seq).Error; err != nil {
				return err
			}
			rows := make([]autoBidEventRow, 0, len(m.Events))
			for _, e := range m.Events {
				seq++
				rows = append(rows, autoBidEventRow{
					ID:               e.EventID,
					Seq:              seq,
					ListingID:        e.ListingID,
					BidderID:         e.BidderID,
					BidID:            e.BidID,
					EventType:        string(e.EventType),
					PreviousBidderID: e.PreviousBidderID,
					Amount:           e.Amount,
					Ceiling:          e.Ceiling,
					TriggeredAt:      e.TriggeredAt,
				})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}

		if c := m.Ceiling; c != nil {
			row := ceilingRow{
				ListingID:    c.ListingID,
				BidderID:     c.BidderID,
				MaxBidAmount: c.MaxBidAmount,
				CreatedAt:    c.CreatedAt,
				UpdatedAt:    c.UpdatedAt,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "listing_id"}, {Name: "bidder_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"max_bid_amount", "updated_at"}),
			}).Create(&row).Error; err != nil {
				return err
			}
		}

		if o := m.Order; o != nil {
			var existing int64
			if err := tx.Model(&orderRow{}).Where("listing_id = ?", id).Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				return biddingerrors.ErrOrderExists
			}
			row := toOrderRow(*o)
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		var err error
		committed, err = r.getListing(tx, id)
		return err
	})
	if err != nil {
		return model.Listing{}, fmt.Errorf("repository: commit listing %s: %w", id, err)
	}
	return committed, nil
}

// GetOrder returns an order with its message thread
func (r *GormRepo) GetOrder(ctx context.Context, orderID string) (model.Order, error) {
	return r.findOrder(ctx, "id = ?", orderID)
}

// GetOrderByListing returns the order materialized for a listing
func (r *GormRepo) GetOrderByListing(ctx context.Context, listingID string) (model.Order, error) {
	return r.findOrder(ctx, "listing_id = ?", listingID)
}

func (r *GormRepo) findOrder(ctx context.Context, query string, arg string) (model.Order, error) {
	db := r.db.WithContext(ctx)
	var row orderRow
	if err := db.Where(query, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Order{}, fmt.Errorf("repository: get order %s: %w", arg, biddingerrors.ErrOrderNotFound)
		}
		return model.Order{}, fmt.Errorf("repository: get order %s: %w", arg, err)
	}

	var msgs []orderMessageRow
	if err := db.Where("order_id = ?", row.ID).Order("created_at, id").Find(&msgs).Error; err != nil {
		return model.Order{}, fmt.Errorf("repository: get messages for order %s: %w", row.ID, err)
	}
	return row.toModel(msgs), nil
}

// ListOrdersByUser returns orders where the user is seller or winner, newest first
func (r *GormRepo) ListOrdersByUser(ctx context.Context, userID string) ([]model.Order, error) {
	var rows []orderRow
	err := r.db.WithContext(ctx).
		Where("seller_id = ? OR winner_id = ?", userID, userID).
		Order("created_at DESC, id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("repository: list orders for user %s: %w", userID, err)
	}
	out := make([]model.Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel(nil))
	}
	return out, nil
}

// UpdateOrder persists status and rating changes if the stored version still matches
func (r *GormRepo) UpdateOrder(ctx context.Context, order model.Order, expectedVersion int64) (model.Order, error) {
	updates := map[string]any{
		"status":     string(order.Status),
		"version":    expectedVersion + 1,
		"updated_at": order.UpdatedAt,
	}
	if order.Rating != nil {
		score := order.Rating.Score
		ratedAt := order.Rating.CreatedAt
		updates["rating_score"] = &score
		updates["rating_comment"] = order.Rating.Comment
		updates["rated_at"] = &ratedAt
	}

	res := r.db.WithContext(ctx).Model(&orderRow{}).
		Where("id = ? AND version = ?", order.OrderID, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return model.Order{}, fmt.Errorf("repository: update order %s: %w", order.OrderID, res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetOrder(ctx, order.OrderID); err != nil {
			return model.Order{}, err
		}
		return model.Order{}, fmt.Errorf("repository: update order %s: %w", order.OrderID, biddingerrors.ErrVersionConflict)
	}
	return r.GetOrder(ctx, order.OrderID)
}

// AppendOrderMessage adds a message to an order thread
func (r *GormRepo) AppendOrderMessage(ctx context.Context, msg model.OrderMessage) error {
	db := r.db.WithContext(ctx)
	var count int64
	if err := db.Model(&orderRow{}).Where("id = ?", msg.OrderID).Count(&count).Error; err != nil {
		return fmt.Errorf("repository: append message to order %s: %w", msg.OrderID, err)
	}
	if count == 0 {
		return fmt.Errorf("repository: append message to order %s: %w", msg.OrderID, biddingerrors.ErrOrderNotFound)
	}
	row := orderMessageRow{
		ID:        msg.MessageID,
		OrderID:   msg.OrderID,
		SenderID:  msg.SenderID,
		Body:      msg.Body,
		CreatedAt: msg.CreatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return fmt.Errorf("repository: append message to order %s: %w", msg.OrderID, err)
	}
	return nil
}

// AggregateRating counts the ratings a user received as a seller
func (r *GormRepo) AggregateRating(ctx context.Context, userID string) (model.RatingSummary, error) {
	var out struct {
		Positive int
		Negative int
	}
	err := r.db.WithContext(ctx).Model(&orderRow{}).
		Select("COALESCE(SUM(CASE WHEN rating_score > 0 THEN 1 ELSE 0 END), 0) AS positive, "+
			"COALESCE(SUM(CASE WHEN rating_score < 0 THEN 1 ELSE 0 END), 0) AS negative").
		Where("seller_id = ? AND rating_score IS NOT NULL", userID).
		Scan(&out).Error
	if err != nil {
		return model.RatingSummary{}, fmt.Errorf("repository: aggregate rating for user %s: %w", userID, err)
	}
	return model.RatingSummary{Positive: out.Positive, Negative: out.Negative}, nil
}

func toListingRow(l model.Listing) listingRow {
	return listingRow{
		ID:                  l.ListingID,
		SellerID:            l.SellerID,
		Name:                l.Name,
		Description:         l.Description,
		StartPrice:          l.StartPrice,
		PriceStep:           l.PriceStep,
		CurrentPrice:        l.CurrentPrice,
		BuyNowPrice:         l.BuyNowPrice,
		CurrentBidderID:     l.CurrentBidderID,
		BidCount:            l.BidCount,
		AutoExtend:          l.AutoExtend,
		AllowUnratedBidders: l.AllowUnratedBidders,
		AutoBidDisabled:     l.AutoBidDisabled,
		HighlightUntil:      l.HighlightUntil,
		Status:              string(l.Status),
		StartAt:             l.StartAt,
		EndAt:               l.EndAt,
		Version:             l.Version,
		CreatedAt:           l.CreatedAt,
		UpdatedAt:           l.UpdatedAt,
	}
}

func (row listingRow) toModel() model.Listing {
	return model.Listing{
		ListingID:           row.ID,
		SellerID:            row.SellerID,
		Name:                row.Name,
		Description:         row.Description,
		StartPrice:          row.StartPrice,
		PriceStep:           row.PriceStep,
		CurrentPrice:        row.CurrentPrice,
		BuyNowPrice:         row.BuyNowPrice,
		CurrentBidderID:     row.CurrentBidderID,
		BidCount:            row.BidCount,
		AutoExtend:          row.AutoExtend,
		AllowUnratedBidders: row.AllowUnratedBidders,
		AutoBidDisabled:     row.AutoBidDisabled,
		HighlightUntil:      row.HighlightUntil,
		Status:              model.ListingStatus(row.Status),
		StartAt:             row.StartAt,
		EndAt:               row.EndAt,
		Version:             row.Version,
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}
}

func toOrderRow(o model.Order) orderRow {
	row := orderRow{
		ID:         o.OrderID,
		ListingID:  o.ListingID,
		SellerID:   o.SellerID,
		WinnerID:   o.WinnerID,
		FinalPrice: o.FinalPrice,
		Status:     string(o.Status),
		Version:    o.Version,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	if o.Rating != nil {
		score := o.Rating.Score
		ratedAt := o.Rating.CreatedAt
		row.RatingScore = &score
		row.RatingComment = o.Rating.Comment
		row.RatedAt = &ratedAt
	}
	return row
}

func (row orderRow) toModel(msgs []orderMessageRow) model.Order {
	o := model.Order{
		OrderID:    row.ID,
		ListingID:  row.ListingID,
		SellerID:   row.SellerID,
		WinnerID:   row.WinnerID,
		FinalPrice: row.FinalPrice,
		Status:     model.OrderStatus(row.Status),
		Messages:   make([]model.OrderMessage, 0, len(msgs)),
		Version:    row.Version,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
	if row.RatingScore != nil {
		r := &model.Rating{Score: *row.RatingScore, Comment: row.RatingComment}
		if row.RatedAt != nil {
			r.CreatedAt = *row.RatedAt
		}
		o.Rating = r
	}
	for _, m := range msgs {
		o.Messages = append(o.Messages, model.OrderMessage{
			MessageID: m.ID,
			OrderID:   m.OrderID,
			SenderID:  m.SenderID,
			Body:      m.Body,
			CreatedAt: m.CreatedAt,
		})
	}
	return o
}
