package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"auction-engine/internal/biddingerrors"
	"auction-engine/internal/events"
	model "auction-engine/internal/models"
	"auction-engine/internal/repository"
	"auction-engine/utils"
)

const maxUpdateAttempts = 3

// transitions lists the statuses each status may move to
var transitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderPendingPayment: {model.OrderProcessing, model.OrderCancelled},
	model.OrderProcessing:     {model.OrderCompleted, model.OrderCancelled},
}

// CanTransition reports whether an order may move from one status to another
func CanTransition(from, to model.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderService runs the post-auction workflow between seller and winner
type OrderService struct {
	repo      repository.OrderDB
	publisher events.Publisher
	now       func() time.Time
}

// NewOrderService creates a new OrderService instance
func NewOrderService(repo repository.OrderDB, publisher events.Publisher) *OrderService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &OrderService{repo: repo, publisher: publisher, now: time.Now}
}

// GetOrder returns an order to one of its participants
func (s *OrderService) GetOrder(ctx context.Context, orderID, userID string) (model.Order, error) {
	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return model.Order{}, fmt.Errorf("service: failed to get order %s: %w", orderID, err)
	}
	if !o.IsParticipant(userID) {
		return model.Order{}, fmt.Errorf("service: order %s: %w", orderID, biddingerrors.ErrNotOrderParticipant)
	}
	return o, nil
}

// GetOrderByListing returns the order created when a listing closed
func (s *OrderService) GetOrderByListing(ctx context.Context, listingID, userID string) (model.Order, error) {
	o, err := s.repo.GetOrderByListing(ctx, listingID)
	if err != nil {
		return model.Order{}, fmt.Errorf("service: failed to get order for listing %s: %w", listingID, err)
	}
	if !o.IsParticipant(userID) {
		return model.Order{}, fmt.Errorf("service: order %s: %w", o.OrderID, biddingerrors.ErrNotOrderParticipant)
	}
	return o, nil
}

// ListOrders returns every order where the user sold or won
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]model.Order, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - missing user", biddingerrors.ErrNotOrderParticipant)
	}
	out, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list orders for %s: %w", userID, err)
	}
	return out, nil
}

// UpdateStatus moves an order forward. Only the seller may do it.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, userID string, next model.OrderStatus) (model.Order, error) {
	return s.update(ctx, orderID, func(o *model.Order) error {
		if !o.IsParticipant(userID) {
			return biddingerrors.ErrNotOrderParticipant
		}
		if userID != o.SellerID {
			return biddingerrors.ErrSellerRequired
		}
		if !CanTransition(o.Status, next) {
			return fmt.Errorf("%w - %s to %s", biddingerrors.ErrInvalidOrderTransition, o.Status, next)
		}
		o.Status = next
		return nil
	})
}

// Cancel ends an order that has not completed yet
func (s *OrderService) Cancel(ctx context.Context, orderID, userID string) (model.Order, error) {
	return s.UpdateStatus(ctx, orderID, userID, model.OrderCancelled)
}

// PostMessage adds to the seller/winner thread, whatever the order status
func (s *OrderService) PostMessage(ctx context.Context, orderID, userID, body string) (model.OrderMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return model.OrderMessage{}, fmt.Errorf("service: %w", biddingerrors.ErrEmptyMessage)
	}
	if _, err := s.GetOrder(ctx, orderID, userID); err != nil {
		return model.OrderMessage{}, err
	}

	msg := model.OrderMessage{
		MessageID: utils.GenerateID(),
		OrderID:   orderID,
		SenderID:  userID,
		Body:      body,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.AppendOrderMessage(ctx, msg); err != nil {
		return model.OrderMessage{}, fmt.Errorf("service: failed to post message on order %s: %w", orderID, err)
	}
	return msg, nil
}

// Rate records the winner's one verdict on the seller
func (s *OrderService) Rate(ctx context.Context, orderID, userID string, score int, comment string) (model.Order, error) {
	if score != 1 && score != -1 {
		return model.Order{}, fmt.Errorf("service: %w - got %d", biddingerrors.ErrInvalidScore, score)
	}
	return s.update(ctx, orderID, func(o *model.Order) error {
		if !o.IsParticipant(userID) {
			return biddingerrors.ErrNotOrderParticipant
		}
		if userID != o.WinnerID {
			return biddingerrors.ErrWinnerRequired
		}
		if o.Status == model.OrderCancelled {
			return biddingerrors.ErrRatingNotAllowed
		}
		if o.Rating != nil {
			return biddingerrors.ErrAlreadyRated
		}
		o.Rating = &model.Rating{Score: score, Comment: strings.TrimSpace(comment), CreatedAt: s.now().UTC()}
		return nil
	})
}

// AggregateRating counts the ratings a user received as a seller
func (s *OrderService) AggregateRating(ctx context.Context, userID string) (model.RatingSummary, error) {
	sum, err := s.repo.AggregateRating(ctx, userID)
	if err != nil {
		return model.RatingSummary{}, fmt.Errorf("service: failed to aggregate ratings for %s: %w", userID, err)
	}
	return sum, nil
}

// update applies change to a fresh copy of the order and writes it back with
// a version check, re-reading on conflict
func (s *OrderService) update(ctx context.Context, orderID string, change func(o *model.Order) error) (model.Order, error) {
	for attempt := 1; ; attempt++ {
		o, err := s.repo.GetOrder(ctx, orderID)
		if err != nil {
			return model.Order{}, fmt.Errorf("service: failed to get order %s: %w", orderID, err)
		}
		before := o.Status
		if err := change(&o); err != nil {
			return model.Order{}, fmt.Errorf("service: order %s: %w", orderID, err)
		}
		o.UpdatedAt = s.now().UTC()

		saved, err := s.repo.UpdateOrder(ctx, o, o.Version)
		if errors.Is(err, biddingerrors.ErrVersionConflict) && attempt < maxUpdateAttempts {
			continue
		}
		if err != nil {
			return model.Order{}, fmt.Errorf("service: failed to update order %s: %w", orderID, err)
		}

		if saved.Status != before {
			utils.Info("Order status changed", map[string]any{
				"order_id":   saved.OrderID,
				"listing_id": saved.ListingID,
				"from":       before,
				"to":         saved.Status,
			})
			s.publisher.OrderStatusChanged(context.WithoutCancel(ctx), saved)
		}
		return saved, nil
	}
}
