package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/chalher_shop/internal/events"
	"github.com/Skotchmaster/chalher_shop/internal/models"
	"github.com/Skotchmaster/chalher_shop/internal/repo"
	"github.com/Skotchmaster/chalher_shop/pkg/logging"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
)

type CartService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *CartService) ListCartItems(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("user_session_id required: %w", ErrValidation)
	}
	return s.Repo.ListCartItems(ctx, sessionID)
}

func (s *CartService) validateLine(ctx context.Context, sessionID string, productID uuid.UUID) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("user_session_id required: %w", ErrValidation)
	}
	if productID == uuid.Nil {
		return fmt.Errorf("product_id must be not nil: %w", ErrValidation)
	}
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("unknown product %s: %w", productID, ErrValidation)
		}
		return err
	}
	return nil
}

// CreateCartItem inserts a new line. Quantity 0 is taken as 1.
func (s *CartService) CreateCartItem(ctx context.Context, item *models.CartItem) error {
	if err := s.validateLine(ctx, item.UserSessionID, item.ProductID); err != nil {
		return err
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if err := s.Repo.InsertCartItem(ctx, item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("line already exists: %w", ErrValidation)
		}
		return err
	}

	s.publish(ctx, item.UserSessionID, map[string]any{
		"type":            events.CartItemAdded,
		"user_session_id": item.UserSessionID,
		"cart_item_id":    item.ID,
		"product_id":      item.ProductID,
		"quantity":        item.Quantity,
	})
	return nil
}

// MergeCartItem adds quantity to the line with the same product and message,
// creating it when missing.
func (s *CartService) MergeCartItem(ctx context.Context, item *models.CartItem) error {
	if err := s.validateLine(ctx, item.UserSessionID, item.ProductID); err != nil {
		return err
	}
	if item.Quantity == 0 {
		return fmt.Errorf("quantity must be more than zero: %w", ErrValidation)
	}
	delta := item.Quantity
	if err := s.Repo.MergeCartLine(ctx, item); err != nil {
		return err
	}

	kind := events.CartItemAdded
	if item.Quantity > delta {
		kind = events.CartItemMerged
	}
	s.publish(ctx, item.UserSessionID, map[string]any{
		"type":            kind,
		"user_session_id": item.UserSessionID,
		"cart_item_id":    item.ID,
		"product_id":      item.ProductID,
		"quantity":        item.Quantity,
	})
	return nil
}

// UpdateQuantity sets the line's quantity. Zero or less deletes the line and
// reports deleted.
func (s *CartService) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) (item *models.CartItem, deleted bool, err error) {
	if id == uuid.Nil {
		return nil, false, fmt.Errorf("id must be not nil: %w", ErrValidation)
	}
	if quantity <= 0 {
		return nil, true, s.DeleteCartItem(ctx, id)
	}

	item, err = s.Repo.UpdateCartItemQuantity(ctx, id, uint(quantity))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("cart item not found: %w", ErrNotFound)
	}
	if err != nil {
		return nil, false, err
	}

	s.publish(ctx, item.UserSessionID, map[string]any{
		"type":            events.CartItemUpdated,
		"user_session_id": item.UserSessionID,
		"cart_item_id":    item.ID,
		"product_id":      item.ProductID,
		"quantity":        item.Quantity,
	})
	return item, false, nil
}

// DeleteCartItem removes the line. A missing line is not an error.
func (s *CartService) DeleteCartItem(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("id must be not nil: %w", ErrValidation)
	}
	item, err := s.Repo.GetCartItem(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteCartItem(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, item.UserSessionID, map[string]any{
		"type":            events.CartItemDeleted,
		"user_session_id": item.UserSessionID,
		"cart_item_id":    item.ID,
		"product_id":      item.ProductID,
	})
	return nil
}

func (s *CartService) publish(ctx context.Context, key string, event map[string]any) {
	if s.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Events.PublishEvent(ctx, events.CartTopic, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "topic", events.CartTopic, "type", event["type"], "error", err)
	}
}
