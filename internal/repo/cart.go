package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/chalher_shop/internal/models"
)

func (r *GormRepo) ListCartItems(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("user_session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) InsertCartItem(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Create(item).Error
}

// MergeCartLine adds item.Quantity to the line keyed by (session, product,
// message) or creates the line. item is overwritten with the stored row.
func (r *GormRepo) MergeCartLine(ctx context.Context, item *models.CartItem) error {
	err := r.mergeOnce(ctx, item)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// lost the insert race to a concurrent merge; the line exists now
		return r.mergeOnce(ctx, item)
	}
	return err
}

func (r *GormRepo) mergeOnce(ctx context.Context, item *models.CartItem) error {
	key := models.MessageKey(item.Message)
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("user_session_id = ? AND product_id = ? AND message_key = ?", item.UserSessionID, item.ProductID, key).
			UpdateColumns(map[string]any{
				"quantity":   gorm.Expr("quantity + ?", item.Quantity),
				"updated_at": time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			// item may carry an ID from a failed create; look the line up by key only
			var stored models.CartItem
			if err := tx.Where("user_session_id = ? AND product_id = ? AND message_key = ?", item.UserSessionID, item.ProductID, key).
				First(&stored).Error; err != nil {
				return err
			}
			*item = stored
			return nil
		}
		return tx.Create(item).Error
	})
}

func (r *GormRepo) UpdateCartItemQuantity(ctx context.Context, id uuid.UUID, quantity uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("id = ?", id).
			UpdateColumns(map[string]any{
				"quantity":   quantity,
				"updated_at": time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&item, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteCartItem removes the line. A missing line is not an error.
func (r *GormRepo) DeleteCartItem(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.CartItem{}).Error
}

func (r *GormRepo) GetCartItem(ctx context.Context, id uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}
