package repo

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/becca-afk/first-class-perfume/internal/models"
	"gorm.io/gorm"
)

// maxIDAttempts bounds the collision-retry loop; with 900k possible ids the
// bound is only reachable when the store is nearly full.
const maxIDAttempts = 100

func randomOrderID() uint {
	return uint(100000 + rand.Intn(900000))
}

// CreateOrder allocates a 6-digit id not present in the store, forces the
// initial pending status and persists the order with its items.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	order.Status = models.OrderStatusPending

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for attempt := 0; ; attempt++ {
			if attempt >= maxIDAttempts {
				return fmt.Errorf("order id space exhausted after %d attempts", attempt)
			}
			id := randomOrderID()
			var count int64
			if err := tx.Model(&models.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				order.ID = id
				break
			}
		}
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrder merges patch columns into the order and returns the fresh
// record. gorm refreshes updated_at as part of Updates.
func (r *GormRepo) UpdateOrder(ctx context.Context, id uint, patch map[string]any) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).Where("id = ?", id).Updates(patch)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Preload("Items").First(&order, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrdersByPhone(ctx context.Context, phone string) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("phone = ?", phone).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// OrderByCheckoutRequest resolves the provider's CheckoutRequestID back to
// the order the prompt was raised for.
func (r *GormRepo) OrderByCheckoutRequest(ctx context.Context, checkoutRequestID string) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).
		Preload("Items").
		First(&order, "checkout_request_id = ?", checkoutRequestID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}
