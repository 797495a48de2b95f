package repo

import (
	"context"
	"strconv"
	"strings"

	"github.com/becca-afk/first-class-perfume/internal/models"
	"gorm.io/gorm"
)

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.DB.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := r.DB.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// SetStock applies either an absolute stock value or a relative change,
// clamping the result at zero. Absolute wins when both are given.
func (r *GormRepo) SetStock(ctx context.Context, productID string, change, stock *int) (int, error) {
	var result int
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Product
		if err := tx.First(&p, "id = ?", productID).Error; err != nil {
			return err
		}
		switch {
		case stock != nil:
			p.Stock = *stock
		case change != nil:
			p.Stock += *change
		}
		if p.Stock < 0 {
			p.Stock = 0
		}
		result = p.Stock
		return tx.Model(&p).Update("stock", p.Stock).Error
	})
	if err != nil {
		return 0, err
	}
	return result, nil
}

// CreateProduct assigns the next category-prefixed id (w<N> or m<N>) and
// inserts the product.
func (r *GormRepo) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	prefix := "m"
	if p.Category == "women" {
		prefix = "w"
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&models.Product{}).
			Where("id LIKE ?", prefix+"%").
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		next := 1
		for _, id := range ids {
			n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
			if err != nil {
				continue
			}
			if n >= next {
				next = n + 1
			}
		}
		p.ID = prefix + strconv.Itoa(next)
		return tx.Create(p).Error
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}
