package repo

import (
	"context"

	"github.com/becca-afk/first-class-perfume/internal/models"
	"gorm.io/gorm/clause"
)

// UpsertRating stores the latest rating for a product, replacing any
// previous one.
func (r *GormRepo) UpsertRating(ctx context.Context, rating *models.Rating) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			UpdateAll: true,
		}).
		Create(rating).Error
}

func (r *GormRepo) ListRatings(ctx context.Context) (map[string]models.Rating, error) {
	var ratings []models.Rating
	if err := r.DB.WithContext(ctx).Find(&ratings).Error; err != nil {
		return nil, err
	}
	out := make(map[string]models.Rating, len(ratings))
	for _, rt := range ratings {
		out[rt.ProductID] = rt
	}
	return out, nil
}
