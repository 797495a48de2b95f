package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/becca-afk/first-class-perfume/internal/models"
	"github.com/becca-afk/first-class-perfume/internal/repo"
	"github.com/becca-afk/first-class-perfume/internal/transport"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func (svc *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return svc.Repo.ListProducts(ctx)
}

// UpdateStock sets or adjusts a product's stock, clamped at zero.
func (svc *CatalogService) UpdateStock(ctx context.Context, req transport.StockUpdateRequest) (int, error) {
	if req.ProductID == "" {
		return 0, fmt.Errorf("%w: productId required", ErrValidation)
	}
	if req.Stock == nil && req.Change == nil {
		return 0, fmt.Errorf("%w: stock or change required", ErrValidation)
	}
	stock, err := svc.Repo.SetStock(ctx, req.ProductID, req.Change, req.Stock)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: product %s", ErrNotFound, req.ProductID)
		}
		return 0, err
	}
	return stock, nil
}

func (svc *CatalogService) AddProduct(ctx context.Context, req transport.AddProductRequest) (*models.Product, error) {
	if req.Name == "" || req.Category == "" || req.Desc == "" || req.Price == 0 || req.Stock == nil {
		return nil, fmt.Errorf("%w: missing required fields", ErrValidation)
	}
	product := &models.Product{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Desc:     req.Desc,
		Stock:    *req.Stock,
	}
	return svc.Repo.CreateProduct(ctx, product)
}

func (svc *CatalogService) RateProduct(ctx context.Context, req transport.RatingRequest) error {
	if req.ProductID == "" || req.Stars < 1 || req.Stars > 5 {
		return fmt.Errorf("%w: productId and stars 1-5 required", ErrValidation)
	}
	return svc.Repo.UpsertRating(ctx, &models.Rating{
		ProductID: req.ProductID,
		Stars:     req.Stars,
		Review:    req.Review,
	})
}

func (svc *CatalogService) ListRatings(ctx context.Context) (map[string]models.Rating, error) {
	return svc.Repo.ListRatings(ctx)
}
