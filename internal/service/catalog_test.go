package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/becca-afk/first-class-perfume/internal/models"
	"github.com/becca-afk/first-class-perfume/internal/transport"
)

func intp(v int) *int { return &v }

func newTestCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	return &CatalogService{Repo: newTestRepo(t)}
}

func seedProduct(t *testing.T, svc *CatalogService, p models.Product) models.Product {
	t.Helper()
	require.NoError(t, svc.Repo.DB.Create(&p).Error)
	return p
}

func TestUpdateStock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		start int
		req   transport.StockUpdateRequest
		want  int
	}{
		{name: "absolute set", start: 5, req: transport.StockUpdateRequest{Stock: intp(12)}, want: 12},
		{name: "absolute clamps at zero", start: 5, req: transport.StockUpdateRequest{Stock: intp(-3)}, want: 0},
		{name: "relative increment", start: 5, req: transport.StockUpdateRequest{Change: intp(2)}, want: 7},
		{name: "relative decrement clamps at zero", start: 1, req: transport.StockUpdateRequest{Change: intp(-4)}, want: 0},
		{name: "absolute wins over relative", start: 5, req: transport.StockUpdateRequest{Stock: intp(9), Change: intp(100)}, want: 9},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := newTestCatalogService(t)
			p := seedProduct(t, svc, models.Product{
				ID: "w1", Name: "Chanel No. 5", Price: 8500, Category: "women", Stock: tt.start,
			})

			tt.req.ProductID = p.ID
			got, err := svc.UpdateStock(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUpdateStock_Errors(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()

	_, err := svc.UpdateStock(ctx, transport.StockUpdateRequest{ProductID: "w99", Stock: intp(1)})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateStock(ctx, transport.StockUpdateRequest{ProductID: "w1"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateStock(ctx, transport.StockUpdateRequest{Stock: intp(1)})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddProduct_AssignsPrefixedIDs(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()

	seedProduct(t, svc, models.Product{ID: "w1", Name: "A", Price: 100, Category: "women", Stock: 1})
	seedProduct(t, svc, models.Product{ID: "w3", Name: "B", Price: 100, Category: "women", Stock: 1})
	seedProduct(t, svc, models.Product{ID: "m2", Name: "C", Price: 100, Category: "men", Stock: 1})

	women, err := svc.AddProduct(ctx, transport.AddProductRequest{
		Name: "Dior J'adore", Category: "women", Price: 9200, Desc: "Floral", Stock: intp(4),
	})
	require.NoError(t, err)
	assert.Equal(t, "w4", women.ID)

	men, err := svc.AddProduct(ctx, transport.AddProductRequest{
		Name: "Sauvage", Category: "men", Price: 7800, Desc: "Spicy", Stock: intp(6),
	})
	require.NoError(t, err)
	assert.Equal(t, "m3", men.ID)
}

func TestAddProduct_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)

	_, err := svc.AddProduct(context.Background(), transport.AddProductRequest{
		Name: "Nameless", Category: "women", Price: 100,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRateProduct(t *testing.T) {
	t.Parallel()

	svc := newTestCatalogService(t)
	ctx := context.Background()

	require.NoError(t, svc.RateProduct(ctx, transport.RatingRequest{ProductID: "w1", Stars: 4, Review: "lovely"}))
	// A later rating for the same product replaces the first.
	require.NoError(t, svc.RateProduct(ctx, transport.RatingRequest{ProductID: "w1", Stars: 5}))

	ratings, err := svc.ListRatings(ctx)
	require.NoError(t, err)
	require.Contains(t, ratings, "w1")
	assert.Equal(t, 5, ratings["w1"].Stars)

	tests := []transport.RatingRequest{
		{ProductID: "", Stars: 3},
		{ProductID: "w1", Stars: 0},
		{ProductID: "w1", Stars: 6},
	}
	for _, req := range tests {
		assert.ErrorIs(t, svc.RateProduct(ctx, req), ErrValidation)
	}
}
