package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurelia-api/internal/domain"
)

func TestCatalogSearchCaseInsensitiveOr(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, nil)
	ctx := context.Background()

	desc := "Crafted from sterling SILVER"
	require.NoError(t, db.Create(&domain.Product{Name: "Gold Ring", Price: 100}).Error)
	require.NoError(t, db.Create(&domain.Product{Name: "Plain Band", Price: 50, Description: &desc}).Error)
	require.NoError(t, db.Create(&domain.Product{Name: "Silver Hoops", Price: 70}).Error)

	got, err := svc.Search(ctx, "silver")
	require.NoError(t, err)
	require.Len(t, got, 2, "match against name or description, case-insensitively")
	assert.Equal(t, "Plain Band", got[0].Name)
	assert.Equal(t, "Silver Hoops", got[1].Name)
}

func TestCatalogListFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, nil)
	ctx := context.Background()

	rings := "rings"
	necklaces := "necklaces"
	require.NoError(t, db.Create(&domain.Product{Name: "A", Price: 1, Category: &rings, InStock: true, IsFeatured: true}).Error)
	require.NoError(t, db.Create(&domain.Product{Name: "B", Price: 1, Category: &rings, InStock: false}).Error)
	require.NoError(t, db.Create(&domain.Product{Name: "C", Price: 1, Category: &necklaces, InStock: true}).Error)

	got, err := svc.List(ctx, ProductFilter{Category: &rings})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	inStock := true
	got, err = svc.List(ctx, ProductFilter{Category: &rings, InStock: &inStock})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Name)

	featured := true
	got, err = svc.List(ctx, ProductFilter{Featured: &featured})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Name)

	got, err = svc.List(ctx, ProductFilter{Skip: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Name)
}

func TestProductFilterNormalize(t *testing.T) {
	f := ProductFilter{Skip: -5, Limit: 0}
	f.normalize()
	assert.Equal(t, 0, f.Skip)
	assert.Equal(t, defaultPageSize, f.Limit)

	f = ProductFilter{Limit: 100000}
	f.normalize()
	assert.Equal(t, maxPageSize, f.Limit)
}

func TestCatalogPatchUpdatesOnlyPresentFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, ProductInput{
		Name:          "Ring",
		Price:         100,
		StockQuantity: 10,
		InStock:       true,
		Highlights:    []string{"Certified"},
	})
	require.NoError(t, err)

	price := 120.0
	got, err := svc.Patch(ctx, created.ID, ProductPatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 120.0, got.Price)
	assert.Equal(t, "Ring", got.Name)
	assert.Equal(t, 10, got.StockQuantity)
	assert.Equal(t, []string{"Certified"}, got.Highlights)

	images := []string{"/images/a.jpg", "/images/b.jpg"}
	got, err = svc.Patch(ctx, created.ID, ProductPatch{Images: &images})
	require.NoError(t, err)
	assert.Equal(t, images, got.Images)
	assert.Equal(t, 120.0, got.Price)
}

func TestCatalogReplaceOverwritesAllFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, nil)
	ctx := context.Background()

	cat := "rings"
	created, err := svc.Create(ctx, ProductInput{
		Name: "Ring", Price: 100, Category: &cat, StockQuantity: 10, InStock: true,
	})
	require.NoError(t, err)

	// Replace with no category: the optional must become null, not survive.
	got, err := svc.Replace(ctx, created.ID, ProductInput{
		Name: "Renamed Ring", Price: 90, StockQuantity: 5, InStock: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Ring", got.Name)
	assert.Nil(t, got.Category)

	var fromDB domain.Product
	require.NoError(t, db.First(&fromDB, created.ID).Error)
	assert.Nil(t, fromDB.Category)
	assert.Equal(t, 5, fromDB.StockQuantity)
}

func TestCatalogGetAndDeleteMissing(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db, nil)
	ctx := context.Background()

	_, err := svc.Get(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 9999), ErrNotFound)

	p := createProduct(t, db, "Ring", 100, 10)
	require.NoError(t, svc.Delete(ctx, p.ID))
	_, err = svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
