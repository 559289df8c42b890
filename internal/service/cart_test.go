package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurelia-api/internal/domain"
)

func TestCartAddMergesQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	ctx := context.Background()
	u := createUser(t, db, "cart@example.com", false)
	p := createProduct(t, db, "Ring", 100, 10)

	first, err := svc.Add(ctx, u.ID, p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, first.Quantity)

	second, err := svc.Add(ctx, u.ID, p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "same product must reuse the row")
	assert.Equal(t, 5, second.Quantity)

	var count int64
	require.NoError(t, db.Model(&domain.CartItem{}).Where("user_id = ?", u.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCartAddStockChecks(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	ctx := context.Background()
	u := createUser(t, db, "cart@example.com", false)
	p := createProduct(t, db, "Ring", 100, 10)

	_, err := svc.Add(ctx, u.ID, p.ID, 11)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// The merged quantity is what gets checked, not just the increment.
	_, err = svc.Add(ctx, u.ID, p.ID, 6)
	require.NoError(t, err)
	_, err = svc.Add(ctx, u.ID, p.ID, 5)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	_, err = svc.Add(ctx, u.ID, 9999, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	gone := createProduct(t, db, "Sold Out", 50, 0)
	require.NoError(t, db.Model(gone).Update("in_stock", false).Error)
	_, err = svc.Add(ctx, u.ID, gone.ID, 1)
	assert.ErrorIs(t, err, ErrOutOfStock)
}

func TestCartSetQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	ctx := context.Background()
	u := createUser(t, db, "cart@example.com", false)
	other := createUser(t, db, "other@example.com", false)
	p := createProduct(t, db, "Ring", 100, 10)

	item, err := svc.Add(ctx, u.ID, p.ID, 2)
	require.NoError(t, err)

	updated, removed, err := svc.SetQuantity(ctx, u.ID, item.ID, 7)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 7, updated.Quantity)

	_, _, err = svc.SetQuantity(ctx, u.ID, item.ID, 11)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Another user cannot touch the row; it looks missing to them.
	_, _, err = svc.SetQuantity(ctx, other.ID, item.ID, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, removed, err = svc.SetQuantity(ctx, u.ID, item.ID, 0)
	require.NoError(t, err)
	assert.True(t, removed)

	var count int64
	require.NoError(t, db.Model(&domain.CartItem{}).Where("user_id = ?", u.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestCartListNullSnapshotForDeletedProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	ctx := context.Background()
	u := createUser(t, db, "cart@example.com", false)
	kept := createProduct(t, db, "Kept", 100, 10)
	doomed := createProduct(t, db, "Doomed", 50, 10)

	_, err := svc.Add(ctx, u.ID, kept.ID, 1)
	require.NoError(t, err)
	_, err = svc.Add(ctx, u.ID, doomed.ID, 1)
	require.NoError(t, err)

	require.NoError(t, db.Delete(&domain.Product{}, doomed.ID).Error)

	entries, err := svc.List(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.NotNil(t, entries[0].Product)
	assert.Equal(t, "Kept", entries[0].Product.Name)
	assert.Nil(t, entries[1].Product)
}

func TestCartRemoveAndClear(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)
	ctx := context.Background()
	u := createUser(t, db, "cart@example.com", false)
	other := createUser(t, db, "other@example.com", false)
	p1 := createProduct(t, db, "A", 10, 10)
	p2 := createProduct(t, db, "B", 20, 10)

	item, err := svc.Add(ctx, u.ID, p1.ID, 1)
	require.NoError(t, err)
	_, err = svc.Add(ctx, u.ID, p2.ID, 1)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Remove(ctx, other.ID, item.ID), ErrNotFound)
	require.NoError(t, svc.Remove(ctx, u.ID, item.ID))
	assert.ErrorIs(t, svc.Remove(ctx, u.ID, item.ID), ErrNotFound)

	require.NoError(t, svc.Clear(ctx, u.ID))
	entries, err := svc.List(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
