package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"aurelia-api/internal/domain"
)

func placeOrder(t *testing.T, db *gorm.DB, userID, productID uint, qty int) *domain.OrderDetail {
	t.Helper()
	cart := NewCartService(db)
	checkout := NewCheckoutService(db, nil)
	ctx := context.Background()
	_, err := cart.Add(ctx, userID, productID, qty)
	require.NoError(t, err)
	order, err := checkout.Checkout(ctx, userID, nil)
	require.NoError(t, err)
	return order
}

func TestOrderGetOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()
	buyer := createUser(t, db, "buyer@example.com", false)
	other := createUser(t, db, "other@example.com", false)
	p := createProduct(t, db, "Ring", 100, 10)

	placed := placeOrder(t, db, buyer.ID, p.ID, 1)

	got, err := svc.Get(ctx, buyer.ID, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, got.ID)

	// Someone else's order is indistinguishable from a missing one.
	_, err = svc.Get(ctx, other.ID, placed.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(ctx, buyer.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOrderListForUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()
	buyer := createUser(t, db, "buyer@example.com", false)
	other := createUser(t, db, "other@example.com", false)
	p := createProduct(t, db, "Ring", 100, 100)

	placeOrder(t, db, buyer.ID, p.ID, 1)
	placeOrder(t, db, buyer.ID, p.ID, 2)
	placeOrder(t, db, other.ID, p.ID, 1)

	mine, err := svc.ListForUser(ctx, buyer.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	// Newest first.
	assert.GreaterOrEqual(t, mine[0].ID, mine[1].ID)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestOrderUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewOrderService(db)
	ctx := context.Background()
	buyer := createUser(t, db, "buyer@example.com", false)
	p := createProduct(t, db, "Ring", 100, 10)
	placed := placeOrder(t, db, buyer.ID, p.ID, 1)

	got, err := svc.UpdateStatus(ctx, placed.ID, domain.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, got.Status)

	_, err = svc.UpdateStatus(ctx, placed.ID, "teleported")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(ctx, 9999, domain.OrderStatusConfirmed)
	assert.ErrorIs(t, err, ErrNotFound)
}
