package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurelia-api/internal/domain"
)

func TestReviewAddRecomputesAggregate(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db, nil)
	ctx := context.Background()
	u := createUser(t, db, "rev@example.com", false)
	p := createProduct(t, db, "Ring", 100, 10)

	_, err := svc.Add(ctx, u.ID, p.ID, 5, nil)
	require.NoError(t, err)

	var got domain.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 5.0, got.Rating)
	assert.Equal(t, 1, got.ReviewCount)

	comment := "decent"
	_, err = svc.Add(ctx, u.ID, p.ID, 3, &comment)
	require.NoError(t, err)

	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 4.0, got.Rating)
	assert.Equal(t, 2, got.ReviewCount)
}

func TestReviewAddUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db, nil)
	u := createUser(t, db, "rev@example.com", false)

	_, err := svc.Add(context.Background(), u.ID, 9999, 4, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReviewDeleteResetsAggregate(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db, nil)
	ctx := context.Background()
	u := createUser(t, db, "rev@example.com", false)
	p := createProduct(t, db, "Ring", 100, 10)

	r, err := svc.Add(ctx, u.ID, p.ID, 4, nil)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, u, r.ID))

	var got domain.Product
	require.NoError(t, db.First(&got, p.ID).Error)
	assert.Equal(t, 0.0, got.Rating)
	assert.Equal(t, 0, got.ReviewCount)
}

func TestReviewDeleteAuthorization(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db, nil)
	ctx := context.Background()
	author := createUser(t, db, "author@example.com", false)
	stranger := createUser(t, db, "stranger@example.com", false)
	admin := createUser(t, db, "admin@example.com", true)
	p := createProduct(t, db, "Ring", 100, 10)

	r, err := svc.Add(ctx, author.ID, p.ID, 4, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, stranger, r.ID), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, admin, r.ID))

	assert.ErrorIs(t, svc.Delete(ctx, admin, r.ID), ErrNotFound)
}

func TestReviewListResolvesUserName(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db, nil)
	ctx := context.Background()
	u := createUser(t, db, "rev@example.com", false)
	nameless := createUser(t, db, "blank@example.com", false)
	require.NoError(t, db.Model(nameless).Update("full_name", nil).Error)
	p := createProduct(t, db, "Ring", 100, 10)

	_, err := svc.Add(ctx, u.ID, p.ID, 5, nil)
	require.NoError(t, err)
	_, err = svc.Add(ctx, nameless.ID, p.ID, 2, nil)
	require.NoError(t, err)

	entries, err := svc.ListForProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Test User", entries[0].UserName)
	assert.Equal(t, "Anonymous", entries[1].UserName)
}
