package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurelia-api/internal/domain"
	"aurelia-api/pkg/utils"
)

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	jwter := testJWTer()
	svc := NewAuthService(db, jwter)
	ctx := context.Background()

	name := "Ada"
	u, tok, err := svc.Register(ctx, RegisterInput{
		Email:    "ada@example.com",
		Password: "pass1234",
		FullName: &name,
	})
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	assert.True(t, u.IsActive)
	assert.False(t, u.IsAdmin)
	assert.NotEqual(t, "pass1234", u.PasswordHash, "password must be hashed")

	claims, err := jwter.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UID)
	assert.Equal(t, "ada@example.com", claims.Subject)

	got, tok2, err := svc.Login(ctx, "ada@example.com", "pass1234")
	require.NoError(t, err)
	require.NotEmpty(t, tok2)
	assert.Equal(t, u.ID, got.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testJWTer())
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "pass1234"})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "other456"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestLoginInvalidCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testJWTer())
	ctx := context.Background()
	createUser(t, db, "known@example.com", false)

	// Unknown email and wrong password must be indistinguishable.
	_, _, err := svc.Login(ctx, "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "known@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testJWTer())

	u := domain.User{
		Email:        "frozen@example.com",
		PasswordHash: utils.HashPassword("secret123"),
		IsActive:     false,
	}
	require.NoError(t, db.Create(&u).Error)

	_, _, err := svc.Login(context.Background(), "frozen@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInactiveAccount)
}

func TestUserByIDMissing(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testJWTer())

	_, err := svc.UserByID(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
