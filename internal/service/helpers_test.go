package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"aurelia-api/internal/core/auth"
	"aurelia-api/internal/domain"
	"aurelia-api/pkg/utils"
)

// newTestDB opens a per-test in-memory sqlite database. The shared cache is
// keyed on the test name so gorm's pool connections all see the same data.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Product{},
		&domain.CartItem{},
		&domain.Order{},
		&domain.OrderItem{},
		&domain.Review{},
	))
	return db
}

func testJWTer() *auth.JWTer {
	return &auth.JWTer{
		Secret: []byte("test-secret"),
		Issuer: "aurelia-test",
		TTL:    time.Hour,
	}
}

func createUser(t *testing.T, db *gorm.DB, email string, admin bool) *domain.User {
	t.Helper()
	name := "Test User"
	u := domain.User{
		Email:        email,
		PasswordHash: utils.HashPassword("secret123"),
		FullName:     &name,
		IsActive:     true,
		IsAdmin:      admin,
	}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func createProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) *domain.Product {
	t.Helper()
	p := domain.Product{
		Name:          name,
		Price:         price,
		InStock:       stock > 0,
		StockQuantity: stock,
	}
	require.NoError(t, db.Create(&p).Error)
	return &p
}
