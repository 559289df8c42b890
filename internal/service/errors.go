package service

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors surfaced to the transport layer, which maps each to an
// HTTP status. Wrap with %w when adding detail so errors.Is keeps working.
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInactiveAccount    = errors.New("inactive user account")
	ErrUnauthenticated    = errors.New("could not validate credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrOutOfStock         = errors.New("product is out of stock")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidStatus      = errors.New("invalid order status")
)

func insufficientStock(product string, available, requested int) error {
	return fmt.Errorf("%w for product %q: available %d, requested %d",
		ErrInsufficientStock, product, available, requested)
}

func notFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}

// String match instead of gorm.ErrDuplicatedKey: not every dialector
// translates the driver error.
func isDuplicateKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
