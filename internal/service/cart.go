package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"aurelia-api/internal/domain"
)

type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// Add upserts: a product already in the cart gets its quantity incremented,
// never a second row. The stock check covers the merged quantity.
func (s *CartService) Add(ctx context.Context, userID, productID uint, qty int) (*domain.CartItem, error) {
	tx := s.db.WithContext(ctx)

	var p domain.Product
	err := tx.First(&p, "id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("product")
	}
	if err != nil {
		return nil, err
	}
	if !p.InStock {
		return nil, ErrOutOfStock
	}
	if p.StockQuantity < qty {
		return nil, insufficientStock(p.Name, p.StockQuantity, qty)
	}

	var existing domain.CartItem
	err = tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := domain.CartItem{UserID: userID, ProductID: productID, Quantity: qty}
		if e := tx.Create(&item).Error; e != nil {
			return nil, e
		}
		return &item, nil
	case err != nil:
		return nil, err
	default:
		merged := existing.Quantity + qty
		if p.StockQuantity < merged {
			return nil, insufficientStock(p.Name, p.StockQuantity, merged)
		}
		existing.Quantity = merged
		if e := tx.Save(&existing).Error; e != nil {
			return nil, e
		}
		return &existing, nil
	}
}

// List returns the cart with product snapshots. A product deleted since the
// add renders as a null snapshot rather than failing the response.
func (s *CartService) List(ctx context.Context, userID uint) ([]domain.CartEntry, error) {
	tx := s.db.WithContext(ctx)

	var items []domain.CartItem
	if err := tx.Where("user_id = ?", userID).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}

	out := make([]domain.CartEntry, 0, len(items))
	for _, it := range items {
		entry := domain.CartEntry{
			ID:        it.ID,
			UserID:    it.UserID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		}
		var p domain.Product
		if err := tx.First(&p, "id = ?", it.ProductID).Error; err == nil {
			entry.Product = p.Snapshot()
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

// SetQuantity overwrites the quantity of a row owned by the caller.
// qty <= 0 removes the row; removed reports that outcome as a success.
func (s *CartService) SetQuantity(ctx context.Context, userID, itemID uint, qty int) (item *domain.CartItem, removed bool, err error) {
	tx := s.db.WithContext(ctx)

	var existing domain.CartItem
	e := tx.Where("id = ? AND user_id = ?", itemID, userID).First(&existing).Error
	if errors.Is(e, gorm.ErrRecordNotFound) {
		return nil, false, notFound("cart item")
	}
	if e != nil {
		return nil, false, e
	}

	if qty <= 0 {
		if e := tx.Delete(&existing).Error; e != nil {
			return nil, false, e
		}
		return nil, true, nil
	}

	var p domain.Product
	e = tx.First(&p, "id = ?", existing.ProductID).Error
	if errors.Is(e, gorm.ErrRecordNotFound) {
		return nil, false, notFound("product")
	}
	if e != nil {
		return nil, false, e
	}
	if p.StockQuantity < qty {
		return nil, false, insufficientStock(p.Name, p.StockQuantity, qty)
	}

	existing.Quantity = qty
	if e := tx.Save(&existing).Error; e != nil {
		return nil, false, e
	}
	return &existing, false, nil
}

func (s *CartService) Remove(ctx context.Context, userID, itemID uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&domain.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("cart item")
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.CartItem{}).Error
}
