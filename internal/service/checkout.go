package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"aurelia-api/internal/core/cache"
	"aurelia-api/internal/domain"
)

// CheckoutService performs the single cart → order transition. The whole
// transition runs in one transaction: a failed line item rolls back every
// stock decrement and order write before it.
type CheckoutService struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewCheckoutService(db *gorm.DB, c *cache.Cache) *CheckoutService {
	return &CheckoutService{db: db, cache: c}
}

func (s *CheckoutService) Checkout(ctx context.Context, userID uint, shippingAddress *string) (*domain.OrderDetail, error) {
	var (
		detail  *domain.OrderDetail
		touched []uint
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cartItems []domain.CartItem
		if err := tx.Where("user_id = ?", userID).Order("id").Find(&cartItems).Error; err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrEmptyCart
		}

		order := domain.Order{
			UserID:          userID,
			Status:          domain.OrderStatusPending,
			ShippingAddress: shippingAddress,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		var total float64
		for _, ci := range cartItems {
			var p domain.Product
			err := tx.First(&p, "id = ?", ci.ProductID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Product deleted since it was added: drop the stale
				// cart row and skip the line item.
				if e := tx.Delete(&ci).Error; e != nil {
					return e
				}
				continue
			}
			if err != nil {
				return err
			}

			// Guarded decrement: the stock condition is re-checked at
			// write time, so two concurrent checkouts cannot both pass a
			// stale read. Zero rows affected means someone got there
			// first (or stock was short all along).
			res := tx.Model(&domain.Product{}).
				Where("id = ? AND stock_quantity >= ?", p.ID, ci.Quantity).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", ci.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return insufficientStock(p.Name, p.StockQuantity, ci.Quantity)
			}
			if p.StockQuantity-ci.Quantity == 0 {
				if e := tx.Model(&domain.Product{}).Where("id = ?", p.ID).
					Update("in_stock", false).Error; e != nil {
					return e
				}
			}

			oi := domain.OrderItem{
				OrderID:   order.ID,
				ProductID: p.ID,
				Quantity:  ci.Quantity,
				Price:     p.Price, // snapshot; later price changes never touch it
			}
			if err := tx.Create(&oi).Error; err != nil {
				return err
			}
			total += p.Price * float64(ci.Quantity)
			touched = append(touched, p.ID)

			if err := tx.Delete(&ci).Error; err != nil {
				return err
			}
		}

		order.Total = total
		if err := tx.Model(&domain.Order{}).Where("id = ?", order.ID).
			Update("total", total).Error; err != nil {
			return err
		}

		d, err := orderDetail(tx, &order)
		if err != nil {
			return err
		}
		detail = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		keys := make([]string, 0, len(touched))
		for _, id := range touched {
			keys = append(keys, cache.ProductKey(id))
		}
		s.cache.Invalidate(ctx, keys...)
	}
	return detail, nil
}
