package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"aurelia-api/internal/domain"
)

type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// orderDetail materializes an order with its items, resolving current
// product name/image. Deleted products render as null fields, not errors.
func orderDetail(tx *gorm.DB, order *domain.Order) (*domain.OrderDetail, error) {
	var items []domain.OrderItem
	if err := tx.Where("order_id = ?", order.ID).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}

	out := domain.OrderDetail{
		ID:        order.ID,
		UserID:    order.UserID,
		Status:    order.Status,
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
		Items:     make([]domain.OrderItemDetail, 0, len(items)),
	}
	for _, oi := range items {
		d := domain.OrderItemDetail{
			ID:        oi.ID,
			ProductID: oi.ProductID,
			Quantity:  oi.Quantity,
			Price:     oi.Price,
		}
		var p domain.Product
		err := tx.First(&p, "id = ?", oi.ProductID).Error
		if err == nil {
			d.ProductName = &p.Name
			d.ProductImage = p.Image
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		out.Items = append(out.Items, d)
	}
	return &out, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID uint) ([]domain.OrderDetail, error) {
	tx := s.db.WithContext(ctx)
	var orders []domain.Order
	if err := tx.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return s.materialize(tx, orders)
}

func (s *OrderService) Get(ctx context.Context, userID, orderID uint) (*domain.OrderDetail, error) {
	tx := s.db.WithContext(ctx)
	var order domain.Order
	err := tx.First(&order, "id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("order")
	}
	if err != nil {
		return nil, err
	}
	// Ownership failures look identical to missing orders.
	if order.UserID != userID {
		return nil, notFound("order")
	}
	return orderDetail(tx, &order)
}

func (s *OrderService) ListAll(ctx context.Context) ([]domain.OrderDetail, error) {
	tx := s.db.WithContext(ctx)
	var orders []domain.Order
	if err := tx.Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return s.materialize(tx, orders)
}

func (s *OrderService) materialize(tx *gorm.DB, orders []domain.Order) ([]domain.OrderDetail, error) {
	out := make([]domain.OrderDetail, 0, len(orders))
	for i := range orders {
		d, err := orderDetail(tx, &orders[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

// UpdateStatus is the only mutation an order admits after checkout.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, status string) (*domain.OrderDetail, error) {
	if _, ok := domain.ValidOrderStatuses[status]; !ok {
		return nil, ErrInvalidStatus
	}
	tx := s.db.WithContext(ctx)

	var order domain.Order
	err := tx.First(&order, "id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("order")
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Model(&order).Update("status", status).Error; err != nil {
		return nil, err
	}
	order.Status = status
	return orderDetail(tx, &order)
}
