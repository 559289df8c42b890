package domain

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

var ValidOrderStatuses = map[string]struct{}{
	OrderStatusPending:   {},
	OrderStatusConfirmed: {},
	OrderStatusShipped:   {},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

type Order struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index;not null" json:"user_id"`
	Status          string    `gorm:"size:16;not null;default:pending" json:"status"`
	Total           float64   `gorm:"not null;default:0" json:"total"`
	ShippingAddress *string   `gorm:"type:text" json:"shipping_address"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Order) TableName() string { return "orders" }

// OrderItem snapshots the price at purchase time; later Product.price
// changes never touch it. ProductID may dangle if the product is deleted.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index;not null" json:"order_id"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
}

func (OrderItem) TableName() string { return "order_items" }

// OrderItemDetail resolves the current product name/image for rendering.
// Both are null when the product no longer exists.
type OrderItemDetail struct {
	ID           uint    `json:"id"`
	ProductID    uint    `json:"product_id"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	ProductName  *string `json:"product_name"`
	ProductImage *string `json:"product_image"`
}

type OrderDetail struct {
	ID        uint              `json:"id"`
	UserID    uint              `json:"user_id"`
	Status    string            `json:"status"`
	Total     float64           `json:"total"`
	CreatedAt time.Time         `json:"created_at"`
	Items     []OrderItemDetail `json:"items"`
}
