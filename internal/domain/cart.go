package domain

// CartItem holds at most one row per (user, product); merges are done by the
// cart service, not a DB constraint.
type CartItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	UserID    uint `gorm:"index;not null" json:"user_id"`
	ProductID uint `gorm:"index;not null" json:"product_id"`
	Quantity  int  `gorm:"not null" json:"quantity"`
}

func (CartItem) TableName() string { return "cart_items" }

// CartEntry is a cart item enriched with a product snapshot for responses.
// Product is null when the catalog row has been deleted since the add.
type CartEntry struct {
	ID        uint             `json:"id"`
	UserID    uint             `json:"user_id"`
	ProductID uint             `json:"product_id"`
	Quantity  int              `json:"quantity"`
	Product   *ProductSnapshot `json:"product"`
}
