package domain

type Product struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	Name          string   `gorm:"size:255;not null" json:"name"`
	Price         float64  `gorm:"not null" json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	Discount      *float64 `json:"discount"` // percentage, e.g. 12.5
	Category      *string  `gorm:"size:64;index" json:"category"`
	Sub           *string  `gorm:"size:64" json:"sub"`
	Description   *string  `gorm:"type:text" json:"description"`
	Image         *string  `gorm:"size:512" json:"image"`
	Images        []string `gorm:"serializer:json" json:"images"`
	Highlights    []string `gorm:"serializer:json" json:"highlights"`
	Features      []string `gorm:"serializer:json" json:"features"`
	Rating        float64  `gorm:"not null;default:0" json:"rating"`
	ReviewCount   int      `gorm:"not null;default:0" json:"review_count"`
	InStock       bool     `gorm:"not null;default:true" json:"in_stock"`
	StockQuantity int      `gorm:"not null;default:0" json:"stock_quantity"`
	IsFeatured    bool     `gorm:"not null;default:false" json:"is_featured"`
}

func (Product) TableName() string { return "products" }

// ProductSnapshot is the trimmed product view embedded in cart listings.
type ProductSnapshot struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Image   *string `json:"image"`
	InStock bool    `json:"in_stock"`
}

func (p *Product) Snapshot() *ProductSnapshot {
	return &ProductSnapshot{
		ID:      p.ID,
		Name:    p.Name,
		Price:   p.Price,
		Image:   p.Image,
		InStock: p.InStock,
	}
}
