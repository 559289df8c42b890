package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"aurelia-api/internal/core/cache"
	"aurelia-api/internal/domain"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200

	productCacheTTL = 5 * time.Minute
)

// CatalogService owns product reads and the admin-only writes. A nil cache
// disables the read-through path without changing behaviour.
type CatalogService struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewCatalogService(db *gorm.DB, c *cache.Cache) *CatalogService {
	return &CatalogService{db: db, cache: c}
}

type ProductFilter struct {
	Category *string
	Sub      *string
	InStock  *bool
	Featured *bool
	Skip     int
	Limit    int
}

func (f *ProductFilter) normalize() {
	if f.Skip < 0 {
		f.Skip = 0
	}
	if f.Limit < 1 {
		f.Limit = defaultPageSize
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
}

func (s *CatalogService) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	f.normalize()
	q := s.db.WithContext(ctx).Model(&domain.Product{})
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.Sub != nil {
		q = q.Where("sub = ?", *f.Sub)
	}
	if f.InStock != nil {
		q = q.Where("in_stock = ?", *f.InStock)
	}
	if f.Featured != nil {
		q = q.Where("is_featured = ?", *f.Featured)
	}
	var out []domain.Product
	if err := q.Order("id").Offset(f.Skip).Limit(f.Limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Search matches the term case-insensitively against name OR description.
func (s *CatalogService) Search(ctx context.Context, term string) ([]domain.Product, error) {
	like := "%" + strings.ToLower(term) + "%"
	var out []domain.Product
	err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*domain.Product, error) {
	if s.cache == nil {
		return s.load(ctx, id)
	}
	return cache.GetOrLoadJSON[domain.Product](s.cache, ctx, cache.ProductKey(id), productCacheTTL,
		func(ctx context.Context) (*domain.Product, error) {
			return s.load(ctx, id)
		})
}

func (s *CatalogService) load(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("product")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ProductInput carries every writable product field. Replace applies all of
// them; absent optionals become null.
type ProductInput struct {
	Name          string   `json:"name" binding:"required"`
	Price         float64  `json:"price" binding:"required,gte=0"`
	OriginalPrice *float64 `json:"original_price"`
	Discount      *float64 `json:"discount"`
	Category      *string  `json:"category"`
	Sub           *string  `json:"sub"`
	Description   *string  `json:"description"`
	Image         *string  `json:"image"`
	Images        []string `json:"images"`
	Highlights    []string `json:"highlights"`
	Features      []string `json:"features"`
	Rating        float64  `json:"rating" binding:"gte=0,lte=5"`
	ReviewCount   int      `json:"review_count" binding:"gte=0"`
	InStock       bool     `json:"in_stock"`
	StockQuantity int      `json:"stock_quantity" binding:"gte=0"`
	IsFeatured    bool     `json:"is_featured"`
}

func (in *ProductInput) apply(p *domain.Product) {
	p.Name = in.Name
	p.Price = in.Price
	p.OriginalPrice = in.OriginalPrice
	p.Discount = in.Discount
	p.Category = in.Category
	p.Sub = in.Sub
	p.Description = in.Description
	p.Image = in.Image
	p.Images = in.Images
	p.Highlights = in.Highlights
	p.Features = in.Features
	p.Rating = in.Rating
	p.ReviewCount = in.ReviewCount
	p.InStock = in.InStock
	p.StockQuantity = in.StockQuantity
	p.IsFeatured = in.IsFeatured
}

func (s *CatalogService) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	var p domain.Product
	in.apply(&p)
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *CatalogService) Replace(ctx context.Context, id uint, in ProductInput) (*domain.Product, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(p)
	if err := s.db.WithContext(ctx).Select("*").Save(p).Error; err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return p, nil
}

// ProductPatch models "set of present fields": only non-nil members are
// written, so a JSON payload changes exactly the columns it names.
type ProductPatch struct {
	Name          *string   `json:"name"`
	Price         *float64  `json:"price" binding:"omitempty,gte=0"`
	OriginalPrice *float64  `json:"original_price"`
	Discount      *float64  `json:"discount"`
	Category      *string   `json:"category"`
	Sub           *string   `json:"sub"`
	Description   *string   `json:"description"`
	Image         *string   `json:"image"`
	Images        *[]string `json:"images"`
	Highlights    *[]string `json:"highlights"`
	Features      *[]string `json:"features"`
	Rating        *float64  `json:"rating" binding:"omitempty,gte=0,lte=5"`
	ReviewCount   *int      `json:"review_count" binding:"omitempty,gte=0"`
	InStock       *bool     `json:"in_stock"`
	StockQuantity *int      `json:"stock_quantity" binding:"omitempty,gte=0"`
	IsFeatured    *bool     `json:"is_featured"`
}

func (p *ProductPatch) columns() map[string]any {
	m := map[string]any{}
	if p.Name != nil {
		m["name"] = *p.Name
	}
	if p.Price != nil {
		m["price"] = *p.Price
	}
	if p.OriginalPrice != nil {
		m["original_price"] = *p.OriginalPrice
	}
	if p.Discount != nil {
		m["discount"] = *p.Discount
	}
	if p.Category != nil {
		m["category"] = *p.Category
	}
	if p.Sub != nil {
		m["sub"] = *p.Sub
	}
	if p.Description != nil {
		m["description"] = *p.Description
	}
	if p.Image != nil {
		m["image"] = *p.Image
	}
	if p.Rating != nil {
		m["rating"] = *p.Rating
	}
	if p.ReviewCount != nil {
		m["review_count"] = *p.ReviewCount
	}
	if p.InStock != nil {
		m["in_stock"] = *p.InStock
	}
	if p.StockQuantity != nil {
		m["stock_quantity"] = *p.StockQuantity
	}
	if p.IsFeatured != nil {
		m["is_featured"] = *p.IsFeatured
	}
	return m
}

func (s *CatalogService) Patch(ctx context.Context, id uint, patch ProductPatch) (*domain.Product, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if cols := patch.columns(); len(cols) > 0 {
		if err := s.db.WithContext(ctx).Model(p).Updates(cols).Error; err != nil {
			return nil, err
		}
	}
	// Serialized list columns go through the model, not the column map.
	if patch.Images != nil || patch.Highlights != nil || patch.Features != nil {
		if patch.Images != nil {
			p.Images = *patch.Images
		}
		if patch.Highlights != nil {
			p.Highlights = *patch.Highlights
		}
		if patch.Features != nil {
			p.Features = *patch.Features
		}
		if err := s.db.WithContext(ctx).Select("images", "highlights", "features").Save(p).Error; err != nil {
			return nil, err
		}
	}
	s.invalidate(ctx, id)
	return s.load(ctx, id)
}

// Delete does not cascade: existing order items keep the dangling product
// id, and cart rows are cleaned up lazily at checkout.
func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&domain.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("product")
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, id uint) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.ProductKey(id))
	}
}
