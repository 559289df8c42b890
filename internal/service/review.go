package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"aurelia-api/internal/core/cache"
	"aurelia-api/internal/domain"
)

// ReviewService keeps Product.rating / review_count as an eagerly
// maintained aggregate: every review write recomputes both inside the same
// transaction, via SQL rather than a full row scan in Go.
type ReviewService struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewReviewService(db *gorm.DB, c *cache.Cache) *ReviewService {
	return &ReviewService{db: db, cache: c}
}

func (s *ReviewService) ListForProduct(ctx context.Context, productID uint) ([]domain.ReviewEntry, error) {
	tx := s.db.WithContext(ctx)

	var reviews []domain.Review
	if err := tx.Where("product_id = ?", productID).Order("id").Find(&reviews).Error; err != nil {
		return nil, err
	}

	out := make([]domain.ReviewEntry, 0, len(reviews))
	for _, r := range reviews {
		entry := domain.ReviewEntry{
			ID:        r.ID,
			UserID:    r.UserID,
			ProductID: r.ProductID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
			UserName:  "Anonymous",
		}
		var u domain.User
		if err := tx.First(&u, "id = ?", r.UserID).Error; err == nil {
			if u.FullName != nil {
				entry.UserName = *u.FullName
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

// Add inserts a review and recomputes the product aggregate. There is no
// one-review-per-user rule; repeat reviews are allowed.
func (s *ReviewService) Add(ctx context.Context, userID, productID uint, rating int, comment *string) (*domain.Review, error) {
	var review domain.Review
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Product
		e := tx.First(&p, "id = ?", productID).Error
		if errors.Is(e, gorm.ErrRecordNotFound) {
			return notFound("product")
		}
		if e != nil {
			return e
		}

		review = domain.Review{
			UserID:    userID,
			ProductID: productID,
			Rating:    rating,
			Comment:   comment,
		}
		if e := tx.Create(&review).Error; e != nil {
			return e
		}
		return recomputeAggregate(tx, productID)
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, productID)
	return &review, nil
}

// Delete removes a review (author or admin only) and recomputes; with no
// reviews left the rating resets to 0.
func (s *ReviewService) Delete(ctx context.Context, caller *domain.User, reviewID uint) error {
	var productID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review domain.Review
		e := tx.First(&review, "id = ?", reviewID).Error
		if errors.Is(e, gorm.ErrRecordNotFound) {
			return notFound("review")
		}
		if e != nil {
			return e
		}
		if review.UserID != caller.ID && !caller.IsAdmin {
			return ErrForbidden
		}
		productID = review.ProductID

		if e := tx.Delete(&review).Error; e != nil {
			return e
		}
		return recomputeAggregate(tx, productID)
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, productID)
	return nil
}

func recomputeAggregate(tx *gorm.DB, productID uint) error {
	var agg struct {
		Rating      float64
		ReviewCount int64
	}
	err := tx.Model(&domain.Review{}).
		Select("COALESCE(AVG(rating), 0) AS rating, COUNT(*) AS review_count").
		Where("product_id = ?", productID).
		Scan(&agg).Error
	if err != nil {
		return err
	}
	return tx.Model(&domain.Product{}).Where("id = ?", productID).
		Updates(map[string]any{
			"rating":       agg.Rating,
			"review_count": agg.ReviewCount,
		}).Error
}

func (s *ReviewService) invalidate(ctx context.Context, productID uint) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, cache.ProductKey(productID))
	}
}
