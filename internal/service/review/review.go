package review

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sharmaketan/shopkart/internal/models"
	"github.com/sharmaketan/shopkart/internal/policy"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrForbidden  = errors.New("forbidden")  // 403
	ErrNotFound   = errors.New("not found")  // 404
)

type Service struct {
	DB *gorm.DB
}

// Upsert adds the caller's review or, when one already exists for this
// product, updates it in place — numReviews never grows for a repeat
// reviewer. The aggregate fields are recomputed in the same transaction.
func (s *Service) Upsert(ctx context.Context, actor policy.Actor, actorName string, productID uint, rating int, comment string) (*models.Product, error) {
	if err := policy.Authorize(actor, policy.ReviewProduct, policy.Resource{}); err != nil {
		return nil, fmt.Errorf("%w: admins cannot review products", ErrForbidden)
	}

	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if comment == "" {
		return nil, fmt.Errorf("%w: comment required", ErrValidation)
	}

	var product models.Product

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product %d", ErrNotFound, productID)
			}
			return err
		}

		var existing models.Review
		err := tx.Where("product_id = ? AND user_id = ?", productID, actor.ID).First(&existing).Error
		switch {
		case err == nil:
			existing.Rating = rating
			existing.Comment = comment
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			fresh := models.Review{
				ProductID: productID,
				UserID:    actor.ID,
				Name:      actorName,
				Rating:    rating,
				Comment:   comment,
			}
			if err := tx.Create(&fresh).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return recompute(tx, &product)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &product, nil
}

// Delete removes a review; only its author or an admin may do so.
func (s *Service) Delete(ctx context.Context, actor policy.Actor, productID, reviewID uint) (*models.Product, error) {
	var product models.Product

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product %d", ErrNotFound, productID)
			}
			return err
		}

		var rev models.Review
		if err := tx.Where("id = ? AND product_id = ?", reviewID, productID).First(&rev).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: review %d", ErrNotFound, reviewID)
			}
			return err
		}

		if err := policy.Authorize(actor, policy.DeleteReview, policy.Resource{OwnerID: rev.UserID}); err != nil {
			return fmt.Errorf("%w: access denied", ErrForbidden)
		}

		if err := tx.Delete(&rev).Error; err != nil {
			return err
		}

		return recompute(tx, &product)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &product, nil
}

// recompute refreshes numReviews and avgRating from the reviews table.
// COALESCE keeps avgRating at 0 once the last review is gone.
func recompute(tx *gorm.DB, product *models.Product) error {
	var count int64
	if err := tx.Model(&models.Review{}).Where("product_id = ?", product.ID).Count(&count).Error; err != nil {
		return err
	}

	var avg float64
	if err := tx.Model(&models.Review{}).
		Where("product_id = ?", product.ID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error; err != nil {
		return err
	}

	product.NumReviews = int(count)
	product.AvgRating = avg

	return tx.Model(&models.Product{}).Where("id = ?", product.ID).
		Updates(map[string]any{"num_reviews": count, "avg_rating": avg}).Error
}
