package service

import (
	"math"

	"github.com/kdas/shopkart-backend/internal/app/repository"
	"github.com/kdas/shopkart-backend/pkg/logger"
)

// RatingService recomputes a product's displayed rating and review count
// from its full comment set. The cached pair on the product is a derived
// view; this full rescan is the source of truth for what the correct value
// is, so it also serves reconciliation after drift.
type RatingService struct {
	commentRepo *repository.CommentRepository
	productRepo repository.ProductRepository
}

func NewRatingService(commentRepo *repository.CommentRepository, productRepo repository.ProductRepository) *RatingService {
	return &RatingService{
		commentRepo: commentRepo,
		productRepo: productRepo,
	}
}

// Recompute takes the arithmetic mean of the rating over all rated comments
// for the product, rounded half-up, and writes the pair back onto the
// product record. Unrated comments are excluded. With no rated comments the
// pair resets to (0, 0).
func (s *RatingService) Recompute(productID uint) (rating int, count int, err error) {
	comments, err := s.commentRepo.FindRatedByProductID(productID)
	if err != nil {
		logger.Error("Failed to fetch rated comments for recompute", err, map[string]interface{}{
			"product_id": productID,
		})
		return 0, 0, err
	}

	if len(comments) > 0 {
		sum := 0
		for _, comment := range comments {
			sum += *comment.Rating
		}
		avg := float64(sum) / float64(len(comments))
		rating = int(math.Floor(avg + 0.5))
		count = len(comments)
	}

	if err := s.productRepo.UpdateRating(productID, rating, count); err != nil {
		return 0, 0, err
	}

	logger.Debug("Product rating recomputed", map[string]interface{}{
		"product_id":    productID,
		"rating":        rating,
		"reviews_count": count,
	})
	return rating, count, nil
}
