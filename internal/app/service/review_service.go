package service

import (
	"errors"
	"strings"
	"time"

	"github.com/kdas/shopkart-backend/internal/app/model"
	"github.com/kdas/shopkart-backend/internal/app/repository"
	"github.com/kdas/shopkart-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrCommentRequired  = errors.New("comment text is required")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
)

// ReviewResult is what a successful review submission returns: the stored
// comment plus the refreshed aggregate pair.
type ReviewResult struct {
	Comment      *model.Comment `json:"comment"`
	Rating       int            `json:"rating"`
	ReviewsCount int            `json:"reviewsCount"`
}

// ReviewService orchestrates review intake: validate, resolve the product,
// compute the verified-purchase flag, persist the comment, then refresh the
// product's cached rating. The comment insert and the rating update are two
// separate writes; a failure between them leaves the cached pair stale but
// structurally valid, and a later recompute corrects it.
type ReviewService struct {
	productRepo  repository.ProductRepository
	commentRepo  *repository.CommentRepository
	verification *VerificationService
	rating       *RatingService
}

func NewReviewService(
	productRepo repository.ProductRepository,
	commentRepo *repository.CommentRepository,
	verification *VerificationService,
	rating *RatingService,
) *ReviewService {
	return &ReviewService{
		productRepo:  productRepo,
		commentRepo:  commentRepo,
		verification: verification,
		rating:       rating,
	}
}

// SubmitReview handles the review endpoint, where a rating is mandatory.
// Each validation failure is rejected before any write happens.
func (s *ReviewService) SubmitReview(productLegacyID int, username string, rating int, commentText string) (*ReviewResult, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrUsernameRequired
	}
	if strings.TrimSpace(commentText) == "" {
		return nil, ErrCommentRequired
	}
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	product, err := s.productRepo.FindByLegacyID(productLegacyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	verified, err := s.verification.IsVerifiedPurchase(productLegacyID, username)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ProductID:        product.ID,
		Username:         username,
		Rating:           &rating,
		Comment:          commentText,
		VerifiedPurchase: verified,
		CreatedAt:        time.Now(),
	}
	if err := s.commentRepo.Create(comment); err != nil {
		logger.Error("Failed to persist review comment", err, map[string]interface{}{
			"legacy_id": productLegacyID,
			"username":  username,
		})
		return nil, err
	}

	newRating, newCount, err := s.rating.Recompute(product.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("Review submitted", map[string]interface{}{
		"legacy_id":         productLegacyID,
		"username":          username,
		"verified_purchase": verified,
		"rating":            newRating,
		"reviews_count":     newCount,
	})

	return &ReviewResult{
		Comment:      comment,
		Rating:       newRating,
		ReviewsCount: newCount,
	}, nil
}

// AddComment handles the secondary comment endpoint, where the rating is
// optional. When a rating is supplied the aggregate is refreshed so the
// cached pair stays consistent with the comment set.
func (s *ReviewService) AddComment(productLegacyID int, username, commentText string, rating *int) (*model.Comment, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrUsernameRequired
	}
	if strings.TrimSpace(commentText) == "" {
		return nil, ErrCommentRequired
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, ErrInvalidRating
	}

	product, err := s.productRepo.FindByLegacyID(productLegacyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	verified, err := s.verification.IsVerifiedPurchase(productLegacyID, username)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ProductID:        product.ID,
		Username:         username,
		Rating:           rating,
		Comment:          commentText,
		VerifiedPurchase: verified,
		CreatedAt:        time.Now(),
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	if rating != nil {
		if _, _, err := s.rating.Recompute(product.ID); err != nil {
			return nil, err
		}
	}

	return comment, nil
}

// GetComments returns every comment for the product, newest first.
func (s *ReviewService) GetComments(productLegacyID int) ([]model.Comment, error) {
	product, err := s.productRepo.FindByLegacyID(productLegacyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return s.commentRepo.FindByProductID(product.ID)
}
