package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kdas/shopkart-backend/internal/app/service"
	apperrors "github.com/kdas/shopkart-backend/internal/errors"
)

type ReviewController struct {
	reviewService *service.ReviewService
}

func NewReviewController(reviewService *service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// SubmitReview posts a rated review for a product. Validation failures are
// reported individually and cause no writes.
func (ctrl *ReviewController) SubmitReview(c *gin.Context) {
	legacyID, ok := parseLegacyID(c)
	if !ok {
		return
	}

	var input struct {
		Username string `json:"username"`
		Rating   int    `json:"rating"`
		Comment  string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	result, err := ctrl.reviewService.SubmitReview(legacyID, input.Username, input.Rating, input.Comment)
	if err != nil {
		respondReviewError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// AddComment posts a plain comment; the rating is optional here.
func (ctrl *ReviewController) AddComment(c *gin.Context) {
	legacyID, ok := parseLegacyID(c)
	if !ok {
		return
	}

	var input struct {
		Username string `json:"username"`
		Rating   *int   `json:"rating"`
		Comment  string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	comment, err := ctrl.reviewService.AddComment(legacyID, input.Username, input.Comment, input.Rating)
	if err != nil {
		respondReviewError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// GetComments lists a product's comments, newest first
func (ctrl *ReviewController) GetComments(c *gin.Context) {
	legacyID, ok := parseLegacyID(c)
	if !ok {
		return
	}

	comments, err := ctrl.reviewService.GetComments(legacyID)
	if err != nil {
		respondReviewError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func respondReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUsernameRequired):
		apperrors.BadRequest(c, apperrors.ReviewUsernameRequired, "Username is required")
	case errors.Is(err, service.ErrCommentRequired):
		apperrors.BadRequest(c, apperrors.ReviewCommentRequired, "Comment text is required")
	case errors.Is(err, service.ErrInvalidRating):
		apperrors.BadRequest(c, apperrors.ReviewInvalidRating, "Rating must be between 1 and 5")
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
	default:
		apperrors.InternalError(c, "")
	}
}
