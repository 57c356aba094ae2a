package service

import (
	"testing"
	"time"

	"github.com/kdas/shopkart-backend/internal/app/model"
	"github.com/kdas/shopkart-backend/internal/app/repository"
	"github.com/kdas/shopkart-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReviewServiceTest(t *testing.T) (*ReviewService, repository.ProductRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	commentRepo := repository.NewCommentRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)

	verification := NewVerificationService(orderRepo)
	rating := NewRatingService(commentRepo, productRepo)
	review := NewReviewService(productRepo, commentRepo, verification, rating)

	return review, productRepo, testDB
}

func countComments(t *testing.T, testDB *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, testDB.Model(&model.Comment{}).Count(&count).Error)
	return count
}

func TestReviewService_SubmitReview_Validation(t *testing.T) {
	review, productRepo, testDB := setupReviewServiceTest(t)
	product := createProductWith(t, productRepo, "Validated Product")

	tests := []struct {
		name     string
		username string
		rating   int
		comment  string
		wantErr  error
	}{
		{
			name:     "Empty username",
			username: "",
			rating:   5,
			comment:  "great",
			wantErr:  ErrUsernameRequired,
		},
		{
			name:     "Whitespace username",
			username: "   ",
			rating:   5,
			comment:  "great",
			wantErr:  ErrUsernameRequired,
		},
		{
			name:     "Empty comment",
			username: "Krishna",
			rating:   5,
			comment:  "",
			wantErr:  ErrCommentRequired,
		},
		{
			name:     "Rating zero",
			username: "Krishna",
			rating:   0,
			comment:  "great",
			wantErr:  ErrInvalidRating,
		},
		{
			name:     "Rating six",
			username: "Krishna",
			rating:   6,
			comment:  "great",
			wantErr:  ErrInvalidRating,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := review.SubmitReview(product.LegacyID, tt.username, tt.rating, tt.comment)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, result)

			// Rejection happens before any write
			assert.EqualValues(t, 0, countComments(t, testDB))
			stored, err := productRepo.FindByID(product.ID)
			require.NoError(t, err)
			assert.Equal(t, 0, stored.Rating)
			assert.Equal(t, 0, stored.ReviewsCount)
		})
	}
}

func TestReviewService_SubmitReview_UnknownProduct(t *testing.T) {
	review, _, testDB := setupReviewServiceTest(t)

	result, err := review.SubmitReview(42, "Krishna", 5, "great")
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, result)
	assert.EqualValues(t, 0, countComments(t, testDB))
}

func TestReviewService_SubmitReview_Success(t *testing.T) {
	review, productRepo, testDB := setupReviewServiceTest(t)
	product := createProductWith(t, productRepo, "Reviewed Product")

	createOrderFor(t, testDB, "Krishna", "Das", product.LegacyID)

	result, err := review.SubmitReview(product.LegacyID, "Krishna", 4, "Solid product")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Comment.VerifiedPurchase)
	assert.Equal(t, "Krishna", result.Comment.Username)
	require.NotNil(t, result.Comment.Rating)
	assert.Equal(t, 4, *result.Comment.Rating)
	assert.Equal(t, 4, result.Rating)
	assert.Equal(t, 1, result.ReviewsCount)

	// Aggregate is persisted on the product
	stored, err := productRepo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Rating)
	assert.Equal(t, 1, stored.ReviewsCount)
}

func TestReviewService_SubmitReview_UnverifiedWithoutOrder(t *testing.T) {
	review, productRepo, _ := setupReviewServiceTest(t)
	product := createProductWith(t, productRepo, "Never Ordered")

	result, err := review.SubmitReview(product.LegacyID, "Krishna", 5, "bought elsewhere")
	require.NoError(t, err)
	assert.False(t, result.Comment.VerifiedPurchase)
}

func TestReviewService_SubmitReview_AggregatesAcrossReviews(t *testing.T) {
	review, productRepo, _ := setupReviewServiceTest(t)
	product := createProductWith(t, productRepo, "Popular Product")

	_, err := review.SubmitReview(product.LegacyID, "A", 5, "love it")
	require.NoError(t, err)
	_, err = review.SubmitReview(product.LegacyID, "B", 4, "like it")
	require.NoError(t, err)
	result, err := review.SubmitReview(product.LegacyID, "C", 4, "fine")
	require.NoError(t, err)

	// mean of 5,4,4 = 4.33 -> 4
	assert.Equal(t, 4, result.Rating)
	assert.Equal(t, 3, result.ReviewsCount)
}

func TestReviewService_AddComment_WithoutRating(t *testing.T) {
	review, productRepo, _ := setupReviewServiceTest(t)
	product := createProductWith(t, productRepo, "Commented Product")

	comment, err := review.AddComment(product.LegacyID, "Asha", "Is this in stock?", nil)
	require.NoError(t, err)
	assert.Nil(t, comment.Rating)

	// Unrated comment leaves the aggregate untouched
	stored, err := productRepo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Rating)
	assert.Equal(t, 0, stored.ReviewsCount)
}

func TestReviewService_AddComment_WithRatingRefreshesAggregate(t *testing.T) {
	review, productRepo, _ := setupReviewServiceTest(t)
	product := createProductWith(t, productRepo, "Commented Rated")

	three := 3
	comment, err := review.AddComment(product.LegacyID, "Asha", "Decent", &three)
	require.NoError(t, err)
	require.NotNil(t, comment.Rating)

	stored, err := productRepo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Rating)
	assert.Equal(t, 1, stored.ReviewsCount)
}

func TestReviewService_AddComment_InvalidRating(t *testing.T) {
	review, productRepo, testDB := setupReviewServiceTest(t)
	product := createProductWith(t, productRepo, "Strict Product")

	zero := 0
	comment, err := review.AddComment(product.LegacyID, "Asha", "hmm", &zero)
	assert.ErrorIs(t, err, ErrInvalidRating)
	assert.Nil(t, comment)
	assert.EqualValues(t, 0, countComments(t, testDB))
}

func TestReviewService_GetComments(t *testing.T) {
	review, productRepo, _ := setupReviewServiceTest(t)
	product := createProductWith(t, productRepo, "Listed Product")

	_, err := review.AddComment(product.LegacyID, "First", "first comment", nil)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = review.AddComment(product.LegacyID, "Second", "second comment", nil)
	require.NoError(t, err)

	comments, err := review.GetComments(product.LegacyID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "Second", comments[0].Username) // newest first

	_, err = review.GetComments(4242)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
