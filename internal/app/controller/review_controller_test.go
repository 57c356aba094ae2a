package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kdas/shopkart-backend/internal/app/model"
	"github.com/kdas/shopkart-backend/internal/app/repository"
	"github.com/kdas/shopkart-backend/internal/app/service"
	"github.com/kdas/shopkart-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReviewControllerTest(t *testing.T) (*gin.Engine, repository.ProductRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	commentRepo := repository.NewCommentRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)

	verification := service.NewVerificationService(orderRepo)
	rating := service.NewRatingService(commentRepo, productRepo)
	reviewService := service.NewReviewService(productRepo, commentRepo, verification, rating)
	reviewController := NewReviewController(reviewService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/products/:id/reviews", reviewController.SubmitReview)
	router.POST("/products/:id/comments", reviewController.AddComment)
	router.GET("/products/:id/comments", reviewController.GetComments)

	return router, productRepo, testDB
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestReviewController_SubmitReview_Success(t *testing.T) {
	router, productRepo, testDB := setupReviewControllerTest(t)

	product := &model.Product{Name: "Steel Bottle", Price: 299, DateAdded: time.Now()}
	require.NoError(t, productRepo.Create(product))

	order := &model.Order{
		OrderID:   fmt.Sprintf("ORD-%d", time.Now().UnixMilli()),
		FirstName: "Krishna",
		LastName:  "Das",
		Total:     299,
		Items:     []model.OrderItem{{ProductLegacyID: product.LegacyID, Name: product.Name, Price: 299, Quantity: 1}},
	}
	require.NoError(t, testDB.Create(order).Error)

	w := postJSON(t, router, fmt.Sprintf("/products/%d/reviews", product.LegacyID), gin.H{
		"username": "Krishna",
		"rating":   5,
		"comment":  "Keeps water cold all day",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(5), response["rating"])
	assert.Equal(t, float64(1), response["reviewsCount"])

	comment := response["comment"].(map[string]interface{})
	assert.Equal(t, true, comment["verifiedPurchase"])
	assert.Equal(t, "Krishna", comment["username"])
}

func TestReviewController_SubmitReview_ValidationErrors(t *testing.T) {
	router, productRepo, _ := setupReviewControllerTest(t)

	product := &model.Product{Name: "Steel Bottle", Price: 299, DateAdded: time.Now()}
	require.NoError(t, productRepo.Create(product))

	tests := []struct {
		name     string
		body     gin.H
		wantCode string
	}{
		{
			name:     "missing username",
			body:     gin.H{"username": "  ", "rating": 5, "comment": "nice"},
			wantCode: "REVIEW_USERNAME_REQUIRED",
		},
		{
			name:     "missing comment",
			body:     gin.H{"username": "Krishna", "rating": 5, "comment": ""},
			wantCode: "REVIEW_COMMENT_REQUIRED",
		},
		{
			name:     "rating out of range",
			body:     gin.H{"username": "Krishna", "rating": 6, "comment": "nice"},
			wantCode: "REVIEW_INVALID_RATING",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, router, fmt.Sprintf("/products/%d/reviews", product.LegacyID), tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.wantCode, response["error"])
		})
	}
}

func TestReviewController_SubmitReview_UnknownProduct(t *testing.T) {
	router, _, _ := setupReviewControllerTest(t)

	w := postJSON(t, router, "/products/999/reviews", gin.H{
		"username": "Krishna",
		"rating":   5,
		"comment":  "nice",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewController_SubmitReview_BadProductParam(t *testing.T) {
	router, _, _ := setupReviewControllerTest(t)

	w := postJSON(t, router, "/products/not-a-number/reviews", gin.H{
		"username": "Krishna",
		"rating":   5,
		"comment":  "nice",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewController_AddComment_WithoutRating(t *testing.T) {
	router, productRepo, _ := setupReviewControllerTest(t)

	product := &model.Product{Name: "Steel Bottle", Price: 299, DateAdded: time.Now()}
	require.NoError(t, productRepo.Create(product))

	w := postJSON(t, router, fmt.Sprintf("/products/%d/comments", product.LegacyID), gin.H{
		"username": "Meera",
		"comment":  "Is this dishwasher safe?",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// A plain comment never moves the aggregate
	fetched, err := productRepo.FindByLegacyID(product.LegacyID)
	require.NoError(t, err)
	assert.Equal(t, 0, fetched.Rating)
	assert.Equal(t, 0, fetched.ReviewsCount)
}

func TestReviewController_GetComments(t *testing.T) {
	router, productRepo, _ := setupReviewControllerTest(t)

	product := &model.Product{Name: "Steel Bottle", Price: 299, DateAdded: time.Now()}
	require.NoError(t, productRepo.Create(product))

	for _, text := range []string{"first", "second"} {
		w := postJSON(t, router, fmt.Sprintf("/products/%d/comments", product.LegacyID), gin.H{
			"username": "Meera",
			"comment":  text,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/products/%d/comments", product.LegacyID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	comments := response["comments"].([]interface{})
	assert.Len(t, comments, 2)
}
