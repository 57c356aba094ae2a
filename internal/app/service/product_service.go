package service

import (
	"errors"
	"time"

	"github.com/kdas/shopkart-backend/internal/app/model"
	"github.com/kdas/shopkart-backend/internal/app/repository"
	"github.com/kdas/shopkart-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrInvalidProductName  = errors.New("product name must be 3-150 characters")
	ErrInvalidProductPrice = errors.New("product price must not be negative")
	ErrDescriptionTooLong  = errors.New("product description must be at most 2000 characters")
)

// ProductCache caches the full product listing; implementations must be
// safe to skip entirely (the service treats a nil cache as disabled).
type ProductCache interface {
	GetProducts() ([]model.Product, bool)
	SetProducts(products []model.Product)
	Invalidate()
}

type ProductService interface {
	ListProducts() ([]model.Product, error)
	GetProductByLegacyID(legacyID int) (*model.Product, error)
	CreateProduct(product *model.Product) error
	UpdateProduct(legacyID int, updated *model.Product) (*model.Product, error)
	DeleteProduct(legacyID int) error
	RecomputeRating(legacyID int) (rating int, count int, err error)
}

type productService struct {
	productRepo repository.ProductRepository
	commentRepo *repository.CommentRepository
	rating      *RatingService
	cache       ProductCache
}

func NewProductService(
	productRepo repository.ProductRepository,
	commentRepo *repository.CommentRepository,
	rating *RatingService,
	cache ProductCache,
) ProductService {
	return &productService{
		productRepo: productRepo,
		commentRepo: commentRepo,
		rating:      rating,
		cache:       cache,
	}
}

func (s *productService) ListProducts() ([]model.Product, error) {
	if s.cache != nil {
		if products, ok := s.cache.GetProducts(); ok {
			return products, nil
		}
	}

	products, err := s.productRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetProducts(products)
	}
	return products, nil
}

func (s *productService) GetProductByLegacyID(legacyID int) (*model.Product, error) {
	product, err := s.productRepo.FindByLegacyID(legacyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"legacy_id": legacyID,
		})
		return nil, err
	}
	return product, nil
}

// CreateProduct validates and inserts an admin-created product. The legacy
// id is allocated by the repository; derived rating fields start at zero.
func (s *productService) CreateProduct(product *model.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}

	product.LegacyID = 0
	product.Rating = 0
	product.ReviewsCount = 0
	if product.DateAdded.IsZero() {
		product.DateAdded = time.Now()
	}

	if err := s.productRepo.Create(product); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate()
	}

	logger.Info("Product created", map[string]interface{}{
		"legacy_id": product.LegacyID,
		"name":      product.Name,
	})
	return nil
}

// UpdateProduct applies an admin edit. The legacy id and the derived
// rating/reviews_count pair are never taken from the caller.
func (s *productService) UpdateProduct(legacyID int, updated *model.Product) (*model.Product, error) {
	if err := validateProduct(updated); err != nil {
		return nil, err
	}

	product, err := s.GetProductByLegacyID(legacyID)
	if err != nil {
		return nil, err
	}

	product.Name = updated.Name
	product.Categories = updated.Categories
	product.Images = updated.Images
	product.Description = updated.Description
	product.Price = updated.Price
	product.OriginalPrice = updated.OriginalPrice
	product.SellerTag = updated.SellerTag
	product.DeliveryDate = updated.DeliveryDate

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate()
	}
	return product, nil
}

// DeleteProduct removes the product and its comments. Comments go first so
// no comment is ever left referencing a missing product.
func (s *productService) DeleteProduct(legacyID int) error {
	product, err := s.GetProductByLegacyID(legacyID)
	if err != nil {
		return err
	}

	if err := s.commentRepo.DeleteByProductID(product.ID); err != nil {
		logger.Error("Failed to delete product comments", err, map[string]interface{}{
			"legacy_id": legacyID,
		})
		return err
	}
	if err := s.productRepo.Delete(product.ID); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate()
	}

	logger.Info("Product deleted", map[string]interface{}{
		"legacy_id": legacyID,
	})
	return nil
}

// RecomputeRating re-derives the cached rating pair from the comment set.
// Exposed to admins as the reconciliation path for the accepted consistency
// window between comment insert and rating update.
func (s *productService) RecomputeRating(legacyID int) (int, int, error) {
	product, err := s.GetProductByLegacyID(legacyID)
	if err != nil {
		return 0, 0, err
	}

	rating, count, err := s.rating.Recompute(product.ID)
	if err != nil {
		return 0, 0, err
	}

	if s.cache != nil {
		s.cache.Invalidate()
	}
	return rating, count, nil
}

func validateProduct(product *model.Product) error {
	nameLen := len(product.Name)
	if nameLen < 3 || nameLen > 150 {
		return ErrInvalidProductName
	}
	if product.Price < 0 {
		return ErrInvalidProductPrice
	}
	if len(product.Description) > 2000 {
		return ErrDescriptionTooLong
	}
	return nil
}
