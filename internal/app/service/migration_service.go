package service

import (
	"errors"
	"time"

	"github.com/kdas/shopkart-backend/internal/app/model"
	"github.com/kdas/shopkart-backend/internal/app/repository"
	"github.com/kdas/shopkart-backend/internal/legacy"
	"github.com/kdas/shopkart-backend/pkg/logger"
	"gorm.io/gorm"
)

const commentBatchSize = 100

// MigrationService reconciles the legacy flat-file catalog into the store
// at process start. Re-running it against a fully migrated store is a
// no-op: the idempotency key per product is its legacy id.
type MigrationService struct {
	productRepo  repository.ProductRepository
	commentRepo  *repository.CommentRepository
	verification *VerificationService
	legacyFile   string
}

func NewMigrationService(
	productRepo repository.ProductRepository,
	commentRepo *repository.CommentRepository,
	verification *VerificationService,
	legacyFile string,
) *MigrationService {
	return &MigrationService{
		productRepo:  productRepo,
		commentRepo:  commentRepo,
		verification: verification,
		legacyFile:   legacyFile,
	}
}

// Run executes the pipeline: load legacy catalog, migrate missing products,
// migrate their embedded reviews, then seed sample comments when the
// comments collection is completely empty. Errors are logged and the
// pipeline continues; only the store connection (handled upstream) is
// allowed to abort startup.
func (s *MigrationService) Run() error {
	legacyProducts, err := legacy.LoadProducts(s.legacyFile)
	if err != nil {
		logger.Warn("Legacy catalog unreadable, skipping product migration", map[string]interface{}{
			"file":  s.legacyFile,
			"error": err.Error(),
		})
		legacyProducts = nil
	}

	if len(legacyProducts) > 0 {
		if err := s.migrateProducts(legacyProducts); err != nil {
			logger.Error("Product migration failed", err)
		}
	}

	if err := s.seedSampleComments(); err != nil {
		logger.Error("Sample comment seeding failed", err)
	}

	return nil
}

// migrateProducts inserts every legacy record whose legacy id is not yet
// present. The count comparison is an intentionally cheap "is migration
// needed" check; partial previous runs fall through to the per-record skip.
func (s *MigrationService) migrateProducts(legacyProducts []legacy.Product) error {
	count, err := s.productRepo.Count()
	if err != nil {
		return err
	}
	if count >= int64(len(legacyProducts)) {
		logger.Info("Product migration not needed", map[string]interface{}{
			"existing": count,
			"legacy":   len(legacyProducts),
		})
		return nil
	}

	logger.Info("Migrating legacy products", map[string]interface{}{
		"existing": count,
		"legacy":   len(legacyProducts),
	})

	migrated := 0
	for _, record := range legacyProducts {
		if _, err := s.productRepo.FindByLegacyID(record.ID); err == nil {
			continue // already migrated
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to check legacy id, skipping record", err, map[string]interface{}{
				"legacy_id": record.ID,
			})
			continue
		}

		product := legacyToProduct(record)
		if err := s.productRepo.Create(product); err != nil {
			logger.Error("Failed to migrate legacy product, skipping", err, map[string]interface{}{
				"legacy_id": record.ID,
			})
			continue
		}
		migrated++

		if len(record.Reviews) > 0 {
			if err := s.migrateReviews(product, record.Reviews); err != nil {
				logger.Error("Failed to migrate embedded reviews", err, map[string]interface{}{
					"legacy_id": record.ID,
				})
			}
		}
	}

	logger.Info("Legacy product migration finished", map[string]interface{}{
		"migrated": migrated,
	})
	return nil
}

// migrateReviews converts a newly migrated product's embedded reviews into
// comments, re-running the purchase matcher per review and preserving the
// original timestamps where present.
func (s *MigrationService) migrateReviews(product *model.Product, reviews []legacy.Review) error {
	comments := make([]model.Comment, 0, len(reviews))
	for _, review := range reviews {
		verified, err := s.verification.IsVerifiedPurchase(product.LegacyID, review.User)
		if err != nil {
			return err
		}

		createdAt := time.Now()
		if review.CreatedAt != nil {
			createdAt = *review.CreatedAt
		}

		comments = append(comments, model.Comment{
			ProductID:        product.ID,
			Username:         review.User,
			Rating:           review.Rating,
			Comment:          review.Comment,
			VerifiedPurchase: verified,
			CreatedAt:        createdAt,
		})
	}
	return s.commentRepo.BulkCreate(comments, commentBatchSize)
}

// seedSampleComments inserts two fixed comments onto the product with the
// smallest legacy id, but only when the comments collection is globally
// empty. The secondary product-detail view looks bare without any comments;
// this is a one-time convenience, not tied to a particular product.
func (s *MigrationService) seedSampleComments() error {
	count, err := s.commentRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	product, err := s.productRepo.FindMinLegacyID()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // nothing to seed onto
		}
		return err
	}

	five, four := 5, 4
	samples := []model.Comment{
		{
			ProductID: product.ID,
			Username:  "Ravi Kumar",
			Rating:    &five,
			Comment:   "Excellent quality, exactly as described. Very happy with this purchase!",
			CreatedAt: time.Now(),
		},
		{
			ProductID: product.ID,
			Username:  "Priya Sharma",
			Rating:    &four,
			Comment:   "Good product and quick delivery. Packaging could be better.",
			CreatedAt: time.Now(),
		},
	}
	if err := s.commentRepo.BulkCreate(samples, commentBatchSize); err != nil {
		return err
	}

	logger.Info("Seeded sample comments", map[string]interface{}{
		"legacy_id": product.LegacyID,
		"count":     len(samples),
	})
	return nil
}

func legacyToProduct(record legacy.Product) *model.Product {
	dateAdded := time.Now()
	if record.DateAdded != nil {
		dateAdded = *record.DateAdded
	}
	return &model.Product{
		LegacyID:      record.ID,
		Name:          record.Name,
		Categories:    record.Category,
		Images:        record.Image,
		Description:   record.Description,
		Price:         record.Price,
		OriginalPrice: record.OriginalPrice,
		Rating:        record.Rating,
		ReviewsCount:  record.ReviewsCount,
		SellerTag:     record.SellerTag,
		DeliveryDate:  record.DeliveryDate,
		DateAdded:     dateAdded,
	}
}
