package repository

import (
	"github.com/kdas/shopkart-backend/internal/app/model"
	"github.com/kdas/shopkart-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindByLegacyID(legacyID int) (*model.Product, error)
	FindMinLegacyID() (*model.Product, error)
	Count() (int64, error)
	Update(product *model.Product) error
	UpdateRating(id uint, rating, reviewsCount int) error
	Delete(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts the product and allocates its legacy id when unset.
// Allocation (max existing + 1, starting at 1) runs inside a transaction;
// the unique index on legacy_id guards against concurrent allocation of
// the same value.
func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":      product.Name,
		"legacy_id": product.LegacyID,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if product.LegacyID == 0 {
			var maxLegacyID int
			if err := tx.Model(&model.Product{}).
				Select("COALESCE(MAX(legacy_id), 0)").
				Scan(&maxLegacyID).Error; err != nil {
				return err
			}
			product.LegacyID = maxLegacyID + 1
		}
		return tx.Create(product).Error
	})
	if err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name":      product.Name,
			"legacy_id": product.LegacyID,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"legacy_id":  product.LegacyID,
	})
	return nil
}

func (r *productRepository) FindAll() ([]model.Product, error) {
	var products []model.Product
	if err := r.db.Order("legacy_id ASC").Find(&products).Error; err != nil {
		logger.Error("Failed to find products in database", err)
		return nil, err
	}
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindByLegacyID(legacyID int) (*model.Product, error) {
	var product model.Product
	if err := r.db.Where("legacy_id = ?", legacyID).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindMinLegacyID returns the product with the smallest legacy id.
func (r *productRepository) FindMinLegacyID() (*model.Product, error) {
	var product model.Product
	if err := r.db.Order("legacy_id ASC").First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
		"legacy_id":  product.LegacyID,
	})

	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

// UpdateRating writes the recomputed aggregate pair onto the product,
// overwriting any prior cached value.
func (r *productRepository) UpdateRating(id uint, rating, reviewsCount int) error {
	if err := r.db.Model(&model.Product{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating":        rating,
			"reviews_count": reviewsCount,
		}).Error; err != nil {
		logger.Error("Failed to update product rating in database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}

func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	if err := r.db.Delete(&model.Product{}, id).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	return nil
}
