package repository

import (
	"github.com/kdas/shopkart-backend/internal/app/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a single comment
func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// BulkCreate inserts comments in batches; used by the migration pipeline
func (r *CommentRepository) BulkCreate(comments []model.Comment, batchSize int) error {
	if len(comments) == 0 {
		return nil
	}
	return r.db.CreateInBatches(comments, batchSize).Error
}

// FindByProductID returns all comments for a product, newest first
func (r *CommentRepository) FindByProductID(productID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// FindRatedByProductID returns comments for a product that carry a rating
func (r *CommentRepository) FindRatedByProductID(productID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.Where("product_id = ? AND rating IS NOT NULL", productID).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Count returns the global comment count across all products
func (r *CommentRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Comment{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteByProductID removes all comments for a product. Runs before a
// product delete so no comment is left referencing a missing product.
func (r *CommentRepository) DeleteByProductID(productID uint) error {
	return r.db.Where("product_id = ?", productID).Delete(&model.Comment{}).Error
}
