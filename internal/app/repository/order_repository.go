package repository

import (
	"github.com/kdas/shopkart-backend/internal/app/model"
	"github.com/kdas/shopkart-backend/pkg/logger"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts the order together with its items
func (r *OrderRepository) Create(order *model.Order) error {
	logger.Debug("Creating order in database", map[string]interface{}{
		"order_id":   order.OrderID,
		"item_count": len(order.Items),
	})

	if err := r.db.Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"order_id": order.OrderID,
		})
		return err
	}
	return nil
}

// FindAll returns all orders with their items, newest first
func (r *OrderRepository) FindAll() ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByOrderID looks an order up by its public ORD- identifier
func (r *OrderRepository) FindByOrderID(orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Items").
		Where("order_id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByProductLegacyID returns every order containing a line item for the
// given product legacy id; the purchase matcher scans these.
func (r *OrderRepository) FindByProductLegacyID(legacyID int) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items").
		Joins("JOIN order_items ON order_items.order_ref = orders.id").
		Where("order_items.product_legacy_id = ?", legacyID).
		Distinct("orders.*").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
