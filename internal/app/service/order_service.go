package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/kdas/shopkart-backend/internal/app/model"
	"github.com/kdas/shopkart-backend/internal/app/repository"
	"github.com/kdas/shopkart-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrEmptyItems      = errors.New("order must contain at least one item")
	ErrInvalidQuantity = errors.New("item quantity must be at least 1")
	ErrCustomerMissing = errors.New("customer first and last name are required")
)

// CheckoutItem is a requested line item; only the product reference and
// quantity are trusted from the caller, name and price are snapshotted from
// the store.
type CheckoutItem struct {
	ProductLegacyID int `json:"productId"`
	Quantity        int `json:"quantity"`
}

type CheckoutInput struct {
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	Address   string         `json:"address"`
	City      string         `json:"city"`
	State     string         `json:"state"`
	Zip       string         `json:"zip"`
	Items     []CheckoutItem `json:"items"`
}

type OrderService struct {
	orderRepo   *repository.OrderRepository
	productRepo repository.ProductRepository
}

func NewOrderService(orderRepo *repository.OrderRepository, productRepo repository.ProductRepository) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// Checkout creates an immutable order. Item name/price are captured from
// the current product records and frozen; later product edits never touch
// them. The public order id is ORD- plus the submission timestamp.
func (s *OrderService) Checkout(input CheckoutInput) (*model.Order, error) {
	if input.FirstName == "" || input.LastName == "" {
		return nil, ErrCustomerMissing
	}
	if len(input.Items) == 0 {
		return nil, ErrEmptyItems
	}

	items := make([]model.OrderItem, 0, len(input.Items))
	total := 0.0
	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		product, err := s.productRepo.FindByLegacyID(item.ProductLegacyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, err
		}
		items = append(items, model.OrderItem{
			ProductLegacyID: product.LegacyID,
			Name:            product.Name,
			Price:           product.Price,
			Quantity:        item.Quantity,
		})
		total += product.Price * float64(item.Quantity)
	}

	order := &model.Order{
		OrderID:   fmt.Sprintf("ORD-%d", time.Now().UnixMilli()),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Address:   input.Address,
		City:      input.City,
		State:     input.State,
		Zip:       input.Zip,
		Total:     total,
		Items:     items,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	logger.Info("Order placed", map[string]interface{}{
		"order_id":   order.OrderID,
		"item_count": len(order.Items),
		"total":      order.Total,
	})
	return order, nil
}

func (s *OrderService) GetOrders() ([]model.Order, error) {
	return s.orderRepo.FindAll()
}

func (s *OrderService) GetOrderByOrderID(orderID string) (*model.Order, error) {
	order, err := s.orderRepo.FindByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// ExportCSV streams all orders as CSV, one row per line item.
func (s *OrderService) ExportCSV(w io.Writer) error {
	orders, err := s.orderRepo.FindAll()
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	header := []string{
		"order_id", "created_at", "first_name", "last_name", "email", "phone",
		"address", "city", "state", "zip", "product_id", "product_name",
		"price", "quantity",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, order := range orders {
		for _, item := range order.Items {
			row := []string{
				order.OrderID,
				order.CreatedAt.Format(time.RFC3339),
				order.FirstName,
				order.LastName,
				order.Email,
				order.Phone,
				order.Address,
				order.City,
				order.State,
				order.Zip,
				strconv.Itoa(item.ProductLegacyID),
				item.Name,
				strconv.FormatFloat(item.Price, 'f', 2, 64),
				strconv.Itoa(item.Quantity),
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}
