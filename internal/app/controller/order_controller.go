package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kdas/shopkart-backend/internal/app/service"
	apperrors "github.com/kdas/shopkart-backend/internal/errors"
)

type OrderController struct {
	orderService *service.OrderService
}

func NewOrderController(orderService *service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// Checkout places an order
func (ctrl *OrderController) Checkout(c *gin.Context) {
	var input service.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	order, err := ctrl.orderService.Checkout(input)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GetOrder fetches an order by its ORD- identifier
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	order, err := ctrl.orderService.GetOrderByOrderID(c.Param("orderId"))
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetOrders lists all orders; admin-only
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	orders, err := ctrl.orderService.GetOrders()
	if err != nil {
		apperrors.InternalError(c, "Failed to load orders")
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// ExportOrders streams all orders as a CSV download; admin-only
func (ctrl *OrderController) ExportOrders(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="orders.csv"`)

	if err := ctrl.orderService.ExportCSV(c.Writer); err != nil {
		apperrors.InternalError(c, "Failed to export orders")
		return
	}
}

func respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCustomerMissing):
		apperrors.BadRequest(c, apperrors.OrderCustomerMissing, "Customer first and last name are required")
	case errors.Is(err, service.ErrEmptyItems):
		apperrors.BadRequest(c, apperrors.OrderEmptyItems, "Order must contain at least one item")
	case errors.Is(err, service.ErrInvalidQuantity):
		apperrors.BadRequest(c, apperrors.OrderInvalidQuantity, "Item quantity must be at least 1")
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
	case errors.Is(err, service.ErrOrderNotFound):
		apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
	default:
		apperrors.InternalError(c, "")
	}
}
