package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kdas/shopkart-backend/internal/app/model"
	"github.com/kdas/shopkart-backend/internal/app/service"
	apperrors "github.com/kdas/shopkart-backend/internal/errors"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

type productInput struct {
	Name          string   `json:"name"`
	Categories    []string `json:"category"`
	Images        []string `json:"image"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice"`
	SellerTag     string   `json:"sellerTag"`
	DeliveryDate  string   `json:"deliveryDate"`
}

func (in *productInput) toModel() *model.Product {
	return &model.Product{
		Name:          in.Name,
		Categories:    in.Categories,
		Images:        in.Images,
		Description:   in.Description,
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		SellerTag:     in.SellerTag,
		DeliveryDate:  in.DeliveryDate,
	}
}

// GetProducts lists the full catalog
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	products, err := ctrl.productService.ListProducts()
	if err != nil {
		apperrors.InternalError(c, "Failed to load products")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProduct fetches a single product by its numeric id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	legacyID, ok := parseLegacyID(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProductByLegacyID(legacyID)
	if err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct handles admin product creation
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	product := input.toModel()
	if err := ctrl.productService.CreateProduct(product); err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles admin product edits
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	legacyID, ok := parseLegacyID(c)
	if !ok {
		return
	}

	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	product, err := ctrl.productService.UpdateProduct(legacyID, input.toModel())
	if err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles admin product deletion
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	legacyID, ok := parseLegacyID(c)
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(legacyID); err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// RecomputeRating re-derives the cached rating pair from the comment set;
// admin-only reconciliation endpoint.
func (ctrl *ProductController) RecomputeRating(c *gin.Context) {
	legacyID, ok := parseLegacyID(c)
	if !ok {
		return
	}

	rating, count, err := ctrl.productService.RecomputeRating(legacyID)
	if err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rating":       rating,
		"reviewsCount": count,
	})
}

func parseLegacyID(c *gin.Context) (int, bool) {
	legacyID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product id")
		return 0, false
	}
	return legacyID, true
}

func respondProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
	case errors.Is(err, service.ErrInvalidProductName):
		apperrors.BadRequest(c, apperrors.ProductInvalidName, "Product name must be 3-150 characters")
	case errors.Is(err, service.ErrInvalidProductPrice):
		apperrors.BadRequest(c, apperrors.ProductInvalidPrice, "Product price must not be negative")
	case errors.Is(err, service.ErrDescriptionTooLong):
		apperrors.BadRequest(c, apperrors.ProductDescTooLong, "Product description is too long")
	default:
		apperrors.InternalError(c, "")
	}
}
