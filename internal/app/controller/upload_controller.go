package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/kdas/shopkart-backend/internal/errors"
	"github.com/kdas/shopkart-backend/internal/storage"
	"github.com/kdas/shopkart-backend/pkg/logger"
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

type UploadController struct {
	storage *storage.ImageStorage
}

func NewUploadController(storage *storage.ImageStorage) *UploadController {
	return &UploadController{storage: storage}
}

// UploadImage accepts a multipart product image and stores it in S3;
// admin-only.
func (ctrl *UploadController) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Missing image file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := ctrl.storage.ValidateContentType(contentType, allowedImageTypes); err != nil {
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only JPEG, PNG and WebP images are allowed")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apperrors.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	url, err := ctrl.storage.UploadProductImage(c.Request.Context(), fileHeader.Filename, contentType, file)
	if err != nil {
		logger.Error("Image upload failed", err, map[string]interface{}{
			"filename": fileHeader.Filename,
		})
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to store image")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
