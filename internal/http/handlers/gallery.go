package handlers

import (
	"net/http"

	"fluidbook/internal/repo"
	"fluidbook/internal/services"
	"fluidbook/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// GalleryHandler handles gallery endpoints
type GalleryHandler struct {
	galleryRepo *repo.GalleryRepository
	storage     *services.StorageService
}

// NewGalleryHandler creates a new gallery handler
func NewGalleryHandler(galleryRepo *repo.GalleryRepository, storage *services.StorageService) *GalleryHandler {
	return &GalleryHandler{galleryRepo: galleryRepo, storage: storage}
}

// List godoc
// @Summary List gallery items
// @Description Get all gallery items ordered by display order, newest first
// @Tags gallery
// @Produce json
// @Success 200 {array} models.GalleryItem
// @Failure 500 {object} map[string]string
// @Router /gallery [get]
func (h *GalleryHandler) List(c echo.Context) error {
	items, err := h.galleryRepo.List()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch gallery items"})
	}
	return c.JSON(http.StatusOK, items)
}

// Upload godoc
// @Summary Upload gallery item
// @Description Upload an image or video to the gallery bucket
// @Tags gallery
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Media file"
// @Param caption formData string false "Caption"
// @Param category formData string false "Category"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /admin/gallery/upload [post]
func (h *GalleryHandler) Upload(c echo.Context) error {
	if h.storage == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "File storage not configured"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No file uploaded"})
	}

	uploaded, err := h.storage.UploadGalleryFile(fileHeader)
	if err != nil {
		log.Error().Err(err).Msg("Gallery upload failed")
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	fileType := "image"
	if len(uploaded.ContentType) >= 5 && uploaded.ContentType[:5] == "video" {
		fileType = "video"
	}

	category := c.FormValue("category")
	if category == "" {
		category = "general"
	}

	item := &models.GalleryItem{
		Filename:     uploaded.Filename,
		OriginalName: fileHeader.Filename,
		FileType:     fileType,
		FileSize:     uploaded.Size,
		URL:          uploaded.URL,
		S3Key:        uploaded.S3Key,
		Caption:      c.FormValue("caption"),
		Category:     category,
	}

	if err := h.galleryRepo.Create(item); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Upload failed"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "File uploaded successfully",
		"file":    item,
	})
}

// Delete godoc
// @Summary Delete gallery item
// @Description Remove a gallery item and its stored file
// @Tags gallery
// @Produce json
// @Param id path string true "Gallery item ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/gallery/{id} [delete]
func (h *GalleryHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid gallery item ID"})
	}

	item, err := h.galleryRepo.GetByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "File not found"})
	}

	if h.storage != nil && item.S3Key != "" {
		if err := h.storage.DeleteFile(item.S3Key); err != nil {
			log.Warn().Err(err).Str("s3_key", item.S3Key).Msg("Failed to delete stored file")
		}
	}

	if err := h.galleryRepo.Delete(id); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Delete failed"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "File deleted successfully",
	})
}
