package repo

import (
	"fluidbook/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GalleryRepository handles gallery data access
type GalleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository creates a new gallery repository
func NewGalleryRepository(db *gorm.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

// List returns gallery items in display order, newest first within the same order
func (r *GalleryRepository) List() ([]models.GalleryItem, error) {
	var items []models.GalleryItem
	err := r.db.Order("display_order ASC, created_at DESC").Find(&items).Error
	return items, err
}

// GetByID gets a gallery item by ID
func (r *GalleryRepository) GetByID(id uuid.UUID) (*models.GalleryItem, error) {
	var item models.GalleryItem
	err := r.db.Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create creates a new gallery item
func (r *GalleryRepository) Create(item *models.GalleryItem) error {
	return r.db.Create(item).Error
}

// Delete removes a gallery item
func (r *GalleryRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.GalleryItem{}, "id = ?", id).Error
}
