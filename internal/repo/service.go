package repo

import (
	"fluidbook/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceRepository handles service catalog data access
type ServiceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new service repository
func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// GetByID gets a service by ID
func (r *ServiceRepository) GetByID(id uuid.UUID) (*models.Service, error) {
	var service models.Service
	err := r.db.Where("id = ?", id).First(&service).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// List returns services in display order. When activeOnly is true,
// inactive services are filtered out.
func (r *ServiceRepository) List(activeOnly bool) ([]models.Service, error) {
	var services []models.Service
	query := r.db.Order("display_order ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Find(&services).Error
	return services, err
}

// GetByIDs resolves a set of service ids; unknown ids are silently dropped
func (r *ServiceRepository) GetByIDs(ids []uuid.UUID) ([]models.Service, error) {
	var services []models.Service
	err := r.db.Where("id IN ?", ids).Find(&services).Error
	return services, err
}

// Create creates a new service
func (r *ServiceRepository) Create(service *models.Service) error {
	return r.db.Create(service).Error
}

// Update updates a service
func (r *ServiceRepository) Update(service *models.Service) error {
	return r.db.Save(service).Error
}

// UpdatePrice sets a new price for a service
func (r *ServiceRepository) UpdatePrice(id uuid.UUID, price float64) (*models.Service, error) {
	result := r.db.Model(&models.Service{}).Where("id = ?", id).Update("price", price)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete removes a service
func (r *ServiceRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Service{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
