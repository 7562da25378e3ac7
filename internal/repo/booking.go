package repo

import (
	"fluidbook/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingRepository handles booking data access
type BookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// GetByID gets a booking by ID
func (r *BookingRepository) GetByID(id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.Where("id = ?", id).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// List returns all bookings, newest appointment first
func (r *BookingRepository) List() ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Order("booking_date DESC, booking_time DESC").Find(&bookings).Error
	return bookings, err
}

// ListByDate returns all bookings for one calendar date
func (r *BookingRepository) ListByDate(date string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Where("booking_date = ?", date).Find(&bookings).Error
	return bookings, err
}

// CountActiveAtSlot counts non-cancelled bookings occupying the exact (date, time) pair
func (r *BookingRepository) CountActiveAtSlot(date, timeSlot string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Booking{}).
		Where("booking_date = ? AND booking_time = ? AND status != ?", date, timeSlot, models.BookingStatusCancelled).
		Count(&count).Error
	return count, err
}

// Create creates a new booking
func (r *BookingRepository) Create(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

// Update updates a booking
func (r *BookingRepository) Update(booking *models.Booking) error {
	return r.db.Save(booking).Error
}

// Delete removes a booking
func (r *BookingRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Booking{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
