package repo

import (
	"errors"
	"strings"

	"fluidbook/pkg/models"

	"gorm.io/gorm"
)

// ErrDateAlreadyBlocked is returned when inserting a blocked date that already exists
var ErrDateAlreadyBlocked = errors.New("date already blocked")

// ScheduleRepository handles business hours and blocked dates data access
type ScheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// ListBusinessHours returns the weekly hours ordered by weekday
func (r *ScheduleRepository) ListBusinessHours() ([]models.BusinessHours, error) {
	var hours []models.BusinessHours
	err := r.db.Order("day_of_week ASC").Find(&hours).Error
	return hours, err
}

// UpdateBusinessHours updates one weekday's hours
func (r *ScheduleRepository) UpdateBusinessHours(dayOfWeek int, req models.UpdateBusinessHoursRequest) (*models.BusinessHours, error) {
	var hours models.BusinessHours
	if err := r.db.Where("day_of_week = ?", dayOfWeek).First(&hours).Error; err != nil {
		return nil, err
	}

	hours.IsOpen = req.IsOpen
	hours.OpenTime = req.OpenTime
	hours.CloseTime = req.CloseTime

	if err := r.db.Save(&hours).Error; err != nil {
		return nil, err
	}
	return &hours, nil
}

// ListBlockedDates returns all blocked dates
func (r *ScheduleRepository) ListBlockedDates() ([]models.BlockedDate, error) {
	var blocked []models.BlockedDate
	err := r.db.Order("date ASC").Find(&blocked).Error
	return blocked, err
}

// GetBlockedDate returns the blocked-date row for one date, if present
func (r *ScheduleRepository) GetBlockedDate(date string) (*models.BlockedDate, error) {
	var blocked models.BlockedDate
	err := r.db.Where("date = ?", date).First(&blocked).Error
	if err != nil {
		return nil, err
	}
	return &blocked, nil
}

// CreateBlockedDate blocks a date. Returns ErrDateAlreadyBlocked on the
// unique-index violation so callers can report the conflict as non-fatal.
func (r *ScheduleRepository) CreateBlockedDate(blocked *models.BlockedDate) error {
	err := r.db.Create(blocked).Error
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return ErrDateAlreadyBlocked
	}
	return err
}

// DeleteBlockedDate unblocks a date
func (r *ScheduleRepository) DeleteBlockedDate(date string) error {
	result := r.db.Delete(&models.BlockedDate{}, "date = ?", date)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
