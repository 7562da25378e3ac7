package auth

import (
	"time"

	"fluidbook/pkg/models"

	"gorm.io/gorm"
)

// GormSessionStore is the database-backed SessionStore
type GormSessionStore struct {
	db *gorm.DB
}

// NewGormSessionStore creates a new session store
func NewGormSessionStore(db *gorm.DB) *GormSessionStore {
	return &GormSessionStore{db: db}
}

// Put stores a session
func (s *GormSessionStore) Put(session *models.AdminSession) error {
	return s.db.Create(session).Error
}

// Lookup finds a session by id
func (s *GormSessionStore) Lookup(id string) (*models.AdminSession, error) {
	var session models.AdminSession
	if err := s.db.Where("id = ?", id).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// Expire removes a session
func (s *GormSessionStore) Expire(id string) error {
	return s.db.Delete(&models.AdminSession{}, "id = ?", id).Error
}

// DeleteExpired removes all sessions past their expiry
func (s *GormSessionStore) DeleteExpired(now time.Time) (int64, error) {
	result := s.db.Delete(&models.AdminSession{}, "expires_at < ?", now)
	return result.RowsAffected, result.Error
}
