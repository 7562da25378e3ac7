package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel is the base model for all entities
type BaseModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt *gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty" swaggerignore:"true"`
}

// BeforeCreate hook to generate UUID if not set
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// UUIDSlice is a list of UUIDs stored as a JSONB column
type UUIDSlice []uuid.UUID

// Value implements driver.Valuer
func (s UUIDSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (s *UUIDSlice) Scan(value interface{}) error {
	if value == nil {
		*s = UUIDSlice{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported type for UUIDSlice: %T", value)
	}
}

// GormDataType tells GORM which column type to use
func (UUIDSlice) GormDataType() string {
	return "jsonb"
}

// GetAllModels returns all models for GORM AutoMigrate
func GetAllModels() []interface{} {
	return []interface{}{
		// Catalog and schedule models
		&Service{},
		&BusinessHours{},
		&BlockedDate{},

		// Booking models
		&Booking{},

		// Gallery models
		&GalleryItem{},

		// Auth models
		&AdminSession{},
	}
}
