package models

import "time"

// BusinessHours represents opening hours for one weekday (0 = Sunday)
type BusinessHours struct {
	BaseModel
	DayOfWeek int    `gorm:"not null;uniqueIndex;check:day_of_week >= 0 AND day_of_week <= 6" json:"day_of_week"`
	IsOpen    bool   `gorm:"default:true" json:"is_open"`
	OpenTime  string `gorm:"type:varchar(5)" json:"open_time"`  // HH:MM, meaningless when closed
	CloseTime string `gorm:"type:varchar(5)" json:"close_time"` // HH:MM, meaningless when closed
}

// UpdateBusinessHoursRequest represents an admin hours update for one weekday
type UpdateBusinessHoursRequest struct {
	IsOpen    bool   `json:"is_open"`
	OpenTime  string `json:"open_time" validate:"omitempty,datetime=15:04"`
	CloseTime string `json:"close_time" validate:"omitempty,datetime=15:04"`
}

// BlockedDate represents a calendar date closed for bookings regardless of hours
type BlockedDate struct {
	BaseModel
	Date   string `gorm:"type:varchar(10);not null;uniqueIndex" json:"date"` // YYYY-MM-DD
	Reason string `json:"reason"`
}

// BlockDateRequest represents an admin request to block a date
type BlockDateRequest struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Reason string `json:"reason"`
}

// AdminSession represents an authenticated admin session
type AdminSession struct {
	ID        string    `gorm:"type:varchar(64);primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
}
