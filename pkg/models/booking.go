package models

// Service represents a bookable detailing service in the catalog
type Service struct {
	BaseModel
	Name            string   `gorm:"not null" json:"name" validate:"required"`
	Description     string   `json:"description"`
	DurationMinutes int      `gorm:"not null;default:60" json:"duration_minutes" validate:"required,gt=0"`
	Price           *float64 `gorm:"type:decimal(10,2)" json:"price"`
	ShowPrice       bool     `gorm:"default:true" json:"show_price"`
	IsActive        bool     `gorm:"default:true" json:"is_active"`
	DisplayOrder    int      `gorm:"default:0" json:"display_order"`
}

// CreateServiceRequest represents an admin request to add a catalog entry
type CreateServiceRequest struct {
	Name            string   `json:"name" validate:"required"`
	Description     string   `json:"description"`
	DurationMinutes int      `json:"duration_minutes" validate:"required,gt=0"`
	Price           *float64 `json:"price"`
	ShowPrice       *bool    `json:"show_price"`
}

// UpdateServiceRequest represents a partial admin update; nil fields keep
// their current values
type UpdateServiceRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	DurationMinutes *int     `json:"duration_minutes" validate:"omitempty,gt=0"`
	Price           *float64 `json:"price"`
	ShowPrice       *bool    `json:"show_price"`
	IsActive        *bool    `json:"is_active"`
	DisplayOrder    *int     `json:"display_order"`
}

// Booking statuses
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// Booking represents an appointment booked by a customer
type Booking struct {
	BaseModel
	CustomerName  string    `gorm:"not null" json:"customer_name" validate:"required"`
	CustomerEmail string    `gorm:"not null;index" json:"customer_email" validate:"required,email"`
	CustomerPhone string    `gorm:"not null" json:"customer_phone" validate:"required"`
	ServiceIDs    UUIDSlice `gorm:"type:jsonb;not null" json:"service_ids" validate:"required,min=1"`
	BookingDate   string    `gorm:"type:varchar(10);not null;index" json:"booking_date" validate:"required"` // YYYY-MM-DD
	BookingTime   string    `gorm:"type:varchar(5);not null" json:"booking_time" validate:"required"`        // HH:MM
	TotalDuration int       `gorm:"not null" json:"total_duration"`
	TotalPrice    float64   `gorm:"type:decimal(10,2)" json:"total_price"`
	PaymentMethod string    `gorm:"default:'cash'" json:"payment_method"`
	PaymentStatus string    `gorm:"default:'pending'" json:"payment_status"`
	Status        string    `gorm:"default:'confirmed';index" json:"status"`
	Notes         string    `json:"notes"`
}

// CreateBookingRequest represents a booking submission from the public site
type CreateBookingRequest struct {
	CustomerName  string   `json:"customer_name" validate:"required"`
	CustomerEmail string   `json:"customer_email" validate:"required,email"`
	CustomerPhone string   `json:"customer_phone" validate:"required"`
	ServiceIDs    []string `json:"service_ids" validate:"required,min=1"`
	BookingDate   string   `json:"booking_date" validate:"required,datetime=2006-01-02"`
	BookingTime   string   `json:"booking_time" validate:"required,datetime=15:04"`
	PaymentMethod string   `json:"payment_method"`
	Notes         string   `json:"notes"`
}

// UpdateBookingRequest represents an admin status/payment update
type UpdateBookingRequest struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"payment_status"`
}
