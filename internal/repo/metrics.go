package repo

import (
	"strings"

	"fluidbook/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServicePopularity is one row of the service performance rollup
type ServicePopularity struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	BookingCount int64     `json:"booking_count"`
	TotalRevenue float64   `json:"total_revenue"`
}

// CustomerSummary is one customer's booking history rollup, keyed by email
type CustomerSummary struct {
	CustomerEmail string  `json:"customer_email"`
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	BookingCount  int64   `json:"booking_count"`
	TotalSpent    float64 `json:"total_spent"`
	FirstBooking  string  `json:"first_booking"`
	LastBooking   string  `json:"last_booking"`
	// Comma-joined dates, newest first; see RecentBookingDates
	BookingDates string `json:"booking_dates"`
}

// RecentBookingDates returns up to limit of the customer's most recent booking dates
func (c CustomerSummary) RecentBookingDates(limit int) []string {
	if c.BookingDates == "" {
		return nil
	}
	dates := strings.Split(c.BookingDates, ",")
	if len(dates) > limit {
		dates = dates[:limit]
	}
	return dates
}

// DayOfWeekTrend is the booking count for one weekday (0 = Sunday)
type DayOfWeekTrend struct {
	DayOfWeek    int   `json:"day_of_week"`
	BookingCount int64 `json:"booking_count"`
}

// PendingPayments is the rollup of unpaid, non-cancelled bookings
type PendingPayments struct {
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

// MetricsRepository runs the aggregate queries behind the assistant's
// business context snapshot. All queries are read-only and independent.
type MetricsRepository struct {
	db *gorm.DB
}

// NewMetricsRepository creates a new metrics repository
func NewMetricsRepository(db *gorm.DB) *MetricsRepository {
	return &MetricsRepository{db: db}
}

// CountBookings counts all bookings ever made
func (r *MetricsRepository) CountBookings() (int64, error) {
	var count int64
	err := r.db.Raw("SELECT COUNT(*) FROM bookings WHERE deleted_at IS NULL").Scan(&count).Error
	return count, err
}

// CountBookingsOn counts bookings on one date
func (r *MetricsRepository) CountBookingsOn(date string) (int64, error) {
	var count int64
	err := r.db.Raw("SELECT COUNT(*) FROM bookings WHERE deleted_at IS NULL AND booking_date = ?", date).Scan(&count).Error
	return count, err
}

// CountBookingsSince counts bookings on or after a date
func (r *MetricsRepository) CountBookingsSince(date string) (int64, error) {
	var count int64
	err := r.db.Raw("SELECT COUNT(*) FROM bookings WHERE deleted_at IS NULL AND booking_date >= ?", date).Scan(&count).Error
	return count, err
}

// CountBookingsBetween counts bookings in [from, to)
func (r *MetricsRepository) CountBookingsBetween(from, to string) (int64, error) {
	var count int64
	err := r.db.Raw("SELECT COUNT(*) FROM bookings WHERE deleted_at IS NULL AND booking_date >= ? AND booking_date < ?", from, to).Scan(&count).Error
	return count, err
}

// SumRevenue sums total_price over all non-cancelled bookings
func (r *MetricsRepository) SumRevenue() (float64, error) {
	var revenue float64
	err := r.db.Raw("SELECT COALESCE(SUM(total_price), 0) FROM bookings WHERE deleted_at IS NULL AND status != ?", models.BookingStatusCancelled).Scan(&revenue).Error
	return revenue, err
}

// SumRevenueSince sums non-cancelled revenue on or after a date
func (r *MetricsRepository) SumRevenueSince(date string) (float64, error) {
	var revenue float64
	err := r.db.Raw("SELECT COALESCE(SUM(total_price), 0) FROM bookings WHERE deleted_at IS NULL AND status != ? AND booking_date >= ?", models.BookingStatusCancelled, date).Scan(&revenue).Error
	return revenue, err
}

// SumRevenueBetween sums non-cancelled revenue in [from, to)
func (r *MetricsRepository) SumRevenueBetween(from, to string) (float64, error) {
	var revenue float64
	err := r.db.Raw("SELECT COALESCE(SUM(total_price), 0) FROM bookings WHERE deleted_at IS NULL AND status != ? AND booking_date >= ? AND booking_date < ?", models.BookingStatusCancelled, from, to).Scan(&revenue).Error
	return revenue, err
}

// GetPendingPayments counts unpaid, non-cancelled bookings and their value
func (r *MetricsRepository) GetPendingPayments() (*PendingPayments, error) {
	var pending PendingPayments
	err := r.db.Raw(`
		SELECT COUNT(*) AS count, COALESCE(SUM(total_price), 0) AS amount
		FROM bookings
		WHERE deleted_at IS NULL AND payment_status = ? AND status != ?
	`, models.PaymentStatusPending, models.BookingStatusCancelled).Scan(&pending).Error
	if err != nil {
		return nil, err
	}
	return &pending, nil
}

// GetServicePopularity ranks services by non-cancelled booking count.
// service_ids is a jsonb array of uuid strings, so membership is a
// jsonb containment check against the service id.
func (r *MetricsRepository) GetServicePopularity() ([]ServicePopularity, error) {
	var rows []ServicePopularity
	err := r.db.Raw(`
		SELECT s.id, s.name, COALESCE(s.price, 0) AS price,
		       COUNT(b.id) AS booking_count,
		       COALESCE(SUM(CASE WHEN b.status != 'cancelled' THEN COALESCE(s.price, 0) ELSE 0 END), 0) AS total_revenue
		FROM services s
		LEFT JOIN bookings b
		       ON b.service_ids @> to_jsonb(s.id::text)
		      AND b.deleted_at IS NULL
		      AND b.status != 'cancelled'
		WHERE s.deleted_at IS NULL
		GROUP BY s.id, s.name, s.price
		ORDER BY booking_count DESC
	`).Scan(&rows).Error
	return rows, err
}

// GetUpcomingBookings returns the next confirmed bookings from a date, soonest first
func (r *MetricsRepository) GetUpcomingBookings(from string, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Where("booking_date >= ? AND status = ?", from, models.BookingStatusConfirmed).
		Order("booking_date ASC, booking_time ASC").
		Limit(limit).
		Find(&bookings).Error
	return bookings, err
}

// GetRepeatCustomers returns customers with more than one non-cancelled booking
func (r *MetricsRepository) GetRepeatCustomers(limit int) ([]CustomerSummary, error) {
	var rows []CustomerSummary
	err := r.db.Raw(`
		SELECT customer_email, customer_name,
		       COUNT(*) AS booking_count,
		       COALESCE(SUM(total_price), 0) AS total_spent,
		       MAX(booking_date) AS last_booking
		FROM bookings
		WHERE deleted_at IS NULL AND status != 'cancelled'
		GROUP BY customer_email, customer_name
		HAVING COUNT(*) > 1
		ORDER BY booking_count DESC
		LIMIT ?
	`, limit).Scan(&rows).Error
	return rows, err
}

// GetAllCustomers returns every customer's booking history rollup
func (r *MetricsRepository) GetAllCustomers() ([]CustomerSummary, error) {
	var rows []CustomerSummary
	err := r.db.Raw(`
		SELECT customer_email, customer_name, customer_phone,
		       COUNT(*) AS booking_count,
		       COALESCE(SUM(total_price), 0) AS total_spent,
		       MIN(booking_date) AS first_booking,
		       MAX(booking_date) AS last_booking,
		       STRING_AGG(booking_date, ',' ORDER BY booking_date DESC) AS booking_dates
		FROM bookings
		WHERE deleted_at IS NULL AND status != 'cancelled'
		GROUP BY customer_email, customer_name, customer_phone
		ORDER BY last_booking DESC
	`).Scan(&rows).Error
	return rows, err
}

// GetDayOfWeekTrends counts non-cancelled bookings per weekday since a date,
// busiest first
func (r *MetricsRepository) GetDayOfWeekTrends(since string) ([]DayOfWeekTrend, error) {
	var rows []DayOfWeekTrend
	err := r.db.Raw(`
		SELECT EXTRACT(DOW FROM booking_date::date)::int AS day_of_week,
		       COUNT(*) AS booking_count
		FROM bookings
		WHERE deleted_at IS NULL AND booking_date >= ? AND status != 'cancelled'
		GROUP BY day_of_week
		ORDER BY booking_count DESC
	`, since).Scan(&rows).Error
	return rows, err
}
