package ai

import (
	"fmt"
	"strings"
	"time"

	"fluidbook/internal/repo"
	"fluidbook/pkg/models"

	"github.com/google/uuid"
)

// MetricsStore provides the read-only aggregates behind the snapshot
type MetricsStore interface {
	CountBookings() (int64, error)
	CountBookingsOn(date string) (int64, error)
	CountBookingsSince(date string) (int64, error)
	CountBookingsBetween(from, to string) (int64, error)
	SumRevenue() (float64, error)
	SumRevenueSince(date string) (float64, error)
	SumRevenueBetween(from, to string) (float64, error)
	GetPendingPayments() (*repo.PendingPayments, error)
	GetServicePopularity() ([]repo.ServicePopularity, error)
	GetUpcomingBookings(from string, limit int) ([]models.Booking, error)
	GetRepeatCustomers(limit int) ([]repo.CustomerSummary, error)
	GetAllCustomers() ([]repo.CustomerSummary, error)
	GetDayOfWeekTrends(since string) ([]repo.DayOfWeekTrend, error)
}

// CatalogStore provides catalog reads and the price mutation
type CatalogStore interface {
	List(activeOnly bool) ([]models.Service, error)
	UpdatePrice(id uuid.UUID, price float64) (*models.Service, error)
}

// ScheduleStore provides the blocked-date mutation
type ScheduleStore interface {
	CreateBlockedDate(blocked *models.BlockedDate) error
}

// Statistics is the numeric rollup section of the snapshot
type Statistics struct {
	TotalBookings         int64   `json:"total_bookings"`
	TodayBookings         int64   `json:"today_bookings"`
	WeekBookings          int64   `json:"week_bookings"`
	MonthBookings         int64   `json:"month_bookings"`
	LastMonthBookings     int64   `json:"last_month_bookings"`
	BookingGrowth         float64 `json:"booking_growth"` // month-over-month, percent
	YearBookings          int64   `json:"year_bookings"`
	TotalRevenue          float64 `json:"total_revenue"`
	MonthRevenue          float64 `json:"month_revenue"`
	LastMonthRevenue      float64 `json:"last_month_revenue"`
	RevenueGrowth         float64 `json:"revenue_growth"` // month-over-month, percent
	YearRevenue           float64 `json:"year_revenue"`
	PendingPaymentsCount  int64   `json:"pending_payments_count"`
	PendingPaymentsAmount float64 `json:"pending_payments_amount"`
	RepeatCustomerCount   int     `json:"repeat_customer_count"`
	TotalCustomerCount    int     `json:"total_customer_count"`
}

// BusinessContext is the read-only business snapshot grounding one assistant
// call. It is assembled fresh per invocation and never cached; staleness is
// bounded by request latency only.
type BusinessContext struct {
	CurrentDate       string                   `json:"current_date"`
	Services          []models.Service         `json:"services"`
	Statistics        Statistics               `json:"statistics"`
	ServicePopularity []repo.ServicePopularity `json:"service_popularity"`
	UpcomingBookings  []models.Booking         `json:"upcoming_bookings"`
	RepeatCustomers   []repo.CustomerSummary   `json:"repeat_customers"`
	AllCustomers      []repo.CustomerSummary   `json:"all_customers"`
	DayOfWeekTrends   []repo.DayOfWeekTrend    `json:"day_of_week_trends"`
}

// FindCustomer looks up a customer rollup by email, case-insensitively
func (bc *BusinessContext) FindCustomer(email string) *repo.CustomerSummary {
	for i := range bc.AllCustomers {
		if strings.EqualFold(bc.AllCustomers[i].CustomerEmail, email) {
			return &bc.AllCustomers[i]
		}
	}
	return nil
}

// BuildBusinessContext assembles the snapshot. All sub-queries are
// independent and order-insensitive; any failure aborts the build.
func BuildBusinessContext(metrics MetricsStore, catalog CatalogStore, now time.Time) (*BusinessContext, error) {
	today := now.Format("2006-01-02")
	weekAgo := now.AddDate(0, 0, -7).Format("2006-01-02")
	monthAgo := now.AddDate(0, 0, -30).Format("2006-01-02")
	twoMonthsAgo := now.AddDate(0, 0, -60).Format("2006-01-02")
	yearAgo := now.AddDate(0, 0, -365).Format("2006-01-02")

	services, err := catalog.List(false)
	if err != nil {
		return nil, fmt.Errorf("failed to load services: %w", err)
	}

	stats := Statistics{}
	if stats.TotalBookings, err = metrics.CountBookings(); err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	if stats.TodayBookings, err = metrics.CountBookingsOn(today); err != nil {
		return nil, fmt.Errorf("failed to count today's bookings: %w", err)
	}
	if stats.WeekBookings, err = metrics.CountBookingsSince(weekAgo); err != nil {
		return nil, fmt.Errorf("failed to count week bookings: %w", err)
	}
	if stats.MonthBookings, err = metrics.CountBookingsSince(monthAgo); err != nil {
		return nil, fmt.Errorf("failed to count month bookings: %w", err)
	}
	if stats.LastMonthBookings, err = metrics.CountBookingsBetween(twoMonthsAgo, monthAgo); err != nil {
		return nil, fmt.Errorf("failed to count last month bookings: %w", err)
	}
	if stats.YearBookings, err = metrics.CountBookingsSince(yearAgo); err != nil {
		return nil, fmt.Errorf("failed to count year bookings: %w", err)
	}
	if stats.TotalRevenue, err = metrics.SumRevenue(); err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	if stats.MonthRevenue, err = metrics.SumRevenueSince(monthAgo); err != nil {
		return nil, fmt.Errorf("failed to sum month revenue: %w", err)
	}
	if stats.LastMonthRevenue, err = metrics.SumRevenueBetween(twoMonthsAgo, monthAgo); err != nil {
		return nil, fmt.Errorf("failed to sum last month revenue: %w", err)
	}
	if stats.YearRevenue, err = metrics.SumRevenueSince(yearAgo); err != nil {
		return nil, fmt.Errorf("failed to sum year revenue: %w", err)
	}

	if stats.LastMonthBookings > 0 {
		stats.BookingGrowth = float64(stats.MonthBookings-stats.LastMonthBookings) / float64(stats.LastMonthBookings) * 100
	}
	if stats.LastMonthRevenue > 0 {
		stats.RevenueGrowth = (stats.MonthRevenue - stats.LastMonthRevenue) / stats.LastMonthRevenue * 100
	}

	pending, err := metrics.GetPendingPayments()
	if err != nil {
		return nil, fmt.Errorf("failed to get pending payments: %w", err)
	}
	stats.PendingPaymentsCount = pending.Count
	stats.PendingPaymentsAmount = pending.Amount

	popularity, err := metrics.GetServicePopularity()
	if err != nil {
		return nil, fmt.Errorf("failed to get service popularity: %w", err)
	}

	upcoming, err := metrics.GetUpcomingBookings(today, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming bookings: %w", err)
	}

	repeatCustomers, err := metrics.GetRepeatCustomers(20)
	if err != nil {
		return nil, fmt.Errorf("failed to get repeat customers: %w", err)
	}

	allCustomers, err := metrics.GetAllCustomers()
	if err != nil {
		return nil, fmt.Errorf("failed to get customers: %w", err)
	}

	trends, err := metrics.GetDayOfWeekTrends(monthAgo)
	if err != nil {
		return nil, fmt.Errorf("failed to get day-of-week trends: %w", err)
	}

	stats.RepeatCustomerCount = len(repeatCustomers)
	stats.TotalCustomerCount = len(allCustomers)

	return &BusinessContext{
		CurrentDate:       today,
		Services:          services,
		Statistics:        stats,
		ServicePopularity: popularity,
		UpcomingBookings:  upcoming,
		RepeatCustomers:   repeatCustomers,
		AllCustomers:      allCustomers,
		DayOfWeekTrends:   trends,
	}, nil
}
