package db

import (
	"fmt"
	"log"
	"os"

	"fluidbook/pkg/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase creates a new database connection
func NewDatabase() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		os.Getenv("DB_TIMEZONE"),
	)

	config := &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Error),
		DisableForeignKeyConstraintWhenMigrating: false,
	}

	db, err := gorm.Open(postgres.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// AutoMigrate runs database migrations using GORM
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running GORM AutoMigrate...")

	// Create required extensions first
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Printf("Warning: Could not create uuid-ossp extension: %v", err)
	}

	if err := db.AutoMigrate(models.GetAllModels()...); err != nil {
		return fmt.Errorf("failed to run GORM AutoMigrate: %w", err)
	}

	if err := createCustomIndexes(db); err != nil {
		log.Printf("Warning: Failed to create some custom indexes: %v", err)
	}

	log.Println("GORM AutoMigrate completed successfully")
	return nil
}

// createCustomIndexes creates any custom indexes that GORM might not handle
func createCustomIndexes(db *gorm.DB) error {
	indexes := []string{
		// Slot-conflict lookups filter by exact date + time
		`CREATE INDEX IF NOT EXISTS idx_bookings_date_time ON bookings (booking_date, booking_time)`,

		// Containment queries against the jsonb service id list
		`CREATE INDEX IF NOT EXISTS idx_bookings_service_ids ON bookings USING gin(service_ids)`,

		// Customer rollups group by email
		`CREATE INDEX IF NOT EXISTS idx_bookings_customer_email ON bookings (customer_email)`,
	}

	for _, idx := range indexes {
		if err := db.Exec(idx).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s - %v", idx, err)
		}
	}

	return nil
}

// SeedInitialData creates initial system data
func SeedInitialData(db *gorm.DB) error {
	log.Println("Seeding initial data...")

	var serviceCount int64
	if err := db.Model(&models.Service{}).Count(&serviceCount).Error; err != nil {
		return fmt.Errorf("failed to check existing services: %w", err)
	}

	if serviceCount == 0 {
		services := []models.Service{
			{Name: "Interior Detailing", Description: "Complete interior cleaning and protection", DurationMinutes: 120, Price: price(150), DisplayOrder: 1},
			{Name: "Exterior Detailing", Description: "Full exterior wash, polish, and wax", DurationMinutes: 90, Price: price(120), DisplayOrder: 2},
			{Name: "Ceramic Coating", Description: "Professional ceramic coating protection", DurationMinutes: 240, Price: price(500), DisplayOrder: 3},
		}
		for i := range services {
			services[i].ShowPrice = true
			services[i].IsActive = true
		}
		if err := db.Create(&services).Error; err != nil {
			return fmt.Errorf("failed to create default services: %w", err)
		}
		log.Println("Default services created")
	}

	var hoursCount int64
	if err := db.Model(&models.BusinessHours{}).Count(&hoursCount).Error; err != nil {
		return fmt.Errorf("failed to check existing business hours: %w", err)
	}

	if hoursCount == 0 {
		hours := []models.BusinessHours{
			{DayOfWeek: 0, IsOpen: false},
			{DayOfWeek: 1, IsOpen: true, OpenTime: "09:00", CloseTime: "17:00"},
			{DayOfWeek: 2, IsOpen: true, OpenTime: "09:00", CloseTime: "17:00"},
			{DayOfWeek: 3, IsOpen: true, OpenTime: "09:00", CloseTime: "17:00"},
			{DayOfWeek: 4, IsOpen: true, OpenTime: "09:00", CloseTime: "17:00"},
			{DayOfWeek: 5, IsOpen: true, OpenTime: "09:00", CloseTime: "17:00"},
			{DayOfWeek: 6, IsOpen: true, OpenTime: "09:00", CloseTime: "15:00"},
		}
		if err := db.Create(&hours).Error; err != nil {
			return fmt.Errorf("failed to create default business hours: %w", err)
		}
		log.Println("Default business hours created (Mon-Sat, closed Sunday)")
	}

	return nil
}

// RunMigrations is the main migration function called from main.go
func RunMigrations(db *gorm.DB) error {
	log.Println("Starting database migrations...")

	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}

	if err := SeedInitialData(db); err != nil {
		return fmt.Errorf("initial data seeding failed: %w", err)
	}

	log.Println("All migrations completed successfully")
	return nil
}

func price(v float64) *float64 { return &v }
