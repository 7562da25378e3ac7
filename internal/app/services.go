package app

import (
	"os"

	"fluidbook/internal/ai"
	"fluidbook/internal/auth"
	"fluidbook/internal/repo"
	"fluidbook/internal/services"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Services holds all application services
type Services struct {
	DB               *gorm.DB
	AuthService      *auth.Service
	BookingRepo      *repo.BookingRepository
	ServiceRepo      *repo.ServiceRepository
	ScheduleRepo     *repo.ScheduleRepository
	GalleryRepo      *repo.GalleryRepository
	MetricsRepo      *repo.MetricsRepository
	BookingService   *services.BookingService
	StorageService   *services.StorageService
	AssistantService *ai.AssistantService
}

// NewServices creates a new services container
func NewServices(db *gorm.DB) *Services {
	// Initialize repositories
	bookingRepo := repo.NewBookingRepository(db)
	serviceRepo := repo.NewServiceRepository(db)
	scheduleRepo := repo.NewScheduleRepository(db)
	galleryRepo := repo.NewGalleryRepository(db)
	metricsRepo := repo.NewMetricsRepository(db)

	// Initialize services
	authService := auth.NewService(auth.NewGormSessionStore(db))
	bookingService := services.NewBookingService(bookingRepo, serviceRepo)

	// Storage is optional: gallery uploads fail cleanly when S3 is not configured
	storageService, err := services.NewStorageService()
	if err != nil {
		log.Warn().Err(err).Msg("Storage service unavailable, gallery uploads disabled")
	}

	// Assistant is optional: the admin endpoint reports it as unconfigured
	var assistantService *ai.AssistantService
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		assistantService = ai.NewAssistantService(ai.NewOpenAIGenerator(apiKey), metricsRepo, serviceRepo, scheduleRepo)
		log.Info().Msg("Assistant service initialized")
	} else {
		log.Warn().Msg("OPENAI_API_KEY not set, assistant disabled")
	}

	return &Services{
		DB:               db,
		AuthService:      authService,
		BookingRepo:      bookingRepo,
		ServiceRepo:      serviceRepo,
		ScheduleRepo:     scheduleRepo,
		GalleryRepo:      galleryRepo,
		MetricsRepo:      metricsRepo,
		BookingService:   bookingService,
		StorageService:   storageService,
		AssistantService: assistantService,
	}
}
