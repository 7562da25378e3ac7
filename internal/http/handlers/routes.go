package handlers

import (
	"fluidbook/internal/app"
	"fluidbook/internal/http/middleware"

	"github.com/labstack/echo/v4"
)

// SetupRoutes sets up all API routes
func SetupRoutes(api *echo.Group, services *app.Services) {
	wsHandler := NewWebSocketHandler(services.AuthService)

	authHandler := NewAuthHandler(services.AuthService)
	galleryHandler := NewGalleryHandler(services.GalleryRepo, services.StorageService)
	serviceHandler := NewServiceHandler(services.ServiceRepo)
	bookingHandler := NewBookingHandler(services.BookingService, services.BookingRepo, wsHandler)
	scheduleHandler := NewScheduleHandler(services.ScheduleRepo, services.BookingRepo)
	assistantHandler := NewAssistantHandler(services.AssistantService)

	// Public routes
	api.GET("/gallery", galleryHandler.List)
	api.GET("/services", serviceHandler.ListPublic)
	api.GET("/business-hours", scheduleHandler.GetBusinessHours)
	api.GET("/availability/:date", scheduleHandler.GetAvailability)
	api.POST("/bookings", bookingHandler.Create)

	// Admin auth (no session required)
	admin := api.Group("/admin")
	admin.POST("/login", authHandler.Login)
	admin.POST("/logout", authHandler.Logout)

	// Admin routes (session cookie required)
	protected := admin.Group("")
	protected.Use(middleware.AdminAuth(services.AuthService))

	protected.GET("/check-auth", authHandler.CheckAuth)

	protected.POST("/gallery/upload", galleryHandler.Upload)
	protected.DELETE("/gallery/:id", galleryHandler.Delete)

	protected.GET("/bookings", bookingHandler.List)
	protected.PATCH("/bookings/:id", bookingHandler.Update)
	protected.DELETE("/bookings/:id", bookingHandler.Delete)

	protected.PUT("/business-hours/:day", scheduleHandler.UpdateBusinessHours)
	protected.GET("/blocked-dates", scheduleHandler.ListBlockedDates)
	protected.POST("/blocked-dates", scheduleHandler.BlockDate)
	protected.DELETE("/blocked-dates/:date", scheduleHandler.UnblockDate)

	protected.GET("/services", serviceHandler.ListAdmin)
	protected.POST("/services", serviceHandler.Create)
	protected.PUT("/services/:id", serviceHandler.Update)
	protected.DELETE("/services/:id", serviceHandler.Delete)

	protected.POST("/assistant", assistantHandler.Ask)
	protected.GET("/reports/download", assistantHandler.DownloadReport)

	// WebSocket booking feed (session validated during upgrade)
	api.GET("/ws/bookings", wsHandler.HandleBookingFeed)
}
