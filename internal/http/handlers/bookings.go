package handlers

import (
	"errors"
	"net/http"

	"fluidbook/internal/repo"
	"fluidbook/internal/services"
	"fluidbook/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// BookingHandler handles booking endpoints
type BookingHandler struct {
	bookingService *services.BookingService
	bookingRepo    *repo.BookingRepository
	wsHandler      *WebSocketHandler
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService, bookingRepo *repo.BookingRepository, wsHandler *WebSocketHandler) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		bookingRepo:    bookingRepo,
		wsHandler:      wsHandler,
	}
}

// Create godoc
// @Summary Create booking
// @Description Book an appointment for the selected services and time slot
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body models.CreateBookingRequest true "Booking data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	var req models.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	booking, err := h.bookingService.Create(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidSelection):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid service selection"})
		case errors.Is(err, services.ErrSlotConflict):
			return c.JSON(http.StatusConflict, map[string]string{"error": "Time slot no longer available"})
		default:
			log.Error().Err(err).Msg("Failed to create booking")
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create booking"})
		}
	}

	if h.wsHandler != nil {
		h.wsHandler.BroadcastNewBooking(booking)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Booking created successfully",
		"booking": booking,
	})
}

// List godoc
// @Summary List bookings
// @Description Get all bookings, newest first
// @Tags bookings
// @Produce json
// @Success 200 {array} models.Booking
// @Failure 500 {object} map[string]string
// @Router /admin/bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	bookings, err := h.bookingRepo.List()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch bookings"})
	}
	return c.JSON(http.StatusOK, bookings)
}

// Update godoc
// @Summary Update booking
// @Description Patch a booking's status and/or payment status
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param booking body models.UpdateBookingRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/bookings/{id} [patch]
func (h *BookingHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid booking ID"})
	}

	var req models.UpdateBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if req.Status == nil && req.PaymentStatus == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No updates provided"})
	}

	booking, err := h.bookingService.UpdateStatus(id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update booking"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Booking updated successfully",
		"booking": booking,
	})
}

// Delete godoc
// @Summary Delete booking
// @Description Remove a booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/bookings/{id} [delete]
func (h *BookingHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid booking ID"})
	}

	if err := h.bookingService.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete booking"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Booking deleted successfully",
	})
}
