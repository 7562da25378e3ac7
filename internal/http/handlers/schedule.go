package handlers

import (
	"errors"
	"net/http"

	"fluidbook/internal/availability"
	"fluidbook/internal/repo"
	"fluidbook/pkg/models"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// ScheduleHandler handles business hours, blocked dates, and availability
type ScheduleHandler struct {
	scheduleRepo *repo.ScheduleRepository
	bookingRepo  *repo.BookingRepository
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(scheduleRepo *repo.ScheduleRepository, bookingRepo *repo.BookingRepository) *ScheduleHandler {
	return &ScheduleHandler{scheduleRepo: scheduleRepo, bookingRepo: bookingRepo}
}

// GetBusinessHours godoc
// @Summary Get business hours
// @Description Get opening hours for all weekdays
// @Tags schedule
// @Produce json
// @Success 200 {array} models.BusinessHours
// @Failure 500 {object} map[string]string
// @Router /business-hours [get]
func (h *ScheduleHandler) GetBusinessHours(c echo.Context) error {
	hours, err := h.scheduleRepo.ListBusinessHours()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch business hours"})
	}
	return c.JSON(http.StatusOK, hours)
}

// UpdateBusinessHours godoc
// @Summary Update business hours
// @Description Set opening hours for one weekday (0 = Sunday)
// @Tags schedule
// @Accept json
// @Produce json
// @Param day path int true "Day of week (0-6)"
// @Param hours body models.UpdateBusinessHoursRequest true "Hours data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/business-hours/{day} [put]
func (h *ScheduleHandler) UpdateBusinessHours(c echo.Context) error {
	var day int
	if err := echo.PathParamsBinder(c).Int("day", &day).BindError(); err != nil || day < 0 || day > 6 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid day of week"})
	}

	var req models.UpdateBusinessHoursRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	hours, err := h.scheduleRepo.UpdateBusinessHours(day, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Business hours not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update business hours"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Business hours updated",
		"hours":   hours,
	})
}

// ListBlockedDates godoc
// @Summary List blocked dates
// @Description Get all blocked dates
// @Tags schedule
// @Produce json
// @Success 200 {array} models.BlockedDate
// @Failure 500 {object} map[string]string
// @Router /admin/blocked-dates [get]
func (h *ScheduleHandler) ListBlockedDates(c echo.Context) error {
	blocked, err := h.scheduleRepo.ListBlockedDates()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch blocked dates"})
	}
	return c.JSON(http.StatusOK, blocked)
}

// BlockDate godoc
// @Summary Block a date
// @Description Mark a calendar date as unavailable for bookings
// @Tags schedule
// @Accept json
// @Produce json
// @Param request body models.BlockDateRequest true "Date to block"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/blocked-dates [post]
func (h *ScheduleHandler) BlockDate(c echo.Context) error {
	var req models.BlockDateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	reason := req.Reason
	if reason == "" {
		reason = "Unavailable"
	}

	blocked := &models.BlockedDate{Date: req.Date, Reason: reason}
	if err := h.scheduleRepo.CreateBlockedDate(blocked); err != nil {
		if errors.Is(err, repo.ErrDateAlreadyBlocked) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "Date already blocked"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to block date"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      "Date blocked successfully",
		"blocked_date": blocked,
	})
}

// UnblockDate godoc
// @Summary Unblock a date
// @Description Remove a blocked date
// @Tags schedule
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /admin/blocked-dates/{date} [delete]
func (h *ScheduleHandler) UnblockDate(c echo.Context) error {
	if err := h.scheduleRepo.DeleteBlockedDate(c.Param("date")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Blocked date not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to unblock date"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Date unblocked successfully",
	})
}

// GetAvailability godoc
// @Summary Get availability for a date
// @Description Get the 30-minute slot availability for one calendar date
// @Tags schedule
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} availability.Result
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /availability/{date} [get]
func (h *ScheduleHandler) GetAvailability(c echo.Context) error {
	date := c.Param("date")
	if !availability.ValidDate(date) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid date"})
	}

	hours, err := h.scheduleRepo.ListBusinessHours()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check availability"})
	}

	blocked, err := h.scheduleRepo.ListBlockedDates()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check availability"})
	}

	bookings, err := h.bookingRepo.ListByDate(date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check availability"})
	}

	return c.JSON(http.StatusOK, availability.ComputeAvailability(date, hours, blocked, bookings))
}
