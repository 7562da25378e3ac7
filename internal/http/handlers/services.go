package handlers

import (
	"net/http"

	"fluidbook/internal/repo"
	"fluidbook/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ServiceHandler handles service catalog endpoints
type ServiceHandler struct {
	serviceRepo *repo.ServiceRepository
}

// NewServiceHandler creates a new service handler
func NewServiceHandler(serviceRepo *repo.ServiceRepository) *ServiceHandler {
	return &ServiceHandler{serviceRepo: serviceRepo}
}

// ListPublic godoc
// @Summary List active services
// @Description Get all active services ordered for display
// @Tags services
// @Produce json
// @Success 200 {array} models.Service
// @Failure 500 {object} map[string]string
// @Router /services [get]
func (h *ServiceHandler) ListPublic(c echo.Context) error {
	serviceList, err := h.serviceRepo.List(true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch services"})
	}
	return c.JSON(http.StatusOK, serviceList)
}

// ListAdmin godoc
// @Summary List all services
// @Description Get the full catalog including inactive services
// @Tags services
// @Produce json
// @Success 200 {array} models.Service
// @Failure 500 {object} map[string]string
// @Router /admin/services [get]
func (h *ServiceHandler) ListAdmin(c echo.Context) error {
	serviceList, err := h.serviceRepo.List(false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch services"})
	}
	return c.JSON(http.StatusOK, serviceList)
}

// Create godoc
// @Summary Create service
// @Description Add a new service to the catalog
// @Tags services
// @Accept json
// @Produce json
// @Param service body models.CreateServiceRequest true "Service data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /admin/services [post]
func (h *ServiceHandler) Create(c echo.Context) error {
	var req models.CreateServiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	showPrice := true
	if req.ShowPrice != nil {
		showPrice = *req.ShowPrice
	}

	service := &models.Service{
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		ShowPrice:       showPrice,
		IsActive:        true,
	}

	if err := h.serviceRepo.Create(service); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create service"})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Service created successfully",
		"service": service,
	})
}

// Update godoc
// @Summary Update service
// @Description Update a service; omitted fields keep their current values
// @Tags services
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param service body models.UpdateServiceRequest true "Service data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/services/{id} [put]
func (h *ServiceHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid service ID"})
	}

	var req models.UpdateServiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	service, err := h.serviceRepo.GetByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Service not found"})
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		service.Price = req.Price
	}
	if req.ShowPrice != nil {
		service.ShowPrice = *req.ShowPrice
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	if req.DisplayOrder != nil {
		service.DisplayOrder = *req.DisplayOrder
	}

	if err := h.serviceRepo.Update(service); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update service"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Service updated successfully",
		"service": service,
	})
}

// Delete godoc
// @Summary Delete service
// @Description Remove a service from the catalog
// @Tags services
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/services/{id} [delete]
func (h *ServiceHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid service ID"})
	}

	if err := h.serviceRepo.Delete(id); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Service not found"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Service deleted successfully",
	})
}
