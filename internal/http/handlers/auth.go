package handlers

import (
	"net/http"

	"fluidbook/internal/auth"
	"fluidbook/internal/http/middleware"

	"github.com/labstack/echo/v4"
)

// AuthHandler handles admin authentication endpoints
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
// @Summary Admin login
// @Description Verify the admin password and set the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /admin/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req auth.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	session, err := h.authService.Login(req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid password"})
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.SessionTTL.Seconds()),
	})

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login successful",
	})
}

// Logout godoc
// @Summary Admin logout
// @Description Invalidate the current session and clear the cookie
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		h.authService.Logout(cookie.Value)
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out",
	})
}

// CheckAuth godoc
// @Summary Check session
// @Description Report whether the current session cookie is valid
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 401 {object} map[string]string
// @Router /admin/check-auth [get]
func (h *AuthHandler) CheckAuth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"authenticated": true})
}
