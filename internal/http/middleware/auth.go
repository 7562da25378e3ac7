package middleware

import (
	"net/http"

	"fluidbook/internal/auth"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the admin session cookie set on login
const SessionCookieName = "admin_session"

// AdminAuth middleware validates the admin session cookie
func AdminAuth(authService *auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			session, err := authService.Validate(cookie.Value)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			c.Set("admin_session_id", session.ID)
			return next(c)
		}
	}
}
