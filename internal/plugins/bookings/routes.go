package bookings

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the booking routes. Every route needs a token.
func RegisterRoutes(e *echo.Echo, h *Handler, requireAuth echo.MiddlewareFunc) {
	g := e.Group("/bookings", requireAuth)
	g.POST("", h.Create)
	g.GET("", h.List)
}
