package suggestions

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the suggestion routes behind the auth gate.
func RegisterRoutes(e *echo.Echo, h *Handler, requireAuth echo.MiddlewareFunc) {
	g := e.Group("/suggestions", requireAuth)
	g.POST("/class-description", h.ClassDescription)
}
