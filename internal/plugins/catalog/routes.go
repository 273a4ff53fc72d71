package catalog

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the public catalog and the authenticated class
// routes. Role checks happen in the service.
func RegisterRoutes(e *echo.Echo, h *Handler, requireAuth echo.MiddlewareFunc) {
	e.GET("/catalog", h.Search)

	classes := e.Group("/classes", requireAuth)
	classes.POST("", h.Create)
	classes.GET("/mine", h.Mine)
}
