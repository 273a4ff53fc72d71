package accounts

import (
	"github.com/labstack/echo/v4"

	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/plugins/auth"
)

// RouteLimits are the per-IP rate limits applied to the public credential
// endpoints.
type RouteLimits struct {
	Login    echo.MiddlewareFunc
	Register echo.MiddlewareFunc
}

// RegisterRoutes mounts the directory. Registration and login are public
// and rate-limited; listings and lookups need a bearer token.
func RegisterRoutes(e *echo.Echo, h *Handler, requireAuth echo.MiddlewareFunc, limits RouteLimits) {
	login, register := orNoop(limits.Login), orNoop(limits.Register)
	g := e.Group("/accounts")

	g.POST("/students", h.RegisterStudent, register)
	g.POST("/students/login", h.Login(auth.RoleStudent), login)
	g.GET("/students", h.List(auth.RoleStudent), requireAuth)

	g.POST("/teachers", h.RegisterTeacher, register)
	g.POST("/teachers/login", h.Login(auth.RoleTeacher), login)
	g.GET("/teachers", h.List(auth.RoleTeacher), requireAuth)
	g.GET("/teachers/:id", h.GetTeacher, requireAuth)
}

func orNoop(mw echo.MiddlewareFunc) echo.MiddlewareFunc {
	if mw != nil {
		return mw
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
}
