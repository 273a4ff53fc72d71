package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CORSConfig holds configuration for the CORS middleware.
type CORSConfig struct {
	// AllowedOrigins lists the web and mobile client origins permitted to
	// call the API. ["*"] allows any origin.
	AllowedOrigins []string

	// AllowCredentials lets the browser attach cookies. Bearer tokens do not
	// need it, so it is normally false.
	AllowCredentials bool
}

var (
	corsMethods = strings.Join([]string{
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
		http.MethodOptions,
	}, ", ")

	corsHeaders = strings.Join([]string{
		"Content-Type",
		"Authorization",
		RequestIDHeader,
	}, ", ")
)

// CORS returns middleware that handles Cross-Origin Resource Sharing headers
// for the browser client. Requests without an Origin header pass through.
func CORS(cfg CORSConfig) echo.MiddlewareFunc {
	allowAll := false
	originSet := make(map[string]bool)
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			allowAll = true
		}
		originSet[o] = true
	}

	// A wildcard origin with credentials would let any site act as the user.
	if allowAll && cfg.AllowCredentials {
		slog.Warn("CORS: wildcard origin with credentials is insecure; credentials disabled")
		cfg.AllowCredentials = false
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			origin := req.Header.Get("Origin")

			if origin == "" {
				return next(c)
			}

			// Unknown origins get no CORS headers; the browser blocks them.
			if !allowAll && !originSet[origin] {
				return next(c)
			}

			res.Header().Set("Access-Control-Allow-Origin", origin)
			res.Header().Add("Vary", "Origin")
			if cfg.AllowCredentials {
				res.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if req.Method == http.MethodOptions {
				res.Header().Set("Access-Control-Allow-Methods", corsMethods)
				res.Header().Set("Access-Control-Allow-Headers", corsHeaders)
				res.Header().Set("Access-Control-Max-Age", "3600")
				return c.NoContent(http.StatusNoContent)
			}

			res.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
			return next(c)
		}
	}
}
