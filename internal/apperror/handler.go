package apperror

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error   string `json:"error"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// HTTPErrorHandler is the Echo error handler. It renders AppErrors with
// their own status, Echo's router errors (404, 405, bind failures) with
// theirs, and everything else as a generic 500. Causes are logged, never
// sent.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	req := c.Request()
	body := errorBody{
		Type:    "internal_error",
		Message: "An unexpected error occurred. Please try again.",
	}
	code := http.StatusInternalServerError

	var appErr *AppError
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		code = appErr.Code
		body.Type = appErr.Type
		body.Message = appErr.Message
		if appErr.Internal != nil {
			slog.Error("internal error",
				slog.String("type", appErr.Type),
				slog.Any("internal", appErr.Internal),
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
			)
		}
	case errors.As(err, &echoErr):
		code = echoErr.Code
		body.Type = typeForStatus(code)
		if msg, ok := echoErr.Message.(string); ok {
			body.Message = msg
		} else {
			body.Message = http.StatusText(code)
		}
	default:
		slog.Error("unhandled error",
			slog.Any("error", err),
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
		)
	}
	body.Error = http.StatusText(code)

	if req.Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}
	if err != nil {
		slog.Error("writing error response", slog.Any("error", err))
	}
}

// typeForStatus names the error type for responses that did not come from
// an AppError.
func typeForStatus(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusRequestEntityTooLarge:
		return "payload_too_large"
	case http.StatusTooManyRequests:
		return "rate_limited"
	case http.StatusServiceUnavailable:
		return "unavailable"
	default:
		if code >= 500 {
			return "internal_error"
		}
		return "error"
	}
}
