package apperror

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func renderError(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/x", nil), rec)
	HTTPErrorHandler(err, c)

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body %q: %v", rec.Body, err)
	}
	return rec, body
}

func TestHTTPErrorHandler_AppError(t *testing.T) {
	rec, body := renderError(t, NewUnauthenticated(ReasonTokenExpired, "token expired"))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if body["type"] != ReasonTokenExpired || body["message"] != "token expired" || body["error"] != "Unauthorized" {
		t.Errorf("unexpected body %v", body)
	}
}

func TestHTTPErrorHandler_HidesInternalCause(t *testing.T) {
	rec, body := renderError(t, NewInternal(errors.New("password=hunter2")))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if body["message"] == "password=hunter2" {
		t.Error("internal cause leaked")
	}
}

func TestHTTPErrorHandler_EchoAndPlainErrors(t *testing.T) {
	rec, body := renderError(t, echo.ErrNotFound)
	if rec.Code != http.StatusNotFound || body["type"] != "not_found" {
		t.Errorf("unexpected %d %v", rec.Code, body)
	}

	rec, body = renderError(t, errors.New("boom"))
	if rec.Code != http.StatusInternalServerError || body["type"] != "internal_error" {
		t.Errorf("unexpected %d %v", rec.Code, body)
	}
}
