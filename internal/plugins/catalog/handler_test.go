package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/apperror"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/plugins/auth"
	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/validation"
)

// mockCatalogService implements CatalogService for handler tests.
type mockCatalogService struct {
	searchFn      func(ctx context.Context, filter Filter) ([]TeacherClass, error)
	createClassFn func(ctx context.Context, caller *auth.Identity, input CreateClassInput) (*TeacherClass, error)
	listOwnFn     func(ctx context.Context, caller *auth.Identity) ([]TeacherClass, error)
}

func (m *mockCatalogService) Search(ctx context.Context, filter Filter) ([]TeacherClass, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, filter)
	}
	return []TeacherClass{}, nil
}

func (m *mockCatalogService) CreateClass(ctx context.Context, caller *auth.Identity, input CreateClassInput) (*TeacherClass, error) {
	if m.createClassFn != nil {
		return m.createClassFn(ctx, caller, input)
	}
	return &TeacherClass{ID: 1}, nil
}

func (m *mockCatalogService) ListOwnClasses(ctx context.Context, caller *auth.Identity) ([]TeacherClass, error) {
	if m.listOwnFn != nil {
		return m.listOwnFn(ctx, caller)
	}
	return []TeacherClass{}, nil
}

// stubVerifier accepts any token as the given identity.
type stubVerifier struct{ identity *auth.Identity }

func (s stubVerifier) Verify(string) (*auth.Identity, error) { return s.identity, nil }

func newTestEcho(svc CatalogService, caller *auth.Identity) *echo.Echo {
	e := echo.New()
	e.Validator = validation.New()
	e.HTTPErrorHandler = apperror.HTTPErrorHandler
	RegisterRoutes(e, NewHandler(svc), auth.RequireAuth(stubVerifier{identity: caller}))
	return e
}

func TestHandler_SearchParsesQuery(t *testing.T) {
	var got Filter
	svc := &mockCatalogService{searchFn: func(_ context.Context, f Filter) ([]TeacherClass, error) {
		got = f
		return []TeacherClass{{ID: 3, Title: "Math"}}, nil
	}}
	e := newTestEcho(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/catalog?q=math&city=Recife&modality=online&take=abc", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	if got.Query != "math" || got.City != "Recife" || got.Modality != "online" || got.Take != 0 {
		t.Errorf("unexpected filter %+v", got)
	}

	var body []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(body) != 1 || body[0]["title"] != "Math" {
		t.Errorf("unexpected body %s", rec.Body)
	}
	if _, ok := body[0]["teacher"]; !ok {
		t.Error("expected teacher object on every class")
	}
}

func TestHandler_CreatePassesRawNumbers(t *testing.T) {
	var got CreateClassInput
	var gotCaller *auth.Identity
	svc := &mockCatalogService{createClassFn: func(_ context.Context, caller *auth.Identity, in CreateClassInput) (*TeacherClass, error) {
		got, gotCaller = in, caller
		return &TeacherClass{ID: 9, Title: in.Title}, nil
	}}
	e := newTestEcho(svc, teacher)

	body := `{"title":"Álgebra","modality":"xyz","durationMinutes":"90","price":35.5}`
	req := httptest.NewRequest(http.MethodPost, "/classes", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer t")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}
	if gotCaller == nil || gotCaller.ID != teacher.ID {
		t.Errorf("expected caller identity to reach the service, got %+v", gotCaller)
	}
	if string(got.DurationMinutes) != `"90"` || string(got.Price) != `35.5` {
		t.Errorf("expected raw numbers, got %s / %s", got.DurationMinutes, got.Price)
	}
}

func TestHandler_ClassesRequireToken(t *testing.T) {
	e := newTestEcho(&mockCatalogService{}, teacher)

	req := httptest.NewRequest(http.MethodGet, "/classes/mine", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a token, got %d", rec.Code)
	}
}
