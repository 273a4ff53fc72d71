package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/apperror"
)

// mockVerifier implements TokenVerifier for testing.
type mockVerifier struct {
	verifyFn func(token string) (*Identity, error)
	calls    int
}

func (m *mockVerifier) Verify(token string) (*Identity, error) {
	m.calls++
	if m.verifyFn != nil {
		return m.verifyFn(token)
	}
	return &Identity{ID: 1, Role: RoleStudent}, nil
}

func runGate(t *testing.T, v TokenVerifier, header string) (*Identity, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var seen *Identity
	err := RequireAuth(v)(func(c echo.Context) error {
		seen = GetIdentity(c)
		return nil
	})(c)
	return seen, err
}

func TestRequireAuth_Reasons(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		verifyErr error
		reason    string
		verifies  bool
	}{
		{name: "missing header", header: "", reason: apperror.ReasonTokenMissing},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", reason: apperror.ReasonTokenMalformed},
		{name: "empty credential", header: "Bearer   ", reason: apperror.ReasonTokenMalformed},
		{name: "scheme only", header: "Bearer", reason: apperror.ReasonTokenMalformed},
		{name: "expired", header: "Bearer abc", verifyErr: ErrTokenExpired, reason: apperror.ReasonTokenExpired, verifies: true},
		{name: "bad signature", header: "Bearer abc", verifyErr: ErrTokenMalformed, reason: apperror.ReasonTokenMalformed, verifies: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &mockVerifier{verifyFn: func(string) (*Identity, error) { return nil, tt.verifyErr }}
			_, err := runGate(t, v, tt.header)

			if apperror.SafeCode(err) != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %v", err)
			}
			if !apperror.IsType(err, tt.reason) {
				t.Errorf("expected reason %q, got %v", tt.reason, err)
			}
			if (v.calls > 0) != tt.verifies {
				t.Errorf("verifier called %d times", v.calls)
			}
		})
	}
}

func TestRequireAuth_AttachesIdentity(t *testing.T) {
	v := &mockVerifier{verifyFn: func(tok string) (*Identity, error) {
		if tok != "good-token" {
			t.Errorf("unexpected token %q", tok)
		}
		return &Identity{ID: 9, Role: RoleTeacher}, nil
	}}

	// Scheme matching is case-insensitive.
	id, err := runGate(t, v, "bearer good-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == nil || id.ID != 9 || id.Role != RoleTeacher {
		t.Errorf("unexpected identity %+v", id)
	}
}

func TestRequireAuth_WithRealTokens(t *testing.T) {
	now := issuedAt
	s := newTestTokenService(&now)
	tok, _, _ := s.Issue(3, RoleStudent)

	id, err := runGate(t, s, "Bearer "+tok)
	if err != nil || id.ID != 3 {
		t.Fatalf("expected identity 3, got %+v err=%v", id, err)
	}
}

func TestRequireRole(t *testing.T) {
	teacher := &Identity{ID: 1, Role: RoleTeacher}
	if err := RequireRole(teacher, RoleTeacher, "create classes"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := RequireRole(&Identity{ID: 2, Role: RoleStudent}, RoleTeacher, "create classes")
	if apperror.SafeCode(err) != http.StatusForbidden {
		t.Errorf("expected 403, got %v", err)
	}
	if apperror.SafeCode(RequireRole(nil, RoleTeacher, "x")) != http.StatusUnauthorized {
		t.Error("expected 401 for missing identity")
	}
}
