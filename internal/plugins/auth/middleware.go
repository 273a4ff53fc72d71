package auth

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/apperror"
)

// contextKeyIdentity stores the verified *Identity in the Echo context.
// Other plugins read it through GetIdentity.
const contextKeyIdentity = "auth_identity"

const bearerScheme = "bearer"

// RequireAuth returns middleware that extracts the bearer token from the
// Authorization header, verifies it and stores the caller's Identity in
// the request context. It does no I/O beyond the verifier.
func RequireAuth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return apperror.NewUnauthenticated(apperror.ReasonTokenMissing, "no token provided")
			}

			scheme, credential, _ := strings.Cut(strings.TrimSpace(header), " ")
			credential = strings.TrimSpace(credential)
			if !strings.EqualFold(scheme, bearerScheme) || credential == "" {
				return apperror.NewUnauthenticated(apperror.ReasonTokenMalformed, "authorization header must be 'Bearer <token>'")
			}

			identity, err := verifier.Verify(credential)
			if err != nil {
				return unauthenticated(err)
			}

			c.Set(contextKeyIdentity, identity)
			return next(c)
		}
	}
}

// unauthenticated maps a verification failure to its 401 reason.
func unauthenticated(err error) error {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return apperror.NewUnauthenticated(apperror.ReasonTokenExpired, "token expired")
	case errors.Is(err, ErrTokenMissing):
		return apperror.NewUnauthenticated(apperror.ReasonTokenMissing, "no token provided")
	default:
		return apperror.NewUnauthenticated(apperror.ReasonTokenMalformed, "invalid token")
	}
}

// GetIdentity retrieves the verified caller. Returns nil if RequireAuth did
// not run for this route.
func GetIdentity(c echo.Context) *Identity {
	identity, ok := c.Get(contextKeyIdentity).(*Identity)
	if !ok {
		return nil
	}
	return identity
}

// RequireRole is the per-operation check services run after the gate: nil
// when identity holds role, 403 otherwise.
func RequireRole(identity *Identity, role Role, action string) error {
	if identity == nil {
		return apperror.NewUnauthenticated(apperror.ReasonTokenMissing, "no token provided")
	}
	if !identity.Is(role) {
		return apperror.NewForbidden("only " + string(role) + "s may " + action)
	}
	return nil
}
