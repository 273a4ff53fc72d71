package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures. They are distinct so the gate can tell the client
// which one happened.
var (
	ErrTokenMissing   = errors.New("token missing")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
)

// claims is the signed payload: {id, role, iat, exp}.
type claims struct {
	AccountID int64  `json:"id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// TokenVerifier verifies a bearer token. The gate depends on this
// interface only.
type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}

// TokenService issues and verifies HS256 session tokens. It holds no
// per-request state and is safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a token service signing with secret. Tokens
// expire ttl after issue.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for the given account and role and returns it with
// its expiry.
func (s *TokenService) Issue(id int64, role Role) (string, time.Time, error) {
	if id <= 0 || !role.Valid() {
		return "", time.Time{}, fmt.Errorf("issuing token: invalid subject %d/%q", id, role)
	}

	now := s.now()
	expiresAt := jwt.NewNumericDate(now.Add(s.ttl))
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		AccountID: id,
		Role:      string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: expiresAt,
		},
	})

	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, expiresAt.Time, nil
}

// Verify checks the signature and expiry of token and returns the identity
// it carries. Only ErrTokenMissing, ErrTokenExpired and ErrTokenMalformed
// are returned.
func (s *TokenService) Verify(token string) (*Identity, error) {
	if token == "" {
		return nil, ErrTokenMissing
	}

	var c claims
	_, err := jwt.ParseWithClaims(token, &c,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	default:
		return nil, ErrTokenMalformed
	}

	role, err := ParseRole(c.Role)
	if err != nil || c.AccountID <= 0 {
		return nil, ErrTokenMalformed
	}
	return &Identity{ID: c.AccountID, Role: role}, nil
}
