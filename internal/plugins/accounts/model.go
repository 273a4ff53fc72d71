// Package accounts is the account directory: student and teacher
// registration, credential login, and read-only public projections of
// accounts. Password hashes never leave this package.
package accounts

import (
	"encoding/json"
	"time"

	"github.com/ZanonDeAndrade/farolEduApp-sub000/internal/plugins/auth"
)

// Account is the internal identity record, including the password hash.
// It is never serialized; handlers only ever see PublicAccount.
type Account struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         auth.Role
	CreatedAt    time.Time
}

// Public returns the outward projection of a.
func (a *Account) Public() PublicAccount {
	return PublicAccount{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
	}
}

// PublicAccount is the client-facing account. It has no password field.
type PublicAccount struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      auth.Role       `json:"role"`
	CreatedAt time.Time       `json:"createdAt"`
	Profile   *TeacherProfile `json:"profile,omitempty"`
}

// TeacherProfile is the 1:1 extension of a teacher account.
type TeacherProfile struct {
	Phone         *string  `json:"phone"`
	City          *string  `json:"city"`
	Region        *string  `json:"region"`
	TeachingModes []string `json:"teachingModes"`
	Languages     []string `json:"languages"`
	HourlyRate    *float64 `json:"hourlyRate"`
	Headline      *string  `json:"headline"`
	Bio           *string  `json:"bio"`
	Experience    *string  `json:"experience"`
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Account   PublicAccount `json:"account"`
}

// --- Request DTOs (bound from HTTP requests) ---

// RegisterRequest is the body of POST /accounts/students.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=150"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

// RegisterTeacherRequest is the body of POST /accounts/teachers. Profile
// fields are optional.
type RegisterTeacherRequest struct {
	RegisterRequest
	Phone         *string         `json:"phone" validate:"omitempty,max=40"`
	City          *string         `json:"city" validate:"omitempty,max=120"`
	Region        *string         `json:"region" validate:"omitempty,max=120"`
	TeachingModes []string        `json:"teachingModes" validate:"max=5"`
	Languages     []string        `json:"languages" validate:"max=20,dive,max=60"`
	HourlyRate    json.RawMessage `json:"hourlyRate"`
	Headline      *string         `json:"headline" validate:"omitempty,max=255"`
	Bio           *string         `json:"bio" validate:"omitempty,max=5000"`
	Experience    *string         `json:"experience" validate:"omitempty,max=5000"`
}

// LoginRequest is the body of both login endpoints.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Service Input DTOs (passed from handler to service) ---

// RegisterInput is the identity half of a registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// ProfileInput is the raw teacher profile half of a registration.
type ProfileInput struct {
	Phone         *string
	City          *string
	Region        *string
	TeachingModes []string
	Languages     []string
	HourlyRate    json.RawMessage
	Headline      *string
	Bio           *string
	Experience    *string
}

// RegisterTeacherInput is a teacher registration.
type RegisterTeacherInput struct {
	RegisterInput
	Profile ProfileInput
}

// LoginInput is a credential pair.
type LoginInput struct {
	Email    string
	Password string
}
