// Package auth owns credentials and session identity for the marketplace:
// argon2id password hashing, signed bearer tokens, and the request gate that
// turns an Authorization header into an Identity. Account storage lives in
// the accounts plugin; this package never touches the database.
//
// This is a CORE plugin -- every protected route depends on it.
package auth

import (
	"fmt"
)

// Role is the capability class of an account. The set is closed: any value
// other than the constants below is rejected at the boundary by ParseRole.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// ParseRole converts s into a Role, failing for anything outside the enum.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleTeacher:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// String implements fmt.Stringer.
func (r Role) String() string { return string(r) }

// Identity is the verified subject of a request: who the caller is and what
// role their token was issued for. It is the only thing the gate attaches to
// the request context.
type Identity struct {
	ID   int64 `json:"id"`
	Role Role  `json:"role"`
}

// Is reports whether the identity holds role r.
func (i *Identity) Is(r Role) bool {
	return i != nil && i.Role == r
}
