// Package auth owns user accounts and login: bcrypt-hashed credentials in
// Postgres and short-lived HMAC-signed JWTs for the API.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role gates what a logged-in user may do.
type Role string

const (
	// RoleAdmin manages blocks, rooms and other users.
	RoleAdmin Role = "admin"
	// RoleUser books and views reservations.
	RoleUser Role = "user"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is one account. PasswordHash never leaves the package. Deactivated
// accounts keep their rows but can no longer log in.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Claims is the JWT payload issued at login.
type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

var (
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so a login probe cannot tell the two apart.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrUserNotFound is returned when a user id does not resolve.
	ErrUserNotFound = errors.New("auth: user not found")
	// ErrEmailTaken is returned when registering a duplicate email.
	ErrEmailTaken = errors.New("auth: email already registered")
)
