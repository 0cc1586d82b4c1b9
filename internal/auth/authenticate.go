package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"cantina-backend/internal/models"
)

// ErrAuthenticationFailed is deliberately generic: the message never says
// which of name or password was wrong.
var ErrAuthenticationFailed = errors.New("invalid name or password")

// Authenticate scans the snapshot's user list for an exact name match and a
// matching bcrypt hash. Unlike the flat plaintext lookup this replaces, the
// secret is never stored or compared in the clear.
func Authenticate(users []models.User, name, secret string) (*models.User, error) {
	for i := range users {
		if users[i].Name != name {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(users[i].PasswordHash), []byte(secret)) == nil {
			return &users[i], nil
		}
	}
	return nil, ErrAuthenticationFailed
}
