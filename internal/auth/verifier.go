// Package auth issues and verifies staff credentials and session tokens.
// Every login goes through the stored bcrypt hash; there are no built-in
// accounts, demo bypasses or hardcoded password gates.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"complaintdesk/backend/internal/models"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// UserGetter is the one storage query the verifier needs.
type UserGetter interface {
	GetUserByEmail(email string) (*models.User, error)
}

// Verifier checks a login against stored credentials.
type Verifier struct {
	Users UserGetter
}

func NewVerifier(users UserGetter) *Verifier {
	return &Verifier{Users: users}
}

// Verify returns the user when the email exists and the password matches
// its bcrypt hash, ErrInvalidCredentials otherwise. Lookup failures are
// reported the same way so login probing cannot distinguish them.
func (v *Verifier) Verify(email, password string) (*models.User, error) {
	user, err := v.Users.GetUserByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// HashPassword produces the bcrypt hash stored on a user record.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
