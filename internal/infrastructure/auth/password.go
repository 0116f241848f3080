package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the cost used by `shopctl hash-password`
const DefaultBcryptCost = 12

// ErrInvalidCredentials is returned for any failed login, whatever the
// reason, so callers cannot probe for the username
var ErrInvalidCredentials = errors.New("invalid username or password")

// HashPassword returns the bcrypt hash of password
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Authenticator checks credentials against the configured administrator
type Authenticator struct {
	username     string
	passwordHash []byte
}

// NewAuthenticator creates an authenticator for one administrator account
func NewAuthenticator(username, passwordHash string) *Authenticator {
	return &Authenticator{
		username:     username,
		passwordHash: []byte(passwordHash),
	}
}

// Authenticate returns nil when username and password match
func (a *Authenticator) Authenticate(username, password string) error {
	if len(a.passwordHash) == 0 {
		return ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	// always run bcrypt so a wrong username costs the same as a wrong password
	passErr := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}
