package identity

import (
	"crypto/subtle"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/moon8997/my-erp/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost        = bcrypt.DefaultCost
	minPasswordLength = 4
	maxLoginIDLength  = 50
)

// Account is a back-office login
type Account struct {
	ID           string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}

// NewAccount creates an account with a bcrypt-hashed password
func NewAccount(id, password, name string) (*Account, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, shared.NewInvalidArgument("id is required")
	}
	if utf8.RuneCountInString(id) > maxLoginIDLength {
		return nil, shared.NewInvalidArgument("id cannot exceed %d characters", maxLoginIDLength)
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, shared.NewInvalidArgument("password must be at least %d characters", minPasswordLength)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	return &Account{
		ID:           id,
		PasswordHash: hash,
		Name:         strings.TrimSpace(name),
		CreatedAt:    shared.Now(),
	}, nil
}

// VerifyPassword verifies if the provided password matches.
// Rows created before hashing was introduced hold the plain password.
func (a *Account) VerifyPassword(password string) bool {
	if a.IsHashed() {
		return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(a.PasswordHash), []byte(password)) == 1
}

// IsHashed reports whether the stored password is a bcrypt hash
func (a *Account) IsHashed() bool {
	return strings.HasPrefix(a.PasswordHash, "$2")
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
