package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a persisted account record. Password always holds a bcrypt
// digest, never the plaintext it was derived from.
type User struct {
	ID        uuid.UUID
	FullName  string `validate:"required,min=2,max=100"`
	Email     string `validate:"required,email,max=255"`
	Password  string `validate:"required"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateUser is the transient input for account creation. The plaintext
// password is consumed once, at hashing time.
type CreateUser struct {
	FullName string `json:"full_name,omitempty" validate:"required,min=2,max=100"`
	Email    string `json:"email,omitempty" validate:"required,email,max=255"`
	Password string `json:"password,omitempty" validate:"required,min=6,max=72"`
}

// NormalizeEmail lower-cases and trims an address. Applied at write time
// and on every lookup, so equality comparisons run over normalized forms.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
