// internal/domain/user.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an end user that holds wallets.
type User struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"` // Unique
	FullName  string    `db:"full_name" json:"full_name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NewUser creates a new User instance.
func NewUser(email, fullName string) *User {
	return &User{
		ID:        uuid.NewString(),
		Email:     email,
		FullName:  fullName,
		CreatedAt: time.Now().UTC(),
	}
}
