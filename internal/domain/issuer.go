// internal/domain/issuer.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Issuer is an identity that owns credit definitions and funds their
// liquidity pools. Issuers are considered immutable once a definition
// references them.
type Issuer struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`           // Unique URL-safe identifier
	APIKey    string    `db:"api_key" json:"api_key"`     // Credential handed out at registration
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NewIssuer creates a new Issuer with a generated id and API key.
func NewIssuer(name, slug string) *Issuer {
	return &Issuer{
		ID:        uuid.NewString(),
		Name:      name,
		Slug:      slug,
		APIKey:    "sk_" + uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
}
