// internal/repository/postgres/issuer_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shriddemon/value-os-platform/internal/domain"
	"github.com/shriddemon/value-os-platform/internal/repository"
	"github.com/shriddemon/value-os-platform/internal/util"
)

// IssuerRepository implements repository.IssuerRepository for PostgreSQL.
type IssuerRepository struct{}

// NewIssuerRepository creates a new IssuerRepository.
func NewIssuerRepository() repository.IssuerRepository {
	return &IssuerRepository{}
}

func (r *IssuerRepository) Create(ctx context.Context, q repository.DBExecutor, issuer *domain.Issuer) error {
	query := `INSERT INTO issuers (id, name, slug, api_key, created_at)
              VALUES ($1, $2, $3, $4, $5)`
	if _, err := q.ExecContext(ctx, query, issuer.ID, issuer.Name, issuer.Slug, issuer.APIKey, issuer.CreatedAt); err != nil {
		return fmt.Errorf("failed to create issuer: %w", err)
	}
	return nil
}

func (r *IssuerRepository) GetByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.Issuer, error) {
	var issuer domain.Issuer
	query := `SELECT id, name, slug, api_key, created_at FROM issuers WHERE id = $1`
	if err := q.GetContext(ctx, &issuer, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get issuer %s: %w", id, err)
	}
	return &issuer, nil
}

func (r *IssuerRepository) GetFirst(ctx context.Context, q repository.DBExecutor) (*domain.Issuer, error) {
	var issuer domain.Issuer
	query := `SELECT id, name, slug, api_key, created_at FROM issuers ORDER BY created_at ASC LIMIT 1`
	if err := q.GetContext(ctx, &issuer, query); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get first issuer: %w", err)
	}
	return &issuer, nil
}

func (r *IssuerRepository) List(ctx context.Context, q repository.DBExecutor) ([]domain.Issuer, error) {
	issuers := []domain.Issuer{}
	query := `SELECT id, name, slug, api_key, created_at FROM issuers ORDER BY created_at ASC`
	if err := q.SelectContext(ctx, &issuers, query); err != nil {
		return nil, fmt.Errorf("failed to list issuers: %w", err)
	}
	return issuers, nil
}
