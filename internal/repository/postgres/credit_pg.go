// internal/repository/postgres/credit_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shriddemon/value-os-platform/internal/domain"
	"github.com/shriddemon/value-os-platform/internal/repository"
	"github.com/shriddemon/value-os-platform/internal/util"
)

// CreditDefinitionRepository implements
// repository.CreditDefinitionRepository for PostgreSQL.
type CreditDefinitionRepository struct{}

// NewCreditDefinitionRepository creates a new CreditDefinitionRepository.
func NewCreditDefinitionRepository() repository.CreditDefinitionRepository {
	return &CreditDefinitionRepository{}
}

func (r *CreditDefinitionRepository) Create(ctx context.Context, q repository.DBExecutor, def *domain.CreditDefinition) error {
	query := `INSERT INTO credit_definitions (id, issuer_id, name, symbol, kind, decimals, rate_to_usd, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := q.ExecContext(ctx, query,
		def.ID, def.IssuerID, def.Name, def.Symbol, def.Kind, def.Decimals, def.RateToUSD, def.CreatedAt); err != nil {
		return fmt.Errorf("failed to create credit definition: %w", err)
	}
	return nil
}

func (r *CreditDefinitionRepository) Upsert(ctx context.Context, q repository.DBExecutor, def *domain.CreditDefinition) error {
	query := `INSERT INTO credit_definitions (id, issuer_id, name, symbol, kind, decimals, rate_to_usd, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
              ON CONFLICT (id) DO NOTHING`
	if _, err := q.ExecContext(ctx, query,
		def.ID, def.IssuerID, def.Name, def.Symbol, def.Kind, def.Decimals, def.RateToUSD, def.CreatedAt); err != nil {
		return fmt.Errorf("failed to upsert credit definition: %w", err)
	}
	return nil
}

func (r *CreditDefinitionRepository) GetByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.CreditDefinition, error) {
	var def domain.CreditDefinition
	query := `SELECT id, issuer_id, name, symbol, kind, decimals, rate_to_usd, created_at
              FROM credit_definitions WHERE id = $1`
	if err := q.GetContext(ctx, &def, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get credit definition %s: %w", id, err)
	}
	return &def, nil
}

func (r *CreditDefinitionRepository) List(ctx context.Context, q repository.DBExecutor) ([]domain.CreditDefinition, error) {
	defs := []domain.CreditDefinition{}
	query := `SELECT id, issuer_id, name, symbol, kind, decimals, rate_to_usd, created_at
              FROM credit_definitions ORDER BY created_at ASC`
	if err := q.SelectContext(ctx, &defs, query); err != nil {
		return nil, fmt.Errorf("failed to list credit definitions: %w", err)
	}
	return defs, nil
}

func (r *CreditDefinitionRepository) ListIDsByIssuer(ctx context.Context, q repository.DBExecutor, issuerID string) ([]string, error) {
	ids := []string{}
	query := `SELECT id FROM credit_definitions WHERE issuer_id = $1`
	if err := q.SelectContext(ctx, &ids, query, issuerID); err != nil {
		return nil, fmt.Errorf("failed to list definitions for issuer %s: %w", issuerID, err)
	}
	return ids, nil
}

// BalanceRepository implements repository.BalanceRepository for PostgreSQL.
type BalanceRepository struct{}

// NewBalanceRepository creates a new BalanceRepository.
func NewBalanceRepository() repository.BalanceRepository {
	return &BalanceRepository{}
}

func (r *BalanceRepository) Create(ctx context.Context, q repository.DBExecutor, balance *domain.Balance) error {
	query := `INSERT INTO balances (id, wallet_id, credit_def_id, amount, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := q.ExecContext(ctx, query,
		balance.ID, balance.WalletID, balance.CreditDefID, balance.Amount, balance.CreatedAt, balance.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create balance: %w", err)
	}
	return nil
}

const balanceColumns = `id, wallet_id, credit_def_id, amount, created_at, updated_at`

func (r *BalanceRepository) Get(ctx context.Context, q repository.DBExecutor, walletID, creditDefID string) (*domain.Balance, error) {
	var balance domain.Balance
	query := `SELECT ` + balanceColumns + ` FROM balances WHERE wallet_id = $1 AND credit_def_id = $2`
	if err := q.GetContext(ctx, &balance, query, walletID, creditDefID); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get balance for wallet %s: %w", walletID, err)
	}
	return &balance, nil
}

func (r *BalanceRepository) GetForUpdate(ctx context.Context, q repository.DBExecutor, walletID, creditDefID string) (*domain.Balance, error) {
	var balance domain.Balance
	query := `SELECT ` + balanceColumns + ` FROM balances WHERE wallet_id = $1 AND credit_def_id = $2 FOR UPDATE`
	if err := q.GetContext(ctx, &balance, query, walletID, creditDefID); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock balance for wallet %s: %w", walletID, err)
	}
	return &balance, nil
}

func (r *BalanceRepository) UpdateAmount(ctx context.Context, q repository.DBExecutor, id string, amount decimal.Decimal) error {
	query := `UPDATE balances SET amount = $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, amount, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update balance %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for balance %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("balance %s vanished during update: %w", id, util.ErrNotFound)
	}
	return nil
}

func (r *BalanceRepository) ListByWallet(ctx context.Context, q repository.DBExecutor, walletID string) ([]domain.WalletBalance, error) {
	balances := []domain.WalletBalance{}
	query := `SELECT b.wallet_id, b.credit_def_id, b.amount, d.name, d.symbol, d.kind, d.issuer_id
              FROM balances b
              JOIN credit_definitions d ON d.id = b.credit_def_id
              WHERE b.wallet_id = $1
              ORDER BY d.symbol ASC`
	if err := q.SelectContext(ctx, &balances, query, walletID); err != nil {
		return nil, fmt.Errorf("failed to list balances for wallet %s: %w", walletID, err)
	}
	return balances, nil
}
