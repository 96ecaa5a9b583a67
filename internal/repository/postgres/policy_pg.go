// internal/repository/postgres/policy_pg.go
package postgres

import (
	"context"
	"fmt"

	"github.com/shriddemon/value-os-platform/internal/domain"
	"github.com/shriddemon/value-os-platform/internal/repository"
)

// PolicyRepository implements repository.PolicyRepository for PostgreSQL.
type PolicyRepository struct{}

// NewPolicyRepository creates a new PolicyRepository.
func NewPolicyRepository() repository.PolicyRepository {
	return &PolicyRepository{}
}

func (r *PolicyRepository) Create(ctx context.Context, q repository.DBExecutor, policy *domain.Policy) error {
	query := `INSERT INTO policies (id, name, rule_type, priority, issuer_id, credit_def_id, parameters, is_active, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err := q.ExecContext(ctx, query,
		policy.ID, policy.Name, policy.RuleType, policy.Priority,
		policy.IssuerID, policy.CreditDefID, policy.Parameters, policy.IsActive, policy.CreatedAt); err != nil {
		return fmt.Errorf("failed to create policy: %w", err)
	}
	return nil
}

// ListActiveForCreditDef selects policies scoped to the definition plus
// fully global ones (neither definition nor issuer scope), highest
// priority first.
func (r *PolicyRepository) ListActiveForCreditDef(ctx context.Context, q repository.DBExecutor, creditDefID string) ([]domain.Policy, error) {
	policies := []domain.Policy{}
	query := `SELECT id, name, rule_type, priority, issuer_id, credit_def_id, parameters, is_active, created_at
              FROM policies
              WHERE is_active = TRUE
                AND (credit_def_id = $1 OR (credit_def_id IS NULL AND issuer_id IS NULL))
              ORDER BY priority DESC, created_at ASC`
	if err := q.SelectContext(ctx, &policies, query, creditDefID); err != nil {
		return nil, fmt.Errorf("failed to list active policies for definition %s: %w", creditDefID, err)
	}
	return policies, nil
}

// PolicyEvaluationLogRepository implements
// repository.PolicyEvaluationLogRepository for PostgreSQL.
type PolicyEvaluationLogRepository struct{}

// NewPolicyEvaluationLogRepository creates a new
// PolicyEvaluationLogRepository.
func NewPolicyEvaluationLogRepository() repository.PolicyEvaluationLogRepository {
	return &PolicyEvaluationLogRepository{}
}

func (r *PolicyEvaluationLogRepository) Create(ctx context.Context, q repository.DBExecutor, log *domain.PolicyEvaluationLog) error {
	query := `INSERT INTO policy_evaluation_logs (id, transaction_id, decision, results, created_at)
              VALUES ($1, $2, $3, $4, $5)`
	if _, err := q.ExecContext(ctx, query,
		log.ID, log.TransactionID, log.Decision, log.Results, log.CreatedAt); err != nil {
		return fmt.Errorf("failed to create policy evaluation log: %w", err)
	}
	return nil
}

func (r *PolicyEvaluationLogRepository) CountByDecision(ctx context.Context, q repository.DBExecutor, decision string) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM policy_evaluation_logs WHERE decision = $1`
	if err := q.GetContext(ctx, &count, query, decision); err != nil {
		return 0, fmt.Errorf("failed to count %s evaluations: %w", decision, err)
	}
	return count, nil
}
