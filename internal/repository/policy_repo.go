// internal/repository/policy_repo.go
package repository

import (
	"context"

	"github.com/shriddemon/value-os-platform/internal/domain"
)

// PolicyRepository defines data operations for policies. Policies are
// configured externally; the core only reads the active set.
type PolicyRepository interface {
	// Create adds a new policy.
	Create(ctx context.Context, q DBExecutor, policy *domain.Policy) error
	// ListActiveForCreditDef retrieves active policies scoped to the given
	// definition plus fully global ones (no definition and no issuer
	// scope), ordered by descending priority.
	ListActiveForCreditDef(ctx context.Context, q DBExecutor, creditDefID string) ([]domain.Policy, error)
}

// PolicyEvaluationLogRepository appends and aggregates evaluation logs.
type PolicyEvaluationLogRepository interface {
	// Create appends an evaluation log row.
	Create(ctx context.Context, q DBExecutor, log *domain.PolicyEvaluationLog) error
	// CountByDecision counts logs with the given decision.
	CountByDecision(ctx context.Context, q DBExecutor, decision string) (int64, error)
}
