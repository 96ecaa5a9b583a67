// internal/service/policy_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shriddemon/value-os-platform/internal/domain"
	"github.com/shriddemon/value-os-platform/internal/repository"
)

// PolicyService evaluates the active policy set against a proposed
// transaction before it is allowed to proceed. Every call appends one
// evaluation log row with a nil transaction reference: the log records
// intent, not outcome.
type PolicyService interface {
	Evaluate(ctx context.Context, req domain.PolicyCheckRequest) (*domain.PolicyDecision, error)
}

type policyService struct {
	dbExecutor  repository.DBExecutor
	policyRepo  repository.PolicyRepository
	evalLogRepo repository.PolicyEvaluationLogRepository
	// strict turns unrecognized rule types into denials instead of the
	// default pass-with-warning.
	strict bool
	logger *slog.Logger
}

// NewPolicyService creates a new instance of PolicyService.
func NewPolicyService(
	dbExecutor repository.DBExecutor,
	policyRepo repository.PolicyRepository,
	evalLogRepo repository.PolicyEvaluationLogRepository,
	strict bool,
	logger *slog.Logger,
) PolicyService {
	return &policyService{
		dbExecutor:  dbExecutor,
		policyRepo:  policyRepo,
		evalLogRepo: evalLogRepo,
		strict:      strict,
		logger:      logger,
	}
}

// Evaluate walks the applicable policies in descending priority order and
// stops at the first failing rule; lower-priority rules are never
// evaluated once one has failed, so the result list is truncated there.
// Zero applicable policies approve vacuously.
func (s *policyService) Evaluate(ctx context.Context, req domain.PolicyCheckRequest) (*domain.PolicyDecision, error) {
	policies, err := s.policyRepo.ListActiveForCreditDef(ctx, s.dbExecutor, req.CreditDefID)
	if err != nil {
		return nil, fmt.Errorf("policy evaluation: %w", err)
	}

	decision := domain.PolicyDecision{Approved: true}
	for _, policy := range policies {
		result := s.applyRule(policy, req)
		decision.Results = append(decision.Results, domain.RuleOutcome{
			PolicyName: policy.Name,
			Result:     result,
		})
		if !result.Passed {
			decision.Approved = false
			break
		}
	}

	evalLog := domain.NewPolicyEvaluationLog(decision, req.Context)
	if err := s.evalLogRepo.Create(ctx, s.dbExecutor, evalLog); err != nil {
		return nil, fmt.Errorf("policy evaluation: failed to persist log: %w", err)
	}

	if !decision.Approved {
		s.logger.Info("policy evaluation denied",
			"credit_def_id", req.CreditDefID, "amount", req.Amount, "rules_evaluated", len(decision.Results))
	}
	return &decision, nil
}

func (s *policyService) applyRule(policy domain.Policy, req domain.PolicyCheckRequest) domain.RuleResult {
	params, err := policy.DecodeParameters()
	if err != nil {
		// Malformed configuration never silently passes.
		return domain.RuleResult{Passed: false, Reason: fmt.Sprintf("invalid policy parameters: %v", err)}
	}

	switch policy.RuleType {
	case domain.RuleMaxTransactionLimit:
		// An unset limit is effectively unbounded.
		if params.MaxAmount != nil && req.Amount.GreaterThan(*params.MaxAmount) {
			return domain.RuleResult{
				Passed: false,
				Reason: fmt.Sprintf("amount %s exceeds limit %s", req.Amount, params.MaxAmount),
			}
		}
		return domain.RuleResult{Passed: true}

	case domain.RuleBlocklistCountry:
		country, _ := req.Context["userCountry"].(string)
		if country != "" {
			for _, blocked := range params.Countries {
				if blocked == country {
					return domain.RuleResult{
						Passed: false,
						Reason: fmt.Sprintf("country %s is blocked", country),
					}
				}
			}
		}
		return domain.RuleResult{Passed: true}

	default:
		if s.strict {
			return domain.RuleResult{
				Passed: false,
				Reason: fmt.Sprintf("unrecognized rule type %q denied in strict mode", policy.RuleType),
			}
		}
		s.logger.Warn("unrecognized policy rule type passed through",
			"policy", policy.Name, "rule_type", policy.RuleType)
		return domain.RuleResult{Passed: true, Reason: "rule type implementation missing (pass-through)"}
	}
}
