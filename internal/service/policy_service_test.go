// internal/service/policy_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shriddemon/value-os-platform/internal/domain"
)

func limitPolicy(name string, priority int, max int64) domain.Policy {
	maxAmount := decimal.NewFromInt(max)
	return *domain.NewPolicy(name, domain.RuleMaxTransactionLimit, priority,
		domain.PolicyParameters{MaxAmount: &maxAmount})
}

// TestEvaluate tests the policy evaluator.
func TestEvaluate(t *testing.T) {
	creditDefID := "def-1"

	t.Run("NoPoliciesApprovesVacuously", func(t *testing.T) {
		ctx := context.Background()
		mockDBExecutor := new(MockDBExecutor)
		mockPolicyRepo := new(MockPolicyRepository)
		mockEvalLogRepo := new(MockPolicyEvaluationLogRepository)
		service := NewPolicyService(mockDBExecutor, mockPolicyRepo, mockEvalLogRepo, false, testLogger())

		mockPolicyRepo.On("ListActiveForCreditDef", ctx, mock.Anything, creditDefID).Return([]domain.Policy{}, nil).Once()
		mockEvalLogRepo.On("Create", ctx, mock.Anything, mock.AnythingOfType("*domain.PolicyEvaluationLog")).Return(nil).Once()

		decision, err := service.Evaluate(ctx, domain.PolicyCheckRequest{
			Amount:      decimal.NewFromInt(100),
			CreditDefID: creditDefID,
		})

		assert.NoError(t, err)
		assert.True(t, decision.Approved)
		assert.Empty(t, decision.Results)
		mock.AssertExpectationsForObjects(t, mockPolicyRepo, mockEvalLogRepo)
	})

	t.Run("FirstFailureShortCircuits", func(t *testing.T) {
		ctx := context.Background()
		mockDBExecutor := new(MockDBExecutor)
		mockPolicyRepo := new(MockPolicyRepository)
		mockEvalLogRepo := new(MockPolicyEvaluationLogRepository)
		service := NewPolicyService(mockDBExecutor, mockPolicyRepo, mockEvalLogRepo, false, testLogger())

		// Priority order as the repository returns them: the tight cap
		// fails first and the looser one must never appear in the results.
		policies := []domain.Policy{
			limitPolicy("Tight cap", 20, 50),
			limitPolicy("Loose cap", 10, 10000),
		}
		mockPolicyRepo.On("ListActiveForCreditDef", ctx, mock.Anything, creditDefID).Return(policies, nil).Once()

		var savedLog *domain.PolicyEvaluationLog
		mockEvalLogRepo.On("Create", ctx, mock.Anything, mock.AnythingOfType("*domain.PolicyEvaluationLog")).
			Run(func(args mock.Arguments) {
				savedLog = args.Get(2).(*domain.PolicyEvaluationLog)
			}).Return(nil).Once()

		decision, err := service.Evaluate(ctx, domain.PolicyCheckRequest{
			Amount:      decimal.NewFromInt(500),
			CreditDefID: creditDefID,
		})

		assert.NoError(t, err)
		assert.False(t, decision.Approved)
		require.Len(t, decision.Results, 1, "Evaluation stops at the first failing rule")
		assert.Equal(t, "Tight cap", decision.Results[0].PolicyName)
		assert.False(t, decision.Results[0].Result.Passed)
		assert.Contains(t, decision.Results[0].Result.Reason, "exceeds limit")

		require.NotNil(t, savedLog)
		assert.Equal(t, domain.DecisionDenied, savedLog.Decision)
		assert.Nil(t, savedLog.TransactionID)
		mock.AssertExpectationsForObjects(t, mockPolicyRepo, mockEvalLogRepo)
	})

	t.Run("AllRulesPass", func(t *testing.T) {
		ctx := context.Background()
		mockDBExecutor := new(MockDBExecutor)
		mockPolicyRepo := new(MockPolicyRepository)
		mockEvalLogRepo := new(MockPolicyEvaluationLogRepository)
		service := NewPolicyService(mockDBExecutor, mockPolicyRepo, mockEvalLogRepo, false, testLogger())

		policies := []domain.Policy{
			limitPolicy("Cap A", 20, 1000),
			limitPolicy("Cap B", 10, 2000),
		}
		mockPolicyRepo.On("ListActiveForCreditDef", ctx, mock.Anything, creditDefID).Return(policies, nil).Once()
		mockEvalLogRepo.On("Create", ctx, mock.Anything, mock.AnythingOfType("*domain.PolicyEvaluationLog")).Return(nil).Once()

		decision, err := service.Evaluate(ctx, domain.PolicyCheckRequest{
			Amount:      decimal.NewFromInt(500),
			CreditDefID: creditDefID,
		})

		assert.NoError(t, err)
		assert.True(t, decision.Approved)
		assert.Len(t, decision.Results, 2)
	})

	t.Run("BlockedCountry", func(t *testing.T) {
		ctx := context.Background()
		mockDBExecutor := new(MockDBExecutor)
		mockPolicyRepo := new(MockPolicyRepository)
		mockEvalLogRepo := new(MockPolicyEvaluationLogRepository)
		service := NewPolicyService(mockDBExecutor, mockPolicyRepo, mockEvalLogRepo, false, testLogger())

		blocklist := *domain.NewPolicy("Geo block", domain.RuleBlocklistCountry, 5,
			domain.PolicyParameters{Countries: []string{"KP", "IR"}})
		mockPolicyRepo.On("ListActiveForCreditDef", ctx, mock.Anything, creditDefID).Return([]domain.Policy{blocklist}, nil).Once()
		mockEvalLogRepo.On("Create", ctx, mock.Anything, mock.AnythingOfType("*domain.PolicyEvaluationLog")).Return(nil).Once()

		decision, err := service.Evaluate(ctx, domain.PolicyCheckRequest{
			Amount:      decimal.NewFromInt(10),
			CreditDefID: creditDefID,
			Context:     map[string]any{"userCountry": "IR"},
		})

		assert.NoError(t, err)
		assert.False(t, decision.Approved)
		assert.Contains(t, decision.Results[0].Result.Reason, "IR")
	})

	t.Run("MissingCountryContextPasses", func(t *testing.T) {
		ctx := context.Background()
		mockDBExecutor := new(MockDBExecutor)
		mockPolicyRepo := new(MockPolicyRepository)
		mockEvalLogRepo := new(MockPolicyEvaluationLogRepository)
		service := NewPolicyService(mockDBExecutor, mockPolicyRepo, mockEvalLogRepo, false, testLogger())

		blocklist := *domain.NewPolicy("Geo block", domain.RuleBlocklistCountry, 5,
			domain.PolicyParameters{Countries: []string{"KP"}})
		mockPolicyRepo.On("ListActiveForCreditDef", ctx, mock.Anything, creditDefID).Return([]domain.Policy{blocklist}, nil).Once()
		mockEvalLogRepo.On("Create", ctx, mock.Anything, mock.AnythingOfType("*domain.PolicyEvaluationLog")).Return(nil).Once()

		decision, err := service.Evaluate(ctx, domain.PolicyCheckRequest{
			Amount:      decimal.NewFromInt(10),
			CreditDefID: creditDefID,
		})

		assert.NoError(t, err)
		assert.True(t, decision.Approved)
	})

	t.Run("UnrecognizedRulePassesWithWarning", func(t *testing.T) {
		ctx := context.Background()
		mockDBExecutor := new(MockDBExecutor)
		mockPolicyRepo := new(MockPolicyRepository)
		mockEvalLogRepo := new(MockPolicyEvaluationLogRepository)
		service := NewPolicyService(mockDBExecutor, mockPolicyRepo, mockEvalLogRepo, false, testLogger())

		exotic := *domain.NewPolicy("Velocity guard", domain.RuleType("VELOCITY_LIMIT"), 5, domain.PolicyParameters{})
		mockPolicyRepo.On("ListActiveForCreditDef", ctx, mock.Anything, creditDefID).Return([]domain.Policy{exotic}, nil).Once()
		mockEvalLogRepo.On("Create", ctx, mock.Anything, mock.AnythingOfType("*domain.PolicyEvaluationLog")).Return(nil).Once()

		decision, err := service.Evaluate(ctx, domain.PolicyCheckRequest{
			Amount:      decimal.NewFromInt(10),
			CreditDefID: creditDefID,
		})

		assert.NoError(t, err)
		assert.True(t, decision.Approved)
		require.Len(t, decision.Results, 1)
		assert.Contains(t, decision.Results[0].Result.Reason, "pass-through")
	})

	t.Run("UnrecognizedRuleDeniedInStrictMode", func(t *testing.T) {
		ctx := context.Background()
		mockDBExecutor := new(MockDBExecutor)
		mockPolicyRepo := new(MockPolicyRepository)
		mockEvalLogRepo := new(MockPolicyEvaluationLogRepository)
		service := NewPolicyService(mockDBExecutor, mockPolicyRepo, mockEvalLogRepo, true, testLogger())

		exotic := *domain.NewPolicy("Velocity guard", domain.RuleType("VELOCITY_LIMIT"), 5, domain.PolicyParameters{})
		mockPolicyRepo.On("ListActiveForCreditDef", ctx, mock.Anything, creditDefID).Return([]domain.Policy{exotic}, nil).Once()
		mockEvalLogRepo.On("Create", ctx, mock.Anything, mock.AnythingOfType("*domain.PolicyEvaluationLog")).Return(nil).Once()

		decision, err := service.Evaluate(ctx, domain.PolicyCheckRequest{
			Amount:      decimal.NewFromInt(10),
			CreditDefID: creditDefID,
		})

		assert.NoError(t, err)
		assert.False(t, decision.Approved)
		assert.Contains(t, decision.Results[0].Result.Reason, "strict mode")
	})

	t.Run("MalformedParametersFail", func(t *testing.T) {
		ctx := context.Background()
		mockDBExecutor := new(MockDBExecutor)
		mockPolicyRepo := new(MockPolicyRepository)
		mockEvalLogRepo := new(MockPolicyEvaluationLogRepository)
		service := NewPolicyService(mockDBExecutor, mockPolicyRepo, mockEvalLogRepo, false, testLogger())

		broken := limitPolicy("Broken cap", 10, 100)
		broken.Parameters = "{not json"
		mockPolicyRepo.On("ListActiveForCreditDef", ctx, mock.Anything, creditDefID).Return([]domain.Policy{broken}, nil).Once()
		mockEvalLogRepo.On("Create", ctx, mock.Anything, mock.AnythingOfType("*domain.PolicyEvaluationLog")).Return(nil).Once()

		decision, err := service.Evaluate(ctx, domain.PolicyCheckRequest{
			Amount:      decimal.NewFromInt(10),
			CreditDefID: creditDefID,
		})

		assert.NoError(t, err)
		assert.False(t, decision.Approved)
		assert.Contains(t, decision.Results[0].Result.Reason, "invalid policy parameters")
	})
}
