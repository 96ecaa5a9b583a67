// internal/domain/policy.go
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RuleType tags a policy with its rule implementation. The set is closed:
// the evaluator treats anything outside it as unrecognized and applies the
// configured default instead of silently passing it through.
type RuleType string

const (
	RuleMaxTransactionLimit RuleType = "MAX_TRANSACTION_LIMIT"
	RuleBlocklistCountry    RuleType = "BLOCKLIST_COUNTRY"
)

// Policy is a named, prioritized rule gating proposed transactions. A
// policy scopes to one credit definition, one issuer, or globally when both
// scope fields are unset. Managed by an external collaborator; the core
// only reads active policies.
type Policy struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	RuleType    RuleType  `db:"rule_type" json:"rule_type"`
	Priority    int       `db:"priority" json:"priority"` // Higher evaluates first
	IssuerID    *string   `db:"issuer_id" json:"issuer_id"`
	CreditDefID *string   `db:"credit_def_id" json:"credit_def_id"`
	Parameters  string    `db:"parameters" json:"parameters"` // Free-form JSON
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// PolicyParameters is the decoded shape of Policy.Parameters for the
// built-in rule types. Fields irrelevant to a rule stay zero.
type PolicyParameters struct {
	MaxAmount *decimal.Decimal `json:"maxAmount,omitempty"`
	Countries []string         `json:"countries,omitempty"`
}

// NewPolicy creates an active policy with the given scope and parameters.
func NewPolicy(name string, ruleType RuleType, priority int, params PolicyParameters) *Policy {
	encoded, _ := json.Marshal(params)
	return &Policy{
		ID:         uuid.NewString(),
		Name:       name,
		RuleType:   ruleType,
		Priority:   priority,
		Parameters: string(encoded),
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}
}

// DecodeParameters parses the free-form parameter blob.
func (p *Policy) DecodeParameters() (PolicyParameters, error) {
	var params PolicyParameters
	if p.Parameters == "" {
		return params, nil
	}
	err := json.Unmarshal([]byte(p.Parameters), &params)
	return params, err
}

// PolicyCheckRequest describes a proposed transaction to the evaluator.
type PolicyCheckRequest struct {
	Amount            decimal.Decimal `json:"amount"`
	CreditDefID       string          `json:"credit_def_id"`
	SenderWalletID    *string         `json:"sender_wallet_id,omitempty"`
	RecipientWalletID *string         `json:"recipient_wallet_id,omitempty"`
	Context           map[string]any  `json:"context,omitempty"`
}

// RuleResult is one rule's verdict.
type RuleResult struct {
	Passed bool   `json:"passed"`
	Reason string `json:"reason,omitempty"`
}

// RuleOutcome pairs a policy with its verdict, in evaluation order.
type RuleOutcome struct {
	PolicyName string     `json:"policyName"`
	Result     RuleResult `json:"result"`
}

// PolicyDecision is the evaluator's answer. Results are truncated at the
// first failing rule; rules after it are never evaluated.
type PolicyDecision struct {
	Approved bool          `json:"approved"`
	Results  []RuleOutcome `json:"results"`
}

// Evaluation log decisions.
const (
	DecisionApproved = "APPROVED"
	DecisionDenied   = "DENIED"
)

// PolicyEvaluationLog is the immutable record of one evaluation. The
// transaction reference is nil for pre-transaction checks: the log records
// intent, not outcome.
type PolicyEvaluationLog struct {
	ID            string    `db:"id" json:"id"`
	TransactionID *string   `db:"transaction_id" json:"transaction_id"`
	Decision      string    `db:"decision" json:"decision"`
	Results       string    `db:"results" json:"results"` // Serialized rule outcomes + request context
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// NewPolicyEvaluationLog serializes a decision and its request context
// into a log row.
func NewPolicyEvaluationLog(decision PolicyDecision, reqContext map[string]any) *PolicyEvaluationLog {
	verdict := DecisionDenied
	if decision.Approved {
		verdict = DecisionApproved
	}
	encoded := "{}"
	if raw, err := json.Marshal(map[string]any{
		"results": decision.Results,
		"context": reqContext,
	}); err == nil {
		encoded = string(raw)
	}
	return &PolicyEvaluationLog{
		ID:        uuid.NewString(),
		Decision:  verdict,
		Results:   encoded,
		CreatedAt: time.Now().UTC(),
	}
}
