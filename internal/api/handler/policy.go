// internal/api/handler/policy.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/shriddemon/value-os-platform/internal/domain"
	"github.com/shriddemon/value-os-platform/internal/service"
	"github.com/shriddemon/value-os-platform/internal/util"
)

// PolicyHandler handles HTTP requests for dry-run policy evaluation.
type PolicyHandler struct {
	service service.PolicyService
	logger  *slog.Logger
}

// NewPolicyHandler creates a new PolicyHandler.
func NewPolicyHandler(svc service.PolicyService, logger *slog.Logger) *PolicyHandler {
	return &PolicyHandler{
		service: svc,
		logger:  logger,
	}
}

// EvaluateRequest represents the request body for a policy dry run.
type EvaluateRequest struct {
	Amount            decimal.Decimal `json:"amount"`
	CreditDefID       string          `json:"credit_def_id"`
	SenderWalletID    *string         `json:"sender_wallet_id,omitempty"`
	RecipientWalletID *string         `json:"recipient_wallet_id,omitempty"`
	Context           map[string]any  `json:"context,omitempty"`
}

// Evaluate handles the policy dry-run request. The evaluation is logged
// like any other, but no transaction is posted.
// POST /api/v1/policy/evaluate
func (h *PolicyHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if req.CreditDefID == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	decision, err := h.service.Evaluate(r.Context(), domain.PolicyCheckRequest{
		Amount:            req.Amount,
		CreditDefID:       req.CreditDefID,
		SenderWalletID:    req.SenderWalletID,
		RecipientWalletID: req.RecipientWalletID,
		Context:           req.Context,
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, decision)
}
