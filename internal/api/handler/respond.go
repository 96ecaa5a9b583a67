// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/shriddemon/value-os-platform/internal/util"
)

// DefaultTimeout bounds request handling across all endpoints.
const DefaultTimeout = 60 * time.Second

// respondWithJSON sends payload as a JSON response with the given status.
func respondWithJSON(w http.ResponseWriter, logger *slog.Logger, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps service errors to HTTP statuses. Policy
// rejections and pool insolvency carry structured detail back to the
// caller; everything unrecognized collapses to a 500.
func respondWithError(w http.ResponseWriter, logger *slog.Logger, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"
	var detail interface{}

	var policyErr *util.PolicyRejectedError
	var poolErr *util.PoolInsolvencyError
	var fundsErr *util.InsufficientFundsError

	switch {
	case errors.As(err, &policyErr):
		statusCode = http.StatusForbidden
		message = "Transaction rejected by policy"
		detail = policyErr.Results
	case errors.As(err, &poolErr):
		statusCode = http.StatusConflict
		message = "Liquidity pool cannot cover redemption"
		detail = map[string]interface{}{
			"credit_def_id": poolErr.CreditDefID,
			"available":     poolErr.Available,
			"required":      poolErr.Required,
		}
	case errors.As(err, &fundsErr):
		statusCode = http.StatusPaymentRequired
		message = "Insufficient funds"
		detail = map[string]interface{}{
			"wallet_id":     fundsErr.WalletID,
			"credit_def_id": fundsErr.CreditDefID,
			"available":     fundsErr.Available,
			"requested":     fundsErr.Requested,
		}
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrNoIssuer):
		// Fatal configuration gap; operator intervention required.
		statusCode = http.StatusInternalServerError
		message = "No issuer registered on the platform"
		logger.Error("No issuer available", "error", err)
	case util.IsError(err, util.ErrInsufficientFunds):
		statusCode = http.StatusPaymentRequired
		message = "Insufficient funds"
	case util.IsError(err, util.ErrPolicyRejected):
		statusCode = http.StatusForbidden
		message = "Transaction rejected by policy"
	case util.IsError(err, util.ErrPoolInsolvent):
		statusCode = http.StatusConflict
		message = "Liquidity pool cannot cover redemption"
	case util.IsError(err, util.ErrNotFound), util.IsError(err, util.ErrWalletNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	case util.IsError(err, util.ErrDuplicateEntry):
		statusCode = http.StatusConflict
		message = "Resource already exists"
	default:
		logger.Error("Unhandled service error", "error", err)
	}

	body := map[string]interface{}{"error": message}
	if detail != nil {
		body["detail"] = detail
	}
	respondWithJSON(w, logger, statusCode, body)
}
