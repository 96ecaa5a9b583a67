// internal/api/handler/credit.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/shriddemon/value-os-platform/internal/api/types"
	"github.com/shriddemon/value-os-platform/internal/domain"
	"github.com/shriddemon/value-os-platform/internal/service"
	"github.com/shriddemon/value-os-platform/internal/util"
)

// CreditHandler handles HTTP requests for the value operations: mint,
// redeem, exchange and the read-side queries.
type CreditHandler struct {
	service service.CreditService
	logger  *slog.Logger
}

// NewCreditHandler creates a new CreditHandler.
func NewCreditHandler(svc service.CreditService, logger *slog.Logger) *CreditHandler {
	return &CreditHandler{
		service: svc,
		logger:  logger,
	}
}

// MintRequest represents the request body for mint.
type MintRequest struct {
	IssuerID       string          `json:"issuer_id"`
	TargetWalletID string          `json:"target_wallet_id"`
	CreditDefID    string          `json:"credit_def_id"`
	Amount         decimal.Decimal `json:"amount"`
	Reason         string          `json:"reason"`
}

// Mint handles the mint request.
// POST /api/v1/vcredits/mint
func (h *CreditHandler) Mint(w http.ResponseWriter, r *http.Request) {
	var req MintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	result, err := h.service.Mint(r.Context(), service.MintInput{
		IssuerID:       req.IssuerID,
		TargetWalletID: req.TargetWalletID,
		CreditDefID:    req.CreditDefID,
		Amount:         req.Amount,
		Reason:         req.Reason,
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, map[string]interface{}{
		"message":        "Mint successful",
		"transaction_id": result.Transaction.ID,
		"entries":        result.Entries,
	})
}

// RedeemRequest represents the request body for redeem.
type RedeemRequest struct {
	IssuerID    string          `json:"issuer_id"`
	WalletID    string          `json:"wallet_id"`
	CreditDefID string          `json:"credit_def_id"`
	Amount      decimal.Decimal `json:"amount"`
	MerchantID  *string         `json:"merchant_id,omitempty"`
	Reason      string          `json:"reason"`
}

// Redeem handles the redeem request.
// POST /api/v1/vcredits/redeem
func (h *CreditHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req RedeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	result, err := h.service.Redeem(r.Context(), service.RedeemInput{
		IssuerID:    req.IssuerID,
		WalletID:    req.WalletID,
		CreditDefID: req.CreditDefID,
		Amount:      req.Amount,
		MerchantID:  req.MerchantID,
		Reason:      req.Reason,
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message":        "Redemption successful",
		"transaction_id": result.Transaction.ID,
		"entries":        result.Entries,
	})
}

// ExchangeRequest represents the request body for exchange.
type ExchangeRequest struct {
	WalletID        string          `json:"wallet_id"`
	Amount          decimal.Decimal `json:"amount"`
	FromCreditDefID string          `json:"from_credit_def_id"`
}

// Exchange handles the exchange request.
// POST /api/v1/vcredits/exchange
func (h *CreditHandler) Exchange(w http.ResponseWriter, r *http.Request) {
	var req ExchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	result, err := h.service.Exchange(r.Context(), service.ExchangeInput{
		WalletID:        req.WalletID,
		Amount:          req.Amount,
		FromCreditDefID: req.FromCreditDefID,
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"success": result.Success,
		"swapped": result.Swapped,
	})
}

// CreateDefinitionRequest represents the request body for creating a
// credit definition.
type CreateDefinitionRequest struct {
	IssuerID string `json:"issuer_id"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Kind     string `json:"kind"`
}

// CreateDefinition handles the create definition request.
// POST /api/v1/vcredits/definitions
func (h *CreditHandler) CreateDefinition(w http.ResponseWriter, r *http.Request) {
	var req CreateDefinitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	def, err := h.service.CreateDefinition(r.Context(), service.CreateDefinitionInput{
		IssuerID: req.IssuerID,
		Name:     req.Name,
		Symbol:   req.Symbol,
		Kind:     domain.CreditKind(req.Kind),
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, def)
}

// ListDefinitions handles the list definitions request.
// GET /api/v1/vcredits/definitions
func (h *CreditHandler) ListDefinitions(w http.ResponseWriter, r *http.Request) {
	defs, err := h.service.ListDefinitions(r.Context())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{"data": defs})
}

// RegisterIssuerRequest represents the request body for issuer
// registration.
type RegisterIssuerRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// RegisterIssuer handles the register issuer request. The generated API
// key is returned once, in this response only.
// POST /api/v1/vcredits/issuers
func (h *CreditHandler) RegisterIssuer(w http.ResponseWriter, r *http.Request) {
	var req RegisterIssuerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	issuer, err := h.service.RegisterIssuer(r.Context(), req.Name, req.Slug)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, map[string]interface{}{
		"id":      issuer.ID,
		"name":    issuer.Name,
		"slug":    issuer.Slug,
		"api_key": issuer.APIKey,
	})
}

// ListIssuers handles the list issuers request.
// GET /api/v1/vcredits/issuers
func (h *CreditHandler) ListIssuers(w http.ResponseWriter, r *http.Request) {
	issuers, err := h.service.ListIssuers(r.Context())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{"data": issuers})
}

// GetWalletBalances handles the wallet balances request.
// GET /api/v1/vcredits/wallets/{walletID}/balances
func (h *CreditHandler) GetWalletBalances(w http.ResponseWriter, r *http.Request) {
	walletID := chi.URLParam(r, "walletID")
	balances, err := h.service.WalletBalances(r.Context(), walletID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"wallet_id": walletID,
		"balances":  balances,
	})
}

// GetTransactionHistory handles the paginated wallet history request.
// GET /api/v1/vcredits/wallets/{walletID}/transactions
func (h *CreditHandler) GetTransactionHistory(w http.ResponseWriter, r *http.Request) {
	walletID := chi.URLParam(r, "walletID")

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	transactions, total, err := h.service.TransactionHistory(r.Context(), walletID, limit, offset)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.PaginatedResponse[domain.LedgerTransaction]{
		Data:       transactions,
		Limit:      limit,
		Offset:     offset,
		TotalCount: total,
	})
}

// GetSystemStats handles the platform-wide stats request.
// GET /api/v1/vcredits/stats
func (h *CreditHandler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.SystemStats(r.Context())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, stats)
}

// GetIssuerStats handles the per-issuer stats request.
// GET /api/v1/vcredits/issuers/{issuerID}/stats
func (h *CreditHandler) GetIssuerStats(w http.ResponseWriter, r *http.Request) {
	issuerID := chi.URLParam(r, "issuerID")
	stats, err := h.service.IssuerStats(r.Context(), issuerID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, stats)
}
