// internal/service/credit_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shriddemon/value-os-platform/internal/domain"
	"github.com/shriddemon/value-os-platform/internal/repository"
	"github.com/shriddemon/value-os-platform/internal/util"
	"github.com/shriddemon/value-os-platform/pkg/db"
)

// MintInput issues new units of a definition into a wallet.
type MintInput struct {
	IssuerID       string
	TargetWalletID string
	CreditDefID    string
	Amount         decimal.Decimal
	Reason         string
}

// RedeemInput burns units from a wallet against the definition's
// liquidity pool.
type RedeemInput struct {
	IssuerID    string
	WalletID    string
	CreditDefID string
	Amount      decimal.Decimal
	MerchantID  *string
	Reason      string
}

// ExchangeInput converts units of an external credit into the internal
// liquid asset.
type ExchangeInput struct {
	WalletID        string
	Amount          decimal.Decimal
	FromCreditDefID string
}

// CreateDefinitionInput registers a new credit definition for an issuer.
type CreateDefinitionInput struct {
	IssuerID string
	Name     string
	Symbol   string
	Kind     domain.CreditKind
}

// CreditService orchestrates the user-facing value operations: mint,
// redeem and exchange, plus the reference-data and read-side queries the
// external collaborators consume.
type CreditService interface {
	Mint(ctx context.Context, in MintInput) (*domain.TransactionResult, error)
	Redeem(ctx context.Context, in RedeemInput) (*domain.TransactionResult, error)
	Exchange(ctx context.Context, in ExchangeInput) (*domain.ExchangeResult, error)

	CreateDefinition(ctx context.Context, in CreateDefinitionInput) (*domain.CreditDefinition, error)
	ListDefinitions(ctx context.Context) ([]domain.CreditDefinition, error)
	RegisterIssuer(ctx context.Context, name, slug string) (*domain.Issuer, error)
	ListIssuers(ctx context.Context) ([]domain.Issuer, error)

	WalletBalances(ctx context.Context, walletID string) ([]domain.WalletBalance, error)
	TransactionHistory(ctx context.Context, walletID string, limit, offset int) ([]domain.LedgerTransaction, int64, error)
	SystemStats(ctx context.Context) (*domain.SystemStats, error)
	IssuerStats(ctx context.Context, issuerID string) (*domain.IssuerStats, error)
}

type creditService struct {
	dbBeginner   db.DBTxBeginner
	dbExecutor   repository.DBExecutor
	issuerRepo   repository.IssuerRepository
	defRepo      repository.CreditDefinitionRepository
	balanceRepo  repository.BalanceRepository
	poolRepo     repository.LiquidityPoolRepository
	merchantRepo repository.MerchantRepository
	ledgerRepo   repository.LedgerRepository
	evalLogRepo  repository.PolicyEvaluationLogRepository
	ledger       LedgerService
	policy       PolicyService
	beginTx      db.BeginTxFunc
	commitTx     db.CommitTxFunc
	rollbackTx   db.RollbackTxFunc
	logger       *slog.Logger
}

// NewCreditService creates a new instance of CreditService.
func NewCreditService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	issuerRepo repository.IssuerRepository,
	defRepo repository.CreditDefinitionRepository,
	balanceRepo repository.BalanceRepository,
	poolRepo repository.LiquidityPoolRepository,
	merchantRepo repository.MerchantRepository,
	ledgerRepo repository.LedgerRepository,
	evalLogRepo repository.PolicyEvaluationLogRepository,
	ledger LedgerService,
	policy PolicyService,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	logger *slog.Logger,
) CreditService {
	return &creditService{
		dbBeginner:   dbBeginner,
		dbExecutor:   dbExecutor,
		issuerRepo:   issuerRepo,
		defRepo:      defRepo,
		balanceRepo:  balanceRepo,
		poolRepo:     poolRepo,
		merchantRepo: merchantRepo,
		ledgerRepo:   ledgerRepo,
		evalLogRepo:  evalLogRepo,
		ledger:       ledger,
		policy:       policy,
		beginTx:      beginTx,
		commitTx:     commitTx,
		rollbackTx:   rollbackTx,
		logger:       logger,
	}
}

// Mint issues new units into the target wallet as one CREDIT entry. A
// missing definition is auto-provisioned under a placeholder identity so
// that reference-data drift does not block issuance.
func (s *creditService) Mint(ctx context.Context, in MintInput) (*domain.TransactionResult, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("mint amount must be positive: %w", util.ErrInvalidInput)
	}
	if in.TargetWalletID == "" || in.CreditDefID == "" {
		return nil, fmt.Errorf("mint requires wallet and definition ids: %w", util.ErrInvalidInput)
	}

	if _, err := s.ensureDefinition(ctx, in.CreditDefID, in.IssuerID); err != nil {
		return nil, err
	}

	return s.ledger.RecordTransaction(ctx, domain.TransactionTypeMint,
		[]domain.EntryInput{{
			WalletID:    in.TargetWalletID,
			CreditDefID: in.CreditDefID,
			Amount:      in.Amount,
			Direction:   domain.DirectionCredit,
		}},
		map[string]any{"reason": in.Reason, "issuerId": in.IssuerID},
	)
}

// Redeem burns units from the wallet after the policy gate approves, and
// spends the backing liquidity pool. The solvency check, the pool
// decrement and the BURN posting run inside one store transaction, so a
// failure at any point leaves both the pool and the balances untouched.
func (s *creditService) Redeem(ctx context.Context, in RedeemInput) (*domain.TransactionResult, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("redeem amount must be positive: %w", util.ErrInvalidInput)
	}
	if in.WalletID == "" || in.CreditDefID == "" {
		return nil, fmt.Errorf("redeem requires wallet and definition ids: %w", util.ErrInvalidInput)
	}

	decision, err := s.policy.Evaluate(ctx, domain.PolicyCheckRequest{
		Amount:         in.Amount,
		CreditDefID:    in.CreditDefID,
		SenderWalletID: &in.WalletID,
		Context:        map[string]any{"action": "REDEEM", "issuerId": in.IssuerID},
	})
	if err != nil {
		return nil, err
	}
	if !decision.Approved {
		return nil, &util.PolicyRejectedError{Results: decision.Results}
	}

	// Base value: $0.01 per unit. A merchant discount scales down what the
	// pool pays; the pool covers less than face value.
	discountRate := decimal.Zero
	if in.MerchantID != nil {
		merchant, err := s.merchantRepo.GetByID(ctx, s.dbExecutor, *in.MerchantID)
		if err != nil && !errors.Is(err, util.ErrNotFound) {
			return nil, fmt.Errorf("redeem: %w", err)
		}
		if merchant != nil && merchant.DiscountRate.IsPositive() {
			discountRate = merchant.DiscountRate
		}
	}
	redemptionValue := domain.RedemptionValue(in.Amount, discountRate)
	if discountRate.IsPositive() {
		s.logger.Info("merchant discount applied",
			"merchant_id", *in.MerchantID, "discount_rate", discountRate, "pool_cost", redemptionValue)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("redeem: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("redeem: transaction controller does not implement DBExecutor")
	}

	pool, err := s.poolRepo.GetByCreditDefForUpdate(ctx, txExecutor, in.CreditDefID)
	switch {
	case errors.Is(err, util.ErrNotFound):
		// An absent pool never blocks redemption; only an insufficient one
		// does.
		s.logger.Warn("no liquidity pool for definition, proceeding unbacked",
			"credit_def_id", in.CreditDefID)
	case err != nil:
		return nil, fmt.Errorf("redeem: %w", err)
	default:
		if pool.Balance.LessThan(redemptionValue) {
			return nil, &util.PoolInsolvencyError{
				CreditDefID: in.CreditDefID,
				Available:   pool.Balance,
				Required:    redemptionValue,
			}
		}
		if err := s.poolRepo.AddToBalance(ctx, txExecutor, pool.ID, redemptionValue.Neg()); err != nil {
			return nil, fmt.Errorf("redeem: %w", err)
		}
		s.logger.Info("liquidity pool charged",
			"pool_id", pool.ID, "cost", redemptionValue, "remaining", pool.Balance.Sub(redemptionValue))
	}

	metadata := map[string]any{"reason": in.Reason, "issuerId": in.IssuerID, "redemptionValue": redemptionValue}
	if in.MerchantID != nil {
		metadata["merchantId"] = *in.MerchantID
	}

	result, err := s.ledger.RecordTransactionIn(ctx, txExecutor, domain.TransactionTypeBurn,
		[]domain.EntryInput{{
			WalletID:    in.WalletID,
			CreditDefID: in.CreditDefID,
			Amount:      in.Amount,
			Direction:   domain.DirectionDebit,
		}},
		metadata,
	)
	if err != nil {
		return nil, err
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("redeem: failed to commit transaction: %w", err)
	}
	return result, nil
}

// Exchange swaps units of an external credit for the internal liquid
// asset at the fixed rate. The swap is posted through the ledger engine
// as one TRANSFER transaction, so the debit, the credit and the audit
// entries commit or roll back together.
func (s *creditService) Exchange(ctx context.Context, in ExchangeInput) (*domain.ExchangeResult, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("exchange amount must be positive: %w", util.ErrInvalidInput)
	}
	if in.WalletID == "" || in.FromCreditDefID == "" {
		return nil, fmt.Errorf("exchange requires wallet and definition ids: %w", util.ErrInvalidInput)
	}

	sourceBalance, err := s.balanceRepo.Get(ctx, s.dbExecutor, in.WalletID, in.FromCreditDefID)
	if errors.Is(err, util.ErrNotFound) {
		return nil, &util.InsufficientFundsError{
			WalletID:    in.WalletID,
			CreditDefID: in.FromCreditDefID,
			Available:   decimal.Zero,
			Requested:   in.Amount,
		}
	}
	if err != nil {
		return nil, fmt.Errorf("exchange: %w", err)
	}
	if sourceBalance.Amount.LessThan(in.Amount) {
		return nil, &util.InsufficientFundsError{
			WalletID:    in.WalletID,
			CreditDefID: in.FromCreditDefID,
			Available:   sourceBalance.Amount,
			Requested:   in.Amount,
		}
	}

	if err := s.ensureInternalAsset(ctx); err != nil {
		return nil, err
	}

	valAmount := domain.ExchangeValue(in.Amount)
	_, err = s.ledger.RecordTransaction(ctx, domain.TransactionTypeTransfer,
		[]domain.EntryInput{
			{
				WalletID:    in.WalletID,
				CreditDefID: in.FromCreditDefID,
				Amount:      in.Amount,
				Direction:   domain.DirectionDebit,
			},
			{
				WalletID:    in.WalletID,
				CreditDefID: domain.InternalAssetID,
				Amount:      valAmount,
				Direction:   domain.DirectionCredit,
			},
		},
		map[string]any{"reason": "exchange", "fromCreditDefId": in.FromCreditDefID, "rate": domain.ExchangeRate},
	)
	if err != nil {
		return nil, err
	}

	return &domain.ExchangeResult{Success: true, Swapped: valAmount}, nil
}

// ensureDefinition is the idempotent get-or-create for a referenced but
// missing definition. The issuer is resolved by id, falling back to any
// issuer; only a platform with no issuers at all fails.
func (s *creditService) ensureDefinition(ctx context.Context, creditDefID, issuerID string) (*domain.CreditDefinition, error) {
	def, err := s.defRepo.GetByID(ctx, s.dbExecutor, creditDefID)
	if err == nil {
		return def, nil
	}
	if !errors.Is(err, util.ErrNotFound) {
		return nil, fmt.Errorf("ensure definition: %w", err)
	}

	issuer, err := s.resolveIssuer(ctx, issuerID)
	if err != nil {
		return nil, err
	}

	placeholder := domain.PlaceholderDefinition(creditDefID, issuer.ID)
	if err := s.defRepo.Upsert(ctx, s.dbExecutor, placeholder); err != nil {
		return nil, fmt.Errorf("ensure definition: %w", err)
	}
	s.logger.Warn("auto-provisioned missing credit definition",
		"credit_def_id", creditDefID, "issuer_id", issuer.ID)

	// Re-read after the upsert: a concurrent provisioner may have won.
	def, err = s.defRepo.GetByID(ctx, s.dbExecutor, creditDefID)
	if err != nil {
		return nil, fmt.Errorf("ensure definition: %w", err)
	}
	return def, nil
}

// ensureInternalAsset provisions the $VAL definition under the first
// available issuer if it does not exist yet.
func (s *creditService) ensureInternalAsset(ctx context.Context) error {
	_, err := s.defRepo.GetByID(ctx, s.dbExecutor, domain.InternalAssetID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, util.ErrNotFound) {
		return fmt.Errorf("ensure internal asset: %w", err)
	}

	issuer, err := s.issuerRepo.GetFirst(ctx, s.dbExecutor)
	if errors.Is(err, util.ErrNotFound) {
		return fmt.Errorf("ensure internal asset: %w", util.ErrNoIssuer)
	}
	if err != nil {
		return fmt.Errorf("ensure internal asset: %w", err)
	}

	if err := s.defRepo.Upsert(ctx, s.dbExecutor, domain.InternalAssetDefinition(issuer.ID)); err != nil {
		return fmt.Errorf("ensure internal asset: %w", err)
	}
	s.logger.Info("provisioned internal liquid asset", "issuer_id", issuer.ID)
	return nil
}

// resolveIssuer returns the issuer by id, any issuer when that id is
// unknown, or ErrNoIssuer when the platform has none.
func (s *creditService) resolveIssuer(ctx context.Context, issuerID string) (*domain.Issuer, error) {
	if issuerID != "" {
		issuer, err := s.issuerRepo.GetByID(ctx, s.dbExecutor, issuerID)
		if err == nil {
			return issuer, nil
		}
		if !errors.Is(err, util.ErrNotFound) {
			return nil, fmt.Errorf("resolve issuer: %w", err)
		}
	}
	issuer, err := s.issuerRepo.GetFirst(ctx, s.dbExecutor)
	if errors.Is(err, util.ErrNotFound) {
		return nil, fmt.Errorf("resolve issuer: %w", util.ErrNoIssuer)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve issuer: %w", err)
	}
	return issuer, nil
}

func (s *creditService) CreateDefinition(ctx context.Context, in CreateDefinitionInput) (*domain.CreditDefinition, error) {
	if in.IssuerID == "" || in.Name == "" || in.Symbol == "" {
		return nil, fmt.Errorf("definition requires issuer, name and symbol: %w", util.ErrInvalidInput)
	}
	switch in.Kind {
	case domain.CreditKindLoyaltyPoint, domain.CreditKindGiftCard, domain.CreditKindAirlineMile:
	default:
		return nil, fmt.Errorf("unknown credit kind %q: %w", in.Kind, util.ErrInvalidInput)
	}
	if _, err := s.issuerRepo.GetByID(ctx, s.dbExecutor, in.IssuerID); err != nil {
		return nil, fmt.Errorf("create definition: %w", err)
	}

	def := domain.NewCreditDefinition(in.IssuerID, in.Name, in.Symbol, in.Kind)
	if err := s.defRepo.Create(ctx, s.dbExecutor, def); err != nil {
		return nil, fmt.Errorf("create definition: %w", err)
	}
	return def, nil
}

func (s *creditService) ListDefinitions(ctx context.Context) ([]domain.CreditDefinition, error) {
	return s.defRepo.List(ctx, s.dbExecutor)
}

func (s *creditService) RegisterIssuer(ctx context.Context, name, slug string) (*domain.Issuer, error) {
	if name == "" || slug == "" {
		return nil, fmt.Errorf("issuer requires name and slug: %w", util.ErrInvalidInput)
	}
	issuer := domain.NewIssuer(name, slug)
	if err := s.issuerRepo.Create(ctx, s.dbExecutor, issuer); err != nil {
		return nil, fmt.Errorf("register issuer: %w", err)
	}
	return issuer, nil
}

func (s *creditService) ListIssuers(ctx context.Context) ([]domain.Issuer, error) {
	return s.issuerRepo.List(ctx, s.dbExecutor)
}

func (s *creditService) WalletBalances(ctx context.Context, walletID string) ([]domain.WalletBalance, error) {
	if walletID == "" {
		return nil, fmt.Errorf("wallet id required: %w", util.ErrInvalidInput)
	}
	return s.balanceRepo.ListByWallet(ctx, s.dbExecutor, walletID)
}

func (s *creditService) TransactionHistory(ctx context.Context, walletID string, limit, offset int) ([]domain.LedgerTransaction, int64, error) {
	if walletID == "" {
		return nil, 0, fmt.Errorf("wallet id required: %w", util.ErrInvalidInput)
	}
	return s.ledgerRepo.ListTransactionsByWallet(ctx, s.dbExecutor, walletID, limit, offset)
}

func (s *creditService) SystemStats(ctx context.Context) (*domain.SystemStats, error) {
	totalIssued, err := s.ledgerRepo.SumEntriesByTransactionType(ctx, s.dbExecutor, domain.TransactionTypeMint, nil)
	if err != nil {
		return nil, fmt.Errorf("system stats: %w", err)
	}
	totalRedeemed, err := s.ledgerRepo.SumEntriesByTransactionType(ctx, s.dbExecutor, domain.TransactionTypeBurn, nil)
	if err != nil {
		return nil, fmt.Errorf("system stats: %w", err)
	}
	txCount, err := s.ledgerRepo.CountTransactions(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("system stats: %w", err)
	}
	blocked, err := s.evalLogRepo.CountByDecision(ctx, s.dbExecutor, domain.DecisionDenied)
	if err != nil {
		return nil, fmt.Errorf("system stats: %w", err)
	}

	return &domain.SystemStats{
		TotalIssued:      totalIssued,
		TotalRedeemed:    totalRedeemed,
		TransactionCount: txCount,
		PolicyBlockCount: blocked,
	}, nil
}

func (s *creditService) IssuerStats(ctx context.Context, issuerID string) (*domain.IssuerStats, error) {
	if issuerID == "" {
		return nil, fmt.Errorf("issuer id required: %w", util.ErrInvalidInput)
	}
	defIDs, err := s.defRepo.ListIDsByIssuer(ctx, s.dbExecutor, issuerID)
	if err != nil {
		return nil, fmt.Errorf("issuer stats: %w", err)
	}

	stats := &domain.IssuerStats{
		TotalIssued:          decimal.Zero,
		TotalRedeemed:        decimal.Zero,
		OutstandingLiability: decimal.Zero,
		ExpiringWithin30Days: decimal.Zero,
	}
	if len(defIDs) == 0 {
		return stats, nil
	}

	stats.TotalIssued, err = s.ledgerRepo.SumEntriesByTransactionType(ctx, s.dbExecutor, domain.TransactionTypeMint, defIDs)
	if err != nil {
		return nil, fmt.Errorf("issuer stats: %w", err)
	}
	stats.TotalRedeemed, err = s.ledgerRepo.SumEntriesByTransactionType(ctx, s.dbExecutor, domain.TransactionTypeBurn, defIDs)
	if err != nil {
		return nil, fmt.Errorf("issuer stats: %w", err)
	}
	stats.OutstandingLiability = stats.TotalIssued.Sub(stats.TotalRedeemed)

	stats.Velocity24h, err = s.ledgerRepo.CountTransactionsByTypeSince(
		ctx, s.dbExecutor, domain.TransactionTypeBurn, defIDs, time.Now().UTC().Add(-24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("issuer stats: %w", err)
	}
	return stats, nil
}
