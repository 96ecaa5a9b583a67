// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/shriddemon/value-os-platform/internal/domain"
	"github.com/shriddemon/value-os-platform/internal/repository"
)

// testLogger discards output; service logging is not under test.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockDBBeginner is a mock implementation of db.DBTxBeginner.
type MockDBBeginner struct {
	mock.Mock
}

func (m *MockDBBeginner) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	args := m.Called(ctx, opts)
	return &sqlx.Tx{}, args.Error(1)
}

// MockTxController is a mock implementation of db.TxController. It embeds
// MockDBExecutor so it also satisfies repository.DBExecutor, matching the
// cast the services perform on the controller.
type MockTxController struct {
	mock.Mock
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// MockIssuerRepository is a mock implementation of repository.IssuerRepository.
type MockIssuerRepository struct {
	mock.Mock
}

func (m *MockIssuerRepository) Create(ctx context.Context, q repository.DBExecutor, issuer *domain.Issuer) error {
	args := m.Called(ctx, q, issuer)
	return args.Error(0)
}

func (m *MockIssuerRepository) GetByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.Issuer, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Issuer), args.Error(1)
}

func (m *MockIssuerRepository) GetFirst(ctx context.Context, q repository.DBExecutor) (*domain.Issuer, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Issuer), args.Error(1)
}

func (m *MockIssuerRepository) List(ctx context.Context, q repository.DBExecutor) ([]domain.Issuer, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Issuer), args.Error(1)
}

// MockCreditDefinitionRepository is a mock implementation of repository.CreditDefinitionRepository.
type MockCreditDefinitionRepository struct {
	mock.Mock
}

func (m *MockCreditDefinitionRepository) Create(ctx context.Context, q repository.DBExecutor, def *domain.CreditDefinition) error {
	args := m.Called(ctx, q, def)
	return args.Error(0)
}

func (m *MockCreditDefinitionRepository) Upsert(ctx context.Context, q repository.DBExecutor, def *domain.CreditDefinition) error {
	args := m.Called(ctx, q, def)
	return args.Error(0)
}

func (m *MockCreditDefinitionRepository) GetByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.CreditDefinition, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditDefinition), args.Error(1)
}

func (m *MockCreditDefinitionRepository) List(ctx context.Context, q repository.DBExecutor) ([]domain.CreditDefinition, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditDefinition), args.Error(1)
}

func (m *MockCreditDefinitionRepository) ListIDsByIssuer(ctx context.Context, q repository.DBExecutor, issuerID string) ([]string, error) {
	args := m.Called(ctx, q, issuerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockBalanceRepository is a mock implementation of repository.BalanceRepository.
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) Create(ctx context.Context, q repository.DBExecutor, balance *domain.Balance) error {
	args := m.Called(ctx, q, balance)
	return args.Error(0)
}

func (m *MockBalanceRepository) Get(ctx context.Context, q repository.DBExecutor, walletID, creditDefID string) (*domain.Balance, error) {
	args := m.Called(ctx, q, walletID, creditDefID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockBalanceRepository) GetForUpdate(ctx context.Context, q repository.DBExecutor, walletID, creditDefID string) (*domain.Balance, error) {
	args := m.Called(ctx, q, walletID, creditDefID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockBalanceRepository) UpdateAmount(ctx context.Context, q repository.DBExecutor, id string, amount decimal.Decimal) error {
	args := m.Called(ctx, q, id, amount)
	return args.Error(0)
}

func (m *MockBalanceRepository) ListByWallet(ctx context.Context, q repository.DBExecutor, walletID string) ([]domain.WalletBalance, error) {
	args := m.Called(ctx, q, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WalletBalance), args.Error(1)
}

// MockLedgerRepository is a mock implementation of repository.LedgerRepository.
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, tx *domain.LedgerTransaction) error {
	args := m.Called(ctx, q, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) CreateEntry(ctx context.Context, q repository.DBExecutor, entry *domain.LedgerEntry) error {
	args := m.Called(ctx, q, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetTransactionByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.LedgerTransaction, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerTransaction), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByTransaction(ctx context.Context, q repository.DBExecutor, transactionID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, q, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListTransactionsByWallet(ctx context.Context, q repository.DBExecutor, walletID string, limit, offset int) ([]domain.LedgerTransaction, int64, error) {
	args := m.Called(ctx, q, walletID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.LedgerTransaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerRepository) CountTransactions(ctx context.Context, q repository.DBExecutor) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) SumEntriesByTransactionType(ctx context.Context, q repository.DBExecutor, txType domain.TransactionType, creditDefIDs []string) (decimal.Decimal, error) {
	args := m.Called(ctx, q, txType, creditDefIDs)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerRepository) CountTransactionsByTypeSince(ctx context.Context, q repository.DBExecutor, txType domain.TransactionType, creditDefIDs []string, since time.Time) (int64, error) {
	args := m.Called(ctx, q, txType, creditDefIDs, since)
	return args.Get(0).(int64), args.Error(1)
}

// MockLiquidityPoolRepository is a mock implementation of repository.LiquidityPoolRepository.
type MockLiquidityPoolRepository struct {
	mock.Mock
}

func (m *MockLiquidityPoolRepository) Create(ctx context.Context, q repository.DBExecutor, pool *domain.LiquidityPool) error {
	args := m.Called(ctx, q, pool)
	return args.Error(0)
}

func (m *MockLiquidityPoolRepository) GetByCreditDef(ctx context.Context, q repository.DBExecutor, creditDefID string) (*domain.LiquidityPool, error) {
	args := m.Called(ctx, q, creditDefID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LiquidityPool), args.Error(1)
}

func (m *MockLiquidityPoolRepository) GetByCreditDefForUpdate(ctx context.Context, q repository.DBExecutor, creditDefID string) (*domain.LiquidityPool, error) {
	args := m.Called(ctx, q, creditDefID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LiquidityPool), args.Error(1)
}

func (m *MockLiquidityPoolRepository) AddToBalance(ctx context.Context, q repository.DBExecutor, id string, delta decimal.Decimal) error {
	args := m.Called(ctx, q, id, delta)
	return args.Error(0)
}

// MockMerchantRepository is a mock implementation of repository.MerchantRepository.
type MockMerchantRepository struct {
	mock.Mock
}

func (m *MockMerchantRepository) Create(ctx context.Context, q repository.DBExecutor, merchant *domain.Merchant) error {
	args := m.Called(ctx, q, merchant)
	return args.Error(0)
}

func (m *MockMerchantRepository) GetByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.Merchant, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Merchant), args.Error(1)
}

// MockPolicyRepository is a mock implementation of repository.PolicyRepository.
type MockPolicyRepository struct {
	mock.Mock
}

func (m *MockPolicyRepository) Create(ctx context.Context, q repository.DBExecutor, policy *domain.Policy) error {
	args := m.Called(ctx, q, policy)
	return args.Error(0)
}

func (m *MockPolicyRepository) ListActiveForCreditDef(ctx context.Context, q repository.DBExecutor, creditDefID string) ([]domain.Policy, error) {
	args := m.Called(ctx, q, creditDefID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Policy), args.Error(1)
}

// MockPolicyEvaluationLogRepository is a mock implementation of repository.PolicyEvaluationLogRepository.
type MockPolicyEvaluationLogRepository struct {
	mock.Mock
}

func (m *MockPolicyEvaluationLogRepository) Create(ctx context.Context, q repository.DBExecutor, log *domain.PolicyEvaluationLog) error {
	args := m.Called(ctx, q, log)
	return args.Error(0)
}

func (m *MockPolicyEvaluationLogRepository) CountByDecision(ctx context.Context, q repository.DBExecutor, decision string) (int64, error) {
	args := m.Called(ctx, q, decision)
	return args.Get(0).(int64), args.Error(1)
}

// MockLedgerService is a mock implementation of LedgerService.
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) RecordTransaction(ctx context.Context, txType domain.TransactionType, entries []domain.EntryInput, metadata map[string]any) (*domain.TransactionResult, error) {
	args := m.Called(ctx, txType, entries, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionResult), args.Error(1)
}

func (m *MockLedgerService) RecordTransactionIn(ctx context.Context, q repository.DBExecutor, txType domain.TransactionType, entries []domain.EntryInput, metadata map[string]any) (*domain.TransactionResult, error) {
	args := m.Called(ctx, q, txType, entries, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionResult), args.Error(1)
}

// MockPolicyService is a mock implementation of PolicyService.
type MockPolicyService struct {
	mock.Mock
}

func (m *MockPolicyService) Evaluate(ctx context.Context, req domain.PolicyCheckRequest) (*domain.PolicyDecision, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PolicyDecision), args.Error(1)
}
